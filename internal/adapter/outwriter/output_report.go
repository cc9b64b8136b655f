package outwriter

import (
	"fmt"
	"io"
	"strconv"

	"github-portfolio-auditor/internal/domain"
	"github-portfolio-auditor/internal/scoring"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// writeReportText 人类可读的报告：概要、指标表、仓库表、语言表、亮点/风险、建议表
func writeReportText(w io.Writer, r *domain.AnalysisResult, useColors bool) error {
	p := newPalette(useColors)

	name := r.Username
	if r.Profile.Name != "" && r.Profile.Name != r.Username {
		name = fmt.Sprintf("%s (%s)", r.Username, r.Profile.Name)
	}

	fmt.Fprintf(w, "📊 GitHub Portfolio Report: %s\n", p.bold(name))
	fmt.Fprintf(w, "Overall: %s/100  Grade: %s (%s)\n",
		p.score(r.OverallScore, fmt.Sprintf("%.1f", r.OverallScore)),
		p.score(r.OverallScore, r.Grade), r.GradeDescription)
	fmt.Fprintf(w, "Followers: %d | Public repos: %d | Assessed: %d | ⭐ %d | 🍴 %d\n\n",
		r.Profile.Followers, r.Profile.PublicRepos, r.AssessedCount, r.TotalStars, r.TotalForks)

	if err := writeMetricsTable(w, r.Metrics, p); err != nil {
		return err
	}

	if len(r.AnalyzedRepositories) > 0 {
		fmt.Fprintln(w)
		if err := writeRepositoriesTable(w, r.AnalyzedRepositories, p); err != nil {
			return err
		}
	}

	if len(r.Languages) > 0 {
		fmt.Fprintln(w)
		if err := writeLanguagesTable(w, r.Languages); err != nil {
			return err
		}
	}

	fmt.Fprintln(w)
	writeList(w, "✅ Strengths", r.Strengths)
	writeList(w, "🚩 Red Flags", r.RedFlags)

	if len(r.Recommendations) > 0 {
		fmt.Fprintln(w)
		if err := writeRecommendationsTable(w, r.Recommendations, p); err != nil {
			return err
		}
	}

	if r.Narrative != "" {
		fmt.Fprintf(w, "\n🤖 Reviewer notes:\n%s\n", r.Narrative)
	}
	return nil
}

func writeMetricsTable(w io.Writer, m domain.PortfolioMetrics, p palette) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Metric", "Score", "Weight"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	weights := scoring.Weights
	rows := []struct {
		label  string
		value  float64
		weight float64
	}{
		{"Documentation quality", m.DocumentationQuality, weights.DocumentationQuality},
		{"Code structure", m.CodeStructure, weights.CodeStructure},
		{"Activity consistency", m.ActivityConsistency, weights.ActivityConsistency},
		{"Repository organization", m.RepositoryOrganization, weights.RepositoryOrganization},
		{"Project impact", m.ProjectImpact, weights.ProjectImpact},
		{"Technical depth", m.TechnicalDepth, weights.TechnicalDepth},
	}

	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		data = append(data, []string{
			row.label,
			p.score(row.value, fmt.Sprintf("%.1f", row.value)),
			fmt.Sprintf("%.0f%%", row.weight*100),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeRepositoriesTable(w io.Writer, repos []*domain.RepoAssessment, p palette) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Repository", "Language", "Stars", "Forks", "README", "Activity", "Structure"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(repos))
	for _, a := range repos {
		lang := a.Language
		if lang == "" {
			lang = "-"
		}
		data = append(data, []string{
			a.Name,
			lang,
			strconv.Itoa(a.Stars),
			strconv.Itoa(a.Forks),
			p.subScore(a.ReadmeScore),
			p.subScore(a.CommitScore),
			p.subScore(a.StructureScore),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeLanguagesTable(w io.Writer, langs []domain.LanguageCount) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Language", "Repos"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(langs))
	for _, l := range langs {
		data = append(data, []string{l.Name, strconv.Itoa(l.Count)})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeRecommendationsTable(w io.Writer, recs []domain.Recommendation, p palette) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Priority", "Category", "Issue", "Action", "Impact"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	data := make([][]string, 0, len(recs))
	for _, rec := range recs {
		data = append(data, []string{priorityLabel(rec.Priority, p), rec.Category, rec.Issue, rec.Action, rec.Impact})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func priorityLabel(pr domain.Priority, p palette) string {
	switch pr {
	case domain.PriorityHigh:
		return p.poor(string(pr))
	case domain.PriorityMedium:
		return p.fair(string(pr))
	default:
		return p.good(string(pr))
	}
}

func writeList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}
