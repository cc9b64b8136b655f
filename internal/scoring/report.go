package scoring

import (
	"sort"
	"strconv"
	"time"

	"github-portfolio-auditor/internal/domain"
)

const (
	MaxDisplayedRepos = 5
	MaxLanguages      = 5
)

// 缺失字段的占位文本
const (
	placeholderName     = "N/A"
	placeholderBio      = "No bio"
	placeholderLocation = "Not specified"
)

// Grade 字母等级及描述
type Grade struct {
	Letter      string
	Description string
	MinScore    float64
}

// gradeTable 从高到低，下界闭区间
var gradeTable = []Grade{
	{Letter: "A+", Description: "Outstanding", MinScore: 90},
	{Letter: "A", Description: "Excellent", MinScore: 80},
	{Letter: "B+", Description: "Very Good", MinScore: 70},
	{Letter: "B", Description: "Good", MinScore: 60},
	{Letter: "C+", Description: "Above Average", MinScore: 50},
	{Letter: "C", Description: "Average", MinScore: 40},
}

var lowestGrade = Grade{Letter: "D", Description: "Needs Improvement"}

// GradeFor 总分到等级的阶梯函数
func GradeFor(score float64) Grade {
	for _, g := range gradeTable {
		if score >= g.MinScore {
			return g
		}
	}
	return lowestGrade
}

// BuildReport 组装最终报告
// 建议、优点和红旗基于未四舍五入的指标计算，展示值保留一位小数
func BuildReport(profile *domain.Profile, p *Portfolio) *domain.AnalysisResult {
	grade := GradeFor(p.OverallScore)

	repos := p.Assessments
	if len(repos) > MaxDisplayedRepos {
		repos = repos[:MaxDisplayedRepos]
	}
	displayed := make([]*domain.RepoAssessment, len(repos))
	copy(displayed, repos)

	return &domain.AnalysisResult{
		Username:             profile.Username,
		Profile:              summarizeProfile(profile),
		OverallScore:         Round1(p.OverallScore),
		Grade:                grade.Letter,
		GradeDescription:     grade.Description,
		Metrics:              roundMetrics(p.Metrics),
		AnalyzedRepositories: displayed,
		Languages:            LanguageHistogram(p.Languages, MaxLanguages),
		Recommendations:      Recommend(p.Metrics, p.Assessments),
		Strengths:            Strengths(p.Metrics),
		RedFlags:             RedFlags(p.Metrics, p.Assessments),
		AssessedCount:        len(p.Assessments),
		TotalStars:           p.TotalStars,
		TotalForks:           p.TotalForks,
	}
}

// LanguageHistogram 按出现次数降序，次数相同按首次出现顺序，取前 limit 个
func LanguageHistogram(languages []string, limit int) []domain.LanguageCount {
	counts := make(map[string]int, len(languages))
	var order []string
	for _, l := range languages {
		if _, seen := counts[l]; !seen {
			order = append(order, l)
		}
		counts[l]++
	}

	out := make([]domain.LanguageCount, 0, len(order))
	for _, l := range order {
		out = append(out, domain.LanguageCount{Name: l, Count: counts[l]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Round1 保留一位小数，按浮点数的精确值取舍，正好一半时取偶数 (51.25 -> 51.2)
func Round1(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return v
	}
	return r
}

func roundMetrics(m domain.PortfolioMetrics) domain.PortfolioMetrics {
	return domain.PortfolioMetrics{
		DocumentationQuality:   Round1(m.DocumentationQuality),
		CodeStructure:          Round1(m.CodeStructure),
		ActivityConsistency:    Round1(m.ActivityConsistency),
		RepositoryOrganization: Round1(m.RepositoryOrganization),
		ProjectImpact:          Round1(m.ProjectImpact),
		TechnicalDepth:         Round1(m.TechnicalDepth),
	}
}

func summarizeProfile(p *domain.Profile) domain.ProfileSummary {
	createdAt := ""
	if !p.CreatedAt.IsZero() {
		createdAt = p.CreatedAt.UTC().Format(time.RFC3339)
	}

	return domain.ProfileSummary{
		Name:        orDefault(p.Name, placeholderName),
		Bio:         orDefault(p.Bio, placeholderBio),
		AvatarURL:   p.AvatarURL,
		PublicRepos: p.PublicRepos,
		Followers:   p.Followers,
		Following:   p.Following,
		CreatedAt:   createdAt,
		Location:    orDefault(p.Location, placeholderLocation),
		Blog:        p.Blog,
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
