package scoring

import "github-portfolio-auditor/internal/domain"

const (
	MaxStrengths = 4
	MaxRedFlags  = 3
)

// 已检查仓库少于这个数量时给出红旗
const minAssessedRepos = 3

const noStrengths = "Opportunity for significant improvement across all areas"

// Strengths 每个达标的指标给出一条固定文本，顺序固定，最多 4 条
func Strengths(m domain.PortfolioMetrics) []string {
	var out []string
	if m.DocumentationQuality >= 70 {
		out = append(out, "Well-documented projects with clear READMEs")
	}
	if m.ActivityConsistency >= 70 {
		out = append(out, "Consistent and regular commit activity")
	}
	if m.CodeStructure >= 70 {
		out = append(out, "Professional repository structure and organization")
	}
	if m.ProjectImpact >= 60 {
		out = append(out, "Projects with community engagement (stars/forks)")
	}
	if m.TechnicalDepth >= 70 {
		out = append(out, "Diverse technology stack and skills")
	}
	if m.RepositoryOrganization >= 70 {
		out = append(out, "Complete and professional profile setup")
	}

	if len(out) == 0 {
		return []string{noStrengths}
	}
	if len(out) > MaxStrengths {
		out = out[:MaxStrengths]
	}
	return out
}

// RedFlags 招聘方可能注意到的问题，顺序固定，最多 3 条
func RedFlags(m domain.PortfolioMetrics, assessments []*domain.RepoAssessment) []string {
	out := []string{}
	if m.DocumentationQuality < 40 {
		out = append(out, "⚠️ Most repositories lack proper documentation")
	}
	if m.ActivityConsistency < 30 {
		out = append(out, "⚠️ Very low commit activity - appears inactive")
	}
	if m.CodeStructure < 40 {
		out = append(out, "⚠️ Poor repository organization and missing essential files")
	}
	if len(assessments) < minAssessedRepos {
		out = append(out, "⚠️ Very few non-forked repositories")
	}
	if m.ProjectImpact < 20 {
		out = append(out, "⚠️ No community engagement or project visibility")
	}

	if len(out) > MaxRedFlags {
		out = out[:MaxRedFlags]
	}
	return out
}
