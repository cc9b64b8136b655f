package scoring

import (
	"math"

	"github-portfolio-auditor/internal/domain"
)

// MaxAssessedRepos 每次分析最多检查的仓库数 (按最近更新时间取前 N 个，再去掉 fork)
const MaxAssessedRepos = 10

// MetricCap 组合指标的上限
const MetricCap = 100.0

// Weights 六个指标的权重，和为 1
var Weights = domain.PortfolioMetrics{
	DocumentationQuality:   0.25,
	CodeStructure:          0.20,
	ActivityConsistency:    0.20,
	RepositoryOrganization: 0.15,
	ProjectImpact:          0.10,
	TechnicalDepth:         0.10,
}

// Portfolio 是汇总后的中间结果，报告组装前不做四舍五入
type Portfolio struct {
	OverallScore float64
	Metrics      domain.PortfolioMetrics
	Assessments  []*domain.RepoAssessment
	Languages    []string // 按仓库顺序，每个有语言的仓库一项
	TotalStars   int
	TotalForks   int
}

// Aggregate 把单仓库评估折叠成六个组合指标和总分
// 不修改输入，相同输入总是得到相同输出
func Aggregate(profile *domain.Profile, assessments []*domain.RepoAssessment) *Portfolio {
	var docSum, activitySum, structureSum int
	p := &Portfolio{
		Assessments: assessments,
		Languages:   make([]string, 0, len(assessments)),
	}

	for _, a := range assessments {
		docSum += a.ReadmeScore
		activitySum += a.CommitScore
		structureSum += a.StructureScore
		p.TotalStars += a.Stars
		p.TotalForks += a.Forks
		if a.Language != "" {
			p.Languages = append(p.Languages, a.Language)
		}
	}

	n := len(assessments)
	if n == 0 {
		n = 1
	}

	p.Metrics = domain.PortfolioMetrics{
		DocumentationQuality:   math.Min(float64(docSum)/float64(n), MetricCap),
		ActivityConsistency:    math.Min(float64(activitySum)/float64(n), MetricCap),
		CodeStructure:          math.Min(float64(structureSum)/float64(n), MetricCap),
		RepositoryOrganization: ProfileCompleteness(profile),
		ProjectImpact:          ImpactScore(p.TotalStars),
		TechnicalDepth:         TechnicalDepth(p.Languages),
	}
	p.OverallScore = OverallScore(p.Metrics)

	return p
}

// ProfileCompleteness 根据个人资料完整度计算 repository_organization
func ProfileCompleteness(profile *domain.Profile) float64 {
	if profile == nil {
		return 0
	}

	score := 0.0
	if profile.Bio != "" {
		score += 20
	}
	if profile.Blog != "" {
		score += 15
	}
	if profile.Location != "" {
		score += 10
	}
	if profile.Email != "" {
		score += 15
	}
	if profile.PublicRepos >= 5 {
		score += 20
	}
	if profile.PublicRepos >= 10 {
		score += 20
	}
	return math.Min(score, MetricCap)
}

// ImpactScore 按被检查仓库的 star 总数分档，只取最高的一档
func ImpactScore(totalStars int) float64 {
	switch {
	case totalStars >= 50:
		return 100
	case totalStars >= 20:
		return 80
	case totalStars >= 10:
		return 60
	case totalStars >= 5:
		return 40
	case totalStars >= 1:
		return 20
	default:
		return 0
	}
}

// TechnicalDepth 每种不同的语言 +20，最多 100
func TechnicalDepth(languages []string) float64 {
	distinct := make(map[string]struct{}, len(languages))
	for _, l := range languages {
		distinct[l] = struct{}{}
	}
	return math.Min(20*float64(len(distinct)), MetricCap)
}

// OverallScore 六个指标的加权和，不再截断
// 每个乘积显式转换一次，禁止编译器融合乘加，保证各平台上 .x5 的取舍一致
func OverallScore(m domain.PortfolioMetrics) float64 {
	return float64(m.DocumentationQuality*Weights.DocumentationQuality) +
		float64(m.CodeStructure*Weights.CodeStructure) +
		float64(m.ActivityConsistency*Weights.ActivityConsistency) +
		float64(m.RepositoryOrganization*Weights.RepositoryOrganization) +
		float64(m.ProjectImpact*Weights.ProjectImpact) +
		float64(m.TechnicalDepth*Weights.TechnicalDepth)
}
