package scoring

import (
	"fmt"
	"strings"

	"github-portfolio-auditor/internal/domain"
)

// MaxRecommendations 建议列表的上限
const MaxRecommendations = 6

// quickWinThreshold 文档子分数低于此值视为缺少 README (基于 0-50 的子分数)
const quickWinThreshold = 20

// quickWinNames Quick Wins 建议里最多列出的仓库数
const quickWinNames = 3

type recommendationRule struct {
	triggered func(m domain.PortfolioMetrics) bool
	rec       domain.Recommendation
}

// recommendationRules 按固定顺序求值，顺序即输出顺序
var recommendationRules = []recommendationRule{
	{
		triggered: func(m domain.PortfolioMetrics) bool { return m.DocumentationQuality < 60 },
		rec: domain.Recommendation{
			Category: "Documentation",
			Priority: domain.PriorityHigh,
			Issue:    "README files are missing or incomplete",
			Action:   "Add comprehensive README files to your top projects. Include: project description, installation instructions, usage examples, screenshots/demos, and contribution guidelines.",
			Impact:   "+15-20 points",
		},
	},
	{
		triggered: func(m domain.PortfolioMetrics) bool { return m.ActivityConsistency < 50 },
		rec: domain.Recommendation{
			Category: "Activity",
			Priority: domain.PriorityHigh,
			Issue:    "Inconsistent commit history",
			Action:   "Maintain regular commit activity. Aim for at least 2-3 commits per week. Even small, meaningful updates show active development.",
			Impact:   "+10-15 points",
		},
	},
	{
		triggered: func(m domain.PortfolioMetrics) bool { return m.CodeStructure < 60 },
		rec: domain.Recommendation{
			Category: "Structure",
			Priority: domain.PriorityMedium,
			Issue:    "Missing important project files",
			Action:   "Add essential files: .gitignore, LICENSE, CONTRIBUTING.md, requirements.txt (or package.json). Add topics/tags to repositories for better discoverability.",
			Impact:   "+8-12 points",
		},
	},
	{
		triggered: func(m domain.PortfolioMetrics) bool { return m.RepositoryOrganization < 70 },
		rec: domain.Recommendation{
			Category: "Profile",
			Priority: domain.PriorityMedium,
			Issue:    "Incomplete profile information",
			Action:   "Complete your GitHub profile: add bio, location, website/blog, and email. Pin your best 4-6 repositories to showcase your skills.",
			Impact:   "+10-15 points",
		},
	},
	{
		triggered: func(m domain.PortfolioMetrics) bool { return m.ProjectImpact < 40 },
		rec: domain.Recommendation{
			Category: "Impact",
			Priority: domain.PriorityMedium,
			Issue:    "Low project visibility and engagement",
			Action:   "Focus on quality over quantity. Build 2-3 substantial projects that solve real problems. Add detailed project descriptions, use cases, and live demos. Share your work on social media and developer communities.",
			Impact:   "+15-20 points",
		},
	},
	{
		triggered: func(m domain.PortfolioMetrics) bool { return m.TechnicalDepth < 60 },
		rec: domain.Recommendation{
			Category: "Technical Skills",
			Priority: domain.PriorityLow,
			Issue:    "Limited technology diversity",
			Action:   "Expand your tech stack. Learn and showcase projects in complementary technologies. For example: if you know React, add Node.js backend projects; if you know Python, add data science or ML projects.",
			Impact:   "+8-12 points",
		},
	},
}

// Recommend 按规则顺序生成建议，最后追加 Quick Wins，截断到前 6 条
func Recommend(metrics domain.PortfolioMetrics, assessments []*domain.RepoAssessment) []domain.Recommendation {
	recs := make([]domain.Recommendation, 0, len(recommendationRules)+1)
	for _, rule := range recommendationRules {
		if rule.triggered(metrics) {
			recs = append(recs, rule.rec)
		}
	}

	var missing []string
	for _, a := range assessments {
		if a.ReadmeScore < quickWinThreshold {
			missing = append(missing, a.Name)
		}
	}
	if len(missing) > 0 {
		if len(missing) > quickWinNames {
			missing = missing[:quickWinNames]
		}
		recs = append(recs, domain.Recommendation{
			Category: "Quick Wins",
			Priority: domain.PriorityHigh,
			Issue:    fmt.Sprintf("Repositories without README: %s", strings.Join(missing, ", ")),
			Action:   "Add README files to these repositories immediately. This is the quickest way to improve your portfolio score.",
			Impact:   "+20-30 points",
		})
	}

	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs
}
