package scoring

import (
	"testing"

	"github-portfolio-auditor/internal/domain"

	"github.com/stretchr/testify/assert"
)

func reposNamed(n int) []*domain.RepoAssessment {
	out := make([]*domain.RepoAssessment, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &domain.RepoAssessment{Name: "repo"})
	}
	return out
}

func TestStrengths(t *testing.T) {
	tests := []struct {
		name    string
		metrics domain.PortfolioMetrics
		want    []string
	}{
		{
			name:    "全部达标时只取前 4 条",
			metrics: domain.PortfolioMetrics{100, 100, 100, 100, 100, 100},
			want: []string{
				"Well-documented projects with clear READMEs",
				"Consistent and regular commit activity",
				"Professional repository structure and organization",
				"Projects with community engagement (stars/forks)",
			},
		},
		{
			name:    "都不达标",
			metrics: domain.PortfolioMetrics{},
			want:    []string{"Opportunity for significant improvement across all areas"},
		},
		{
			name:    "只有个人资料",
			metrics: domain.PortfolioMetrics{RepositoryOrganization: 70},
			want:    []string{"Complete and professional profile setup"},
		},
		{
			name:    "impact 阈值是 60",
			metrics: domain.PortfolioMetrics{ProjectImpact: 60, TechnicalDepth: 69.9},
			want:    []string{"Projects with community engagement (stars/forks)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Strengths(tt.metrics)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), MaxStrengths)
		})
	}
}

func TestRedFlags(t *testing.T) {
	tests := []struct {
		name        string
		metrics     domain.PortfolioMetrics
		assessments []*domain.RepoAssessment
		want        []string
	}{
		{
			name:        "全部触发时只取前 3 条",
			metrics:     domain.PortfolioMetrics{},
			assessments: nil,
			want: []string{
				"⚠️ Most repositories lack proper documentation",
				"⚠️ Very low commit activity - appears inactive",
				"⚠️ Poor repository organization and missing essential files",
			},
		},
		{
			name:        "表现良好",
			metrics:     domain.PortfolioMetrics{100, 100, 100, 100, 100, 100},
			assessments: reposNamed(5),
			want:        []string{},
		},
		{
			name:        "仓库太少且没有 star",
			metrics:     domain.PortfolioMetrics{DocumentationQuality: 40, ActivityConsistency: 30, CodeStructure: 40},
			assessments: reposNamed(2),
			want: []string{
				"⚠️ Very few non-forked repositories",
				"⚠️ No community engagement or project visibility",
			},
		},
		{
			name:        "三个仓库不算太少",
			metrics:     domain.PortfolioMetrics{DocumentationQuality: 40, ActivityConsistency: 30, CodeStructure: 40, ProjectImpact: 20},
			assessments: reposNamed(3),
			want:        []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RedFlags(tt.metrics, tt.assessments)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), MaxRedFlags)
		})
	}
}
