package domain

import "time"

// Profile 代表 GitHub 用户的公开资料，每次分析只获取一次
type Profile struct {
	Username    string    `json:"username"`
	Name        string    `json:"name"`
	Bio         string    `json:"bio"`
	AvatarURL   string    `json:"avatar_url"`
	PublicRepos int       `json:"public_repos"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	CreatedAt   time.Time `json:"created_at"`
	Location    string    `json:"location"`
	Blog        string    `json:"blog"`
	Email       string    `json:"email"`
}

// RepoRecord 代表仓库列表接口返回的一条记录
type RepoRecord struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	Language    string    `json:"language"`
	UpdatedAt   time.Time `json:"updated_at"`
	IsFork      bool      `json:"fork"`
	Topics      []string  `json:"topics"`
}

// Commit 只保留作者时间的原始文本，解析失败的时间在评分时跳过
type Commit struct {
	AuthorDate string `json:"author_date"`
}

// RepoDetail 是按需获取的单仓库详情
// 任何一次查询失败都会退化为零值，并记录在 Degraded 中
type RepoDetail struct {
	ReadmeFound bool     `json:"readme_found"`
	ReadmeSize  int      `json:"readme_size"`
	Commits     []Commit `json:"commits"` // 最新的在前，最多 100 条
	Entries     []string `json:"entries"` // 根目录下的文件/目录名
	Degraded    []string `json:"degraded,omitempty"`
}

// 详情查询的名称，用于 RepoDetail.Degraded
const (
	LookupReadme   = "readme"
	LookupCommits  = "commits"
	LookupContents = "contents"
)

// RepoAssessment 是单个仓库的评估结果，创建后不再修改
type RepoAssessment struct {
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Stars          int       `json:"stars"`
	Forks          int       `json:"forks"`
	Language       string    `json:"language"`
	UpdatedAt      time.Time `json:"updated_at" yaml:"updated_at"`
	ReadmeScore    int       `json:"readme_score" yaml:"readme_score"`       // 0-50
	CommitScore    int       `json:"commit_score" yaml:"commit_score"`       // 0-50
	StructureScore int       `json:"structure_score" yaml:"structure_score"` // 0-50
}

// PortfolioMetrics 六个维度，每个都归一化到 [0,100]
type PortfolioMetrics struct {
	DocumentationQuality   float64 `json:"documentation_quality" yaml:"documentation_quality"`
	CodeStructure          float64 `json:"code_structure" yaml:"code_structure"`
	ActivityConsistency    float64 `json:"activity_consistency" yaml:"activity_consistency"`
	RepositoryOrganization float64 `json:"repository_organization" yaml:"repository_organization"`
	ProjectImpact          float64 `json:"project_impact" yaml:"project_impact"`
	TechnicalDepth         float64 `json:"technical_depth" yaml:"technical_depth"`
}

// Priority 建议的优先级
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Recommendation 一条可执行的改进建议
type Recommendation struct {
	Category string   `json:"category"`
	Priority Priority `json:"priority"`
	Issue    string   `json:"issue"`
	Action   string   `json:"action"`
	Impact   string   `json:"impact"`
}

// LanguageCount 语言直方图中的一项
type LanguageCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ProfileSummary 是报告里展示的用户信息，缺失字段已替换为占位文本
type ProfileSummary struct {
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatar_url" yaml:"avatar_url"`
	PublicRepos int    `json:"public_repos" yaml:"public_repos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	CreatedAt   string `json:"created_at" yaml:"created_at"`
	Location    string `json:"location"`
	Blog        string `json:"blog"`
}

// AnalysisResult 是一次分析的最终报告
type AnalysisResult struct {
	Username             string            `json:"username"`
	Profile              ProfileSummary    `json:"profile"`
	OverallScore         float64           `json:"overall_score" yaml:"overall_score"`
	Grade                string            `json:"grade"`
	GradeDescription     string            `json:"grade_description" yaml:"grade_description"`
	Metrics              PortfolioMetrics  `json:"metrics"`
	AnalyzedRepositories []*RepoAssessment `json:"analyzed_repositories" yaml:"analyzed_repositories"`
	Languages            []LanguageCount   `json:"languages"`
	Recommendations      []Recommendation  `json:"recommendations"`
	Strengths            []string          `json:"strengths"`
	RedFlags             []string          `json:"red_flags" yaml:"red_flags"`

	// 参与评分的仓库汇总
	AssessedCount int `json:"assessed_count" yaml:"assessed_count"`
	TotalStars    int `json:"total_stars" yaml:"total_stars"`
	TotalForks    int `json:"total_forks" yaml:"total_forks"`

	// AI 点评 (可选)，不参与评分
	Narrative string `json:"narrative,omitempty" yaml:"narrative,omitempty"`
}

// IsStrong 判断是否值得推送 (B 及以上)
// 按等级判断，展示分数四舍五入后可能越过 60
func (r *AnalysisResult) IsStrong() bool {
	switch r.Grade {
	case "A+", "A", "B+", "B":
		return true
	}
	return false
}
