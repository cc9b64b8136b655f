package port

import (
	"context"

	"github-portfolio-auditor/internal/domain"
)

// MetadataFetcher (数据源): 负责从 GitHub 获取用户、仓库以及仓库详情
// 纯网络 I/O，没有业务逻辑
type MetadataFetcher interface {
	GetProfile(ctx context.Context, username string) (*domain.Profile, error)

	// 按最近更新时间倒序，单次最多 100 条
	ListRepositories(ctx context.Context, username string) ([]*domain.RepoRecord, error)

	// found=false 且 err=nil 表示仓库没有 README
	GetReadme(ctx context.Context, owner, repo string) (found bool, size int, err error)

	// 最新的提交在前
	GetCommits(ctx context.Context, owner, repo string, limit int) ([]domain.Commit, error)

	// 根目录的文件/目录名
	GetContents(ctx context.Context, owner, repo string) ([]string, error)
}

// FetcherFactory 根据调用方传入的 token 创建数据源，空 token 表示匿名访问
type FetcherFactory func(token string) MetadataFetcher

// Filter (筛选器): 挑出需要评估的仓库
type Filter interface {
	SelectForAssessment(repos []*domain.RepoRecord, limit int) []*domain.RepoRecord
}

// Analyzer (评估员): 获取仓库详情并给出单仓库评分
// 返回结果的顺序与输入一致
type Analyzer interface {
	AssessAll(ctx context.Context, fetcher MetadataFetcher, owner string, repos []*domain.RepoRecord) ([]*domain.RepoAssessment, error)
	SetMaxGoroutines(max int)
}

// Narrator (点评员): 调用 LLM 为报告写一段点评，可选
type Narrator interface {
	Narrate(ctx context.Context, result *domain.AnalysisResult) (string, error)
}

// Notifier (信使): 把报告推送到飞书等通知渠道，可选
type Notifier interface {
	Notify(ctx context.Context, result *domain.AnalysisResult) error
}
