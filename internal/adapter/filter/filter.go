package filter

import (
	"log"

	"github-portfolio-auditor/internal/domain"
)

// RepoFilter 实现了 port.Filter 接口
type RepoFilter struct {
	verbose bool
}

// NewRepoFilter 创建新的过滤器实例，verbose 为 true 时记录被跳过的 fork
func NewRepoFilter(verbose bool) *RepoFilter {
	return &RepoFilter{verbose: verbose}
}

// SelectForAssessment 取列表前 limit 个仓库 (调用方保证已按更新时间倒序)，再去掉 fork
// fork 不会被后面的仓库补位，保持原有顺序
func (f *RepoFilter) SelectForAssessment(repos []*domain.RepoRecord, limit int) []*domain.RepoRecord {
	if limit >= 0 && len(repos) > limit {
		repos = repos[:limit]
	}

	selected := make([]*domain.RepoRecord, 0, len(repos))
	for _, repo := range repos {
		if repo == nil {
			continue
		}
		if repo.IsFork {
			if f != nil && f.verbose {
				log.Printf("[Filter] 跳过 fork 仓库: %s", repo.Name)
			}
			continue
		}
		selected = append(selected, repo)
	}

	return selected
}
