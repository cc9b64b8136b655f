package analyzer

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github-portfolio-auditor/internal/domain"
	"github-portfolio-auditor/internal/port"
	"github-portfolio-auditor/internal/scoring"
)

// 单个仓库最多拉取的提交数
const commitFetchLimit = 100

// RepoAnalyzer 实现了 port.Analyzer 接口
type RepoAnalyzer struct {
	maxGoroutines int           // 最大并发数
	repoTimeout   time.Duration // 单个仓库详情查询的超时
}

// NewRepoAnalyzer 创建新的分析器实例
func NewRepoAnalyzer() *RepoAnalyzer {
	return &RepoAnalyzer{
		maxGoroutines: 3, // 默认并发数为3
		repoTimeout:   30 * time.Second,
	}
}

// SetMaxGoroutines 设置最大并发数
func (a *RepoAnalyzer) SetMaxGoroutines(max int) {
	if max > 0 {
		a.maxGoroutines = max
	}
}

// SetRepoTimeout 设置单个仓库的超时时间
func (a *RepoAnalyzer) SetRepoTimeout(d time.Duration) {
	if d > 0 {
		a.repoTimeout = d
	}
}

// job 带上输入下标，结果按下标写回，保证输出顺序与输入一致
type job struct {
	index int
	repo  *domain.RepoRecord
}

// assessWorker 工作协程，处理单个仓库的详情获取和评分
func (a *RepoAnalyzer) assessWorker(
	ctx context.Context,
	fetcher port.MetadataFetcher,
	owner string,
	jobs <-chan job,
	results []*domain.RepoAssessment,
	wg *sync.WaitGroup,
	workerID int,
) {
	defer wg.Done()

	for j := range jobs {
		if ctx.Err() != nil {
			continue
		}

		log.Printf("   [Worker-%d] 正在评估 %s...\n", workerID, j.repo.Name)

		// 为每个仓库设置超时时间
		repoCtx, cancel := context.WithTimeout(ctx, a.repoTimeout)
		detail := FetchDetail(repoCtx, fetcher, owner, j.repo.Name)
		cancel() // 立即释放资源

		if len(detail.Degraded) > 0 {
			log.Printf("   [Worker-%d] ⚠️  %s 部分详情获取失败 (%s)，按 0 分处理\n",
				workerID, j.repo.Name, strings.Join(detail.Degraded, ", "))
		}

		assessment := scoring.Assess(j.repo, detail)
		results[j.index] = assessment

		log.Printf("   [Worker-%d] ✅ %s 评估完成 (README %d / 活跃 %d / 结构 %d)\n",
			workerID, j.repo.Name, assessment.ReadmeScore, assessment.CommitScore, assessment.StructureScore)
	}
}

// AssessAll 并发评估仓库，返回顺序与输入一致
// 单个仓库的详情失败只会让对应子分数为 0；父 context 被取消时整体返回错误
func (a *RepoAnalyzer) AssessAll(
	ctx context.Context,
	fetcher port.MetadataFetcher,
	owner string,
	repos []*domain.RepoRecord,
) ([]*domain.RepoAssessment, error) {
	log.Printf("🔍 开始评估仓库，共 %d 个，最大并发数: %d\n", len(repos), a.maxGoroutines)

	results := make([]*domain.RepoAssessment, len(repos))
	if len(repos) == 0 {
		return results, nil
	}

	jobs := make(chan job, len(repos))
	for i, repo := range repos {
		jobs <- job{index: i, repo: repo}
	}
	close(jobs)

	// 启动workers
	var wg sync.WaitGroup
	workers := a.maxGoroutines
	if workers > len(repos) {
		workers = len(repos)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go a.assessWorker(ctx, fetcher, owner, jobs, results, &wg, i+1)
	}

	// 等待所有workers完成
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	// 等待完成或取消
	select {
	case <-done:
	case <-ctx.Done():
		log.Println("⏰ 仓库评估因超时或取消而中断")
		return nil, ctx.Err()
	}

	// worker 看到取消后会跳过剩余任务
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Println("✅ 仓库评估完成")
	return results, nil
}

// FetchDetail 获取单个仓库的三项详情，任何一项失败都退化为零值并记入 Degraded
func FetchDetail(ctx context.Context, fetcher port.MetadataFetcher, owner, repo string) *domain.RepoDetail {
	detail := &domain.RepoDetail{}

	found, size, err := fetcher.GetReadme(ctx, owner, repo)
	if err != nil {
		detail.Degraded = append(detail.Degraded, domain.LookupReadme)
	} else {
		detail.ReadmeFound = found
		detail.ReadmeSize = size
	}

	commits, err := fetcher.GetCommits(ctx, owner, repo, commitFetchLimit)
	if err != nil {
		detail.Degraded = append(detail.Degraded, domain.LookupCommits)
	} else {
		detail.Commits = commits
	}

	entries, err := fetcher.GetContents(ctx, owner, repo)
	if err != nil {
		detail.Degraded = append(detail.Degraded, domain.LookupContents)
	} else {
		detail.Entries = entries
	}

	return detail
}
