package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github-portfolio-auditor/internal/adapter/analyzer"
	"github-portfolio-auditor/internal/adapter/filter"
	"github-portfolio-auditor/internal/adapter/github"
	"github-portfolio-auditor/internal/adapter/httpapi"
	"github-portfolio-auditor/internal/config"
	"github-portfolio-auditor/internal/scoring"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("用法: debug <username-or-profile-url>")
		os.Exit(2)
	}

	username, ok := httpapi.ExtractUsername(os.Args[1])
	if !ok {
		log.Fatalf("❌ 无法识别的用户名: %s", os.Args[1])
	}

	cfg, err := config.Load(config.New(), "")
	if err != nil {
		log.Fatalf("❌ 配置加载失败: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.AnalysisTimeout)
	defer cancel()

	client := github.NewClient(cfg.GitHubToken, github.WithRetries(cfg.Retries))
	repoFilter := filter.NewRepoFilter(true)

	fmt.Printf("🔍 调试模式：逐个查看 %s 的仓库详情\n", username)

	// 1. 仓库列表
	repos, err := client.ListRepositories(ctx, username)
	if err != nil {
		log.Printf("❌ 获取仓库列表失败: %v", err)
		return
	}
	fmt.Printf("✅ 成功获取 %d 个仓库\n", len(repos))

	// 2. 筛选
	selected := repoFilter.SelectForAssessment(repos, scoring.MaxAssessedRepos)
	fmt.Printf("✅ 筛选后剩余 %d 个仓库\n", len(selected))
	if len(selected) == 0 {
		fmt.Println("❌ 没有需要评估的仓库")
		return
	}

	// 3. 顺序获取详情并评分，方便对照原始数据
	for i, repo := range selected {
		repoCtx, repoCancel := context.WithTimeout(ctx, cfg.RepoTimeout)
		detail := analyzer.FetchDetail(repoCtx, client, username, repo.Name)
		repoCancel()

		assessment := scoring.Assess(repo, detail)

		fmt.Printf("  仓库 #%d: %s (⭐ %d, 🍴 %d, %s)\n", i+1, repo.Name, repo.Stars, repo.Forks, repo.Language)
		fmt.Printf("    README: found=%v size=%d -> %d 分\n", detail.ReadmeFound, detail.ReadmeSize, assessment.ReadmeScore)
		fmt.Printf("    提交: %d 条", len(detail.Commits))
		if len(detail.Commits) > 0 {
			fmt.Printf(" (最新 %s, 最早 %s)", detail.Commits[0].AuthorDate, detail.Commits[len(detail.Commits)-1].AuthorDate)
		}
		fmt.Printf(" -> %d 分\n", assessment.CommitScore)
		fmt.Printf("    根目录: %s\n", strings.Join(detail.Entries, ", "))
		fmt.Printf("    topics: %v, 描述: %q -> 结构 %d 分\n", repo.Topics, repo.Description, assessment.StructureScore)
		if len(detail.Degraded) > 0 {
			fmt.Printf("    ⚠️ 获取失败按 0 分处理: %s\n", strings.Join(detail.Degraded, ", "))
		}
		fmt.Println()
	}
}
