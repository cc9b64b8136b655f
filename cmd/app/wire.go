package main

import (
	"context"
	"log"

	"github-portfolio-auditor/internal/adapter/analyzer"
	"github-portfolio-auditor/internal/adapter/feishu"
	"github-portfolio-auditor/internal/adapter/filter"
	"github-portfolio-auditor/internal/adapter/gemini"
	"github-portfolio-auditor/internal/adapter/github"
	"github-portfolio-auditor/internal/config"
	"github-portfolio-auditor/internal/port"
	"github-portfolio-auditor/internal/service"
)

// buildService 按配置组装分析服务
// AI 点评和飞书推送是可选的，没有配置密钥时不创建
// 返回的 cleanup 负责关闭 AI 客户端
func buildService(ctx context.Context, cfg *config.Config, wantNarrator bool) (*service.AuditService, func()) {
	newFetcher := func(token string) port.MetadataFetcher {
		return github.NewClient(token, github.WithRetries(cfg.Retries))
	}

	repoFilter := filter.NewRepoFilter(cfg.Verbose)

	repoAnalyzer := analyzer.NewRepoAnalyzer()
	repoAnalyzer.SetMaxGoroutines(cfg.Workers)
	repoAnalyzer.SetRepoTimeout(cfg.RepoTimeout)

	cleanup := func() {}

	// 接口变量保持 nil，避免把 nil 指针装进接口
	var narrator port.Narrator
	if wantNarrator {
		if cfg.GeminiAPIKey == "" {
			log.Println("⚠️ 未设置 GEMINI_API_KEY，跳过 AI 点评")
		} else {
			gn, err := gemini.NewGeminiNarrator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
			if err != nil {
				log.Printf("⚠️ AI 初始化失败，跳过 AI 点评: %v", err)
			} else {
				narrator = gn
				cleanup = func() { _ = gn.Close() }
			}
		}
	}

	var notifier port.Notifier
	if cfg.FeishuWebhook != "" {
		notifier = feishu.NewNotifier(cfg.FeishuWebhook)
	}

	return service.NewAuditService(newFetcher, repoFilter, repoAnalyzer, narrator, notifier), cleanup
}
