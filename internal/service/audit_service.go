package service

import (
	"context"
	"log"

	"github-portfolio-auditor/internal/common"
	"github-portfolio-auditor/internal/domain"
	"github-portfolio-auditor/internal/port"
	"github-portfolio-auditor/internal/scoring"
)

// AuditService 处理一次完整的作品集分析
type AuditService struct {
	newFetcher port.FetcherFactory
	filter     port.Filter
	analyzer   port.Analyzer
	narrator   port.Narrator // 可选
	notifier   port.Notifier // 可选
}

// PublishOptions 报告生成后的可选步骤
type PublishOptions struct {
	Narrate bool
	Notify  bool
}

// NewAuditService 创建新的分析服务，narrator 和 notifier 可以为 nil
func NewAuditService(
	newFetcher port.FetcherFactory,
	filter port.Filter,
	analyzer port.Analyzer,
	narrator port.Narrator,
	notifier port.Notifier,
) *AuditService {
	return &AuditService{
		newFetcher: newFetcher,
		filter:     filter,
		analyzer:   analyzer,
		narrator:   narrator,
		notifier:   notifier,
	}
}

// Analyze 分析一个 GitHub 用户的公开作品集
// token 为空时匿名访问；返回的错误都是 *common.AppError
func (s *AuditService) Analyze(ctx context.Context, username, token string) (*domain.AnalysisResult, error) {
	fetcher := s.newFetcher(token)

	// 1. 用户资料
	profile, err := fetcher.GetProfile(ctx, username)
	if err != nil {
		log.Printf("❌ 获取用户 %s 失败: %v", username, err)
		return nil, common.WrapError(common.ErrCodeUserFetch, common.MsgUserFetchFailed, err)
	}

	// 2. 仓库列表
	repos, err := fetcher.ListRepositories(ctx, username)
	if err != nil {
		log.Printf("❌ 获取 %s 的仓库列表失败: %v", username, err)
		return nil, common.WrapError(common.ErrCodeRepoFetch, common.MsgRepoFetchFailed, err)
	}
	if len(repos) == 0 {
		return nil, common.NewError(common.ErrCodeNoRepos, common.MsgNoRepositories)
	}

	// 3. 挑选仓库 (只看最近的 10 个，去掉 fork)
	selected := s.filter.SelectForAssessment(repos, scoring.MaxAssessedRepos)
	if len(selected) == 0 {
		log.Printf("⚠️ %s 最近的仓库全是 fork，仓库相关指标记为 0", username)
	}

	// 4. 单仓库评估
	assessments, err := s.analyzer.AssessAll(ctx, fetcher, username, selected)
	if err != nil {
		return nil, common.WrapError(common.ErrCodeInternal, common.MsgAnalysisAborted, err)
	}

	// 5. 汇总 + 报告
	portfolio := scoring.Aggregate(profile, assessments)
	result := scoring.BuildReport(profile, portfolio)

	log.Printf("✅ %s 分析完成: %.1f 分 (%s)\n", username, result.OverallScore, result.Grade)
	return result, nil
}

// Publish 给报告加上 AI 点评并推送通知
// 两步都是锦上添花，失败只记录日志，不影响报告本身
func (s *AuditService) Publish(ctx context.Context, result *domain.AnalysisResult, opts PublishOptions) {
	if result == nil {
		return
	}

	if opts.Narrate {
		if s.narrator == nil {
			log.Printf("⚠️ 未配置 AI，跳过点评")
		} else if narrative, err := s.narrator.Narrate(ctx, result); err != nil {
			log.Printf("⚠️ %v", common.WrapError(common.ErrCodeAIProcessing, "AI 点评失败", err))
		} else {
			result.Narrative = narrative
		}
	}

	if opts.Notify {
		if s.notifier == nil {
			log.Printf("⚠️ 未配置通知通道，跳过推送 %s 的报告", result.Username)
		} else if err := s.notifier.Notify(ctx, result); err != nil {
			log.Printf("❌ %v", common.WrapError(common.ErrCodeNotification, "推送报告失败", err))
		} else {
			log.Printf("📨 已推送 %s 的报告\n", result.Username)
		}
	}
}
