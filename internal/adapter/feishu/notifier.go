package feishu

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github-portfolio-auditor/internal/common"
	"github-portfolio-auditor/internal/domain"
)

// 卡片里最多展示的建议条数
const maxCardRecommendations = 3

// errClientStatus 4xx 重试也没用
var errClientStatus = errors.New("飞书 API 拒绝请求")

type Notifier struct {
	webhookURL string
	httpClient *http.Client
	retryDelay time.Duration
}

func NewNotifier(webhook string) *Notifier {
	if webhook == "" {
		log.Println("⚠️ 警告: 飞书 Webhook 为空，推送功能将无法工作！")
	}
	return &Notifier{
		webhookURL: webhook,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		retryDelay: 500 * time.Millisecond,
	}
}

// Notify 发送飞书卡片消息 (Schema 2.0)
func (n *Notifier) Notify(ctx context.Context, result *domain.AnalysisResult) error {
	if n.webhookURL == "" {
		return fmt.Errorf("Webhook URL 为空")
	}
	if result == nil {
		return fmt.Errorf("报告为空")
	}

	body, err := json.Marshal(buildCard(result))
	if err != nil {
		return fmt.Errorf("序列化卡片失败: %w", err)
	}

	// 发送请求 (带重试机制，4xx 不重试)
	err = common.Do(ctx, func() error {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
		if reqErr != nil {
			return reqErr
		}
		req.Header.Set("Content-Type", "application/json")

		resp, postErr := n.httpClient.Do(req)
		if postErr != nil {
			return postErr
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return fmt.Errorf("%w: 飞书 API 报错: 状态码 %d", errClientStatus, resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("飞书 API 报错: 状态码 %d", resp.StatusCode)
		}
		return nil
	},
		common.WithMaxRetries(3),
		common.WithInitialDelay(n.retryDelay),
		common.WithRetryIf(func(err error) bool { return !errors.Is(err, errClientStatus) }),
	)
	if err != nil {
		return fmt.Errorf("发送请求失败: %w", err)
	}

	return nil
}

// buildCard 构造 Schema 2.0 卡片，B 及以上用绿色，否则用橙色
func buildCard(result *domain.AnalysisResult) map[string]interface{} {
	title := fmt.Sprintf("📊 GitHub 作品集报告: %s", result.Username)

	template := "orange"
	if result.IsStrong() {
		template = "green"
	}

	return map[string]interface{}{
		"msg_type": "interactive",
		"card": map[string]interface{}{
			"schema": "2.0",
			"config": map[string]interface{}{
				"update_multi": true,
			},
			"header": map[string]interface{}{
				"title": map[string]interface{}{
					"tag":     "plain_text",
					"content": title,
				},
				"template": template,
			},
			"body": map[string]interface{}{
				"direction": "vertical",
				"elements": []map[string]interface{}{
					{
						"tag":       "markdown",
						"content":   buildMarkdown(result),
						"text_size": "normal",
					},
					{
						"tag": "button",
						"text": map[string]interface{}{
							"tag":     "plain_text",
							"content": "🔗 查看主页",
						},
						"type": "primary",
						"behaviors": []map[string]interface{}{
							{
								"type":        "open_url",
								"default_url": "https://github.com/" + result.Username,
							},
						},
					},
				},
			},
		},
	}
}

func buildMarkdown(result *domain.AnalysisResult) string {
	var b strings.Builder
	m := result.Metrics

	fmt.Fprintf(&b, "**🏆 总分:** %.1f/100  |  **等级:** %s (%s)\n", result.OverallScore, result.Grade, result.GradeDescription)
	fmt.Fprintf(&b, "**👥 Followers:** %d  |  **公开仓库:** %d\n\n", result.Profile.Followers, result.Profile.PublicRepos)

	b.WriteString("**📐 各项指标:**\n")
	fmt.Fprintf(&b, "- 文档质量: %.1f\n", m.DocumentationQuality)
	fmt.Fprintf(&b, "- 代码结构: %.1f\n", m.CodeStructure)
	fmt.Fprintf(&b, "- 活跃度: %.1f\n", m.ActivityConsistency)
	fmt.Fprintf(&b, "- 仓库组织: %.1f\n", m.RepositoryOrganization)
	fmt.Fprintf(&b, "- 影响力: %.1f\n", m.ProjectImpact)
	fmt.Fprintf(&b, "- 技术广度: %.1f\n", m.TechnicalDepth)

	if len(result.Languages) > 0 {
		langs := make([]string, 0, len(result.Languages))
		for _, l := range result.Languages {
			langs = append(langs, fmt.Sprintf("%s (%d)", l.Name, l.Count))
		}
		fmt.Fprintf(&b, "\n**💻 主要语言:** %s\n", strings.Join(langs, ", "))
	}

	if len(result.Strengths) > 0 {
		b.WriteString("\n**✅ 亮点:**\n")
		for _, s := range result.Strengths {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}

	if len(result.RedFlags) > 0 {
		b.WriteString("\n**🚩 风险:**\n")
		for _, f := range result.RedFlags {
			fmt.Fprintf(&b, "- %s\n", f)
		}
	}

	if len(result.Recommendations) > 0 {
		b.WriteString("\n**🛠 改进建议:**\n")
		for i, r := range result.Recommendations {
			if i == maxCardRecommendations {
				break
			}
			fmt.Fprintf(&b, "- [%s] %s: %s\n", r.Priority, r.Issue, r.Action)
		}
	}

	if result.Narrative != "" {
		fmt.Fprintf(&b, "\n**🤖 AI点评:**\n%s\n", result.Narrative)
	}

	return b.String()
}
