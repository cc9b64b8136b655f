package feishu

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github-portfolio-auditor/internal/domain"
	"github-portfolio-auditor/internal/scoring"

	"github.com/stretchr/testify/assert"
)

// mockFeishuServer 创建模拟的飞书 Webhook 服务器
func mockFeishuServer(t *testing.T, statusCode int, validatePayload func(*testing.T, map[string]interface{})) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 验证请求方法
		assert.Equal(t, http.MethodPost, r.Method)

		// 验证 Content-Type
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		// 读取并解析请求体
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)

		var payload map[string]interface{}
		err = json.Unmarshal(body, &payload)
		assert.NoError(t, err)

		// 如果提供了验证函数，执行验证
		if validatePayload != nil {
			validatePayload(t, payload)
		}

		// 返回指定的状态码
		w.WriteHeader(statusCode)
		w.Write([]byte(`{"code": 0, "msg": "success"}`))
	}))
}

func newTestNotifier(url string) *Notifier {
	n := NewNotifier(url)
	n.retryDelay = time.Millisecond
	return n
}

func sampleResult(score float64) *domain.AnalysisResult {
	grade := scoring.GradeFor(score)
	return &domain.AnalysisResult{
		Username:         "octocat",
		OverallScore:     score,
		Grade:            grade.Letter,
		GradeDescription: grade.Description,
		Profile:          domain.ProfileSummary{Followers: 120, PublicRepos: 8},
		Metrics: domain.PortfolioMetrics{
			DocumentationQuality: 72.5,
			TechnicalDepth:       60,
		},
		Languages: []domain.LanguageCount{{Name: "Go", Count: 4}, {Name: "Rust", Count: 1}},
		Strengths: []string{"Strong documentation practices"},
		RedFlags:  []string{"⚠️ Very few followers (less than 10)"},
		Recommendations: []domain.Recommendation{
			{Priority: domain.PriorityHigh, Issue: "i1", Action: "a1"},
			{Priority: domain.PriorityMedium, Issue: "i2", Action: "a2"},
			{Priority: domain.PriorityLow, Issue: "i3", Action: "a3"},
			{Priority: domain.PriorityLow, Issue: "i4", Action: "a4"},
		},
	}
}

func TestNotifier_Notify(t *testing.T) {
	tests := []struct {
		name            string
		result          *domain.AnalysisResult
		validatePayload func(*testing.T, map[string]interface{})
	}{
		{
			name:   "高分报告使用绿色卡片",
			result: sampleResult(72.4),
			validatePayload: func(t *testing.T, payload map[string]interface{}) {
				assert.Equal(t, "interactive", payload["msg_type"])

				card := payload["card"].(map[string]interface{})
				assert.Equal(t, "2.0", card["schema"])

				header := card["header"].(map[string]interface{})
				assert.Equal(t, "green", header["template"])
				title := header["title"].(map[string]interface{})
				assert.Contains(t, title["content"], "octocat")

				body := card["body"].(map[string]interface{})
				elements := body["elements"].([]interface{})
				assert.Equal(t, 2, len(elements)) // markdown + button
			},
		},
		{
			name:   "低分报告使用橙色卡片",
			result: sampleResult(41),
			validatePayload: func(t *testing.T, payload map[string]interface{}) {
				card := payload["card"].(map[string]interface{})
				header := card["header"].(map[string]interface{})
				assert.Equal(t, "orange", header["template"])
			},
		},
		{
			name: "显示 60 分但等级 C+ 仍是橙色",
			result: func() *domain.AnalysisResult {
				r := sampleResult(59.96)
				r.OverallScore = 60.0
				return r
			}(),
			validatePayload: func(t *testing.T, payload map[string]interface{}) {
				card := payload["card"].(map[string]interface{})
				header := card["header"].(map[string]interface{})
				assert.Equal(t, "orange", header["template"])
			},
		},
		{
			name:   "Markdown 内容",
			result: sampleResult(72.4),
			validatePayload: func(t *testing.T, payload map[string]interface{}) {
				card := payload["card"].(map[string]interface{})
				body := card["body"].(map[string]interface{})
				elements := body["elements"].([]interface{})

				markdown := elements[0].(map[string]interface{})
				assert.Equal(t, "markdown", markdown["tag"])
				content := markdown["content"].(string)
				assert.Contains(t, content, "72.4/100")
				assert.Contains(t, content, "B+ (Very Good)")
				assert.Contains(t, content, "文档质量: 72.5")
				assert.Contains(t, content, "Go (4), Rust (1)")
				assert.Contains(t, content, "Strong documentation practices")
				assert.Contains(t, content, "Very few followers")
				assert.Contains(t, content, "[High] i1: a1")
				assert.Contains(t, content, "[Low] i3: a3")
				assert.NotContains(t, content, "i4")
				assert.NotContains(t, content, "AI点评")

				button := elements[1].(map[string]interface{})
				behaviors := button["behaviors"].([]interface{})
				behavior := behaviors[0].(map[string]interface{})
				assert.Equal(t, "open_url", behavior["type"])
				assert.Equal(t, "https://github.com/octocat", behavior["default_url"])
			},
		},
		{
			name: "包含 AI 点评",
			result: func() *domain.AnalysisResult {
				r := sampleResult(80)
				r.Narrative = "Reads like a backend engineer."
				return r
			}(),
			validatePayload: func(t *testing.T, payload map[string]interface{}) {
				card := payload["card"].(map[string]interface{})
				body := card["body"].(map[string]interface{})
				elements := body["elements"].([]interface{})
				content := elements[0].(map[string]interface{})["content"].(string)
				assert.Contains(t, content, "Reads like a backend engineer.")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := mockFeishuServer(t, http.StatusOK, tt.validatePayload)
			defer server.Close()

			err := newTestNotifier(server.URL).Notify(context.Background(), tt.result)
			assert.NoError(t, err)
		})
	}
}

func TestNotifier_Notify_ErrorCases(t *testing.T) {
	tests := []struct {
		name           string
		setupNotifier  func() *Notifier
		result         *domain.AnalysisResult
		errorSubstring string
	}{
		{
			name: "Webhook URL 为空",
			setupNotifier: func() *Notifier {
				return NewNotifier("")
			},
			result:         sampleResult(50),
			errorSubstring: "Webhook URL 为空",
		},
		{
			name: "报告为空",
			setupNotifier: func() *Notifier {
				return NewNotifier("http://localhost")
			},
			errorSubstring: "报告为空",
		},
		{
			name: "飞书 API 返回 400 错误",
			setupNotifier: func() *Notifier {
				server := mockFeishuServer(t, http.StatusBadRequest, nil)
				t.Cleanup(server.Close)
				return newTestNotifier(server.URL)
			},
			result:         sampleResult(50),
			errorSubstring: "飞书 API 报错",
		},
		{
			name: "飞书 API 返回 500 错误",
			setupNotifier: func() *Notifier {
				server := mockFeishuServer(t, http.StatusInternalServerError, nil)
				t.Cleanup(server.Close)
				return newTestNotifier(server.URL)
			},
			result:         sampleResult(50),
			errorSubstring: "飞书 API 报错",
		},
		{
			name: "无效的 Webhook URL",
			setupNotifier: func() *Notifier {
				return newTestNotifier("http://invalid-url-that-does-not-exist-12345.invalid")
			},
			result:         sampleResult(50),
			errorSubstring: "发送请求失败",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.setupNotifier().Notify(context.Background(), tt.result)

			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorSubstring)
		})
	}
}

func TestNotifier_Notify_RetryPolicy(t *testing.T) {
	tests := []struct {
		name          string
		statusCode    int
		expectedCalls int32
	}{
		{name: "4xx 不重试", statusCode: http.StatusForbidden, expectedCalls: 1},
		{name: "5xx 重试 3 次", statusCode: http.StatusBadGateway, expectedCalls: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.WriteHeader(tt.statusCode)
			}))
			defer server.Close()

			err := newTestNotifier(server.URL).Notify(context.Background(), sampleResult(50))

			assert.Error(t, err)
			assert.Equal(t, tt.expectedCalls, atomic.LoadInt32(&calls))
		})
	}
}

func TestNotifier_Notify_ContextCancellation(t *testing.T) {
	// 创建一个慢速服务器
	slowServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer slowServer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := newTestNotifier(slowServer.URL).Notify(ctx, sampleResult(50))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "发送请求失败")
}

func TestNewNotifier(t *testing.T) {
	n := NewNotifier("https://open.feishu.cn/open-apis/bot/v2/hook/test-hook")
	assert.Equal(t, "https://open.feishu.cn/open-apis/bot/v2/hook/test-hook", n.webhookURL)
	assert.NotNil(t, n.httpClient)

	n = NewNotifier("")
	assert.Equal(t, "", n.webhookURL)
}
