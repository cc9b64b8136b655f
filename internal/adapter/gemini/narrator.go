package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github-portfolio-auditor/internal/domain"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel 默认使用的模型
const DefaultModel = "gemini-2.5-flash-lite"

// GeminiNarrator 实现了 port.Narrator 接口
// 只负责写点评，分数和建议仍然由规则引擎给出
type GeminiNarrator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// 定义一个内部结构体来接收 AI 返回的 JSON
type aiResponse struct {
	Summary  string `json:"summary"`
	NextStep string `json:"next_step"`
}

func NewGeminiNarrator(ctx context.Context, apiKey, modelName string) (*GeminiNarrator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	if modelName == "" {
		modelName = DefaultModel
	}
	model := client.GenerativeModel(modelName)
	// 强制要求返回 JSON，降低解析错误的概率
	model.ResponseMIMEType = "application/json"

	return &GeminiNarrator{
		client: client,
		model:  model,
	}, nil
}

// Close 释放底层连接
func (g *GeminiNarrator) Close() error {
	return g.client.Close()
}

func (g *GeminiNarrator) Narrate(ctx context.Context, result *domain.AnalysisResult) (string, error) {
	// 1. 构造 Prompt
	prompt := buildPrompt(result)

	// 2. 调用 AI
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("AI 调用失败: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("AI 返回内容为空")
	}

	// 3. 解析结果
	part := resp.Candidates[0].Content.Parts[0]
	text, ok := part.(genai.Text)
	if !ok {
		return "", fmt.Errorf("AI 返回格式错误")
	}

	res, err := parseAIResponse(string(text))
	if err != nil {
		return "", err
	}

	return res.narrative(), nil
}

func buildPrompt(result *domain.AnalysisResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, `
You are a senior engineering hiring manager reviewing a candidate's public GitHub portfolio.
The portfolio has already been scored by a rule-based auditor. Do not change any numbers.

Username: %s
Overall score: %.1f / 100 (grade %s, %s)
Documentation quality: %.1f
Code structure: %.1f
Activity consistency: %.1f
Repository organization: %.1f
Project impact: %.1f
Technical depth: %.1f
`,
		result.Username, result.OverallScore, result.Grade, result.GradeDescription,
		result.Metrics.DocumentationQuality, result.Metrics.CodeStructure,
		result.Metrics.ActivityConsistency, result.Metrics.RepositoryOrganization,
		result.Metrics.ProjectImpact, result.Metrics.TechnicalDepth)

	if len(result.Languages) > 0 {
		names := make([]string, 0, len(result.Languages))
		for _, l := range result.Languages {
			names = append(names, l.Name)
		}
		fmt.Fprintf(&b, "Top languages: %s\n", strings.Join(names, ", "))
	}
	for _, s := range result.Strengths {
		fmt.Fprintf(&b, "Strength: %s\n", s)
	}
	for _, f := range result.RedFlags {
		fmt.Fprintf(&b, "Red flag: %s\n", f)
	}
	for _, r := range result.Recommendations {
		fmt.Fprintf(&b, "Recommendation [%s]: %s\n", r.Priority, r.Issue)
	}

	b.WriteString(`
Return strictly a JSON object with these fields:
1. summary: two or three sentences on how this portfolio reads to a recruiter.
2. next_step: the single most valuable thing the candidate should do next.

Return only JSON, without Markdown code fences.
`)
	return b.String()
}

// parseAIResponse 从 AI 原文中抠出 JSON
// 即使 AI 返回 "```json { ... } \n ```"，也能取出中间的 { ... }
func parseAIResponse(raw string) (*aiResponse, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")

	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("无法提取 JSON, AI 原文: %s", raw)
	}

	cleanJSON := raw[start : end+1]

	var res aiResponse
	if err := json.Unmarshal([]byte(cleanJSON), &res); err != nil {
		return nil, fmt.Errorf("JSON 解析失败: %s | 原文: %s", err, cleanJSON)
	}
	if strings.TrimSpace(res.Summary) == "" {
		return nil, fmt.Errorf("AI 点评为空 | 原文: %s", cleanJSON)
	}

	return &res, nil
}

func (r *aiResponse) narrative() string {
	summary := strings.TrimSpace(r.Summary)
	next := strings.TrimSpace(r.NextStep)
	if next == "" {
		return summary
	}
	return summary + "\n\nNext step: " + next
}
