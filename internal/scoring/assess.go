// Package scoring 是作品集评分的核心：单仓库评估、跨仓库汇总、建议生成和报告组装。
// 这里全部是纯函数，不做任何网络 I/O。
package scoring

import (
	"time"

	"github-portfolio-auditor/internal/domain"
)

// SubScoreCap 单仓库三个子分数的上限
const SubScoreCap = 50

// 提交时间跨度只看最近的 20 条
const commitSampleSize = 20

// marker 是根目录下的一个"专业度"标志，命中任意一个文件名即可得分
type marker struct {
	name  string
	files []string
}

// structureMarkers 每命中一项 +5，共 6 项
var structureMarkers = []marker{
	{name: "ignore-file", files: []string{".gitignore"}},
	{name: "license", files: []string{"LICENSE", "LICENSE.md", "LICENSE.txt"}},
	{name: "contributing", files: []string{"CONTRIBUTING.md"}},
	{name: "manifest", files: []string{
		"requirements.txt", "package.json", "go.mod", "Cargo.toml", "pom.xml",
		"pyproject.toml", "Gemfile", "composer.json", "build.gradle",
	}},
	{name: "container", files: []string{"Dockerfile"}},
	{name: "ci", files: []string{".github/workflows"}},
}

// Assess 根据仓库记录和详情计算单仓库评估结果
// detail 为 nil 时视为所有详情查询都失败
func Assess(record *domain.RepoRecord, detail *domain.RepoDetail) *domain.RepoAssessment {
	if detail == nil {
		detail = &domain.RepoDetail{}
	}

	return &domain.RepoAssessment{
		Name:           record.Name,
		Description:    record.Description,
		Stars:          record.Stars,
		Forks:          record.Forks,
		Language:       record.Language,
		UpdatedAt:      record.UpdatedAt,
		ReadmeScore:    ScoreReadme(detail.ReadmeFound, detail.ReadmeSize),
		CommitScore:    ScoreActivity(detail.Commits),
		StructureScore: ScoreStructure(record, detail.Entries),
	}
}

// ScoreReadme 文档子分数
// size 是 API 返回的原始大小，只是内容长度的近似值
func ScoreReadme(found bool, size int) int {
	if !found {
		return 0
	}

	score := 20
	if size > 1000 {
		score += 20
	}
	if size > 3000 {
		score += 10
	}
	return clamp(score, SubScoreCap)
}

// ScoreActivity 活跃度子分数 = 提交数量档位 + 最近提交的时间跨度
func ScoreActivity(commits []domain.Commit) int {
	score := 0

	// 数量只取最高的一档
	switch n := len(commits); {
	case n >= 50:
		score += 30
	case n >= 20:
		score += 20
	case n >= 5:
		score += 10
	}

	days, ok := commitSpanDays(commits)
	if ok {
		if days > 30 {
			score += 10
		}
		if days > 90 {
			score += 10
		}
	}

	return clamp(score, SubScoreCap)
}

// commitSpanDays 计算最近 20 条提交中最早与最晚之间的整天数
// 能解析的日期少于 2 个时返回 false
func commitSpanDays(commits []domain.Commit) (int, bool) {
	sample := commits
	if len(sample) > commitSampleSize {
		sample = sample[:commitSampleSize]
	}

	var oldest, newest time.Time
	parsed := 0
	for _, c := range sample {
		t, err := time.Parse(time.RFC3339, c.AuthorDate)
		if err != nil {
			continue
		}
		if parsed == 0 || t.Before(oldest) {
			oldest = t
		}
		if parsed == 0 || t.After(newest) {
			newest = t
		}
		parsed++
	}

	if parsed < 2 {
		return 0, false
	}
	return int(newest.Sub(oldest) / (24 * time.Hour)), true
}

// ScoreStructure 结构子分数
// entries 为 nil (目录查询失败) 时只有 topics 和描述两项能得分
func ScoreStructure(record *domain.RepoRecord, entries []string) int {
	present := make(map[string]bool, len(entries))
	for _, e := range entries {
		present[e] = true
	}

	score := 0
	for _, m := range structureMarkers {
		for _, f := range m.files {
			if present[f] {
				score += 5
				break
			}
		}
	}

	if len(record.Topics) > 0 {
		score += 10
	}
	if record.Description != "" {
		score += 10
	}
	return clamp(score, SubScoreCap)
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
