package github

import (
	"context"
	"fmt"
	"log"
	"time"

	"github-portfolio-auditor/internal/domain"

	"github.com/google/go-github/v53/github"
)

// 单次提交列表请求的上限
const maxCommitsPerPage = 100

// workflowsEntry 根目录列表里用它表示存在 .github/workflows
const workflowsEntry = ".github/workflows"

// GetReadme 获取 README 元数据，size 是 API 返回的原始大小
// 仓库没有 README 时返回 found=false 且没有错误
func (c *Client) GetReadme(ctx context.Context, owner, repo string) (bool, int, error) {
	content, _, err := c.client.Repositories.GetReadme(ctx, owner, repo, nil)
	if err != nil {
		if isNotFound(err) {
			return false, 0, nil
		}
		return false, 0, fmt.Errorf("获取 %s/%s 的 README 失败: %w", owner, repo, err)
	}
	return true, content.GetSize(), nil
}

// GetCommits 获取最近的提交，最新的在前
func (c *Client) GetCommits(ctx context.Context, owner, repo string, limit int) ([]domain.Commit, error) {
	if limit <= 0 || limit > maxCommitsPerPage {
		limit = maxCommitsPerPage
	}

	items, _, err := c.client.Repositories.ListCommits(ctx, owner, repo, &github.CommitsListOptions{
		ListOptions: github.ListOptions{PerPage: limit},
	})
	if err != nil {
		return nil, fmt.Errorf("获取 %s/%s 的提交列表失败: %w", owner, repo, err)
	}

	commits := make([]domain.Commit, 0, len(items))
	for _, item := range items {
		// 缺少作者时间的提交保留为空字符串，评分时会被跳过
		var date string
		if author := item.GetCommit().GetAuthor(); author != nil && author.Date != nil {
			date = author.Date.UTC().Format(time.RFC3339)
		}
		commits = append(commits, domain.Commit{AuthorDate: date})
		if len(commits) == limit {
			break
		}
	}

	return commits, nil
}

// GetContents 获取根目录的文件/目录名
// 如果存在 .github/workflows，额外追加一项 ".github/workflows"
func (c *Client) GetContents(ctx context.Context, owner, repo string) ([]string, error) {
	_, dir, _, err := c.client.Repositories.GetContents(ctx, owner, repo, "", nil)
	if err != nil {
		return nil, fmt.Errorf("获取 %s/%s 的目录失败: %w", owner, repo, err)
	}

	entries := make([]string, 0, len(dir)+1)
	hasGitHubDir := false
	for _, item := range dir {
		entries = append(entries, item.GetName())
		if item.GetName() == ".github" && item.GetType() == "dir" {
			hasGitHubDir = true
		}
	}

	if hasGitHubDir {
		found, err := c.hasWorkflows(ctx, owner, repo)
		if err != nil {
			log.Printf("[GitHub] 检查 %s/%s 的 .github 目录失败: %v", owner, repo, err)
		} else if found {
			entries = append(entries, workflowsEntry)
		}
	}

	return entries, nil
}

func (c *Client) hasWorkflows(ctx context.Context, owner, repo string) (bool, error) {
	_, dir, _, err := c.client.Repositories.GetContents(ctx, owner, repo, ".github", nil)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	for _, item := range dir {
		if item.GetName() == "workflows" && item.GetType() == "dir" {
			return true, nil
		}
	}
	return false, nil
}
