package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github-portfolio-auditor/internal/common"
	"github-portfolio-auditor/internal/domain"

	"github.com/google/go-github/v53/github"
	"golang.org/x/oauth2"
)

// 仓库列表单页上限，只取一页
const reposPerPage = 100

// Client 实现了 port.MetadataFetcher 接口
// scouter.go 负责用户和仓库列表 (失败即致命，带重试)，fetcher.go 负责单仓库详情 (失败即退化)
type Client struct {
	client     *github.Client
	retries    int
	retryDelay time.Duration
}

// Option 配置 Client
type Option func(*Client)

// WithRetries 设置用户/仓库列表请求的重试次数
func WithRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retries = n
		}
	}
}

// WithRetryDelay 设置第一次重试前的等待时间
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.retryDelay = d
		}
	}
}

// NewClient 初始化 GitHub 客户端
// token: GitHub Personal Access Token (如果是空字符串，就是匿名访问，限制 60次/小时)
func NewClient(token string, opts ...Option) *Client {
	var client *github.Client

	if token == "" {
		client = github.NewClient(nil)
	} else {
		ctx := context.Background()
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		tc := oauth2.NewClient(ctx, ts)
		client = github.NewClient(tc)
	}

	c := &Client{
		client:     client,
		retries:    2,
		retryDelay: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetProfile 获取用户资料
func (c *Client) GetProfile(ctx context.Context, username string) (*domain.Profile, error) {
	var user *github.User
	err := common.Do(ctx, func() error {
		var apiErr error
		user, _, apiErr = c.client.Users.Get(ctx, username)
		return apiErr
	}, c.retryOptions()...)
	if err != nil {
		return nil, fmt.Errorf("获取用户 %s 失败: %w", username, err)
	}

	return &domain.Profile{
		Username:    username,
		Name:        user.GetName(),
		Bio:         user.GetBio(),
		AvatarURL:   user.GetAvatarURL(),
		PublicRepos: user.GetPublicRepos(),
		Followers:   user.GetFollowers(),
		Following:   user.GetFollowing(),
		CreatedAt:   user.GetCreatedAt().Time,
		Location:    user.GetLocation(),
		Blog:        user.GetBlog(),
		Email:       user.GetEmail(),
	}, nil
}

// ListRepositories 获取用户的公开仓库，按最近更新时间倒序，只取第一页
func (c *Client) ListRepositories(ctx context.Context, username string) ([]*domain.RepoRecord, error) {
	opts := &github.RepositoryListOptions{
		Sort:      "updated",
		Direction: "desc",
		ListOptions: github.ListOptions{
			PerPage: reposPerPage,
		},
	}

	var items []*github.Repository
	err := common.Do(ctx, func() error {
		var apiErr error
		items, _, apiErr = c.client.Repositories.List(ctx, username, opts)
		return apiErr
	}, c.retryOptions()...)
	if err != nil {
		return nil, fmt.Errorf("获取 %s 的仓库列表失败: %w", username, err)
	}

	// 将 GitHub 的数据结构转换为我们的 Domain 实体 (DTO 转换)
	repos := make([]*domain.RepoRecord, 0, len(items))
	for _, item := range items {
		repos = append(repos, &domain.RepoRecord{
			Name:        item.GetName(),
			Description: item.GetDescription(),
			Stars:       item.GetStargazersCount(),
			Forks:       item.GetForksCount(),
			Language:    item.GetLanguage(),
			UpdatedAt:   item.GetUpdatedAt().Time,
			IsFork:      item.GetFork(),
			Topics:      item.Topics,
		})
	}

	return repos, nil
}

func (c *Client) retryOptions() []common.Option {
	return []common.Option{
		common.WithMaxRetries(c.retries),
		common.WithInitialDelay(c.retryDelay),
		common.WithRetryIf(isTransient),
	}
}

// isTransient 只有网络错误和 5xx 值得重试
// 404 是最终结果；限流直接失败，不做退避等待
func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return false
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		return respErr.Response.StatusCode >= http.StatusInternalServerError
	}

	return true
}

// isNotFound 判断是否为 404
func isNotFound(err error) bool {
	var respErr *github.ErrorResponse
	return errors.As(err, &respErr) && respErr.Response != nil &&
		respErr.Response.StatusCode == http.StatusNotFound
}
