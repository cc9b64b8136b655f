package analyzer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github-portfolio-auditor/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFetcher 模拟 MetadataFetcher 接口
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) GetProfile(ctx context.Context, username string) (*domain.Profile, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockFetcher) ListRepositories(ctx context.Context, username string) ([]*domain.RepoRecord, error) {
	args := m.Called(ctx, username)
	return args.Get(0).([]*domain.RepoRecord), args.Error(1)
}

func (m *MockFetcher) GetReadme(ctx context.Context, owner, repo string) (bool, int, error) {
	args := m.Called(ctx, owner, repo)
	return args.Bool(0), args.Int(1), args.Error(2)
}

func (m *MockFetcher) GetCommits(ctx context.Context, owner, repo string, limit int) ([]domain.Commit, error) {
	args := m.Called(ctx, owner, repo, limit)
	return args.Get(0).([]domain.Commit), args.Error(1)
}

func (m *MockFetcher) GetContents(ctx context.Context, owner, repo string) ([]string, error) {
	args := m.Called(ctx, owner, repo)
	return args.Get(0).([]string), args.Error(1)
}

// commitsSpanning 生成 n 条提交，最新的在前，相邻间隔 step
func commitsSpanning(n int, step time.Duration) []domain.Commit {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	commits := make([]domain.Commit, 0, n)
	for i := 0; i < n; i++ {
		commits = append(commits, domain.Commit{AuthorDate: base.Add(-time.Duration(i) * step).Format(time.RFC3339)})
	}
	return commits
}

func TestFetchDetail(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(*MockFetcher)
		verify    func(*testing.T, *domain.RepoDetail)
	}{
		{
			name: "三项都成功",
			setupMock: func(mf *MockFetcher) {
				mf.On("GetReadme", mock.Anything, "octocat", "hello").Return(true, 4000, nil)
				mf.On("GetCommits", mock.Anything, "octocat", "hello", commitFetchLimit).Return(commitsSpanning(3, time.Hour), nil)
				mf.On("GetContents", mock.Anything, "octocat", "hello").Return([]string{"go.mod"}, nil)
			},
			verify: func(t *testing.T, d *domain.RepoDetail) {
				assert.True(t, d.ReadmeFound)
				assert.Equal(t, 4000, d.ReadmeSize)
				assert.Len(t, d.Commits, 3)
				assert.Equal(t, []string{"go.mod"}, d.Entries)
				assert.Empty(t, d.Degraded)
			},
		},
		{
			name: "提交查询失败只影响提交",
			setupMock: func(mf *MockFetcher) {
				mf.On("GetReadme", mock.Anything, "octocat", "hello").Return(false, 0, nil)
				mf.On("GetCommits", mock.Anything, "octocat", "hello", commitFetchLimit).Return([]domain.Commit(nil), errors.New("409 empty"))
				mf.On("GetContents", mock.Anything, "octocat", "hello").Return([]string{"LICENSE"}, nil)
			},
			verify: func(t *testing.T, d *domain.RepoDetail) {
				assert.False(t, d.ReadmeFound)
				assert.Nil(t, d.Commits)
				assert.Equal(t, []string{"LICENSE"}, d.Entries)
				assert.Equal(t, []string{domain.LookupCommits}, d.Degraded)
			},
		},
		{
			name: "全部失败",
			setupMock: func(mf *MockFetcher) {
				mf.On("GetReadme", mock.Anything, "octocat", "hello").Return(false, 0, errors.New("boom"))
				mf.On("GetCommits", mock.Anything, "octocat", "hello", commitFetchLimit).Return([]domain.Commit(nil), errors.New("boom"))
				mf.On("GetContents", mock.Anything, "octocat", "hello").Return([]string(nil), errors.New("boom"))
			},
			verify: func(t *testing.T, d *domain.RepoDetail) {
				assert.Equal(t, []string{domain.LookupReadme, domain.LookupCommits, domain.LookupContents}, d.Degraded)
				assert.False(t, d.ReadmeFound)
				assert.Nil(t, d.Entries)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mf := new(MockFetcher)
			tt.setupMock(mf)

			tt.verify(t, FetchDetail(context.Background(), mf, "octocat", "hello"))
			mf.AssertExpectations(t)
		})
	}
}

func TestRepoAnalyzer_AssessAll(t *testing.T) {
	tests := []struct {
		name          string
		repos         []*domain.RepoRecord
		maxGoroutines int
		setupMock     func(*MockFetcher)
		verify        func(*testing.T, []*domain.RepoAssessment)
	}{
		{
			name: "正常评估",
			repos: []*domain.RepoRecord{
				{Name: "full", Description: "A repo", Topics: []string{"go"}, Stars: 3},
			},
			maxGoroutines: 3,
			setupMock: func(mf *MockFetcher) {
				mf.On("GetReadme", mock.Anything, "octocat", "full").Return(true, 5000, nil)
				mf.On("GetCommits", mock.Anything, "octocat", "full", commitFetchLimit).Return(commitsSpanning(60, 6*24*time.Hour), nil)
				mf.On("GetContents", mock.Anything, "octocat", "full").Return(
					[]string{".gitignore", "LICENSE", "CONTRIBUTING.md", "go.mod", "Dockerfile", ".github", ".github/workflows"}, nil)
			},
			verify: func(t *testing.T, result []*domain.RepoAssessment) {
				require.Len(t, result, 1)
				assert.Equal(t, "full", result[0].Name)
				assert.Equal(t, 3, result[0].Stars)
				assert.Equal(t, 50, result[0].ReadmeScore)
				assert.Equal(t, 50, result[0].CommitScore)
				assert.Equal(t, 50, result[0].StructureScore)
			},
		},
		{
			name: "详情失败时子分数为 0 但仍然返回",
			repos: []*domain.RepoRecord{
				{Name: "broken", Description: "still described"},
			},
			maxGoroutines: 1,
			setupMock: func(mf *MockFetcher) {
				mf.On("GetReadme", mock.Anything, "octocat", "broken").Return(false, 0, errors.New("timeout"))
				mf.On("GetCommits", mock.Anything, "octocat", "broken", commitFetchLimit).Return([]domain.Commit(nil), errors.New("timeout"))
				mf.On("GetContents", mock.Anything, "octocat", "broken").Return([]string(nil), errors.New("timeout"))
			},
			verify: func(t *testing.T, result []*domain.RepoAssessment) {
				require.Len(t, result, 1)
				assert.Equal(t, 0, result[0].ReadmeScore)
				assert.Equal(t, 0, result[0].CommitScore)
				assert.Equal(t, 10, result[0].StructureScore)
			},
		},
		{
			name:          "空仓库列表",
			repos:         []*domain.RepoRecord{},
			maxGoroutines: 1,
			setupMock:     func(mf *MockFetcher) {},
			verify: func(t *testing.T, result []*domain.RepoAssessment) {
				assert.NotNil(t, result)
				assert.Empty(t, result)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mf := new(MockFetcher)
			tt.setupMock(mf)

			analyzer := NewRepoAnalyzer()
			analyzer.SetMaxGoroutines(tt.maxGoroutines)

			result, err := analyzer.AssessAll(context.Background(), mf, "octocat", tt.repos)

			assert.NoError(t, err)
			tt.verify(t, result)
			mf.AssertExpectations(t)
		})
	}
}

func TestRepoAnalyzer_AssessAll_PreservesOrder(t *testing.T) {
	mf := new(MockFetcher)
	repos := make([]*domain.RepoRecord, 0, 10)
	for i := 0; i < 10; i++ {
		name := fmt.Sprintf("repo-%d", i)
		repos = append(repos, &domain.RepoRecord{Name: name})

		// 前面的仓库故意更慢
		delay := time.Duration(10-i) * 2 * time.Millisecond
		mf.On("GetReadme", mock.Anything, "octocat", name).After(delay).Return(true, i*1000, nil)
		mf.On("GetCommits", mock.Anything, "octocat", name, commitFetchLimit).Return([]domain.Commit{}, nil)
		mf.On("GetContents", mock.Anything, "octocat", name).Return([]string{}, nil)
	}

	analyzer := NewRepoAnalyzer()
	analyzer.SetMaxGoroutines(4)

	result, err := analyzer.AssessAll(context.Background(), mf, "octocat", repos)

	require.NoError(t, err)
	require.Len(t, result, 10)
	for i, a := range result {
		assert.Equal(t, fmt.Sprintf("repo-%d", i), a.Name)
	}
	assert.Equal(t, 20, result[0].ReadmeScore)
	assert.Equal(t, 50, result[9].ReadmeScore)
}

func TestRepoAnalyzer_AssessAll_Cancelled(t *testing.T) {
	mf := new(MockFetcher)
	mf.On("GetReadme", mock.Anything, "octocat", mock.Anything).Return(true, 10, nil).Maybe()
	mf.On("GetCommits", mock.Anything, "octocat", mock.Anything, commitFetchLimit).Return([]domain.Commit{}, nil).Maybe()
	mf.On("GetContents", mock.Anything, "octocat", mock.Anything).Return([]string{}, nil).Maybe()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	analyzer := NewRepoAnalyzer()
	result, err := analyzer.AssessAll(ctx, mf, "octocat", []*domain.RepoRecord{{Name: "a"}, {Name: "b"}})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}

func TestRepoAnalyzer_SetMaxGoroutines(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{
			name:     "设置正数",
			input:    5,
			expected: 5,
		},
		{
			name:     "设置零值",
			input:    0,
			expected: 3, // 默认值
		},
		{
			name:     "设置负数",
			input:    -1,
			expected: 3, // 默认值
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := NewRepoAnalyzer()
			analyzer.SetMaxGoroutines(tt.input)
			assert.Equal(t, tt.expected, analyzer.maxGoroutines)
		})
	}
}

func TestRepoAnalyzer_SetRepoTimeout(t *testing.T) {
	analyzer := NewRepoAnalyzer()
	assert.Equal(t, 30*time.Second, analyzer.repoTimeout)

	analyzer.SetRepoTimeout(5 * time.Second)
	assert.Equal(t, 5*time.Second, analyzer.repoTimeout)

	analyzer.SetRepoTimeout(0)
	assert.Equal(t, 5*time.Second, analyzer.repoTimeout)
}
