// Package httpapi 提供分析服务的 HTTP 接口。
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github-portfolio-auditor/internal/common"
	"github-portfolio-auditor/internal/domain"
	"github-portfolio-auditor/internal/service"
)

// 请求体上限
const maxBodyBytes = 1 << 20

// Auditor 是 HTTP 层需要的分析能力，由 service.AuditService 实现
type Auditor interface {
	Analyze(ctx context.Context, username, token string) (*domain.AnalysisResult, error)
	Publish(ctx context.Context, result *domain.AnalysisResult, opts service.PublishOptions)
}

// Options 服务端配置
type Options struct {
	Port            int
	Token           string        // 访问 GitHub 使用的 token，可以为空
	AnalysisTimeout time.Duration // 单次分析的总超时
	Publish         service.PublishOptions
}

// Server provides the HTTP API.
type Server struct {
	auditor Auditor
	opts    Options
}

type analyzeRequest struct {
	GitHubURL string `json:"github_url"`
}

// New creates a new HTTP server.
func New(auditor Auditor, opts Options) *Server {
	if opts.Port == 0 {
		opts.Port = 5000
	}
	if opts.AnalysisTimeout <= 0 {
		opts.AnalysisTimeout = 2 * time.Minute
	}
	return &Server{auditor: auditor, opts: opts}
}

// Handler 返回路由，便于测试
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/analyze", s.handleAnalyze)
	return mux
}

// ListenAndServe starts the HTTP server and shuts it down when ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.opts.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		fmt.Printf("🌐 auditor server listening on %s\n", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	// 解析失败按空地址处理，统一返回 "Invalid GitHub URL"
	var req analyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		log.Printf("⚠️ 无法解析请求体: %v", err)
	}

	username, ok := ExtractUsername(req.GitHubURL)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": common.MsgInvalidURL})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.opts.AnalysisTimeout)
	defer cancel()

	result, err := s.auditor.Analyze(ctx, username, s.opts.Token)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": common.MessageOf(err)})
		return
	}

	s.auditor.Publish(ctx, result, s.opts.Publish)
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("❌ 写响应失败: %v", err)
	}
}
