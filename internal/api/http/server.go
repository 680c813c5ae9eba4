// Package http 提供指标与健康检查的 HTTP 端点
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/weisyn/taskrace/internal/api/http/middleware"
	"github.com/weisyn/taskrace/pkg/interfaces/infrastructure/clock"
	"github.com/weisyn/taskrace/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/taskrace/pkg/interfaces/infrastructure/storage"
)

// healthReporter NTP 时钟等可报告健康状态的时钟
type healthReporter interface {
	Health() (healthy bool, offset time.Duration, lastSync time.Time, lastError error)
}

// Server HTTP服务器
// 提供 /metrics、/health 以及会话只读查询
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	listener   net.Listener
	addr       string
	logger     log.Logger
	clock      clock.Clock
	store      storage.SessionStore
}

// NewServer 创建服务器并注册路由；store 可为 nil
func NewServer(addr string, registry *prometheus.Registry, clk clock.Clock, store storage.SessionStore, logger log.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = io.Discard

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(logger))

	s := &Server{
		router: router,
		addr:   addr,
		logger: logger,
		clock:  clk,
		store:  store,
	}

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	router.GET("/health", s.health)

	v1 := router.Group("/api/v1")
	v1.GET("/sessions", s.listSessions)
	v1.GET("/sessions/:id", s.getSession)

	return s
}

// Handler 返回路由（测试用）
func (s *Server) Handler() http.Handler { return s.router }

// Addr 实际监听地址，Start 之前为配置地址
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Start 监听并在后台提供服务
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("监听 %s 失败: %w", s.addr, err)
	}
	s.listener = ln
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		// 正常关闭时会返回http.ErrServerClosed，不应视为错误
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logf("HTTP服务器运行失败: %v", err)
		}
	}()
	s.logf("HTTP服务器已启动: %s", s.Addr())
	return nil
}

// Stop 优雅关闭，最多等待5秒
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(stopCtx); err != nil {
		return fmt.Errorf("HTTP服务器关闭出错: %w", err)
	}
	return nil
}

func (s *Server) logf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Infof(format, args...)
	}
}

func (s *Server) health(c *gin.Context) {
	body := gin.H{
		"status":  "ok",
		"now_utc": s.clock.UtcNow(),
	}

	if hr, ok := s.clock.(healthReporter); ok {
		healthy, offset, lastSync, lastErr := hr.Health()
		ntp := gin.H{
			"healthy":   healthy,
			"offset_ms": offset.Milliseconds(),
			"last_sync": lastSync,
		}
		if lastErr != nil {
			ntp["last_error"] = lastErr.Error()
		}
		body["ntp"] = ntp
		if !healthy {
			body["status"] = "degraded"
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
	}
	c.JSON(http.StatusOK, body)
}

func (s *Server) listSessions(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session store not configured"})
		return
	}
	ids, err := s.store.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": ids})
}

func (s *Server) getSession(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session store not configured"})
		return
	}
	session, err := s.store.Load(c.Request.Context(), c.Param("id"))
	if errors.Is(err, storage.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}
