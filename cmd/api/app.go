package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence"
	"github.com/xiebiao/bookcatalog/internal/interface/grpcserver"
)

// healthCheckInterval gRPC健康状态刷新间隔
const healthCheckInterval = 10 * time.Second

// App 组装完成的服务(HTTP + gRPC健康检查)
type App struct {
	Config *config.Config
	Log    *zap.Logger
	Engine *gin.Engine
	GRPC   *grpcserver.Server
	Store  *persistence.Store
}

// Run 启动服务，ctx取消后优雅关闭
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Engine,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
	}

	errCh := make(chan error, 2)
	go func() {
		a.Log.Info("HTTP服务启动",
			zap.String("addr", srv.Addr),
			zap.String("swagger", fmt.Sprintf("http://localhost%s/swagger/index.html", srv.Addr)),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP服务异常退出: %w", err)
		}
	}()

	if a.Config.GRPC.Enabled {
		lis, err := net.Listen("tcp", fmt.Sprintf(":%d", a.Config.GRPC.Port))
		if err != nil {
			return fmt.Errorf("监听gRPC端口失败: %w", err)
		}
		go a.GRPC.Watch(ctx, healthCheckInterval)
		go func() {
			if err := a.GRPC.Serve(lis); err != nil {
				errCh <- fmt.Errorf("gRPC服务异常退出: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		a.Log.Info("收到关闭信号，开始优雅关闭...")
	case runErr = <-errCh:
		a.Log.Error("服务异常，开始关闭", zap.Error(runErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	// 先停止接收新请求，再等待进行中的请求完成
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.Log.Error("HTTP服务关闭超时", zap.Error(err))
	}
	if a.Config.GRPC.Enabled {
		a.GRPC.GracefulStop()
	}
	return runErr
}
