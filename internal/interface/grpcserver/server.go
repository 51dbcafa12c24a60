// Package grpcserver 标准gRPC健康检查服务(grpc.health.v1)
//
// 健康状态跟随存储的可用性：定期Ping存储，失败时置为NOT_SERVING，
// 供Kubernetes的grpc探针或grpcurl使用：
//
//	grpcurl -plaintext localhost:9090 grpc.health.v1.Health/Check
package grpcserver

import (
	"context"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName 健康检查中目录服务的名称(空字符串代表整个服务器)
const ServiceName = "bookcatalog.Catalog"

// Pinger 被探测的依赖
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server gRPC服务器
type Server struct {
	srv    *grpc.Server
	health *health.Server
	store  Pinger
	log    *zap.Logger
}

// New 创建gRPC服务器并注册健康检查和反射服务
func New(store Pinger, log *zap.Logger) *Server {
	srv := grpc.NewServer(
		grpc.MaxRecvMsgSize(4*1024*1024),
	)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)

	// 反射服务(用于grpcurl调试)
	reflection.Register(srv)

	return &Server{srv: srv, health: hs, store: store, log: log.Named("grpc")}
}

// Check 探测一次存储并更新健康状态
func (s *Server) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.store.Ping(ctx); err != nil {
		s.log.Warn("存储健康检查失败", zap.Error(err))
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
	return status
}

// Watch 按间隔探测，直到ctx取消
func (s *Server) Watch(ctx context.Context, interval time.Duration) {
	s.Check(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Check(ctx)
		}
	}
}

// Serve 在lis上提供服务，阻塞直到Stop
func (s *Server) Serve(lis net.Listener) error {
	s.log.Info("gRPC服务启动", zap.String("addr", lis.Addr().String()))
	return s.srv.Serve(lis)
}

// GracefulStop 先把状态置为NOT_SERVING，再等待现有调用结束
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.srv.GracefulStop()
}
