//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 修改Provider后重新生成：
//
//	wire gen ./cmd/api
//
// 依赖链：
//
//	*config.Config → *persistence.Store → 各仓储 → UseCase → Handler → *gin.Engine
//	*redis.Client → NameLocker ↗
//	EventPublisher ↗

package main

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	appcatalog "github.com/xiebiao/bookcatalog/internal/application/catalog"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/lock"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/messaging"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookcatalog/internal/interface/grpcserver"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/router"
)

// infrastructureSet 基础设施层：存储、Redis、名称锁、事件发布
var infrastructureSet = wire.NewSet(
	persistence.Open,
	wire.FieldsOf(new(*persistence.Store),
		"Authors", "Editors", "Genres", "Identifiers", "Books", "AuthorBooks", "Tx"),
	redis.NewClient,
	lock.New,
	messaging.New,
)

// applicationSet 应用层用例
var applicationSet = wire.NewSet(
	appcatalog.NewAuthorUseCase,
	appcatalog.NewEditorUseCase,
	appcatalog.NewGenreUseCase,
	appcatalog.NewIdentifierUseCase,
	appcatalog.NewBookUseCase,
	appcatalog.NewLibraryUseCase,
)

// interfaceSet HTTP处理器、路由和gRPC健康检查
var interfaceSet = wire.NewSet(
	handler.NewAuthorHandler,
	handler.NewEditorHandler,
	handler.NewGenreHandler,
	handler.NewIdentifierHandler,
	handler.NewBookHandler,
	handler.NewLibraryHandler,
	wire.Struct(new(router.Handlers), "*"),
	wire.Bind(new(router.Pinger), new(*persistence.Store)),
	router.New,
	wire.Bind(new(grpcserver.Pinger), new(*persistence.Store)),
	grpcserver.New,
)

// InitializeApp 初始化整个应用
// cleanup按创建的逆序关闭消息队列、Redis和数据库连接
func InitializeApp(cfg *config.Config, log *zap.Logger) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		applicationSet,
		interfaceSet,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
