// Package router 注册HTTP路由
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/xiebiao/bookcatalog/docs"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// Handlers 全部HTTP处理器
type Handlers struct {
	Authors     *handler.AuthorHandler
	Editors     *handler.EditorHandler
	Genres      *handler.GenreHandler
	Identifiers *handler.IdentifierHandler
	Books       *handler.BookHandler
	Library     *handler.LibraryHandler
}

// Pinger 健康检查依赖
type Pinger interface {
	Ping(ctx context.Context) error
}

// crudHandler 五类实体的处理器形状
type crudHandler interface {
	List(c *gin.Context)
	Page(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// New 创建并配置Gin引擎
// 路由：
//
//	GET    /api/v1/{kind}?page_number=&page_size=
//	GET    /api/v1/{kind}/page/{page_number}/{page_size}
//	GET    /api/v1/{kind}/{id}
//	POST   /api/v1/{kind}
//	PUT    /api/v1/{kind}
//	DELETE /api/v1/{kind}/{id}
//	GET    /api/v1/library/{kind}
func New(cfg *config.Config, log *zap.Logger, h Handlers, store Pinger) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode, gin.DebugMode:
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()
	r.Use(middleware.Recovery())
	if cfg.Tracing.Enabled {
		r.Use(middleware.Tracing())
	}
	r.Use(middleware.Logger(log), middleware.Metrics())

	r.GET("/ping", ping(store))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		registerCRUD(v1.Group("/authors"), h.Authors)
		registerCRUD(v1.Group("/editors"), h.Editors)
		registerCRUD(v1.Group("/genres"), h.Genres)
		registerCRUD(v1.Group("/identifiers"), h.Identifiers)
		registerCRUD(v1.Group("/books"), h.Books)

		v1.GET("/library/:kind", h.Library.Dump)
	}

	return r
}

func registerCRUD(g *gin.RouterGroup, h crudHandler) {
	g.GET("", h.List)
	g.GET("/page/:page_number/:page_size", h.Page)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("", h.Update)
	g.DELETE("/:id", h.Delete)
}

// ping 健康检查，存储不可用时返回503
func ping(store Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			response.Logger(c).Warn("存储健康检查失败", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, response.Response{
				Code:    apperrors.ErrCodeDatabaseError,
				Message: "存储不可用",
			})
			return
		}
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	}
}
