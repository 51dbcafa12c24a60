// Package persistence 按database.driver组装仓储
package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/relational"
)

// Store 全部仓储和事务管理器
// 上层只依赖catalog包中的接口，不关心底层是哪种数据库
type Store struct {
	Authors     catalog.AuthorRepository
	Editors     catalog.EditorRepository
	Genres      catalog.GenreRepository
	Identifiers catalog.IdentifierRepository
	Books       catalog.BookRepository
	AuthorBooks catalog.AuthorBookRepository
	Tx          catalog.Transactor

	ping func(ctx context.Context) error
}

// Ping 检查存储是否可用(健康检查使用)
func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

// Open 按配置打开存储，返回的cleanup负责关闭连接
// database.driver=memory时使用进程内SQLite，仓储实现与MySQL/PostgreSQL相同
func Open(cfg *config.Config, log *zap.Logger) (*Store, func(), error) {
	if cfg.Database.Driver == config.DriverMemory {
		log.Warn("使用进程内SQLite存储，进程退出后数据丢失")
		return NewMemoryStore(cfg.Database.DBName, cfg.Database.LogLevel, log)
	}

	db, err := relational.NewDB(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return newStore(db, log)
}

// NewMemoryStore 进程内SQLite存储，name不同的存储数据互相隔离
func NewMemoryStore(name, logLevel string, log *zap.Logger) (*Store, func(), error) {
	db, err := relational.OpenMemory(name, logLevel, log)
	if err != nil {
		return nil, nil, err
	}
	return newStore(db, log)
}

func newStore(db *gorm.DB, log *zap.Logger) (*Store, func(), error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	cleanup := func() {
		if err := sqlDB.Close(); err != nil {
			log.Error("关闭数据库连接失败", zap.Error(err))
		}
	}
	return NewRelationalStore(db), cleanup, nil
}

// NewRelationalStore 基于GORM的存储
func NewRelationalStore(db *gorm.DB) *Store {
	return &Store{
		Authors:     relational.NewAuthorRepository(db),
		Editors:     relational.NewEditorRepository(db),
		Genres:      relational.NewGenreRepository(db),
		Identifiers: relational.NewIdentifierRepository(db),
		Books:       relational.NewBookRepository(db),
		AuthorBooks: relational.NewAuthorBookRepository(db),
		Tx:          relational.NewTxManager(db),
		ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
}
