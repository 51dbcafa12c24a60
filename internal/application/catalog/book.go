package catalog

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

const tracerName = "bookcatalog/application"

// BookUseCase 图书聚合用例(查询、保存、删除)
// 设计说明:
// 1. 图书是聚合根：出版社/类型按ID或名称查找或创建，书号随图书创建/更新/删除，作者关联整体同步
// 2. 每次写操作在一个事务内完成，任一步失败整体回滚
// 3. 按名称创建出版社/类型前先获取名称锁，与出版社/类型用例共用同一组key(见names.go)
// 4. 事务提交后发布变更事件，发布失败只记录日志
type BookUseCase struct {
	books       catalog.BookRepository
	identifiers catalog.IdentifierRepository
	authors     catalog.AuthorRepository
	links       catalog.AuthorBookRepository
	editors     *catalog.ReferenceResolver[catalog.Editor]
	genres      *catalog.ReferenceResolver[catalog.Genre]
	tx          catalog.Transactor
	locker      catalog.NameLocker
	events      catalog.EventPublisher
	log         *zap.Logger
}

// NewBookUseCase 创建图书用例
func NewBookUseCase(
	books catalog.BookRepository,
	identifiers catalog.IdentifierRepository,
	authors catalog.AuthorRepository,
	links catalog.AuthorBookRepository,
	editors catalog.EditorRepository,
	genres catalog.GenreRepository,
	tx catalog.Transactor,
	locker catalog.NameLocker,
	events catalog.EventPublisher,
	log *zap.Logger,
) *BookUseCase {
	metrics.InitMetrics()
	return &BookUseCase{
		books:       books,
		identifiers: identifiers,
		authors:     authors,
		links:       links,
		editors:     catalog.NewEditorResolver(editors, tx),
		genres:      catalog.NewGenreResolver(genres, tx),
		tx:          tx,
		locker:      locker,
		events:      events,
		log:         log.Named("book"),
	}
}

// List 分页查询图书
func (uc *BookUseCase) List(ctx context.Context, p pagination.Params) (*pagination.Page[*BookView], error) {
	return listView[catalog.Book](ctx, uc.books, p, NewBookView)
}

// Get 查询图书详情
func (uc *BookUseCase) Get(ctx context.Context, id uint) (*BookView, error) {
	return getView[catalog.Book](ctx, uc.books, id, NewBookView)
}

// Delete 删除图书
// 步骤:
// 1. 读取图书，不存在返回false且不做任何写操作
// 2. 删除图书的全部作者关联(作者本身保留)
// 3. 删除图书
// 4. 删除图书独占的书号
func (uc *BookUseCase) Delete(ctx context.Context, id uint) (deleted bool, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "book.delete")
	defer func() { tracing.EndSpan(span, err) }()

	var book *catalog.Book
	err = uc.tx.Transaction(ctx, func(ctx context.Context) error {
		b, err := uc.books.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, catalog.ErrBookNotFound) {
				return nil
			}
			return err
		}

		if _, err := uc.links.DeleteByBook(ctx, b.ID); err != nil {
			return err
		}
		if _, err := uc.books.Delete(ctx, b.ID); err != nil {
			return err
		}
		if _, err := uc.identifiers.Delete(ctx, b.IdentifierID); err != nil {
			return err
		}
		book = b
		return nil
	})

	switch {
	case err != nil:
		metrics.IncCounterVec(metrics.BookDeletesTotal, map[string]string{"result": metrics.ResultFailure})
		return false, err
	case book == nil:
		metrics.IncCounterVec(metrics.BookDeletesTotal, map[string]string{"result": metrics.ResultNotFound})
		return false, nil
	}

	metrics.IncCounterVec(metrics.BookDeletesTotal, map[string]string{"result": metrics.ResultSuccess})
	uc.log.Info("图书已删除", zap.Uint("book_id", book.ID), zap.Uint("identifier_id", book.IdentifierID))
	uc.publish(ctx, catalog.NewBookEvent(catalog.BookDeleted, book))
	return true, nil
}

// publish 事务提交后发布事件
func (uc *BookUseCase) publish(ctx context.Context, evt catalog.BookEvent) {
	if err := uc.events.PublishBookEvent(ctx, evt); err != nil {
		uc.log.Warn("图书事件发布失败",
			zap.String("type", string(evt.Type)),
			zap.Uint("book_id", evt.BookID),
			zap.Error(err),
		)
	}
}

// observeUpsert 记录保存结果和耗时
func observeUpsert(op string, start time.Time, err error) {
	result := metrics.ResultSuccess
	switch {
	case apperrors.IsNotFound(err):
		result = metrics.ResultNotFound
	case err != nil:
		result = metrics.ResultFailure
	}
	metrics.IncCounterVec(metrics.BookUpsertsTotal, map[string]string{"op": op, "result": result})
	metrics.ObserveHistogramVec(metrics.BookUpsertDuration, map[string]string{"op": op}, time.Since(start).Seconds())
}
