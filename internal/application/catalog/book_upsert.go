package catalog

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// Create 创建图书
// 流程(同一事务):
//  1. 解析出版社引用(ID优先，否则按名称查找或创建)
//  2. 解析类型引用
//  3. 创建新书号(创建图书时书号总是新建，不复用)
//  4. 创建图书，写入三个外键
//  5. 逐个解析作者: ID存在则直接引用，否则按字段创建
//  6. 为每个作者创建关联(同一请求中重复的作者只关联一次)
//  7. 重新读取图书(带全部关联)返回
func (uc *BookUseCase) Create(ctx context.Context, in BookInput) (view *BookView, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, "book.create")
	defer func() {
		tracing.EndSpan(span, err)
		observeUpsert(metrics.OpCreate, start, err)
	}()

	unlock, err := uc.lockNames(ctx, in)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var saved *catalog.Book
	var created createdRefs
	err = uc.tx.Transaction(ctx, func(ctx context.Context) error {
		created = createdRefs{}

		editor, genre, err := uc.resolveRefs(ctx, in, &created)
		if err != nil {
			return err
		}

		ident := catalog.NewIdentifier(in.Identifier.Type, in.Identifier.Value)
		if err := uc.identifiers.Create(ctx, ident); err != nil {
			return err
		}

		book := &catalog.Book{
			Name:            in.Name,
			Price:           in.Price,
			PublicationDate: in.PublicationDate,
		}
		book.Attach(editor, genre, ident)
		if err := uc.books.Create(ctx, book); err != nil {
			return err
		}

		authorIDs, err := uc.resolveAuthors(ctx, in.Authors, &created)
		if err != nil {
			return err
		}
		if err := uc.linkAuthors(ctx, book.ID, authorIDs); err != nil {
			return err
		}
		created.linksAdded = len(authorIDs)

		saved, err = uc.books.FindByID(ctx, book.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	created.record()
	uc.log.Info("图书已创建",
		zap.Uint("book_id", saved.ID),
		zap.Uint("editor_id", saved.EditorID),
		zap.Uint("genre_id", saved.GenreID),
		zap.Int("authors", len(saved.Authors)),
	)
	uc.publish(ctx, catalog.NewBookEvent(catalog.BookCreated, saved))
	return NewBookView(saved), nil
}

// Update 更新图书
// 流程(同一事务):
//  1. 读取图书，不存在返回ErrBookNotFound
//  2. 解析出版社/类型引用(与创建相同的查找或创建语义)
//  3. 原地更新图书当前持有的书号(不替换)
//  4. 更新图书标量字段和外键，重新读取已持久化的作者关联
//  5. 按集合差同步作者关联: 删除多余的，补充缺少的，不变的保留
//  6. 重新读取图书返回
func (uc *BookUseCase) Update(ctx context.Context, in BookInput) (view *BookView, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, "book.update")
	defer func() {
		tracing.EndSpan(span, err)
		observeUpsert(metrics.OpUpdate, start, err)
	}()

	unlock, err := uc.lockNames(ctx, in)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var saved *catalog.Book
	var created createdRefs
	err = uc.tx.Transaction(ctx, func(ctx context.Context) error {
		created = createdRefs{}

		existing, err := uc.books.FindByID(ctx, in.ID)
		if err != nil {
			return err
		}

		editor, genre, err := uc.resolveRefs(ctx, in, &created)
		if err != nil {
			return err
		}

		ident := &catalog.Identifier{
			ID:    existing.IdentifierID,
			Type:  in.Identifier.Type,
			Value: in.Identifier.Value,
		}
		if err := uc.identifiers.Update(ctx, ident); err != nil {
			return err
		}

		book := &catalog.Book{
			ID:              existing.ID,
			Name:            in.Name,
			Price:           in.Price,
			PublicationDate: in.PublicationDate,
		}
		book.Attach(editor, genre, ident)
		if err := uc.books.Update(ctx, book); err != nil {
			return err
		}

		current, err := uc.links.ListByBook(ctx, book.ID)
		if err != nil {
			return err
		}
		currentIDs := make([]uint, len(current))
		for i, link := range current {
			currentIDs[i] = link.AuthorID
		}

		requested, err := uc.resolveAuthors(ctx, in.Authors, &created)
		if err != nil {
			return err
		}

		toAdd, toRemove := catalog.DiffAuthorIDs(currentIDs, requested)
		for _, authorID := range toRemove {
			if _, err := uc.links.Delete(ctx, authorID, book.ID); err != nil {
				return err
			}
		}
		if err := uc.linkAuthors(ctx, book.ID, toAdd); err != nil {
			return err
		}
		created.linksAdded, created.linksRemoved = len(toAdd), len(toRemove)

		saved, err = uc.books.FindByID(ctx, book.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	created.record()
	uc.log.Info("图书已更新",
		zap.Uint("book_id", saved.ID),
		zap.Int("authors_added", created.linksAdded),
		zap.Int("authors_removed", created.linksRemoved),
	)
	uc.publish(ctx, catalog.NewBookEvent(catalog.BookUpdated, saved))
	return NewBookView(saved), nil
}

// lockNames 为需要按名称解析的出版社/类型加锁
func (uc *BookUseCase) lockNames(ctx context.Context, in BookInput) (func(), error) {
	return lockNames(ctx, uc.locker,
		editorLockKey(in.Editor.reference().NormalizedName()),
		genreLockKey(in.Genre.reference().NormalizedName()),
	)
}

// resolveRefs 解析出版社和类型
func (uc *BookUseCase) resolveRefs(ctx context.Context, in BookInput, created *createdRefs) (*catalog.Editor, *catalog.Genre, error) {
	editor, editorCreated, err := uc.editors.Resolve(ctx, in.Editor.reference())
	if err != nil {
		return nil, nil, err
	}
	genre, genreCreated, err := uc.genres.Resolve(ctx, in.Genre.reference())
	if err != nil {
		return nil, nil, err
	}
	created.editor, created.genre = editorCreated, genreCreated
	return editor, genre, nil
}

// resolveAuthors 解析请求中的作者，返回去重后的作者ID(保持请求顺序)
// ID>0且作者存在 → 引用(不修改)；否则有名字则创建；都没有 → 报错
func (uc *BookUseCase) resolveAuthors(ctx context.Context, inputs []AuthorInput, created *createdRefs) ([]uint, error) {
	ids := make([]uint, 0, len(inputs))
	seen := make(map[uint]struct{}, len(inputs))

	for _, in := range inputs {
		id, isNew, err := uc.resolveAuthor(ctx, in)
		if err != nil {
			return nil, err
		}
		if isNew {
			created.authors++
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

func (uc *BookUseCase) resolveAuthor(ctx context.Context, in AuthorInput) (uint, bool, error) {
	if in.ID > 0 {
		a, err := uc.authors.FindByID(ctx, in.ID)
		if err == nil {
			return a.ID, false, nil
		}
		if !errors.Is(err, catalog.ErrAuthorNotFound) {
			return 0, false, err
		}
		if in.Name == "" {
			return 0, false, err
		}
	} else if in.Name == "" {
		return 0, false, catalog.ErrReferenceUnresolvable
	}

	a := in.toEntity()
	if err := uc.authors.Create(ctx, a); err != nil {
		return 0, false, err
	}
	return a.ID, true, nil
}

func (uc *BookUseCase) linkAuthors(ctx context.Context, bookID uint, authorIDs []uint) error {
	for _, authorID := range authorIDs {
		if err := uc.links.Create(ctx, &catalog.AuthorBook{AuthorID: authorID, BookID: bookID}); err != nil {
			return err
		}
	}
	return nil
}

// createdRefs 一次保存中新建的关联对象(提交后记录指标)
type createdRefs struct {
	editor, genre bool
	authors       int
	linksAdded    int
	linksRemoved  int
}

func (c createdRefs) record() {
	if c.editor {
		metrics.IncCounterVec(metrics.ReferencesCreatedTotal, map[string]string{"kind": metrics.KindEditor})
	}
	if c.genre {
		metrics.IncCounterVec(metrics.ReferencesCreatedTotal, map[string]string{"kind": metrics.KindGenre})
	}
	metrics.AddCounterVec(metrics.ReferencesCreatedTotal, map[string]string{"kind": metrics.KindAuthor}, c.authors)
	metrics.AddCounterVec(metrics.AuthorLinksTotal, map[string]string{"action": metrics.ActionAdd}, c.linksAdded)
	metrics.AddCounterVec(metrics.AuthorLinksTotal, map[string]string{"action": metrics.ActionRemove}, c.linksRemoved)
}
