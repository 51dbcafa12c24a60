package catalog

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/lock"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
)

// mockPublisher 记录发布的事件
type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishBookEvent(ctx context.Context, evt catalog.BookEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

var storeSeq atomic.Int64

// testCatalog 基于进程内SQLite的一套用例，仓储与生产环境相同
type testCatalog struct {
	store       *persistence.Store
	authors     catalog.AuthorRepository
	editors     catalog.EditorRepository
	genres      catalog.GenreRepository
	identifiers catalog.IdentifierRepository
	books       catalog.BookRepository
	links       catalog.AuthorBookRepository
	locker      catalog.NameLocker
	events      *mockPublisher
	uc          *BookUseCase
}

func newTestCatalog(t *testing.T) *testCatalog {
	t.Helper()
	s, cleanup, err := persistence.NewMemoryStore(fmt.Sprintf("app_%d", storeSeq.Add(1)), "silent", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(cleanup)

	tc := &testCatalog{
		store:       s,
		authors:     s.Authors,
		editors:     s.Editors,
		genres:      s.Genres,
		identifiers: s.Identifiers,
		books:       s.Books,
		links:       s.AuthorBooks,
		locker:      lock.NewLocalLocker(),
		events:      &mockPublisher{},
	}
	tc.events.On("PublishBookEvent", mock.Anything, mock.Anything).Return(nil)
	tc.uc = NewBookUseCase(
		tc.books, tc.identifiers, tc.authors, tc.links, tc.editors, tc.genres,
		s.Tx, tc.locker, tc.events, zap.NewNop(),
	)
	return tc
}

func (tc *testCatalog) seedAuthor(t *testing.T, name string) *catalog.Author {
	t.Helper()
	a := catalog.NewAuthor(name, "Silva", time.Date(1980, 1, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, tc.authors.Create(context.Background(), a))
	return a
}

func bookInput(name string, authors ...AuthorInput) BookInput {
	return BookInput{
		Name:            name,
		Price:           decimal.RequireFromString("10"),
		PublicationDate: time.Date(2020, 5, 17, 0, 0, 0, 0, time.UTC),
		Editor:          ReferenceInput{Name: "Acme"},
		Genre:           ReferenceInput{Name: "Poetry"},
		Identifier:      IdentifierInput{Type: catalog.IdentifierISBN13, Value: "978-0-00-" + name},
		Authors:         authors,
	}
}

func authorIDsOf(v *BookView) []uint {
	ids := make([]uint, len(v.Authors))
	for i, a := range v.Authors {
		ids[i] = a.ID
	}
	return ids
}

func TestBookUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("按名称创建出版社并复用", func(t *testing.T) {
		tc := newTestCatalog(t)

		first, err := tc.uc.Create(ctx, bookInput("First", AuthorInput{Name: "Ana", LastName: "Lima"}))
		require.NoError(t, err)
		second, err := tc.uc.Create(ctx, bookInput("Second", AuthorInput{Name: "Rui"}))
		require.NoError(t, err)

		assert.Equal(t, first.Editor.ID, second.Editor.ID)
		assert.Equal(t, "Acme", second.Editor.Name)
		assert.Equal(t, first.Genre.ID, second.Genre.ID)
		assert.NotEqual(t, first.Identifier.ID, second.Identifier.ID)

		editors, err := tc.editors.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, editors, 1)

		assert.Equal(t, "10.00", first.Price)
		assert.Equal(t, "2020-05-17", first.PublicationDate)
		require.Len(t, first.Authors, 1)
		assert.Equal(t, "Ana", first.Authors[0].Name)
		t.Log("✓ 同名出版社只创建一次")
	})

	t.Run("已存在的作者按ID引用", func(t *testing.T) {
		tc := newTestCatalog(t)
		ana := tc.seedAuthor(t, "Ana")

		view, err := tc.uc.Create(ctx, bookInput("Book", AuthorInput{ID: ana.ID, Name: "ignored"}))
		require.NoError(t, err)
		assert.Equal(t, []uint{ana.ID}, authorIDsOf(view))
		assert.Equal(t, "Ana", view.Authors[0].Name)

		all, err := tc.authors.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
		t.Log("✓ 作者未被修改也未重复创建")
	})

	t.Run("请求中重复的作者只关联一次", func(t *testing.T) {
		tc := newTestCatalog(t)
		ana := tc.seedAuthor(t, "Ana")

		view, err := tc.uc.Create(ctx, bookInput("Book", AuthorInput{ID: ana.ID}, AuthorInput{ID: ana.ID}))
		require.NoError(t, err)
		assert.Equal(t, []uint{ana.ID}, authorIDsOf(view))
	})

	t.Run("出版社ID优先于名称", func(t *testing.T) {
		tc := newTestCatalog(t)
		e := catalog.NewEditor("Existing")
		require.NoError(t, tc.editors.Create(ctx, e))

		in := bookInput("Book")
		in.Editor = ReferenceInput{ID: e.ID, Name: "Other"}
		view, err := tc.uc.Create(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, e.ID, view.Editor.ID)

		_, err = tc.editors.FindByName(ctx, "Other")
		assert.ErrorIs(t, err, catalog.ErrEditorNotFound)
	})

	t.Run("作者ID不存在且无名称时整体回滚", func(t *testing.T) {
		tc := newTestCatalog(t)

		_, err := tc.uc.Create(ctx, bookInput("Book", AuthorInput{ID: 999}))
		assert.ErrorIs(t, err, catalog.ErrAuthorNotFound)

		editors, err := tc.editors.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, editors, "出版社创建应随事务回滚")
		books, err := tc.books.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, books)
		idents, err := tc.identifiers.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, idents)
		tc.events.AssertNotCalled(t, "PublishBookEvent", mock.Anything, mock.Anything)
		t.Log("✓ 失败时不留下部分写入")
	})

	t.Run("作者ID不存在但有名称时创建", func(t *testing.T) {
		tc := newTestCatalog(t)

		view, err := tc.uc.Create(ctx, bookInput("Book", AuthorInput{ID: 999, Name: "Nova"}))
		require.NoError(t, err)
		require.Len(t, view.Authors, 1)
		assert.NotEqual(t, uint(999), view.Authors[0].ID)
		assert.Equal(t, "Nova", view.Authors[0].Name)
	})

	t.Run("作者既无ID也无名称", func(t *testing.T) {
		tc := newTestCatalog(t)
		_, err := tc.uc.Create(ctx, bookInput("Book", AuthorInput{}))
		assert.ErrorIs(t, err, catalog.ErrReferenceUnresolvable)
	})

	t.Run("出版社既无ID也无名称", func(t *testing.T) {
		tc := newTestCatalog(t)
		in := bookInput("Book")
		in.Editor = ReferenceInput{Name: "   "}
		_, err := tc.uc.Create(ctx, in)
		assert.ErrorIs(t, err, catalog.ErrReferenceUnresolvable)
	})

	t.Run("发布事件", func(t *testing.T) {
		tc := newTestCatalog(t)
		view, err := tc.uc.Create(ctx, bookInput("Book", AuthorInput{Name: "Ana"}))
		require.NoError(t, err)

		tc.events.AssertCalled(t, "PublishBookEvent", mock.Anything, mock.MatchedBy(func(evt catalog.BookEvent) bool {
			return evt.Type == catalog.BookCreated && evt.BookID == view.ID && len(evt.AuthorIDs) == 1
		}))
	})

	t.Run("事件发布失败不影响保存", func(t *testing.T) {
		tc := newTestCatalog(t)
		tc.events = &mockPublisher{}
		tc.events.On("PublishBookEvent", mock.Anything, mock.Anything).Return(assert.AnError)
		tc.uc.events = tc.events

		view, err := tc.uc.Create(ctx, bookInput("Book"))
		require.NoError(t, err)
		_, err = tc.books.FindByID(ctx, view.ID)
		assert.NoError(t, err)
	})
}

func TestBookUseCase_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("作者集合按差集同步", func(t *testing.T) {
		tc := newTestCatalog(t)
		a, b, c := tc.seedAuthor(t, "A"), tc.seedAuthor(t, "B"), tc.seedAuthor(t, "C")

		created, err := tc.uc.Create(ctx, bookInput("Book", AuthorInput{ID: a.ID}, AuthorInput{ID: b.ID}))
		require.NoError(t, err)
		assert.Equal(t, []uint{a.ID, b.ID}, authorIDsOf(created))

		in := bookInput("Book v2", AuthorInput{ID: b.ID}, AuthorInput{ID: c.ID})
		in.ID = created.ID
		updated, err := tc.uc.Update(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, []uint{b.ID, c.ID}, authorIDsOf(updated))
		assert.Equal(t, "Book v2", updated.Name)

		links, err := tc.links.ListByBook(ctx, created.ID)
		require.NoError(t, err)
		require.Len(t, links, 2)
		assert.Equal(t, b.ID, links[0].AuthorID)
		assert.Equal(t, c.ID, links[1].AuthorID)

		_, err = tc.authors.FindByID(ctx, a.ID)
		assert.NoError(t, err, "移除关联不删除作者")
		t.Log("✓ {A,B} → {B,C}")
	})

	t.Run("原地更新书号", func(t *testing.T) {
		tc := newTestCatalog(t)
		created, err := tc.uc.Create(ctx, bookInput("Book"))
		require.NoError(t, err)

		in := bookInput("Book")
		in.ID = created.ID
		in.Identifier = IdentifierInput{ID: 12345, Type: catalog.IdentifierISSN, Value: "1234-5678"}
		updated, err := tc.uc.Update(ctx, in)
		require.NoError(t, err)

		assert.Equal(t, created.Identifier.ID, updated.Identifier.ID)
		assert.Equal(t, "1234-5678", updated.Identifier.Value)
		assert.Equal(t, "ISSN", updated.Identifier.TypeName)

		idents, err := tc.identifiers.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, idents, 1)
	})

	t.Run("更换出版社", func(t *testing.T) {
		tc := newTestCatalog(t)
		created, err := tc.uc.Create(ctx, bookInput("Book"))
		require.NoError(t, err)

		in := bookInput("Book")
		in.ID = created.ID
		in.Editor = ReferenceInput{Name: "Globex"}
		updated, err := tc.uc.Update(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, "Globex", updated.Editor.Name)
		assert.NotEqual(t, created.Editor.ID, updated.Editor.ID)
	})

	t.Run("图书不存在", func(t *testing.T) {
		tc := newTestCatalog(t)
		in := bookInput("Ghost")
		in.ID = 42
		in.Editor = ReferenceInput{Name: "Never"}

		_, err := tc.uc.Update(ctx, in)
		assert.ErrorIs(t, err, catalog.ErrBookNotFound)

		_, err = tc.editors.FindByName(ctx, "Never")
		assert.ErrorIs(t, err, catalog.ErrEditorNotFound)
		tc.events.AssertNotCalled(t, "PublishBookEvent", mock.Anything, mock.Anything)
	})

	t.Run("读回与保存一致", func(t *testing.T) {
		tc := newTestCatalog(t)
		created, err := tc.uc.Create(ctx, bookInput("Book", AuthorInput{Name: "Ana"}))
		require.NoError(t, err)

		got, err := tc.uc.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})
}

func TestBookUseCase_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("删除图书及书号和关联", func(t *testing.T) {
		tc := newTestCatalog(t)
		ana := tc.seedAuthor(t, "Ana")
		created, err := tc.uc.Create(ctx, bookInput("Book", AuthorInput{ID: ana.ID}))
		require.NoError(t, err)

		deleted, err := tc.uc.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = tc.books.FindByID(ctx, created.ID)
		assert.ErrorIs(t, err, catalog.ErrBookNotFound)
		_, err = tc.identifiers.FindByID(ctx, created.Identifier.ID)
		assert.ErrorIs(t, err, catalog.ErrIdentifierNotFound)
		links, err := tc.links.ListByBook(ctx, created.ID)
		require.NoError(t, err)
		assert.Empty(t, links)

		_, err = tc.authors.FindByID(ctx, ana.ID)
		assert.NoError(t, err)
		_, err = tc.editors.FindByID(ctx, created.Editor.ID)
		assert.NoError(t, err, "出版社保留")

		tc.events.AssertCalled(t, "PublishBookEvent", mock.Anything, mock.MatchedBy(func(evt catalog.BookEvent) bool {
			return evt.Type == catalog.BookDeleted && evt.BookID == created.ID
		}))
	})

	t.Run("不存在的图书", func(t *testing.T) {
		tc := newTestCatalog(t)
		deleted, err := tc.uc.Delete(ctx, 7)
		require.NoError(t, err)
		assert.False(t, deleted)
		tc.events.AssertNotCalled(t, "PublishBookEvent", mock.Anything, mock.Anything)
	})
}

func TestBookUseCase_ConcurrentNewEditor(t *testing.T) {
	ctx := context.Background()
	tc := newTestCatalog(t)

	const n = 10
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := bookInput(string(rune('a' + i)))
			in.Editor = ReferenceInput{Name: "Shared"}
			_, errs[i] = tc.uc.Create(ctx, in)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	editors, err := tc.editors.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, editors, 1)

	page, err := tc.uc.List(ctx, pagination.Params{PageNumber: 1, PageSize: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(n), page.TotalCount)
	t.Logf("✓ %d个并发请求只创建了1个出版社", n)
}
