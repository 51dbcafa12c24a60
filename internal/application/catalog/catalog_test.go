package catalog

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
)

func TestEditorUseCase(t *testing.T) {
	ctx := context.Background()
	tc := newTestCatalog(t)
	uc := NewEditorUseCase(tc.editors, tc.store.Tx, tc.locker)

	created, err := uc.Create(ctx, NamedInput{Name: "  Acme  "})
	require.NoError(t, err)
	assert.Equal(t, "Acme", created.Name)
	assert.Empty(t, created.Books)

	t.Run("名称重复", func(t *testing.T) {
		_, err := uc.Create(ctx, NamedInput{Name: "Acme"})
		assert.ErrorIs(t, err, catalog.ErrEditorNameDuplicate)
	})

	t.Run("带图书的出版社视图", func(t *testing.T) {
		book, err := tc.uc.Create(ctx, bookInput("Book", AuthorInput{Name: "Ana"}))
		require.NoError(t, err)

		view, err := uc.Get(ctx, created.ID)
		require.NoError(t, err)
		require.Len(t, view.Books, 1)
		assert.Equal(t, book.ID, view.Books[0].ID)
		require.Len(t, view.Books[0].Authors, 1)
		assert.Equal(t, "Ana", view.Books[0].Authors[0].Name)
	})

	t.Run("仍被引用时不能删除", func(t *testing.T) {
		_, err := uc.Delete(ctx, created.ID)
		assert.ErrorIs(t, err, catalog.ErrReferenceInUse)
	})

	t.Run("改名", func(t *testing.T) {
		view, err := uc.Update(ctx, NamedInput{ID: created.ID, Name: "Acme Press"})
		require.NoError(t, err)
		assert.Equal(t, "Acme Press", view.Name)
	})

	t.Run("更新不存在的出版社", func(t *testing.T) {
		_, err := uc.Update(ctx, NamedInput{ID: 999, Name: "x"})
		assert.ErrorIs(t, err, catalog.ErrEditorNotFound)
	})
}

func TestEditorUseCase_NameLock(t *testing.T) {
	ctx := context.Background()

	t.Run("与图书保存使用同一把名称锁", func(t *testing.T) {
		tc := newTestCatalog(t)
		uc := NewEditorUseCase(tc.editors, tc.store.Tx, tc.locker)

		unlock, err := tc.locker.Lock(ctx, "editor:Shared")
		require.NoError(t, err)

		done := make(chan error, 1)
		go func() {
			_, err := uc.Create(ctx, NamedInput{Name: " Shared "})
			done <- err
		}()

		select {
		case <-done:
			t.Fatal("持有名称锁期间不应完成创建")
		case <-time.After(50 * time.Millisecond):
		}

		unlock()
		require.NoError(t, <-done)
		t.Log("✓ 出版社创建等待名称锁")
	})

	t.Run("与图书并发创建同名出版社", func(t *testing.T) {
		tc := newTestCatalog(t)
		uc := NewEditorUseCase(tc.editors, tc.store.Tx, tc.locker)

		const n = 6
		var wg sync.WaitGroup
		bookErrs := make([]error, n)
		editorErrs := make([]error, n)
		for i := 0; i < n; i++ {
			wg.Add(2)
			go func(i int) {
				defer wg.Done()
				in := bookInput(fmt.Sprintf("b%d", i))
				in.Editor = ReferenceInput{Name: "Shared"}
				_, bookErrs[i] = tc.uc.Create(ctx, in)
			}(i)
			go func(i int) {
				defer wg.Done()
				_, editorErrs[i] = uc.Create(ctx, NamedInput{Name: "Shared"})
			}(i)
		}
		wg.Wait()

		for _, err := range bookErrs {
			assert.NoError(t, err, "图书保存复用已存在的出版社")
		}
		created := 0
		for _, err := range editorErrs {
			if err == nil {
				created++
				continue
			}
			assert.ErrorIs(t, err, catalog.ErrEditorNameDuplicate)
		}
		assert.LessOrEqual(t, created, 1)

		editors, err := tc.editors.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, editors, 1)
	})
}

func TestGenreUseCase(t *testing.T) {
	ctx := context.Background()
	tc := newTestCatalog(t)
	uc := NewGenreUseCase(tc.genres, tc.store.Tx, tc.locker)

	g, err := uc.Create(ctx, NamedInput{Name: "Poetry"})
	require.NoError(t, err)

	deleted, err := uc.Delete(ctx, g.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = uc.Delete(ctx, g.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestAuthorUseCase(t *testing.T) {
	ctx := context.Background()
	tc := newTestCatalog(t)
	uc := NewAuthorUseCase(tc.authors, tc.store.Tx)

	ana, err := uc.Create(ctx, AuthorInput{Name: "Ana", LastName: "Lima"})
	require.NoError(t, err)
	_, err = tc.uc.Create(ctx, bookInput("Book", AuthorInput{ID: ana.ID}))
	require.NoError(t, err)

	t.Run("作者视图中的图书不再带作者", func(t *testing.T) {
		view, err := uc.Get(ctx, ana.ID)
		require.NoError(t, err)
		require.Len(t, view.Books, 1)
		assert.Equal(t, "Acme", view.Books[0].Editor.Name)
		assert.Equal(t, "Poetry", view.Books[0].Genre.Name)
		assert.NotNil(t, view.Books[0].Identifier)
	})

	t.Run("删除作者同时删除关联", func(t *testing.T) {
		deleted, err := uc.Delete(ctx, ana.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		books, err := tc.books.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Empty(t, books[0].Authors)
	})

	t.Run("分页", func(t *testing.T) {
		for _, name := range []string{"B", "C", "D"} {
			_, err := uc.Create(ctx, AuthorInput{Name: name})
			require.NoError(t, err)
		}
		page, err := uc.List(ctx, pagination.Params{PageNumber: 2, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.TotalCount)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "D", page.Items[0].Name)
	})
}

func TestIdentifierUseCase(t *testing.T) {
	ctx := context.Background()
	tc := newTestCatalog(t)
	uc := NewIdentifierUseCase(tc.identifiers, tc.store.Tx)

	book, err := tc.uc.Create(ctx, bookInput("Book"))
	require.NoError(t, err)

	view, err := uc.Get(ctx, book.Identifier.ID)
	require.NoError(t, err)
	require.NotNil(t, view.Book)
	assert.Equal(t, book.ID, view.Book.ID)

	_, err = uc.Delete(ctx, book.Identifier.ID)
	assert.ErrorIs(t, err, catalog.ErrReferenceInUse)

	free, err := uc.Create(ctx, IdentifierInput{Type: catalog.IdentifierISBN10, Value: "0-00-000000-0"})
	require.NoError(t, err)
	assert.Nil(t, free.Book)
	assert.Equal(t, "ISBN-10", free.TypeName)
}

func TestLibraryUseCase_Dump(t *testing.T) {
	ctx := context.Background()
	tc := newTestCatalog(t)
	uc := NewLibraryUseCase(tc.authors, tc.editors, tc.genres, tc.identifiers, tc.books)

	_, err := tc.uc.Create(ctx, bookInput("One", AuthorInput{Name: "Ana"}))
	require.NoError(t, err)
	_, err = tc.uc.Create(ctx, bookInput("Two", AuthorInput{Name: "Rui"}))
	require.NoError(t, err)

	tests := []struct {
		kind LibraryKind
		want int
	}{
		{LibraryAuthors, 2},
		{LibraryEditors, 1},
		{LibraryGenres, 1},
		{LibraryIdentifiers, 2},
		{LibraryBooks, 2},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			data, err := uc.Dump(ctx, tt.kind)
			require.NoError(t, err)
			assert.Len(t, data, tt.want)
		})
	}

	t.Run("未知类型", func(t *testing.T) {
		_, err := uc.Dump(ctx, "orders")
		assert.ErrorIs(t, err, ErrUnknownLibraryKind)
	})
}
