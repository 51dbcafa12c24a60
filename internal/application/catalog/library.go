package catalog

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// ErrUnknownLibraryKind 不支持导出的表
var ErrUnknownLibraryKind = apperrors.New(apperrors.ErrCodeInvalidParams, "不支持的导出类型")

// LibraryKind 诊断导出的表
type LibraryKind string

const (
	LibraryAuthors     LibraryKind = "authors"
	LibraryEditors     LibraryKind = "editors"
	LibraryGenres      LibraryKind = "genres"
	LibraryIdentifiers LibraryKind = "identifiers"
	LibraryBooks       LibraryKind = "books"
)

// LibraryUseCase 只读诊断：不分页导出整张表(带直接关联)
type LibraryUseCase struct {
	authors     catalog.AuthorRepository
	editors     catalog.EditorRepository
	genres      catalog.GenreRepository
	identifiers catalog.IdentifierRepository
	books       catalog.BookRepository
}

// NewLibraryUseCase 创建诊断用例
func NewLibraryUseCase(
	authors catalog.AuthorRepository,
	editors catalog.EditorRepository,
	genres catalog.GenreRepository,
	identifiers catalog.IdentifierRepository,
	books catalog.BookRepository,
) *LibraryUseCase {
	return &LibraryUseCase{
		authors:     authors,
		editors:     editors,
		genres:      genres,
		identifiers: identifiers,
		books:       books,
	}
}

// Dump 导出指定表，未知的表返回ErrUnknownLibraryKind
func (uc *LibraryUseCase) Dump(ctx context.Context, kind LibraryKind) (any, error) {
	switch kind {
	case LibraryAuthors:
		return allViews[catalog.Author](ctx, uc.authors, NewAuthorView)
	case LibraryEditors:
		return allViews[catalog.Editor](ctx, uc.editors, NewEditorView)
	case LibraryGenres:
		return allViews[catalog.Genre](ctx, uc.genres, NewGenreView)
	case LibraryIdentifiers:
		return allViews[catalog.Identifier](ctx, uc.identifiers, NewIdentifierView)
	case LibraryBooks:
		return allViews[catalog.Book](ctx, uc.books, NewBookView)
	default:
		return nil, ErrUnknownLibraryKind
	}
}
