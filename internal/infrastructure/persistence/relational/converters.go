package relational

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
)

// =========================================
// 预加载(每种实体固定的读取深度)
// =========================================
// 作者:     图书 → 出版社/类型/书号(不再加载图书的作者)
// 出版社/类型: 图书 → 出版社/类型/书号/作者
// 书号:     所属图书 → 出版社/类型/作者
// 图书:     出版社/类型/书号/作者

func orderBy(column string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(column + " ASC")
	}
}

func preloadAuthor(db *gorm.DB) *gorm.DB {
	return db.
		Preload("BookLinks", orderBy("book_id")).
		Preload("BookLinks.Book.Editor").
		Preload("BookLinks.Book.Genre").
		Preload("BookLinks.Book.Identifier")
}

func preloadBooksWithRefs(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Books", orderBy("id")).
		Preload("Books.Editor").
		Preload("Books.Genre").
		Preload("Books.Identifier").
		Preload("Books.AuthorLinks", orderBy("author_id")).
		Preload("Books.AuthorLinks.Author")
}

func preloadIdentifier(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Book.Editor").
		Preload("Book.Genre").
		Preload("Book.AuthorLinks", orderBy("author_id")).
		Preload("Book.AuthorLinks.Author")
}

func preloadBook(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Editor").
		Preload("Genre").
		Preload("Identifier").
		Preload("AuthorLinks", orderBy("author_id")).
		Preload("AuthorLinks.Author")
}

// =========================================
// 日期
// =========================================

// toDate 零值存为NULL
func toDate(t time.Time) *datatypes.Date {
	if t.IsZero() {
		return nil
	}
	d := datatypes.Date(t)
	return &d
}

func fromDate(d *datatypes.Date) time.Time {
	if d == nil {
		return time.Time{}
	}
	return time.Time(*d)
}

// =========================================
// GORM模型 → 领域实体
// =========================================

func authorScalars(m *AuthorModel) *catalog.Author {
	return &catalog.Author{
		ID:        m.ID,
		Name:      m.Name,
		LastName:  m.LastName,
		BirthDate: fromDate(m.BirthDate),
	}
}

func toAuthorEntity(m *AuthorModel) *catalog.Author {
	a := authorScalars(m)
	a.Books = make([]*catalog.Book, 0, len(m.BookLinks))
	for i := range m.BookLinks {
		if b := m.BookLinks[i].Book; b != nil {
			a.Books = append(a.Books, toBookSummary(b))
		}
	}
	return a
}

func editorScalars(m *EditorModel) *catalog.Editor {
	return &catalog.Editor{ID: m.ID, Name: m.Name}
}

func toEditorEntity(m *EditorModel) *catalog.Editor {
	e := editorScalars(m)
	e.Books = booksWithAuthors(m.Books)
	return e
}

func genreScalars(m *GenreModel) *catalog.Genre {
	return &catalog.Genre{ID: m.ID, Name: m.Name}
}

func toGenreEntity(m *GenreModel) *catalog.Genre {
	g := genreScalars(m)
	g.Books = booksWithAuthors(m.Books)
	return g
}

func identifierScalars(m *IdentifierModel) *catalog.Identifier {
	return &catalog.Identifier{
		ID:    m.ID,
		Type:  catalog.IdentifierType(m.Type),
		Value: m.Value,
	}
}

func toIdentifierEntity(m *IdentifierModel) *catalog.Identifier {
	ident := identifierScalars(m)
	if m.Book != nil {
		ident.Book = toBookEntity(m.Book)
		ident.Book.Identifier = identifierScalars(m)
	}
	return ident
}

func bookScalars(m *BookModel) *catalog.Book {
	return &catalog.Book{
		ID:              m.ID,
		Name:            m.Name,
		Price:           m.Price,
		PublicationDate: fromDate(m.PublicationDate),
		EditorID:        m.EditorID,
		GenreID:         m.GenreID,
		IdentifierID:    m.IdentifierID,
	}
}

// toBookSummary 图书及其出版社/类型/书号，不含作者
func toBookSummary(m *BookModel) *catalog.Book {
	b := bookScalars(m)
	if m.Editor != nil {
		b.Editor = editorScalars(m.Editor)
	}
	if m.Genre != nil {
		b.Genre = genreScalars(m.Genre)
	}
	if m.Identifier != nil {
		b.Identifier = identifierScalars(m.Identifier)
	}
	return b
}

// toBookEntity 图书及其全部直接关联
func toBookEntity(m *BookModel) *catalog.Book {
	b := toBookSummary(m)
	b.Authors = make([]*catalog.Author, 0, len(m.AuthorLinks))
	for i := range m.AuthorLinks {
		if a := m.AuthorLinks[i].Author; a != nil {
			b.Authors = append(b.Authors, authorScalars(a))
		}
	}
	return b
}

func booksWithAuthors(models []BookModel) []*catalog.Book {
	books := make([]*catalog.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books
}
