package catalog

import (
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
)

// =========================================
// 视图(响应DTO)
// =========================================
// 持久化的关联是有环的(图书→作者→图书…)，视图按实体类型固定展开深度:
//
//	BookView       标量 + 出版社 + 类型 + 书号 + []AuthorRef
//	AuthorView     标量 + []BookSummary (图书不再带作者)
//	EditorView     标量 + []BookView
//	GenreView      标量 + []BookView
//	IdentifierView 标量 + *BookView
//
// 每个映射函数只调用比自己浅一层的函数，不存在无限展开

// DateLayout 日期格式
const DateLayout = "2006-01-02"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// AuthorRef 作者标量
type AuthorRef struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	LastName  string `json:"last_name"`
	BirthDate string `json:"birth_date"`
}

// EditorRef 出版社标量
type EditorRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// GenreRef 类型标量
type GenreRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// IdentifierRef 书号标量
type IdentifierRef struct {
	ID       uint   `json:"id"`
	Type     int8   `json:"type"`
	TypeName string `json:"type_name"`
	Value    string `json:"value"`
}

// BookSummary 图书标量及出版社/类型/书号
type BookSummary struct {
	ID              uint           `json:"id"`
	Name            string         `json:"name"`
	Price           string         `json:"price"` // 两位小数，如"10.00"
	PublicationDate string         `json:"publication_date"`
	Editor          *EditorRef     `json:"editor"`
	Genre           *GenreRef      `json:"genre"`
	Identifier      *IdentifierRef `json:"identifier"`
}

// BookView 图书详情
type BookView struct {
	BookSummary
	Authors []AuthorRef `json:"authors"`
}

// AuthorView 作者详情
type AuthorView struct {
	AuthorRef
	Books []BookSummary `json:"books"`
}

// EditorView 出版社详情
type EditorView struct {
	EditorRef
	Books []BookView `json:"books"`
}

// GenreView 类型详情
type GenreView struct {
	GenreRef
	Books []BookView `json:"books"`
}

// IdentifierView 书号详情
type IdentifierView struct {
	IdentifierRef
	Book *BookView `json:"book"`
}

// ---------- 第二层: 标量 ----------

func newAuthorRef(a *catalog.Author) AuthorRef {
	return AuthorRef{
		ID:        a.ID,
		Name:      a.Name,
		LastName:  a.LastName,
		BirthDate: formatDate(a.BirthDate),
	}
}

func newEditorRef(e *catalog.Editor) *EditorRef {
	if e == nil {
		return nil
	}
	return &EditorRef{ID: e.ID, Name: e.Name}
}

func newGenreRef(g *catalog.Genre) *GenreRef {
	if g == nil {
		return nil
	}
	return &GenreRef{ID: g.ID, Name: g.Name}
}

func newIdentifierRef(i *catalog.Identifier) *IdentifierRef {
	if i == nil {
		return nil
	}
	return &IdentifierRef{
		ID:       i.ID,
		Type:     int8(i.Type),
		TypeName: i.Type.String(),
		Value:    i.Value,
	}
}

// ---------- 第一层: 图书 ----------

func newBookSummary(b *catalog.Book) BookSummary {
	return BookSummary{
		ID:              b.ID,
		Name:            b.Name,
		Price:           b.Price.StringFixed(2),
		PublicationDate: formatDate(b.PublicationDate),
		Editor:          newEditorRef(b.Editor),
		Genre:           newGenreRef(b.Genre),
		Identifier:      newIdentifierRef(b.Identifier),
	}
}

// NewBookView 图书视图，作者只带标量
func NewBookView(b *catalog.Book) *BookView {
	authors := make([]AuthorRef, len(b.Authors))
	for i, a := range b.Authors {
		authors[i] = newAuthorRef(a)
	}
	return &BookView{
		BookSummary: newBookSummary(b),
		Authors:     authors,
	}
}

// ---------- 顶层 ----------

// NewAuthorView 作者视图，图书不带作者
func NewAuthorView(a *catalog.Author) *AuthorView {
	books := make([]BookSummary, len(a.Books))
	for i, b := range a.Books {
		books[i] = newBookSummary(b)
	}
	return &AuthorView{AuthorRef: newAuthorRef(a), Books: books}
}

// NewEditorView 出版社视图
func NewEditorView(e *catalog.Editor) *EditorView {
	return &EditorView{EditorRef: *newEditorRef(e), Books: bookViews(e.Books)}
}

// NewGenreView 类型视图
func NewGenreView(g *catalog.Genre) *GenreView {
	return &GenreView{GenreRef: *newGenreRef(g), Books: bookViews(g.Books)}
}

// NewIdentifierView 书号视图
func NewIdentifierView(i *catalog.Identifier) *IdentifierView {
	v := &IdentifierView{IdentifierRef: *newIdentifierRef(i)}
	if i.Book != nil {
		v.Book = NewBookView(i.Book)
	}
	return v
}

func bookViews(books []*catalog.Book) []BookView {
	views := make([]BookView, len(books))
	for i, b := range books {
		views[i] = *NewBookView(b)
	}
	return views
}
