package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// 字段长度上限（对应数据库列宽）
const (
	AuthorNameMaxLen     = 30
	AuthorLastNameMaxLen = 40
	EditorNameMaxLen     = 35
	GenreNameMaxLen      = 40
	BookNameMaxLen       = 50
)

// Author 作者
// 读取时Books会被填充(每本书带出版社、类型、书号，但不再带作者)
type Author struct {
	ID        uint
	Name      string
	LastName  string
	BirthDate time.Time
	Books     []*Book
}

// NewAuthor 创建作者
func NewAuthor(name, lastName string, birthDate time.Time) *Author {
	return &Author{
		Name:      name,
		LastName:  lastName,
		BirthDate: birthDate,
	}
}

// Editor 出版社
// 名称唯一，可以在保存图书时按名称隐式创建
type Editor struct {
	ID    uint
	Name  string
	Books []*Book
}

// NewEditor 创建出版社
func NewEditor(name string) *Editor {
	return &Editor{Name: name}
}

// Genre 图书类型
type Genre struct {
	ID    uint
	Name  string
	Books []*Book
}

// NewGenre 创建图书类型
func NewGenre(name string) *Genre {
	return &Genre{Name: name}
}

// Book 图书(聚合根)
// DDD设计说明:
// 1. Editor/Genre是多对一引用，保存时按ID或名称查找，找不到则创建
// 2. Identifier由图书独占，随图书一起创建、更新、删除
// 3. Authors通过AuthorBook多对多关联，每次更新时整体同步
// 4. 价格使用decimal存储(避免浮点数精度问题)，精度为分
type Book struct {
	ID              uint
	Name            string
	Price           decimal.Decimal
	PublicationDate time.Time

	EditorID     uint
	GenreID      uint
	IdentifierID uint

	Editor     *Editor
	Genre      *Genre
	Identifier *Identifier
	Authors    []*Author
}

// AuthorIDs 当前关联的作者ID
func (b *Book) AuthorIDs() []uint {
	ids := make([]uint, 0, len(b.Authors))
	for _, a := range b.Authors {
		ids = append(ids, a.ID)
	}
	return ids
}

// Attach 挂上已解析的关联对象，同时同步外键
func (b *Book) Attach(editor *Editor, genre *Genre, identifier *Identifier) {
	b.Editor, b.EditorID = editor, editor.ID
	b.Genre, b.GenreID = genre, genre.ID
	b.Identifier, b.IdentifierID = identifier, identifier.ID
}
