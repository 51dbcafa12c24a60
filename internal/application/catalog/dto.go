package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
)

// 应用层输入DTO
// HTTP层负责JSON绑定和格式校验，这里只关心业务字段

// AuthorInput 作者输入
// 保存图书时: ID>0且作者存在则直接引用(不修改作者)，否则按字段创建新作者
type AuthorInput struct {
	ID        uint
	Name      string
	LastName  string
	BirthDate time.Time
}

func (in AuthorInput) toEntity() *catalog.Author {
	return catalog.NewAuthor(in.Name, in.LastName, in.BirthDate)
}

// ReferenceInput 出版社/类型引用(ID或名称)
type ReferenceInput struct {
	ID   uint
	Name string
}

func (in ReferenceInput) reference() catalog.Reference {
	return catalog.Reference{ID: in.ID, Name: in.Name}
}

// IdentifierInput 书号输入
// 更新图书时ID被忽略，始终更新图书当前持有的书号
type IdentifierInput struct {
	ID    uint
	Type  catalog.IdentifierType
	Value string
}

// BookInput 图书输入(创建时ID为0)
type BookInput struct {
	ID              uint
	Name            string
	Price           decimal.Decimal
	PublicationDate time.Time
	Editor          ReferenceInput
	Genre           ReferenceInput
	Identifier      IdentifierInput
	Authors         []AuthorInput
}

// NamedInput 出版社/类型的创建和更新
type NamedInput struct {
	ID   uint
	Name string
}
