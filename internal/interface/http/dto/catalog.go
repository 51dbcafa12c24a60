package dto

import (
	"time"

	"github.com/shopspring/decimal"

	appcatalog "github.com/xiebiao/bookcatalog/internal/application/catalog"
	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 日期统一使用 yyyy-MM-dd
// validator tag说明:
// - datetime=2006-01-02: 日期格式校验
// - max: 对应数据库列宽
// - dive: 校验切片中的每个元素

// AuthorRequest 作者创建/更新请求(更新时id必填)
type AuthorRequest struct {
	ID        uint   `json:"id" example:"1"`
	Name      string `json:"name" binding:"required,max=30" example:"Machado"`
	LastName  string `json:"last_name" binding:"required,max=40" example:"de Assis"`
	BirthDate string `json:"birth_date" binding:"required,datetime=2006-01-02" example:"1839-06-21"`
}

// ToInput 转换为应用层输入
func (r AuthorRequest) ToInput() (appcatalog.AuthorInput, error) {
	birth, err := parseDate(r.BirthDate)
	if err != nil {
		return appcatalog.AuthorInput{}, err
	}
	return appcatalog.AuthorInput{ID: r.ID, Name: r.Name, LastName: r.LastName, BirthDate: birth}, nil
}

// EditorRequest 出版社创建/更新请求
type EditorRequest struct {
	ID   uint   `json:"id" example:"1"`
	Name string `json:"name" binding:"required,max=35" example:"Acme"`
}

// ToInput 转换为应用层输入
func (r EditorRequest) ToInput() appcatalog.NamedInput {
	return appcatalog.NamedInput{ID: r.ID, Name: r.Name}
}

// GenreRequest 类型创建/更新请求
type GenreRequest struct {
	ID   uint   `json:"id" example:"1"`
	Name string `json:"name" binding:"required,max=40" example:"Romance"`
}

// ToInput 转换为应用层输入
func (r GenreRequest) ToInput() appcatalog.NamedInput {
	return appcatalog.NamedInput{ID: r.ID, Name: r.Name}
}

// IdentifierRequest 书号请求
// type: 0=ISBN-10 1=ISBN-13 2=ISSN 3=OTHER
type IdentifierRequest struct {
	ID    uint   `json:"id" example:"1"`
	Type  int8   `json:"type" binding:"min=0,max=3" example:"1"`
	Value string `json:"value" binding:"required,max=32" example:"978-8535910667"`
}

// ToInput 转换为应用层输入
func (r IdentifierRequest) ToInput() appcatalog.IdentifierInput {
	return appcatalog.IdentifierInput{ID: r.ID, Type: catalog.IdentifierType(r.Type), Value: r.Value}
}

// EditorReference 图书中的出版社(id优先，否则按名称查找或创建)
type EditorReference struct {
	ID   uint   `json:"id" example:"0"`
	Name string `json:"name" binding:"max=35" example:"Acme"`
}

// GenreReference 图书中的类型
type GenreReference struct {
	ID   uint   `json:"id" example:"0"`
	Name string `json:"name" binding:"max=40" example:"Romance"`
}

// BookAuthorRequest 图书中的作者
// id存在则引用已有作者(其余字段忽略)，否则按字段创建
type BookAuthorRequest struct {
	ID        uint   `json:"id" example:"0"`
	Name      string `json:"name" binding:"max=30" example:"Machado"`
	LastName  string `json:"last_name" binding:"max=40" example:"de Assis"`
	BirthDate string `json:"birth_date" binding:"omitempty,datetime=2006-01-02" example:"1839-06-21"`
}

// BookRequest 图书创建/更新请求
type BookRequest struct {
	ID              uint                `json:"id" example:"0"`
	Name            string              `json:"name" binding:"required,max=50" example:"Dom Casmurro"`
	Price           decimal.Decimal     `json:"price" swaggertype:"string" example:"39.90"`
	PublicationDate string              `json:"publication_date" binding:"required,datetime=2006-01-02" example:"1899-01-01"`
	Editor          EditorReference     `json:"editor"`
	Genre           GenreReference      `json:"genre"`
	Identifier      IdentifierRequest   `json:"identifier"`
	Authors         []BookAuthorRequest `json:"authors" binding:"dive"`
}

// ErrInvalidPrice 价格为负数或超过两位小数
var ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "价格必须是非负数且最多两位小数")

// ToInput 转换为应用层输入
func (r BookRequest) ToInput() (appcatalog.BookInput, error) {
	if r.Price.IsNegative() || !r.Price.Equal(r.Price.Round(2)) {
		return appcatalog.BookInput{}, ErrInvalidPrice
	}
	published, err := parseDate(r.PublicationDate)
	if err != nil {
		return appcatalog.BookInput{}, err
	}

	authors := make([]appcatalog.AuthorInput, len(r.Authors))
	for i, a := range r.Authors {
		var birth time.Time
		if a.BirthDate != "" {
			if birth, err = parseDate(a.BirthDate); err != nil {
				return appcatalog.BookInput{}, err
			}
		}
		authors[i] = appcatalog.AuthorInput{ID: a.ID, Name: a.Name, LastName: a.LastName, BirthDate: birth}
	}

	return appcatalog.BookInput{
		ID:              r.ID,
		Name:            r.Name,
		Price:           r.Price,
		PublicationDate: published,
		Editor:          appcatalog.ReferenceInput{ID: r.Editor.ID, Name: r.Editor.Name},
		Genre:           appcatalog.ReferenceInput{ID: r.Genre.ID, Name: r.Genre.Name},
		Identifier:      r.Identifier.ToInput(),
		Authors:         authors,
	}, nil
}

// PageRequest 查询参数形式的分页(未传时使用默认值)
type PageRequest struct {
	PageNumber int `form:"page_number" example:"1"`
	PageSize   int `form:"page_size" example:"10"`
}

// PagePath 路径形式的分页 /page/{page_number}/{page_size}
type PagePath struct {
	PageNumber int `uri:"page_number"`
	PageSize   int `uri:"page_size"`
}

// IDPath 路径中的ID
type IDPath struct {
	ID uint `uri:"id" binding:"required,min=1"`
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(appcatalog.DateLayout, s)
	if err != nil {
		return time.Time{}, &apperrors.AppError{
			Code:    apperrors.ErrCodeInvalidParams,
			Message: "日期格式必须是yyyy-MM-dd",
			Err:     err,
		}
	}
	return t, nil
}
