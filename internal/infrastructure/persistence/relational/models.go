package relational

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// 这里是infrastructure层的数据模型，包含GORM tag
// domain/catalog中的实体不依赖GORM，由Repository负责两者之间的转换

// AuthorModel 作者
type AuthorModel struct {
	ID        uint            `gorm:"primaryKey"`
	Name      string          `gorm:"size:30;not null;comment:名"`
	LastName  string          `gorm:"size:40;not null;comment:姓"`
	BirthDate *datatypes.Date `gorm:"comment:出生日期"`
	CreatedAt time.Time       `gorm:"comment:创建时间"`
	UpdatedAt time.Time       `gorm:"comment:更新时间"`

	// 删除作者时级联删除其关联
	BookLinks []AuthorBookModel `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

// TableName 指定表名
func (AuthorModel) TableName() string {
	return "tbl_authors"
}

// EditorModel 出版社
// 名称唯一索引保证"按名称查找或创建"不会产生重复记录
type EditorModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"uniqueIndex;size:35;not null;comment:出版社名称"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`

	Books []BookModel `gorm:"foreignKey:EditorID"`
}

// TableName 指定表名
func (EditorModel) TableName() string {
	return "tbl_editors"
}

// GenreModel 图书类型
type GenreModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"uniqueIndex;size:40;not null;comment:类型名称"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`

	Books []BookModel `gorm:"foreignKey:GenreID"`
}

// TableName 指定表名
func (GenreModel) TableName() string {
	return "tbl_genres"
}

// IdentifierModel 书号
// Type使用smallint存储单个数字（0=ISBN-10, 1=ISBN-13, 2=ISSN, 3=其他）
type IdentifierModel struct {
	ID        uint      `gorm:"primaryKey"`
	Type      int8      `gorm:"type:smallint;not null;default:0;comment:书号类型"`
	Value     string    `gorm:"size:32;not null;comment:书号"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`

	// 外键在图书一侧，书号仍被引用时不能删除
	Book *BookModel `gorm:"foreignKey:IdentifierID"`
}

// TableName 指定表名
func (IdentifierModel) TableName() string {
	return "tbl_identifiers"
}

// BookModel 图书
// 设计说明:
// 1. 价格使用decimal(17,2)，避免浮点数精度问题
// 2. IdentifierID唯一索引，一个书号只属于一本书
// 3. EditorID/GenreID普通索引，出版社/类型下的图书列表会用到
type BookModel struct {
	ID              uint            `gorm:"primaryKey"`
	Name            string          `gorm:"size:50;not null;comment:书名"`
	Price           decimal.Decimal `gorm:"type:decimal(17,2);not null;comment:价格"`
	PublicationDate *datatypes.Date `gorm:"comment:出版日期"`
	EditorID        uint            `gorm:"index;not null;comment:出版社ID"`
	GenreID         uint            `gorm:"index;not null;comment:类型ID"`
	IdentifierID    uint            `gorm:"uniqueIndex;not null;comment:书号ID"`
	CreatedAt       time.Time       `gorm:"comment:创建时间"`
	UpdatedAt       time.Time       `gorm:"comment:更新时间"`

	Editor      *EditorModel      `gorm:"foreignKey:EditorID"`
	Genre       *GenreModel       `gorm:"foreignKey:GenreID"`
	Identifier  *IdentifierModel  `gorm:"foreignKey:IdentifierID"`
	AuthorLinks []AuthorBookModel `gorm:"foreignKey:BookID"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "tbl_books"
}

// AuthorBookModel 作者-图书关联
// 联合主键(author_id, book_id)，同一作者不会重复关联同一本书
type AuthorBookModel struct {
	AuthorID  uint      `gorm:"primaryKey;autoIncrement:false;comment:作者ID"`
	BookID    uint      `gorm:"primaryKey;autoIncrement:false;index;comment:图书ID"`
	CreatedAt time.Time `gorm:"comment:关联时间"`

	Author *AuthorModel `gorm:"foreignKey:AuthorID"`
	Book   *BookModel   `gorm:"foreignKey:BookID"`
}

// TableName 指定表名
func (AuthorBookModel) TableName() string {
	return "tbl_authors_books"
}
