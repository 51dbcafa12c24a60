package catalog

import (
	"context"

	"github.com/xiebiao/bookcatalog/pkg/pagination"
)

// Repository 通用实体仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现(GORM)
// 2. 读取时按实体类型预加载固定深度的关联(见各实现)
// 3. 存储错误原样向上传递,不做重试
type Repository[T any] interface {
	// List 按ID升序分页查询
	List(ctx context.Context, params pagination.Params) (*pagination.Page[*T], error)

	// ListAll 按ID升序返回全部记录(诊断接口使用)
	ListAll(ctx context.Context) ([]*T, error)

	// FindByID 根据ID查找,不存在返回对应的NotFound错误
	FindByID(ctx context.Context, id uint) (*T, error)

	// Create 创建记录并回填ID
	Create(ctx context.Context, entity *T) error

	// Update 把标量字段和外键合并到已有记录,记录不存在返回NotFound错误
	Update(ctx context.Context, entity *T) error

	// Delete 删除记录,返回是否删除了记录
	Delete(ctx context.Context, id uint) (bool, error)
}

// AuthorRepository 作者仓储
type AuthorRepository interface {
	Repository[Author]
}

// EditorRepository 出版社仓储
type EditorRepository interface {
	Repository[Editor]

	// FindByName 按名称精确查找
	FindByName(ctx context.Context, name string) (*Editor, error)
}

// GenreRepository 图书类型仓储
type GenreRepository interface {
	Repository[Genre]

	// FindByName 按名称精确查找
	FindByName(ctx context.Context, name string) (*Genre, error)
}

// IdentifierRepository 书号仓储
type IdentifierRepository interface {
	Repository[Identifier]
}

// BookRepository 图书仓储
type BookRepository interface {
	Repository[Book]
}

// AuthorBookRepository 作者-图书关联仓储
type AuthorBookRepository interface {
	// Create 创建关联,重复返回ErrAuthorBookDuplicate
	Create(ctx context.Context, link *AuthorBook) error

	// Delete 删除单个关联,返回是否删除了记录
	Delete(ctx context.Context, authorID, bookID uint) (bool, error)

	// ListByBook 查询图书的全部关联(按作者ID升序)
	ListByBook(ctx context.Context, bookID uint) ([]*AuthorBook, error)

	// DeleteByBook 删除图书的全部关联,返回删除数量
	DeleteByBook(ctx context.Context, bookID uint) (int64, error)
}

// Transactor 事务管理
// fn收到的ctx携带事务,仓储通过ctx取到同一个事务
// fn返回错误或panic时回滚,否则提交
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// NameLocker 按名称加互斥锁
// 保证同名出版社/类型的"查找或创建"串行执行
type NameLocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
