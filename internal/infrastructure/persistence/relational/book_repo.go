package relational

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
)

// bookRepository 图书仓储实现
// 设计说明:
// 1. 只写图书自身的列和外键，出版社/类型/书号/作者关联由应用层显式维护
// 2. identifier_id唯一索引冲突翻译为ErrIdentifierTaken
type bookRepository struct {
	base baseRepository[BookModel]
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) catalog.BookRepository {
	return &bookRepository{
		base: baseRepository[BookModel]{
			db:        db,
			name:      "图书",
			preload:   preloadBook,
			notFound:  catalog.ErrBookNotFound,
			duplicate: catalog.ErrIdentifierTaken,
		},
	}
}

func (r *bookRepository) List(ctx context.Context, p pagination.Params) (*pagination.Page[*catalog.Book], error) {
	models, total, err := r.base.page(ctx, p)
	if err != nil {
		return nil, err
	}
	return newPage(models, total, p, toBookEntity), nil
}

func (r *bookRepository) ListAll(ctx context.Context) ([]*catalog.Book, error) {
	models, err := r.base.all(ctx)
	if err != nil {
		return nil, err
	}
	return convertAll(models, toBookEntity), nil
}

func (r *bookRepository) FindByID(ctx context.Context, id uint) (*catalog.Book, error) {
	model, err := r.base.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBookEntity(model), nil
}

// Create 创建图书(外键必须指向已存在的出版社/类型/书号)
func (r *bookRepository) Create(ctx context.Context, b *catalog.Book) error {
	model := &BookModel{
		Name:            b.Name,
		Price:           b.Price,
		PublicationDate: toDate(b.PublicationDate),
		EditorID:        b.EditorID,
		GenreID:         b.GenreID,
		IdentifierID:    b.IdentifierID,
	}
	if err := r.base.create(ctx, model); err != nil {
		return err
	}
	b.ID = model.ID
	return nil
}

// Update 合并标量字段和外键
func (r *bookRepository) Update(ctx context.Context, b *catalog.Book) error {
	return r.base.update(ctx, b.ID, map[string]interface{}{
		"name":             b.Name,
		"price":            b.Price,
		"publication_date": toDate(b.PublicationDate),
		"editor_id":        b.EditorID,
		"genre_id":         b.GenreID,
		"identifier_id":    b.IdentifierID,
	})
}

func (r *bookRepository) Delete(ctx context.Context, id uint) (bool, error) {
	return r.base.delete(ctx, id)
}
