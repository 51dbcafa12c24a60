package relational

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
)

// authorRepository 作者仓储实现
type authorRepository struct {
	base baseRepository[AuthorModel]
}

// NewAuthorRepository 创建作者仓储
func NewAuthorRepository(db *gorm.DB) catalog.AuthorRepository {
	return &authorRepository{
		base: baseRepository[AuthorModel]{
			db:       db,
			name:     "作者",
			preload:  preloadAuthor,
			notFound: catalog.ErrAuthorNotFound,
		},
	}
}

func (r *authorRepository) List(ctx context.Context, p pagination.Params) (*pagination.Page[*catalog.Author], error) {
	models, total, err := r.base.page(ctx, p)
	if err != nil {
		return nil, err
	}
	return newPage(models, total, p, toAuthorEntity), nil
}

func (r *authorRepository) ListAll(ctx context.Context) ([]*catalog.Author, error) {
	models, err := r.base.all(ctx)
	if err != nil {
		return nil, err
	}
	return convertAll(models, toAuthorEntity), nil
}

func (r *authorRepository) FindByID(ctx context.Context, id uint) (*catalog.Author, error) {
	model, err := r.base.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAuthorEntity(model), nil
}

// Create 创建作者(回填ID)
func (r *authorRepository) Create(ctx context.Context, a *catalog.Author) error {
	model := &AuthorModel{
		Name:      a.Name,
		LastName:  a.LastName,
		BirthDate: toDate(a.BirthDate),
	}
	if err := r.base.create(ctx, model); err != nil {
		return err
	}
	a.ID = model.ID
	return nil
}

// Update 更新作者标量字段
func (r *authorRepository) Update(ctx context.Context, a *catalog.Author) error {
	return r.base.update(ctx, a.ID, map[string]interface{}{
		"name":       a.Name,
		"last_name":  a.LastName,
		"birth_date": toDate(a.BirthDate),
	})
}

// Delete 删除作者(其图书关联由外键级联删除)
func (r *authorRepository) Delete(ctx context.Context, id uint) (bool, error) {
	return r.base.delete(ctx, id)
}
