package relational

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
)

// genreRepository 图书类型仓储实现
type genreRepository struct {
	base baseRepository[GenreModel]
}

// NewGenreRepository 创建图书类型仓储
func NewGenreRepository(db *gorm.DB) catalog.GenreRepository {
	return &genreRepository{
		base: baseRepository[GenreModel]{
			db:        db,
			name:      "图书类型",
			preload:   preloadBooksWithRefs,
			notFound:  catalog.ErrGenreNotFound,
			duplicate: catalog.ErrGenreNameDuplicate,
		},
	}
}

func (r *genreRepository) List(ctx context.Context, p pagination.Params) (*pagination.Page[*catalog.Genre], error) {
	models, total, err := r.base.page(ctx, p)
	if err != nil {
		return nil, err
	}
	return newPage(models, total, p, toGenreEntity), nil
}

func (r *genreRepository) ListAll(ctx context.Context) ([]*catalog.Genre, error) {
	models, err := r.base.all(ctx)
	if err != nil {
		return nil, err
	}
	return convertAll(models, toGenreEntity), nil
}

func (r *genreRepository) FindByID(ctx context.Context, id uint) (*catalog.Genre, error) {
	model, err := r.base.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toGenreEntity(model), nil
}

func (r *genreRepository) FindByName(ctx context.Context, name string) (*catalog.Genre, error) {
	model, err := r.base.firstForShare(ctx, "name = ?", name)
	if err != nil {
		return nil, err
	}
	return toGenreEntity(model), nil
}

func (r *genreRepository) Create(ctx context.Context, g *catalog.Genre) error {
	model := &GenreModel{Name: g.Name}
	if err := r.base.create(ctx, model); err != nil {
		return err
	}
	g.ID = model.ID
	return nil
}

func (r *genreRepository) Update(ctx context.Context, g *catalog.Genre) error {
	return r.base.update(ctx, g.ID, map[string]interface{}{
		"name": g.Name,
	})
}

func (r *genreRepository) Delete(ctx context.Context, id uint) (bool, error) {
	return r.base.delete(ctx, id)
}
