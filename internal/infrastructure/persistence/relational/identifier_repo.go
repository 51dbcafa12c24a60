package relational

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
)

// identifierRepository 书号仓储实现
type identifierRepository struct {
	base baseRepository[IdentifierModel]
}

// NewIdentifierRepository 创建书号仓储
func NewIdentifierRepository(db *gorm.DB) catalog.IdentifierRepository {
	return &identifierRepository{
		base: baseRepository[IdentifierModel]{
			db:       db,
			name:     "书号",
			preload:  preloadIdentifier,
			notFound: catalog.ErrIdentifierNotFound,
		},
	}
}

func (r *identifierRepository) List(ctx context.Context, p pagination.Params) (*pagination.Page[*catalog.Identifier], error) {
	models, total, err := r.base.page(ctx, p)
	if err != nil {
		return nil, err
	}
	return newPage(models, total, p, toIdentifierEntity), nil
}

func (r *identifierRepository) ListAll(ctx context.Context) ([]*catalog.Identifier, error) {
	models, err := r.base.all(ctx)
	if err != nil {
		return nil, err
	}
	return convertAll(models, toIdentifierEntity), nil
}

func (r *identifierRepository) FindByID(ctx context.Context, id uint) (*catalog.Identifier, error) {
	model, err := r.base.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toIdentifierEntity(model), nil
}

func (r *identifierRepository) Create(ctx context.Context, ident *catalog.Identifier) error {
	model := &IdentifierModel{
		Type:  int8(ident.Type),
		Value: ident.Value,
	}
	if err := r.base.create(ctx, model); err != nil {
		return err
	}
	ident.ID = model.ID
	return nil
}

func (r *identifierRepository) Update(ctx context.Context, ident *catalog.Identifier) error {
	return r.base.update(ctx, ident.ID, map[string]interface{}{
		"type":  int8(ident.Type),
		"value": ident.Value,
	})
}

// Delete 仍被图书引用时返回ErrReferenceInUse
func (r *identifierRepository) Delete(ctx context.Context, id uint) (bool, error) {
	return r.base.delete(ctx, id)
}
