package relational

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
)

// editorRepository 出版社仓储实现
// 名称唯一索引冲突翻译为ErrEditorNameDuplicate，解析器据此重新按名称读取
type editorRepository struct {
	base baseRepository[EditorModel]
}

// NewEditorRepository 创建出版社仓储
func NewEditorRepository(db *gorm.DB) catalog.EditorRepository {
	return &editorRepository{
		base: baseRepository[EditorModel]{
			db:        db,
			name:      "出版社",
			preload:   preloadBooksWithRefs,
			notFound:  catalog.ErrEditorNotFound,
			duplicate: catalog.ErrEditorNameDuplicate,
		},
	}
}

func (r *editorRepository) List(ctx context.Context, p pagination.Params) (*pagination.Page[*catalog.Editor], error) {
	models, total, err := r.base.page(ctx, p)
	if err != nil {
		return nil, err
	}
	return newPage(models, total, p, toEditorEntity), nil
}

func (r *editorRepository) ListAll(ctx context.Context) ([]*catalog.Editor, error) {
	models, err := r.base.all(ctx)
	if err != nil {
		return nil, err
	}
	return convertAll(models, toEditorEntity), nil
}

func (r *editorRepository) FindByID(ctx context.Context, id uint) (*catalog.Editor, error) {
	model, err := r.base.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toEditorEntity(model), nil
}

// FindByName 按名称精确查找，不加载图书(仅供引用解析)
func (r *editorRepository) FindByName(ctx context.Context, name string) (*catalog.Editor, error) {
	model, err := r.base.firstForShare(ctx, "name = ?", name)
	if err != nil {
		return nil, err
	}
	return toEditorEntity(model), nil
}

func (r *editorRepository) Create(ctx context.Context, e *catalog.Editor) error {
	model := &EditorModel{Name: e.Name}
	if err := r.base.create(ctx, model); err != nil {
		return err
	}
	e.ID = model.ID
	return nil
}

func (r *editorRepository) Update(ctx context.Context, e *catalog.Editor) error {
	return r.base.update(ctx, e.ID, map[string]interface{}{
		"name": e.Name,
	})
}

// Delete 仍有图书引用时返回ErrReferenceInUse
func (r *editorRepository) Delete(ctx context.Context, id uint) (bool, error) {
	return r.base.delete(ctx, id)
}
