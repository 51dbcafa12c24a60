package catalog

import (
	"context"
	"strings"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
)

// EditorUseCase 出版社增删改查
// 名称唯一；仍有图书引用时不能删除
type EditorUseCase struct {
	editors catalog.EditorRepository
	tx      catalog.Transactor
	locker  catalog.NameLocker
}

// NewEditorUseCase 创建出版社用例
func NewEditorUseCase(editors catalog.EditorRepository, tx catalog.Transactor, locker catalog.NameLocker) *EditorUseCase {
	return &EditorUseCase{editors: editors, tx: tx, locker: locker}
}

func (uc *EditorUseCase) List(ctx context.Context, p pagination.Params) (*pagination.Page[*EditorView], error) {
	return listView[catalog.Editor](ctx, uc.editors, p, NewEditorView)
}

func (uc *EditorUseCase) Get(ctx context.Context, id uint) (*EditorView, error) {
	return getView[catalog.Editor](ctx, uc.editors, id, NewEditorView)
}

// Create 创建出版社，名称重复返回ErrEditorNameDuplicate
func (uc *EditorUseCase) Create(ctx context.Context, in NamedInput) (*EditorView, error) {
	name := strings.TrimSpace(in.Name)
	unlock, err := lockNames(ctx, uc.locker, editorLockKey(name))
	if err != nil {
		return nil, err
	}
	defer unlock()

	return saveAndReload[catalog.Editor](ctx, uc.tx, uc.editors, func(ctx context.Context) (uint, error) {
		e := catalog.NewEditor(name)
		if err := uc.editors.Create(ctx, e); err != nil {
			return 0, err
		}
		return e.ID, nil
	}, NewEditorView)
}

func (uc *EditorUseCase) Update(ctx context.Context, in NamedInput) (*EditorView, error) {
	name := strings.TrimSpace(in.Name)
	unlock, err := lockNames(ctx, uc.locker, editorLockKey(name))
	if err != nil {
		return nil, err
	}
	defer unlock()

	return saveAndReload[catalog.Editor](ctx, uc.tx, uc.editors, func(ctx context.Context) (uint, error) {
		e := &catalog.Editor{ID: in.ID, Name: name}
		return e.ID, uc.editors.Update(ctx, e)
	}, NewEditorView)
}

func (uc *EditorUseCase) Delete(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := uc.tx.Transaction(ctx, func(ctx context.Context) (err error) {
		deleted, err = uc.editors.Delete(ctx, id)
		return err
	})
	return deleted, err
}
