package catalog

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
)

// IdentifierUseCase 书号增删改查
// 书号通常随图书一起保存，这里提供单独维护的入口
type IdentifierUseCase struct {
	identifiers catalog.IdentifierRepository
	tx          catalog.Transactor
}

// NewIdentifierUseCase 创建书号用例
func NewIdentifierUseCase(identifiers catalog.IdentifierRepository, tx catalog.Transactor) *IdentifierUseCase {
	return &IdentifierUseCase{identifiers: identifiers, tx: tx}
}

func (uc *IdentifierUseCase) List(ctx context.Context, p pagination.Params) (*pagination.Page[*IdentifierView], error) {
	return listView[catalog.Identifier](ctx, uc.identifiers, p, NewIdentifierView)
}

func (uc *IdentifierUseCase) Get(ctx context.Context, id uint) (*IdentifierView, error) {
	return getView[catalog.Identifier](ctx, uc.identifiers, id, NewIdentifierView)
}

func (uc *IdentifierUseCase) Create(ctx context.Context, in IdentifierInput) (*IdentifierView, error) {
	return saveAndReload[catalog.Identifier](ctx, uc.tx, uc.identifiers, func(ctx context.Context) (uint, error) {
		ident := catalog.NewIdentifier(in.Type, in.Value)
		if err := uc.identifiers.Create(ctx, ident); err != nil {
			return 0, err
		}
		return ident.ID, nil
	}, NewIdentifierView)
}

func (uc *IdentifierUseCase) Update(ctx context.Context, in IdentifierInput) (*IdentifierView, error) {
	return saveAndReload[catalog.Identifier](ctx, uc.tx, uc.identifiers, func(ctx context.Context) (uint, error) {
		ident := &catalog.Identifier{ID: in.ID, Type: in.Type, Value: in.Value}
		return ident.ID, uc.identifiers.Update(ctx, ident)
	}, NewIdentifierView)
}

// Delete 删除书号，仍被图书引用时返回ErrReferenceInUse
func (uc *IdentifierUseCase) Delete(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := uc.tx.Transaction(ctx, func(ctx context.Context) (err error) {
		deleted, err = uc.identifiers.Delete(ctx, id)
		return err
	})
	return deleted, err
}
