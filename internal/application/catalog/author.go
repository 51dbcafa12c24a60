package catalog

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
)

// AuthorUseCase 作者增删改查
type AuthorUseCase struct {
	authors catalog.AuthorRepository
	tx      catalog.Transactor
}

// NewAuthorUseCase 创建作者用例
func NewAuthorUseCase(authors catalog.AuthorRepository, tx catalog.Transactor) *AuthorUseCase {
	return &AuthorUseCase{authors: authors, tx: tx}
}

// List 分页查询，每个作者带其图书
func (uc *AuthorUseCase) List(ctx context.Context, p pagination.Params) (*pagination.Page[*AuthorView], error) {
	return listView[catalog.Author](ctx, uc.authors, p, NewAuthorView)
}

// Get 查询单个作者
func (uc *AuthorUseCase) Get(ctx context.Context, id uint) (*AuthorView, error) {
	return getView[catalog.Author](ctx, uc.authors, id, NewAuthorView)
}

// Create 创建作者
func (uc *AuthorUseCase) Create(ctx context.Context, in AuthorInput) (*AuthorView, error) {
	return saveAndReload[catalog.Author](ctx, uc.tx, uc.authors, func(ctx context.Context) (uint, error) {
		a := in.toEntity()
		if err := uc.authors.Create(ctx, a); err != nil {
			return 0, err
		}
		return a.ID, nil
	}, NewAuthorView)
}

// Update 更新作者，不存在返回ErrAuthorNotFound
func (uc *AuthorUseCase) Update(ctx context.Context, in AuthorInput) (*AuthorView, error) {
	return saveAndReload[catalog.Author](ctx, uc.tx, uc.authors, func(ctx context.Context) (uint, error) {
		a := in.toEntity()
		a.ID = in.ID
		return a.ID, uc.authors.Update(ctx, a)
	}, NewAuthorView)
}

// Delete 删除作者(同时解除与图书的关联，图书保留)
func (uc *AuthorUseCase) Delete(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := uc.tx.Transaction(ctx, func(ctx context.Context) (err error) {
		deleted, err = uc.authors.Delete(ctx, id)
		return err
	})
	return deleted, err
}
