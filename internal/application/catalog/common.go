package catalog

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
)

// listView 分页查询并投影为视图
func listView[T, V any](ctx context.Context, repo catalog.Repository[T], p pagination.Params, project func(*T) V) (*pagination.Page[V], error) {
	page, err := repo.List(ctx, p)
	if err != nil {
		return nil, err
	}
	return pagination.Map(page, project), nil
}

// getView 按ID查询并投影为视图
func getView[T, V any](ctx context.Context, repo catalog.Repository[T], id uint, project func(*T) V) (V, error) {
	entity, err := repo.FindByID(ctx, id)
	if err != nil {
		var zero V
		return zero, err
	}
	return project(entity), nil
}

// allViews 全部记录投影为视图
func allViews[T, V any](ctx context.Context, repo catalog.Repository[T], project func(*T) V) ([]V, error) {
	entities, err := repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]V, len(entities))
	for i, e := range entities {
		views[i] = project(e)
	}
	return views, nil
}

// saveAndReload 在事务内写入后重新读取(带关联)
func saveAndReload[T, V any](
	ctx context.Context,
	tx catalog.Transactor,
	repo catalog.Repository[T],
	write func(ctx context.Context) (uint, error),
	project func(*T) V,
) (V, error) {
	var view V
	err := tx.Transaction(ctx, func(ctx context.Context) error {
		id, err := write(ctx)
		if err != nil {
			return err
		}
		entity, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		view = project(entity)
		return nil
	})
	return view, err
}
