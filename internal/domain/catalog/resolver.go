package catalog

import (
	"context"
	"errors"
	"strings"
)

// Reference 对出版社/类型的引用
// ID优先;ID无效或不存在时按Name查找或创建
type Reference struct {
	ID   uint
	Name string
}

// NormalizedName 去掉首尾空白后的名称
func (r Reference) NormalizedName() string {
	return strings.TrimSpace(r.Name)
}

// namedStore 解析器依赖的最小仓储能力
type namedStore[T any] interface {
	FindByID(ctx context.Context, id uint) (*T, error)
	FindByName(ctx context.Context, name string) (*T, error)
	Create(ctx context.Context, entity *T) error
}

// ReferenceResolver 查找或创建(get-or-create)
// 规则:
// 1. ID>0且记录存在 → 直接返回(忽略Name)
// 2. 按名称查找,存在则返回,不存在则创建
// 3. 创建时遇到唯一约束冲突(并发创建了同名记录) → 重新按名称读取
// 4. 既无可用ID也无名称 → ErrReferenceUnresolvable
//
// 插入在嵌套事务(Savepoint)中执行,冲突只回滚这一条插入,外层事务仍可继续读取。
// PostgreSQL中失败的语句会使整个事务进入aborted状态,不回滚到Savepoint就无法再查询。
type ReferenceResolver[T any] struct {
	store     namedStore[T]
	tx        Transactor
	build     func(name string) *T
	notFound  error
	duplicate error
}

// NewEditorResolver 出版社解析器
func NewEditorResolver(repo EditorRepository, tx Transactor) *ReferenceResolver[Editor] {
	return &ReferenceResolver[Editor]{
		store:     repo,
		tx:        tx,
		build:     NewEditor,
		notFound:  ErrEditorNotFound,
		duplicate: ErrEditorNameDuplicate,
	}
}

// NewGenreResolver 类型解析器
func NewGenreResolver(repo GenreRepository, tx Transactor) *ReferenceResolver[Genre] {
	return &ReferenceResolver[Genre]{
		store:     repo,
		tx:        tx,
		build:     NewGenre,
		notFound:  ErrGenreNotFound,
		duplicate: ErrGenreNameDuplicate,
	}
}

// Resolve 解析引用,created表示是否新建了记录
func (r *ReferenceResolver[T]) Resolve(ctx context.Context, ref Reference) (entity *T, created bool, err error) {
	if ref.ID > 0 {
		entity, err = r.store.FindByID(ctx, ref.ID)
		if err == nil {
			return entity, false, nil
		}
		if !errors.Is(err, r.notFound) {
			return nil, false, err
		}
	}

	name := ref.NormalizedName()
	if name == "" {
		return nil, false, ErrReferenceUnresolvable
	}

	entity, err = r.findByName(ctx, name)
	if err != nil || entity != nil {
		return entity, false, err
	}

	entity = r.build(name)
	err = r.tx.Transaction(ctx, func(ctx context.Context) error {
		return r.store.Create(ctx, entity)
	})
	if err != nil {
		if !errors.Is(err, r.duplicate) {
			return nil, false, err
		}
		// 并发请求已创建同名记录
		entity, err = r.findByName(ctx, name)
		if err != nil {
			return nil, false, err
		}
		if entity == nil {
			return nil, false, r.duplicate
		}
		return entity, false, nil
	}

	return entity, true, nil
}

// findByName 不存在时返回(nil, nil)
func (r *ReferenceResolver[T]) findByName(ctx context.Context, name string) (*T, error) {
	entity, err := r.store.FindByName(ctx, name)
	if err == nil {
		return entity, nil
	}
	if errors.Is(err, r.notFound) {
		return nil, nil
	}
	return nil, err
}
