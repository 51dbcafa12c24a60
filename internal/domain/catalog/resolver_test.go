package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEditors 只实现解析器用到的方法
type fakeEditors struct {
	byID      map[uint]*Editor
	nextID    uint
	creates   int
	createErr error
	// onCreate 模拟并发:在Create返回重复错误前先插入同名记录
	onCreate func(name string)

	createCtx context.Context
	findCtx   context.Context
}

func newFakeEditors(existing ...*Editor) *fakeEditors {
	f := &fakeEditors{byID: map[uint]*Editor{}, nextID: 1}
	for _, e := range existing {
		f.byID[e.ID] = e
		if e.ID >= f.nextID {
			f.nextID = e.ID + 1
		}
	}
	return f
}

func (f *fakeEditors) FindByID(_ context.Context, id uint) (*Editor, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, ErrEditorNotFound
}

func (f *fakeEditors) FindByName(ctx context.Context, name string) (*Editor, error) {
	f.findCtx = ctx
	for _, e := range f.byID {
		if e.Name == name {
			return e, nil
		}
	}
	return nil, ErrEditorNotFound
}

func (f *fakeEditors) Create(ctx context.Context, e *Editor) error {
	f.createCtx = ctx
	f.creates++
	if f.onCreate != nil {
		f.onCreate(e.Name)
		return ErrEditorNameDuplicate
	}
	if f.createErr != nil {
		return f.createErr
	}
	e.ID = f.nextID
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

type savepointKey struct{}

// fakeTx 记录嵌套事务的开启和回滚
type fakeTx struct {
	opened     int
	rolledBack int
}

func (f *fakeTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.opened++
	if err := fn(context.WithValue(ctx, savepointKey{}, f.opened)); err != nil {
		f.rolledBack++
		return err
	}
	return nil
}

func inSavepoint(ctx context.Context) bool {
	return ctx != nil && ctx.Value(savepointKey{}) != nil
}

func newTestResolver(store *fakeEditors) *ReferenceResolver[Editor] {
	return newTestResolverWithTx(store, &fakeTx{})
}

func newTestResolverWithTx(store *fakeEditors, tx Transactor) *ReferenceResolver[Editor] {
	return &ReferenceResolver[Editor]{
		store:     store,
		tx:        tx,
		build:     NewEditor,
		notFound:  ErrEditorNotFound,
		duplicate: ErrEditorNameDuplicate,
	}
}

func TestReferenceResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("ID存在时直接返回并忽略名称", func(t *testing.T) {
		store := newFakeEditors(&Editor{ID: 3, Name: "Acme"})
		got, created, err := newTestResolver(store).Resolve(ctx, Reference{ID: 3, Name: "Other"})

		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, uint(3), got.ID)
		assert.Equal(t, "Acme", got.Name)
		assert.Zero(t, store.creates)
	})

	t.Run("ID不存在时按名称创建", func(t *testing.T) {
		store := newFakeEditors()
		got, created, err := newTestResolver(store).Resolve(ctx, Reference{ID: 99, Name: "Acme"})

		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "Acme", got.Name)
		assert.NotZero(t, got.ID)
		assert.Equal(t, 1, store.creates)
	})

	t.Run("同名记录已存在时复用", func(t *testing.T) {
		store := newFakeEditors(&Editor{ID: 5, Name: "Acme"})
		got, created, err := newTestResolver(store).Resolve(ctx, Reference{Name: "  Acme "})

		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, uint(5), got.ID)
		assert.Zero(t, store.creates)
	})

	t.Run("既无ID也无名称", func(t *testing.T) {
		_, _, err := newTestResolver(newFakeEditors()).Resolve(ctx, Reference{Name: "   "})
		assert.ErrorIs(t, err, ErrReferenceUnresolvable)
	})

	t.Run("唯一约束冲突后重新读取", func(t *testing.T) {
		store := newFakeEditors()
		store.onCreate = func(name string) {
			store.byID[42] = &Editor{ID: 42, Name: name}
		}

		got, created, err := newTestResolver(store).Resolve(ctx, Reference{Name: "Acme"})

		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, uint(42), got.ID)
	})

	t.Run("插入在Savepoint中执行且冲突后在外层重新读取", func(t *testing.T) {
		store := newFakeEditors()
		store.onCreate = func(name string) {
			store.byID[7] = &Editor{ID: 7, Name: name}
		}
		tx := &fakeTx{}

		got, created, err := newTestResolverWithTx(store, tx).Resolve(ctx, Reference{Name: "Acme"})

		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, uint(7), got.ID)
		assert.Equal(t, 1, tx.opened)
		assert.Equal(t, 1, tx.rolledBack, "冲突只回滚到Savepoint")
		assert.True(t, inSavepoint(store.createCtx))
		assert.False(t, inSavepoint(store.findCtx), "重新读取不能在已回滚的Savepoint中执行")
		t.Log("✓ 唯一约束冲突不影响外层事务")
	})

	t.Run("正常创建也使用Savepoint", func(t *testing.T) {
		store := newFakeEditors()
		tx := &fakeTx{}

		_, created, err := newTestResolverWithTx(store, tx).Resolve(ctx, Reference{Name: "Acme"})

		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, 1, tx.opened)
		assert.Zero(t, tx.rolledBack)
		assert.True(t, inSavepoint(store.createCtx))
	})

	t.Run("冲突后仍找不到记录返回重复错误", func(t *testing.T) {
		store := newFakeEditors()
		store.onCreate = func(string) {}

		_, _, err := newTestResolver(store).Resolve(ctx, Reference{Name: "Acme"})
		assert.ErrorIs(t, err, ErrEditorNameDuplicate)
	})

	t.Run("存储错误原样返回", func(t *testing.T) {
		boom := errors.New("connection reset")
		store := newFakeEditors()
		store.createErr = boom

		_, _, err := newTestResolver(store).Resolve(ctx, Reference{Name: "Acme"})
		assert.ErrorIs(t, err, boom)
	})
}

func TestNewResolvers(t *testing.T) {
	assert.NotNil(t, NewEditorResolver(nil, &fakeTx{}))
	assert.NotNil(t, NewGenreResolver(nil, &fakeTx{}))
}
