package catalog

import (
	"context"
	"strings"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
)

// GenreUseCase 图书类型增删改查
type GenreUseCase struct {
	genres catalog.GenreRepository
	tx     catalog.Transactor
	locker catalog.NameLocker
}

// NewGenreUseCase 创建类型用例
func NewGenreUseCase(genres catalog.GenreRepository, tx catalog.Transactor, locker catalog.NameLocker) *GenreUseCase {
	return &GenreUseCase{genres: genres, tx: tx, locker: locker}
}

func (uc *GenreUseCase) List(ctx context.Context, p pagination.Params) (*pagination.Page[*GenreView], error) {
	return listView[catalog.Genre](ctx, uc.genres, p, NewGenreView)
}

func (uc *GenreUseCase) Get(ctx context.Context, id uint) (*GenreView, error) {
	return getView[catalog.Genre](ctx, uc.genres, id, NewGenreView)
}

func (uc *GenreUseCase) Create(ctx context.Context, in NamedInput) (*GenreView, error) {
	name := strings.TrimSpace(in.Name)
	unlock, err := lockNames(ctx, uc.locker, genreLockKey(name))
	if err != nil {
		return nil, err
	}
	defer unlock()

	return saveAndReload[catalog.Genre](ctx, uc.tx, uc.genres, func(ctx context.Context) (uint, error) {
		g := catalog.NewGenre(name)
		if err := uc.genres.Create(ctx, g); err != nil {
			return 0, err
		}
		return g.ID, nil
	}, NewGenreView)
}

func (uc *GenreUseCase) Update(ctx context.Context, in NamedInput) (*GenreView, error) {
	name := strings.TrimSpace(in.Name)
	unlock, err := lockNames(ctx, uc.locker, genreLockKey(name))
	if err != nil {
		return nil, err
	}
	defer unlock()

	return saveAndReload[catalog.Genre](ctx, uc.tx, uc.genres, func(ctx context.Context) (uint, error) {
		g := &catalog.Genre{ID: in.ID, Name: name}
		return g.ID, uc.genres.Update(ctx, g)
	}, NewGenreView)
}

func (uc *GenreUseCase) Delete(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := uc.tx.Transaction(ctx, func(ctx context.Context) (err error) {
		deleted, err = uc.genres.Delete(ctx, id)
		return err
	})
	return deleted, err
}
