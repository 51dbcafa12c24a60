package relational

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// authorBookRepository 作者-图书关联仓储实现
type authorBookRepository struct {
	db *gorm.DB
}

// NewAuthorBookRepository 创建关联仓储
func NewAuthorBookRepository(db *gorm.DB) catalog.AuthorBookRepository {
	return &authorBookRepository{db: db}
}

// Create 创建关联，联合主键冲突返回ErrAuthorBookDuplicate
func (r *authorBookRepository) Create(ctx context.Context, link *catalog.AuthorBook) error {
	model := &AuthorBookModel{
		AuthorID: link.AuthorID,
		BookID:   link.BookID,
	}
	if err := getDB(ctx, r.db).Omit("Author", "Book").Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return catalog.ErrAuthorBookDuplicate
		}
		return apperrors.WrapDB(err, "创建作者关联失败")
	}
	return nil
}

// Delete 删除单个关联
func (r *authorBookRepository) Delete(ctx context.Context, authorID, bookID uint) (bool, error) {
	result := getDB(ctx, r.db).
		Where("author_id = ? AND book_id = ?", authorID, bookID).
		Delete(&AuthorBookModel{})
	if result.Error != nil {
		return false, apperrors.WrapDB(result.Error, "删除作者关联失败")
	}
	return result.RowsAffected > 0, nil
}

// ListByBook 查询图书的全部关联(按作者ID升序)
func (r *authorBookRepository) ListByBook(ctx context.Context, bookID uint) ([]*catalog.AuthorBook, error) {
	var models []AuthorBookModel
	err := getDB(ctx, r.db).
		Where("book_id = ?", bookID).
		Order("author_id ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.WrapDB(err, "查询作者关联失败")
	}

	links := make([]*catalog.AuthorBook, len(models))
	for i, m := range models {
		links[i] = &catalog.AuthorBook{AuthorID: m.AuthorID, BookID: m.BookID}
	}
	return links, nil
}

// DeleteByBook 删除图书的全部关联
func (r *authorBookRepository) DeleteByBook(ctx context.Context, bookID uint) (int64, error) {
	result := getDB(ctx, r.db).
		Where("book_id = ?", bookID).
		Delete(&AuthorBookModel{})
	if result.Error != nil {
		return 0, apperrors.WrapDB(result.Error, "删除作者关联失败")
	}
	return result.RowsAffected, nil
}
