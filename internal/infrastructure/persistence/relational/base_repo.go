package relational

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
)

// baseRepository 各实体仓储共用的GORM操作
// M是GORM模型类型；preload决定读取时加载哪些关联
// 设计说明:
// 1. 所有查询按id升序，分页结果稳定
// 2. 写操作不级联保存关联(Omit(clause.Associations))，关联由上层显式维护
// 3. 存储错误统一包装为WrapDB，唯一约束/外键冲突翻译为领域错误
type baseRepository[M any] struct {
	db        *gorm.DB
	name      string // 实体名称，用于错误信息
	preload   func(*gorm.DB) *gorm.DB
	notFound  error
	duplicate error
}

// conn 优先使用context中的事务
func (r *baseRepository[M]) conn(ctx context.Context) *gorm.DB {
	return getDB(ctx, r.db)
}

// reader 带预加载的查询
func (r *baseRepository[M]) reader(ctx context.Context) *gorm.DB {
	db := r.conn(ctx)
	if r.preload != nil {
		db = db.Scopes(r.preload)
	}
	return db
}

// page 先COUNT再按id升序取一页
// 超出最后一页时不再查询数据，直接返回空列表
func (r *baseRepository[M]) page(ctx context.Context, p pagination.Params) ([]M, int64, error) {
	var total int64
	if err := r.conn(ctx).Model(new(M)).Count(&total).Error; err != nil {
		return nil, 0, apperrors.WrapDB(err, "查询"+r.name+"总数失败")
	}

	models := make([]M, 0, p.Limit())
	if total <= int64(p.Offset()) {
		return models, total, nil
	}

	err := r.reader(ctx).
		Order("id ASC").
		Offset(p.Offset()).
		Limit(p.Limit()).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.WrapDB(err, "查询"+r.name+"列表失败")
	}
	return models, total, nil
}

// all 按id升序返回全部记录
func (r *baseRepository[M]) all(ctx context.Context) ([]M, error) {
	var models []M
	if err := r.reader(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.WrapDB(err, "查询"+r.name+"列表失败")
	}
	return models, nil
}

// first 按条件取第一条(带预加载)
func (r *baseRepository[M]) first(ctx context.Context, query interface{}, args ...interface{}) (*M, error) {
	var model M
	err := r.reader(ctx).Where(query, args...).Order("id ASC").First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, r.notFound
		}
		return nil, apperrors.WrapDB(err, "查询"+r.name+"失败")
	}
	return &model, nil
}

// firstForShare 按条件取第一条，不加载关联
// 在事务中加共享锁读取(FOR SHARE)：MySQL可重复读下普通SELECT读的是事务快照，
// 看不到并发事务刚提交的记录，加锁读总是读取最新提交的版本。SQLite忽略该子句
func (r *baseRepository[M]) firstForShare(ctx context.Context, query interface{}, args ...interface{}) (*M, error) {
	db := r.conn(ctx)
	if inTransaction(ctx) {
		db = db.Clauses(clause.Locking{Strength: clause.LockingStrengthShare})
	}

	var model M
	err := db.Where(query, args...).Order("id ASC").First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, r.notFound
		}
		return nil, apperrors.WrapDB(err, "查询"+r.name+"失败")
	}
	return &model, nil
}

// findByID 根据主键查找
func (r *baseRepository[M]) findByID(ctx context.Context, id uint) (*M, error) {
	if id == 0 {
		return nil, r.notFound
	}
	return r.first(ctx, "id = ?", id)
}

// create 插入记录，GORM回填自增ID
func (r *baseRepository[M]) create(ctx context.Context, model *M) error {
	if err := r.conn(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
		return r.translate(err, "创建"+r.name+"失败")
	}
	return nil
}

// update 把values合并到已有记录
// 先确认记录存在：MySQL在值未变化时RowsAffected为0，不能据此判断记录不存在
func (r *baseRepository[M]) update(ctx context.Context, id uint, values map[string]interface{}) error {
	var count int64
	if err := r.conn(ctx).Model(new(M)).Where("id = ?", id).Count(&count).Error; err != nil {
		return apperrors.WrapDB(err, "查询"+r.name+"失败")
	}
	if count == 0 {
		return r.notFound
	}

	err := r.conn(ctx).Model(new(M)).Where("id = ?", id).Omit(clause.Associations).Updates(values).Error
	if err != nil {
		return r.translate(err, "更新"+r.name+"失败")
	}
	return nil
}

// delete 硬删除，返回是否删除了记录
func (r *baseRepository[M]) delete(ctx context.Context, id uint) (bool, error) {
	if id == 0 {
		return false, nil
	}

	result := r.conn(ctx).Where("id = ?", id).Delete(new(M))
	if result.Error != nil {
		if isForeignKeyError(result.Error) {
			return false, catalog.ErrReferenceInUse
		}
		return false, apperrors.WrapDB(result.Error, "删除"+r.name+"失败")
	}
	return result.RowsAffected > 0, nil
}

// translate 写操作错误翻译
func (r *baseRepository[M]) translate(err error, message string) error {
	if isDuplicateError(err) {
		if r.duplicate != nil {
			return r.duplicate
		}
		return apperrors.ErrDuplicateEntry
	}
	return apperrors.WrapDB(err, message)
}

// newPage 把模型分页结果转换为实体分页结果
func newPage[M, T any](models []M, total int64, p pagination.Params, convert func(*M) *T) *pagination.Page[*T] {
	items := make([]*T, len(models))
	for i := range models {
		items[i] = convert(&models[i])
	}
	return pagination.NewPage(items, total, p)
}

// convertAll 批量转换
func convertAll[M, T any](models []M, convert func(*M) *T) []*T {
	items := make([]*T, len(models))
	for i := range models {
		items[i] = convert(&models[i])
	}
	return items
}
