package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// crudUseCase 五类实体共用的用例形状
type crudUseCase[In, V any] interface {
	List(ctx context.Context, p pagination.Params) (*pagination.Page[V], error)
	Get(ctx context.Context, id uint) (V, error)
	Create(ctx context.Context, in In) (V, error)
	Update(ctx context.Context, in In) (V, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

// resource 通用的列表/详情/保存/删除处理
// 各实体Handler只负责绑定自己的请求DTO
type resource[In, V any] struct {
	uc       crudUseCase[In, V]
	notFound error
}

// ErrMissingID 更新请求缺少id
var ErrMissingID = apperrors.New(apperrors.ErrCodeInvalidParams, "更新时id必须大于0")

// list 查询参数分页，未传时使用默认值
func (r resource[In, V]) list(c *gin.Context) {
	req := dto.PageRequest{
		PageNumber: pagination.DefaultPageNumber,
		PageSize:   pagination.DefaultPageSize,
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}
	r.respondPage(c, req.PageNumber, req.PageSize)
}

// page 路径分页 /page/{page_number}/{page_size}
func (r resource[In, V]) page(c *gin.Context) {
	var req dto.PagePath
	if err := c.ShouldBindUri(&req); err != nil {
		bindError(c, err)
		return
	}
	r.respondPage(c, req.PageNumber, req.PageSize)
}

func (r resource[In, V]) respondPage(c *gin.Context, pageNumber, pageSize int) {
	params, err := pagination.NewParams(pageNumber, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	page, err := r.uc.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, page)
}

func (r resource[In, V]) get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	view, err := r.uc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

func (r resource[In, V]) create(c *gin.Context, in In) {
	view, err := r.uc.Create(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

func (r resource[In, V]) update(c *gin.Context, id uint, in In) {
	if id == 0 {
		response.Error(c, ErrMissingID)
		return
	}
	view, err := r.uc.Update(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// remove 删除成功返回204，记录不存在返回400
func (r resource[In, V]) remove(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	deleted, err := r.uc.Delete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !deleted {
		response.Error(c, r.notFound)
		return
	}
	response.NoContent(c)
}

func bindID(c *gin.Context) (uint, bool) {
	var req dto.IDPath
	if err := c.ShouldBindUri(&req); err != nil {
		bindError(c, err)
		return 0, false
	}
	return req.ID, true
}

func bindError(c *gin.Context, err error) {
	response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
}
