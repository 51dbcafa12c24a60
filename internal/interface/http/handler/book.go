package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/xiebiao/bookcatalog/internal/application/catalog"
	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// BookHandler 图书HTTP处理器
// 设计说明：
// 1. Handler只负责解析请求、调用应用层、返回响应
// 2. 出版社/类型/作者的查找或创建、作者关联同步都在应用层完成
// 3. 业务错误统一交给response.Error映射状态码
type BookHandler struct {
	res resource[appcatalog.BookInput, *appcatalog.BookView]
}

// NewBookHandler 创建图书处理器
func NewBookHandler(uc *appcatalog.BookUseCase) *BookHandler {
	return &BookHandler{res: resource[appcatalog.BookInput, *appcatalog.BookView]{uc: uc, notFound: catalog.ErrBookNotFound}}
}

// List 图书列表
// @Summary      图书列表
// @Description  按ID升序分页，每本书带出版社、类型、书号和作者
// @Tags         图书
// @Produce      json
// @Param        page_number query int false "页码" default(1)
// @Param        page_size   query int false "每页数量(最大50)" default(10)
// @Success      200 {object} response.Response{data=response.PageData{list=[]appcatalog.BookView}}
// @Failure      400 {object} response.Response "分页参数错误"
// @Router       /api/v1/books [get]
func (h *BookHandler) List(c *gin.Context) { h.res.list(c) }

// Page 图书列表(路径分页)
// @Summary      图书列表(路径分页)
// @Tags         图书
// @Produce      json
// @Param        page_number path int true "页码"
// @Param        page_size   path int true "每页数量(最大50)"
// @Success      200 {object} response.Response{data=response.PageData{list=[]appcatalog.BookView}}
// @Failure      400 {object} response.Response "分页参数错误"
// @Router       /api/v1/books/page/{page_number}/{page_size} [get]
func (h *BookHandler) Page(c *gin.Context) { h.res.page(c) }

// Get 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=appcatalog.BookView}
// @Failure      400 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) { h.res.get(c) }

// Create 创建图书
// @Summary      创建图书
// @Description  出版社/类型按id引用，id无效时按名称查找或创建；作者按id引用，否则按字段创建；书号总是新建
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.BookRequest true "图书信息"
// @Success      200 {object} response.Response{data=appcatalog.BookView}
// @Failure      400 {object} response.Response "参数错误或关联对象无法解析"
// @Failure      500 {object} response.Response "存储错误"
// @Router       /api/v1/books [post]
func (h *BookHandler) Create(c *gin.Context) {
	in, ok := bindBook(c)
	if !ok {
		return
	}
	h.res.create(c, in)
}

// Update 更新图书
// @Summary      更新图书
// @Description  原地更新书号；作者关联按集合差同步(删除多余的、补充缺少的)
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.BookRequest true "图书信息(id必填)"
// @Success      200 {object} response.Response{data=appcatalog.BookView}
// @Failure      400 {object} response.Response "参数错误或图书不存在"
// @Failure      500 {object} response.Response "存储错误"
// @Router       /api/v1/books [put]
func (h *BookHandler) Update(c *gin.Context) {
	in, ok := bindBook(c)
	if !ok {
		return
	}
	h.res.update(c, in.ID, in)
}

// Delete 删除图书(同时删除书号和作者关联，作者保留)
// @Summary      删除图书
// @Tags         图书
// @Param        id path int true "图书ID"
// @Success      204 "删除成功"
// @Failure      400 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) { h.res.remove(c) }

func bindBook(c *gin.Context) (appcatalog.BookInput, bool) {
	// 1. 绑定并校验格式
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return appcatalog.BookInput{}, false
	}

	// 2. 价格和日期转换
	in, err := req.ToInput()
	if err != nil {
		response.Error(c, err)
		return appcatalog.BookInput{}, false
	}
	return in, true
}
