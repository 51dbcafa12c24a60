package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/xiebiao/bookcatalog/internal/application/catalog"
	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
)

// GenreHandler 图书类型HTTP处理器
type GenreHandler struct {
	res resource[appcatalog.NamedInput, *appcatalog.GenreView]
}

// NewGenreHandler 创建图书类型处理器
func NewGenreHandler(uc *appcatalog.GenreUseCase) *GenreHandler {
	return &GenreHandler{res: resource[appcatalog.NamedInput, *appcatalog.GenreView]{uc: uc, notFound: catalog.ErrGenreNotFound}}
}

// List 图书类型列表
// @Summary      图书类型列表
// @Description  按ID升序分页，分页元数据同时写入X-Pagination响应头
// @Tags         图书类型
// @Produce      json
// @Param        page_number query int false "页码" default(1)
// @Param        page_size   query int false "每页数量(最大50)" default(10)
// @Success      200 {object} response.Response{data=response.PageData{list=[]appcatalog.GenreView}}
// @Failure      400 {object} response.Response "分页参数错误"
// @Router       /api/v1/genres [get]
func (h *GenreHandler) List(c *gin.Context) { h.res.list(c) }

// Page 图书类型列表(路径分页)
// @Summary      图书类型列表(路径分页)
// @Tags         图书类型
// @Produce      json
// @Param        page_number path int true "页码"
// @Param        page_size   path int true "每页数量(最大50)"
// @Success      200 {object} response.Response{data=response.PageData{list=[]appcatalog.GenreView}}
// @Failure      400 {object} response.Response "分页参数错误"
// @Router       /api/v1/genres/page/{page_number}/{page_size} [get]
func (h *GenreHandler) Page(c *gin.Context) { h.res.page(c) }

// Get 图书类型详情
// @Summary      图书类型详情
// @Tags         图书类型
// @Produce      json
// @Param        id path int true "图书类型ID"
// @Success      200 {object} response.Response{data=appcatalog.GenreView}
// @Failure      400 {object} response.Response "图书类型不存在"
// @Router       /api/v1/genres/{id} [get]
func (h *GenreHandler) Get(c *gin.Context) { h.res.get(c) }

// Delete 删除图书类型
// @Summary      删除图书类型
// @Tags         图书类型
// @Param        id path int true "图书类型ID"
// @Success      204 "删除成功"
// @Failure      400 {object} response.Response "图书类型不存在或仍被引用"
// @Router       /api/v1/genres/{id} [delete]
func (h *GenreHandler) Delete(c *gin.Context) { h.res.remove(c) }

// Create 创建图书类型
// @Summary      创建图书类型
// @Tags         图书类型
// @Accept       json
// @Produce      json
// @Param        request body dto.GenreRequest true "类型信息"
// @Success      200 {object} response.Response{data=appcatalog.GenreView}
// @Failure      400 {object} response.Response "参数错误或名称重复"
// @Router       /api/v1/genres [post]
func (h *GenreHandler) Create(c *gin.Context) {
	var req dto.GenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	h.res.create(c, req.ToInput())
}

// Update 更新图书类型
// @Summary      更新图书类型
// @Tags         图书类型
// @Accept       json
// @Produce      json
// @Param        request body dto.GenreRequest true "类型信息"
// @Success      200 {object} response.Response{data=appcatalog.GenreView}
// @Failure      400 {object} response.Response "参数错误或类型不存在"
// @Router       /api/v1/genres [put]
func (h *GenreHandler) Update(c *gin.Context) {
	var req dto.GenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	h.res.update(c, req.ID, req.ToInput())
}
