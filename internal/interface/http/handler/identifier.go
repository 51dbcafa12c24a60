package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/xiebiao/bookcatalog/internal/application/catalog"
	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
)

// IdentifierHandler 书号HTTP处理器
type IdentifierHandler struct {
	res resource[appcatalog.IdentifierInput, *appcatalog.IdentifierView]
}

// NewIdentifierHandler 创建书号处理器
func NewIdentifierHandler(uc *appcatalog.IdentifierUseCase) *IdentifierHandler {
	return &IdentifierHandler{res: resource[appcatalog.IdentifierInput, *appcatalog.IdentifierView]{uc: uc, notFound: catalog.ErrIdentifierNotFound}}
}

// List 书号列表
// @Summary      书号列表
// @Description  按ID升序分页，分页元数据同时写入X-Pagination响应头
// @Tags         书号
// @Produce      json
// @Param        page_number query int false "页码" default(1)
// @Param        page_size   query int false "每页数量(最大50)" default(10)
// @Success      200 {object} response.Response{data=response.PageData{list=[]appcatalog.IdentifierView}}
// @Failure      400 {object} response.Response "分页参数错误"
// @Router       /api/v1/identifiers [get]
func (h *IdentifierHandler) List(c *gin.Context) { h.res.list(c) }

// Page 书号列表(路径分页)
// @Summary      书号列表(路径分页)
// @Tags         书号
// @Produce      json
// @Param        page_number path int true "页码"
// @Param        page_size   path int true "每页数量(最大50)"
// @Success      200 {object} response.Response{data=response.PageData{list=[]appcatalog.IdentifierView}}
// @Failure      400 {object} response.Response "分页参数错误"
// @Router       /api/v1/identifiers/page/{page_number}/{page_size} [get]
func (h *IdentifierHandler) Page(c *gin.Context) { h.res.page(c) }

// Get 书号详情
// @Summary      书号详情
// @Tags         书号
// @Produce      json
// @Param        id path int true "书号ID"
// @Success      200 {object} response.Response{data=appcatalog.IdentifierView}
// @Failure      400 {object} response.Response "书号不存在"
// @Router       /api/v1/identifiers/{id} [get]
func (h *IdentifierHandler) Get(c *gin.Context) { h.res.get(c) }

// Delete 删除书号
// @Summary      删除书号
// @Tags         书号
// @Param        id path int true "书号ID"
// @Success      204 "删除成功"
// @Failure      400 {object} response.Response "书号不存在或仍被引用"
// @Router       /api/v1/identifiers/{id} [delete]
func (h *IdentifierHandler) Delete(c *gin.Context) { h.res.remove(c) }

// Create 创建书号
// @Summary      创建书号
// @Tags         书号
// @Accept       json
// @Produce      json
// @Param        request body dto.IdentifierRequest true "书号信息"
// @Success      200 {object} response.Response{data=appcatalog.IdentifierView}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/identifiers [post]
func (h *IdentifierHandler) Create(c *gin.Context) {
	var req dto.IdentifierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	h.res.create(c, req.ToInput())
}

// Update 更新书号
// @Summary      更新书号
// @Tags         书号
// @Accept       json
// @Produce      json
// @Param        request body dto.IdentifierRequest true "书号信息"
// @Success      200 {object} response.Response{data=appcatalog.IdentifierView}
// @Failure      400 {object} response.Response "参数错误或书号不存在"
// @Router       /api/v1/identifiers [put]
func (h *IdentifierHandler) Update(c *gin.Context) {
	var req dto.IdentifierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	h.res.update(c, req.ID, req.ToInput())
}
