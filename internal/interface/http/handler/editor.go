package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/xiebiao/bookcatalog/internal/application/catalog"
	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
)

// EditorHandler 出版社HTTP处理器
type EditorHandler struct {
	res resource[appcatalog.NamedInput, *appcatalog.EditorView]
}

// NewEditorHandler 创建出版社处理器
func NewEditorHandler(uc *appcatalog.EditorUseCase) *EditorHandler {
	return &EditorHandler{res: resource[appcatalog.NamedInput, *appcatalog.EditorView]{uc: uc, notFound: catalog.ErrEditorNotFound}}
}

// List 出版社列表
// @Summary      出版社列表
// @Description  按ID升序分页，分页元数据同时写入X-Pagination响应头
// @Tags         出版社
// @Produce      json
// @Param        page_number query int false "页码" default(1)
// @Param        page_size   query int false "每页数量(最大50)" default(10)
// @Success      200 {object} response.Response{data=response.PageData{list=[]appcatalog.EditorView}}
// @Failure      400 {object} response.Response "分页参数错误"
// @Router       /api/v1/editors [get]
func (h *EditorHandler) List(c *gin.Context) { h.res.list(c) }

// Page 出版社列表(路径分页)
// @Summary      出版社列表(路径分页)
// @Tags         出版社
// @Produce      json
// @Param        page_number path int true "页码"
// @Param        page_size   path int true "每页数量(最大50)"
// @Success      200 {object} response.Response{data=response.PageData{list=[]appcatalog.EditorView}}
// @Failure      400 {object} response.Response "分页参数错误"
// @Router       /api/v1/editors/page/{page_number}/{page_size} [get]
func (h *EditorHandler) Page(c *gin.Context) { h.res.page(c) }

// Get 出版社详情
// @Summary      出版社详情
// @Tags         出版社
// @Produce      json
// @Param        id path int true "出版社ID"
// @Success      200 {object} response.Response{data=appcatalog.EditorView}
// @Failure      400 {object} response.Response "出版社不存在"
// @Router       /api/v1/editors/{id} [get]
func (h *EditorHandler) Get(c *gin.Context) { h.res.get(c) }

// Delete 删除出版社
// @Summary      删除出版社
// @Tags         出版社
// @Param        id path int true "出版社ID"
// @Success      204 "删除成功"
// @Failure      400 {object} response.Response "出版社不存在或仍被引用"
// @Router       /api/v1/editors/{id} [delete]
func (h *EditorHandler) Delete(c *gin.Context) { h.res.remove(c) }

// Create 创建出版社
// @Summary      创建出版社
// @Description  名称唯一，重复返回40009
// @Tags         出版社
// @Accept       json
// @Produce      json
// @Param        request body dto.EditorRequest true "出版社信息"
// @Success      200 {object} response.Response{data=appcatalog.EditorView}
// @Failure      400 {object} response.Response "参数错误或名称重复"
// @Router       /api/v1/editors [post]
func (h *EditorHandler) Create(c *gin.Context) {
	var req dto.EditorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	h.res.create(c, req.ToInput())
}

// Update 出版社改名
// @Summary      更新出版社
// @Tags         出版社
// @Accept       json
// @Produce      json
// @Param        request body dto.EditorRequest true "出版社信息"
// @Success      200 {object} response.Response{data=appcatalog.EditorView}
// @Failure      400 {object} response.Response "参数错误或出版社不存在"
// @Router       /api/v1/editors [put]
func (h *EditorHandler) Update(c *gin.Context) {
	var req dto.EditorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	h.res.update(c, req.ID, req.ToInput())
}
