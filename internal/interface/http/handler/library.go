package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/xiebiao/bookcatalog/internal/application/catalog"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// LibraryHandler 只读诊断接口
type LibraryHandler struct {
	uc *appcatalog.LibraryUseCase
}

// NewLibraryHandler 创建诊断处理器
func NewLibraryHandler(uc *appcatalog.LibraryUseCase) *LibraryHandler {
	return &LibraryHandler{uc: uc}
}

// Dump 导出整张表
// @Summary      导出整张表
// @Description  不分页，每条记录带直接关联；kind取值authors/editors/genres/identifiers/books
// @Tags         诊断
// @Produce      json
// @Param        kind path string true "表名" Enums(authors, editors, genres, identifiers, books)
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "不支持的表名"
// @Router       /api/v1/library/{kind} [get]
func (h *LibraryHandler) Dump(c *gin.Context) {
	data, err := h.uc.Dump(c.Request.Context(), appcatalog.LibraryKind(c.Param("kind")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, data)
}
