package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/xiebiao/bookcatalog/internal/application/catalog"
	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// AuthorHandler 作者HTTP处理器
type AuthorHandler struct {
	res resource[appcatalog.AuthorInput, *appcatalog.AuthorView]
}

// NewAuthorHandler 创建作者处理器
func NewAuthorHandler(uc *appcatalog.AuthorUseCase) *AuthorHandler {
	return &AuthorHandler{res: resource[appcatalog.AuthorInput, *appcatalog.AuthorView]{uc: uc, notFound: catalog.ErrAuthorNotFound}}
}

// List 作者列表
// @Summary      作者列表
// @Description  按ID升序分页，分页元数据同时写入X-Pagination响应头
// @Tags         作者
// @Produce      json
// @Param        page_number query int false "页码" default(1)
// @Param        page_size   query int false "每页数量(最大50)" default(10)
// @Success      200 {object} response.Response{data=response.PageData{list=[]appcatalog.AuthorView}}
// @Failure      400 {object} response.Response "分页参数错误"
// @Router       /api/v1/authors [get]
func (h *AuthorHandler) List(c *gin.Context) { h.res.list(c) }

// Page 作者列表(路径分页)
// @Summary      作者列表(路径分页)
// @Tags         作者
// @Produce      json
// @Param        page_number path int true "页码"
// @Param        page_size   path int true "每页数量(最大50)"
// @Success      200 {object} response.Response{data=response.PageData{list=[]appcatalog.AuthorView}}
// @Failure      400 {object} response.Response "分页参数错误"
// @Router       /api/v1/authors/page/{page_number}/{page_size} [get]
func (h *AuthorHandler) Page(c *gin.Context) { h.res.page(c) }

// Get 作者详情
// @Summary      作者详情
// @Tags         作者
// @Produce      json
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response{data=appcatalog.AuthorView}
// @Failure      400 {object} response.Response "作者不存在"
// @Router       /api/v1/authors/{id} [get]
func (h *AuthorHandler) Get(c *gin.Context) { h.res.get(c) }

// Delete 删除作者
// @Summary      删除作者
// @Tags         作者
// @Param        id path int true "作者ID"
// @Success      204 "删除成功"
// @Failure      400 {object} response.Response "作者不存在或仍被引用"
// @Router       /api/v1/authors/{id} [delete]
func (h *AuthorHandler) Delete(c *gin.Context) { h.res.remove(c) }

// Create 创建作者
// @Summary      创建作者
// @Tags         作者
// @Accept       json
// @Produce      json
// @Param        request body dto.AuthorRequest true "作者信息"
// @Success      200 {object} response.Response{data=appcatalog.AuthorView}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/authors [post]
func (h *AuthorHandler) Create(c *gin.Context) {
	in, ok := bindAuthor(c)
	if !ok {
		return
	}
	h.res.create(c, in)
}

// Update 更新作者(id在请求体中)
// @Summary      更新作者
// @Tags         作者
// @Accept       json
// @Produce      json
// @Param        request body dto.AuthorRequest true "作者信息"
// @Success      200 {object} response.Response{data=appcatalog.AuthorView}
// @Failure      400 {object} response.Response "参数错误或作者不存在"
// @Router       /api/v1/authors [put]
func (h *AuthorHandler) Update(c *gin.Context) {
	in, ok := bindAuthor(c)
	if !ok {
		return
	}
	h.res.update(c, in.ID, in)
}

func bindAuthor(c *gin.Context) (appcatalog.AuthorInput, bool) {
	var req dto.AuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return appcatalog.AuthorInput{}, false
	}
	in, err := req.ToInput()
	if err != nil {
		response.Error(c, err)
		return appcatalog.AuthorInput{}, false
	}
	return in, true
}
