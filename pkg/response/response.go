package response

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
	"go.uber.org/zap"
)

// PaginationHeader 分页元数据响应头
const PaginationHeader = "X-Pagination"

// Response 统一响应结构
// 设计说明：
// 1. Code是业务错误码（非HTTP状态码），方便客户端判断错误类型
// 2. Message是用户友好的提示信息
// 3. Data是业务数据，成功时返回，失败时为null
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应（Code=0表示成功）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// NoContent 删除成功（204，无响应体）
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error 错误响应（自动处理AppError）
// HTTP状态码由业务错误码决定：4xxxx → 400，5xxxx → 500
// 用法：
//
//	view, err := uc.Execute(...)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	status := apperrors.HTTPStatus(appErr.Code)

	// 内部错误只写日志，不返回给客户端
	if appErr.Err != nil || status >= http.StatusInternalServerError {
		Logger(c).Error("request failed",
			zap.Int("code", appErr.Code),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}

	c.JSON(status, Response{
		Code:    appErr.Code,
		Message: appErr.Message,
		Data:    nil,
	})
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(apperrors.HTTPStatus(code), Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// =========================================
// 分页响应结构
// =========================================

// PageData 分页数据封装
type PageData struct {
	List        interface{} `json:"list"`         // 数据列表
	Total       int64       `json:"total"`        // 总记录数
	Page        int         `json:"page"`         // 当前页码
	PageSize    int         `json:"page_size"`    // 每页大小
	TotalPages  int         `json:"total_pages"`  // 总页数
	HasPrevious bool        `json:"has_previous"` // 是否有上一页
	HasNext     bool        `json:"has_next"`     // 是否有下一页
}

// NewPageData 从分页结果创建分页数据
func NewPageData[T any](page *pagination.Page[T]) *PageData {
	return &PageData{
		List:        page.Items,
		Total:       page.TotalCount,
		Page:        page.CurrentPage,
		PageSize:    page.PageSize,
		TotalPages:  page.TotalPages,
		HasPrevious: page.HasPrevious(),
		HasNext:     page.HasNext(),
	}
}

// SuccessWithPage 分页成功响应
// 元数据同时写入 X-Pagination 响应头
func SuccessWithPage[T any](c *gin.Context, page *pagination.Page[T]) {
	if meta, err := json.Marshal(page.Metadata()); err == nil {
		c.Header(PaginationHeader, string(meta))
	}
	Success(c, NewPageData(page))
}

// =========================================
// 请求级日志
// =========================================

const loggerKey = "logger"

// WithLogger 把请求级logger放入gin上下文（由日志中间件调用）
func WithLogger(c *gin.Context, log *zap.Logger) {
	c.Set(loggerKey, log)
}

// Logger 取出请求级logger，未设置时返回全局logger
func Logger(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if log, ok := v.(*zap.Logger); ok {
			return log
		}
	}
	return zap.L()
}
