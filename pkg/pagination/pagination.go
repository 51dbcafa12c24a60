// Package pagination 提供基于页码的分页参数与分页结果
//
// 所有实体集合(作者、出版社、类型、书号、图书)的列表接口统一使用这里的
// Params / Page,计算规则:
//
//	offset      = (pageNumber-1) * pageSize
//	limit       = pageSize
//	totalPages  = ceil(totalCount / pageSize)
//	hasPrevious = pageNumber > 1
//	hasNext     = pageNumber < totalPages
package pagination

import (
	"math"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

const (
	// DefaultPageNumber 默认页码(从1开始)
	DefaultPageNumber = 1
	// DefaultPageSize 默认每页数量
	DefaultPageSize = 10
	// MaxPageSize 每页最大数量,超过的请求被静默压到该值
	MaxPageSize = 50
)

// ErrInvalidPagination 页码或每页数量小于1
// pageSize=0 会导致总页数计算除零,必须在入口处拒绝
var ErrInvalidPagination = apperrors.New(apperrors.ErrCodeInvalidPagination, "页码和每页数量必须大于0")

// Params 分页请求参数
type Params struct {
	PageNumber int
	PageSize   int
}

// NewParams 创建分页参数
// 规则:
// 1. pageSize > MaxPageSize 时压到 MaxPageSize,不报错
// 2. pageNumber < 1 或 pageSize < 1 返回 ErrInvalidPagination
func NewParams(pageNumber, pageSize int) (Params, error) {
	if pageNumber < 1 || pageSize < 1 {
		return Params{}, ErrInvalidPagination
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return Params{PageNumber: pageNumber, PageSize: pageSize}, nil
}

// DefaultParams 调用方未指定分页时使用
func DefaultParams() Params {
	return Params{PageNumber: DefaultPageNumber, PageSize: DefaultPageSize}
}

// Offset 跳过的记录数
// 页码极大时乘积会溢出int，此时饱和到math.MaxInt，查询结果为空页
func (p Params) Offset() int {
	if p.PageNumber < 1 || p.PageSize < 1 {
		return 0
	}
	if p.PageNumber-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return (p.PageNumber - 1) * p.PageSize
}

// Limit 本页最多返回的记录数
func (p Params) Limit() int {
	return p.PageSize
}

// Page 分页结果
type Page[T any] struct {
	Items       []T   `json:"items"`
	TotalCount  int64 `json:"total_count"`
	PageSize    int   `json:"page_size"`
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
}

// NewPage 根据本页数据和总数构建分页结果
// total 是整个结果集的数量,不是本页数量
func NewPage[T any](items []T, total int64, p Params) *Page[T] {
	if items == nil {
		items = make([]T, 0)
	}
	return &Page[T]{
		Items:       items,
		TotalCount:  total,
		PageSize:    p.PageSize,
		CurrentPage: p.PageNumber,
		TotalPages:  totalPages(total, p.PageSize),
	}
}

// HasPrevious 是否有上一页
func (p *Page[T]) HasPrevious() bool {
	return p.CurrentPage > 1
}

// HasNext 是否有下一页
func (p *Page[T]) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}

// Metadata 分页元数据(X-Pagination响应头)
// 字段名沿用原接口的大驼峰命名
type Metadata struct {
	TotalCount  int64 `json:"TotalCount"`
	PageSize    int   `json:"PageSize"`
	CurrentPage int   `json:"CurrentPage"`
	HasPrevious bool  `json:"HasPrevious"`
	HasNext     bool  `json:"HasNext"`
	TotalPages  int   `json:"TotalPages"`
}

// Metadata 提取分页元数据
func (p *Page[T]) Metadata() Metadata {
	return Metadata{
		TotalCount:  p.TotalCount,
		PageSize:    p.PageSize,
		CurrentPage: p.CurrentPage,
		HasPrevious: p.HasPrevious(),
		HasNext:     p.HasNext(),
		TotalPages:  p.TotalPages,
	}
}

// Map 把一页数据投影成另一种类型,分页元数据保持不变
func Map[T, U any](p *Page[T], fn func(T) U) *Page[U] {
	items := make([]U, len(p.Items))
	for i, item := range p.Items {
		items[i] = fn(item)
	}
	return &Page[U]{
		Items:       items,
		TotalCount:  p.TotalCount,
		PageSize:    p.PageSize,
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
	}
}

// Slice 对内存中已排序的完整结果集分页
func Slice[T any](all []T, p Params) *Page[T] {
	total := len(all)
	start := p.Offset()
	if start < 0 || start > total {
		start = total
	}
	end := total
	if p.Limit() < total-start {
		end = start + p.Limit()
	}

	items := make([]T, end-start)
	copy(items, all[start:end])
	return NewPage(items, int64(total), p)
}

func totalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	size := int64(pageSize)
	return int((total + size - 1) / size)
}
