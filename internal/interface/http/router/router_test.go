package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appcatalog "github.com/xiebiao/bookcatalog/internal/application/catalog"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/lock"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/messaging"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
)

// 教学说明：路由级测试
// 使用进程内SQLite上的GORM仓储组装完整的依赖链，通过httptest发请求，
// 覆盖状态码、响应体结构和X-Pagination响应头

type apiResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

var storeSeq atomic.Int64

func newTestStore(t *testing.T) *persistence.Store {
	t.Helper()
	store, cleanup, err := persistence.NewMemoryStore(fmt.Sprintf("router_%d", storeSeq.Add(1)), "silent", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return store
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	store := newTestStore(t)
	return newRouterWithStore(store, store)
}

func newRouterWithStore(store *persistence.Store, pinger Pinger) *gin.Engine {
	log := zap.NewNop()
	cfg := &config.Config{Server: config.ServerConfig{Mode: gin.TestMode}}

	locker := lock.NewLocalLocker()
	books := appcatalog.NewBookUseCase(
		store.Books, store.Identifiers, store.Authors, store.AuthorBooks,
		store.Editors, store.Genres, store.Tx,
		locker, messaging.NopPublisher{}, log,
	)
	h := Handlers{
		Authors:     handler.NewAuthorHandler(appcatalog.NewAuthorUseCase(store.Authors, store.Tx)),
		Editors:     handler.NewEditorHandler(appcatalog.NewEditorUseCase(store.Editors, store.Tx, locker)),
		Genres:      handler.NewGenreHandler(appcatalog.NewGenreUseCase(store.Genres, store.Tx, locker)),
		Identifiers: handler.NewIdentifierHandler(appcatalog.NewIdentifierUseCase(store.Identifiers, store.Tx)),
		Books:       handler.NewBookHandler(books),
		Library: handler.NewLibraryHandler(appcatalog.NewLibraryUseCase(
			store.Authors, store.Editors, store.Genres, store.Identifiers, store.Books,
		)),
	}
	return New(cfg, log, h, pinger)
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResponse
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w, resp
}

func bookBody(name string) map[string]any {
	return map[string]any{
		"name":             name,
		"price":            "59.9",
		"publication_date": "2021-03-04",
		"editor":           map[string]any{"name": "Acme"},
		"genre":            map[string]any{"name": "Go"},
		"identifier":       map[string]any{"type": 1, "value": "978-0-" + name},
		"authors": []map[string]any{
			{"name": "Rob", "last_name": "Pike", "birth_date": "1956-01-01"},
		},
	}
}

func TestBookRoutes(t *testing.T) {
	r := newTestRouter(t)

	var created appcatalog.BookView
	t.Run("创建图书", func(t *testing.T) {
		w, resp := doJSON(t, r, http.MethodPost, "/api/v1/books", bookBody("Tech"))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, 0, resp.Code)
		require.NoError(t, json.Unmarshal(resp.Data, &created))

		assert.NotZero(t, created.ID)
		assert.Equal(t, "59.90", created.Price)
		assert.Equal(t, "Acme", created.Editor.Name)
		assert.Equal(t, "Go", created.Genre.Name)
		assert.Equal(t, "ISBN-13", created.Identifier.TypeName)
		require.Len(t, created.Authors, 1)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		t.Logf("✓ 创建成功，图书ID: %d", created.ID)
	})

	t.Run("查询详情", func(t *testing.T) {
		w, resp := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/books/%d", created.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		var got appcatalog.BookView
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		assert.Equal(t, created, got)
	})

	t.Run("不存在的图书返回400", func(t *testing.T) {
		w, resp := doJSON(t, r, http.MethodGet, "/api/v1/books/999", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrCodeBookNotFound, resp.Code)
	})

	t.Run("更新图书", func(t *testing.T) {
		body := bookBody("Tech 2nd")
		body["id"] = created.ID
		body["authors"] = []map[string]any{{"id": created.Authors[0].ID}, {"name": "Ken"}}

		w, resp := doJSON(t, r, http.MethodPut, "/api/v1/books", body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var got appcatalog.BookView
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		assert.Equal(t, "Tech 2nd", got.Name)
		assert.Equal(t, created.Identifier.ID, got.Identifier.ID)
		assert.Len(t, got.Authors, 2)
	})

	t.Run("更新缺少id", func(t *testing.T) {
		w, resp := doJSON(t, r, http.MethodPut, "/api/v1/books", bookBody("x"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrCodeInvalidParams, resp.Code)
	})

	t.Run("更新不存在的图书", func(t *testing.T) {
		body := bookBody("x")
		body["id"] = 999
		w, resp := doJSON(t, r, http.MethodPut, "/api/v1/books", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrCodeBookNotFound, resp.Code)
	})

	t.Run("参数校验失败", func(t *testing.T) {
		body := bookBody("x")
		body["publication_date"] = "04/03/2021"
		w, resp := doJSON(t, r, http.MethodPost, "/api/v1/books", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrCodeBindError, resp.Code)
	})

	t.Run("负数价格", func(t *testing.T) {
		body := bookBody("x")
		body["price"] = "-1"
		w, _ := doJSON(t, r, http.MethodPost, "/api/v1/books", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("删除图书", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/books/%d", created.ID)
		w, _ := doJSON(t, r, http.MethodDelete, path, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w, resp := doJSON(t, r, http.MethodDelete, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrCodeBookNotFound, resp.Code)
	})
}

func TestListRoutes(t *testing.T) {
	r := newTestRouter(t)
	for i := 1; i <= 12; i++ {
		w, _ := doJSON(t, r, http.MethodPost, "/api/v1/authors", map[string]any{
			"name": fmt.Sprintf("A%02d", i), "last_name": "L", "birth_date": "1970-01-01",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	decodePage := func(t *testing.T, resp apiResponse) (page struct {
		List  []appcatalog.AuthorView `json:"list"`
		Total int64                   `json:"total"`
	}) {
		require.NoError(t, json.Unmarshal(resp.Data, &page))
		return page
	}

	t.Run("默认分页", func(t *testing.T) {
		w, resp := doJSON(t, r, http.MethodGet, "/api/v1/authors", nil)
		require.Equal(t, http.StatusOK, w.Code)
		page := decodePage(t, resp)
		assert.Len(t, page.List, pagination.DefaultPageSize)
		assert.Equal(t, int64(12), page.Total)

		var meta pagination.Metadata
		require.NoError(t, json.Unmarshal([]byte(w.Header().Get("X-Pagination")), &meta))
		assert.Equal(t, pagination.Metadata{
			TotalCount: 12, PageSize: 10, CurrentPage: 1, HasPrevious: false, HasNext: true, TotalPages: 2,
		}, meta)
	})

	t.Run("路径分页", func(t *testing.T) {
		w, resp := doJSON(t, r, http.MethodGet, "/api/v1/authors/page/3/5", nil)
		require.Equal(t, http.StatusOK, w.Code)
		page := decodePage(t, resp)
		require.Len(t, page.List, 2)
		assert.Equal(t, "A11", page.List[0].Name)
	})

	t.Run("查询参数分页", func(t *testing.T) {
		w, resp := doJSON(t, r, http.MethodGet, "/api/v1/authors?page_number=2&page_size=100", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodePage(t, resp).List, "每页数量被压到50，第2页为空")
	})

	t.Run("超大页码返回空页", func(t *testing.T) {
		w, resp := doJSON(t, r, http.MethodGet, "/api/v1/authors/page/200000000000000000/50", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		page := decodePage(t, resp)
		assert.Empty(t, page.List)
		assert.Equal(t, int64(12), page.Total)

		var meta pagination.Metadata
		require.NoError(t, json.Unmarshal([]byte(w.Header().Get("X-Pagination")), &meta))
		assert.Equal(t, 200000000000000000, meta.CurrentPage)
		assert.Equal(t, 1, meta.TotalPages)
		assert.False(t, meta.HasNext)
		assert.True(t, meta.HasPrevious)
		t.Log("✓ 页码溢出不会返回500或第一页数据")
	})

	t.Run("非法分页参数", func(t *testing.T) {
		w, resp := doJSON(t, r, http.MethodGet, "/api/v1/authors/page/1/0", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrCodeInvalidPagination, resp.Code)

		w, resp = doJSON(t, r, http.MethodGet, "/api/v1/authors/page/x/10", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrCodeBindError, resp.Code)
	})
}

func TestEditorAndLibraryRoutes(t *testing.T) {
	r := newTestRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/v1/editors", map[string]any{"name": "Acme"})
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("名称重复", func(t *testing.T) {
		w, resp := doJSON(t, r, http.MethodPost, "/api/v1/editors", map[string]any{"name": "Acme"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrCodeDuplicateEntry, resp.Code)
	})

	t.Run("图书复用同名出版社", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodPost, "/api/v1/books", bookBody("Tech"))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w, resp := doJSON(t, r, http.MethodGet, "/api/v1/library/editors", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var editors []appcatalog.EditorView
		require.NoError(t, json.Unmarshal(resp.Data, &editors))
		require.Len(t, editors, 1)
		assert.Len(t, editors[0].Books, 1)
	})

	t.Run("被引用的出版社不能删除", func(t *testing.T) {
		w, resp := doJSON(t, r, http.MethodDelete, "/api/v1/editors/1", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrCodeReferenceInUse, resp.Code)
	})

	t.Run("未知的导出类型", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodGet, "/api/v1/library/orders", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPing(t *testing.T) {
	t.Run("健康", func(t *testing.T) {
		r := newTestRouter(t)
		w, resp := doJSON(t, r, http.MethodGet, "/ping", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, resp.Code)
	})

	t.Run("存储不可用", func(t *testing.T) {
		store := newTestStore(t)
		r := newRouterWithStore(store, pingFunc(func(context.Context) error {
			return errors.New("connection refused")
		}))
		w, resp := doJSON(t, r, http.MethodGet, "/ping", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, apperrors.ErrCodeDatabaseError, resp.Code)
	})

	t.Run("指标端点", func(t *testing.T) {
		r := newTestRouter(t)
		doJSON(t, r, http.MethodGet, "/ping", nil)

		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "http_requests_total")
	})
}
