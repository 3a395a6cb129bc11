package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	intconfig "backoffice/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ts = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	prev := intconfig.DB
	intconfig.DB = db
	t.Cleanup(func() {
		intconfig.DB = prev
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	env := intconfig.Env{CORSOrigins: []string{"http://localhost:5173"}}
	return NewRouter(env), mock
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type errorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"details"`
	RequestID string `json:"request_id"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

var productCols = []string{"id", "title", "price", "description", "category", "image", "rating_rate", "rating_count", "created_at", "updated_at"}

func TestHealthAndRequestID(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))

	w = do(r, http.MethodGet, "/api/health", "")
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
}

func TestRoutesListsEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/routes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/sales/:id/receipt")
	assert.Contains(t, w.Body.String(), "/api/carts/:id/checkout")
}

func TestUnknownRoute(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/sales/1/cancel", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
}

func TestListRejectsMalformedOrder(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/products?_order=price+sideways", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_order", decodeError(t, w).Code)
}

func TestListProductsWithFilterAndPaging(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM products WHERE BINARY category = ?")).
		WithArgs("bags").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta(" FROM products WHERE BINARY category = ? ORDER BY price DESC, id ASC LIMIT ? OFFSET ?")).
		WithArgs("bags", 2, 0).
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow(1, "Backpack", "109.95", "", "bags", "", 3.9, 120, ts, ts).
			AddRow(5, "Tote", "15.00", "", "bags", "", 4.4, 30, ts, ts))

	w := do(r, http.MethodGet, "/api/products?category=bags&_size=2&_order=price+desc", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var page struct {
		Data []struct {
			ID    int64  `json:"id"`
			Price string `json:"price"`
		} `json:"data"`
		TotalItems  int `json:"totalItems"`
		CurrentPage int `json:"currentPage"`
		TotalPages  int `json:"totalPages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 3, page.TotalItems)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "109.95", page.Data[0].Price)
}

func TestInvalidPathID(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/users/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_id", decodeError(t, w).Code)
}

func TestUserNotFound(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery("FROM users WHERE id=\\?").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := do(r, http.MethodGet, "/api/users/9", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "not_found", body.Code)
	assert.NotEmpty(t, body.RequestID)
}

func TestCreateCartRejectsTooManyItems(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id IN (?)")).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow(1, "Backpack", "109.95", "", "bags", "", 3.9, 120, ts, ts))

	w := do(r, http.MethodPost, "/api/carts", `{"userId":7,"products":[{"productId":1,"quantity":25}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "validation_error", body.Code)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "DiscountPercent", body.Details[0].Field)
}

func TestCreateCartRejectsBadPayload(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/carts", `{"userId":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_payload", decodeError(t, w).Code)

	w = do(r, http.MethodPost, "/api/carts", `{"products":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "UserID", body.Details[0].Field)
}

func TestSaleReceiptPDF(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery("FROM sales WHERE id=\\?").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sale_number", "sale_date", "customer_id", "customer_name", "branch", "total_amount", "is_cancelled", "created_at", "updated_at"}).
			AddRow(1, "S-1", ts, 7, "Jane Doe", "Downtown", "450.0000", 0, ts, ts))
	mock.ExpectQuery("FROM sale_items WHERE sale_id IN").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sale_id", "product_id", "product_title", "quantity", "unit_price", "discount_percent", "total_amount", "is_cancelled"}).
			AddRow(10, 1, 1, "Backpack", 5, "100.00", "10.00", "450.0000", 0))

	w := do(r, http.MethodGet, "/api/sales/1/receipt", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "RECEIPT_S-1.pdf")
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestCancelMissingSaleItem(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery("FROM sales WHERE id=\\?").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sale_number", "sale_date", "customer_id", "customer_name", "branch", "total_amount", "is_cancelled", "created_at", "updated_at"}).
			AddRow(1, "S-1", ts, 7, "Jane Doe", "Downtown", "0", 0, ts, ts))
	mock.ExpectQuery("FROM sale_items WHERE sale_id IN").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := do(r, http.MethodPatch, "/api/sales/1/items/99/cancel", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
