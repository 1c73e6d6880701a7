package api

import (
	"bytes"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newExportRouter(h *ExportHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/export/csv", h.ExportCSV)
	router.GET("/export/xlsx", h.ExportXLSX)
	return router
}

func TestExportHandler_ExportCSV(t *testing.T) {
	s, mock := setupMockStore(t)

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WillReturnRows(sqlmock.NewRows(txnColumns).
			AddRow("a", 99.99, "2024-01-15", "午餐", "餐饮", now, now))

	h := NewExportHandler(s)
	h.now = func() time.Time { return time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC) }

	req := httptest.NewRequest("GET", "/export/csv", nil)
	w := httptest.NewRecorder()
	newExportRouter(h).ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "transactions_20240201.csv")
	assert.Contains(t, w.Body.String(), "99.99")
	assert.Contains(t, w.Body.String(), "午餐")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportHandler_ExportXLSX(t *testing.T) {
	s, mock := setupMockStore(t)

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WillReturnRows(sqlmock.NewRows(txnColumns).
			AddRow("b", -3.0, "2024-01-02", "咖啡", nil, now, now).
			AddRow("a", 10.0, "2024-01-01", "工资", nil, now, now))

	req := httptest.NewRequest("GET", "/export/xlsx", nil)
	w := httptest.NewRecorder()
	newExportRouter(NewExportHandler(s)).ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Dashboard", "H3")
	require.NoError(t, err)
	assert.Equal(t, "7", v)
	require.NoError(t, mock.ExpectationsWereMet())
}
