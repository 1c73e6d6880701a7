package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"fintrack/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer 内存版服务端，行为与真实接口一致
type fakeServer struct {
	mu     sync.Mutex
	nextID int
	data   map[string]models.Transaction
	calls  []string
}

func newFakeServer(t *testing.T) (*fakeServer, *httptest.Server) {
	gin.SetMode(gin.TestMode)
	fs := &fakeServer{data: make(map[string]models.Transaction)}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		fs.mu.Lock()
		fs.calls = append(fs.calls, c.Request.Method)
		fs.mu.Unlock()
		c.Next()
	})
	r.GET("/api/transactions", fs.list)
	r.POST("/api/transactions", fs.create)
	r.PUT("/api/transactions/:id", fs.update)
	r.DELETE("/api/transactions/:id", fs.remove)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return fs, srv
}

func (fs *fakeServer) list(c *gin.Context) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	out := make([]models.Transaction, 0, len(fs.data))
	for _, v := range fs.data {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[j].Date.Before(out[i].Date) })
	c.JSON(http.StatusOK, out)
}

func (fs *fakeServer) create(c *gin.Context) {
	var form TransactionForm
	if err := c.ShouldBindJSON(&form); err != nil || form.Amount == nil || form.Date == nil || form.Description == nil || *form.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "description: 不能为空"})
		return
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.nextID++
	txn := models.Transaction{
		ID:          strconv.Itoa(fs.nextID),
		Amount:      *form.Amount,
		Date:        *form.Date,
		Description: *form.Description,
		Category:    blankToNil(form.Category),
	}
	fs.data[txn.ID] = txn
	c.JSON(http.StatusCreated, txn)
}

func (fs *fakeServer) update(c *gin.Context) {
	var form TransactionForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": err.Error()})
		return
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	txn, ok := fs.data[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"code": 404, "message": "记录不存在"})
		return
	}
	if form.Amount != nil {
		txn.Amount = *form.Amount
	}
	if form.Date != nil {
		txn.Date = *form.Date
	}
	if form.Description != nil {
		txn.Description = *form.Description
	}
	if form.Category != nil {
		txn.Category = blankToNil(form.Category)
	}
	fs.data[txn.ID] = txn
	c.JSON(http.StatusOK, txn)
}

func (fs *fakeServer) remove(c *gin.Context) {
	fs.mu.Lock()
	delete(fs.data, c.Param("id"))
	fs.mu.Unlock()
	c.Status(http.StatusNoContent)
}

// blankToNil 与服务端一致：空白类别视为未设置
func blankToNil(c *string) *string {
	if c == nil || strings.TrimSpace(*c) == "" {
		return nil
	}
	return c
}

func amount(v float64) *float64 { return &v }

func text(v string) *string { return &v }

func date(s string) *models.Date {
	d := models.MustParseDate(s)
	return &d
}

func TestClient_CRUD(t *testing.T) {
	_, srv := newFakeServer(t)
	c := New(srv.URL+"/", nil)
	ctx := context.Background()

	created, err := c.Create(ctx, TransactionForm{Amount: amount(10), Date: date("2024-01-01"), Description: text("工资")})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	list, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, *created, list[0])

	updated, err := c.Update(ctx, created.ID, TransactionForm{Amount: amount(12)})
	require.NoError(t, err)
	assert.Equal(t, 12.0, updated.Amount)
	assert.Equal(t, "工资", updated.Description)

	require.NoError(t, c.Delete(ctx, created.ID))
	// 重复删除同样成功
	require.NoError(t, c.Delete(ctx, created.ID))

	list, err = c.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestClient_Errors(t *testing.T) {
	_, srv := newFakeServer(t)
	c := New(srv.URL, nil)
	ctx := context.Background()

	_, err := c.Create(ctx, TransactionForm{Amount: amount(1), Date: date("2024-01-01")})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "description")

	_, err = c.Update(ctx, "missing", TransactionForm{Amount: amount(1)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_NetworkError(t *testing.T) {
	_, srv := newFakeServer(t)
	c := New(srv.URL, nil)
	srv.Close()

	_, err := c.List(context.Background())
	var nerr *TransientNetworkError
	require.True(t, errors.As(err, &nerr))
	assert.Contains(t, nerr.Op, "GET")
}

func TestClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"code":500,"message":"查询失败"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).List(context.Background())
	var serr *ServerError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 500, serr.Status)
	assert.Equal(t, "查询失败", serr.Message)
}
