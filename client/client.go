package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fintrack/models"
)

// TransactionForm 创建或更新时提交的字段
type TransactionForm struct {
	Amount      *float64     `json:"amount,omitempty"`
	Date        *models.Date `json:"date,omitempty"`
	Description *string      `json:"description,omitempty"`
	Category    *string      `json:"category,omitempty"`
}

// Client 收支记录 REST 接口客户端
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New 创建客户端，httpClient 为 nil 时使用 10 秒超时的默认客户端
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// List 获取全部记录（按日期倒序）
func (c *Client) List(ctx context.Context) ([]models.Transaction, error) {
	var list []models.Transaction
	if err := c.do(ctx, http.MethodGet, "/api/transactions", nil, http.StatusOK, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Create 创建记录
func (c *Client) Create(ctx context.Context, form TransactionForm) (*models.Transaction, error) {
	var txn models.Transaction
	if err := c.do(ctx, http.MethodPost, "/api/transactions", form, http.StatusCreated, &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

// Update 更新记录，记录不存在时返回 ErrNotFound
func (c *Client) Update(ctx context.Context, id string, form TransactionForm) (*models.Transaction, error) {
	var txn models.Transaction
	if err := c.do(ctx, http.MethodPut, "/api/transactions/"+url.PathEscape(id), form, http.StatusOK, &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

// Delete 删除记录
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/transactions/"+url.PathEscape(id), nil, http.StatusNoContent, nil)
}

// errorBody 服务端错误响应
type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, want int, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("序列化请求失败: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransientNetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransientNetworkError{Op: method + " " + path, Err: err}
	}

	if resp.StatusCode != want {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		switch resp.StatusCode {
		case http.StatusBadRequest:
			return &ValidationError{Message: eb.Message}
		case http.StatusNotFound:
			return ErrNotFound
		default:
			return &ServerError{Status: resp.StatusCode, Message: eb.Message}
		}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("解析响应失败: %w", err)
	}
	return nil
}
