package api

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"fintrack/export"
	"fintrack/store"

	"github.com/gin-gonic/gin"
)

// ExportHandler 导出处理器
type ExportHandler struct {
	store *store.TransactionStore
	now   func() time.Time
}

// NewExportHandler 创建导出处理器
func NewExportHandler(s *store.TransactionStore) *ExportHandler {
	return &ExportHandler{store: s, now: time.Now}
}

// ExportCSV 导出收支记录为 CSV
// @Summary 导出 CSV
// @Description 导出全部收支记录为 CSV 文件
// @Tags 导出
// @Produce text/csv
// @Success 200 {file} file "CSV 文件"
// @Failure 500 {object} Response "导出失败"
// @Router /api/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	list, err := h.store.List(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "查询数据失败")
		return
	}

	buf := new(bytes.Buffer)
	if err := export.WriteCSV(buf, list); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}

	filename := fmt.Sprintf("transactions_%s.csv", h.now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportXLSX 导出看板快照
// @Summary 导出看板快照
// @Description 导出 Excel 文件，包含明细表以及按月、按描述、累计三张图表
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "Excel 文件"
// @Failure 500 {object} Response "导出失败"
// @Router /api/export/xlsx [get]
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	list, err := h.store.List(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "查询数据失败")
		return
	}

	// 先写入缓冲区，生成失败时还能返回 JSON 错误
	buf := new(bytes.Buffer)
	if err := export.WriteXLSX(buf, list); err != nil {
		InternalError(c, SafeErrorMessage(err, "生成 Excel 失败"))
		return
	}

	filename := fmt.Sprintf("dashboard_%s.xlsx", h.now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
