package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"fintrack/models"
)

// csvHeaders CSV 表头
var csvHeaders = []string{"ID", "Date", "Amount", "Description", "Category", "Created At"}

// WriteCSV 输出 CSV，带 UTF-8 BOM 以便 Excel 正确识别中文
func WriteCSV(w io.Writer, records []models.Transaction) error {
	if _, err := io.WriteString(w, "\xEF\xBB\xBF"); err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeaders); err != nil {
		return fmt.Errorf("写入表头失败: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.ID,
			r.Date.String(),
			fmt.Sprintf("%.2f", r.Amount),
			escapeFormula(r.Description),
			escapeFormula(r.CategoryName()),
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("写入数据失败: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// escapeFormula 以公式字符开头的文本加单引号前缀，防止表格软件把它当公式执行
func escapeFormula(v string) string {
	if v != "" && strings.ContainsRune("=+-@\t\r", rune(v[0])) {
		return "'" + v
	}
	return v
}
