package export

import (
	"fmt"
	"io"

	"fintrack/aggregate"
	"fintrack/models"

	"github.com/xuri/excelize/v2"
)

const (
	// SheetTransactions 明细工作表
	SheetTransactions = "Transactions"
	// SheetDashboard 看板工作表
	SheetDashboard = "Dashboard"
)

// WriteXLSX 输出看板快照：明细表 + 含柱状图、饼图、折线图的看板表
func WriteXLSX(w io.Writer, records []models.Transaction) error {
	f, err := BuildWorkbook(records)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("生成 Excel 失败: %w", err)
	}
	return nil
}

// BuildWorkbook 构建工作簿，调用方负责 Close
func BuildWorkbook(records []models.Transaction) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetTransactions); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeDetailSheet(f, records); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(SheetDashboard); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeDashboardSheet(f, aggregate.Summarize(records)); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func borderedStyle(f *excelize.File, style *excelize.Style) (int, error) {
	style.Alignment = &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	style.Border = []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	return f.NewStyle(style)
}

func writeDetailSheet(f *excelize.File, records []models.Transaction) error {
	sheet := SheetTransactions

	headerStyle, err := borderedStyle(f, &excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	dataStyle, err := borderedStyle(f, &excelize.Style{})
	if err != nil {
		return err
	}
	summaryStyle, err := borderedStyle(f, &excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	f.SetColWidth(sheet, "A", "A", 38)
	f.SetColWidth(sheet, "B", "C", 14)
	f.SetColWidth(sheet, "D", "D", 30)
	f.SetColWidth(sheet, "E", "E", 16)

	headers := []string{"ID", "Date", "Amount", "Description", "Category"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	f.SetCellStyle(sheet, "A1", "E1", headerStyle)

	var total float64
	for i, r := range records {
		row := i + 2
		values := []interface{}{r.ID, r.Date.String(), r.Amount, r.Description, r.CategoryName()}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return err
		}
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row), dataStyle)
		total += r.Amount
	}

	summaryRow := len(records) + 2
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Total")
	f.MergeCell(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("B%d", summaryRow))
	f.SetCellValue(sheet, fmt.Sprintf("C%d", summaryRow), total)
	f.SetCellValue(sheet, fmt.Sprintf("D%d", summaryRow), fmt.Sprintf("%d records", len(records)))
	f.MergeCell(sheet, fmt.Sprintf("D%d", summaryRow), fmt.Sprintf("E%d", summaryRow))
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("E%d", summaryRow), summaryStyle)
	return nil
}

// writeDashboardSheet 三组数据分别放在 A:B、D:E、G:H 列，图表引用这些区域
func writeDashboardSheet(f *excelize.File, s aggregate.Summary) error {
	sheet := SheetDashboard

	tables := []struct {
		col     string
		valCol  string
		headers []string
		rows    [][]interface{}
	}{
		{"A", "B", []string{"Month", "Amount"}, monthRows(s.Monthly)},
		{"D", "E", []string{"Category", "Value"}, categoryRows(s.Categories)},
		{"G", "H", []string{"Date", "Running Total"}, cumulativeRows(s.Cumulative)},
	}

	for _, tbl := range tables {
		if err := f.SetSheetRow(sheet, tbl.col+"1", &tbl.headers); err != nil {
			return err
		}
		for i, row := range tbl.rows {
			row := row
			if err := f.SetSheetRow(sheet, fmt.Sprintf("%s%d", tbl.col, i+2), &row); err != nil {
				return err
			}
		}
	}

	charts := []struct {
		cell  string
		typ   excelize.ChartType
		name  string
		col   string
		value string
		count int
	}{
		{"J2", excelize.Col, "Monthly", "A", "B", len(s.Monthly)},
		{"J18", excelize.Pie, "By Category", "D", "E", len(s.Categories)},
		{"J34", excelize.Line, "Cumulative", "G", "H", len(s.Cumulative)},
	}
	for _, c := range charts {
		// 空数据区域会生成无法打开的图表
		if c.count == 0 {
			continue
		}
		last := c.count + 1
		if err := f.AddChart(sheet, c.cell, &excelize.Chart{
			Type: c.typ,
			Series: []excelize.ChartSeries{{
				Name:       c.name,
				Categories: fmt.Sprintf("%s!$%s$2:$%s$%d", sheet, c.col, c.col, last),
				Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", sheet, c.value, c.value, last),
			}},
			Legend: excelize.ChartLegend{Position: "bottom"},
		}); err != nil {
			return fmt.Errorf("生成图表失败: %w", err)
		}
	}
	return nil
}

func monthRows(in []aggregate.MonthAmount) [][]interface{} {
	rows := make([][]interface{}, 0, len(in))
	for _, m := range in {
		rows = append(rows, []interface{}{m.Month, m.Amount})
	}
	return rows
}

func categoryRows(in []aggregate.CategoryAmount) [][]interface{} {
	rows := make([][]interface{}, 0, len(in))
	for _, c := range in {
		rows = append(rows, []interface{}{c.Name, c.Value})
	}
	return rows
}

func cumulativeRows(in []aggregate.CumulativePoint) [][]interface{} {
	rows := make([][]interface{}, 0, len(in))
	for _, p := range in {
		rows = append(rows, []interface{}{p.Date.String(), p.Amount})
	}
	return rows
}
