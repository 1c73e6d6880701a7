// Package aggregate 将完整的收支记录列表归并为看板所需的三类序列：
// 按月柱状图、按描述分组的饼图、按日期累计的折线图。
//
// 所有函数都是单次线性遍历，不修改入参；分组输出保持各组首次出现的顺序。
package aggregate

import (
	"sort"
	"strings"

	"fintrack/models"
)

// OtherCategory 描述为空时的分组名
const OtherCategory = "Other"

// MonthAmount 按月汇总
type MonthAmount struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// CategoryAmount 按描述汇总
type CategoryAmount struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// CumulativePoint 累计金额序列中的一个点
type CumulativePoint struct {
	Date   models.Date `json:"date"`
	Amount float64     `json:"amount"`
}

// Summary 看板汇总
type Summary struct {
	Count      int               `json:"count"`
	Total      float64           `json:"total"`
	Monthly    []MonthAmount     `json:"monthly"`
	Categories []CategoryAmount  `json:"categories"`
	Cumulative []CumulativePoint `json:"cumulative"`
}

// MonthLabel 月份简称，如 Jan、Feb
func MonthLabel(d models.Date) string {
	return d.Month().String()[:3]
}

// ByMonth 按月份简称分组求和
// 只看月份不看年份，不同年份的同一月会合并到一组
func ByMonth(records []models.Transaction) []MonthAmount {
	out := make([]MonthAmount, 0)
	index := make(map[string]int)
	for _, r := range records {
		month := MonthLabel(r.Date)
		i, ok := index[month]
		if !ok {
			i = len(out)
			index[month] = i
			out = append(out, MonthAmount{Month: month})
		}
		out[i].Amount += r.Amount
	}
	return out
}

// ByCategory 按描述分组求和，空描述归入 Other
func ByCategory(records []models.Transaction) []CategoryAmount {
	out := make([]CategoryAmount, 0)
	index := make(map[string]int)
	for _, r := range records {
		name := strings.TrimSpace(r.Description)
		if name == "" {
			name = OtherCategory
		}
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, CategoryAmount{Name: name})
		}
		out[i].Value += r.Amount
	}
	return out
}

// Cumulative 按日期升序（同日保持原顺序）计算累计金额
func Cumulative(records []models.Transaction) []CumulativePoint {
	sorted := make([]models.Transaction, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	out := make([]CumulativePoint, 0, len(sorted))
	var running float64
	for _, r := range sorted {
		running += r.Amount
		out = append(out, CumulativePoint{Date: r.Date, Amount: running})
	}
	return out
}

// Summarize 一次性计算全部看板数据
func Summarize(records []models.Transaction) Summary {
	var total float64
	for _, r := range records {
		total += r.Amount
	}
	return Summary{
		Count:      len(records),
		Total:      total,
		Monthly:    ByMonth(records),
		Categories: ByCategory(records),
		Cumulative: Cumulative(records),
	}
}
