package client

import (
	"context"
	"strings"
	"sync"

	"fintrack/aggregate"
	"fintrack/models"
)

// Form 看板上的录入表单，字段均为用户输入的原始值
type Form struct {
	Amount      *float64
	Date        models.Date
	Description string
	Category    string
}

// complete 金额、日期、描述均已填写
func (f Form) complete() bool {
	return f.Amount != nil && !f.Date.IsZero() && strings.TrimSpace(f.Description) != ""
}

func (f Form) toTransactionForm() TransactionForm {
	date := f.Date
	description := f.Description
	// 类别总是提交，空串表示清除原有类别
	category := strings.TrimSpace(f.Category)
	return TransactionForm{
		Amount:      f.Amount,
		Date:        &date,
		Description: &description,
		Category:    &category,
	}
}

// Dashboard 看板状态：最近一次拉取的完整列表、表单与正在编辑的记录
// 本地列表只会被整体替换，不做增量修改
type Dashboard struct {
	api      *Client
	notifier Notifier

	mu           sync.RWMutex
	transactions []models.Transaction
	form         Form
	editingID    string
}

// NewDashboard 创建看板
func NewDashboard(api *Client, notifier Notifier) *Dashboard {
	return &Dashboard{
		api:          api,
		notifier:     notifier,
		transactions: []models.Transaction{},
	}
}

// Refresh 重新拉取全部记录替换本地列表
func (d *Dashboard) Refresh(ctx context.Context) error {
	list, err := d.api.List(ctx)
	if err != nil {
		d.notifier.Error("获取记录失败", err)
		return err
	}
	if list == nil {
		list = []models.Transaction{}
	}

	d.mu.Lock()
	d.transactions = list
	d.mu.Unlock()
	return nil
}

// SetForm 更新表单内容
func (d *Dashboard) SetForm(f Form) {
	d.mu.Lock()
	d.form = f
	d.mu.Unlock()
}

// Form 当前表单内容
func (d *Dashboard) Form() Form {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.form
}

// Edit 将记录载入表单并进入编辑状态
func (d *Dashboard) Edit(txn models.Transaction) {
	amount := txn.Amount
	d.mu.Lock()
	d.form = Form{
		Amount:      &amount,
		Date:        txn.Date,
		Description: txn.Description,
		Category:    txn.CategoryName(),
	}
	d.editingID = txn.ID
	d.mu.Unlock()
}

// EditingID 正在编辑的记录 ID，未编辑时为空
func (d *Dashboard) EditingID() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.editingID
}

// Submit 提交表单：编辑状态下更新，否则创建；成功后清空表单并刷新
// 表单未填完整时直接忽略，不发请求
func (d *Dashboard) Submit(ctx context.Context) error {
	d.mu.RLock()
	form, editingID := d.form, d.editingID
	d.mu.RUnlock()

	if !form.complete() {
		return nil
	}

	var err error
	if editingID != "" {
		_, err = d.api.Update(ctx, editingID, form.toTransactionForm())
	} else {
		_, err = d.api.Create(ctx, form.toTransactionForm())
	}
	if err != nil {
		d.notifier.Error("保存记录失败", err)
		return err
	}

	if editingID != "" {
		d.notifier.Success("记录已更新")
	} else {
		d.notifier.Success("记录已添加")
	}

	d.mu.Lock()
	d.form = Form{}
	d.editingID = ""
	d.mu.Unlock()

	return d.Refresh(ctx)
}

// Remove 删除记录并刷新
func (d *Dashboard) Remove(ctx context.Context, id string) error {
	if err := d.api.Delete(ctx, id); err != nil {
		d.notifier.Error("删除记录失败", err)
		return err
	}
	d.notifier.Success("记录已删除")
	return d.Refresh(ctx)
}

// Transactions 本地列表的副本
func (d *Dashboard) Transactions() []models.Transaction {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]models.Transaction, len(d.transactions))
	copy(out, d.transactions)
	return out
}

// Monthly 柱状图数据
func (d *Dashboard) Monthly() []aggregate.MonthAmount {
	return aggregate.ByMonth(d.Transactions())
}

// Categories 饼图数据
func (d *Dashboard) Categories() []aggregate.CategoryAmount {
	return aggregate.ByCategory(d.Transactions())
}

// Cumulative 折线图数据
func (d *Dashboard) Cumulative() []aggregate.CumulativePoint {
	return aggregate.Cumulative(d.Transactions())
}
