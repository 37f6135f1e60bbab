package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"budget/models"

	"github.com/xuri/excelize/v2"
)

const exportTimeLayout = "2006-01-02 15:04:05"

// 导出时金额保留两位小数，存储中的值不做舍入
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

type exportTable struct {
	sheet  string
	header []string
	rows   [][]string
	total  float64
}

func exportTables(snap *Snapshot, loc *time.Location) map[models.Kind]exportTable {
	if loc == nil {
		loc = time.Local
	}
	ts := func(t time.Time) string { return t.In(loc).Format(exportTimeLayout) }

	expenses := exportTable{sheet: "支出", header: []string{"ID", "金额", "类别", "名称", "描述", "创建时间"}}
	for _, e := range snap.Expenses {
		expenses.rows = append(expenses.rows, []string{
			strconv.FormatUint(uint64(e.ID), 10), formatAmount(e.Amount), e.Category, e.Name, e.Description, ts(e.CreatedAt),
		})
	}
	expenses.total = TotalExpenses(snap.Expenses)

	savings := exportTable{sheet: "储蓄", header: []string{"ID", "金额", "备注", "创建时间"}}
	for _, s := range snap.Savings {
		savings.rows = append(savings.rows, []string{
			strconv.FormatUint(uint64(s.ID), 10), formatAmount(s.Amount), s.Note, ts(s.CreatedAt),
		})
	}
	savings.total = TotalSavings(snap.Savings)

	investments := exportTable{sheet: "投资", header: []string{"ID", "金额", "投资品种", "备注", "创建时间"}}
	for _, i := range snap.Investments {
		investments.rows = append(investments.rows, []string{
			strconv.FormatUint(uint64(i.ID), 10), formatAmount(i.Amount), i.Instrument, i.Note, ts(i.CreatedAt),
		})
	}
	investments.total = TotalInvestments(snap.Investments)

	goals := exportTable{sheet: "储蓄目标", header: []string{"ID", "名称", "目标金额", "当前金额", "每月递增", "进度", "创建时间"}}
	for _, g := range snap.Goals {
		goals.rows = append(goals.rows, []string{
			strconv.FormatUint(uint64(g.ID), 10), g.Name, formatAmount(g.TargetAmount), formatAmount(g.CurrentAmount),
			formatAmount(g.MonthlyIncrement), fmt.Sprintf("%.0f%%", g.Progress()), ts(g.CreatedAt),
		})
	}

	return map[models.Kind]exportTable{
		models.KindExpense:    expenses,
		models.KindSaving:     savings,
		models.KindInvestment: investments,
		models.KindGoal:       goals,
	}
}

// WriteCSV 将一类记录导出为 CSV，带 BOM 以便 Excel 正确识别中文
func WriteCSV(w io.Writer, kind models.Kind, snap *Snapshot, loc *time.Location) error {
	table, ok := exportTables(snap, loc)[kind]
	if !ok {
		return fmt.Errorf("不支持的记录类型: %s", kind)
	}
	if _, err := io.WriteString(w, "\xEF\xBB\xBF"); err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(table.header); err != nil {
		return fmt.Errorf("生成 CSV 失败: %w", err)
	}
	if err := writer.WriteAll(table.rows); err != nil {
		return fmt.Errorf("生成 CSV 失败: %w", err)
	}
	return nil
}

var exportOrder = []models.Kind{models.KindExpense, models.KindSaving, models.KindInvestment, models.KindGoal}

// BuildWorkbook 生成包含全部记录与汇总的 Excel 文件，调用方负责 Close
func BuildWorkbook(snap *Snapshot, loc *time.Location) (*excelize.File, error) {
	f := excelize.NewFile()

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		f.Close()
		return nil, err
	}
	dataStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	tables := exportTables(snap, loc)
	for i, kind := range exportOrder {
		table := tables[kind]
		if i == 0 {
			if err := f.SetSheetName("Sheet1", table.sheet); err != nil {
				f.Close()
				return nil, err
			}
		} else if _, err := f.NewSheet(table.sheet); err != nil {
			f.Close()
			return nil, err
		}
		if err := writeSheet(f, table, headerStyle, dataStyle); err != nil {
			f.Close()
			return nil, err
		}
	}

	if err := writeSummarySheet(f, snap, headerStyle, dataStyle); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeSheet(f *excelize.File, table exportTable, headerStyle, dataStyle int) error {
	for col, h := range table.header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(table.sheet, cell, h)
		f.SetCellStyle(table.sheet, cell, cell, headerStyle)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(table.header))
	f.SetColWidth(table.sheet, "A", lastCol, 18)

	for r, row := range table.rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return err
			}
			f.SetCellValue(table.sheet, cell, v)
		}
		first, _ := excelize.CoordinatesToCellName(1, r+2)
		last, _ := excelize.CoordinatesToCellName(len(row), r+2)
		f.SetCellStyle(table.sheet, first, last, dataStyle)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, snap *Snapshot, headerStyle, dataStyle int) error {
	const sheet = "汇总"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	totals := ComputeTotals(snap.Expenses, snap.Savings, snap.Investments)
	rows := [][]interface{}{
		{"类型", "记录数", "合计"},
		{"支出", len(snap.Expenses), formatAmount(totals.Expenses)},
		{"储蓄", len(snap.Savings), formatAmount(totals.Savings)},
		{"投资", len(snap.Investments), formatAmount(totals.Investments)},
		{"储蓄目标", len(snap.Goals), ""},
	}
	for r, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, r+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	f.SetColWidth(sheet, "A", "C", 15)
	f.SetCellStyle(sheet, "A1", "C1", headerStyle)
	f.SetCellStyle(sheet, "A2", fmt.Sprintf("C%d", len(rows)), dataStyle)
	return nil
}
