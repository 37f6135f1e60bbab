package database

import (
	"context"
	"fmt"
	"log"

	"budget/models"
	"budget/service"
)

var seedExpenses = []service.ExpenseInput{
	{Amount: 54.99, Category: models.CategoryGroceries, Description: "Supermarket run"},
	{Amount: 120, Category: models.CategoryUtilities, Description: "Electricity bill"},
	{Amount: 15.5, Category: models.CategoryTransport, Description: "Bus pass"},
	{Amount: 39.99, Category: models.CategoryEntertainment, Description: "Streaming"},
}

var seedSavings = []service.SavingInput{
	{Amount: 500, Note: "Emergency fund"},
	{Amount: 250, Note: "Vacation"},
}

var seedInvestments = []service.InvestmentInput{
	{Amount: 1000, Instrument: "ETF - VOO", Note: "Monthly DCA"},
	{Amount: 750, Instrument: "TFSA - Stocks", Note: "Canadian equities"},
}

// Seed 为用户写入演示数据，用户已有支出记录时不做任何操作
func Seed(ctx context.Context, records *service.RecordService, userID string) error {
	existing, err := records.ListExpenses(ctx, userID)
	if err != nil {
		return fmt.Errorf("查询已有数据失败: %w", err)
	}
	if len(existing) > 0 {
		log.Printf("用户 %s 已有数据，跳过初始化", userID)
		return nil
	}

	for _, in := range seedExpenses {
		if _, _, err := records.AddExpense(ctx, userID, in); err != nil {
			return fmt.Errorf("写入示例支出失败: %w", err)
		}
	}
	for _, in := range seedSavings {
		if _, _, err := records.AddSaving(ctx, userID, in); err != nil {
			return fmt.Errorf("写入示例储蓄失败: %w", err)
		}
	}
	for _, in := range seedInvestments {
		if _, _, err := records.AddInvestment(ctx, userID, in); err != nil {
			return fmt.Errorf("写入示例投资失败: %w", err)
		}
	}

	log.Printf("已为用户 %s 写入示例数据", userID)
	return nil
}
