package dto

import (
	"github.com/wallet-ledger/backend/internal/application/usecase/report"
)

// CategoryExpenseResponse represents one category's spending in a month.
type CategoryExpenseResponse struct {
	CategoryName string `json:"category_name"`
	Amount       string `json:"amount"`
}

// MonthlySummaryResponse represents the monthly spending report.
type MonthlySummaryResponse struct {
	Month        string                    `json:"month"`
	TotalExpense string                    `json:"total_expense"`
	ByCategory   []CategoryExpenseResponse `json:"by_category"`
}

// ToMonthlySummaryResponse converts a MonthlySummaryOutput to a response DTO.
func ToMonthlySummaryResponse(output *report.MonthlySummaryOutput) MonthlySummaryResponse {
	byCategory := make([]CategoryExpenseResponse, len(output.ByCategory))
	for i, c := range output.ByCategory {
		byCategory[i] = CategoryExpenseResponse{
			CategoryName: c.CategoryName,
			Amount:       c.Amount.String(),
		}
	}
	return MonthlySummaryResponse{
		Month:        output.Month.Format("2006-01"),
		TotalExpense: output.TotalExpense.String(),
		ByCategory:   byCategory,
	}
}
