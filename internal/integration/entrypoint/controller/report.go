package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wallet-ledger/backend/internal/application/usecase/report"
	"github.com/wallet-ledger/backend/internal/integration/entrypoint/dto"
)

// ReportController handles reporting endpoints.
type ReportController struct {
	monthlySummaryUseCase *report.MonthlySummaryUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(monthlySummaryUseCase *report.MonthlySummaryUseCase) *ReportController {
	return &ReportController{monthlySummaryUseCase: monthlySummaryUseCase}
}

// MonthlySummary handles GET /reports/monthly-summary requests. The month
// query parameter uses YYYY-MM format.
func (c *ReportController) MonthlySummary(ctx *gin.Context) {
	month, err := time.Parse("2006-01", ctx.Query("month"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid or missing month. Use YYYY-MM",
		})
		return
	}

	output, err := c.monthlySummaryUseCase.Execute(ctx.Request.Context(), report.MonthlySummaryInput{Month: month})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToMonthlySummaryResponse(output))
}
