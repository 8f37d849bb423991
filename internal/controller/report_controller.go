package controller

import (
	"errors"
	"net/http"

	"artscore_backend/internal/service"
	"artscore_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService *service.ReportService
}

func NewReportController(reportService *service.ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

func serveFile(ctx *gin.Context, data []byte, filename, contentType string) {
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, contentType, data)
}

// SessionReport godoc
// @Summary Download the session result PDF
// @Tags reports
// @Produce  application/pdf
// @Param   id path string true "Session UUID"
// @Success 200 {file} binary "PDF document"
// @Failure 404 {object} util.Response "Not found"
// @Failure 409 {object} util.Response "Session not finished"
// @Router /api/quiz/session/{id}/report.pdf [get]
func (c *ReportController) SessionReport(ctx *gin.Context) {
	data, filename, err := c.ReportService.SessionReportPDF(ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrWrongPhase):
			util.Error(ctx, 409, "session is not finished")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	serveFile(ctx, data, filename, "application/pdf")
}

// LeadsCSV godoc
// @Summary Export leads as CSV
// @Tags admin
// @Produce  text/csv
// @Security ApiKeyAuth
// @Param   status query string false "Filter by status"
// @Success 200 {file} binary "CSV document"
// @Router /api/admin/reports/leads.csv [get]
func (c *ReportController) LeadsCSV(ctx *gin.Context) {
	data, filename, err := c.ReportService.LeadsCSV(ctx.Query("status"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	serveFile(ctx, data, filename, "text/csv")
}

// LeadsXLSX godoc
// @Summary Export leads as a spreadsheet
// @Tags admin
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Param   status query string false "Filter by status"
// @Success 200 {file} binary "XLSX document"
// @Router /api/admin/reports/leads.xlsx [get]
func (c *ReportController) LeadsXLSX(ctx *gin.Context) {
	data, filename, err := c.ReportService.LeadsXLSX(ctx.Query("status"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	serveFile(ctx, data, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

// CommissionsCSV godoc
// @Summary Export won-lead commissions as CSV
// @Tags admin
// @Produce  text/csv
// @Security ApiKeyAuth
// @Success 200 {file} binary "CSV document"
// @Router /api/admin/reports/commissions.csv [get]
func (c *ReportController) CommissionsCSV(ctx *gin.Context) {
	data, filename, err := c.ReportService.CommissionsCSV()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	serveFile(ctx, data, filename, "text/csv")
}

// CommissionsXLSX godoc
// @Summary Export won-lead commissions as a spreadsheet
// @Tags admin
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Success 200 {file} binary "XLSX document"
// @Router /api/admin/reports/commissions.xlsx [get]
func (c *ReportController) CommissionsXLSX(ctx *gin.Context) {
	data, filename, err := c.ReportService.CommissionsXLSX()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	serveFile(ctx, data, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}
