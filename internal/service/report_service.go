package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"artscore_backend/internal/model"
	"artscore_backend/pkg/logger"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// topStylesInReport caps how many ranked styles the session PDF lists.
const topStylesInReport = 3

// ReportService renders session result PDFs and admin lead exports. Every
// generated file is also pushed to the storage provider so reports survive
// beyond the request that produced them.
type ReportService struct {
	Orchestrator *Orchestrator
	LeadService  *LeadService
	Storage      *StorageService
}

func NewReportService(orchestrator *Orchestrator, leadService *LeadService, storage *StorageService) *ReportService {
	return &ReportService{
		Orchestrator: orchestrator,
		LeadService:  leadService,
		Storage:      storage,
	}
}

// archive uploads a rendered report in the background. Archiving is best
// effort, the caller already holds the bytes it will serve.
func (s *ReportService) archive(filename string, data []byte, contentType string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := s.Storage.Upload(ctx, filename, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
			logger.Log.Error("Failed to archive report", zap.String("filename", filename), zap.Error(err))
		}
	}()
}

// SessionReportPDF renders the result summary for one completed session.
func (s *ReportService) SessionReportPDF(sessionID string) ([]byte, string, error) {
	results, err := s.Orchestrator.Results(sessionID)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Style Profile", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, "Your Style Profile")
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Session "+sessionID)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "Top Styles")
	pdf.Ln(10)

	styles := results.Styles
	if len(styles) > topStylesInReport {
		styles = styles[:topStylesInReport]
	}
	for i, style := range styles {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, fmt.Sprintf("%d. %s (%.1f)", i+1, style.Name, style.Score))
		pdf.Ln(7)
		if style.Description != "" {
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, style.Description, "", "L", false)
			pdf.Ln(2)
		}
	}

	writeDetailList := func(title string, details []RankedDetail) {
		if len(details) == 0 {
			return
		}
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.Cell(0, 8, title)
		pdf.Ln(9)
		pdf.SetFont("Helvetica", "", 10)
		for _, d := range details {
			pdf.Cell(0, 6, fmt.Sprintf("- %s (%.1f)", d.Name, d.Score))
			pdf.Ln(6)
		}
	}
	writeDetailList("Details You Liked", results.LikedDetails)
	writeDetailList("Details You Disliked", results.DislikedDetails)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := "session-" + sessionID + ".pdf"
	s.archive(filename, buf.Bytes(), "application/pdf")
	return buf.Bytes(), filename, nil
}

var leadExportHeader = []string{"ID", "Created", "Partner", "Customer", "Email", "Phone", "Status", "Commission"}

func leadExportRow(lead model.Lead) []string {
	partner := ""
	if lead.Partner != nil {
		partner = lead.Partner.Name
	}
	return []string{
		strconv.FormatUint(uint64(lead.ID), 10),
		lead.CreatedAt.Format("2006-01-02"),
		partner,
		lead.CustomerName,
		lead.Email,
		lead.Phone,
		string(lead.Status),
		strconv.FormatFloat(lead.Commission, 'f', 2, 64),
	}
}

// LeadsCSV exports all leads, optionally filtered by status.
func (s *ReportService) LeadsCSV(status string) ([]byte, string, error) {
	leads, err := s.LeadService.LeadsForExport(status)
	if err != nil {
		return nil, "", err
	}

	data, err := leadsToCSV(leads)
	if err != nil {
		return nil, "", err
	}

	filename := exportFilename("leads", "csv")
	s.archive(filename, data, "text/csv")
	return data, filename, nil
}

// LeadsXLSX exports all leads as a spreadsheet, optionally filtered by status.
func (s *ReportService) LeadsXLSX(status string) ([]byte, string, error) {
	leads, err := s.LeadService.LeadsForExport(status)
	if err != nil {
		return nil, "", err
	}

	data, err := leadsToXLSX(leads)
	if err != nil {
		return nil, "", err
	}

	filename := exportFilename("leads", "xlsx")
	s.archive(filename, data, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return data, filename, nil
}

// CommissionsCSV exports won leads with their commission amounts.
func (s *ReportService) CommissionsCSV() ([]byte, string, error) {
	leads, err := s.LeadService.LeadsForExport(string(model.LeadWon))
	if err != nil {
		return nil, "", err
	}

	data, err := leadsToCSV(leads)
	if err != nil {
		return nil, "", err
	}

	filename := exportFilename("commissions", "csv")
	s.archive(filename, data, "text/csv")
	return data, filename, nil
}

// CommissionsXLSX exports won leads with commissions as a spreadsheet.
func (s *ReportService) CommissionsXLSX() ([]byte, string, error) {
	leads, err := s.LeadService.LeadsForExport(string(model.LeadWon))
	if err != nil {
		return nil, "", err
	}

	data, err := leadsToXLSX(leads)
	if err != nil {
		return nil, "", err
	}

	filename := exportFilename("commissions", "xlsx")
	s.archive(filename, data, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return data, filename, nil
}

func leadsToCSV(leads []model.Lead) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(leadExportHeader); err != nil {
		return nil, err
	}
	for _, lead := range leads {
		if err := w.Write(leadExportRow(lead)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func leadsToXLSX(leads []model.Lead) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, title := range leadExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}
	for row, lead := range leads {
		for col, value := range leadExportRow(lead) {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportFilename(kind, ext string) string {
	return fmt.Sprintf("%s-%s.%s", kind, time.Now().Format("20060102-150405"), ext)
}
