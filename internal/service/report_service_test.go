package service

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"artscore_backend/internal/config"
	"artscore_backend/internal/model"

	"github.com/xuri/excelize/v2"
)

func exportFixture() []model.Lead {
	partner := &model.User{Name: "Studio North"}
	leads := []model.Lead{
		{
			PartnerID:    1,
			Partner:      partner,
			CustomerName: "Jane Doe",
			Email:        "jane@example.com",
			Phone:        "555-0100",
			Status:       model.LeadWon,
			Commission:   250.5,
		},
		{
			PartnerID:    1,
			CustomerName: "John Roe",
			Status:       model.LeadNew,
		},
	}
	for i := range leads {
		leads[i].ID = uint(i + 1)
		leads[i].CreatedAt = time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)
	}
	return leads
}

func TestLeadsToCSV(t *testing.T) {
	data, err := leadsToCSV(exportFixture())
	if err != nil {
		t.Fatalf("csv export: %v", err)
	}

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][7] != "Commission" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][2] != "Studio North" || rows[1][6] != "won" || rows[1][7] != "250.50" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
	// Missing partner preload leaves the column empty rather than failing.
	if rows[2][2] != "" || rows[2][6] != "new" {
		t.Fatalf("unexpected second row: %v", rows[2])
	}
}

func TestLeadsToXLSX(t *testing.T) {
	data, err := leadsToXLSX(exportFixture())
	if err != nil {
		t.Fatalf("xlsx export: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[1][3] != "Jane Doe" {
		t.Fatalf("unexpected customer cell: %v", rows[1])
	}
}

func TestSessionReportPDF(t *testing.T) {
	env := newTestEnv(t)
	styles, _, details := env.seedCatalog(t)
	orc := env.orchestrator(testQuizConfig())
	session := env.startSession(t, model.PhaseResults)

	env.scores.IncrementStyleScore(session.ID, styles[0].ID, 5, false)
	env.scores.IncrementStyleScore(session.ID, styles[1].ID, 2, false)
	env.scores.IncrementDetailScore(session.ID, details[0].ID, 3)

	storage := &StorageService{Provider: &LocalStorageProvider{Config: &config.StorageConfig{LocalPath: t.TempDir()}}}
	svc := NewReportService(orc, nil, storage)

	data, filename, err := svc.SessionReportPDF(session.ID)
	if err != nil {
		t.Fatalf("pdf export: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("expected a PDF document")
	}
	if !strings.HasSuffix(filename, ".pdf") {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestSessionReportPDFRequiresFinishedSession(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog(t)
	orc := env.orchestrator(testQuizConfig())
	session := env.startSession(t, model.PhaseStyleSwipe)

	storage := &StorageService{Provider: &LocalStorageProvider{Config: &config.StorageConfig{LocalPath: t.TempDir()}}}
	svc := NewReportService(orc, nil, storage)

	if _, _, err := svc.SessionReportPDF(session.ID); err == nil {
		t.Fatal("expected an error for an unfinished session")
	}
}
