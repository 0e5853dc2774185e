package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// ReportService renders the learner profile as a PDF. Core PDF fonts have
// no Cyrillic glyphs, so the report uses category and achievement ids.
type ReportService struct {
	Progress *ProgressService
	now      func() time.Time
}

func NewReportService(progress *ProgressService) *ReportService {
	return &ReportService{Progress: progress, now: time.Now}
}

func (s *ReportService) ProgressReport(ctx context.Context) ([]byte, error) {
	snapshot, err := s.Progress.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	overall, chart, achievements := snapshot.Overall, snapshot.Chart, snapshot.Achievements

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("BioOlymp progress report", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "BioOlymp progress report")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 8, s.now().Format("2006-01-02 15:04"))
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total points: %d", overall.TotalPoints))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Completed: %d of %d (%.0f%%)",
		overall.CompletedQuestions, overall.TotalQuestions, overall.Percentage))
	pdf.Ln(14)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(60, 8, "Topic", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "Completed", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 8, "Total", "1", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	for _, entry := range chart {
		pdf.CellFormat(60, 8, entry.Topic, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprint(entry.Completed), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprint(entry.Total), "1", 1, "C", false, 0, "")
	}
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Achievements")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	for _, a := range achievements {
		status := "locked"
		if a.IsUnlocked {
			status = "unlocked"
		}
		pdf.Cell(0, 8, fmt.Sprintf("%s: %d/%d, %s", a.ID, a.CurrentProgress, a.Requirement, status))
		pdf.Ln(8)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render progress report: %w", err)
	}
	return buf.Bytes(), nil
}
