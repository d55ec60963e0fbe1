package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/gema-proficiency-api/internal/dto"
	"github.com/noah-isme/gema-proficiency-api/internal/performance"
)

const (
	summarySheet  = "Summary"
	subjectsSheet = "Subjects"
)

// PerformanceExporter renders performance reports as spreadsheets.
type PerformanceExporter interface {
	ExportXLSX(ctx context.Context, studentID uint) ([]byte, error)
}

type performanceExporter struct {
	performance PerformanceService
}

// NewPerformanceExporter builds an exporter on top of the aggregator.
func NewPerformanceExporter(performance PerformanceService) PerformanceExporter {
	return &performanceExporter{performance: performance}
}

func (e *performanceExporter) ExportXLSX(ctx context.Context, studentID uint) ([]byte, error) {
	report, err := e.performance.Compute(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return renderPerformanceWorkbook(report)
}

func renderPerformanceWorkbook(report dto.PerformanceResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("failed to rename summary sheet: %w", err)
	}

	summary := [][]interface{}{
		{"Component", "Weight", "Score"},
		{"Attendance", performance.WeightAttendance, report.Breakdown.Attendance},
		{"Exams", performance.WeightExams, report.Breakdown.Exams},
		{"Tasks", performance.WeightTasks, report.Breakdown.Tasks},
		{"Coding", performance.WeightCoding, report.Breakdown.Coding},
		{"Mock", performance.WeightMock, report.Breakdown.Mock},
		{"Average", 1.0, report.Average},
		{},
		{"Student", report.StudentID},
		{"Weakest subject", report.Weakest.Label, report.Weakest.Score},
	}
	if err := writeRows(f, summarySheet, summary); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(subjectsSheet); err != nil {
		return nil, fmt.Errorf("failed to create subjects sheet: %w", err)
	}

	subjects := [][]interface{}{{"Subject", "Score", "Color"}}
	for _, subject := range report.Subjects {
		subjects = append(subjects, []interface{}{subject.Label, subject.Score, subject.Color})
	}
	if err := writeRows(f, subjectsSheet, subjects); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for index, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, index+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, index+1, err)
		}
	}
	return nil
}
