package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/gradpath/transcript-service/constants"
	"github.com/gradpath/transcript-service/internal/entity"
	"github.com/gradpath/transcript-service/internal/repository"
)

// Service produces XLSX bytes from a stored transcript.
type Service struct {
	transcripts repository.TranscriptRepository
	logger      *slog.Logger
}

func NewService(transcripts repository.TranscriptRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{transcripts: transcripts, logger: logger}
}

const sheet = "Transcript"

// ExportTranscriptXLSX loads the user's transcript and renders a workbook:
// a student-info header block, the course table, then term and overall
// totals. Unparsed totals render as "not parsed" rather than zeros.
func (s *Service) ExportTranscriptXLSX(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	start := time.Now()

	t, err := s.transcripts.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if defIdx, _ := f.GetSheetIndex("Sheet1"); defIdx != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	row := writeStudentInfo(write, t, 1)
	row = writeCourses(write, t.Courses, row+1)
	row = writeTermTotals(write, t.TermTotals, row+1)
	writeOverallTotals(write, t.OverallTotals, row+1)

	_ = f.SetColWidth(sheet, "A", "A", 18)
	_ = f.SetColWidth(sheet, "B", "C", 12)
	_ = f.SetColWidth(sheet, "D", "D", 42)
	_ = f.SetColWidth(sheet, "E", "G", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"user_id", userID.String(),
		"courses", len(t.Courses),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

type cellWriter func(col, row int, v any)

func writeStudentInfo(write cellWriter, t *entity.Transcript, row int) int {
	pairs := []struct {
		label string
		value any
	}{
		{"Name", t.StudentInfo.Name},
		{"Student ID", t.StudentInfo.StudentID},
		{"Program", t.StudentInfo.Program},
		{"College", t.StudentInfo.College},
		{"Major", t.StudentInfo.Major},
		{"Cumulative GPA", t.StudentInfo.CumulativeGPA},
		{"Source", string(t.Source)},
		{"Uploaded", t.UploadDate.UTC().Format("2006-01-02")},
	}
	for _, p := range pairs {
		write(1, row, p.label)
		write(2, row, p.value)
		row++
	}
	return row
}

func writeCourses(write cellWriter, courses []entity.Course, row int) int {
	headers := []string{"Term", "Subject", "Course", "Title", "Grade", "Credit Hours", "Quality Points"}
	for i, h := range headers {
		write(i+1, row, h)
	}
	row++
	for _, c := range courses {
		write(1, row, c.Term)
		write(2, row, c.Subject)
		write(3, row, c.CourseCode)
		write(4, row, c.Title)
		write(5, row, string(c.Grade))
		write(6, row, c.CreditHours)
		if c.Status == constants.CourseCompleted {
			write(7, row, c.QualityPoints)
		} else {
			write(7, row, "")
		}
		row++
	}
	return row
}

func writeTermTotals(write cellWriter, totals []entity.TermTotal, row int) int {
	if len(totals) == 0 {
		return row - 1
	}
	headers := []string{"Term", "Attempted", "Passed", "Earned", "GPA Hours", "Quality Points", "GPA"}
	for i, h := range headers {
		write(i+1, row, h)
	}
	row++
	for _, tt := range totals {
		write(1, row, tt.Term)
		write(2, row, tt.Totals.AttemptHours)
		write(3, row, tt.Totals.PassedHours)
		write(4, row, tt.Totals.EarnedHours)
		write(5, row, tt.Totals.GPAHours)
		write(6, row, tt.Totals.QualityPoints)
		write(7, row, tt.Totals.GPA)
		row++
	}
	return row
}

func writeOverallTotals(write cellWriter, totals entity.Totals, row int) {
	write(1, row, "Overall")
	if !totals.Parsed {
		write(2, row, "not parsed")
		return
	}
	write(2, row, totals.AttemptHours)
	write(3, row, totals.PassedHours)
	write(4, row, totals.EarnedHours)
	write(5, row, totals.GPAHours)
	write(6, row, totals.QualityPoints)
	write(7, row, totals.GPA)
}
