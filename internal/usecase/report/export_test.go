package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/minutetrack/minute-tracker/internal/domain/entities"
)

func TestWriteWorkbook(t *testing.T) {
	meeting := entities.NewMeeting("standup.mp3", "Daily standup", time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	meeting.Summary = "Team aligned on the release."
	meeting.Participants = []string{"Alice", "Bob"}
	meeting.AgendaItems = []string{"release plan"}
	meeting.Duration = 600

	deadline := time.Date(2026, 3, 6, 23, 59, 59, 0, time.UTC)
	action := entities.NewActionItem(meeting.ID, meeting.Filename, "Alice will send the report")
	action.Assignees = []string{"Alice"}
	action.Deadline = &deadline
	action.DeadlineUrgency = entities.UrgencyMedium
	action.Confidence = 0.85

	var buf bytes.Buffer
	if err := NewExporter().WriteWorkbook(meeting, []*entities.ActionItem{action}, &buf); err != nil {
		t.Fatalf("WriteWorkbook: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("workbook not readable: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Minutes" || sheets[1] != "Actions" {
		t.Fatalf("unexpected sheets: %v", sheets)
	}

	title, err := f.GetCellValue("Minutes", "B1")
	if err != nil || title != "Daily standup" {
		t.Fatalf("Minutes!B1 = %q (%v), want title", title, err)
	}

	text, err := f.GetCellValue("Actions", "A2")
	if err != nil || text != "Alice will send the report" {
		t.Fatalf("Actions!A2 = %q (%v)", text, err)
	}
	deadlineCell, err := f.GetCellValue("Actions", "C2")
	if err != nil || deadlineCell != "2026-03-06" {
		t.Fatalf("Actions!C2 = %q (%v)", deadlineCell, err)
	}
}
