// Package report renders a persisted meeting and its actions as a portable
// spreadsheet document.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/minutetrack/minute-tracker/internal/domain/entities"
)

// Exporter writes meeting minutes workbooks.
type Exporter struct{}

// NewExporter creates an Exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// WriteWorkbook renders the meeting into an xlsx workbook with a Minutes
// sheet and an Actions sheet and writes it to w.
func (e *Exporter) WriteWorkbook(meeting *entities.Meeting, actions []*entities.ActionItem, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	const minutesSheet = "Minutes"
	if err := f.SetSheetName("Sheet1", minutesSheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Title", meeting.Title},
		{"File", meeting.Filename},
		{"Date", meeting.Date.Format("2006-01-02")},
		{"Duration (min)", fmt.Sprintf("%.1f", meeting.Duration/60)},
		{"Participants", strings.Join(meeting.Participants, ", ")},
		{},
		{"Summary", meeting.Summary},
		{},
		{"Agenda"},
	}
	rows = appendList(rows, meeting.AgendaItems)
	rows = append(rows, []interface{}{}, []interface{}{"Decisions"})
	rows = appendList(rows, meeting.Decisions)
	rows = append(rows, []interface{}{}, []interface{}{"Risks"})
	rows = appendList(rows, meeting.Risks)
	rows = append(rows, []interface{}{}, []interface{}{"Next Steps"})
	rows = appendList(rows, meeting.NextSteps)

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(minutesSheet, cell, &row); err != nil {
			return err
		}
	}

	const actionsSheet = "Actions"
	if _, err := f.NewSheet(actionsSheet); err != nil {
		return err
	}

	header := []interface{}{"Action", "Assignees", "Deadline", "Urgency", "Status", "Speaker", "Confidence"}
	if err := f.SetSheetRow(actionsSheet, "A1", &header); err != nil {
		return err
	}

	for i, action := range actions {
		deadline := ""
		if action.Deadline != nil {
			deadline = action.Deadline.Format("2006-01-02")
		}
		row := []interface{}{
			action.ActionText,
			strings.Join(action.Assignees, ", "),
			deadline,
			string(action.DeadlineUrgency),
			string(action.Status),
			action.Speaker,
			fmt.Sprintf("%.2f", action.Confidence),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(actionsSheet, cell, &row); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func appendList(rows [][]interface{}, items []string) [][]interface{} {
	for _, item := range items {
		rows = append(rows, []interface{}{"", item})
	}
	return rows
}
