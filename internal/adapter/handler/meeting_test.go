package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/minutetrack/minute-tracker/internal/domain/entities"
	"github.com/minutetrack/minute-tracker/internal/usecase/report"
)

type fakeMeetingStore struct {
	meetings map[string]*entities.Meeting
}

func newFakeMeetingStore() *fakeMeetingStore {
	return &fakeMeetingStore{meetings: map[string]*entities.Meeting{}}
}

func (f *fakeMeetingStore) CreateWithActions(_ context.Context, meeting *entities.Meeting, _ []*entities.ActionItem) error {
	if _, ok := f.meetings[meeting.Filename]; ok {
		return entities.ErrDuplicateMeeting
	}
	f.meetings[meeting.Filename] = meeting
	return nil
}

func (f *fakeMeetingStore) GetByFilename(_ context.Context, filename string) (*entities.Meeting, error) {
	m, ok := f.meetings[filename]
	if !ok {
		return nil, entities.ErrMeetingNotFound
	}
	return m, nil
}

func (f *fakeMeetingStore) ExistsByFilename(_ context.Context, filename string) (bool, error) {
	_, ok := f.meetings[filename]
	return ok, nil
}

func (f *fakeMeetingStore) List(_ context.Context, _, _ int) ([]*entities.Meeting, error) {
	var out []*entities.Meeting
	for _, m := range f.meetings {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMeetingStore) Delete(_ context.Context, filename string) error {
	if _, ok := f.meetings[filename]; !ok {
		return entities.ErrMeetingNotFound
	}
	delete(f.meetings, filename)
	return nil
}

func TestMeetingExport_StreamsWorkbook(t *testing.T) {
	meetings := newFakeMeetingStore()
	meeting := entities.NewMeeting("standup.mp3", "Daily standup", time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	meeting.Summary = "Team discussed the release."
	meetings.meetings["standup.mp3"] = meeting

	actions := newFakeActionRepo()
	item := entities.NewActionItem(meeting.ID, "standup.mp3", "send the report")
	actions.add(item)

	e := newTestEcho()
	h := NewMeetingHandler(nil, meetings, actions, report.NewExporter(), t.TempDir(), nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("filename")
	c.SetParamValues("standup.mp3")

	if err := h.Export(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.Contains(ct, "spreadsheetml") {
		t.Fatalf("content type = %q, want xlsx", ct)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(cd, "standup.mp3-minutes.xlsx") {
		t.Fatalf("content disposition = %q", cd)
	}
	// xlsx is a zip container
	if body := rec.Body.Bytes(); len(body) < 2 || body[0] != 'P' || body[1] != 'K' {
		t.Fatal("body is not a workbook")
	}
}

func TestMeetingExport_NotFound(t *testing.T) {
	e := newTestEcho()
	h := NewMeetingHandler(nil, newFakeMeetingStore(), newFakeActionRepo(), report.NewExporter(), t.TempDir(), nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("filename")
	c.SetParamValues(uuid.NewString() + ".mp3")

	if err := h.Export(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
