package handler

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/minutetrack/minute-tracker/errors"
	"github.com/minutetrack/minute-tracker/internal/adapter/dto"
	"github.com/minutetrack/minute-tracker/internal/domain/entities"
	"github.com/minutetrack/minute-tracker/internal/domain/repositories"
	"github.com/minutetrack/minute-tracker/internal/usecase/ingest"
	"github.com/minutetrack/minute-tracker/internal/usecase/pipeline"
	"github.com/minutetrack/minute-tracker/internal/usecase/report"
)

// Meeting handles recording submission, job polling and meeting reads.
type Meeting struct {
	coordinator *ingest.Coordinator
	meetings    repositories.MeetingRepository
	actions     repositories.ActionRepository
	exporter    *report.Exporter
	uploadDir   string
	logger      *zap.Logger
}

// NewMeetingHandler creates the meeting handler.
func NewMeetingHandler(
	coordinator *ingest.Coordinator,
	meetings repositories.MeetingRepository,
	actions repositories.ActionRepository,
	exporter *report.Exporter,
	uploadDir string,
	logger *zap.Logger,
) *Meeting {
	return &Meeting{
		coordinator: coordinator,
		meetings:    meetings,
		actions:     actions,
		exporter:    exporter,
		uploadDir:   uploadDir,
		logger:      logger,
	}
}

// Submit accepts a multipart recording upload and enqueues ingestion.
// POST /v1/meetings
func (h *Meeting) Submit(c echo.Context) error {
	var req dto.SubmitMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("invalid form data"))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("missing file part"))
	}

	meetingDate, err := parseMeetingDate(req.Date)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("date must be YYYY-MM-DD"))
	}

	localPath, err := h.saveUpload(fileHeader)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrStorageFailed("save upload", err))
	}

	meta := pipeline.FileMeta{
		Filename: fileHeader.Filename,
		MIMEType: fileHeader.Header.Get("Content-Type"),
		Size:     fileHeader.Size,
	}

	snap, err := h.coordinator.Submit(c.Request().Context(), localPath, meta, req.Title, meetingDate)
	if err != nil {
		os.Remove(localPath)
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusAccepted, dto.SubmitMeetingResponse{
		JobID:    snap.ID.String(),
		Filename: snap.Filename,
		Stage:    string(snap.Stage),
	})
}

// Reprocess deletes the prior record for a filename and runs ingestion
// again. A replacement file part is optional; without one the stored audio
// object is reused.
// POST /v1/meetings/:filename/reprocess
func (h *Meeting) Reprocess(c echo.Context) error {
	filename := c.Param("filename")

	var req dto.SubmitMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("invalid form data"))
	}

	meetingDate, err := parseMeetingDate(req.Date)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("date must be YYYY-MM-DD"))
	}

	var (
		localPath string
		meta      *pipeline.FileMeta
	)
	if fileHeader, err := c.FormFile("file"); err == nil {
		if fileHeader.Filename != filename {
			return HandleError(h.logger, c, apperrors.ErrInvalidArgument("replacement file must keep the original filename"))
		}
		localPath, err = h.saveUpload(fileHeader)
		if err != nil {
			return HandleError(h.logger, c, apperrors.ErrStorageFailed("save upload", err))
		}
		meta = &pipeline.FileMeta{
			Filename: fileHeader.Filename,
			MIMEType: fileHeader.Header.Get("Content-Type"),
			Size:     fileHeader.Size,
		}
	}

	snap, err := h.coordinator.Reprocess(c.Request().Context(), filename, localPath, meta, req.Title, meetingDate)
	if err != nil {
		if localPath != "" {
			os.Remove(localPath)
		}
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusAccepted, dto.SubmitMeetingResponse{
		JobID:    snap.ID.String(),
		Filename: snap.Filename,
		Stage:    string(snap.Stage),
	})
}

// GetJob returns the pollable status of one ingestion job.
// GET /v1/jobs/:id
func (h *Meeting) GetJob(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("invalid job id"))
	}

	snap, ok := h.coordinator.GetJob(id)
	if !ok {
		return HandleError(h.logger, c, apperrors.ErrJobNotFound(id.String()))
	}

	return HandleSuccess(h.logger, c, http.StatusOK, snap)
}

// CancelJob aborts a queued or running ingestion.
// POST /v1/jobs/:id/cancel
func (h *Meeting) CancelJob(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("invalid job id"))
	}

	snap, err := h.coordinator.Cancel(id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, snap)
}

// Get returns the persisted record with its actions, serialized losslessly.
// GET /v1/meetings/:filename
func (h *Meeting) Get(c echo.Context) error {
	filename := c.Param("filename")

	meeting, err := h.meetings.GetByFilename(c.Request().Context(), filename)
	if err != nil {
		if err == entities.ErrMeetingNotFound {
			return HandleError(h.logger, c, apperrors.ErrMeetingNotFound(filename))
		}
		return HandleError(h.logger, c, err)
	}

	actions, err := h.actions.List(c.Request().Context(), repositories.ActionFilter{MeetingFile: filename})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, dto.MeetingResponse{
		Meeting: meeting,
		Actions: dto.NewActionResponses(actions, time.Now()),
	})
}

// List returns recent meetings.
// GET /v1/meetings
func (h *Meeting) List(c echo.Context) error {
	meetings, err := h.meetings.List(c.Request().Context(), 50, 0)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, meetings)
}

// Export streams the minutes workbook for one meeting.
// GET /v1/meetings/:filename/export
func (h *Meeting) Export(c echo.Context) error {
	filename := c.Param("filename")

	meeting, err := h.meetings.GetByFilename(c.Request().Context(), filename)
	if err != nil {
		if err == entities.ErrMeetingNotFound {
			return HandleError(h.logger, c, apperrors.ErrMeetingNotFound(filename))
		}
		return HandleError(h.logger, c, err)
	}

	actions, err := h.actions.List(c.Request().Context(), repositories.ActionFilter{MeetingFile: filename})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	// Render to memory first so a generation failure still returns a clean
	// error response instead of a truncated 200.
	var buf bytes.Buffer
	if err := h.exporter.WriteWorkbook(meeting, actions, &buf); err != nil {
		return HandleError(h.logger, c, apperrors.ErrReportExportFailed("xlsx", err))
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s-minutes.xlsx"`, filename))
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// saveUpload copies the multipart file into the local upload directory for
// the worker to pick up.
func (h *Meeting) saveUpload(fileHeader *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", err
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	localPath := filepath.Join(h.uploadDir, fmt.Sprintf("%s-%s", uuid.NewString(), filepath.Base(fileHeader.Filename)))
	dst, err := os.Create(localPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(localPath)
		return "", err
	}

	return localPath, nil
}

func parseMeetingDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", raw)
}
