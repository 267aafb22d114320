package pipeline

import (
	"path/filepath"
	"strings"

	apperrors "github.com/minutetrack/minute-tracker/errors"
)

// MediaValidator gates files before any inference runs. A file passes when
// either its extension or its declared MIME type is acceptable, so missing
// or wrong MIME metadata from the transport layer does not block a valid
// recording.
type MediaValidator struct {
	maxFileSize int64
}

var allowedExtensions = map[string]bool{
	".mp3": true,
	".wav": true,
	".m4a": true,
	".mp4": true,
	".avi": true,
	".mov": true,
}

var allowedMIMEPrefixes = []string{
	"audio/",
	"video/",
}

// NewMediaValidator creates a validator with the given size limit in bytes.
func NewMediaValidator(maxFileSize int64) *MediaValidator {
	if maxFileSize <= 0 {
		maxFileSize = 500 * 1024 * 1024
	}
	return &MediaValidator{maxFileSize: maxFileSize}
}

// FileMeta describes an uploaded file as declared by the transport layer.
type FileMeta struct {
	Filename string
	MIMEType string
	Size     int64
}

// Validate checks extension-or-MIME and size. Rejections carry a
// human-readable reason and never proceed to inference.
func (v *MediaValidator) Validate(meta FileMeta) error {
	if meta.Size <= 0 {
		return apperrors.ErrEmptyFile(meta.Filename)
	}
	if meta.Size > v.maxFileSize {
		return apperrors.ErrFileTooLarge(meta.Size, v.maxFileSize)
	}

	ext := strings.ToLower(filepath.Ext(meta.Filename))
	if allowedExtensions[ext] {
		return nil
	}

	mime := strings.ToLower(strings.TrimSpace(meta.MIMEType))
	for _, prefix := range allowedMIMEPrefixes {
		if strings.HasPrefix(mime, prefix) {
			return nil
		}
	}

	exts := make([]string, 0, len(allowedExtensions))
	for e := range allowedExtensions {
		exts = append(exts, e)
	}
	return apperrors.ErrUnsupportedFormat(meta.Filename, exts)
}
