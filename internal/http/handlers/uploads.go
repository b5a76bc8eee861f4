package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/preston-bernstein/sunday-game-service/internal/logging"
	"github.com/preston-bernstein/sunday-game-service/internal/uploads"
)

const (
	photoField = "photo"
	// multipartOverhead covers boundaries and part headers around the file.
	multipartOverhead = 64 << 10

	msgNoFile   = "No file uploaded"
	msgNotImage = "Only image files are allowed!"
)

var errNoFile = errors.New("no file part")

type uploadResponse struct {
	Success bool `json:"success"`
	uploads.Upload
}

// UploadPhoto stores the multipart "photo" file and returns its public URL.
func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	r.Body = http.MaxBytesReader(w, r.Body, h.uploads.MaxBytes+multipartOverhead)

	part, err := photoPart(r)
	if err != nil {
		h.rejectUpload(w, r, logger, err)
		return
	}
	defer part.Close()

	up, err := h.uploads.Save(part.FileName(), part.Header.Get("Content-Type"), part)
	if err != nil {
		h.rejectUpload(w, r, logger, err)
		return
	}
	h.recorder.RecordUpload(up.Size, nil)
	logging.Info(logger, "photo uploaded",
		slog.String(logging.FieldFilename, up.Filename),
		slog.Int64(logging.FieldSize, up.Size),
	)
	writeJSON(w, http.StatusOK, uploadResponse{Success: true, Upload: up}, logger)
}

func (h *Handler) rejectUpload(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	h.recorder.RecordUpload(0, err)

	var tooBig *http.MaxBytesError
	switch {
	case errors.Is(err, uploads.ErrTooLarge), errors.As(err, &tooBig):
		msg := fmt.Sprintf("File too large. Maximum size is %dMB.", h.uploads.MaxBytes>>20)
		writeError(w, r, http.StatusBadRequest, msg, logger)
	case errors.Is(err, uploads.ErrNotImage):
		writeError(w, r, http.StatusBadRequest, msgNotImage, logger)
	case errors.Is(err, errNoFile):
		writeError(w, r, http.StatusBadRequest, msgNoFile, logger)
	default:
		h.internalError(w, r, logger, "Failed to upload file", err)
	}
}

// photoPart streams the multipart body up to the photo file part.
func photoPart(r *http.Request) (*multipart.Part, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errNoFile, err)
	}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, errNoFile
		}
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, err
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errNoFile, err)
		}
		if part.FormName() == photoField && part.FileName() != "" {
			return part, nil
		}
		part.Close()
	}
}
