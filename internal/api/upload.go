package api

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/render"

	"github.com/dgallion1/exitsurvey/internal/parser"
	"github.com/dgallion1/exitsurvey/internal/survey"
)

// uploadError carries the HTTP status for a rejected upload.
type uploadError struct {
	msg  string
	code int
}

func (e *uploadError) Error() string { return e.msg }

// parseForm reads the multipart body, capped at limit bytes plus form
// overhead.
func (s *Server) parseForm(w http.ResponseWriter, r *http.Request, limit int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit+1024*1024) // extra 1MB for form overhead
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &uploadError{msg: fmt.Sprintf("request exceeds max size (%d bytes)", limit), code: http.StatusRequestEntityTooLarge}
		}
		return &uploadError{msg: "invalid multipart form: " + err.Error(), code: http.StatusBadRequest}
	}
	return nil
}

// readFile validates and reads one uploaded file.
func (s *Server) readFile(fh *multipart.FileHeader) (string, []byte, error) {
	filename := sanitizeFilename(fh.Filename)
	if !parser.IsSupportedExtension(filename) {
		return filename, nil, &uploadError{
			msg:  fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)),
			code: http.StatusUnsupportedMediaType,
		}
	}

	f, err := fh.Open()
	if err != nil {
		return filename, nil, &uploadError{msg: "failed to open file", code: http.StatusInternalServerError}
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return filename, nil, &uploadError{msg: "failed to read file", code: http.StatusInternalServerError}
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return filename, nil, &uploadError{
			msg:  fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes),
			code: http.StatusRequestEntityTooLarge,
		}
	}
	return filename, data, nil
}

// readUpload reads the single "file" field of a multipart request.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, error) {
	if err := s.parseForm(w, r, s.cfg.MaxUploadBytes); err != nil {
		return "", nil, err
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		return "", nil, &uploadError{msg: "file is required", code: http.StatusBadRequest}
	}
	return s.readFile(files[0])
}

// statusFor maps analysis errors to HTTP status codes.
func statusFor(err error) int {
	var ue *uploadError
	switch {
	case errors.As(err, &ue):
		return ue.code
	case errors.Is(err, parser.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, survey.ErrNoData),
		errors.Is(err, survey.ErrNoQuestionColumn),
		errors.Is(err, parser.ErrNoTable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func jsonError(w http.ResponseWriter, r *http.Request, msg string, code int) {
	render.Status(r, code)
	render.JSON(w, r, errorResponse{Error: msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}
