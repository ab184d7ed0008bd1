package api

import (
	"bytes"
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/dgallion1/exitsurvey/internal/analysis"
	"github.com/dgallion1/exitsurvey/internal/pipeline"
)

type analyzeResponse struct {
	Filename    string          `json:"filename"`
	ContentHash string          `json:"content_hash"`
	Rows        int             `json:"rows"`
	Result      analysis.Result `json:"result"`
}

// handleAnalyze parses and analyzes the upload within the request.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	filename, data, err := s.readUpload(w, r)
	if err != nil {
		jsonError(w, r, err.Error(), statusFor(err))
		return
	}

	sheet, res, err := s.orchestrator.AnalyzeNow(r.Context(), filename, bytes.NewReader(data))
	if err != nil {
		s.log.Info("analysis rejected", zap.String("filename", filename), zap.Error(err))
		jsonError(w, r, err.Error(), statusFor(err))
		return
	}

	render.JSON(w, r, analyzeResponse{
		Filename:    filename,
		ContentHash: pipeline.ContentHashHex(data),
		Rows:        len(sheet.Rows),
		Result:      res,
	})
}
