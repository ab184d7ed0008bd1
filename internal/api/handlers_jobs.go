package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/dgallion1/exitsurvey/internal/pipeline"
)

type jobAccepted struct {
	Filename string             `json:"filename"`
	JobID    string             `json:"job_id,omitempty"`
	Status   pipeline.JobStatus `json:"status,omitempty"`
	PollURL  string             `json:"poll_url,omitempty"`
	Error    string             `json:"error,omitempty"`
}

func (s *Server) submit(filename string, data []byte) (jobAccepted, error) {
	job := pipeline.NewJob(filename, data)
	if err := s.orchestrator.Submit(job); err != nil {
		return jobAccepted{Filename: filename, Error: err.Error()}, err
	}
	return jobAccepted{
		Filename: filename,
		JobID:    job.ID,
		Status:   pipeline.StatusQueued,
		PollURL:  fmt.Sprintf("/api/jobs/%s", job.ID),
	}, nil
}

func (s *Server) handleSubmitJob(w http.ResponseWriter, r *http.Request) {
	filename, data, err := s.readUpload(w, r)
	if err != nil {
		jsonError(w, r, err.Error(), statusFor(err))
		return
	}

	accepted, err := s.submit(filename, data)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, pipeline.ErrQueueFull) || errors.Is(err, pipeline.ErrStopped) {
			code = http.StatusServiceUnavailable
		}
		jsonError(w, r, err.Error(), code)
		return
	}

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, accepted)
}

// handleBatchSubmit queues every file of the "files" field. Per-file
// failures are reported inline.
func (s *Server) handleBatchSubmit(w http.ResponseWriter, r *http.Request) {
	if err := s.parseForm(w, r, s.cfg.MaxUploadBytes*10); err != nil {
		jsonError(w, r, err.Error(), statusFor(err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, r, "at least one file is required", http.StatusBadRequest)
		return
	}

	results := make([]jobAccepted, 0, len(files))
	for _, fh := range files {
		filename, data, err := s.readFile(fh)
		if err != nil {
			results = append(results, jobAccepted{Filename: filename, Error: err.Error()})
			continue
		}
		accepted, _ := s.submit(filename, data)
		results = append(results, accepted)
	}

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, map[string]any{"jobs": results})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, r, "job not found", http.StatusNotFound)
		return
	}
	render.JSON(w, r, job.Snapshot())
}

// handleJobResult returns only the analysis of a completed job. Jobs that
// are still running or failed answer 409 with their status.
func (s *Server) handleJobResult(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, r, "job not found", http.StatusNotFound)
		return
	}
	res, ok := job.Result()
	if !ok {
		jsonError(w, r, fmt.Sprintf("job is %s", job.Snapshot().Status), http.StatusConflict)
		return
	}
	render.JSON(w, r, res)
}
