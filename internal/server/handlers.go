package server

import (
	"context"
	_ "embed"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mohan/resume-optimizer/internal/catalog"
	"github.com/mohan/resume-optimizer/internal/runner"
)

//go:embed index.html
var indexHTML []byte

// maxUploadBytes caps the multipart form size for resume uploads.
const maxUploadBytes = 16 << 20

// handleIndex serves the web UI.
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

// modelResponse is one catalog entry as exposed to clients.
type modelResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Provider    string `json:"provider"`
	Default     bool   `json:"default"`
}

// handleModels lists the selectable models.
func (s *Server) handleModels(w http.ResponseWriter, _ *http.Request) {
	opts := catalog.Options()
	models := make([]modelResponse, 0, len(opts))
	for _, opt := range opts {
		models = append(models, modelResponse{
			ID:          opt.ID,
			DisplayName: opt.DisplayName,
			Provider:    string(opt.Provider),
			Default:     opt.ID == catalog.Default().ID,
		})
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"models": models})
}

// handleCreateRun accepts a multipart run request, starts the run in the
// background and answers 202 with the run's resource URLs.
func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "please upload a resume")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read resume upload")
		return
	}

	req := runner.Request{
		ModelID:     r.FormValue("model"),
		ResumeName:  header.Filename,
		ResumeData:  data,
		CompanyName: strings.TrimSpace(r.FormValue("company_name")),
		JobURL:      strings.TrimSpace(r.FormValue("job_url")),
		Credentials: s.credentialsFrom(r),
	}
	if req.ModelID == "" {
		req.ModelID = s.defaultModelID()
	}
	if req.CompanyName == "" {
		s.errorResponse(w, http.StatusBadRequest, "company name is required")
		return
	}
	if req.JobURL == "" {
		s.errorResponse(w, http.StatusBadRequest, "job URL is required")
		return
	}

	state := s.registry.create()
	go s.executeRun(state, req)

	s.jsonResponse(w, http.StatusAccepted, map[string]string{
		"run_id":     state.id.String(),
		"status_url": "/runs/" + state.id.String(),
		"events_url": "/runs/" + state.id.String() + "/events",
	})
}

// executeRun drives one run to completion in the background. It uses a fresh
// context: the run outlives the HTTP request that started it.
func (s *Server) executeRun(state *runState, req runner.Request) {
	res, err := s.runner.Run(context.Background(), req, state.appendEvent)
	if err != nil {
		log.Printf("[server] run %s failed: %v", state.id, err)
		state.fail(err)
		return
	}
	state.complete(res)
}

// credentialsFrom merges per-request credentials over the server-wide ones.
func (s *Server) credentialsFrom(r *http.Request) runner.Credentials {
	creds := s.creds
	if v := r.FormValue("gemini_api_key"); v != "" {
		creds.GeminiAPIKey = v
	}
	if v := r.FormValue("search_api_key"); v != "" {
		creds.SearchAPIKey = v
	}
	if v := r.FormValue("search_cx"); v != "" {
		creds.SearchCX = v
	}
	return creds
}

func (s *Server) defaultModelID() string {
	if s.defaultModel != "" {
		return s.defaultModel
	}
	return catalog.Default().ID
}

// runResponse is the status document for one run.
type runResponse struct {
	RunID     string             `json:"run_id"`
	Phase     Phase              `json:"phase"`
	Status    string             `json:"status,omitempty"`
	Error     string             `json:"error,omitempty"`
	RunFolder string             `json:"run_folder,omitempty"`
	Documents []documentResponse `json:"documents,omitempty"`
}

type documentResponse struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	PDFURL string `json:"pdf_url,omitempty"`
}

// handleGetRun reports the current phase and, once completed, the documents.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	state, ok := s.lookupRun(w, r)
	if !ok {
		return
	}

	phase, result, runErr := state.snapshot()
	resp := runResponse{RunID: state.id.String(), Phase: phase}
	switch phase {
	case PhaseFailed:
		resp.Error = runErr.Error()
	case PhaseCompleted:
		resp.Status = result.Status
		resp.RunFolder = result.RunFolder
		for _, doc := range result.Documents {
			dr := documentResponse{
				Name: doc.Name,
				URL:  "/runs/" + state.id.String() + "/documents/" + doc.Name,
			}
			if doc.PDFPath != "" {
				dr.PDFURL = dr.URL + "/pdf"
			}
			resp.Documents = append(resp.Documents, dr)
		}
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleRunEvents streams stage progress as Server-Sent Events, replaying
// events the client missed, and ends with a complete or error event.
func (s *Server) handleRunEvents(w http.ResponseWriter, r *http.Request) {
	state, ok := s.lookupRun(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	past, live, done := state.subscribe()
	defer state.unsubscribe(live)

	for _, e := range past {
		if err := sse.WriteProgress(e); err != nil {
			return
		}
	}

	for {
		select {
		case e := <-live:
			if err := sse.WriteProgress(e); err != nil {
				return
			}
		case <-done:
			// Drain events that raced with completion.
			for {
				select {
				case e := <-live:
					_ = sse.WriteProgress(e)
					continue
				default:
				}
				break
			}
			s.writeFinalEvent(sse, state)
			return
		case <-r.Context().Done():
			return
		}
	}
}

func (s *Server) writeFinalEvent(sse *SSEWriter, state *runState) {
	phase, result, runErr := state.snapshot()
	if phase == PhaseFailed {
		sse.WriteError(runErr.Error())
		return
	}
	sse.WriteComplete(state.id.String(), result.Status)
}

// handleRunDocument serves one archived Markdown deliverable.
func (s *Server) handleRunDocument(w http.ResponseWriter, r *http.Request) {
	_, doc, ok := s.lookupDocument(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	http.ServeFile(w, r, doc.MarkdownPath)
}

// handleRunDocumentPDF serves the PDF companion of a deliverable.
func (s *Server) handleRunDocumentPDF(w http.ResponseWriter, r *http.Request) {
	_, doc, ok := s.lookupDocument(w, r)
	if !ok {
		return
	}
	if doc.PDFPath == "" {
		s.errorResponse(w, http.StatusNotFound, "no PDF was rendered for "+doc.Name)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filepath.Base(doc.PDFPath)+`"`)
	http.ServeFile(w, r, doc.PDFPath)
}

// lookupRun resolves the {id} path value; on failure it writes the error
// response and returns ok=false.
func (s *Server) lookupRun(w http.ResponseWriter, r *http.Request) (*runState, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid run ID")
		return nil, false
	}
	state, ok := s.registry.get(id)
	if !ok {
		nf := &ErrRunNotFound{RunID: id}
		s.errorResponse(w, HTTPStatus(nf), nf.Error())
		return nil, false
	}
	return state, true
}

// lookupDocument resolves a completed run's document by its fixed name. The
// name must match a document the run produced, which also keeps path
// traversal out of the file serving below.
func (s *Server) lookupDocument(w http.ResponseWriter, r *http.Request) (*runState, runner.Document, bool) {
	state, ok := s.lookupRun(w, r)
	if !ok {
		return nil, runner.Document{}, false
	}

	phase, result, _ := state.snapshot()
	if phase != PhaseCompleted {
		s.errorResponse(w, http.StatusConflict, "run has not completed")
		return nil, runner.Document{}, false
	}

	name := r.PathValue("name")
	for _, doc := range result.Documents {
		if doc.Name == name {
			return state, doc, true
		}
	}
	nf := &ErrDocumentNotFound{Name: name}
	s.errorResponse(w, HTTPStatus(nf), nf.Error())
	return nil, runner.Document{}, false
}
