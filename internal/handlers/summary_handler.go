// File: internal/handlers/summary_handler.go
package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/yuin/goldmark"

	"github.com/policylens/policylens/internal/services"
)

// maxUploadBytes caps policy document uploads at 16 MiB.
const maxUploadBytes = 16 << 20

type SummaryHandler struct {
	SummaryService *services.SummaryService
	markdown       goldmark.Markdown
}

func NewSummaryHandler(summaryService *services.SummaryService) *SummaryHandler {
	return &SummaryHandler{
		SummaryService: summaryService,
		markdown:       goldmark.New(),
	}
}

// Ingest accepts a multipart upload under the "document" field, archives it
// and returns the generated summary.
func (h *SummaryHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, "invalid multipart upload", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		writeError(w, "a document file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, "could not read upload", http.StatusBadRequest)
		return
	}

	summary, err := h.SummaryService.IngestDocument(
		r.Context(), userID, header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, summary)
}

// List returns the caller's summaries, newest first, with translations.
func (h *SummaryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	summaries, err := h.SummaryService.ListSummaries(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

// Get returns a single summary owned by the caller.
func (h *SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	summaryID, err := pathID(r, "id")
	if err != nil {
		writeError(w, "invalid summary ID", http.StatusBadRequest)
		return
	}

	summary, err := h.SummaryService.GetSummary(r.Context(), userID, summaryID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Translate attaches a translation in the requested language, replacing the
// one attached before, and returns the updated summary.
func (h *SummaryHandler) Translate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	summaryID, err := pathID(r, "id")
	if err != nil {
		writeError(w, "invalid summary ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	summary, err := h.SummaryService.TranslateSummary(r.Context(), userID, summaryID, req.Language)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// DocumentURL returns a short-lived link to the archived source document.
func (h *SummaryHandler) DocumentURL(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	summaryID, err := pathID(r, "id")
	if err != nil {
		writeError(w, "invalid summary ID", http.StatusBadRequest)
		return
	}

	url, err := h.SummaryService.DocumentURL(r.Context(), userID, summaryID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// GetHTML renders the summary's markdown as HTML for embedding.
func (h *SummaryHandler) GetHTML(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	summaryID, err := pathID(r, "id")
	if err != nil {
		writeError(w, "invalid summary ID", http.StatusBadRequest)
		return
	}

	summary, err := h.SummaryService.GetSummary(r.Context(), userID, summaryID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := h.markdown.Convert([]byte(summary.SummarizedText), &buf); err != nil {
		writeError(w, "could not render summary", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// Delete removes the summary, its translation and the archived document.
func (h *SummaryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	summaryID, err := pathID(r, "id")
	if err != nil {
		writeError(w, "invalid summary ID", http.StatusBadRequest)
		return
	}

	if err := h.SummaryService.DeleteSummary(r.Context(), userID, summaryID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
