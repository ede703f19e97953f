// Package handlers provides HTTP handlers for the PDF annotation API.
//
// This package contains the HTTP endpoints for session management, document
// upload/fetch/download, page selection, and the annotation lifecycle:
// open a dialog, supply text or a signature, drag the overlay, commit.
//
// Example usage:
//
//	h := handlers.NewAPIHandler(sessionManager, cfg, fetcher)
//	r := chi.NewRouter()
//	r.Post("/api/sessions/", h.CreateSession)
//
// All handlers are designed to be used with the chi router.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"go-pdfstamp/internal/annotate"
	"go-pdfstamp/internal/config"
	"go-pdfstamp/internal/coords"
	"go-pdfstamp/internal/drag"
	"go-pdfstamp/internal/pdf"
	"go-pdfstamp/internal/session"
	"go-pdfstamp/internal/signature"
	"go-pdfstamp/internal/utils"

	"github.com/go-chi/chi/v5"
)

type APIHandler struct {
	SessionManager *session.SessionManager
	Config         *config.Config
	Fetcher        *pdf.Fetcher
	Now            func() time.Time
}

func NewAPIHandler(sm *session.SessionManager, cfg *config.Config, fetcher *pdf.Fetcher) *APIHandler {
	return &APIHandler{SessionManager: sm, Config: cfg, Fetcher: fetcher, Now: time.Now}
}

type successResponse struct {
	Success bool `json:"success"`
}

// CommitResponse is returned after an overlay has been burned into the PDF.
type CommitResponse struct {
	session.View
	DownloadURL string `json:"downloadUrl"`
}

func (h *APIHandler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sessionID := chi.URLParam(r, "sessionID")
	s, exists := h.SessionManager.GetSession(sessionID)
	if !exists {
		writeErrorCode(w, http.StatusNotFound, "session_not_found", "Session not found")
		return nil, false
	}
	return s, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "invalid_json", "Invalid JSON format")
		return false
	}
	return true
}

// CreateSession godoc
// @Summary      Create a new session
// @Description  Creates a new annotation session and returns a session ID
// @Tags         sessions
// @Produce      json
// @Success      200  {object}  map[string]string  "{ sessionId: string }"
// @Router       /api/sessions/ [post]
func (h *APIHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	session := h.SessionManager.CreateSession()
	writeJSON(w, http.StatusOK, map[string]string{"sessionId": session.ID})
}

// GetSession godoc
// @Summary      Get session state
// @Description  Returns the lifecycle state, page geometry and overlay of a session
// @Tags         sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200  {object}  session.View
// @Failure      404  {object}  ErrorResponse  "Session not found"
// @Router       /api/sessions/{sessionID} [get]
func (h *APIHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.View())
}

// DeleteSession godoc
// @Summary      Delete a session
// @Description  Drops the session and everything it holds
// @Tags         sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200  {object}  map[string]bool  "{ success: true }"
// @Failure      404  {object}  ErrorResponse  "Session not found"
// @Router       /api/sessions/{sessionID} [delete]
func (h *APIHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.Clear()
	h.SessionManager.DeleteSession(s.ID)
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (h *APIHandler) load(w http.ResponseWriter, s *session.Session, data []byte, source string) {
	pages, err := pdf.Inspect(data)
	if err != nil {
		log.Printf("Error parsing PDF %s: %v", source, err)
		writeError(w, err)
		return
	}
	if err := s.Load(data, pages, source); err != nil {
		writeError(w, err)
		return
	}
	log.Printf("Session %s loaded %s (%d pages)", s.ID, source, len(pages))
	writeJSON(w, http.StatusOK, s.View())
}

// UploadDocument godoc
// @Summary      Upload a PDF file
// @Description  Uploads the PDF to annotate, replacing any document in the session
// @Tags         document
// @Accept       multipart/form-data
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Param        pdf        formData  file    true  "PDF file"
// @Success      200  {object}  session.View
// @Failure      400  {object}  ErrorResponse  "Bad request"
// @Failure      404  {object}  ErrorResponse  "Session not found"
// @Failure      422  {object}  ErrorResponse  "Document could not be parsed"
// @Router       /api/sessions/{sessionID}/document [post]
func (h *APIHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	maxUploadSize := h.Config.MaxUploadSize
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "file_too_large", "File too large")
		return
	}

	file, handler, err := r.FormFile("pdf")
	if err != nil {
		writeErrorCode(w, http.StatusBadRequest, "missing_file", "Error retrieving file")
		return
	}
	defer file.Close()

	if strings.ToLower(filepath.Ext(handler.Filename)) != ".pdf" {
		writeErrorCode(w, http.StatusBadRequest, "invalid_file", "Only PDF files are allowed")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeErrorCode(w, http.StatusBadRequest, "invalid_file", "Failed to read file")
		return
	}
	if !pdf.IsPDF(data) {
		writeErrorCode(w, http.StatusBadRequest, "invalid_file", "Uploaded file is not a valid PDF")
		return
	}

	h.load(w, s, data, utils.SanitizeFilename(handler.Filename))
}

// FetchDocument godoc
// @Summary      Load the remote source PDF
// @Description  Fetches the configured source URL and loads it into the session
// @Tags         document
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200  {object}  session.View
// @Failure      404  {object}  ErrorResponse  "Session not found"
// @Failure      422  {object}  ErrorResponse  "Document could not be parsed"
// @Failure      502  {object}  ErrorResponse  "Fetch failed"
// @Router       /api/sessions/{sessionID}/document/fetch [post]
func (h *APIHandler) FetchDocument(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	if h.Config.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Config.FetchTimeout)
		defer cancel()
	}

	data, err := h.Fetcher.Fetch(ctx, h.Config.SourceURL)
	if err != nil {
		log.Printf("Error fetching %s: %v", h.Config.SourceURL, err)
		writeError(w, err)
		return
	}
	h.load(w, s, data, h.Config.SourceURL)
}

// DownloadDocument godoc
// @Summary      Download the annotated PDF
// @Description  Downloads the current document as an attachment
// @Tags         document
// @Produce      application/pdf
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200  {file}    file  "PDF file download"
// @Success      304  {string}  string  "Not modified"
// @Failure      404  {object}  ErrorResponse  "Session not found"
// @Failure      409  {object}  ErrorResponse  "No document loaded"
// @Router       /api/sessions/{sessionID}/document [get]
func (h *APIHandler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	doc, err := s.Current()
	if err != nil {
		writeError(w, err)
		return
	}

	name := utils.SanitizeFilename(h.Config.DownloadName)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("ETag", strconv.Quote(doc.Digest))
	http.ServeContent(w, r, name, time.Time{}, bytes.NewReader(doc.Current))
}

// UnloadDocument godoc
// @Summary      Unload the document
// @Description  Removes the document and any annotation in progress from the session
// @Tags         document
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200  {object}  map[string]bool  "{ success: true }"
// @Failure      404  {object}  ErrorResponse  "Session not found"
// @Router       /api/sessions/{sessionID}/document [delete]
func (h *APIHandler) UnloadDocument(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.Unload()
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// SetPage godoc
// @Summary      Select a page
// @Description  Selects the 0-based page the overlay will be placed on
// @Tags         document
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Param        request    body      object  true  "{ page: int }"
// @Success      200  {object}  session.View
// @Failure      400  {object}  ErrorResponse  "Page out of range"
// @Failure      404  {object}  ErrorResponse  "Session not found"
// @Failure      409  {object}  ErrorResponse  "Commit in progress"
// @Router       /api/sessions/{sessionID}/page [put]
func (h *APIHandler) SetPage(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req struct {
		Page int `json:"page"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.SetPage(req.Page); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.View())
}

// SetLayout godoc
// @Summary      Report the rendered page box
// @Description  Records the rendered container's offset and client size for the current page
// @Tags         document
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string            true  "Session ID"
// @Param        request    body      coords.Container  true  "Rendered container box"
// @Success      200  {object}  session.View
// @Failure      404  {object}  ErrorResponse  "Session not found"
// @Failure      409  {object}  ErrorResponse  "Container has no width"
// @Router       /api/sessions/{sessionID}/layout [put]
func (h *APIHandler) SetLayout(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req coords.Container
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.SetLayout(req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.View())
}

// OpenOverlay godoc
// @Summary      Start an annotation
// @Description  Opens the dialog for a signature, free text or date overlay
// @Tags         overlay
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Param        request    body      object  true  "{ kind: signature|text|date }"
// @Success      200  {object}  map[string]string  "{ kind: string, initialText: string }"
// @Failure      400  {object}  ErrorResponse  "Unknown kind"
// @Failure      404  {object}  ErrorResponse  "Session not found"
// @Failure      409  {object}  ErrorResponse  "Annotation already in progress"
// @Router       /api/sessions/{sessionID}/overlay [post]
func (h *APIHandler) OpenOverlay(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req struct {
		Kind annotate.Kind `json:"kind"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if !req.Kind.Valid() {
		writeErrorCode(w, http.StatusBadRequest, "invalid_kind", fmt.Sprintf("Unknown overlay kind %q", req.Kind))
		return
	}
	text, err := s.OpenDialog(req.Kind, h.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"kind": string(req.Kind), "initialText": text})
}

// SupplyText godoc
// @Summary      Set overlay text
// @Description  Sets the text of a text or date overlay; an empty text keeps the pre-filled date
// @Tags         overlay
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Param        request    body      object  true  "{ text: string }"
// @Success      200  {object}  session.View
// @Failure      400  {object}  ErrorResponse  "Invalid text"
// @Failure      404  {object}  ErrorResponse  "Session not found"
// @Failure      409  {object}  ErrorResponse  "No text overlay open"
// @Router       /api/sessions/{sessionID}/overlay/text [put]
func (h *APIHandler) SupplyText(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.SupplyText(req.Text); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.View())
}

// UploadSignature godoc
// @Summary      Supply a signature image
// @Description  Accepts a PNG/JPEG/WebP upload (field "signature") or JSON { dataUrl, autoDate }
// @Tags         overlay
// @Accept       multipart/form-data
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string  true   "Session ID"
// @Param        signature  formData  file    false  "Signature image file (PNG/JPEG/WebP)"
// @Param        autoDate   formData  bool    false  "Add a signed-at caption (default true)"
// @Success      200  {object}  session.View
// @Failure      400  {object}  ErrorResponse  "Bad request - invalid image format"
// @Failure      404  {object}  ErrorResponse  "Session not found"
// @Failure      409  {object}  ErrorResponse  "No signature dialog open"
// @Router       /api/sessions/{sessionID}/overlay/signature [post]
func (h *APIHandler) UploadSignature(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	maxUploadSize := h.Config.MaxSignatureSize
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	var (
		img      *signature.Image
		autoDate = true
		err      error
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		img, autoDate, err = h.signatureFromForm(w, r, maxUploadSize)
		if err != nil {
			return
		}
	} else {
		var req struct {
			DataURL  string `json:"dataUrl"`
			AutoDate *bool  `json:"autoDate"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		if req.AutoDate != nil {
			autoDate = *req.AutoDate
		}
		img, err = signature.DecodeDataURL(req.DataURL, h.Config.SignatureMaxWidth)
		if err != nil {
			writeError(w, err)
			return
		}
	}

	if err := s.SupplySignature(img, autoDate); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.View())
}

// signatureFromForm validates an uploaded signature file. On failure it has
// already written the response.
func (h *APIHandler) signatureFromForm(w http.ResponseWriter, r *http.Request, maxUploadSize int64) (*signature.Image, bool, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "file_too_large", "File too large")
		return nil, false, err
	}

	file, handler, err := r.FormFile("signature")
	if err != nil {
		writeErrorCode(w, http.StatusBadRequest, "missing_file", "Error retrieving file")
		return nil, false, err
	}
	defer file.Close()

	autoDate := true
	if v := r.FormValue("autoDate"); v != "" {
		autoDate, err = strconv.ParseBool(v)
		if err != nil {
			writeErrorCode(w, http.StatusBadRequest, "invalid_form", "autoDate must be a boolean")
			return nil, false, err
		}
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeErrorCode(w, http.StatusBadRequest, "invalid_file", "Failed to read file")
		return nil, false, err
	}

	// Verify extension matches detected content type
	validExtensions := map[string][]string{
		"image/jpeg": {".jpg", ".jpeg"},
		"image/png":  {".png"},
		"image/webp": {".webp"},
	}
	extensions, allowed := validExtensions[signature.ContentType(data)]
	if !allowed {
		writeErrorCode(w, http.StatusBadRequest, "invalid_signature", "Invalid image format. Only PNG, JPEG and WebP images are allowed")
		return nil, false, signature.ErrUnsupportedFormat
	}
	if !slices.Contains(extensions, strings.ToLower(filepath.Ext(handler.Filename))) {
		writeErrorCode(w, http.StatusBadRequest, "invalid_signature", "File extension doesn't match content type")
		return nil, false, signature.ErrUnsupportedFormat
	}

	img, err := signature.Decode(data, h.Config.SignatureMaxWidth)
	if err != nil {
		writeError(w, err)
		return nil, false, err
	}
	return img, autoDate, nil
}

type dragRequest struct {
	Type string `json:"type"`
	drag.Down
}

// DragOverlay godoc
// @Summary      Report a drag event
// @Description  Forwards pointer down/move/up on the overlay; "up" records where it was dropped
// @Tags         overlay
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Param        request    body      object  true  "{ type: down|move|up, x, y, elementLeft, elementTop, elementWidth, elementHeight }"
// @Success      200  {object}  session.View
// @Failure      400  {object}  ErrorResponse  "Unknown event type"
// @Failure      404  {object}  ErrorResponse  "Session not found"
// @Failure      409  {object}  ErrorResponse  "Not positioning or no gesture in progress"
// @Router       /api/sessions/{sessionID}/overlay/drag [post]
func (h *APIHandler) DragOverlay(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req dragRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var err error
	switch req.Type {
	case "down":
		err = s.DragDown(req.Down)
	case "move":
		err = s.DragMove(req.X, req.Y)
	case "up":
		_, err = s.DragUp(req.X, req.Y)
	default:
		writeErrorCode(w, http.StatusBadRequest, "invalid_event", fmt.Sprintf("Unknown drag event %q", req.Type))
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.View())
}

// CommitOverlay godoc
// @Summary      Place the overlay
// @Description  Burns the dropped overlay into the current page and returns a download URL
// @Tags         overlay
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200  {object}  CommitResponse
// @Failure      404  {object}  ErrorResponse  "Session not found"
// @Failure      409  {object}  ErrorResponse  "Nothing to commit or commit in progress"
// @Failure      422  {object}  ErrorResponse  "Document or image could not be processed"
// @Failure      500  {object}  ErrorResponse  "Document could not be written"
// @Router       /api/sessions/{sessionID}/overlay/commit [post]
func (h *APIHandler) CommitOverlay(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	ticket, err := s.BeginCommit(h.Now())
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := annotate.Commit(r.Context(), ticket.Request)
	if err != nil {
		s.FailCommit(ticket)
		log.Printf("Error committing overlay for session %s: %v", s.ID, err)
		writeError(w, err)
		return
	}
	if err := s.FinishCommit(ticket, data); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, CommitResponse{
		View:        s.View(),
		DownloadURL: fmt.Sprintf("/api/sessions/%s/document", s.ID),
	})
}

// CancelOverlay godoc
// @Summary      Cancel the annotation
// @Description  Discards the overlay in progress without changing the document
// @Tags         overlay
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200  {object}  session.View
// @Failure      404  {object}  ErrorResponse  "Session not found"
// @Failure      409  {object}  ErrorResponse  "Commit in progress"
// @Router       /api/sessions/{sessionID}/overlay [delete]
func (h *APIHandler) CancelOverlay(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.Cancel(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.View())
}

// Reset godoc
// @Summary      Reset the session
// @Description  Discards annotations and restores the document as first loaded, on page 0
// @Tags         sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200  {object}  session.View
// @Failure      404  {object}  ErrorResponse  "Session not found"
// @Failure      409  {object}  ErrorResponse  "No document loaded"
// @Router       /api/sessions/{sessionID}/actions/reset [post]
func (h *APIHandler) Reset(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.Reset(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.View())
}
