package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"go-pdfstamp/internal/coords"
	"go-pdfstamp/internal/drag"
	"go-pdfstamp/internal/pdf"
	"go-pdfstamp/internal/session"
	"go-pdfstamp/internal/signature"
	"go-pdfstamp/internal/stamp"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{pdf.ErrFetch, http.StatusBadGateway, "fetch_error"},
	{pdf.ErrDocumentParse, http.StatusUnprocessableEntity, "document_parse_error"},
	{pdf.ErrImageEmbed, http.StatusUnprocessableEntity, "image_embed_error"},
	{pdf.ErrSerialize, http.StatusInternalServerError, "serialize_error"},
	{signature.ErrUnsupportedFormat, http.StatusBadRequest, "invalid_signature"},
	{signature.ErrInvalidDataURL, http.StatusBadRequest, "invalid_signature"},
	{signature.ErrEmptyImage, http.StatusBadRequest, "invalid_signature"},
	{signature.ErrTooLarge, http.StatusBadRequest, "invalid_signature"},
	{stamp.ErrEmptyText, http.StatusBadRequest, "invalid_text"},
	{stamp.ErrTextTooLong, http.StatusBadRequest, "invalid_text"},
	{session.ErrNoDocument, http.StatusConflict, "no_document"},
	{session.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},
	{session.ErrCommitInFlight, http.StatusConflict, "commit_in_progress"},
	{session.ErrNoRelease, http.StatusConflict, "not_dropped"},
	{session.ErrStaleCommit, http.StatusConflict, "stale_commit"},
	{session.ErrPageOutOfRange, http.StatusBadRequest, "page_out_of_range"},
	{coords.ErrNotLaidOut, http.StatusConflict, "not_laid_out"},
	{drag.ErrNotDragging, http.StatusConflict, "drag_error"},
	{context.Canceled, http.StatusServiceUnavailable, "canceled"},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, "timeout"},
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

func writeErrorCode(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

// writeError maps a domain error onto a status code and error code.
func writeError(w http.ResponseWriter, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			writeErrorCode(w, m.status, m.code, err.Error())
			return
		}
	}
	log.Printf("Unhandled error: %v", err)
	writeErrorCode(w, http.StatusInternalServerError, "internal_error", "internal error")
}
