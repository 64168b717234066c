package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fisionote/internal/domain"
	"fisionote/internal/service"
)

// NoteHandler handles note normalization and generation endpoints.
type NoteHandler struct {
	noteService  service.NoteService
	maxBodyBytes int64
}

// NewNoteHandler creates a new NoteHandler. A maxBodyBytes of 0 disables the limit.
func NewNoteHandler(noteService service.NoteService, maxBodyBytes int64) *NoteHandler {
	return &NoteHandler{noteService: noteService, maxBodyBytes: maxBodyBytes}
}

// Normalize handles POST /api/v1/notes/normalize
// @Summary Normalize a raw model response
// @Description Accepts any model output (a JSON value, or prose with embedded JSON as text/plain) and returns the canonical SOAP note. Unrecoverable input yields a note holding only defaults.
// @Tags notes
// @Accept json,plain
// @Produce json
// @Success 200 {object} Response{data=service.NoteResult} "Normalized note"
// @Failure 413 {object} ErrorResponseBody "Body too large"
// @Router /notes/normalize [post]
func (h *NoteHandler) Normalize(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}

	result, err := h.noteService.Normalize(c.Request.Context(), rawPayload(c.GetHeader("Content-Type"), body))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Generate handles POST /api/v1/notes/generate
// @Summary Draft a SOAP note from a transcript
// @Description Sends the transcript to the configured generator and normalizes its output.
// @Tags notes
// @Accept json
// @Produce json
// @Param body body GenerateNoteRequest true "Transcript and options"
// @Success 200 {object} Response{data=service.NoteResult} "Generated note"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 429 {object} ErrorResponseBody "Generator rate limited"
// @Failure 502 {object} ErrorResponseBody "Generator failed"
// @Failure 503 {object} ErrorResponseBody "Generator not configured"
// @Router /notes/generate [post]
func (h *NoteHandler) Generate(c *gin.Context) {
	if h.maxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
	}

	var req GenerateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			RespondError(c, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE", "request body exceeds maximum allowed size")
			return
		}
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.noteService.Generate(c.Request.Context(), service.GenerateNoteInput{
		Transcript: req.Transcript,
		Specialty:  domain.Specialty(strings.ToLower(strings.TrimSpace(req.Specialty))),
		Locale:     req.Locale,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

func (h *NoteHandler) readBody(c *gin.Context) ([]byte, bool) {
	r := c.Request.Body
	if h.maxBodyBytes > 0 {
		r = http.MaxBytesReader(c.Writer, r, h.maxBodyBytes)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			RespondError(c, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE", "request body exceeds maximum allowed size")
			return nil, false
		}
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "could not read request body")
		return nil, false
	}
	return body, true
}

// rawPayload decodes a JSON body into a generic value. Anything else,
// including malformed JSON, is passed on as text for the extractor to recover.
func rawPayload(contentType string, body []byte) any {
	mediaType, _, _ := mime.ParseMediaType(contentType)
	if mediaType == "application/json" || strings.HasSuffix(mediaType, "+json") {
		var v any
		if err := json.Unmarshal(body, &v); err == nil {
			return v
		}
	}
	return string(body)
}
