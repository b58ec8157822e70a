package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"textsum/internal/domain"
	"textsum/internal/input"
	"textsum/internal/logging"
	"textsum/internal/service"
	"textsum/internal/summarizer"
)

const emptyTextMessage = "Please provide some text"

// Summarizer is the port the handlers call into.
type Summarizer interface {
	Summarize(ctx context.Context, req service.Request) (*service.Response, error)
}

// sentenceCount accepts a JSON number or string. Anything that is not a
// whole number falls back to the default count.
type sentenceCount struct {
	n   int
	set bool
}

func (s *sentenceCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = sentenceCount{}
		return nil
	}
	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	}
	*s = sentenceCount{n: input.ParseSentenceCount(raw), set: true}
	return nil
}

type summarizeRequest struct {
	Text      string        `json:"text"`
	Sentences sentenceCount `json:"sentences"`
	Style     string        `json:"style"`
}

type download struct {
	Filename string `json:"filename"`
	DataURI  string `json:"data_uri"`
}

type summarizeResponse struct {
	Summary  string        `json:"summary"`
	Style    domain.Style  `json:"style"`
	Stats    *domain.Stats `json:"stats"`
	Download *download     `json:"download,omitempty"`
}

type handler struct {
	svc          Summarizer
	maxBodyBytes int64
	defaultCount int
	defaultStyle string
}

func (h *handler) summarize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}

	count := h.defaultCount
	if req.Sentences.set {
		count = req.Sentences.n
	}
	h.respond(w, r, input.Normalize(req.Text), count, req.Style)
}

func (h *handler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := r.ParseMultipartForm(h.maxBodyBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "upload too large")
			return
		}
		writeError(w, r, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	doc, err := input.Read(header.Filename, file)
	switch {
	case errors.Is(err, input.ErrUnsupportedFormat):
		writeError(w, r, http.StatusUnsupportedMediaType, err.Error())
		return
	case errors.Is(err, input.ErrTooLarge):
		writeError(w, r, http.StatusRequestEntityTooLarge, err.Error())
		return
	case errors.Is(err, input.ErrInvalidEncoding):
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "read upload failed",
			slog.String("filename", header.Filename), slog.Any("error", err))
		writeError(w, r, http.StatusBadRequest, "could not read file")
		return
	}

	count := h.defaultCount
	if raw, ok := r.MultipartForm.Value["sentences"]; ok && len(raw) > 0 {
		count = input.ParseSentenceCount(raw[0])
	}
	h.respond(w, r, doc.Content, count, r.FormValue("style"))
}

func (h *handler) respond(w http.ResponseWriter, r *http.Request, text string, count int, style string) {
	if strings.TrimSpace(text) == "" {
		writeError(w, r, http.StatusBadRequest, emptyTextMessage)
		return
	}
	if style == "" {
		style = h.defaultStyle
	}

	resp, err := h.svc.Summarize(r.Context(), service.Request{
		Text:          text,
		SentenceCount: count,
		Style:         domain.Style(style),
	})
	if errors.Is(err, summarizer.ErrInvalidStyle) {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "summarize failed", slog.Any("error", err))
		writeInternalError(w, r)
		return
	}

	out := summarizeResponse{Summary: resp.Summary, Style: resp.Style, Stats: resp.Stats}
	if resp.Artifact != nil {
		out.Download = &download{Filename: resp.Artifact.Filename, DataURI: resp.Artifact.DataURI()}
	}
	writeJSON(w, r, http.StatusOK, out)
}

func healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
