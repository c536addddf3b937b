package server

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/ramparte/amplifier-stories/pkg/buildinfo"
	perrors "github.com/ramparte/amplifier-stories/pkg/errors"
	"github.com/ramparte/amplifier-stories/pkg/observability"
	"github.com/ramparte/amplifier-stories/pkg/pipeline"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ConvertRequest is the JSON form of a convert request.
type ConvertRequest struct {
	HTML     string   `json:"html"`
	Formats  []string `json:"formats,omitempty"`
	Title    string   `json:"title,omitempty"`
	Slides   []int    `json:"slides,omitempty"`
	PNGScale float64  `json:"png_scale,omitempty"`
}

// ConvertResponse answers a JSON convert request. Artifacts are
// base64-encoded in JSON.
type ConvertResponse struct {
	RunID     string            `json:"run_id"`
	Slides    int               `json:"slides"`
	Commands  int               `json:"commands"`
	Warnings  []string          `json:"warnings"`
	Cached    bool              `json:"cached"`
	Artifacts map[string][]byte `json:"artifacts"`
}

type errorResponse struct {
	Code    perrors.Code `json:"code"`
	Message string       `json:"message"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(w, r, http.StatusRequestEntityTooLarge,
				perrors.New(perrors.ErrCodeInvalidInput, "request body exceeds %d bytes", s.cfg.MaxBody))
			return
		}
		s.fail(w, r, http.StatusBadRequest, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "read body"))
		return
	}

	opts := s.defaults
	opts.Source = "request"
	opts.Logger = nil
	raw := !isJSON(r.Header.Get("Content-Type"))
	if raw {
		opts.HTML = body
		format := r.URL.Query().Get("format")
		if format == "" {
			format = pipeline.DefaultFormat
		}
		opts.Formats = []string{format}
		opts.Title = r.URL.Query().Get("title")
	} else {
		var req ConvertRequest
		if err := json.Unmarshal(body, &req); err != nil {
			s.fail(w, r, http.StatusBadRequest, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "decode request"))
			return
		}
		opts.HTML = []byte(req.HTML)
		opts.Formats = req.Formats
		opts.Title = req.Title
		opts.Slides = req.Slides
		if req.PNGScale > 0 {
			opts.PNGScale = req.PNGScale
		}
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.fail(w, r, statusFor(err), err)
		return
	}

	if raw {
		format := opts.Formats[0]
		h := w.Header()
		h.Set("Content-Type", pipeline.ContentTypes[format])
		h.Set("X-Run-ID", res.RunID)
		h.Set("X-Slide-Count", strconv.Itoa(res.Stats.Slides))
		for _, warning := range res.Warnings() {
			h.Add("X-Warning", warning)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(res.Artifacts[format])
		return
	}

	warnings := res.Warnings()
	if warnings == nil {
		warnings = []string{}
	}
	writeJSON(w, http.StatusOK, ConvertResponse{
		RunID:     res.RunID,
		Slides:    res.Stats.Slides,
		Commands:  res.Stats.Commands,
		Warnings:  warnings,
		Cached:    res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit,
		Artifacts: res.Artifacts,
	})
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("convert failed", "err", err)
	}
	code := perrors.GetCode(err)
	if code == "" {
		code = perrors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{Code: code, Message: perrors.UserMessage(err)})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch code := perrors.GetCode(err); {
	case strings.HasPrefix(string(code), "INVALID_"):
		return http.StatusBadRequest
	case code == perrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case code == perrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case code == perrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && mt == "application/json"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
