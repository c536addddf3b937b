package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a structured logger at debug level, and
// failures at error level. It implements all three hook interfaces.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger.WithPrefix("obs")}
}

func (h *LogHooks) done(msg string, err error, keyvals ...any) {
	if err != nil {
		h.logger.Error(msg, append(keyvals, "err", err)...)
		return
	}
	h.logger.Debug(msg, keyvals...)
}

func (h *LogHooks) OnParseStart(_ context.Context, source string, size int) {
	h.logger.Debug("parse start", "source", source, "bytes", size)
}

func (h *LogHooks) OnParseComplete(_ context.Context, source string, slides int, d time.Duration, err error) {
	h.done("parse complete", err, "source", source, "slides", slides, "took", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, slides int) {
	h.logger.Debug("layout start", "slides", slides)
}

func (h *LogHooks) OnSlideLaidOut(_ context.Context, index, blocks int, scale float64) {
	h.logger.Debug("slide laid out", "slide", index+1, "blocks", blocks, "scale", scale)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, slides, warnings int, d time.Duration, err error) {
	h.done("layout complete", err, "slides", slides, "warnings", warnings, "took", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.done("render complete", err, "formats", formats, "took", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "kind", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "kind", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "kind", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "route", route, "status", status, "took", d)
}

func (h *LogHooks) OnError(_ context.Context, method, route string, err error) {
	h.logger.Error("request failed", "method", method, "route", route, "err", err)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
