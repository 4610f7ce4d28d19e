package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/pagesmith"
)

// Ensure LoggingExtractor implements pagesmith.HTMLExtractor.
var _ pagesmith.HTMLExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an HTMLExtractor and logs which rule recovered
// the document.
type LoggingExtractor struct {
	next   pagesmith.HTMLExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next pagesmith.HTMLExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractHTML delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) ExtractHTML(raw pagesmith.RawResponse) pagesmith.Extraction {
	begin := time.Now()
	ext := e.next.ExtractHTML(raw)

	if !ext.Found() {
		e.logger.Info("html extraction",
			"found", false,
			"duration", time.Since(begin),
		)
		return ext
	}

	e.logger.Info("html extraction",
		"found", true,
		"strategy", string(ext.Strategy),
		"source", string(ext.Source),
		"key", ext.Key,
		"bytes", len(ext.HTML),
		"duration", time.Since(begin),
	)
	return ext
}
