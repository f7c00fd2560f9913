// Package enrichment augments a partially filled bookmark with fields
// inferred by an external text-generation provider. Enrichment is strictly
// best-effort: every failure path degrades to the unmodified record so a
// provider outage never blocks a save.
package enrichment

import (
	"context"
	"encoding/json"
	"strings"

	"markbase-backend/application/ports"
	"markbase-backend/domain/bookmark"
	"markbase-backend/domain/pathtree"
	"markbase-backend/pkg/observability"

	"go.uber.org/zap"
)

// Result carries the outcome of one enrichment attempt. Bookmark is always a
// valid record; Enriched reports whether the provider actually contributed.
type Result struct {
	Bookmark bookmark.Bookmark
	Enriched bool
}

// Pipeline orchestrates prompt construction, the provider call, defensive
// response parsing, and the user-field-wins merge.
type Pipeline struct {
	provider ports.SuggestionProvider
	tracer   *observability.Tracer
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewPipeline creates an enrichment pipeline. Tracer and metrics may be nil.
func NewPipeline(
	provider ports.SuggestionProvider,
	tracer *observability.Tracer,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		provider: provider,
		tracer:   tracer,
		metrics:  metrics,
		logger:   logger,
	}
}

// Enrich fills the inferable gaps of bm using the provider, with tree as
// structural context. The returned record always keeps every non-empty field
// the user supplied; OwnerID and ID are untouched by construction.
func (p *Pipeline) Enrich(ctx context.Context, tree pathtree.Tree, bm bookmark.Bookmark) Result {
	prompt := BuildPrompt(tree, bm)

	var raw string
	err := p.tracer.TraceFunction(ctx, "suggestion.generate", func(ctx context.Context) error {
		var callErr error
		raw, callErr = p.provider.Suggest(ctx, prompt)
		return callErr
	})
	if err != nil {
		p.logger.Warn("Suggestion provider call failed, saving record unenriched",
			zap.String("ownerID", bm.OwnerID),
			zap.Error(err),
		)
		p.metrics.Count("enrichment.fallback", 1, map[string]string{"reason": "provider"})
		return Result{Bookmark: bm}
	}

	suggestion, err := ParseSuggestion(raw)
	if err != nil {
		p.logger.Warn("Suggestion response was not parseable, saving record unenriched",
			zap.String("ownerID", bm.OwnerID),
			zap.Error(err),
		)
		p.metrics.Count("enrichment.fallback", 1, map[string]string{"reason": "parse"})
		return Result{Bookmark: bm}
	}

	merged := bookmark.MergeSuggestion(bm, suggestion)
	p.logger.Debug("Enrichment merged",
		zap.String("ownerID", bm.OwnerID),
		zap.String("path", merged.Path),
		zap.Int("tags", len(merged.Tags)),
	)
	p.metrics.Count("enrichment.enriched", 1, nil)

	return Result{Bookmark: merged, Enriched: true}
}

// ParseSuggestion parses the provider's text response as a single JSON
// object, tolerating a markdown code fence around it.
func ParseSuggestion(text string) (bookmark.Suggestion, error) {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```") {
		// Drop the opening fence line (with optional language tag) and the
		// closing fence.
		if idx := strings.Index(cleaned, "\n"); idx >= 0 {
			cleaned = cleaned[idx+1:]
		}
		if idx := strings.LastIndex(cleaned, "```"); idx >= 0 {
			cleaned = cleaned[:idx]
		}
		cleaned = strings.TrimSpace(cleaned)
	}

	var s bookmark.Suggestion
	if err := json.Unmarshal([]byte(cleaned), &s); err != nil {
		return bookmark.Suggestion{}, err
	}
	return s, nil
}
