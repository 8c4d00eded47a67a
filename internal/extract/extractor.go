// Package extract turns a conversation transcript into a structured order
// record via the text-extraction collaborator.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/order-intake/internal/common"
	"github.com/joseph-ayodele/order-intake/internal/entity"
	"github.com/joseph-ayodele/order-intake/internal/llm"
)

// Extractor runs the extraction collaborator over the inbound half of a
// transcript and decodes the reply into an OrderRecord. Every failure mode
// (no JSON, malformed JSON, schema mismatch, collaborator timeout) surfaces
// as common.ErrExtractionFailed: a partial or garbled response is an
// expected occurrence mid-conversation, not an exception.
type Extractor struct {
	completer     llm.Completer
	defaultRegion string
	logger        *slog.Logger
}

func NewExtractor(completer llm.Completer, defaultRegion string, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{completer: completer, defaultRegion: defaultRegion, logger: logger}
}

// Extract parses the transcript as of reference time. A nil record with nil
// error means there was nothing to extract yet (no inbound turns).
func (e *Extractor) Extract(ctx context.Context, turns []entity.Turn, reference time.Time) (*entity.OrderRecord, error) {
	start := time.Now()

	inbound := 0
	for _, t := range turns {
		if t.Inbound() {
			inbound++
		}
	}
	if inbound == 0 {
		return nil, nil
	}

	e.logger.Info("extract.start",
		"turns", len(turns),
		"inbound_turns", inbound,
		"reference", reference.UTC().Format("2006-01-02"),
	)

	msgs := llm.BuildExtractionMessages(llm.ExtractRequest{
		Turns:         turns,
		Reference:     reference,
		DefaultRegion: e.defaultRegion,
	})
	content, err := e.completer.Complete(ctx, msgs)
	if err != nil {
		e.logger.Error("extract.complete_failed", "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return nil, fmt.Errorf("%w: completion: %v", common.ErrExtractionFailed, err)
	}

	raw, err := llm.LocateJSONObject(content)
	if err != nil {
		e.logger.Warn("extract.no_json", "content_len", len(content),
			"elapsed_ms", time.Since(start).Milliseconds())
		return nil, fmt.Errorf("%w: %v", common.ErrExtractionFailed, err)
	}

	cleaned, _, err := llm.NormalizeAndSanitizeJSON(raw, e.logger)
	if err != nil {
		e.logger.Warn("extract.sanitize_failed", "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return nil, fmt.Errorf("%w: sanitize: %v", common.ErrExtractionFailed, err)
	}

	if err := llm.ValidateOrderJSON(cleaned); err != nil {
		e.logger.Warn("extract.schema_validation_failed", "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return nil, fmt.Errorf("%w: schema: %v", common.ErrExtractionFailed, err)
	}

	var rec entity.OrderRecord
	if err := json.Unmarshal(cleaned, &rec); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", common.ErrExtractionFailed, err)
	}

	e.logger.Info("extract.ok",
		"items", len(rec.Items),
		"has_date", rec.DeliveryDate != "",
		"has_address", rec.DeliveryAddress != "",
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return &rec, nil
}
