package importer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/sportsmap/internal/apperr"
	"github.com/DjordjeVuckovic/sportsmap/internal/domain"
)

const defaultBatchSize = 10

// ProgressFunc receives one call per completed chunk.
type ProgressFunc func(chunkIndex, totalChunks int, percent float64)

type batchConfig struct {
	batchSize  int
	onProgress ProgressFunc
}

type BatchOption func(*batchConfig)

// WithBatchSize sets the chunk size, which also bounds concurrent
// outstanding requests.
func WithBatchSize(size int) BatchOption {
	return func(c *batchConfig) {
		if size > 0 {
			c.batchSize = size
		}
	}
}

// WithProgress registers a per-chunk progress callback.
func WithProgress(fn ProgressFunc) BatchOption {
	return func(c *batchConfig) {
		c.onProgress = fn
	}
}

// RunBatch drives ImportRecord over records in fixed-size chunks. Records
// within a chunk run concurrently; chunks run strictly sequentially. The
// only errors returned are catastrophic setup failures and context
// cancellation; cancellation still hands back everything accumulated so far.
func (i *Importer) RunBatch(ctx context.Context, t domain.EntityType, mapping map[string]string, records []domain.SourceRecord, updateMode bool, opts ...BatchOption) (*BatchResult, error) {
	if !i.registry.Contains(t) {
		return nil, apperr.NewValidation(fmt.Sprintf("unknown entity type %q", t))
	}
	if len(mapping) == 0 {
		return nil, apperr.NewValidation("field mapping must not be empty")
	}

	cfg := batchConfig{batchSize: defaultBatchSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	result := newBatchResult()
	totalChunks := (len(records) + cfg.batchSize - 1) / cfg.batchSize

	start := time.Now()
	slog.Info("Starting batch import",
		"entity_type", t,
		"records", len(records),
		"batch_size", cfg.batchSize,
		"chunks", totalChunks,
		"update_mode", updateMode,
	)

	for chunk := 0; chunk < totalChunks; chunk++ {
		if err := ctx.Err(); err != nil {
			slog.Info("Batch import cancelled",
				"entity_type", t,
				"completed_chunks", chunk,
				"processed", result.TotalCount,
			)
			return result, err
		}

		lo := chunk * cfg.batchSize
		hi := min(lo+cfg.batchSize, len(records))
		outcomes := i.runChunk(ctx, t, mapping, records[lo:hi], updateMode)

		// Accumulation happens only here, after the chunk's tasks have all
		// finished, so concurrent per-record tasks never touch the result.
		for _, o := range outcomes {
			result.accumulate(o)
		}

		if cfg.onProgress != nil {
			percent := float64(result.TotalCount) / float64(len(records)) * 100
			cfg.onProgress(chunk+1, totalChunks, percent)
		}
	}

	slog.Info("Batch import completed",
		"entity_type", t,
		"duration", time.Since(start),
		"success", result.SuccessCount,
		"failed", result.FailureCount,
		"duplicates_skipped", result.DuplicateSkipCount,
		"created_side_entities", len(result.NewlyCreated),
	)

	return result, nil
}

// runChunk fans the chunk's records out to goroutines and waits for all of
// them. A panicking record is captured as an uncategorized failure rather
// than aborting the batch.
func (i *Importer) runChunk(ctx context.Context, t domain.EntityType, mapping map[string]string, records []domain.SourceRecord, updateMode bool) []Outcome {
	outcomes := make([]Outcome, len(records))
	var wg sync.WaitGroup

	wg.Add(len(records))
	for idx := range records {
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					slog.Error("record import panicked", "entity_type", t, "panic", r)
					outcomes[idx] = failureOutcome(CategoryOther, fmt.Sprintf("record processing panicked: %v", r))
				}
			}()
			outcomes[idx] = i.ImportRecord(ctx, t, mapping, records[idx], updateMode)
		}()
	}
	wg.Wait()

	return outcomes
}
