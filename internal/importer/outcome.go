package importer

import (
	"github.com/DjordjeVuckovic/sportsmap/internal/domain"
)

// Status is the terminal state of one record's import.
type Status string

const (
	// StatusSuccess means the record was created or updated.
	StatusSuccess Status = "success"
	// StatusSuccessDuplicate means the record already existed and was
	// skipped. Counted separately from successes and failures.
	StatusSuccessDuplicate Status = "success_duplicate"
	// StatusFailure means the record could not be imported.
	StatusFailure Status = "failure"
)

// Category buckets a failure for aggregate reporting.
type Category string

const (
	CategoryDuplicate  Category = "duplicate"
	CategoryNotFound   Category = "reference_not_found"
	CategoryValidation Category = "validation_failed"
	CategoryAuth       Category = "authentication"
	CategoryOther      Category = "other"
)

// Outcome is the per-record result. Every processing path converges here;
// no error from a single record escapes the batch engine's per-record
// boundary.
type Outcome struct {
	Status   Status                 `json:"status"`
	Category Category               `json:"category,omitempty"`
	Errors   []string               `json:"errors,omitempty"`
	Entity   *domain.Entity         `json:"entity,omitempty"`
	Created  []domain.CreatedEntity `json:"created,omitempty"`
	// BrandSubstituted discloses that a brand with a company role stood in
	// for a dedicated broadcast company record.
	BrandSubstituted bool `json:"brandSubstituted,omitempty"`
}

func successOutcome(entity *domain.Entity, created []domain.CreatedEntity, brandSubstituted bool) Outcome {
	return Outcome{
		Status:           StatusSuccess,
		Entity:           entity,
		Created:          created,
		BrandSubstituted: brandSubstituted,
	}
}

func duplicateOutcome(created []domain.CreatedEntity) Outcome {
	return Outcome{Status: StatusSuccessDuplicate, Created: created}
}

func failureOutcome(category Category, errs ...string) Outcome {
	return Outcome{Status: StatusFailure, Category: category, Errors: errs}
}

// BatchResult aggregates a whole run. Built incrementally as chunks
// complete; immutable once the run finishes.
type BatchResult struct {
	SuccessCount       int                    `json:"successCount"`
	FailureCount       int                    `json:"failureCount"`
	DuplicateSkipCount int                    `json:"duplicateSkipCount"`
	TotalCount         int                    `json:"totalCount"`
	ErrorsByCategory   map[Category]int       `json:"errorsByCategory"`
	NewlyCreated       []domain.CreatedEntity `json:"newlyCreated,omitempty"`
	Errors             []string               `json:"errors,omitempty"`
}

func newBatchResult() *BatchResult {
	return &BatchResult{
		ErrorsByCategory: map[Category]int{
			CategoryDuplicate:  0,
			CategoryNotFound:   0,
			CategoryValidation: 0,
			CategoryAuth:       0,
			CategoryOther:      0,
		},
	}
}

// accumulate folds one outcome into the running totals. Called only from the
// chunk-completion step, never from concurrently running per-record tasks.
func (r *BatchResult) accumulate(o Outcome) {
	r.TotalCount++
	switch o.Status {
	case StatusSuccess:
		r.SuccessCount++
	case StatusSuccessDuplicate:
		r.DuplicateSkipCount++
	case StatusFailure:
		r.FailureCount++
		r.ErrorsByCategory[o.Category]++
		r.Errors = append(r.Errors, o.Errors...)
	}
	r.NewlyCreated = append(r.NewlyCreated, o.Created...)
}

// SuccessRatio counts duplicate skips as success: the record exists, which
// is what the user asked for.
func (r *BatchResult) SuccessRatio() float64 {
	if r.TotalCount == 0 {
		return 1
	}
	return float64(r.SuccessCount+r.DuplicateSkipCount) / float64(r.TotalCount)
}
