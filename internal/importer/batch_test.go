package importer

import (
	"context"
	"fmt"
	"testing"

	"github.com/DjordjeVuckovic/sportsmap/internal/apperr"
	"github.com/DjordjeVuckovic/sportsmap/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type progressCall struct {
	chunk   int
	total   int
	percent float64
}

var leagueMapping = map[string]string{"name": "League", "sport": "Sport", "country": "Country"}

func leagueRecords(n int) []domain.SourceRecord {
	records := make([]domain.SourceRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, domain.NewObjectRecord(map[string]any{
			"League":  fmt.Sprintf("League %03d", i),
			"Sport":   "Soccer",
			"Country": "USA",
		}))
	}
	return records
}

// One progress call per completed chunk, chunks sequential, records counted
// exactly once.
func TestRunBatch_ProgressPerChunk(t *testing.T) {
	svc := newScriptedService()
	imp := newTestImporter(svc)

	var calls []progressCall
	result, err := imp.RunBatch(
		context.Background(),
		domain.EntityTypeLeague,
		leagueMapping,
		leagueRecords(25),
		false,
		WithBatchSize(10),
		WithProgress(func(chunk, total int, percent float64) {
			calls = append(calls, progressCall{chunk, total, percent})
		}),
	)

	require.NoError(t, err)
	assert.Equal(t, 25, result.TotalCount)
	assert.Equal(t, 25, result.SuccessCount)
	assert.Zero(t, result.FailureCount)

	require.Equal(t, []progressCall{
		{1, 3, 40},
		{2, 3, 80},
		{3, 3, 100},
	}, calls)
}

func TestRunBatch_MixedOutcomes(t *testing.T) {
	gameID := uuid.New()
	svc := newScriptedService(
		domain.Entity{Type: domain.EntityTypeBroadcastCompany, Name: "ESPN"},
		domain.Entity{Type: domain.EntityTypeBroadcastCompany, Name: "TNT"},
	)
	svc.createErr = func(t domain.EntityType, attrs map[string]any) error {
		if t == domain.EntityTypeBroadcastCompany {
			return apperr.NewValidation("company rejected upstream")
		}
		return nil
	}
	imp := newTestImporter(svc)

	mapping := map[string]string{
		"game_id":              "game",
		"broadcast_company_id": "company",
		"broadcast_type":       "medium",
	}
	records := []domain.SourceRecord{
		domain.NewObjectRecord(map[string]any{"game": gameID.String(), "company": "ESPN", "medium": "TV"}),
		domain.NewObjectRecord(map[string]any{"game": gameID.String(), "company": "Ghost Network", "medium": "TV"}),
		domain.NewObjectRecord(map[string]any{"game": gameID.String(), "company": "TNT", "medium": "Streaming"}),
	}

	result, err := imp.RunBatch(context.Background(), domain.EntityTypeGameBroadcast, mapping, records, false)

	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalCount)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 1, result.FailureCount)
	assert.Equal(t, 1, result.ErrorsByCategory[CategoryNotFound])
	assert.Zero(t, result.ErrorsByCategory[CategoryValidation])
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Ghost Network")
	assert.InDelta(t, 2.0/3.0, result.SuccessRatio(), 0.001)
}

// A panicking record becomes an uncategorized failure; the rest of the chunk
// is unaffected.
func TestRunBatch_PanicCaptured(t *testing.T) {
	svc := newScriptedService()
	svc.createErr = func(_ domain.EntityType, attrs map[string]any) error {
		if attrs["name"] == "League 001" {
			panic("boom")
		}
		return nil
	}
	imp := newTestImporter(svc)

	result, err := imp.RunBatch(context.Background(), domain.EntityTypeLeague, leagueMapping, leagueRecords(3), false)

	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalCount)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 1, result.FailureCount)
	assert.Equal(t, 1, result.ErrorsByCategory[CategoryOther])
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "panicked")
}

// Cancellation between chunks returns everything accumulated so far.
func TestRunBatch_ContextCancellation(t *testing.T) {
	svc := newScriptedService()
	imp := newTestImporter(svc)

	ctx, cancel := context.WithCancel(context.Background())
	result, err := imp.RunBatch(
		ctx,
		domain.EntityTypeLeague,
		leagueMapping,
		leagueRecords(30),
		false,
		WithBatchSize(10),
		WithProgress(func(chunk, _ int, _ float64) {
			if chunk == 1 {
				cancel()
			}
		}),
	)

	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)
	assert.Equal(t, 10, result.TotalCount)
	assert.Equal(t, 10, result.SuccessCount)
}

func TestRunBatch_SetupFailures(t *testing.T) {
	svc := newScriptedService()
	imp := newTestImporter(svc)

	t.Run("unknown entity type", func(t *testing.T) {
		result, err := imp.RunBatch(context.Background(), "sponsorship", leagueMapping, leagueRecords(1), false)
		assert.Nil(t, result)
		var ve *apperr.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Message, "unknown entity type")
	})

	t.Run("empty mapping", func(t *testing.T) {
		result, err := imp.RunBatch(context.Background(), domain.EntityTypeLeague, nil, leagueRecords(1), false)
		assert.Nil(t, result)
		var ve *apperr.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Message, "field mapping must not be empty")
	})
}

func TestRunBatch_DuplicatesCountedSeparately(t *testing.T) {
	svc := newScriptedService(domain.Entity{
		Type:       domain.EntityTypeStadium,
		Name:       "Stadium 000",
		Attributes: map[string]any{"city": "Austin", "country": "USA"},
	})
	imp := newTestImporter(svc)

	mapping := map[string]string{
		"name": "Name", "city": "City", "country": "Country", "capacity": "Capacity",
	}
	records := []domain.SourceRecord{
		domain.NewObjectRecord(map[string]any{
			"Name": "Stadium 000", "City": "Austin", "Country": "USA", "Capacity": "20000",
		}),
		domain.NewObjectRecord(map[string]any{
			"Name": "Stadium 001", "City": "Dallas", "Country": "USA", "Capacity": "30000",
		}),
	}

	result, err := imp.RunBatch(context.Background(), domain.EntityTypeStadium, mapping, records, false)

	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalCount)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.DuplicateSkipCount)
	assert.Zero(t, result.FailureCount)
	assert.Equal(t, 1.0, result.SuccessRatio())
}

func TestBatchResult_SuccessRatioEmpty(t *testing.T) {
	r := newBatchResult()
	assert.Equal(t, 1.0, r.SuccessRatio())
}

// Side entities created during resolution are surfaced on the batch result.
func TestRunBatch_ReportsNewlyCreated(t *testing.T) {
	gameID := uuid.New()
	svc := newScriptedService()
	imp := newTestImporter(svc)

	mapping := map[string]string{
		"game_id":              "game",
		"broadcast_company_id": "company",
		"broadcast_type":       "medium",
	}
	records := []domain.SourceRecord{
		domain.NewObjectRecord(map[string]any{"game": gameID.String(), "company": "Fox Sports", "medium": "TV"}),
	}

	result, err := imp.RunBatch(context.Background(), domain.EntityTypeGameBroadcast, mapping, records, false)

	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	require.Len(t, result.NewlyCreated, 1)
	assert.Equal(t, "Fox Sports", result.NewlyCreated[0].Name)
	assert.Equal(t, domain.EntityTypeBroadcastCompany, result.NewlyCreated[0].Type)
}

// Side entities persisted during resolution stay on the result even when the
// records that triggered them fail.
func TestRunBatch_ReportsCreatedForFailedRecords(t *testing.T) {
	svc := newScriptedService()
	imp := newTestImporter(svc)

	mapping := map[string]string{
		"broadcast_company_id": "company",
		"broadcast_type":       "medium",
	}
	records := []domain.SourceRecord{
		// Missing game_id: validation fails after the company create.
		domain.NewObjectRecord(map[string]any{"company": "Fresh Network", "medium": "TV"}),
	}

	result, err := imp.RunBatch(context.Background(), domain.EntityTypeGameBroadcast, mapping, records, false)

	require.NoError(t, err)
	assert.Equal(t, 1, result.FailureCount)
	assert.Equal(t, 1, result.ErrorsByCategory[CategoryValidation])
	require.Len(t, result.NewlyCreated, 1)
	assert.Equal(t, "Fresh Network", result.NewlyCreated[0].Name)
}
