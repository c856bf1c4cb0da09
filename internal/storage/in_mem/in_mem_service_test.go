package in_mem

import (
	"context"
	"testing"

	"github.com/DjordjeVuckovic/sportsmap/internal/apperr"
	"github.com/DjordjeVuckovic/sportsmap/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemService_CreateAndFind(t *testing.T) {
	svc := NewInMemService()
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.EntityTypeLeague, map[string]any{
		"name": "NHL", "sport": "Hockey", "country": "USA",
	})
	require.NoError(t, err)
	assert.Equal(t, "NHL", created.Name)

	found, err := svc.FindByName(ctx, domain.EntityTypeLeague, "nhl")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Hockey", found.Attr("sport"))
}

func TestInMemService_NameUniquePerType(t *testing.T) {
	svc := NewInMemService()
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.EntityTypeBrand, map[string]any{"name": "ESPN"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.EntityTypeBrand, map[string]any{"name": "espn"})
	var de *apperr.DuplicateError
	require.ErrorAs(t, err, &de)

	// Same name under a different type is fine.
	_, err = svc.Create(ctx, domain.EntityTypeBroadcastCompany, map[string]any{"name": "ESPN"})
	require.NoError(t, err)
}

func TestInMemService_FindMissing(t *testing.T) {
	svc := NewInMemService()

	_, err := svc.FindByName(context.Background(), domain.EntityTypeTeam, "Ghost United")
	var nfe *apperr.NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, "team", nfe.Kind)
	assert.Equal(t, "Ghost United", nfe.Name)
}

func TestInMemService_UpdateByName(t *testing.T) {
	svc := NewInMemService()
	ctx := context.Background()
	svc.Seed(domain.Entity{
		Type:       domain.EntityTypeLeague,
		Name:       "NBA",
		Attributes: map[string]any{"country": "USA"},
	})

	updated, err := svc.UpdateByName(ctx, domain.EntityTypeLeague, "NBA", map[string]any{
		"country": "Canada",
		"name":    "NBA International",
	})
	require.NoError(t, err)
	assert.Equal(t, "NBA International", updated.Name)
	assert.Equal(t, "Canada", updated.Attr("country"))

	_, err = svc.FindByName(ctx, domain.EntityTypeLeague, "NBA")
	var nfe *apperr.NotFoundError
	require.ErrorAs(t, err, &nfe)

	_, err = svc.UpdateByName(ctx, domain.EntityTypeLeague, "Ghost League", nil)
	require.ErrorAs(t, err, &nfe)
}

func TestInMemService_List(t *testing.T) {
	svc := NewInMemService()
	svc.Seed(
		domain.Entity{Type: domain.EntityTypeTeam, Name: "Lakers"},
		domain.Entity{Type: domain.EntityTypeTeam, Name: "Celtics"},
		domain.Entity{Type: domain.EntityTypeLeague, Name: "NBA"},
	)

	teams, err := svc.List(context.Background(), domain.EntityTypeTeam)
	require.NoError(t, err)
	assert.Len(t, teams, 2)

	empty, err := svc.List(context.Background(), domain.EntityTypeStadium)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
