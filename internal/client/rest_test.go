package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DjordjeVuckovic/sportsmap/internal/apperr"
	"github.com/DjordjeVuckovic/sportsmap/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestClient_FindByName(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/league/by-name/Premier%20League", r.URL.EscapedPath())
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(domain.Entity{
			ID:   id,
			Type: domain.EntityTypeLeague,
			Name: "Premier League",
		})
	}))
	defer srv.Close()

	c, err := NewRestClient(srv.URL, WithToken("secret"))
	require.NoError(t, err)

	entity, err := c.FindByName(context.Background(), domain.EntityTypeLeague, "Premier League")
	require.NoError(t, err)
	assert.Equal(t, id, entity.ID)
	assert.Equal(t, "Premier League", entity.Name)
}

// Names with reserved characters must be escaped exactly once on the wire.
func TestRestClient_NameEscapedOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/broadcast_company/by-name/Fox%2FRegional%20Sports", r.URL.EscapedPath())

		_ = json.NewEncoder(w).Encode(domain.Entity{
			ID:   uuid.New(),
			Type: domain.EntityTypeBroadcastCompany,
			Name: "Fox/Regional Sports",
		})
	}))
	defer srv.Close()

	c, err := NewRestClient(srv.URL)
	require.NoError(t, err)

	entity, err := c.FindByName(context.Background(), domain.EntityTypeBroadcastCompany, "Fox/Regional Sports")
	require.NoError(t, err)
	assert.Equal(t, "Fox/Regional Sports", entity.Name)

	_, err = c.UpdateByName(context.Background(), domain.EntityTypeBroadcastCompany, "Fox/Regional Sports", map[string]any{"country": "USA"})
	require.NoError(t, err)
}

func TestRestClient_Create(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/brand", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var attrs map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&attrs))
		assert.Equal(t, "Nike", attrs["name"])

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(domain.Entity{
			ID:   uuid.New(),
			Type: domain.EntityTypeBrand,
			Name: "Nike",
		})
	}))
	defer srv.Close()

	c, err := NewRestClient(srv.URL)
	require.NoError(t, err)

	entity, err := c.Create(context.Background(), domain.EntityTypeBrand, map[string]any{"name": "Nike"})
	require.NoError(t, err)
	assert.Equal(t, "Nike", entity.Name)
}

func TestRestClient_StatusClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "401 is auth",
			status: http.StatusUnauthorized,
			check: func(t *testing.T, err error) {
				var ae *apperr.AuthError
				require.ErrorAs(t, err, &ae)
			},
		},
		{
			name:   "403 is auth",
			status: http.StatusForbidden,
			check: func(t *testing.T, err error) {
				var ae *apperr.AuthError
				require.ErrorAs(t, err, &ae)
			},
		},
		{
			name:   "404 is not found",
			status: http.StatusNotFound,
			check: func(t *testing.T, err error) {
				var nfe *apperr.NotFoundError
				require.ErrorAs(t, err, &nfe)
			},
		},
		{
			name:   "409 is duplicate",
			status: http.StatusConflict,
			check: func(t *testing.T, err error) {
				var de *apperr.DuplicateError
				require.ErrorAs(t, err, &de)
			},
		},
		{
			name:   "400 is validation with server message",
			status: http.StatusBadRequest,
			body:   `{"error":"name too long"}`,
			check: func(t *testing.T, err error) {
				var ve *apperr.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, "name too long", ve.Message)
			},
		},
		{
			name:   "503 is transient",
			status: http.StatusServiceUnavailable,
			check: func(t *testing.T, err error) {
				var te *apperr.TransientError
				require.ErrorAs(t, err, &te)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				if tt.body != "" {
					_, _ = w.Write([]byte(tt.body))
				}
			}))
			defer srv.Close()

			c, err := NewRestClient(srv.URL)
			require.NoError(t, err)

			_, err = c.FindByName(context.Background(), domain.EntityTypeLeague, "x")
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

// A dead endpoint surfaces as a transient error, which the importer retries.
func TestRestClient_ConnectionFailureIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c, err := NewRestClient(srv.URL)
	require.NoError(t, err)

	_, err = c.List(context.Background(), domain.EntityTypeLeague)
	var te *apperr.TransientError
	require.ErrorAs(t, err, &te)
}
