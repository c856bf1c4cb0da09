package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/DjordjeVuckovic/sportsmap/internal/apperr"
	"github.com/DjordjeVuckovic/sportsmap/internal/domain"
)

const defaultTimeout = 30 * time.Second

// RestClient talks to the sports database API over HTTP.
type RestClient struct {
	base  url.URL
	token string
	http  *http.Client
}

type RestOption func(*RestClient)

func WithHTTPClient(httpClient *http.Client) RestOption {
	return func(c *RestClient) {
		c.http = httpClient
	}
}

func WithToken(token string) RestOption {
	return func(c *RestClient) {
		c.token = token
	}
}

func NewRestClient(baseURL string, opts ...RestOption) (*RestClient, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	c := &RestClient{
		base: *base,
		http: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *RestClient) List(ctx context.Context, t domain.EntityType) ([]domain.Entity, error) {
	var entities []domain.Entity
	if err := c.do(ctx, http.MethodGet, c.collectionPath(t), nil, &entities); err != nil {
		return nil, err
	}
	return entities, nil
}

func (c *RestClient) FindByName(ctx context.Context, t domain.EntityType, name string) (*domain.Entity, error) {
	path := c.collectionPath(t) + "/by-name/" + url.PathEscape(name)
	var entity domain.Entity
	if err := c.do(ctx, http.MethodGet, path, nil, &entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

func (c *RestClient) Create(ctx context.Context, t domain.EntityType, attrs map[string]any) (*domain.Entity, error) {
	var entity domain.Entity
	if err := c.do(ctx, http.MethodPost, c.collectionPath(t), attrs, &entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

func (c *RestClient) UpdateByName(ctx context.Context, t domain.EntityType, name string, patch map[string]any) (*domain.Entity, error) {
	path := c.collectionPath(t) + "/by-name/" + url.PathEscape(name)
	var entity domain.Entity
	if err := c.do(ctx, http.MethodPatch, path, patch, &entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

func (c *RestClient) collectionPath(t domain.EntityType) string {
	return "/api/v1/" + string(t)
}

func (c *RestClient) do(ctx context.Context, method, path string, body any, out any) error {
	u := c.base.JoinPath(path)

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperr.NewTransient("entity service request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := classifyStatus(resp); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.NewTransient("failed to decode entity service response", err)
	}
	return nil
}

// classifyStatus maps HTTP statuses onto the apperr taxonomy so callers can
// branch with errors.As instead of inspecting status codes.
func classifyStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return apperr.NewAuth("entity service rejected credentials")
	case resp.StatusCode == http.StatusNotFound:
		return apperr.NewNotFound("entity", "")
	case resp.StatusCode == http.StatusConflict:
		return apperr.NewDuplicate("entity already exists")
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return apperr.NewValidation(readErrorMessage(resp))
	default:
		return apperr.NewTransient(fmt.Sprintf("entity service returned status %d", resp.StatusCode), nil)
	}
}

func readErrorMessage(resp *http.Response) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return fmt.Sprintf("entity service rejected request with status %d", resp.StatusCode)
}
