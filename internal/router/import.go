package router

import (
	"net/http"

	"github.com/DjordjeVuckovic/sportsmap/internal/apperr"
	"github.com/DjordjeVuckovic/sportsmap/internal/detect"
	"github.com/DjordjeVuckovic/sportsmap/internal/domain"
	"github.com/DjordjeVuckovic/sportsmap/internal/importer"
	"github.com/DjordjeVuckovic/sportsmap/internal/notify"
	"github.com/DjordjeVuckovic/sportsmap/internal/schema"
	"github.com/DjordjeVuckovic/sportsmap/internal/validate"
	"github.com/labstack/echo/v4"
)

// ImportRouter exposes the mapping wizard's backend: schema catalog,
// type detection, payload validation and batch import.
type ImportRouter struct {
	e        *echo.Echo
	registry *schema.Registry
	detector *detect.Detector
	imp      *importer.Importer
}

func NewImportRouter(e *echo.Echo, registry *schema.Registry, detector *detect.Detector, imp *importer.Importer) *ImportRouter {
	return &ImportRouter{
		e:        e,
		registry: registry,
		detector: detector,
		imp:      imp,
	}
}

func (r *ImportRouter) Bind() {
	r.e.GET("/api/v1/schema", r.schemaHandler)
	r.e.POST("/api/v1/detect", r.detectHandler)
	r.e.POST("/api/v1/validate", r.validateHandler)
	r.e.POST("/api/v1/import", r.importHandler)
}

// schemaHandler returns the entity type catalog.
// @Summary List entity type definitions
// @Produce json
// @Success 200 {array} schema.Definition
// @Router /api/v1/schema [get]
func (r *ImportRouter) schemaHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, r.registry.Definitions())
}

type detectRequest struct {
	FieldNames []string       `json:"fieldNames"`
	Fields     map[string]any `json:"fields,omitempty"`
	Row        []any          `json:"row,omitempty"`
}

type detectResponse struct {
	EntityType domain.EntityType `json:"entityType"`
	Detected   bool              `json:"detected"`
}

// detectHandler guesses the target entity type for a sample record.
// @Summary Detect entity type from a sample record
// @Accept json
// @Produce json
// @Success 200 {object} detectResponse
// @Router /api/v1/detect [post]
func (r *ImportRouter) detectHandler(c echo.Context) error {
	var req detectRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid detect request", err)
	}

	record := domain.SourceRecord{Fields: req.Fields, Row: req.Row}
	detected := r.detector.Detect(req.FieldNames, record)

	return c.JSON(http.StatusOK, detectResponse{
		EntityType: detected,
		Detected:   detected != "",
	})
}

type validateRequest struct {
	EntityType      domain.EntityType `json:"entityType"`
	Payload         domain.Payload    `json:"payload"`
	IsPartialUpdate bool              `json:"isPartialUpdate"`
}

// validateHandler checks a payload against an entity type's schema.
// @Summary Validate a transformed payload
// @Accept json
// @Produce json
// @Success 200 {object} validate.Result
// @Router /api/v1/validate [post]
func (r *ImportRouter) validateHandler(c echo.Context) error {
	var req validateRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid validate request", err)
	}
	if !r.registry.Contains(req.EntityType) {
		return apperr.NewValidation("unknown entity type " + string(req.EntityType))
	}

	validator := validate.NewValidator(r.registry)
	return c.JSON(http.StatusOK, validator.Validate(req.EntityType, req.Payload, req.IsPartialUpdate))
}

type importRequest struct {
	EntityType domain.EntityType `json:"entityType"`
	Mapping    map[string]string `json:"mapping"`
	Records    []map[string]any  `json:"records,omitempty"`
	Rows       [][]any           `json:"rows,omitempty"`
	UpdateMode bool              `json:"updateMode"`
	BatchSize  int               `json:"batchSize,omitempty"`
}

type importResponse struct {
	Result       *importer.BatchResult `json:"result"`
	Notification notify.Event          `json:"notification"`
}

// importHandler runs a batch import and returns the aggregate result plus
// the terminal notification event.
// @Summary Import mapped records
// @Accept json
// @Produce json
// @Success 200 {object} importResponse
// @Router /api/v1/import [post]
func (r *ImportRouter) importHandler(c echo.Context) error {
	var req importRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid import request", err)
	}

	records := make([]domain.SourceRecord, 0, len(req.Records)+len(req.Rows))
	for _, fields := range req.Records {
		records = append(records, domain.NewObjectRecord(fields))
	}
	for _, row := range req.Rows {
		records = append(records, domain.NewPositionalRecord(row))
	}

	var opts []importer.BatchOption
	if req.BatchSize > 0 {
		opts = append(opts, importer.WithBatchSize(req.BatchSize))
	}

	result, err := r.imp.RunBatch(c.Request().Context(), req.EntityType, req.Mapping, records, req.UpdateMode, opts...)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, importResponse{
		Result:       result,
		Notification: notify.BatchCompleted(result),
	})
}
