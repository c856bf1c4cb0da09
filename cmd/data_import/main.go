package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/sportsmap/cmd/data_import/config"
	"github.com/DjordjeVuckovic/sportsmap/internal/detect"
	"github.com/DjordjeVuckovic/sportsmap/internal/domain"
	"github.com/DjordjeVuckovic/sportsmap/internal/importer"
	"github.com/DjordjeVuckovic/sportsmap/internal/notify"
	"github.com/DjordjeVuckovic/sportsmap/internal/reader"
	"github.com/DjordjeVuckovic/sportsmap/internal/resolve"
	"github.com/DjordjeVuckovic/sportsmap/internal/schema"
	"github.com/DjordjeVuckovic/sportsmap/internal/storage/factory"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mappingFile, err := os.Open(cfg.MappingPath)
	if err != nil {
		slog.Error("failed to read mapping file", "error", err)
		os.Exit(1)
	}
	mappingDef, err := reader.NewMappingLoader(mappingFile).Load(true)
	if err != nil {
		slog.Error("failed to load mapping configuration", "error", err)
		os.Exit(1)
	}

	datasetFile, err := os.Open(cfg.DatasetPath)
	if err != nil {
		slog.Error("failed to read dataset file", "error", err)
		os.Exit(1)
	}
	var csvOpts []reader.CSVOption
	if !cfg.HasHeader {
		csvOpts = append(csvOpts, reader.WithoutHeader())
	}
	records, err := reader.NewCSVReader(datasetFile, csvOpts...).Read()
	if err != nil {
		slog.Error("failed to read dataset", "error", err)
		os.Exit(1)
	}
	if len(records) == 0 {
		slog.Error("dataset is empty")
		os.Exit(1)
	}

	svc, err := factory.NewEntityService(ctx, cfg.ServiceConfig)
	if err != nil {
		slog.Error("failed to create entity service", "error", err)
		os.Exit(1)
	}
	nameIndex, err := factory.NewNameIndex(cfg.ServiceConfig)
	if err != nil {
		slog.Error("failed to create name index", "error", err)
		os.Exit(1)
	}

	registry := schema.NewRegistry()

	entityType := domain.EntityType(mappingDef.EntityType)
	if entityType == "auto" {
		detector := detect.NewDetector(registry)
		entityType = detector.Detect(records[0].FieldNames(), records[0])
		if entityType == "" {
			slog.Error("could not detect entity type from the first record")
			os.Exit(1)
		}
		slog.Info("detected entity type", "entity_type", entityType)
	}

	var resolverOpts []resolve.Option
	if nameIndex != nil {
		resolverOpts = append(resolverOpts, resolve.WithNameIndex(nameIndex))
	}
	imp := importer.NewImporter(registry, svc, resolve.NewResolver(svc, resolverOpts...))

	result, err := imp.RunBatch(ctx, entityType, mappingDef.FieldMap(), records, cfg.UpdateMode,
		importer.WithBatchSize(cfg.BatchSize),
		importer.WithProgress(func(chunk, totalChunks int, percent float64) {
			slog.Info("batch progress", "chunk", chunk, "total_chunks", totalChunks, "percent", percent)
		}),
	)
	if err != nil {
		slog.Error("batch import failed", "error", err)
		os.Exit(1)
	}

	event := notify.BatchCompleted(result)
	slog.Info("import finished",
		"severity", event.Severity,
		"message", event.Message,
		"success", result.SuccessCount,
		"failed", result.FailureCount,
		"duplicates_skipped", result.DuplicateSkipCount,
	)
	for _, created := range result.NewlyCreated {
		slog.Info("created side entity", "type", created.Type, "name", created.Name, "id", created.ID)
	}
}
