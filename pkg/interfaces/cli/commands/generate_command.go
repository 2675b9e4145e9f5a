package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/torvan-medical/cleanstation-bom/pkg/application/services/bom"
	"github.com/torvan-medical/cleanstation-bom/pkg/domain/entities"
	"github.com/torvan-medical/cleanstation-bom/pkg/domain/repositories"
	"github.com/torvan-medical/cleanstation-bom/pkg/infrastructure/cache"
	"github.com/torvan-medical/cleanstation-bom/pkg/infrastructure/fallback"
	csvrepo "github.com/torvan-medical/cleanstation-bom/pkg/infrastructure/repositories/csv"
	"github.com/torvan-medical/cleanstation-bom/pkg/infrastructure/repositories/memory"
	"github.com/torvan-medical/cleanstation-bom/pkg/infrastructure/repositories/postgres"
	"github.com/torvan-medical/cleanstation-bom/pkg/interfaces/cli/output"
)

var (
	catalogDir  string
	databaseDSN string
	orderFile   string
	format      string
	outputFile  string
	cacheSize   int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a BOM from an order configuration",
	Long: `Generate expands an order configuration JSON file into a complete BOM.

The catalog is loaded either from a directory of CSV files
(parts.csv, assemblies.csv, components.csv) or from PostgreSQL via
--db / the CLEANSTATION_DB_DSN environment variable.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&catalogDir, "catalog-dir", "", "directory containing catalog CSV files")
	generateCmd.Flags().StringVar(&databaseDSN, "db", "", "PostgreSQL DSN (defaults to CLEANSTATION_DB_DSN)")
	generateCmd.Flags().StringVar(&orderFile, "order", "", "order configuration JSON file (required)")
	generateCmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, csv")
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write output to file instead of stdout")
	generateCmd.Flags().IntVar(&cacheSize, "cache-size", cache.DefaultSize, "catalog lookup cache size")
	_ = generateCmd.MarkFlagRequired("order")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	catalog, cleanup, err := openCatalog(logger)
	if err != nil {
		return err
	}
	defer cleanup()

	cached, err := cache.NewCatalogCache(catalog, cacheSize)
	if err != nil {
		return fmt.Errorf("failed to create catalog cache: %w", err)
	}

	provider, err := fallback.NewDefaultProvider()
	if err != nil {
		return fmt.Errorf("failed to load fallback resources: %w", err)
	}

	order, err := loadOrder(orderFile)
	if err != nil {
		return err
	}

	service := bom.NewService(cached, provider, bom.DefaultConfig(), logger)
	result, err := service.Generate(cmd.Context(), order)
	if err != nil {
		return fmt.Errorf("BOM generation failed: %w", err)
	}

	writer := os.Stdout
	if outputFile != "" {
		file, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file %s: %w", outputFile, err)
		}
		defer file.Close()
		writer = file
	}

	if err := output.Render(writer, result, format); err != nil {
		return err
	}

	if placeholders := output.PlaceholderRows(result); len(placeholders) > 0 {
		logger.Warn("BOM contains placeholder lines requiring catalog follow-up",
			zap.Int("placeholder_count", len(placeholders)))
	}
	return nil
}

// openCatalog selects the catalog source: CSV directory or Postgres
func openCatalog(logger *zap.Logger) (repositories.CatalogRepository, func(), error) {
	if catalogDir != "" {
		repo, err := loadCSVCatalog(catalogDir)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("catalog loaded from CSV", zap.String("dir", catalogDir))
		return repo, func() {}, nil
	}

	dsn := databaseDSN
	if dsn == "" {
		dsn = os.Getenv("CLEANSTATION_DB_DSN")
	}
	if dsn == "" {
		return nil, nil, fmt.Errorf("no catalog source: provide --catalog-dir or --db / CLEANSTATION_DB_DSN")
	}

	repo, err := postgres.Open(dsn)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("catalog connected via postgres")
	return repo, func() { _ = repo.Close() }, nil
}

// loadCSVCatalog reads parts.csv, assemblies.csv and components.csv from dir
func loadCSVCatalog(dir string) (*memory.CatalogRepository, error) {
	loader := csvrepo.NewLoader()

	parts, err := loader.LoadParts(filepath.Join(dir, "parts.csv"))
	if err != nil {
		return nil, err
	}
	assemblies, err := loader.LoadAssemblies(filepath.Join(dir, "assemblies.csv"))
	if err != nil {
		return nil, err
	}
	if err := loader.LoadComponents(filepath.Join(dir, "components.csv"), assemblies); err != nil {
		return nil, err
	}

	repo := memory.NewCatalogRepository()
	if err := repo.LoadParts(parts); err != nil {
		return nil, err
	}
	if err := repo.LoadAssemblies(assemblies); err != nil {
		return nil, err
	}
	return repo, nil
}

// loadOrder reads and parses the order configuration JSON file
func loadOrder(filename string) (*entities.OrderConfiguration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read order file %s: %w", filename, err)
	}
	var order entities.OrderConfiguration
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("failed to parse order file %s: %w", filename, err)
	}
	return &order, nil
}
