package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-radar/internal/fetch"
	"github.com/jonathan/job-radar/internal/ingest"
	"github.com/jonathan/job-radar/internal/observability"
	"github.com/jonathan/job-radar/internal/types"
)

var (
	ingestSourceID   string
	ingestAll        bool
	ingestConfigPath string
	ingestUseBrowser bool
	ingestVerbose    bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Run an ingestion pass over configured sources",
	Long:  "Fetch one source (or every enabled source), parse its feed and merge the records into the vacancy pool.",
	RunE:  runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestSourceID, "source", "s", "", "Source UUID to ingest")
	ingestCmd.Flags().BoolVarP(&ingestAll, "all", "a", false, "Ingest every enabled source")
	ingestCmd.Flags().StringVar(&ingestConfigPath, "config", "", "Path to JSON config file")
	ingestCmd.Flags().BoolVar(&ingestUseBrowser, "use-browser", false, "Render HTML sources with a headless browser")
	ingestCmd.Flags().BoolVarP(&ingestVerbose, "verbose", "v", false, "Print a detailed summary per source")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	if ingestSourceID == "" && !ingestAll {
		return fmt.Errorf("either --source or --all must be provided")
	}
	if ingestSourceID != "" && ingestAll {
		return fmt.Errorf("--source and --all are mutually exclusive; provide only one")
	}

	ctx := cmd.Context()
	cfg, err := loadAppConfig(ingestConfigPath)
	if err != nil {
		return err
	}

	database, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	timeout := time.Duration(cfg.FetchTimeout) * time.Second
	fetcher := fetch.NewClient(&fetch.Options{
		Timeout:    timeout,
		UseBrowser: ingestUseBrowser || cfg.UseBrowser,
	})
	runner := ingest.NewRunner(database, fetcher)

	var sources []types.SourceConfig
	if ingestAll {
		sources, err = database.ListSources(ctx, true)
		if err != nil {
			return err
		}
		if len(sources) == 0 {
			fmt.Fprintln(os.Stdout, "No enabled sources configured")
			return nil
		}
	} else {
		id, err := uuid.Parse(ingestSourceID)
		if err != nil {
			return fmt.Errorf("invalid source id %q: %w", ingestSourceID, err)
		}
		source, err := database.GetSource(ctx, id)
		if err != nil {
			return err
		}
		if source == nil {
			return fmt.Errorf("source not found: %s", id)
		}
		sources = []types.SourceConfig{*source}
	}

	verbose := ingestVerbose || cfg.Verbose
	printer := observability.NewPrinter(os.Stdout)

	failed := 0
	for _, source := range sources {
		run, err := runner.IngestSource(ctx, source)
		if err != nil {
			return err
		}
		if verbose {
			printer.PrintImportRun(source, run)
		} else {
			fmt.Fprintf(os.Stdout, "%s (%s): %s, %d inserted, %d updated\n",
				source.Name, source.Type, run.Status, run.InsertedCount, run.UpdatedCount)
			if run.Status == types.RunStatusFailed {
				fmt.Fprintf(os.Stdout, "  error: %s\n", run.Error)
			}
		}
		if run.Status == types.RunStatusFailed {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d sources failed", failed, len(sources))
	}
	return nil
}
