package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-radar/internal/ingest"
	"github.com/jonathan/job-radar/internal/types"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Manage vacancy sources",
}

var sourcesConfigPath string

var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured sources",
	RunE:  runSourcesList,
}

var (
	addSourceType   string
	addSourceName   string
	addSourceURL    string
	addSourceConfig string
)

var sourcesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a new source",
	Long:  "Register a vacancy source. HTML sources accept a JSON selector config via --selectors.",
	RunE:  runSourcesAdd,
}

func init() {
	sourcesCmd.PersistentFlags().StringVar(&sourcesConfigPath, "config", "", "Path to JSON config file")

	sourcesAddCmd.Flags().StringVarP(&addSourceType, "type", "t", "", "Source type: rss, html or csv_url (required)")
	sourcesAddCmd.Flags().StringVarP(&addSourceName, "name", "n", "", "Display name (required)")
	sourcesAddCmd.Flags().StringVarP(&addSourceURL, "url", "u", "", "Feed or page URL (required)")
	sourcesAddCmd.Flags().StringVar(&addSourceConfig, "selectors", "", "JSON selector config for HTML sources")

	_ = sourcesAddCmd.MarkFlagRequired("type")
	_ = sourcesAddCmd.MarkFlagRequired("name")
	_ = sourcesAddCmd.MarkFlagRequired("url")

	sourcesCmd.AddCommand(sourcesListCmd)
	sourcesCmd.AddCommand(sourcesAddCmd)
	rootCmd.AddCommand(sourcesCmd)
}

func runSourcesList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := loadAppConfig(sourcesConfigPath)
	if err != nil {
		return err
	}

	database, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	sources, err := database.ListSources(ctx, false)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		fmt.Fprintln(os.Stdout, "No sources configured")
		return nil
	}

	for _, s := range sources {
		state := "enabled"
		if !s.IsEnabled {
			state = "disabled"
		}
		fmt.Fprintf(os.Stdout, "%s  %-7s %-8s %s\n", s.ID, s.Type, state, s.Name)
		if s.URL != "" {
			fmt.Fprintf(os.Stdout, "%36s  %s\n", "", s.URL)
		}
	}
	return nil
}

func runSourcesAdd(cmd *cobra.Command, _ []string) error {
	sourceType := types.SourceType(addSourceType)
	switch sourceType {
	case types.SourceTypeRSS, types.SourceTypeHTML, types.SourceTypeCSVURL:
	default:
		return fmt.Errorf("unsupported source type %q (want rss, html or csv_url)", addSourceType)
	}

	var selectorConfig map[string]any
	if addSourceConfig != "" {
		if err := json.Unmarshal([]byte(addSourceConfig), &selectorConfig); err != nil {
			return fmt.Errorf("invalid --selectors JSON: %w", err)
		}
		if err := ingest.ValidateSelectorConfig(selectorConfig); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	cfg, err := loadAppConfig(sourcesConfigPath)
	if err != nil {
		return err
	}

	database, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	source := &types.SourceConfig{
		ID:        uuid.New(),
		Type:      sourceType,
		Name:      addSourceName,
		URL:       addSourceURL,
		Config:    selectorConfig,
		IsEnabled: true,
	}
	if err := database.CreateSource(ctx, source); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Created source %s (%s)\n", source.ID, source.Name)
	return nil
}
