package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-radar/internal/db"
	"github.com/jonathan/job-radar/internal/matching"
	"github.com/jonathan/job-radar/internal/observability"
)

var (
	matchEmail      string
	matchConfigPath string
	matchLimit      int
	matchVerbose    bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Recompute matches for a user",
	Long:  "Score every vacancy against the user's profile, persist the ranked match set and print the top results with their explanations.",
	RunE:  runMatch,
}

func init() {
	matchCmd.Flags().StringVarP(&matchEmail, "email", "e", "", "Email of the user to match (required)")
	matchCmd.Flags().StringVar(&matchConfigPath, "config", "", "Path to JSON config file")
	matchCmd.Flags().IntVar(&matchLimit, "limit", 10, "How many matches to print")
	matchCmd.Flags().BoolVarP(&matchVerbose, "verbose", "v", false, "Print detailed score breakdowns")

	_ = matchCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := loadAppConfig(matchConfigPath)
	if err != nil {
		return err
	}

	database, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	user, err := database.GetUserByEmail(ctx, matchEmail)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user not found: %s", matchEmail)
	}

	profile, err := database.GetProfileByUserID(ctx, user.ID)
	if err != nil {
		return err
	}
	if profile == nil {
		return fmt.Errorf("user %s has no profile yet", matchEmail)
	}

	vacancies, err := database.ListVacancies(ctx, db.VacancyFilters{})
	if err != nil {
		return err
	}

	matches := matching.BuildMatches(profile, vacancies, localeOrDefault(cfg))
	for i := range matches {
		matches[i].ID = uuid.New()
		matches[i].UserID = user.ID
	}
	if err := database.ReplaceMatches(ctx, user.ID, matches); err != nil {
		return err
	}

	verbose := matchVerbose || cfg.Verbose
	var printer *observability.Printer
	if verbose {
		printer = observability.NewPrinter(os.Stdout)
		printer.PrintProfile(profile)
	}

	fmt.Fprintf(os.Stdout, "Scored %d vacancies, kept %d matches\n\n", len(vacancies), len(matches))
	for i, m := range matches {
		if i >= matchLimit {
			break
		}
		vacancy, err := database.GetVacancy(ctx, m.VacancyID)
		if err != nil {
			return err
		}
		if verbose {
			printer.PrintMatch(i+1, vacancy, m)
			continue
		}
		title := "(unknown vacancy)"
		if vacancy != nil {
			title = vacancy.Title
		}
		fmt.Fprintf(os.Stdout, "%3d. [%5.1f] %s\n", i+1, m.Score, title)
		if m.Explanation != "" {
			fmt.Fprintf(os.Stdout, "     %s\n", m.Explanation)
		}
	}
	return nil
}
