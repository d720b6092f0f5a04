package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-radar/internal/advice"
	"github.com/jonathan/job-radar/internal/llm"
	"github.com/jonathan/job-radar/internal/matching"
)

var (
	skillGapEmail      string
	skillGapVacancyID  string
	skillGapConfigPath string
	skillGapNoLLM      bool
)

var skillGapCmd = &cobra.Command{
	Use:   "skill-gap",
	Short: "Build a learning plan for one vacancy",
	Long:  "Score a vacancy against the user's profile and print the missing skills with learning resources. With a Gemini API key configured, the plan includes priorities and a study roadmap.",
	RunE:  runSkillGap,
}

func init() {
	skillGapCmd.Flags().StringVarP(&skillGapEmail, "email", "e", "", "Email of the user (required)")
	skillGapCmd.Flags().StringVarP(&skillGapVacancyID, "vacancy", "v", "", "Vacancy UUID (required)")
	skillGapCmd.Flags().StringVar(&skillGapConfigPath, "config", "", "Path to JSON config file")
	skillGapCmd.Flags().BoolVar(&skillGapNoLLM, "no-llm", false, "Skip the LLM even when an API key is configured")

	_ = skillGapCmd.MarkFlagRequired("email")
	_ = skillGapCmd.MarkFlagRequired("vacancy")
	rootCmd.AddCommand(skillGapCmd)
}

func runSkillGap(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := loadAppConfig(skillGapConfigPath)
	if err != nil {
		return err
	}

	vacancyID, err := uuid.Parse(skillGapVacancyID)
	if err != nil {
		return fmt.Errorf("invalid vacancy id %q: %w", skillGapVacancyID, err)
	}

	database, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	user, err := database.GetUserByEmail(ctx, skillGapEmail)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user not found: %s", skillGapEmail)
	}

	profile, err := database.GetProfileByUserID(ctx, user.ID)
	if err != nil {
		return err
	}
	if profile == nil {
		return fmt.Errorf("user %s has no profile yet", skillGapEmail)
	}

	vacancy, err := database.GetVacancy(ctx, vacancyID)
	if err != nil {
		return err
	}
	if vacancy == nil {
		return fmt.Errorf("vacancy not found: %s", vacancyID)
	}

	var client llm.Client
	if cfg.APIKey != "" && !skillGapNoLLM {
		client, err = llm.NewGeminiClient(ctx, nil, cfg.APIKey)
		if err != nil {
			return err
		}
		defer client.Close()
	}

	result := matching.Score(profile, *vacancy, localeOrDefault(cfg))
	plan := advice.NewAdvisor(client).BuildPlan(ctx, *vacancy, result)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(plan)
}
