package cmd

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/community-spotlight/internal/config"
	"github.com/naka-gawa/community-spotlight/internal/gateway"
	"github.com/naka-gawa/community-spotlight/internal/publish"
	"github.com/naka-gawa/community-spotlight/internal/report"
	"github.com/naka-gawa/community-spotlight/internal/usecase"
)

var spotlightCmd = &cobra.Command{
	Use:   "spotlight",
	Short: "Builds the monthly community spotlight message",
	Long: `Counts commits by non-members across all repositories of the organization,
ranks the top contributors, collects their pull requests and writes the
announcement to the message file, the GITHUB_OUTPUT file and the
GITHUB_STEP_SUMMARY file.`,
	RunE: runSpotlight,
}

func runSpotlight(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := newLogger(verbose)

	if config.LoadDotEnv() {
		logger.Debug("Loaded .env file")
	}
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Inject dependencies and run the main business logic.
	githubGateway, err := gateway.NewGitHubGateway(gateway.Options{
		Token:         cfg.Token,
		APIBaseURL:    cfg.APIBaseURL,
		GraphQLURL:    cfg.GraphQLURL,
		PerPage:       cfg.PerPage,
		WaitRateLimit: cfg.WaitRateLimit,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	if login, err := githubGateway.Viewer(ctx); err != nil {
		logger.WithError(err).Warn("Could not resolve the token's account; requests may fail")
	} else {
		logger.WithField("login", login).Info("Authenticated to GitHub")
	}

	spotlight := usecase.NewSpotlight(githubGateway, logger, usecase.Settings{
		Org:         cfg.Org,
		TopN:        cfg.TopN,
		Ignore:      cfg.Ignore,
		Concurrency: cfg.Concurrency,
	})
	result := spotlight.Run(ctx, time.Now())

	formatter := report.NewFormatter(cfg.Org, cfg.OrgName)
	publisher := publish.NewPublisher(publish.Targets{
		MessageFile: cfg.MessageFile,
		OutputFile:  cfg.OutputFile,
		OutputKey:   cfg.OutputKey,
		SummaryFile: cfg.SummaryFile,
	}, logger)
	if err := publisher.Publish(formatter.Announcement(result), formatter.Summary(result)); err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"contributors": len(result.Contributors),
		"repositories": len(result.Repositories),
	}).Info("Community spotlight published")
	return nil
}

// applyFlags overrides the loaded configuration with flags set on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error
	if flags.Changed("org") {
		cfg.Org, err = flags.GetString("org")
	}
	if err == nil && flags.Changed("org-name") {
		cfg.OrgName, err = flags.GetString("org-name")
	}
	if err == nil && flags.Changed("top") {
		cfg.TopN, err = flags.GetInt("top")
	}
	if err == nil && flags.Changed("ignore") {
		cfg.Ignore, err = flags.GetStringSlice("ignore")
	}
	if err == nil && flags.Changed("message-file") {
		cfg.MessageFile, err = flags.GetString("message-file")
	}
	if err == nil && flags.Changed("concurrency") {
		cfg.Concurrency, err = flags.GetInt("concurrency")
	}
	if err == nil && flags.Changed("wait-rate-limit") {
		cfg.WaitRateLimit, err = flags.GetBool("wait-rate-limit")
	}
	return err
}

func init() {
	rootCmd.AddCommand(spotlightCmd)
	addSpotlightFlags(spotlightCmd)
}

func addSpotlightFlags(c *cobra.Command) {
	c.Flags().StringP("org", "o", "", "GitHub organization login (default activist-org)")
	c.Flags().String("org-name", "", "Organization display name used in the message (default activist)")
	c.Flags().IntP("top", "n", 0, "Number of contributors to feature (default 5)")
	c.Flags().StringSlice("ignore", nil, "Logins never featured, e.g. bots (default weblate,dependabot[bot],to-sta)")
	c.Flags().String("message-file", "", "File the announcement is written to (default message.txt)")
	c.Flags().Int("concurrency", 0, "Repositories or contributors fetched at once (default 4)")
	c.Flags().Bool("wait-rate-limit", false, "Sleep through GitHub secondary rate limits instead of stopping the fetch")
}
