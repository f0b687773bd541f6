package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roivaz/pr-review-agent/internal/commitmsg"
	"github.com/roivaz/pr-review-agent/internal/config"
	"github.com/roivaz/pr-review-agent/internal/llm"
	"github.com/roivaz/pr-review-agent/internal/logging"
	"github.com/roivaz/pr-review-agent/internal/mcpclient"
	"github.com/roivaz/pr-review-agent/internal/preflight"
	"github.com/roivaz/pr-review-agent/internal/review"
	"github.com/roivaz/pr-review-agent/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "prreview",
	Short: "PR reviews and commit messages backed by an MCP tool provider and an LLM",
}

var (
	flagOwner  string
	flagRepo   string
	flagNumber int
	flagSave   bool
	flagPost   bool
	flagNoPre  bool
	flagLimit  int
)

var reviewCmd = &cobra.Command{
	Use:   "review [owner/repo#number | PR URL]",
	Short: "Analyze a pull request and draft a review comment",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, repo, number, err := resolveTarget(args)
		if err != nil {
			return err
		}

		logger := newLogger()
		ctx := signalContext()

		if !flagNoPre {
			gh := preflight.NewClient(config.GitHubToken())
			if err := preflight.VerifyPR(ctx, gh, owner, repo, number); err != nil {
				if errors.Is(err, preflight.ErrNotFound) {
					return err
				}
				logger.Info("preflight check unavailable, continuing", "reason", err.Error())
			}
		}

		client, err := newLLMClient(config.AnalysisModel(), logger)
		if err != nil {
			return err
		}

		mcpCfg, err := newMCPConfig(logger)
		if err != nil {
			return err
		}

		agent := review.NewAgent(review.Config{
			MCP:         mcpCfg,
			PostComment: flagPost,
			Logger:      logger,
		}, client)

		logger.Info("analyzing pull request", "owner", owner, "repo", repo, "pr", number)
		analysis, err := agent.AnalyzePR(ctx, owner, repo, number)
		if err != nil {
			return err
		}

		report := review.RenderReport(analysis)
		fmt.Println(report)
		fmt.Println("## Generated Review Comment")
		fmt.Println()
		fmt.Println(analysis.ReviewComment)

		if flagSave {
			path, err := review.SaveReport(config.ReportDir(), owner, repo, number, analysis)
			if err != nil {
				return err
			}
			logger.Info("report saved", "path", path)
		}

		if dsn := config.PostgresURL(); dsn != "" {
			if err := persistReview(ctx, dsn, owner, repo, number, analysis, report); err != nil {
				logger.Error(err, "persist review failed")
			}
		}
		return nil
	},
}

var commitCmd = &cobra.Command{
	Use:   "commit [path]",
	Short: "Generate a commit message from staged changes",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "."
		if len(args) == 1 {
			path = args[0]
		}

		logger := newLogger()
		client, err := newLLMClient(config.CommitModel(), logger)
		if err != nil {
			return err
		}

		message, err := commitmsg.NewGenerator(client, logger).Generate(signalContext(), path)
		if err != nil {
			return err
		}
		fmt.Println(message)
		return nil
	},
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the provider's tools and resolved capabilities",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		ctx := signalContext()

		mcpCfg, err := newMCPConfig(logger)
		if err != nil {
			return err
		}
		session, err := mcpclient.Open(ctx, mcpCfg)
		if err != nil {
			return err
		}
		defer session.Close()

		tools, err := session.Tools(ctx)
		if err != nil {
			return err
		}
		for _, t := range tools {
			fmt.Printf("%s\t%s\n", t.Name, t.Description)
		}
		fmt.Println()
		for capability, name := range session.Resolved() {
			fmt.Printf("%s -> %s\n", capability, name)
		}
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent persisted reviews",
	RunE: func(cmd *cobra.Command, args []string) error {
		dsn := config.PostgresURL()
		if dsn == "" {
			return fmt.Errorf("%s is not configured", config.KeyPostgresURL)
		}
		database, err := store.NewDatabase(store.Config{DSN: dsn, Debug: config.PostgresDebug()})
		if err != nil {
			return err
		}
		defer database.Close()

		records, err := store.NewReviewRepository(database).Recent(signalContext(), flagLimit)
		if err != nil {
			return err
		}
		for _, r := range records {
			fmt.Printf("%s  %s/%s#%d  score=%d  %s\n",
				r.CreatedAt.Format("2006-01-02 15:04"), r.Owner, r.Repo, r.PRNumber, r.QualityScore, r.Summary)
		}
		return nil
	},
}

func resolveTarget(args []string) (string, string, int, error) {
	if len(args) == 1 {
		return review.ParseRef(args[0])
	}
	if flagOwner == "" || flagRepo == "" || flagNumber <= 0 {
		return "", "", 0, fmt.Errorf("provide a PR reference or --owner, --repo and --number")
	}
	return flagOwner, flagRepo, flagNumber, nil
}

func newLogger() logging.Logger {
	return logging.New(logging.DefaultLogger(config.LogLevel()))
}

func newLLMClient(model string, logger logging.Logger) (*llm.Client, error) {
	return llm.NewClient(llm.Config{
		ModelName:   model,
		APIKey:      config.OpenAIAPIKey(),
		BaseURL:     config.OpenAIBaseURL(),
		CallTimeout: config.LLMCallTimeout(),
		Logger:      logger.Logr(),
	})
}

func newMCPConfig(logger logging.Logger) (mcpclient.Config, error) {
	capMap, err := mcpclient.LoadCapabilityMap(config.CapabilityMapPath())
	if err != nil {
		return mcpclient.Config{}, fmt.Errorf("load capability map: %w", err)
	}
	var env []string
	if token := config.GitHubToken(); token != "" {
		env = append(env, "GITHUB_PERSONAL_ACCESS_TOKEN="+token)
	}
	return mcpclient.Config{
		Command:     config.MCPCommand(),
		Args:        config.MCPArgs(),
		Env:         env,
		CallTimeout: config.ToolCallTimeout(),
		Capability:  capMap,
		Logger:      logger,
	}, nil
}

func persistReview(ctx context.Context, dsn, owner, repo string, number int, analysis review.Analysis, report string) error {
	database, err := store.NewDatabase(store.Config{DSN: dsn, Debug: config.PostgresDebug()})
	if err != nil {
		return err
	}
	defer database.Close()

	repository := store.NewReviewRepository(database)
	if err := repository.Bootstrap(ctx); err != nil {
		return err
	}
	return repository.Save(ctx, &store.ReviewRecord{
		Owner:         owner,
		Repo:          repo,
		PRNumber:      number,
		Summary:       analysis.Summary,
		QualityScore:  analysis.QualityScore,
		Report:        report,
		ReviewComment: analysis.ReviewComment,
	})
}

func signalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() { <-sigs; cancel() }()
	return ctx
}

func main() {
	reviewCmd.Flags().StringVar(&flagOwner, "owner", "", "repository owner")
	reviewCmd.Flags().StringVar(&flagRepo, "repo", "", "repository name")
	reviewCmd.Flags().IntVar(&flagNumber, "number", 0, "pull request number")
	reviewCmd.Flags().BoolVar(&flagSave, "save", false, "save the report to a pr_review_<owner>_<repo>_<number>.md file")
	reviewCmd.Flags().BoolVar(&flagPost, "post", false, "post the generated comment on the PR")
	reviewCmd.Flags().BoolVar(&flagNoPre, "skip-preflight", false, "skip the GitHub API existence check")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "number of reviews to show")

	config.Init(rootCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(historyCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("prreview: %v", err)
	}
}
