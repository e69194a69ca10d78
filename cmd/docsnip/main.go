package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"docsnip/internal/config"
	"docsnip/internal/content"
	"docsnip/internal/crawler"
	"docsnip/internal/git"
	"docsnip/internal/pipeline"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	rootCmd = &cobra.Command{
		Use:           "docsnip",
		Short:         "Keep code snippets in documentation in sync with the source",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logConfig := zap.NewProductionConfig()
			logConfig.Encoding = "console"
			logConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
			logConfig.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if verbose {
				logConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = logConfig.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	configPath string
	verbose    bool
	workers    int
	marker     string
	logger     *zap.Logger

	errStale = errors.New("documentation is out of date; run 'docsnip sync'")
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("❌ "+err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "docsnip.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", 0, "Number of parallel workers (default from config)")
	rootCmd.PersistentFlags().StringVar(&marker, "marker", "", "Project marker expected in documentation tags")

	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(regionsCmd)
}

// loadConfig loads the configuration file and applies command line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	if marker != "" {
		cfg.Project.Marker = marker
	}
	return cfg, nil
}

// initSync wires a Sync for the documentation at path.
func initSync(path string) (*pipeline.Sync, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", crawler.ErrPathNotFound, path)
	}

	// 1. Resolve the directory content paths are relative to
	root := cfg.Project.Root
	if root == "" {
		root, err = git.Toplevel(path)
		if err != nil {
			return nil, fmt.Errorf("failed to find repository root: %w", err)
		}
	}
	logger.Debug("Resolved repository root", zap.String("root", root))

	// 2. Setup content parser
	parser := content.NewParser(cfg.ContentLanguages(), cfg.Content.Ellipsis)
	parser.VerifyComments = cfg.Content.VerifyComments

	// 3. Create Sync
	return pipeline.NewSync(pipeline.Options{
		Root:    root,
		Marker:  cfg.Project.Marker,
		Workers: cfg.Workers,
		Crawler: crawler.NewCrawler(cfg.Docs.Extensions, cfg.Docs.Ignored),
		Parser:  parser,
		Logger:  logger,
	}), nil
}

func pathArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

var syncCmd = &cobra.Command{
	Use:   "sync [path]",
	Short: "Refresh every referenced code block below path",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := pathArg(args)
		fmt.Printf("📂 Syncing documentation in: %s\n", path)

		s, err := initSync(path)
		if err != nil {
			return err
		}

		start := time.Now()
		plan, err := s.Run(cmd.Context(), path)
		if err != nil {
			return err
		}

		for _, u := range plan.Updates {
			if u.Changed() {
				fmt.Printf("✍️  Updated %s (%d snippets)\n", u.Path, u.References)
			}
		}
		stale := len(plan.Stale())
		if stale == 0 {
			fmt.Println(okStyle.Render("✅ Documentation is up to date."))
		} else {
			fmt.Println(okStyle.Render(fmt.Sprintf("✅ Updated %d of %d documentation files in %v.", stale, plan.Docs, time.Since(start).Round(time.Millisecond))))
		}
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Report code blocks that are out of date without writing",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := pathArg(args)
		fmt.Printf("🔍 Checking documentation in: %s\n", path)

		s, err := initSync(path)
		if err != nil {
			return err
		}

		plan, err := s.Plan(cmd.Context(), path)
		if err != nil {
			return err
		}

		stale := plan.Stale()
		for _, u := range stale {
			name := u.Path
			if rel, err := filepath.Rel(".", u.Path); err == nil {
				name = rel
			}
			diff, err := pipeline.UnifiedDiff(name, u.Before, u.After)
			if err != nil {
				return err
			}
			fmt.Print(colorDiff(diff))
		}
		if len(stale) > 0 {
			fmt.Printf("⚠️  %d of %d documentation files are out of date.\n", len(stale), plan.Docs)
			return errStale
		}
		fmt.Println(okStyle.Render("✅ Documentation is up to date."))
		return nil
	},
}

var regionsCmd = &cobra.Command{
	Use:   "regions <file>",
	Short: "List the tagged regions of a content file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		parser := content.NewParser(cfg.ContentLanguages(), cfg.Content.Ellipsis)
		parser.VerifyComments = cfg.Content.VerifyComments

		tree, err := parser.ParseFile(cmd.Context(), args[0], args[0])
		if err != nil {
			return err
		}

		fmt.Println(titleStyle.Render("📄 " + tree.Path))
		if len(tree.Root.Children) == 0 {
			fmt.Println("  (no regions)")
			return nil
		}
		printRegions(tree.Root.Children, 1)
		return nil
	},
}

func printRegions(regions []*content.Region, depth int) {
	for _, r := range regions {
		fmt.Printf("%s%s %s\n",
			strings.Repeat("  ", depth),
			nameStyle.Render("["+r.Name+"]"),
			lineStyle.Render(fmt.Sprintf("lines %d-%d", r.Begin+1, r.End+1)))
		printRegions(r.Children, depth+1)
	}
}
