package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"agentlint/internal/config"
	"agentlint/internal/contract"
	"agentlint/internal/crawler"
	"agentlint/internal/git"
	"agentlint/internal/pipeline"
	"agentlint/internal/render"
	"agentlint/internal/report"
	"agentlint/internal/storage"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "agentlint",
		Short: "Structural linter for AGENTS.md-style onboarding documents",
	}

	configPath   string
	contractPath string
	dbPath       string

	checkFormat     string
	checkInclude    string
	checkExclude    string
	checkSince      string
	checkCodeFences bool

	historyLimit int
	renderOut    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "agentlint.yaml", "Path to the tool configuration file")
	rootCmd.PersistentFlags().StringVar(&contractPath, "contract", "", "Path to a standalone contract file (overrides the config)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Path to the run history database (SQLite); empty disables history")

	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", report.FormatText, "Report format: text, json, or table")
	checkCmd.Flags().StringVar(&checkInclude, "include", "", "Glob pattern documents must match when scanning directories")
	checkCmd.Flags().StringVar(&checkExclude, "exclude", "", "Glob pattern for documents to skip when scanning directories")
	checkCmd.Flags().StringVar(&checkSince, "since", "", "Check only Markdown documents changed since this git ref")
	checkCmd.Flags().BoolVar(&checkCodeFences, "code-fences", false, "Parse fenced code blocks with their declared language grammar")

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of runs to show")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Write HTML to this file instead of stdout")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(initCmd)
}

// loadSetup resolves config plus the effective contract, honoring --contract.
func loadSetup() (*config.Config, *contract.Contract, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dbPath != "" {
		cfg.DB = dbPath
	}

	active := &cfg.Contract
	if contractPath != "" {
		active, err = config.LoadContract(contractPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load contract: %w", err)
		}
	}
	return cfg, active, nil
}

var checkCmd = &cobra.Command{
	Use:   "check [path...]",
	Short: "Validate documents against the section contract",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, active, err := loadSetup()
		if err != nil {
			log.Fatalf("%v", err)
		}

		include := cfg.Scan.Include
		if checkInclude != "" {
			include = checkInclude
		}
		exclude := cfg.Scan.Exclude
		if checkExclude != "" {
			exclude = checkExclude
		}
		cr, err := crawler.New(include, exclude)
		if err != nil {
			log.Fatalf("Invalid scan pattern: %v", err)
		}

		paths := args
		if checkSince != "" {
			changed, err := git.ChangedDocs(checkSince)
			if err != nil {
				log.Fatalf("Failed to resolve changed documents: %v", err)
			}
			if len(changed) == 0 {
				fmt.Printf("✅ No Markdown documents changed since %s\n", checkSince)
				return
			}
			paths = changed
		}
		if len(paths) == 0 {
			paths = []string{"."}
		}

		runner := pipeline.NewRunner(pipeline.Options{
			Contract:        active,
			CheckCodeFences: checkCodeFences || cfg.CheckCodeFences,
		})

		ctx := context.Background()
		reports, sum, err := runner.CheckPaths(ctx, paths, cr)
		if err != nil {
			log.Fatalf("Check failed: %v", err)
		}

		if err := report.Write(os.Stdout, checkFormat, reports); err != nil {
			log.Fatalf("Failed to write report: %v", err)
		}

		if cfg.DB != "" {
			recordHistory(ctx, cfg.DB, reports)
		}

		if sum.Failed > 0 {
			fmt.Printf("❌ %d of %d documents failed validation\n", sum.Failed, sum.Checked)
			os.Exit(1)
		}
		fmt.Printf("✅ %d documents checked, all passing\n", sum.Checked)
	},
}

func recordHistory(ctx context.Context, path string, reports []*report.Report) {
	store, err := storage.NewRunStore(path)
	if err != nil {
		fmt.Printf("⚠️  Failed to open history database: %v\n", err)
		return
	}
	defer store.Close()

	for _, r := range reports {
		if err := store.RecordRun(ctx, r); err != nil {
			fmt.Printf("⚠️  Failed to record run for %s: %v\n", r.Path, err)
			return
		}
	}
}

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Validate a document and render it to HTML",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, active, err := loadSetup()
		if err != nil {
			log.Fatalf("%v", err)
		}

		content, err := os.ReadFile(args[0])
		if err != nil {
			log.Fatalf("Failed to read document: %v", err)
		}

		runner := pipeline.NewRunner(pipeline.Options{Contract: active})
		rep := runner.CheckContent(context.Background(), args[0], content)
		if !rep.Pass {
			_ = report.Write(os.Stderr, report.FormatText, []*report.Report{rep})
			log.Fatalf("Refusing to render: %s has structural errors", args[0])
		}

		html, err := render.HTML(content)
		if err != nil {
			log.Fatalf("Failed to render: %v", err)
		}

		if renderOut == "" {
			fmt.Print(string(html))
			return
		}
		if err := os.WriteFile(renderOut, html, 0644); err != nil {
			log.Fatalf("Failed to write %s: %v", renderOut, err)
		}
		fmt.Printf("✅ Rendered %s to %s\n", args[0], renderOut)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history [file]",
	Short: "Show recorded validation runs",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, _, err := loadSetup()
		if err != nil {
			log.Fatalf("%v", err)
		}
		if cfg.DB == "" {
			log.Fatalf("No history database configured (set --db or db in %s)", configPath)
		}

		store, err := storage.NewRunStore(cfg.DB)
		if err != nil {
			log.Fatalf("Failed to open history database: %v", err)
		}
		defer store.Close()

		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		records, err := store.History(context.Background(), path, historyLimit)
		if err != nil {
			log.Fatalf("Failed to read history: %v", err)
		}
		if len(records) == 0 {
			fmt.Println("No recorded runs.")
			return
		}

		for _, rec := range records {
			verdict := "PASS"
			if !rec.Pass {
				verdict = "FAIL"
			}
			fmt.Printf("%s  %-4s  %s  (%d errors, %d warnings)\n",
				rec.CheckedAt, verdict, rec.Path, rec.Errors, rec.Warnings)
		}
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter contract file to the working directory",
	Run: func(cmd *cobra.Command, args []string) {
		path := "agentlint.contract.yaml"
		if contractPath != "" {
			path = contractPath
		}
		if err := config.WriteStarterContract(path); err != nil {
			log.Fatalf("Failed to write contract: %v", err)
		}
		fmt.Printf("🎉 Wrote starter contract to %s\n", path)
	},
}
