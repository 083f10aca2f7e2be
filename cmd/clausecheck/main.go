package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/dangerclosesec/clausecheck/clauses/parser"
	"github.com/dangerclosesec/clausecheck/internal/config"
	"github.com/dangerclosesec/clausecheck/internal/report"
	"github.com/dangerclosesec/clausecheck/internal/repository"
	"github.com/dangerclosesec/clausecheck/internal/service"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	configPath  string
	grammarName string
	recoverMode bool
	verbose     bool
	logLevel    string

	outputPath string
	format     string
	pattern    string
	workers    int
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVarP(&grammarName, "grammar", "g", "", "Operator table: standard or flat")
	rootCmd.PersistentFlags().BoolVarP(&recoverMode, "recover", "r", false, "Keep parsing after a failed clause")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")

	checkCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the report to a file instead of stdout")
	checkCmd.Flags().StringVarP(&format, "format", "f", "", "Report format: text or json")
	checkCmd.Flags().StringVarP(&pattern, "pattern", "p", "", "Glob selecting the files to check instead of 1.txt, 2.txt, ...")
	checkCmd.Flags().IntVarP(&workers, "workers", "w", 0, "Number of files checked concurrently")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(grammarCmd)
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "clausecheck",
	Short: "Clausecheck is a syntax checker for clause programs",
	Long:  `Clausecheck checks facts, rules and queries against the clause grammar and reports the first error of each file.`,
}

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Check every program in a directory",
	Long: `Check the numbered files 1.txt, 2.txt, ... of a directory (or the files
matching --pattern) and write one verdict per file.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		if len(args) == 1 {
			cfg.Input.Dir = args[0]
		}
		logger := setupLogger(cfg)

		grammar, err := cfg.Grammar()
		if err != nil {
			logger.Error("failed to build grammar", "error", err)
			os.Exit(1)
		}

		repo := repository.NewFileSourceRepository(cfg.Input.Dir, cfg.Input.Pattern, cfg.Input.Extension)
		checker := service.NewCheckerService(repo, grammar, logger)
		checker.SetWorkers(cfg.Workers)
		checker.SetRecover(cfg.Parser.Recover)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		rep, err := checker.CheckAll(ctx)
		if err != nil {
			logger.Error("check failed", "dir", cfg.Input.Dir, "error", err)
			os.Exit(1)
		}

		var out io.Writer = os.Stdout
		if cfg.Output.Path != "" {
			f, err := os.Create(cfg.Output.Path)
			if err != nil {
				logger.Error("failed to create report file", "path", cfg.Output.Path, "error", err)
				os.Exit(1)
			}
			defer f.Close()
			out = f
		}

		if err := report.Write(out, cfg.Output.Format, rep); err != nil {
			logger.Error("failed to write report", "error", err)
			os.Exit(1)
		}
		if cfg.Output.Path != "" {
			logger.Info("report written", "path", cfg.Output.Path, "run_id", rep.RunID)
		}

		if !rep.OK() {
			os.Exit(1)
		}
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a single program",
	Long:  `Parse a single program and display its clauses.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		filePath := args[0]
		opts, err := loadConfig(cmd).ParserOptions()
		if err != nil {
			log.Fatalf("Invalid parser configuration: %v", err)
		}

		program, err := parser.ParseFile(filePath, opts...)
		if err != nil {
			diags := parser.AsDiagnostics(err)
			if diags == nil {
				log.Fatalf("Failed to parse file: %v", err)
			}
			fmt.Printf("%s contains syntax errors:\n", filePath)
			for _, d := range diags {
				fmt.Println("  - " + d.Error())
			}
			os.Exit(1)
		}

		fmt.Printf("Successfully parsed %s\n", filePath)
		fmt.Printf("Found %d clauses defining %d predicates\n", len(program.Clauses), len(program.Predicates()))

		if verbose {
			for _, clause := range program.Clauses {
				fmt.Printf("  %-9s %s\n", clause.Kind, clause)
			}
		}
	},
}

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Print the token stream of a file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		content, err := os.ReadFile(args[0])
		if err != nil {
			log.Fatalf("Failed to read file: %v", err)
		}

		for tok, err := range parser.Tokens(string(content)) {
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			fmt.Printf("%d:%d\t%-12s\t%s\n", tok.Pos.Line, tok.Pos.Column, tok.Type.Category(), tok.Literal)
		}
	},
}

var grammarCmd = &cobra.Command{
	Use:   "grammar",
	Short: "Print the operator table",
	Run: func(cmd *cobra.Command, args []string) {
		grammar, err := loadConfig(cmd).Grammar()
		if err != nil {
			log.Fatalf("Invalid grammar: %v", err)
		}

		fmt.Printf("Grammar: %s\n", grammar.Name)
		for _, op := range grammar.Operators() {
			fmt.Printf("  %4d  %-3s  %s\n", op.Priority, op.Type, op.Name)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("clausecheck %s\n", version)
	},
}

// loadConfig reads the environment and the optional config file, then
// applies the flags the user set explicitly
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg := config.Load()
	if configPath != "" {
		var err error
		cfg, err = config.LoadFile(configPath)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("grammar") {
		cfg.Parser.Grammar = grammarName
	}
	if flags.Changed("recover") {
		cfg.Parser.Recover = recoverMode
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("output") {
		cfg.Output.Path = outputPath
	}
	if flags.Changed("format") {
		cfg.Output.Format = format
	}
	if flags.Changed("pattern") {
		cfg.Input.Pattern = pattern
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if verbose && !flags.Changed("log-level") {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func setupLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}

	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
