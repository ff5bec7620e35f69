package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/guicamillo/eslint-plugin-testing-library/formatter"
	tt "github.com/guicamillo/eslint-plugin-testing-library/internal/types"
	"github.com/guicamillo/eslint-plugin-testing-library/lint"
)

var (
	ignoreRules    string
	ignorePaths    string
	lintJsonOutput bool
	outPath        string
	allFiles       bool
	watchMode      bool
)

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Run the normal lint process",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := lint.New(cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize lint engine", zap.Error(err))
		}

		if ignoreRules != "" {
			for _, rule := range strings.Split(ignoreRules, ",") {
				engine.IgnoreRule(strings.TrimSpace(rule))
			}
		}

		if ignorePaths != "" {
			for _, path := range strings.Split(ignorePaths, ",") {
				engine.IgnorePath(strings.TrimSpace(path))
			}
		}

		opts := lint.Options{AllFiles: allFiles}

		if watchMode {
			runWatch(logger, engine, args, opts)
			return
		}

		runNormalLintProcess(ctx, logger, engine, args, opts, lintJsonOutput, outPath)
	},
}

func init() {
	lintCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of lint rules to ignore")
	lintCmd.Flags().StringVar(&ignorePaths, "ignore-paths", "", "Comma-separated list of paths to ignore")
	lintCmd.Flags().BoolVar(&lintJsonOutput, "json", false, "Output issues in JSON format")
	lintCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
	lintCmd.Flags().BoolVar(&allFiles, "all-files", false, "Lint every source file, not only test files")
	lintCmd.Flags().BoolVar(&watchMode, "watch", false, "Re-lint files on change")
}

func runNormalLintProcess(ctx context.Context, logger *zap.Logger, engine lint.LintEngine, paths []string, opts lint.Options, isJson bool, jsonOutput string) {
	issues, err := lint.ProcessFiles(ctx, logger, engine, paths, opts, lint.ProcessFile)
	if err != nil {
		logger.Error("Error processing files", zap.Error(err))
		os.Exit(1)
	}

	printIssues(logger, issues, isJson, jsonOutput)

	if len(issues) > 0 {
		os.Exit(1)
	}
}

func runWatch(logger *zap.Logger, engine lint.LintEngine, paths []string, opts lint.Options) {
	fmt.Println("watching for changes... (ctrl-c to stop)")
	err := lint.Watch(context.Background(), logger, engine, paths, opts, func(filename string, issues []tt.Issue) {
		if len(issues) == 0 {
			fmt.Printf("%s: clean\n", filename)
			return
		}
		printIssues(logger, issues, false, "")
	})
	if err != nil && err != context.Canceled {
		logger.Error("Watch mode failed", zap.Error(err))
		os.Exit(1)
	}
}

func printIssues(logger *zap.Logger, issues []tt.Issue, isJson bool, jsonOutput string) {
	issuesByFile := make(map[string][]tt.Issue)
	for _, issue := range issues {
		issuesByFile[issue.Filename] = append(issuesByFile[issue.Filename], issue)
	}

	var sortedFiles []string
	for filename := range issuesByFile {
		sortedFiles = append(sortedFiles, filename)
	}
	sort.Strings(sortedFiles)

	if !isJson {
		for _, filename := range sortedFiles {
			fileIssues := issuesByFile[filename]
			sourceCode, err := lint.ReadSourceCode(filename)
			if err != nil {
				logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
				continue
			}
			output := formatter.GenerateFormattedIssue(fileIssues, sourceCode)
			fmt.Println(output)
		}
		return
	}

	// JSON output
	d, err := json.Marshal(issuesByFile)
	if err != nil {
		logger.Error("Error marshalling issues to JSON", zap.Error(err))
		return
	}
	if jsonOutput == "" {
		fmt.Println(string(d))
		return
	}
	f, err := os.Create(jsonOutput)
	if err != nil {
		logger.Error("Error creating JSON output file", zap.Error(err))
		return
	}
	defer f.Close()
	if _, err := f.Write(d); err != nil {
		logger.Error("Error writing JSON output file", zap.Error(err))
	}
}
