// Package lint exposes the linting pipeline: engine construction from a
// configuration file and processing of files, directories and raw sources.
package lint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/guicamillo/eslint-plugin-testing-library/internal"
	tt "github.com/guicamillo/eslint-plugin-testing-library/internal/types"
)

type LintEngine interface {
	Run(filePath string) ([]tt.Issue, error)
	RunSource(source []byte) ([]tt.Issue, error)
	IgnoreRule(rule string)
	IgnorePath(path string)
}

// Options adjusts which files the pipeline picks up.
type Options struct {
	// AllFiles lints every source file instead of only test files
	// (*.test.*, *.spec.*, __tests__/).
	AllFiles bool
}

// New builds an engine from the configuration file at configurationPath.
// An empty path yields the default configuration.
func New(configurationPath string) (*internal.Engine, error) {
	config, err := parseConfigurationFile(configurationPath)
	if err != nil {
		return nil, err
	}
	return internal.NewEngine(config.Rules)
}

// ReadSourceCode reads the content of a file and returns it as a
// SourceCode struct.
func ReadSourceCode(filename string) (*tt.SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return &tt.SourceCode{Lines: strings.Split(string(content), "\n")}, nil
}

func ProcessSources(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	sources [][]byte,
	processor func(LintEngine, []byte) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for i, source := range sources {
		issues, err := processor(engine, source)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing source", zap.Int("source", i), zap.Error(err))
			}
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}
	return allIssues, nil
}

func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	paths []string,
	opts Options,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for _, path := range paths {
		issues, err := ProcessPath(ctx, logger, engine, path, opts, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}
	return allIssues, nil
}

func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	path string,
	opts Options,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !Lintable(path, opts) {
			return nil, nil
		}
		return processor(engine, path)
	}

	var files []string
	err = filepath.Walk(path, func(filePath string, fileInfo os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fileInfo.IsDir() && Lintable(filePath, opts) {
			files = append(files, filePath)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", path, err)
	}

	resultChan := make(chan []tt.Issue, len(files))
	errorChan := make(chan error, len(files))

	// limit the number of workers
	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	var wg sync.WaitGroup
	for _, filePath := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			sem <- struct{}{}
			wg.Add(1)
			go func(fp string) {
				defer func() { <-sem; wg.Done() }()

				fileIssues, err := processor(engine, fp)
				if err != nil {
					if logger != nil {
						logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
					}
					errorChan <- err
					resultChan <- nil
				} else {
					resultChan <- fileIssues
					errorChan <- nil
				}
				_ = bar.Add(1)
			}(filePath)
		}
	}
	wg.Wait()

	var issues []tt.Issue
	for range files {
		if err := <-errorChan; err != nil {
			continue
		}
		if result := <-resultChan; result != nil {
			issues = append(issues, result...)
		}
	}

	fmt.Println()
	return issues, nil
}

func ProcessFile(engine LintEngine, filePath string) ([]tt.Issue, error) {
	return engine.Run(filePath)
}

func ProcessSource(engine LintEngine, source []byte) ([]tt.Issue, error) {
	return engine.RunSource(source)
}

var desiredExtensions = map[string]bool{
	".js":  true,
	".jsx": true,
	".ts":  true,
	".tsx": true,
	".mjs": true,
	".cjs": true,
}

func hasDesiredExtension(path string) bool {
	return desiredExtensions[strings.ToLower(filepath.Ext(path))]
}

// isTestFile reports whether path looks like a test file: a .test./.spec.
// infix or a __tests__ directory component.
func isTestFile(path string) bool {
	base := filepath.Base(path)
	if strings.Contains(base, ".test.") || strings.Contains(base, ".spec.") {
		return true
	}
	for _, part := range strings.Split(filepath.ToSlash(filepath.Dir(path)), "/") {
		if part == "__tests__" {
			return true
		}
	}
	return false
}

// Lintable reports whether the pipeline should pick up path.
func Lintable(path string, opts Options) bool {
	if !hasDesiredExtension(path) {
		return false
	}
	return opts.AllFiles || isTestFile(path)
}

// Config represents the overall configuration with a name and a map of rules.
type Config struct {
	Name  string                   `yaml:"name"`
	Rules map[string]tt.ConfigRule `yaml:"rules"`
}

func parseConfigurationFile(configurationPath string) (Config, error) {
	var config Config
	if configurationPath == "" {
		return config, nil
	}

	f, err := os.Open(configurationPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&config); err != nil {
		return config, fmt.Errorf("error parsing configuration file: %w", err)
	}
	return config, nil
}
