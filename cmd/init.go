package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	tt "github.com/guicamillo/eslint-plugin-testing-library/internal/types"
	"github.com/guicamillo/eslint-plugin-testing-library/lint"
)

// initCmd: tlint init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new linter configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfigurationFile(cfgFile); err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return
		}
		fmt.Printf("Configuration file created/updated: %s\n", cfgFile)
	},
}

func initConfigurationFile(configurationPath string) error {
	if configurationPath == "" {
		configurationPath = ".tlint.yaml"
	}

	// Create a yaml file with the default rules spelled out
	config := lint.Config{
		Name: "tlint",
		Rules: map[string]tt.ConfigRule{
			"prefer-presence-queries": {
				Severity: tt.SeverityError,
				Options:  map[string]bool{"presence": true, "absence": true},
			},
			"no-debugging-utils":    {Severity: tt.SeverityWarning},
			"no-await-sync-queries": {Severity: tt.SeverityError},
		},
	}
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	f, err := os.Create(configurationPath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	return err
}
