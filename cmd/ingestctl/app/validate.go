package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/opencatalog/ingestkit/internal/logger"
	"github.com/opencatalog/ingestkit/pkg/catalog"
	"github.com/opencatalog/ingestkit/pkg/validation"
)

var validateCmd = &cobra.Command{
	Use:   "validate <connector-type> <config-file>",
	Short: "Validate a connection configuration file",
	Long: `Validate a connection configuration (JSON or YAML) against the schema
for the given connector type. Every violation is reported, addressed by
field, and the command exits non-zero if any exists.`,
	Args: cobra.ExactArgs(2),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	connectorType, configPath := args[0], args[1]

	raw, err := loadRawConfig(configPath)
	if err != nil {
		return err
	}

	registry, err := catalog.NewRegistry()
	if err != nil {
		return fmt.Errorf("failed to load schema catalog: %w", err)
	}

	validated, errs := validation.NewValidator(registry).Validate(connectorType, raw)
	if len(errs) > 0 {
		for _, e := range errs {
			logger.Errorf("%s", e.Error())
		}
		return fmt.Errorf("%d validation error(s)", len(errs))
	}

	logger.Infow("Configuration is valid",
		"connectorType", validated.ConnectorType(),
		"config", validated)
	return nil
}

// loadRawConfig reads a JSON or YAML config file into a raw map.
// YAML is a superset of JSON, so one decode path covers both.
func loadRawConfig(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return raw, nil
}
