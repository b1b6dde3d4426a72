package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/opencatalog/ingestkit/internal/config"
	"github.com/opencatalog/ingestkit/internal/logger"
	"github.com/opencatalog/ingestkit/pkg/catalog"
	"github.com/opencatalog/ingestkit/pkg/pipeline"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build an ingestion pipeline definition from a spec file",
	Long: `Build an ingestion pipeline definition from an ingestion spec file
(--spec). The spec names the connector, its connection configuration,
filter patterns, flags, and the schedule interval. On success the
definition is printed as JSON with secrets redacted; on failure every
violation across all parts of the spec is reported.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("spec", "", "Path to ingestion spec file (YAML format, required)")

	if err := viper.BindPFlag("spec", buildCmd.Flags().Lookup("spec")); err != nil {
		logger.Fatalf("Failed to bind spec flag: %v", err)
	}
	if err := buildCmd.MarkFlagRequired("spec"); err != nil {
		logger.Fatalf("Failed to mark spec flag as required: %v", err)
	}
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true
	specPath := viper.GetString("spec")

	spec, err := config.NewSpecLoader().LoadSpec(specPath)
	if err != nil {
		return fmt.Errorf("failed to load spec: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("invalid spec: %w", err)
	}

	registry, err := catalog.NewRegistry()
	if err != nil {
		return fmt.Errorf("failed to load schema catalog: %w", err)
	}

	req, errs := spec.ToBuildRequest()
	if len(errs) == 0 {
		var definition *pipeline.Definition
		definition, errs = pipeline.NewBuilder(registry).Build(req)
		if len(errs) == 0 {
			output, err := json.MarshalIndent(definition, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to serialize definition: %w", err)
			}
			fmt.Println(string(output))
			return nil
		}
	}

	for _, e := range errs {
		logger.Errorf("%s", e.Error())
	}
	return fmt.Errorf("%d validation error(s)", len(errs))
}
