package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/opencatalog/ingestkit/pkg/catalog"
)

var schemasCmd = &cobra.Command{
	Use:   "schemas [connector-type]",
	Short: "List registered connector schemas",
	Long: `List the connector types in the schema catalog. With a connector type
argument, print that schema's declared properties.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSchemas,
}

func runSchemas(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	registry, err := catalog.NewRegistry()
	if err != nil {
		return fmt.Errorf("failed to load schema catalog: %w", err)
	}

	if len(args) == 1 {
		return printSchema(registry, args[0])
	}

	table := tablewriter.NewTable(os.Stdout)
	table.Header("TYPE", "TITLE", "REQUIRED FIELDS")
	for _, connectorType := range registry.Types() {
		schema, err := registry.Lookup(connectorType)
		if err != nil {
			return err
		}
		row := []string{schema.Type(), schema.Title(), strings.Join(schema.Required(), ", ")}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("failed to render schema table: %w", err)
		}
	}
	return table.Render()
}

func printSchema(registry *catalog.Registry, connectorType string) error {
	schema, err := registry.Lookup(connectorType)
	if err != nil {
		return err
	}

	table := tablewriter.NewTable(os.Stdout)
	table.Header("PROPERTY", "KIND", "REQUIRED", "SECRET", "DESCRIPTION")
	for _, prop := range schema.Properties() {
		row := []string{
			prop.Name,
			string(prop.Kind),
			fmt.Sprintf("%t", schema.IsRequired(prop.Name)),
			fmt.Sprintf("%t", prop.Secret),
			prop.Description,
		}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("failed to render property table: %w", err)
		}
	}
	return table.Render()
}
