package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/yumosx/loft/internal/config"
)

var schemaCmd = &cobra.Command{
	Use:    "schema",
	Short:  "Generate JSON schema for configuration",
	Long:   "Generate JSON schema for the loft configuration file",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		bts, err := json.MarshalIndent(configSchema(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal schema: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(bts))
		return nil
	},
}

func configSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		// Use anonymous schemas to avoid ID conflicts
		Anonymous: true,
		// Expand the root struct instead of referencing it
		ExpandedStruct:            true,
		AllowAdditionalProperties: true,
	}
	schema := r.Reflect(&config.Config{})
	schema.Version = "https://json-schema.org/draft/2020-12/schema"
	schema.Title = "Loft Configuration"
	schema.Description = "Configuration schema for loft dialogs and hotkeys"
	return schema
}
