package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/cantype"
	"github.com/aretw0/cantype/internal/presentation/tui"
	"github.com/aretw0/cantype/pkg/schema"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema TYPE",
		Short: "Print the schema of a type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(cmd, nil)
			if err != nil {
				return err
			}
			policyName, _ := cmd.Flags().GetString("policy")
			format, _ := cmd.Flags().GetString("format")

			p, err := cantype.ParsePolicy(policyName)
			if err != nil {
				return err
			}
			typ, err := env.decls.Resolve(args[0], p)
			if err != nil {
				return err
			}

			var out []byte
			switch format {
			case "json":
				out, err = json.MarshalIndent(typ.Schema(), "", "  ")
			case "yaml":
				out, err = yaml.Marshal(typ.Schema())
			case "openapi":
				out, err = json.MarshalIndent(schema.OpenAPI(typ.Schema()), "", "  ")
			case "markdown":
				var md string
				md, err = tui.RenderTo(cmd.OutOrStdout(), tui.SchemaMarkdown(typ))
				out = []byte(md)
			default:
				return fmt.Errorf("unknown format: %s", format)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringP("policy", "p", "check", "Policy (check, convert, maybe, maybeConvert)")
	cmd.Flags().String("format", "json", "Output format (json, yaml, openapi, markdown)")
	return cmd
}
