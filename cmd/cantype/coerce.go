package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/cantype"
	httpAdapter "github.com/aretw0/cantype/pkg/adapters/http"
	"github.com/spf13/cobra"
)

func newCoerceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coerce TYPE VALUE",
		Short: "Coerce a value to a type and print the result as JSON",
		Long: `Coerce resolves TYPE (a primitive such as Number or a declared record) under
the given policy and passes VALUE through it. VALUE is taken as a string
unless --json is set.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(cmd, nil)
			if err != nil {
				return err
			}
			policyName, _ := cmd.Flags().GetString("policy")
			asJSON, _ := cmd.Flags().GetBool("json")

			p, err := cantype.ParsePolicy(policyName)
			if err != nil {
				return err
			}
			typ, err := env.decls.Resolve(args[0], p)
			if err != nil {
				return err
			}

			var input any = args[1]
			if asJSON {
				if input, err = httpAdapter.DecodeValue([]byte(args[1])); err != nil {
					return fmt.Errorf("invalid JSON value: %w", err)
				}
			}

			value, err := typ.New(input)
			if err != nil {
				return err
			}

			out, err := json.Marshal(httpAdapter.JSONSafe(value))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringP("policy", "p", "convert", "Policy (check, convert, maybe, maybeConvert)")
	cmd.Flags().Bool("json", false, "Parse VALUE as JSON")
	return cmd
}
