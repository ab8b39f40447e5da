package main

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/author-projection-benchmarks-go/benchrunner"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/config"
)

const (
	variantKeyUnfiltered     = "unfiltered"
	variantKeyProjected      = "projected"
	variantKeyProjectedValue = "projected-value"
)

func (a *app) newQueryCommand() *cobra.Command {
	var variant string

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run one top author variant once and print its result as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			handlers, err := benchrunner.NewHandlers(s.store, benchrunner.Observability{})
			if err != nil {
				return err
			}

			var result any

			switch variant {
			case variantKeyUnfiltered:
				result, err = handlers.Unfiltered.Handle(cmd.Context())
			case variantKeyProjected:
				result, err = handlers.Projected.Handle(cmd.Context())
			case variantKeyProjectedValue:
				result, err = handlers.ProjectedValue.Handle(cmd.Context())
			default:
				return fmt.Errorf("%w: unknown variant %q", config.ErrInvalidSettings, variant)
			}

			if err != nil {
				return err
			}

			encoder := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(a.stdout)
			encoder.SetIndent("", "  ")

			return encoder.Encode(result)
		},
	}

	cmd.Flags().StringVar(&variant, "variant", variantKeyProjected,
		"variant to run: unfiltered, projected or projected-value")

	return cmd
}
