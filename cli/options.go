package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"farmbot/model"
)

type namedField struct {
	name  string
	field model.OptionField
}

var optionFieldNames = []namedField{
	{"soil", model.FieldSoilType},
	{"month", model.FieldMonth},
	{"season", model.FieldSeason},
	{"land-type", model.FieldLandType},
}

func lookupField(name string) (namedField, bool) {
	for _, f := range optionFieldNames {
		if f.name == name {
			return f, true
		}
	}
	return namedField{}, false
}

func newOptionsCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:       "options [soil|month|season|land-type]",
		Short:     "List the values the server accepts for each filter",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"soil", "month", "season", "land-type"},
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := optionFieldNames
			if len(args) == 1 {
				f, ok := lookupField(args[0])
				if !ok {
					return fmt.Errorf("unknown field %q (want soil, month, season or land-type)", args[0])
				}
				fields = []namedField{f}
			}

			s, err := opts.openSession()
			if err != nil {
				return err
			}

			result := make(map[string][]string, len(fields))
			for _, f := range fields {
				ctx, cancel := requestContext(s.cfg.RequestTimeout)
				values, err := s.client.Options(ctx, f.field)
				cancel()
				if err != nil {
					return fmt.Errorf("failed to load %s options: %w", f.name, err)
				}
				result[f.name] = values
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			for i, f := range fields {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "%s:\n", f.name)
				for _, v := range result[f.name] {
					fmt.Fprintf(out, "  %s\n", v)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")

	return cmd
}

func requestContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(context.Background(), timeout)
	}
	return context.WithCancel(context.Background())
}
