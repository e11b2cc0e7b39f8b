package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Fraud-stop/shield-wise-guard/internal/domain/services"
)

// exitDangerous is returned by check when any target is dangerous
const exitDangerous = 2

func newCheckCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "check TARGET...",
		Short: "Classify URLs or phone numbers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			classifier, log, err := newClassifier(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			checks := services.NewCheckService(classifier, nil, len(args), log)

			resp, err := checks.CheckBatch(cmd.Context(), args)
			if err != nil {
				return err
			}
			if resp.TotalCount == 0 {
				return services.ErrEmptyTarget
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(resp); err != nil {
					return err
				}
			} else {
				tw := tabwriter.NewWriter(out, 0, 2, 2, ' ', 0)
				fmt.Fprintln(tw, "TARGET\tRISK\tRULE\tREASON")
				for _, r := range resp.Results {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Token, r.Result.RiskLevel, r.Rule, r.Result.Reason)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}

			if resp.DangerousCount > 0 {
				return &ExitError{code: exitDangerous}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	return cmd
}
