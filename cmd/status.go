package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"jetup/pkg/contenders"
	"jetup/pkg/lock"
	"jetup/pkg/log"
	"jetup/pkg/system"
)

var statusJSON bool

// statusCmd probes the live state the run command contends with: who holds
// the package-database locks, which background units are active, and
// whether a reboot is pending.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Shows package-database lock and background service status",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := cmd.Context().Value("logger").(log.Logger)
		waiter := lock.NewWaiter(cmdRunner, clk, logger, 0)

		status := statusForJSON{RebootRequired: system.RebootRequired(system.AppFs)}
		for _, res := range lock.AptResources() {
			status.Locks = append(status.Locks, resourceStatusForJSON{
				Resource: res.ID,
				LockPath: res.LockPath,
				Held:     waiter.Held(res),
			})
		}
		for _, unit := range contenders.Units {
			if system.UnitActive(cmdRunner, unit) {
				status.ActiveUnits = append(status.ActiveUnits, unit)
			}
		}

		if statusJSON {
			jsonBytes, err := json.MarshalIndent(status, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal status to JSON: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(jsonBytes))
			return nil
		}

		for _, l := range status.Locks {
			state := "free"
			if l.Held {
				state = "held"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "lock %-14s %-32s %s\n", l.Resource, l.LockPath, state)
		}
		for _, unit := range status.ActiveUnits {
			fmt.Fprintf(cmd.OutOrStdout(), "background unit active: %s\n", unit)
		}
		if status.RebootRequired {
			fmt.Fprintln(cmd.OutOrStdout(), "reboot required")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output the status in JSON format")
}
