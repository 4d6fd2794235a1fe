package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"jetup/pkg/config"
	"jetup/pkg/log"
	"jetup/pkg/plan"
)

// planCmd prints the ordered required actions without executing anything.
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Shows the required actions the manifest would run",
	Long: `The plan command reads the manifest and prints every required action in
execution order, with the low-level operations each one would perform,
without touching the system.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := cmd.Context().Value("logger").(log.Logger)
		manifest, err := config.LoadManifest(cfgFile, logger)
		if err != nil {
			return err
		}

		required := plan.Build(manifest)

		if jsonOutput {
			actionsForJSON := []actionForJSON{}
			for _, action := range required {
				actionsForJSON = append(actionsForJSON, actionForJSON{
					Type:        fmt.Sprintf("%T", action),
					Description: action.Description(),
					Details:     action.ExecutionDetails(),
				})
			}
			jsonBytes, err := json.MarshalIndent(actionsForJSON, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal plan to JSON: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(jsonBytes))
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), "The following required actions would be performed:")
		for _, action := range required {
			fmt.Fprintf(cmd.OutOrStdout(), "=> %s\n", action.Description())
			for _, detail := range action.ExecutionDetails() {
				fmt.Fprintf(cmd.OutOrStdout(), "   - %s\n", detail)
			}
		}
		for _, step := range manifest.OptionalSteps {
			fmt.Fprintf(cmd.OutOrStdout(), "=> [optional] %s (%s)\n", step.Label, step.Script)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the plan in JSON format")
}
