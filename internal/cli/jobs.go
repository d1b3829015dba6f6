package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/jhoicas/invoizo-api/internal/bootstrap"
)

var sweepOverdueCmd = &cobra.Command{
	Use:   "sweep-overdue",
	Short: "Mark SENT/VIEWED invoices past their due date as OVERDUE",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withContainer(cmd.Context(), func(c *bootstrap.Container) error {
			res, err := c.Sweeper.Run(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		})
	},
}

var sendRemindersCmd = &cobra.Command{
	Use:   "send-reminders",
	Short: "Send today's payment reminders",
	Long: `Sends the payment reminders due today: two days before the due date, on the
due date and once overdue. Each reminder type is sent at most once per invoice.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withContainer(cmd.Context(), func(c *bootstrap.Container) error {
			res, err := c.Reminders.Run(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		})
	},
}

func init() {
	rootCmd.AddCommand(sweepOverdueCmd, sendRemindersCmd)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
