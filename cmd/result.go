package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resultCmd = &cobra.Command{
	Use:   "result <session-id>",
	Short: "Show the report for a finished session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		res, err := e.engine.Result(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printResult(res)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		ctx := cmd.Context()
		sessions, err := e.store.Sessions().List(ctx)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions recorded.")
			return nil
		}

		fmt.Printf("%-18s %-20s %-13s %-10s %s\n", "SESSION", "CANDIDATE", "LEVEL", "STATUS", "UPDATED")
		for _, s := range sessions {
			fmt.Printf("%-18s %-20s %-13s %-10s %s\n",
				s.ID, s.Candidate, s.Level, s.Status, s.UpdatedAt.Format("2006-01-02 15:04"))
		}

		counts, err := e.store.Sessions().CountByStatus(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("\n%d active, %d completed, %d aborted\n",
			counts["active"], counts["completed"], counts["aborted"])
		return nil
	},
}
