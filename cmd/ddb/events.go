// cmd/ddb/events.go
//
// Event and rally subcommands.  Like the roster commands these are flat
// exports: one query, JSON on stdout.
package main

import (
	"github.com/spf13/cobra"

	"github.com/yanizio/ddb/internal/roster"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Export published events with their owning club or region",
	RunE: func(cmd *cobra.Command, args []string) error {
		events, err := roster.AllEvents(cmd.Context(), db)
		if err != nil {
			return err
		}
		return printJSON(events)
	},
}

var ralliesCmd = &cobra.Command{
	Use:   "rallies",
	Short: "Export international rallies with pricing in cents",
	RunE: func(cmd *cobra.Command, args []string) error {
		rallies, err := roster.AllRallies(cmd.Context(), db)
		if err != nil {
			return err
		}
		return printJSON(rallies)
	},
}

var rallyRegistrationsCmd = &cobra.Command{
	Use:   "rally-registrations",
	Short: "Export rally registrations, one record per user/rally pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		regs, err := roster.AllRallyRegistrations(cmd.Context(), db)
		if err != nil {
			return err
		}
		return printJSON(regs)
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd, ralliesCmd, rallyRegistrationsCmd)
}
