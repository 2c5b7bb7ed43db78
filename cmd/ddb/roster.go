// cmd/ddb/roster.go
//
// Flat roster subcommands: users, avatars, and BRN numbers.  These are
// single-join exports with none of the microsite machinery.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yanizio/ddb/internal/roster"
)

var (
	flagUserUID   uint64
	flagUserEmail string
	flagAllUsers  bool
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Export Drupal user accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		switch {
		case flagAllUsers:
			users, err := roster.AllUsers(ctx, db)
			if err != nil {
				return err
			}
			return printJSON(users)
		case flagUserUID != 0:
			u, err := roster.UserByUID(ctx, db, flagUserUID)
			if err != nil {
				return err
			}
			if u == nil {
				return fmt.Errorf("user %d not found", flagUserUID)
			}
			return printJSON(u)
		case flagUserEmail != "":
			u, err := roster.UserByEmail(ctx, db, flagUserEmail)
			if err != nil {
				return err
			}
			if u == nil {
				return fmt.Errorf("user %q not found", flagUserEmail)
			}
			return printJSON(u)
		default:
			return fmt.Errorf("one of --uid, --email, or --all is required")
		}
	},
}

var avatarsCmd = &cobra.Command{
	Use:   "avatars",
	Short: "Export users with custom profile pictures",
	RunE: func(cmd *cobra.Command, args []string) error {
		avatars, err := roster.Avatars(cmd.Context(), db)
		if err != nil {
			return err
		}
		return printJSON(avatars)
	},
}

var brnsCmd = &cobra.Command{
	Use:   "brns",
	Short: "Export BRN numbers, one record per user/number pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		brns, err := roster.AllBRNs(cmd.Context(), db)
		if err != nil {
			return err
		}
		return printJSON(brns)
	},
}

func init() {
	usersCmd.Flags().Uint64Var(&flagUserUID, "uid", 0, "fetch one user by uid")
	usersCmd.Flags().StringVar(&flagUserEmail, "email", "", "fetch one user by mail address")
	usersCmd.Flags().BoolVar(&flagAllUsers, "all", false, "fetch every user with a mail address")
	usersCmd.MarkFlagsMutuallyExclusive("uid", "email", "all")

	rootCmd.AddCommand(usersCmd, avatarsCmd, brnsCmd)
}
