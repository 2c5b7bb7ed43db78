// cmd/ddb/microsites.go
//
// Microsite subcommands: list bindings, dump one club's pages, dump one
// homepage's assets, or export every microsite in one run.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yanizio/ddb/internal/microsite"
)

var (
	flagClubNumber int64
	flagNID        uint64
)

var micrositesCmd = &cobra.Command{
	Use:   "microsites",
	Short: "Club microsite extraction",
}

var micrositesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all clubs with microsites",
	RunE: func(cmd *cobra.Command, args []string) error {
		clubs, err := resolver().Clubs(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(clubs)
	},
}

var micrositesSlugsCmd = &cobra.Command{
	Use:   "slugs",
	Short: "List URL slugs for all clubs with microsites",
	RunE: func(cmd *cobra.Command, args []string) error {
		slugs, err := resolver().Slugs(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(slugs)
	},
}

var micrositesPagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "Resolve one club's microsite pages",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := resolver()
		club, err := selectClub(cmd, r)
		if err != nil {
			return err
		}
		ms, err := r.Resolve(cmd.Context(), *club)
		if err != nil {
			return err
		}
		return printJSON(ms)
	},
}

var micrositesAssetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Resolve homepage assets (banner, logo, Facebook link)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagNID == 0 {
			return fmt.Errorf("--nid is required")
		}
		assets, err := microsite.ResolveHomepageAssets(cmd.Context(), db, flagNID)
		if err != nil {
			return err
		}
		return printJSON(assets)
	},
}

var micrositesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Resolve every club microsite with bounded concurrency",
	RunE: func(cmd *cobra.Command, args []string) error {
		sites, err := resolver().ResolveAll(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(sites)
	},
}

// selectClub finds the binding matching --club or --nid.
func selectClub(cmd *cobra.Command, r *microsite.Resolver) (*microsite.ClubMicrosite, error) {
	clubs, err := r.Clubs(cmd.Context())
	if err != nil {
		return nil, err
	}

	switch {
	case flagClubNumber != 0:
		for _, c := range clubs {
			if c.ClubNumber != nil && *c.ClubNumber == flagClubNumber {
				return &c, nil
			}
		}
		return nil, fmt.Errorf("club %d not found or has no microsite", flagClubNumber)
	case flagNID != 0:
		for _, c := range clubs {
			if c.ClubNID == flagNID {
				return &c, nil
			}
		}
		return nil, fmt.Errorf("club nid %d not found or has no microsite", flagNID)
	default:
		return nil, fmt.Errorf("either --club or --nid is required")
	}
}

func init() {
	micrositesPagesCmd.Flags().Int64Var(&flagClubNumber, "club", 0,
		"club number to resolve (regular clubs)")
	micrositesPagesCmd.Flags().Uint64Var(&flagNID, "nid", 0,
		"club node ID to resolve (intraclubs or by nid)")
	micrositesPagesCmd.MarkFlagsMutuallyExclusive("club", "nid")

	micrositesAssetsCmd.Flags().Uint64Var(&flagNID, "nid", 0,
		"homepage node ID")

	micrositesCmd.AddCommand(
		micrositesListCmd,
		micrositesSlugsCmd,
		micrositesPagesCmd,
		micrositesAssetsCmd,
		micrositesExportCmd,
	)
	rootCmd.AddCommand(micrositesCmd)
}
