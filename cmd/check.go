package main

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/danielerenburg1/address-checker/internal/addrfile"
	"github.com/danielerenburg1/address-checker/internal/checker"
	"github.com/danielerenburg1/address-checker/internal/geometry"
	"github.com/danielerenburg1/address-checker/internal/neighborhood"
)

var (
	checkPoint string
	checkFile  string
	checkMode  string
	checkIDs   []string
)

var checkCmd = &cobra.Command{
	Use:   "check [address...]",
	Short: "Check which neighborhoods contain an address or point",
	Example: `  address-checker check "Dizengoff 100, Tel Aviv"
  address-checker check --point 32.082,34.782 --mode all
  address-checker check --file addresses.xlsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		mode, err := parseMode(checkMode)
		if err != nil {
			return err
		}

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		if checkFile != "" {
			return runBatchCheck(cmd, env, mode)
		}

		req := checker.CheckRequest{
			Address:         strings.Join(args, " "),
			NeighborhoodIDs: checkIDs,
			Mode:            mode,
		}
		if checkPoint != "" {
			c, err := geometry.ParseCoordinate(checkPoint)
			if err != nil {
				return eris.Wrapf(err, "point %q", checkPoint)
			}
			req.Point = &c
		}

		resp, err := env.Service.Check(ctx, req)
		if err != nil {
			return err
		}

		if resp.FormattedAddress != "" {
			cmd.Printf("resolved: %s (%.6f,%.6f) [%s]\n",
				resp.FormattedAddress, resp.Point.Lat, resp.Point.Lng, resp.Source)
		}
		printMatches(cmd, resp.Matches)
		return nil
	},
}

func runBatchCheck(cmd *cobra.Command, env *checkerEnv, mode neighborhood.Mode) error {
	addresses, err := addrfile.ReadAddresses(checkFile)
	if err != nil {
		return err
	}

	items, err := env.Service.CheckBatch(cmd.Context(), checker.BatchCheckRequest{
		Addresses:       addresses,
		NeighborhoodIDs: checkIDs,
		Mode:            mode,
	})
	if err != nil {
		return err
	}

	for _, item := range items {
		switch {
		case !item.Matched:
			cmd.Printf("%s\tNOT FOUND\n", item.Address)
		case len(item.Matches) == 0:
			cmd.Printf("%s\t-\n", item.Address)
		default:
			cmd.Printf("%s\t%s\n", item.Address, strings.Join(item.Matches, ", "))
		}
	}
	return nil
}

func parseMode(s string) (neighborhood.Mode, error) {
	switch s {
	case "", "first":
		return neighborhood.ModeFirst, nil
	case "all":
		return neighborhood.ModeAll, nil
	default:
		return "", eris.Errorf("unknown mode %q (want first or all)", s)
	}
}

func printMatches(cmd *cobra.Command, matches []string) {
	if len(matches) == 0 {
		cmd.Println("not inside any stored neighborhood")
		return
	}
	for _, name := range matches {
		cmd.Println(name)
	}
}

func init() {
	checkCmd.Flags().StringVar(&checkPoint, "point", "", "check a raw lat,lng instead of geocoding")
	checkCmd.Flags().StringVar(&checkFile, "file", "", "check every address in a text or xlsx file")
	checkCmd.Flags().StringVar(&checkMode, "mode", "first", "match mode: first or all")
	checkCmd.Flags().StringArrayVar(&checkIDs, "id", nil, "restrict the check to these neighborhood ids")
	rootCmd.AddCommand(checkCmd)
}
