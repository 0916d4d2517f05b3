package main

import (
	"github.com/spf13/cobra"
)

var neighborhoodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored neighborhoods",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		resp, err := env.Service.List(ctx)
		if err != nil {
			return err
		}

		if len(resp.Neighborhoods) == 0 {
			cmd.Println("no neighborhoods stored")
			return nil
		}
		for _, n := range resp.Neighborhoods {
			cmd.Printf("%s  %s  (%d vertices)\n", n.ID, n.Name, len(n.Polygon))
		}
		return nil
	},
}

func init() {
	neighborhoodCmd.AddCommand(neighborhoodListCmd)
}
