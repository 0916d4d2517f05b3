package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/danielerenburg1/address-checker/internal/checker"
)

var (
	deleteID   string
	deleteName string
)

var neighborhoodDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a neighborhood by id or name",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if deleteID == "" && deleteName == "" {
			return eris.New("either --id or --name is required")
		}

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		resp, err := env.Service.Delete(ctx, checker.DeleteRequest{ID: deleteID, Name: deleteName})
		if err != nil {
			return err
		}

		cmd.Printf("deleted %q (%s)\n", resp.Deleted.Name, resp.Deleted.ID)
		return nil
	},
}

func init() {
	neighborhoodDeleteCmd.Flags().StringVar(&deleteID, "id", "", "neighborhood id")
	neighborhoodDeleteCmd.Flags().StringVar(&deleteName, "name", "", "neighborhood name (must be unique)")
	neighborhoodCmd.AddCommand(neighborhoodDeleteCmd)
}
