package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/danielerenburg1/address-checker/internal/checker"
	"github.com/danielerenburg1/address-checker/internal/geometry"
)

var (
	createName   string
	createCoords []string
)

var neighborhoodCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a neighborhood from boundary coordinates",
	Example: `  address-checker neighborhood create --name "florentin" \
    --coord 32.052,34.766 --coord 32.052,34.774 --coord 32.060,34.774 --coord 32.060,34.766`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		polygon := make(geometry.Polygon, 0, len(createCoords))
		for _, raw := range createCoords {
			c, err := geometry.ParseCoordinate(raw)
			if err != nil {
				return eris.Wrapf(err, "coordinate %q", raw)
			}
			polygon = append(polygon, c)
		}

		resp, err := env.Service.Create(ctx, checker.CreateRequest{
			Name:    createName,
			Polygon: polygon,
		})
		if err != nil {
			return err
		}

		cmd.Printf("created %q (%s) with %d vertices\n",
			resp.Neighborhood.Name, resp.Neighborhood.ID, len(resp.Neighborhood.Polygon))
		zap.L().Info("create complete", zap.String("id", resp.Neighborhood.ID))
		return nil
	},
}

func init() {
	neighborhoodCreateCmd.Flags().StringVar(&createName, "name", "", "neighborhood name (required)")
	neighborhoodCreateCmd.Flags().StringArrayVar(&createCoords, "coord", nil, "boundary vertex as lat,lng (repeat at least 3 times)")
	_ = neighborhoodCreateCmd.MarkFlagRequired("name")
	_ = neighborhoodCreateCmd.MarkFlagRequired("coord")
	neighborhoodCmd.AddCommand(neighborhoodCreateCmd)
}
