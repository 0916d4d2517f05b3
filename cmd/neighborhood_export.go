package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/danielerenburg1/address-checker/internal/geoio"
)

var (
	exportFormat string
	exportOut    string
)

var neighborhoodExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored neighborhoods as GeoJSON or YAML",
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

		var data []byte
		switch exportFormat {
		case "geojson":
			data, err = geoio.EncodeGeoJSON(resp.Neighborhoods)
		case "yaml":
			data, err = geoio.EncodeYAML(resp.Neighborhoods)
		default:
			return eris.Errorf("unsupported export format %q", exportFormat)
		}
		if err != nil {
			return err
		}

		if exportOut == "" {
			cmd.Print(string(data))
			return nil
		}
		if err := os.WriteFile(exportOut, data, 0o644); err != nil {
			return eris.Wrap(err, "write export")
		}
		cmd.Printf("exported %d neighborhoods to %s\n", len(resp.Neighborhoods), exportOut)
		return nil
	},
}

func init() {
	neighborhoodExportCmd.Flags().StringVar(&exportFormat, "format", "geojson", "output format: geojson or yaml")
	neighborhoodExportCmd.Flags().StringVar(&exportOut, "out", "", "output file (stdout when empty)")
	neighborhoodCmd.AddCommand(neighborhoodExportCmd)
}
