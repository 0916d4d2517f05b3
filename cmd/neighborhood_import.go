package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/danielerenburg1/address-checker/internal/checker"
	"github.com/danielerenburg1/address-checker/internal/geoio"
	"github.com/danielerenburg1/address-checker/internal/neighborhood"
)

var (
	importPath      string
	importNameField string
)

var neighborhoodImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import neighborhoods from GeoJSON, YAML or a shapefile",
	Long:  "Reads polygon boundaries from the given file and stores each as a neighborhood. The format is taken from the file extension (.geojson/.json, .yaml/.yml, .shp).",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		set, err := readBoundaryFile(importPath, importNameField)
		if err != nil {
			return err
		}

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		imported := 0
		for _, n := range set {
			if _, err := env.Service.Create(ctx, checker.CreateRequest{Name: n.Name, Polygon: n.Polygon}); err != nil {
				return eris.Wrapf(err, "import %q", n.Name)
			}
			imported++
		}

		cmd.Printf("imported %d neighborhoods from %s\n", imported, importPath)
		zap.L().Info("import complete", zap.Int("imported", imported), zap.String("file", importPath))
		return nil
	},
}

func readBoundaryFile(path, nameField string) (neighborhood.Set, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrap(err, "read geojson")
		}
		return geoio.DecodeGeoJSON(data)
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrap(err, "read yaml")
		}
		return geoio.DecodeYAML(data)
	case ".shp":
		return geoio.ReadShapefile(path, nameField)
	default:
		return nil, eris.Errorf("unsupported boundary format %q", filepath.Ext(path))
	}
}

func init() {
	neighborhoodImportCmd.Flags().StringVar(&importPath, "file", "", "boundary file to import (required)")
	neighborhoodImportCmd.Flags().StringVar(&importNameField, "name-field", "NAME", "attribute holding the name (shapefile only)")
	_ = neighborhoodImportCmd.MarkFlagRequired("file")
	neighborhoodCmd.AddCommand(neighborhoodImportCmd)
}
