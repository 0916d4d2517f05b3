package main

import (
	"github.com/spf13/cobra"
)

var neighborhoodCmd = &cobra.Command{
	Use:     "neighborhood",
	Aliases: []string{"nbhd"},
	Short:   "Manage neighborhood polygons",
}

func init() {
	rootCmd.AddCommand(neighborhoodCmd)
}
