package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "detailing-booking",
	Short: "Booking service for car detailing shops",
	Long: `Multi-tenant booking service for car detailing shops.

Available commands:
  serve          - Start the HTTP API
  migrate        - Apply embedded SQL migrations
  import-catalog - Create a shop with schedule and catalog from a TOML file
  slots          - Print available slots of a shop for a date`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.toml", "Path to the TOML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(importCatalogCmd)
	rootCmd.AddCommand(slotsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
