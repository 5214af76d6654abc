package commands

import (
	"sunflower-bot/lib/configutil"
	"sunflower-bot/lib/scrapers/sunflower"
	"sunflower-bot/lib/serviceutil"
	"sunflower-bot/services/harvester"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Runs one fetch, purchase and harvest pass according to config.json5.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := configutil.ReadConfig[Config]("config.json5")
		if err != nil {
			serviceutil.Fatal("read config", err)
		}

		err = harvester.Run(cmd.Context(), harvester.Options{
			FarmId:          cfg.FarmId,
			ApiKey:          cfg.ApiKey,
			ProfileDir:      cfg.ProfileDir,
			StoreCoordinate: sunflower.Coordinate{X: cfg.Store.X, Y: cfg.Store.Y},
			Inventory:       sunflower.Inventory(cfg.Inventory),
			Policy:          cfg.Policy,
			ClicksPerTree:   cfg.ClicksPerTree,
			Client:          newClient(cfg),
		})
		if err != nil {
			serviceutil.Fatal("harvest run failed", err)
		}
	},
}
