package commands

import (
	"sunflower-bot/lib/restyutil"
	"sunflower-bot/lib/scrapers/sunflower"
)

type CoordinateConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Config struct {
	FarmId     string           `json:"farm_id"`
	ApiKey     string           `json:"api_key"`
	ProfileDir string           `json:"profile_dir"`
	Store      CoordinateConfig `json:"store"`
	// item name -> count, e.g. { axes: 12, gold: 0 }
	Inventory     map[string]float64       `json:"inventory"`
	Policy        sunflower.PurchasePolicy `json:"policy"`
	ClicksPerTree int                      `json:"clicks_per_tree"`
}

func newClient(cfg Config) *sunflower.Client {
	client := sunflower.NewClient(sunflower.ClientOptions{
		ApiKey: cfg.ApiKey,
	})
	if verbose {
		client.SetRestyInstrumentOutput(
			restyutil.NewFilesystemOutput(".dev/resty/sunflower"),
		)
	}
	return client
}
