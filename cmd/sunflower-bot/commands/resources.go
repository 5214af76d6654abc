package commands

import (
	"fmt"
	"os"
	"strings"

	"sunflower-bot/lib/configutil"
	"sunflower-bot/lib/scrapers/sunflower"
	"sunflower-bot/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(resourcesCmd)
}

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "Fetches the farm and prints classified resource groups. No browser involved.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := configutil.ReadConfig[Config]("config.json5")
		if err != nil {
			serviceutil.Fatal("read config", err)
		}

		farmData, err := newClient(cfg).FetchFarm(cmd.Context(), cfg.FarmId)
		if err != nil {
			serviceutil.Fatal("fetch farm", err)
		}
		groups := sunflower.ParseResourceGroups(farmData)

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Resource", "Count", "Coordinates"})

		for _, group := range groups {
			coords := make([]string, 0, len(group.Coordinates))
			for _, c := range group.Coordinates {
				coords = append(coords, fmt.Sprintf("(%g, %g)", c.X, c.Y))
			}
			t.AppendRow(table.Row{
				string(group.Type),
				len(group.Coordinates),
				strings.Join(coords, " "),
			})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
