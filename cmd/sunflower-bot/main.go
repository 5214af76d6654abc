package main

import (
	"sunflower-bot/cmd/sunflower-bot/commands"
	"sunflower-bot/lib/serviceutil"
	"sunflower-bot/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()
	telemetry.SetupFromEnv(ctx, "sunflower-bot")
	telemetry.InstrumentPerfStats(ctx)
	commands.ExecuteContext(ctx)
}
