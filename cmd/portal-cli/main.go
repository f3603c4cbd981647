package main

import (
	"aiubportal-backend/cmd/portal-cli/commands"
	"aiubportal-backend/lib/serviceutil"
	"aiubportal-backend/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()

	telemetry.SetupFromEnv(ctx, "portal-cli")
	telemetry.InitSlog(true)
	telemetry.InstrumentPerfStats(ctx)

	commands.ExecuteContext(ctx)
}
