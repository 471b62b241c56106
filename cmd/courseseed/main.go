package main

import (
	"courseplan-backend/cmd/courseseed/commands"
	"courseplan-backend/lib/serviceutil"
	"courseplan-backend/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()
	telemetry.SetupFromEnv(ctx, "courseseed")
	telemetry.InitSlog(true)
	telemetry.InstrumentPerfStats(ctx)
	commands.ExecuteContext(ctx)
}
