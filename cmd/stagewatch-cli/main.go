package main

import (
	"context"

	"stagewatch-backend/cmd/stagewatch-cli/commands"
	"stagewatch-backend/lib/telemetry"
)

func main() {
	telemetry.SetupFromEnv(context.Background(), "stagewatch-cli")
	telemetry.InitSlog(true)
	commands.ExecuteContext(context.Background())
}
