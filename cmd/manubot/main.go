package main

import (
	"os"

	"github.com/manubot/manubot/internal/app"

	// Handlers linked into this build. ai-revision and ai-cite are
	// registered subcommands whose handlers are not linked.
	_ "github.com/manubot/manubot/internal/actions/browse"
	_ "github.com/manubot/manubot/internal/actions/completions"
	_ "github.com/manubot/manubot/internal/actions/config"
	_ "github.com/manubot/manubot/internal/handlers/cite"
	_ "github.com/manubot/manubot/internal/handlers/history"
	_ "github.com/manubot/manubot/internal/handlers/process"
	_ "github.com/manubot/manubot/internal/handlers/webpage"
)

func main() {
	os.Exit(app.Main())
}
