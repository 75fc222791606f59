package history

import (
	"io"
	"os"
	"time"

	"github.com/manubot/manubot/internal/config"
	"github.com/manubot/manubot/internal/format"
	"github.com/manubot/manubot/internal/store"
)

type Deps struct {
	Stdout    io.Writer
	OpenStore func() (*store.Store, error)
	Layout    func() format.Layout
	Now       func() time.Time
}

func DefaultDeps() Deps {
	return Deps{
		Stdout:    os.Stdout,
		OpenStore: openConfiguredStore,
		Layout:    format.Configured,
		Now:       time.Now,
	}
}

func openConfiguredStore() (*store.Store, error) {
	path, _ := config.Get("history_path")
	return store.New(path)
}
