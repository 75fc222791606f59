package config

import (
	"io"
	"os"

	"github.com/manubot/manubot/internal/config"
)

type Deps struct {
	Stdout     io.Writer
	ReadLines  func() ([]string, error)
	WriteLines func([]string) error
	WithLock   func(func() error) error
	GetAll     func() (map[string]string, error)
}

func DefaultDeps() Deps {
	return Deps{
		Stdout:     os.Stdout,
		ReadLines:  config.ReadLines,
		WriteLines: config.WriteLines,
		WithLock:   config.WithLock,
		GetAll:     config.GetAll,
	}
}
