package cite

import (
	"io"
	"os"
)

type Deps struct {
	Stdout    io.Writer
	ReadFile  func(string) ([]byte, error)
	WriteFile func(string, []byte, os.FileMode) error
	MkdirAll  func(string, os.FileMode) error
}

func DefaultDeps() Deps {
	return Deps{
		Stdout:    os.Stdout,
		ReadFile:  os.ReadFile,
		WriteFile: os.WriteFile,
		MkdirAll:  os.MkdirAll,
	}
}
