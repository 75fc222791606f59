package process

import (
	"os"
)

type Deps struct {
	ReadDir   func(string) ([]os.DirEntry, error)
	ReadFile  func(string) ([]byte, error)
	WriteFile func(string, []byte, os.FileMode) error
	MkdirAll  func(string, os.FileMode) error
	RemoveAll func(string) error
}

func DefaultDeps() Deps {
	return Deps{
		ReadDir:   os.ReadDir,
		ReadFile:  os.ReadFile,
		WriteFile: os.WriteFile,
		MkdirAll:  os.MkdirAll,
		RemoveAll: os.RemoveAll,
	}
}
