package restyutil

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mazen160/go-random"
)

type FilesystemOutput struct {
	directory string
}

func NewFilesystemOutput(dir string) (FilesystemOutput, error) {
	err := os.MkdirAll(dir, 0777)
	if err != nil {
		return FilesystemOutput{}, err
	}
	return FilesystemOutput{directory: dir}, nil
}

// NewRunOutput creates a filesystem output under base with a random
// run id, so repeated invocations don't clobber each other's dumps.
func NewRunOutput(base string) (FilesystemOutput, error) {
	id, err := random.String(8)
	if err != nil {
		return FilesystemOutput{}, err
	}
	return NewFilesystemOutput(filepath.Join(base, id))
}

func (o FilesystemOutput) Directory() string {
	return o.directory
}

func (o FilesystemOutput) Write(id string, contents string) {
	err := os.WriteFile(filepath.Join(o.directory, id), []byte(contents), 0600)
	if err != nil {
		slog.Warn("failed to write message info file", "id", id, "err", err)
	}
}
