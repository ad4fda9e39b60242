package runner

import (
	"os"
	"path/filepath"

	"forum-checkin/internal/components/telemetry"
)

// DebugOutput receives pages that could not be parsed.
type DebugOutput interface {
	Write(id string, contents string)
}

// FilesystemOutput writes each page to its own file in a directory.
type FilesystemOutput struct {
	directory string
	tel       telemetry.API
}

func NewFilesystemOutput(dir string, tel telemetry.API) (FilesystemOutput, error) {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return FilesystemOutput{}, err
	}
	return FilesystemOutput{
		directory: dir,
		tel:       telemetry.NewScopedAPI("debug_output", tel),
	}, nil
}

func (o FilesystemOutput) Write(id string, contents string) {
	path := filepath.Join(o.directory, filepath.Base(id))
	err := os.WriteFile(path, []byte(contents), 0o600)
	if err != nil {
		o.tel.ReportWarning("filesystem-output.write", err, path)
		return
	}
	o.tel.ReportInfo("saved debug page", path)
}
