package file

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jsphweid/fingerchart/layout"
)

// AtomicFile collects output in a temporary file next to the target and
// moves it into place on Commit. Readers never see a partial file.
type AtomicFile struct {
	*os.File
	path string
	done bool
}

func CreateAtomic(path string) (*AtomicFile, error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp := filepath.Join(dir, "."+base+"."+uuid.New().String()+".tmp")
	f, err := os.OpenFile(tmp, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, err
	}
	return &AtomicFile{File: f, path: path}, nil
}

// Path returns the final location of the file.
func (a *AtomicFile) Path() string {
	return a.path
}

// Commit flushes the data and renames the temporary file to its final
// name. After a failed Commit the temporary file is removed.
func (a *AtomicFile) Commit() error {
	if a.done {
		return os.ErrClosed
	}
	a.done = true

	tmp := a.File.Name()
	err := a.File.Sync()
	if closeErr := a.File.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmp, a.path)
	}
	if err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// Abort discards the temporary file. It does nothing after Commit, so it
// can be deferred unconditionally.
func (a *AtomicFile) Abort() {
	if a.done {
		return
	}
	a.done = true

	tmp := a.File.Name()
	a.File.Close()
	if err := os.Remove(tmp); err != nil {
		layout.Logger().Warn("could not remove temporary file", "path", tmp, "err", err)
	}
}
