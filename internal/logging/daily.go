package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/juju/clock"
)

const (
	dailyFileLayout = "2006-01-02"
	dailyFileSuffix = ".log"
)

type osProvider interface {
	MkdirAll(path string, perm os.FileMode) error
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
}

// DailyFile is an append-only [io.Writer] writing into one file per day, named
// after the local date. The file is switched on the first write of a new day.
type DailyFile struct {
	sync.Mutex
	dir       string
	osHandler osProvider
	clock     clock.Clock
	file      *os.File
	date      string
}

// NewDailyFile returns a pointer to a new [DailyFile] in dir. The directory
// is created if needed and the file for the current day is opened, so that
// an unwritable log location is reported before any work is done.
func NewDailyFile(dir string, osHandler osProvider, clk clock.Clock) (*DailyFile, error) {
	d := &DailyFile{
		dir:       dir,
		osHandler: osHandler,
		clock:     clk,
	}

	if err := osHandler.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("(log-daily) failed to create log dir (%s): %w", dir, err)
	}

	d.Lock()
	defer d.Unlock()

	if err := d.rotate(); err != nil {
		return nil, err
	}

	return d, nil
}

// Path returns the path of the file currently written to.
func (d *DailyFile) Path() string {
	d.Lock()
	defer d.Unlock()

	return filepath.Join(d.dir, d.date+dailyFileSuffix)
}

func (d *DailyFile) Write(p []byte) (int, error) {
	d.Lock()
	defer d.Unlock()

	if d.file == nil {
		return 0, fmt.Errorf("(log-daily) %w", os.ErrClosed)
	}

	if d.clock.Now().Format(dailyFileLayout) != d.date {
		if err := d.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := d.file.Write(p)
	if err != nil {
		return n, fmt.Errorf("(log-daily) failed to write log file: %w", err)
	}

	return n, nil
}

// Close closes the current file.
func (d *DailyFile) Close() error {
	d.Lock()
	defer d.Unlock()

	if d.file == nil {
		return nil
	}

	err := d.file.Close()
	d.file = nil

	return err
}

// rotate must be called with the lock held.
func (d *DailyFile) rotate() error {
	date := d.clock.Now().Format(dailyFileLayout)
	path := filepath.Join(d.dir, date+dailyFileSuffix)

	file, err := d.osHandler.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("(log-daily) failed to open log file (%s): %w", path, err)
	}

	if d.file != nil {
		d.file.Close()
	}

	d.file = file
	d.date = date

	return nil
}
