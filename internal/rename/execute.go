package rename

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/handiism/slide-renamer/internal/fsutil"
)

// logHeader is the column layout of the rename log.
var logHeader = []string{"Original_File", "New_File", "Timestamp"}

// ExecResult is the outcome of one executed action.
type ExecResult struct {
	Action Action
	Err    error
}

// Executor applies rename plans to the filesystem.
type Executor struct {
	// LogFilename is the CSV audit log written into the output folder,
	// e.g. "renaming_log.csv". Empty disables logging.
	LogFilename string

	// now is swappable for tests.
	now func() time.Time
}

// NewExecutor creates an Executor writing the given audit log.
func NewExecutor(logFilename string) *Executor {
	return &Executor{LogFilename: logFilename, now: time.Now}
}

// Execute applies every action in the plan.
//
// The output folder is locked for the duration of the run so two sessions
// cannot rename into it at the same time. Actions are applied in order;
// a failing action is recorded in its result and the run continues, so one
// unmovable file does not strand the rest of the batch. Successful moves
// are appended to the audit log as they happen.
//
// The returned error is non-nil only for whole-run failures: a held lock,
// a cancelled context or an unwritable log.
func (e *Executor) Execute(ctx context.Context, plan *Plan) ([]ExecResult, error) {
	if e.now == nil {
		e.now = time.Now
	}
	if err := fsutil.EnsureDir(plan.OutputDir); err != nil {
		return nil, err
	}

	lock := flock.New(filepath.Join(plan.OutputDir, ".rename.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, fmt.Errorf("output folder %s is locked by another rename session", plan.OutputDir)
	}
	defer lock.Unlock()

	log, err := e.openLog(plan.OutputDir)
	if err != nil {
		return nil, err
	}
	if log != nil {
		defer log.close()
	}

	results := make([]ExecResult, 0, len(plan.Actions))
	for _, action := range plan.Actions {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, ExecResult{Action: action, Err: e.apply(action, log)})
	}

	return results, nil
}

// apply performs one action's moves and logs the slide move.
func (e *Executor) apply(action Action, log *renameLog) error {
	if err := fsutil.MoveFile(action.SlideSource, action.SlideTarget); err != nil {
		return err
	}
	if log != nil {
		if err := log.record(action.SlideSource, action.SlideTarget, e.now()); err != nil {
			return err
		}
	}

	if action.LabelSource == "" {
		return nil
	}
	return fsutil.MoveFile(action.LabelSource, action.LabelTarget)
}

// renameLog appends to the CSV audit log, one row per moved slide.
type renameLog struct {
	file   *os.File
	writer *csv.Writer
}

// openLog opens the audit log for appending, writing the header when the
// file is new. Returns nil when logging is disabled.
func (e *Executor) openLog(dir string) (*renameLog, error) {
	if e.LogFilename == "" {
		return nil, nil
	}

	path := filepath.Join(dir, e.LogFilename)
	info, statErr := os.Stat(path)
	fresh := statErr != nil || info.Size() == 0

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	log := &renameLog{file: file, writer: csv.NewWriter(file)}
	if fresh {
		if err := log.writer.Write(logHeader); err != nil {
			file.Close()
			return nil, err
		}
	}
	return log, nil
}

func (l *renameLog) record(original, renamed string, at time.Time) error {
	row := []string{
		filepath.Base(original),
		filepath.Base(renamed),
		at.Format("2006-01-02 15:04:05"),
	}
	if err := l.writer.Write(row); err != nil {
		return err
	}
	l.writer.Flush()
	return l.writer.Error()
}

func (l *renameLog) close() error {
	l.writer.Flush()
	if err := l.writer.Error(); err != nil {
		l.file.Close()
		return err
	}
	return l.file.Close()
}
