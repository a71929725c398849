// Package history archives ingested datasets so a later run can compare
// against the previous period. The archive is a flat directory of
// timestamped copies; the newest copy is the "previous" dataset.
package history

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"defect-cost/internal/errors"
	"defect-cost/internal/logging"
)

// Archive is a directory of archived dataset copies
type Archive struct {
	dir string
}

// Entry describes one archived dataset
type Entry struct {
	Path       string
	Name       string
	ArchivedAt time.Time
}

// New opens (and creates if needed) an archive directory
func New(dir string) (*Archive, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Internal("creating history directory "+dir, err)
	}
	return &Archive{dir: dir}, nil
}

// Dir returns the archive directory
func (a *Archive) Dir() string {
	return a.dir
}

// Save copies a dataset file into the archive. The copy name carries a
// timestamp plus a short unique suffix so two ingests within the same
// second cannot collide.
func (a *Archive) Save(srcPath string) (Entry, error) {
	base := filepath.Base(srcPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	stamp := time.Now().Format("20060102_150405")
	name := fmt.Sprintf("%s_%s_%s%s", stem, stamp, uuid.NewString()[:8], ext)
	dst := filepath.Join(a.dir, name)

	if err := copyFile(srcPath, dst); err != nil {
		return Entry{}, errors.Internal("archiving dataset", err)
	}

	logging.Info("dataset archived", zap.String("source", srcPath), zap.String("archive", dst))
	return Entry{Path: dst, Name: name, ArchivedAt: time.Now()}, nil
}

// List returns archived datasets, newest first
func (a *Archive) List() ([]Entry, error) {
	dirents, err := os.ReadDir(a.dir)
	if err != nil {
		return nil, errors.Internal("reading history directory", err)
	}

	var entries []Entry
	for _, de := range dirents {
		if de.IsDir() || !isDataset(de.Name()) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Path:       filepath.Join(a.dir, de.Name()),
			Name:       de.Name(),
			ArchivedAt: info.ModTime(),
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].ArchivedAt.After(entries[j].ArchivedAt) })
	return entries, nil
}

// Latest returns the newest archived dataset, skipping the given archive
// path (typically the copy made for the current ingest). Returns a
// NOT_FOUND error when the archive holds nothing comparable; callers skip
// the comparison in that case rather than failing.
func (a *Archive) Latest(exclude string) (Entry, error) {
	entries, err := a.List()
	if err != nil {
		return Entry{}, err
	}
	for _, e := range entries {
		if e.Path != exclude {
			return e, nil
		}
	}
	return Entry{}, errors.NotFound("previous dataset", a.dir)
}

// Prune removes the oldest archives beyond keep. keep <= 0 retains all.
func (a *Archive) Prune(keep int) error {
	if keep <= 0 {
		return nil
	}
	entries, err := a.List()
	if err != nil {
		return err
	}
	for _, e := range entries[min(keep, len(entries)):] {
		if err := os.Remove(e.Path); err != nil {
			return errors.Internal("pruning archive "+e.Name, err)
		}
	}
	return nil
}

func isDataset(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm", ".xls", ".csv":
		return true
	}
	return false
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
