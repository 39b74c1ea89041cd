package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/katyrose28/workoutsched/internal/telemetry/tracing"
	"github.com/katyrose28/workoutsched/pkg"
)

var _ Store = (*FileStore)(nil)

// FileStore keeps one file per document: {dir}/{owner}_{doc}.json, and the
// shared plans in {dir}/shared_plans.json.
type FileStore struct {
	mutex sync.Mutex
	dir   string
}

func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("file store: empty data dir")
	}
	if err := pkg.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("file store: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// path resolves the document file and refuses owners that would land
// outside the data dir.
func (s *FileStore) path(owner string, doc DocType) (string, error) {
	if doc == DocSharedPlans {
		return filepath.Join(s.dir, string(DocSharedPlans)+".json"), nil
	}
	if owner == "" || strings.ContainsAny(owner, `/\`) || strings.HasPrefix(owner, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidOwner, owner)
	}
	p := filepath.Join(s.dir, fmt.Sprintf("%s_%s.json", owner, doc))
	if rel, err := filepath.Rel(s.dir, p); err != nil || rel != filepath.Base(p) {
		return "", fmt.Errorf("%w: %q", ErrInvalidOwner, owner)
	}
	return p, nil
}

func (s *FileStore) Load(ctx context.Context, owner string, doc DocType) (_ []byte, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "store.file.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	p, err := s.path(owner, doc)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", doc, err)
	}
	return data, nil
}

// Save writes to a temp file first and renames it over the target, so a
// crash never leaves a half-written document behind.
func (s *FileStore) Save(ctx context.Context, owner string, doc DocType, data []byte) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "store.file.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	target, err := s.path(owner, doc)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	tmp, err := os.CreateTemp(s.dir, ".tmp-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func (s *FileStore) Owners(ctx context.Context, doc DocType) (_ []string, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "store.file.owners")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if doc == DocSharedPlans {
		return []string{SharedOwner}, nil
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}

	suffix := fmt.Sprintf("_%s.json", doc)
	var owners []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, suffix) {
			continue
		}
		if owner := strings.TrimSuffix(name, suffix); owner != "" {
			owners = append(owners, owner)
		}
	}
	sort.Strings(owners)
	return owners, nil
}

func (s *FileStore) Close() error {
	return nil
}
