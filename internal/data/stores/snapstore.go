// Package stores persists snapshot metadata and blob content.
//
// Layout under the data directory:
//
//	snapshots.json   metadata index (name, cmd, description, tags,
//	                 exit code, blob names)
//	objects/         one file per stored stream, <name>.out / <name>.err
//
// The index never carries reconciliation status; status is recomputed
// each session.
package stores

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/colonyops/parrot/internal/core/snapshot"
)

const (
	indexFileName = "snapshots.json"
	objectsDir    = "objects"
)

// indexFile is the root JSON structure stored on disk.
type indexFile struct {
	Snapshots []*snapshot.Snapshot `json:"snapshots"`
}

// SnapshotStore owns the on-disk snapshot collection. After Load, the
// returned handles are shared with the store: PersistMetadata writes
// the current in-memory state of every loaded snapshot.
type SnapshotStore struct {
	dataDir string
	mu      sync.Mutex
	snaps   []*snapshot.Snapshot
	loaded  bool
}

// NewSnapshotStore creates a store rooted at the given data directory.
func NewSnapshotStore(dataDir string) *SnapshotStore {
	return &SnapshotStore{dataDir: dataDir}
}

func (s *SnapshotStore) indexPath() string {
	return filepath.Join(s.dataDir, indexFileName)
}

func (s *SnapshotStore) objectPath(name string) string {
	return filepath.Join(s.dataDir, objectsDir, name)
}

// Init performs first-time setup: the directory layout and an empty
// index. Returns ErrAlreadyInitialized when the index already exists.
func (s *SnapshotStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.indexPath()); err == nil {
		return ErrAlreadyInitialized
	}

	if err := os.MkdirAll(filepath.Join(s.dataDir, objectsDir), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	s.snaps = nil
	s.loaded = true
	return s.saveIndex()
}

// Load reads the index and every blob body from disk. Returns
// ErrNotInitialized when the index does not exist.
func (s *SnapshotStore) Load() ([]*snapshot.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.indexPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotInitialized
		}
		return nil, fmt.Errorf("read index: %w", err)
	}

	var file indexFile
	if len(data) > 0 {
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse index: %w", err)
		}
	}

	for _, snap := range file.Snapshots {
		if err := s.loadBlob(snap.Stdout); err != nil {
			return nil, fmt.Errorf("snapshot %q: %w", snap.Name, err)
		}
		if err := s.loadBlob(snap.Stderr); err != nil {
			return nil, fmt.Errorf("snapshot %q: %w", snap.Name, err)
		}
		snap.Status = snapshot.StatusUnknown
	}

	s.snaps = file.Snapshots
	s.loaded = true
	return s.snaps, nil
}

func (s *SnapshotStore) loadBlob(b *snapshot.Blob) error {
	if b == nil {
		return nil
	}
	body, err := os.ReadFile(s.objectPath(b.FileName()))
	if err != nil {
		return fmt.Errorf("read blob %s: %w", b.FileName(), err)
	}
	b.Body = body
	return nil
}

// Add appends a new snapshot to the collection and persists both its
// content and the index. The name must be unique.
func (s *SnapshotStore) Add(snap *snapshot.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return ErrNotInitialized
	}

	for _, existing := range s.snaps {
		if existing.Name == snap.Name {
			return fmt.Errorf("%w: %q", ErrDuplicate, snap.Name)
		}
	}

	if err := s.writeBlobs(snap); err != nil {
		return err
	}

	s.snaps = append(s.snaps, snap)
	return s.saveIndex()
}

// PersistContent rewrites the blob files of one snapshot, removing
// files for streams that became absent.
func (s *SnapshotStore) PersistContent(snap *snapshot.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return ErrNotInitialized
	}
	return s.writeBlobs(snap)
}

// PersistMetadata atomically rewrites the index from the in-memory
// collection.
func (s *SnapshotStore) PersistMetadata() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return ErrNotInitialized
	}
	return s.saveIndex()
}

// Get returns the loaded snapshot with the given name.
func (s *SnapshotStore) Get(name string) (*snapshot.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, snap := range s.snaps {
		if snap.Name == name {
			return snap, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// writeBlobs writes the snapshot's present streams and deletes files
// for absent ones.
func (s *SnapshotStore) writeBlobs(snap *snapshot.Snapshot) error {
	for ext, blob := range map[string]*snapshot.Blob{".out": snap.Stdout, ".err": snap.Stderr} {
		path := s.objectPath(snap.Name + ext)
		if blob == nil {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("remove blob %s: %w", path, err)
			}
			continue
		}
		if err := os.WriteFile(s.objectPath(blob.FileName()), blob.Body, 0o644); err != nil {
			return fmt.Errorf("write blob %s: %w", blob.FileName(), err)
		}
	}
	return nil
}

// saveIndex writes the index to disk atomically.
func (s *SnapshotStore) saveIndex() error {
	data, err := json.MarshalIndent(indexFile{Snapshots: s.snaps}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}

	tmp := s.indexPath() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}

	return os.Rename(tmp, s.indexPath())
}
