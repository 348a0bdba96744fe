package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/armature-labs/armature/internal/userdata"
)

// ErrNotFound is returned by Get when no record exists for a hash.
var ErrNotFound = errors.New("log not found")

// Status is the recorded outcome of an instruction attempt.
type Status string

const (
	StatusSuccess Status = "success"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// ConditionResult is one entry of the persisted guard trace.
type ConditionResult struct {
	Passed bool   `json:"passed"`
	Reason string `json:"reason"`
}

// Log is the audit record for one instruction attempt. The hash is derived
// from (project, module, index, timestamp), so two attempts at the same
// index at different times never collide; near-simultaneous writes could,
// which is acceptable for an audit trail.
type Log struct {
	Hash             string            `json:"hash"`
	Timestamp        time.Time         `json:"timestamp"`
	ProjectName      string            `json:"project_name"`
	ModuleName       string            `json:"module_name"`
	InstructionIndex int               `json:"instruction_index"`
	Instruction      json.RawMessage   `json:"instruction"`
	Status           Status            `json:"status"`
	Error            string            `json:"error,omitempty"`
	ConditionResults []ConditionResult `json:"condition_results,omitempty"`
}

// NewLog creates a record stamped with the current time and its derived hash.
func NewLog(project, module string, index int, snapshot json.RawMessage, status Status) *Log {
	now := time.Now()
	return &Log{
		Hash:             hashLog(project, module, index, now),
		Timestamp:        now,
		ProjectName:      project,
		ModuleName:       module,
		InstructionIndex: index,
		Instruction:      snapshot,
		Status:           status,
	}
}

// hashLog derives a short deterministic identifier for the record.
func hashLog(project, module string, index int, ts time.Time) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%d|%d", project, module, index, ts.UnixNano()))
	return hex.EncodeToString(sum[:])[:16]
}

// Store persists logs as <hash>.json files in a single directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created lazily
// on first save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultStore returns a store rooted at the user's logs directory
// (~/.armature/logs, overridable via ARMATURE_LOGS).
func DefaultStore() (*Store, error) {
	dir, err := userdata.LogsDir()
	if err != nil {
		return nil, err
	}
	return NewStore(dir), nil
}

// Save writes the record to disk. Records are write-once: saving under an
// existing hash overwrites, but callers never reuse hashes in practice.
func (s *Store) Save(l *Log) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("creating logs directory %s: %w", s.dir, err)
	}

	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling log %s: %w", l.Hash, err)
	}

	path := filepath.Join(s.dir, l.Hash+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing log %s: %w", path, err)
	}
	return nil
}

// Get retrieves a record by hash. Returns ErrNotFound if absent.
func (s *Store) Get(hash string) (*Log, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, hash+".json"))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading log %s: %w", hash, err)
	}

	var l Log
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parsing log %s: %w", hash, err)
	}
	return &l, nil
}

// Filter narrows a List call. Zero values match everything.
type Filter struct {
	Status          Status
	ProjectContains string
	ModuleContains  string
}

// List returns matching records ordered newest-first. A missing logs
// directory yields an empty list, not an error.
func (s *Store) List(f Filter) ([]*Log, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading logs directory %s: %w", s.dir, err)
	}

	var logs []*Log
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		l, err := s.Get(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			continue // unreadable record, skip rather than fail the listing
		}
		if f.Status != "" && l.Status != f.Status {
			continue
		}
		if f.ProjectContains != "" && !strings.Contains(l.ProjectName, f.ProjectContains) {
			continue
		}
		if f.ModuleContains != "" && !strings.Contains(l.ModuleName, f.ModuleContains) {
			continue
		}
		logs = append(logs, l)
	}

	sort.Slice(logs, func(i, j int) bool {
		return logs[i].Timestamp.After(logs[j].Timestamp)
	})
	return logs, nil
}

// Prune removes records older than maxAgeDays and returns how many were
// removed.
func (s *Store) Prune(maxAgeDays int) (int, error) {
	logs, err := s.List(Filter{})
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().AddDate(0, 0, -maxAgeDays)
	removed := 0
	for _, l := range logs {
		if l.Timestamp.After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, l.Hash+".json")); err != nil {
			return removed, fmt.Errorf("removing log %s: %w", l.Hash, err)
		}
		removed++
	}
	return removed, nil
}
