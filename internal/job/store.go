package job

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store persists job records as one JSON file per job under the state
// directory, alongside the transcripts the jobs write to.
type Store struct {
	base string
}

// NewStore creates a store rooted at the given state directory, defaulting
// to ~/.offshoot.
func NewStore(base string) (*Store, error) {
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		base = filepath.Join(home, ".offshoot")
	}

	for _, dir := range []string{filepath.Join(base, "jobs"), filepath.Join(base, "transcripts")} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create state dir: %w", err)
		}
	}

	return &Store{base: base}, nil
}

// Dir returns the state directory the store is rooted at.
func (s *Store) Dir() string {
	return s.base
}

// InputPath returns where a job's prompt payload lives.
func (s *Store) InputPath(id string) string {
	return filepath.Join(s.base, "transcripts", id+".in")
}

// OutputPath returns where a job's transcript lives.
func (s *Store) OutputPath(id string) string {
	return filepath.Join(s.base, "transcripts", id+".jsonl")
}

func (s *Store) jobPath(id string) string {
	return filepath.Join(s.base, "jobs", id+".json")
}

// Save persists a job record to disk.
func (s *Store) Save(j *Job) error {
	data, err := json.MarshalIndent(j, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}

	if err := os.WriteFile(s.jobPath(j.ID), data, 0644); err != nil {
		return fmt.Errorf("write job: %w", err)
	}
	return nil
}

// Load reads a job record by ID.
func (s *Store) Load(id string) (*Job, error) {
	data, err := os.ReadFile(s.jobPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("job '%s' not found", id)
		}
		return nil, fmt.Errorf("read job: %w", err)
	}

	var j Job
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("parse job: %w", err)
	}
	return &j, nil
}

// List returns all stored jobs, newest first.
func (s *Store) List() ([]*Job, error) {
	entries, err := os.ReadDir(filepath.Join(s.base, "jobs"))
	if err != nil {
		if os.IsNotExist(err) {
			return []*Job{}, nil
		}
		return nil, fmt.Errorf("read jobs dir: %w", err)
	}

	var jobs []*Job
	for _, entry := range entries {
		id, ok := strings.CutSuffix(entry.Name(), ".json")
		if !ok || entry.IsDir() {
			continue
		}

		j, err := s.Load(id)
		if err != nil {
			// Skip corrupt records
			continue
		}
		jobs = append(jobs, j)
	}

	sort.Slice(jobs, func(i, k int) bool {
		return jobs[i].StartedAt.After(jobs[k].StartedAt)
	})

	return jobs, nil
}

// Latest returns the most recently started job.
func (s *Store) Latest() (*Job, error) {
	jobs, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("no jobs recorded")
	}
	return jobs[0], nil
}

// Delete removes a job record. The transcript is left in place.
func (s *Store) Delete(id string) error {
	if err := os.Remove(s.jobPath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove job: %w", err)
	}
	return nil
}
