package plan

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	rebaseerrors "svnrebase.dev/svnrebase/internal/errors"
)

type xmlPlan struct {
	XMLName xml.Name  `xml:"plan"`
	Steps   []xmlStep `xml:"step"`
}

// xmlStep field order is the persisted order: comment, then command
type xmlStep struct {
	Comment string `xml:"comment"`
	Command string `xml:"command"`
}

// Store persists a plan as a human-readable xml document at a fixed path
type Store struct {
	path string
}

// NewStore creates a store for the plan file at path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the plan file location
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether a plan file is present
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Marshal renders p as the persisted xml document. It refuses steps that
// Unmarshal would reject or could not read back unchanged.
func Marshal(p Plan) ([]byte, error) {
	doc := xmlPlan{Steps: make([]xmlStep, 0, len(p.Steps))}
	for i, step := range p.Steps {
		if err := validateStep(i, step); err != nil {
			return nil, err
		}
		doc.Steps = append(doc.Steps, xmlStep(step))
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	buf.Write(body)
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

func validateStep(i int, step Step) error {
	if strings.TrimSpace(step.Command) == "" {
		return fmt.Errorf("step %d has no command", i+1)
	}
	if !isXMLText(step.Comment) {
		return fmt.Errorf("step %d comment contains characters a plan file cannot hold", i+1)
	}
	if !isXMLText(step.Command) {
		return fmt.Errorf("step %d command contains characters a plan file cannot hold", i+1)
	}
	return nil
}

// isXMLText reports whether s is valid UTF-8 made only of XML 1.0 characters
func isXMLText(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
		case r >= 0x20 && r <= 0xD7FF:
		case r >= 0xE000 && r <= 0xFFFD:
		case r >= 0x10000 && r <= 0x10FFFF:
		default:
			return false
		}
	}
	return true
}

// Unmarshal decodes a persisted xml document
func Unmarshal(data []byte) (Plan, error) {
	var doc xmlPlan
	if err := xml.Unmarshal(data, &doc); err != nil {
		return Plan{}, err
	}

	steps := make([]Step, 0, len(doc.Steps))
	for i, s := range doc.Steps {
		if strings.TrimSpace(s.Command) == "" {
			return Plan{}, fmt.Errorf("step %d has no command", i+1)
		}
		steps = append(steps, Step(s))
	}
	return Plan{Steps: steps}, nil
}

// Save replaces the plan file with p. The document is written to a temporary
// file next to the target and renamed over it, so an interrupted save leaves
// either the old or the new plan, never a mix.
func (s *Store) Save(p Plan) error {
	data, err := Marshal(p)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary plan file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write plan: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to sync plan: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close plan: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		cleanup()
		return fmt.Errorf("failed to set plan permissions: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		cleanup()
		return fmt.Errorf("failed to replace plan %s: %w", s.path, err)
	}
	return nil
}

// Load reads the plan file. A missing file is ErrPlanNotFound; unreadable or
// malformed content is a QueryParseError.
func (s *Store) Load() (Plan, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Plan{}, rebaseerrors.ErrPlanNotFound
		}
		return Plan{}, rebaseerrors.NewQueryParseError("plan file "+s.path, err)
	}

	p, err := Unmarshal(data)
	if err != nil {
		return Plan{}, rebaseerrors.NewQueryParseError("plan file "+s.path, err)
	}
	return p, nil
}

// Remove deletes the plan file. Removing a missing plan is not an error.
func (s *Store) Remove() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove plan %s: %w", s.path, err)
	}
	return nil
}
