package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/Odokodan153/Chimera-Nexus/internal/htc"
	"github.com/Odokodan153/Chimera-Nexus/internal/store"
)

// openStore opens the SQLite store behind a command's --db flag.
func openStore(path string) (*store.SqlStore, error) {
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// resolveChain loads one assessment version: latest when version is 0.
func resolveChain(st store.Store, rawID string, version int) (*htc.Assessment, error) {
	id, err := lookupID(st, rawID)
	if err != nil {
		return nil, err
	}
	if version > 0 {
		return st.Get(id, version)
	}
	return st.Latest(id)
}

// lookupID resolves a full UUID directly and anything shorter as an id
// prefix against the stored assessments, so the short ids the commands
// print are accepted back.
func lookupID(st store.Store, rawID string) (uuid.UUID, error) {
	r := strings.ToLower(strings.TrimSpace(rawID))
	if id, err := uuid.Parse(r); err == nil {
		return id, nil
	}
	if r == "" {
		return uuid.Nil, fmt.Errorf("assessment id is required")
	}
	metas, err := st.List()
	if err != nil {
		return uuid.Nil, err
	}
	var matches []store.Meta
	for _, m := range metas {
		if strings.HasPrefix(m.ID.String(), r) {
			matches = append(matches, m)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0].ID, nil
	case 0:
		return uuid.Nil, fmt.Errorf("no assessment matching %q (try 'nexus list')", rawID)
	default:
		return uuid.Nil, fmt.Errorf("assessment id %q is ambiguous (%d matches)", rawID, len(matches))
	}
}

// resolveHypothesis finds a hypothesis by position ("H1", "1"), full
// UUID, or unambiguous id prefix. Positions are 1-based as shown by
// inspect and in reports.
func resolveHypothesis(a *htc.Assessment, ref string) (htc.Hypothesis, error) {
	var zero htc.Hypothesis
	r := strings.TrimSpace(ref)
	if r == "" {
		return zero, fmt.Errorf("hypothesis reference is required (position like H1, or an id)")
	}

	numeric := strings.TrimPrefix(strings.TrimPrefix(r, "H"), "h")
	if n, err := strconv.Atoi(numeric); err == nil {
		if n >= 1 && n <= len(a.Hypotheses) {
			return a.Hypotheses[n-1], nil
		}
		// An explicit H marks a position; bare digits out of range may
		// still be an id prefix.
		if numeric != r {
			return zero, fmt.Errorf("hypothesis %s out of range (chain has %d)", ref, len(a.Hypotheses))
		}
	}

	if id, err := uuid.Parse(r); err == nil {
		h, err := a.HypothesisByID(id)
		if err != nil {
			return zero, err
		}
		return *h, nil
	}

	prefix := strings.ToLower(r)
	var matches []htc.Hypothesis
	for _, h := range a.Hypotheses {
		if strings.HasPrefix(h.ID.String(), prefix) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return zero, fmt.Errorf("no hypothesis matching %q in version %d", ref, a.Version)
	default:
		return zero, fmt.Errorf("hypothesis reference %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// decodeFile reads a YAML or JSON file into v. Format is chosen by
// extension, falling back to content sniffing for bare filenames.
func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	}
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// safeFileName turns an assessment name into an artifact filename stem.
func safeFileName(name, shortID string) string {
	stem := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
	var b strings.Builder
	for _, r := range stem {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return shortID
	}
	return b.String() + "_" + shortID
}
