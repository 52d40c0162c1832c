package rulestore

import (
	"path/filepath"
	"strings"
	"testing"

	"legalcn/internal/apperr"
	"legalcn/internal/logging"
)

func newTestRegistry(t *testing.T) (*PIDRegistry, string) {
	t.Helper()

	logger, _ := logging.NewTestLogger()
	path := filepath.Join(t.TempDir(), "pids.json")
	return NewPIDRegistry(path, logger), path
}

func TestPIDMintAndLookup(t *testing.T) {
	registry, _ := newTestRegistry(t)

	content := map[string]any{"status": "发现风险", "risk_count": 1}
	metadata := map[string]any{"type": "RiskAssessmentReport"}

	uri := registry.Mint(content, metadata, "")

	if !strings.HasPrefix(uri, PIDPrefix) {
		t.Fatalf("Expected %s prefix, got %q", PIDPrefix, uri)
	}

	record, err := registry.Lookup(uri)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if record.URI != uri {
		t.Errorf("Expected URI %q, got %q", uri, record.URI)
	}
	if record.Metadata["type"] != "RiskAssessmentReport" {
		t.Errorf("Metadata not preserved: %+v", record.Metadata)
	}
	if record.ContentHash == "" {
		t.Error("Expected a content hash")
	}
	if record.CreatedAt == "" {
		t.Error("Expected a creation timestamp")
	}
}

func TestPIDMintUnique(t *testing.T) {
	registry, _ := newTestRegistry(t)

	content := map[string]any{"same": true}
	first := registry.Mint(content, nil, "")
	second := registry.Mint(content, nil, "")

	if first == second {
		t.Error("Identical content must still mint distinct handles")
	}
	if registry.Len() != 2 {
		t.Errorf("Expected 2 records, got %d", registry.Len())
	}
}

func TestPIDContentHashStable(t *testing.T) {
	registry, _ := newTestRegistry(t)

	content := map[string]any{"a": 1, "b": "二"}
	first, err := registry.Lookup(registry.Mint(content, nil, ""))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := registry.Lookup(registry.Mint(content, nil, ""))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if first.ContentHash != second.ContentHash {
		t.Errorf("Same content hashed differently: %q vs %q", first.ContentHash, second.ContentHash)
	}
}

func TestPIDParentChain(t *testing.T) {
	registry, _ := newTestRegistry(t)

	parent := registry.Mint(map[string]any{"kind": "contract"}, nil, "")
	child := registry.Mint(map[string]any{"kind": "report"}, nil, parent)

	record, err := registry.Lookup(child)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if record.ParentPID != parent {
		t.Errorf("Expected parent %q, got %q", parent, record.ParentPID)
	}
}

func TestPIDLookupErrors(t *testing.T) {
	registry, _ := newTestRegistry(t)

	tests := []struct {
		name string
		uri  string
	}{
		{"wrong scheme", "https://example.com/x"},
		{"unknown handle", PIDPrefix + "00000000-0000-0000-0000-000000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := registry.Lookup(tt.uri)
			if !apperr.IsKind(err, apperr.KindNotFound) {
				t.Errorf("Expected NOT_FOUND, got %v", err)
			}
		})
	}
}

func TestPIDPersistence(t *testing.T) {
	logger, _ := logging.NewTestLogger()
	path := filepath.Join(t.TempDir(), "pids.json")

	first := NewPIDRegistry(path, logger)
	uri := first.Mint(map[string]any{"persisted": true}, nil, "")

	reloaded := NewPIDRegistry(path, logger)
	if reloaded.Len() != 1 {
		t.Fatalf("Expected 1 record after reload, got %d", reloaded.Len())
	}
	record, err := reloaded.Lookup(uri)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if record.URI != uri {
		t.Errorf("Expected URI %q after reload, got %q", uri, record.URI)
	}
}

func TestPIDRegistryNoPath(t *testing.T) {
	logger, _ := logging.NewTestLogger()
	registry := NewPIDRegistry("", logger)

	// No persistence path: minting still works in memory.
	uri := registry.Mint(map[string]any{"ephemeral": true}, nil, "")
	if _, err := registry.Lookup(uri); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}
