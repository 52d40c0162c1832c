package rulestore

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"legalcn/internal/apperr"
	"legalcn/internal/logging"

	"github.com/google/uuid"
)

// PIDPrefix is the URI scheme prefix for minted report identifiers.
const PIDPrefix = "legal://pid/"

// PIDRecord is one minted persistent identifier. Content is kept inline:
// risk reports are small and the registry doubles as their archive.
type PIDRecord struct {
	Handle      string         `json:"handle"`
	URI         string         `json:"uri"`
	CreatedAt   string         `json:"created_at"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	ContentHash string         `json:"content_hash"`
	ParentPID   string         `json:"parent_pid,omitempty"`
	Content     any            `json:"content"`
}

// PIDRegistry mints and resolves persistent identifiers for generated
// reports. Unlike the rule store it has writers, so it carries its own
// lock; persistence is best-effort and never fails a request.
type PIDRegistry struct {
	mu      sync.Mutex
	path    string
	records map[string]PIDRecord
	logger  *logging.AppLogger
}

// NewPIDRegistry loads the registry from path, starting empty when the
// file does not exist or cannot be parsed.
func NewPIDRegistry(path string, logger *logging.AppLogger) *PIDRegistry {
	r := &PIDRegistry{
		path:    path,
		records: make(map[string]PIDRecord),
		logger:  logger,
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Failed to read PID registry, starting empty", "path", path, "error", err)
		}
		return r
	}
	if err := json.Unmarshal(raw, &r.records); err != nil {
		logger.Warn("Failed to parse PID registry, starting empty", "path", path, "error", err)
		r.records = make(map[string]PIDRecord)
	}
	return r
}

// Mint creates a new PID for the given content and returns its URI.
func (r *PIDRegistry) Mint(content any, metadata map[string]any, parentPID string) string {
	handle := uuid.NewString()
	uri := PIDPrefix + handle

	record := PIDRecord{
		Handle:      handle,
		URI:         uri,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		Metadata:    metadata,
		ContentHash: contentHash(content),
		ParentPID:   parentPID,
		Content:     content,
	}

	r.mu.Lock()
	r.records[handle] = record
	r.persistLocked()
	r.mu.Unlock()

	r.logger.Debug("Minted PID", "uri", uri, "parent", parentPID)
	return uri
}

// Lookup resolves a PID URI to its record.
func (r *PIDRegistry) Lookup(uri string) (PIDRecord, error) {
	if !strings.HasPrefix(uri, PIDPrefix) {
		return PIDRecord{}, apperr.NotFound("不是有效的 PID: %s", uri)
	}
	handle := strings.TrimPrefix(uri, PIDPrefix)

	r.mu.Lock()
	record, ok := r.records[handle]
	r.mu.Unlock()

	if !ok {
		return PIDRecord{}, apperr.NotFound("PID 不存在: %s", uri)
	}
	return record, nil
}

// Len returns the number of minted records.
func (r *PIDRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// persistLocked writes the registry to disk. Callers hold r.mu. Failures
// are logged, never propagated: a minted PID is still valid in memory.
func (r *PIDRegistry) persistLocked() {
	if r.path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		r.logger.Warn("Failed to create PID registry directory", "error", err)
		return
	}

	raw, err := json.MarshalIndent(r.records, "", "  ")
	if err != nil {
		r.logger.Warn("Failed to encode PID registry", "error", err)
		return
	}
	if err := os.WriteFile(r.path, raw, 0o600); err != nil {
		r.logger.Warn("Failed to write PID registry", "path", r.path, "error", err)
	}
}

// contentHash returns the SHA-256 of the canonical JSON of content.
// encoding/json sorts map keys, which is canonical enough for integrity.
func contentHash(content any) string {
	raw, err := json.Marshal(content)
	if err != nil {
		raw = []byte(fmt.Sprintf("%+v", content))
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
