// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/MKhiriev/go-directory-bot/internal/logger"
)

// accessRegistry is the default implementation of [AccessRegistry]: a JSON
// array of identity strings on disk, mirrored into memory at startup.
//
// Writes are serialized with a mutex. The event loop is effectively
// single-writer, but nothing in this package depends on that: two racing
// authorizations never produce a lost update.
type accessRegistry struct {
	path   string
	logger *logger.Logger

	mu      sync.RWMutex
	ordered []string            // insertion order, persisted as-is
	members map[string]struct{} // membership index over ordered
}

// NewAccessRegistry constructs an [AccessRegistry] backed by the JSON file
// at path and loads the persisted identities into memory.
//
// A missing file is treated as an empty registry and created immediately so
// operators see the artifact from the first run. A malformed file is a
// startup error: silently discarding previously granted authorizations
// would force every user through the access-code prompt again.
func NewAccessRegistry(path string, logger *logger.Logger) (AccessRegistry, error) {
	logger.Debug().Str("path", path).Msg("creating access registry")

	r := &accessRegistry{
		path:    path,
		logger:  logger,
		members: make(map[string]struct{}),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read registry file: %w", err)
		}
		if err := r.persist(); err != nil {
			// Not fatal: the registry still works from memory.
			logger.Warn().Err(err).Str("path", path).Msg("could not create registry file")
		}
		return r, nil
	}

	var identities []string
	if err := json.Unmarshal(raw, &identities); err != nil {
		return nil, fmt.Errorf("unmarshal registry file: %w", err)
	}

	for _, identity := range identities {
		identity = normalizeIdentity(identity)
		if identity == "" {
			continue
		}
		if _, ok := r.members[identity]; ok {
			continue
		}
		r.ordered = append(r.ordered, identity)
		r.members[identity] = struct{}{}
	}

	return r, nil
}

// IsAuthorized implements [AccessRegistry].
func (r *accessRegistry) IsAuthorized(identity string) bool {
	identity = normalizeIdentity(identity)

	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.members[identity]
	return ok
}

// Authorize implements [AccessRegistry]. The in-memory set is updated first;
// a failed write of the backing file degrades durability only and is
// reported as [ErrRegistryPersist].
func (r *accessRegistry) Authorize(ctx context.Context, identity string) error {
	log := logger.FromContext(ctx)
	identity = normalizeIdentity(identity)
	if identity == "" {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[identity]; ok {
		return nil // idempotent: no write for an already-present identity
	}

	r.ordered = append(r.ordered, identity)
	r.members[identity] = struct{}{}

	if err := r.persist(); err != nil {
		log.Err(err).Str("identity", identity).Msg("registry write failed, serving from memory")
		return fmt.Errorf("%w: %v", ErrRegistryPersist, err)
	}

	return nil
}

// Size implements [AccessRegistry].
func (r *accessRegistry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ordered)
}

// persist rewrites the backing file from the in-memory ordered list.
// Callers must hold the write lock (or be the constructor).
func (r *accessRegistry) persist() error {
	identities := r.ordered
	if identities == nil {
		identities = []string{}
	}

	raw, err := json.MarshalIndent(identities, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal registry: %w", err)
	}

	if err := os.WriteFile(r.path, raw, 0o600); err != nil {
		return fmt.Errorf("write registry file: %w", err)
	}

	return nil
}

// normalizeIdentity brings chat identities of any source form (numeric
// transport IDs, padded strings) to the canonical trimmed string form used
// for both comparison and storage.
func normalizeIdentity(identity string) string {
	return strings.TrimSpace(identity)
}
