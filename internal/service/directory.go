// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/MKhiriev/go-directory-bot/internal/crypto"
	"github.com/MKhiriev/go-directory-bot/internal/logger"
	"github.com/MKhiriev/go-directory-bot/internal/store"
	"github.com/MKhiriev/go-directory-bot/models"
	"github.com/sahilm/fuzzy"
)

// Relative field weights of the fuzzy pass. Name is the primary identity
// field, manager is a common secondary search target, code the least.
const (
	nameWeight    = 3
	managerWeight = 2
	codeWeight    = 1
)

// scoreFloor rejects weighted fuzzy totals at or below this value. Scores
// below zero are dominated by sahilm's unmatched-character penalties, i.e.
// bag-of-characters noise; genuine word-boundary matches score well above.
//
// sahilm matches subsequences: omissions ("acm") and partial words are
// tolerated, substitutions ("acmy") are not and fall through to the
// substring pass, which only helps when the typo-free part is contiguous.
const scoreFloor = 0

// directoryIndex is one immutable generation of the searchable directory.
// A new generation is built on every reload and published wholesale; the
// fields are never mutated after construction.
type directoryIndex struct {
	records  []models.ClientRecord
	names    []string
	managers []string
	codes    []string
}

func newDirectoryIndex(records []models.ClientRecord) *directoryIndex {
	idx := &directoryIndex{
		records:  records,
		names:    make([]string, len(records)),
		managers: make([]string, len(records)),
		codes:    make([]string, len(records)),
	}
	for i, r := range records {
		idx.names[i] = r.Name
		idx.managers[i] = r.Manager
		idx.codes[i] = r.Code
	}
	return idx
}

// directoryService is the default implementation of [DirectoryService].
type directoryService struct {
	blob   store.BlobFileStorage
	cipher crypto.CipherService
	logger *logger.Logger

	index atomic.Pointer[directoryIndex]
}

// NewDirectoryService constructs a [DirectoryService] over the given blob
// storage and cipher store. The service starts empty; call Reload to load
// the directory.
func NewDirectoryService(blob store.BlobFileStorage, cipher crypto.CipherService, logger *logger.Logger) DirectoryService {
	logger.Debug().Msg("creating directory service")
	d := &directoryService{
		blob:   blob,
		cipher: cipher,
		logger: logger,
	}
	d.index.Store(newDirectoryIndex(nil))
	return d
}

// Reload implements [DirectoryService]. Every failure path publishes an
// empty index: a stale directory must not keep serving after its source
// was replaced with something unreadable.
func (d *directoryService) Reload(ctx context.Context) int {
	log := logger.FromContext(ctx)

	payload, err := d.blob.ReadPayload(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("directory blob unavailable, serving empty directory")
		d.index.Store(newDirectoryIndex(nil))
		return 0
	}

	plaintext, err := d.cipher.Decrypt(payload)
	if err != nil {
		log.Warn().Err(err).Msg("directory blob failed decryption, serving empty directory")
		d.index.Store(newDirectoryIndex(nil))
		return 0
	}

	var raw []models.ClientRecord
	if err := json.Unmarshal(plaintext, &raw); err != nil {
		log.Warn().Err(err).Msg("directory plaintext failed parsing, serving empty directory")
		d.index.Store(newDirectoryIndex(nil))
		return 0
	}

	records := make([]models.ClientRecord, 0, len(raw))
	for _, r := range raw {
		r = r.Normalize()
		if !r.Valid() {
			continue // a record without a name cannot be displayed or matched
		}
		records = append(records, r)
	}

	d.index.Store(newDirectoryIndex(records))
	log.Info().Int("records", len(records)).Int("discarded", len(raw)-len(records)).Msg("directory index rebuilt")
	return len(records)
}

// Search implements [DirectoryService].
func (d *directoryService) Search(query string, limit int) []models.ClientRecord {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	idx := d.index.Load()
	if len(idx.records) == 0 {
		return nil
	}

	results := fuzzySearch(idx, query)
	if len(results) == 0 {
		results = substringSearch(idx, query)
	}

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Size implements [DirectoryService].
func (d *directoryService) Size() int {
	return len(d.index.Load().records)
}

// Degraded implements [DirectoryService].
func (d *directoryService) Degraded() bool {
	return len(d.index.Load().records) == 0
}

// fuzzySearch runs the weighted fuzzy pass: each field is matched
// separately and its score scaled by the field weight, totals at or below
// the floor are dropped, survivors are ranked best-first with the original
// collection order as the tiebreak.
func fuzzySearch(idx *directoryIndex, query string) []models.ClientRecord {
	totals := make(map[int]int)

	fields := []struct {
		values []string
		weight int
	}{
		{idx.names, nameWeight},
		{idx.managers, managerWeight},
		{idx.codes, codeWeight},
	}
	for _, field := range fields {
		for _, match := range fuzzy.Find(query, field.values) {
			totals[match.Index] += match.Score * field.weight
		}
	}

	ranked := make([]int, 0, len(totals))
	for i, score := range totals {
		if score > scoreFloor {
			ranked = append(ranked, i)
		}
	}
	sort.Slice(ranked, func(a, b int) bool {
		if totals[ranked[a]] != totals[ranked[b]] {
			return totals[ranked[a]] > totals[ranked[b]]
		}
		return ranked[a] < ranked[b]
	})

	results := make([]models.ClientRecord, len(ranked))
	for i, recordIdx := range ranked {
		results[i] = idx.records[recordIdx]
	}
	return results
}

// substringSearch is the fallback for queries the fuzzy threshold rejects:
// plain case-insensitive containment across all three fields, results in
// original collection order. Guarantees exact substring matches are never
// lost to an overly strict fuzzy pass.
func substringSearch(idx *directoryIndex, query string) []models.ClientRecord {
	query = strings.ToLower(query)

	var results []models.ClientRecord
	for _, r := range idx.records {
		if strings.Contains(strings.ToLower(r.Name), query) ||
			strings.Contains(strings.ToLower(r.Manager), query) ||
			strings.Contains(strings.ToLower(r.Code), query) {
			results = append(results, r)
		}
	}
	return results
}
