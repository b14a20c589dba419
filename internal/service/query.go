// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-directory-bot/internal/logger"
	"github.com/MKhiriev/go-directory-bot/models"
)

// emptyFieldPlaceholder stands in for a blank manager or code when a record
// is rendered, so the line structure stays scannable.
const emptyFieldPlaceholder = "—"

// MsgNoMatches is sent when a query produces no results.
const MsgNoMatches = "No matches found. Try a different name, manager or code."

// queryService is the default implementation of [QueryService].
type queryService struct {
	directory DirectoryService
	limit     int
	logger    *logger.Logger
}

// NewQueryService constructs a [QueryService] with a fixed result cap.
func NewQueryService(directory DirectoryService, limit int, logger *logger.Logger) QueryService {
	logger.Debug().Int("limit", limit).Msg("creating query service")
	return &queryService{
		directory: directory,
		limit:     limit,
		logger:    logger,
	}
}

// Answer implements [QueryService].
func (q *queryService) Answer(ctx context.Context, query string) string {
	log := logger.FromContext(ctx)

	results := q.directory.Search(query, q.limit)
	log.Debug().Str("query", query).Int("results", len(results)).Msg("directory search")

	if len(results) == 0 {
		return MsgNoMatches
	}
	return formatRecords(results)
}

// formatRecords renders records as a one-based enumerated list, one record
// per line, with placeholders for empty fields.
func formatRecords(records []models.ClientRecord) string {
	var b strings.Builder
	for i, r := range records {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s — manager: %s, code: %s",
			i+1, r.Name, orPlaceholder(r.Manager), orPlaceholder(r.Code))
	}
	return b.String()
}

func orPlaceholder(s string) string {
	if s == "" {
		return emptyFieldPlaceholder
	}
	return s
}
