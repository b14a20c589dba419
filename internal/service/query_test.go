// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-directory-bot/internal/logger"
	"github.com/MKhiriev/go-directory-bot/models"
	"github.com/stretchr/testify/assert"
)

func TestAnswer_FormatsEnumeratedList(t *testing.T) {
	directory := &mockDirectory{searchFn: func(string, int) []models.ClientRecord {
		return []models.ClientRecord{
			{Name: "Acme Corp", Manager: "Ivan", Code: "A1"},
			{Name: "Zenith Ltd", Manager: "Olga", Code: "Z9"},
		}
	}}
	q := NewQueryService(directory, 5, logger.Nop())

	got := q.Answer(context.Background(), "corp")

	want := "1. Acme Corp — manager: Ivan, code: A1\n" +
		"2. Zenith Ltd — manager: Olga, code: Z9"
	assert.Equal(t, want, got)
}

func TestAnswer_PlaceholdersForEmptyFields(t *testing.T) {
	directory := &mockDirectory{searchFn: func(string, int) []models.ClientRecord {
		return []models.ClientRecord{{Name: "Acme Corp"}}
	}}
	q := NewQueryService(directory, 5, logger.Nop())

	assert.Equal(t, "1. Acme Corp — manager: —, code: —", q.Answer(context.Background(), "acme"))
}

func TestAnswer_NoMatches(t *testing.T) {
	q := NewQueryService(&mockDirectory{}, 5, logger.Nop())

	assert.Equal(t, MsgNoMatches, q.Answer(context.Background(), "zzzzz"))
}

func TestAnswer_PassesConfiguredLimit(t *testing.T) {
	var gotLimit int
	directory := &mockDirectory{searchFn: func(_ string, limit int) []models.ClientRecord {
		gotLimit = limit
		return nil
	}}
	q := NewQueryService(directory, 3, logger.Nop())

	q.Answer(context.Background(), "acme")

	assert.Equal(t, 3, gotLimit)
}
