// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strings"

// ClientRecord is a single entry of the client directory: the client's
// display name, the responsible manager, and the internal client code.
//
// Records are immutable once loaded. All three fields are free text,
// whitespace-trimmed and empty-string-normalized — a missing value is always
// the empty string, never a nil-like marker. Name is the required identity
// field: a record whose Name is empty after normalization is discarded at
// load time.
type ClientRecord struct {
	// Name is the human-readable client name used for display and as the
	// primary matching field.
	Name string `json:"name"`

	// Manager is the name of the manager responsible for the client.
	// May be empty.
	Manager string `json:"manager"`

	// Code is the internal client code. May be empty.
	Code string `json:"code"`
}

// Normalize trims surrounding whitespace from all fields and returns the
// normalized copy of the record.
func (r ClientRecord) Normalize() ClientRecord {
	return ClientRecord{
		Name:    strings.TrimSpace(r.Name),
		Manager: strings.TrimSpace(r.Manager),
		Code:    strings.TrimSpace(r.Code),
	}
}

// Valid reports whether the record may enter the directory. Only the Name
// field is required; Manager and Code may be empty.
func (r ClientRecord) Valid() bool {
	return r.Name != ""
}
