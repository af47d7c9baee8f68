// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

const (
	// SnapshotVersion is the only export format version accepted on import.
	SnapshotVersion = "2.0"

	// SnapshotStorageFormat identifies the per-field encrypted layout.
	SnapshotStorageFormat = "optimized"
)

// Snapshot is the export/import blob. Passwords stay encrypted.
type Snapshot struct {
	Passwords     []PersistedEntry `json:"passwords"`
	Categories    []Category       `json:"categories"`
	ExportedAt    time.Time        `json:"exportedAt"`
	Version       string           `json:"version"`
	StorageFormat string           `json:"storageFormat"`
}
