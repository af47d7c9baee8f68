// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RecoveryResult is the outcome of one recovery run.
//
// Success is false when storage could not be read or the run was
// interrupted; per-entry failures are listed in FailedEntries. Entries an
// interrupted run never reached count as failed, so for every run
// RecoveredEntries + len(FailedEntries) == TotalEntries.
type RecoveryResult struct {
	Success          bool
	TotalEntries     int
	RecoveredEntries int
	FailedEntries    []string
	Err              error
}

// MigrationResult is the outcome of one migration run.
//
// MigratedCount only counts entries that were written under the target
// secret. Entries that were recovered but could not be written are listed in
// FailedEntries and keep their old ciphertext; Success is false and Err joins
// their causes whenever that list is not empty.
type MigrationResult struct {
	Success       bool
	MigratedCount int
	FailedEntries []string
	Err           error
}
