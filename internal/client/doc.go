// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the local vault application runtime.
//
// It wires configuration, logging, storage and services into a single
// process lifecycle and resolves the master secret for a session, either
// through the credential vault or by asking the user.
package client
