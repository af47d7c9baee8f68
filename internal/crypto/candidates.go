// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"strings"

	"github.com/TuPhung369/PasswordEpic/models"
)

// candidateSeparator joins the parts of a historical key secret.
const candidateSeparator = "::"

// BuildCandidateSecrets returns every secret layout the application ever fed
// into key derivation, most likely first:
//
//	(a) rawSecret::loginTimestamp::sessionSalt          dynamic only
//	(b) rawSecret::fixedSalt::userUUID                  static only
//	(c) rawSecret::loginTimestamp::sessionSalt::fixedSalt::userUUID
//	(d) rawSecret
//	    rawSecret::<alternate salt>                     one per alternate salt
//
// Absent components are left out of a layout; a group with no component at
// all yields no candidate. Duplicates are dropped keeping the first position.
func BuildCandidateSecrets(components models.KeyMaterial, rawSecret string) []string {
	dynamic := nonEmpty(components.LoginTimestamp, components.SessionSalt)
	static := nonEmpty(components.FixedSalt, components.UserUUID)

	candidates := make([]string, 0, 4+len(components.AlternateSalts))
	if len(dynamic) > 0 {
		candidates = append(candidates, join(rawSecret, dynamic...))
	}
	if len(static) > 0 {
		candidates = append(candidates, join(rawSecret, static...))
	}
	if len(dynamic) > 0 && len(static) > 0 {
		candidates = append(candidates, join(rawSecret, append(dynamic, static...)...))
	}
	candidates = append(candidates, rawSecret)

	for _, alt := range components.AlternateSalts {
		if alt.Value == "" {
			continue
		}
		candidates = append(candidates, join(rawSecret, alt.Value))
	}

	return dedupe(candidates)
}

// CandidatesFor orders candidates for one entry. Entries written with the
// canonical derivation try the raw secret first; everything else keeps the
// historical order.
func CandidatesFor(derivationVersion int, components models.KeyMaterial, rawSecret string) []string {
	candidates := BuildCandidateSecrets(components, rawSecret)
	if derivationVersion != models.DerivationCanonical {
		return candidates
	}

	ordered := make([]string, 0, len(candidates))
	ordered = append(ordered, rawSecret)
	for _, c := range candidates {
		if c != rawSecret {
			ordered = append(ordered, c)
		}
	}
	return ordered
}

func join(rawSecret string, parts ...string) string {
	return rawSecret + candidateSeparator + strings.Join(parts, candidateSeparator)
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
