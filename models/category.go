// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// UncategorizedID is the sentinel category every orphaned entry is moved to.
const UncategorizedID = "uncategorized"

// Category groups entries for presentation.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	IsDefault bool      `json:"isDefault,omitempty"`
}

// DefaultCategories returns the built-in categories that exist even when the
// category collection has never been written.
func DefaultCategories() []Category {
	epoch := time.Unix(0, 0).UTC()
	return []Category{
		{ID: UncategorizedID, Name: "Uncategorized", Icon: "folder", Color: "#9E9E9E", CreatedAt: epoch, IsDefault: true},
		{ID: "social", Name: "Social", Icon: "people", Color: "#2196F3", CreatedAt: epoch, IsDefault: true},
		{ID: "work", Name: "Work", Icon: "briefcase", Color: "#4CAF50", CreatedAt: epoch, IsDefault: true},
		{ID: "finance", Name: "Finance", Icon: "bank", Color: "#FF9800", CreatedAt: epoch, IsDefault: true},
		{ID: "shopping", Name: "Shopping", Icon: "cart", Color: "#E91E63", CreatedAt: epoch, IsDefault: true},
		{ID: "entertainment", Name: "Entertainment", Icon: "film", Color: "#9C27B0", CreatedAt: epoch, IsDefault: true},
	}
}

// IsDefaultCategory reports whether id names a built-in category.
func IsDefaultCategory(id string) bool {
	for _, c := range DefaultCategories() {
		if c.ID == id {
			return true
		}
	}
	return false
}
