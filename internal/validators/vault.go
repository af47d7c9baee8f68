package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/TuPhung369/PasswordEpic/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldID targets the identifier of an entry or category.
	FieldID = "id"

	// FieldTitle targets the display title of an entry.
	FieldTitle = "title"

	// FieldCategory targets the category reference of an entry.
	FieldCategory = "category"

	// FieldTags targets the tag set of an entry.
	FieldTags = "tags"

	// FieldCustomFields targets the ordered custom fields of an entry.
	FieldCustomFields = "custom_fields"

	// FieldName targets the display name of a category.
	FieldName = "name"

	// FieldCipher targets the encrypted password fields of a persisted entry.
	FieldCipher = "cipher"

	// FieldVersion targets the format version of a snapshot.
	FieldVersion = "version"

	// FieldStorageFormat targets the storage format marker of a snapshot.
	FieldStorageFormat = "storage_format"

	// FieldPasswords targets the persisted entries of a snapshot.
	FieldPasswords = "passwords"

	// FieldCategories targets the categories of a snapshot.
	FieldCategories = "categories"
)

// VaultValidator implements the Validator interface for the vault models:
// Entry, PersistedEntry, Category and Snapshot. Value and pointer forms are
// accepted.
type VaultValidator struct {
}

func NewVaultValidator() Validator {
	return &VaultValidator{}
}

func (v *VaultValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Entry:
		return v.validateEntry(ctx, value, fields...)
	case *models.Entry:
		return v.validateEntry(ctx, *value, fields...)

	case models.PersistedEntry:
		return v.validatePersistedEntry(ctx, value, fields...)
	case *models.PersistedEntry:
		return v.validatePersistedEntry(ctx, *value, fields...)

	case models.Category:
		return v.validateCategory(ctx, value, fields...)
	case *models.Category:
		return v.validateCategory(ctx, *value, fields...)

	case models.Snapshot:
		return v.validateSnapshot(ctx, value, fields...)
	case *models.Snapshot:
		return v.validateSnapshot(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateEntry checks a decrypted entry before it is saved.
//
// Default fields: Tags, CustomFields. The ID is not checked by default
// because a save assigns one when it is empty; the title is checked only
// when asked, since entries recovered from old versions may lack one.
func (v *VaultValidator) validateEntry(_ context.Context, e models.Entry, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTags, FieldCustomFields}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if strings.TrimSpace(e.ID) == "" {
				return ErrInvalidID
			}
		case FieldTitle:
			if strings.TrimSpace(e.Title) == "" {
				return ErrEmptyTitle
			}
		case FieldCategory:
			if strings.TrimSpace(e.CategoryID) == "" {
				return ErrEmptyCategory
			}
		case FieldTags:
			for _, tag := range e.Tags {
				if strings.TrimSpace(tag) == "" {
					return ErrInvalidTag
				}
			}
		case FieldCustomFields:
			if err := validateCustomFields(e.CustomFields); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateCustomFields(cfs []models.CustomField) error {
	for i, cf := range cfs {
		if strings.TrimSpace(cf.Name) == "" {
			return fmt.Errorf("%w: field %d has no name", ErrInvalidCustomField, i)
		}
		if cf.Kind != "" && !cf.Kind.IsKnown() {
			return fmt.Errorf("%w: field %q has kind %q", ErrInvalidCustomField, cf.Name, cf.Kind)
		}
	}
	return nil
}

// validatePersistedEntry checks an on-disk entry, typically one read from an
// import snapshot.
//
// Default fields: ID, Cipher, CustomFields.
func (v *VaultValidator) validatePersistedEntry(_ context.Context, p models.PersistedEntry, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldCipher, FieldCustomFields}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if strings.TrimSpace(p.ID) == "" {
				return ErrInvalidID
			}
		case FieldTitle:
			if strings.TrimSpace(p.Title) == "" {
				return ErrEmptyTitle
			}
		case FieldCipher:
			if p.EncryptedPassword == "" && p.PasswordIV == "" && p.PasswordAuthTag == "" {
				// an entry without a password carries no cipher at all
				continue
			}
			if p.PasswordSalt == "" || p.PasswordIV == "" || p.PasswordAuthTag == "" {
				return fmt.Errorf("%w: entry %q", ErrIncompleteCipher, p.ID)
			}
		case FieldCustomFields:
			if err := validateCustomFields(p.CustomFields); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateCategory checks a category record.
//
// Default fields: ID, Name.
func (v *VaultValidator) validateCategory(_ context.Context, c models.Category, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldName}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if strings.TrimSpace(c.ID) == "" {
				return ErrInvalidID
			}
		case FieldName:
			if strings.TrimSpace(c.Name) == "" {
				return ErrEmptyName
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateSnapshot checks an import blob and every record it carries.
//
// Default fields: Version, StorageFormat, Passwords, Categories.
func (v *VaultValidator) validateSnapshot(ctx context.Context, s models.Snapshot, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldVersion, FieldStorageFormat, FieldPasswords, FieldCategories}
	}

	for _, f := range fields {
		switch f {
		case FieldVersion:
			if s.Version != models.SnapshotVersion {
				return fmt.Errorf("%w: %q", ErrUnsupportedVersion, s.Version)
			}
		case FieldStorageFormat:
			if s.StorageFormat != models.SnapshotStorageFormat {
				return fmt.Errorf("%w: %q", ErrUnsupportedFormat, s.StorageFormat)
			}
		case FieldPasswords:
			if s.Passwords == nil {
				return ErrMissingPasswords
			}
			seen := make(map[string]struct{}, len(s.Passwords))
			for _, p := range s.Passwords {
				if err := v.validatePersistedEntry(ctx, p); err != nil {
					return err
				}
				if _, dup := seen[p.ID]; dup {
					return fmt.Errorf("%w: entry %q", ErrDuplicateID, p.ID)
				}
				seen[p.ID] = struct{}{}
			}
		case FieldCategories:
			seen := make(map[string]struct{}, len(s.Categories))
			for _, c := range s.Categories {
				if err := v.validateCategory(ctx, c); err != nil {
					return err
				}
				if _, dup := seen[c.ID]; dup {
					return fmt.Errorf("%w: category %q", ErrDuplicateID, c.ID)
				}
				seen[c.ID] = struct{}{}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
