package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/TuPhung369/PasswordEpic/internal/service"
	"github.com/TuPhung369/PasswordEpic/models"
)

var errVaultNotEmpty = errors.New("vault still has entries")

func (c *cli) initCmd() *cobra.Command {
	var (
		enableVaultUnlock bool
		force             bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Set the master password of a new vault",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			services := c.app.Services

			err := services.Verifier.VerifySecret(ctx, "")
			switch {
			case errors.Is(err, service.ErrConfiguration):
			case errors.Is(err, service.ErrStorage):
				return err
			case !force:
				return errors.New("vault is already set up, use --force to replace the master password")
			default:
				// a new hash alone would leave every entry sealed under the old one
				existing, err := services.Entries.GetAll(ctx)
				if err != nil {
					return err
				}
				if len(existing) > 0 {
					return fmt.Errorf("%w: %d entries are encrypted with the current master password, use \"vault migrate\" to change it", errVaultNotEmpty, len(existing))
				}
			}

			secret, err := readNewSecret(c.reader, "New master password: ")
			if err != nil {
				return err
			}
			if err = services.Verifier.StoreMasterSecret(ctx, secret, enableVaultUnlock); err != nil {
				return err
			}
			if err = services.Entries.Initialize(ctx, secret); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Vault is ready.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&enableVaultUnlock, "vault-unlock", false, "Also keep the master password in the credential vault")
	cmd.Flags().BoolVar(&force, "force", false, "Replace the master password of a vault without entries")
	return cmd
}

func (c *cli) unlockCmd() *cobra.Command {
	var disable bool

	cmd := &cobra.Command{
		Use:   "unlock",
		Short: "Check the master password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			required, err := c.app.Services.Verifier.IsReverificationRequired(ctx)
			if err != nil {
				return err
			}
			if required {
				fmt.Fprintln(out, "The master password has not been checked for a week.")
			}

			if _, err = c.unlock(cmd); err != nil {
				return err
			}
			fmt.Fprintln(out, "Vault unlocked.")

			if disable {
				if err = c.app.Services.Verifier.DisableVaultUnlock(ctx); err != nil {
					return err
				}
				fmt.Fprintln(out, "Credential vault unlock disabled.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&disable, "disable-vault-unlock", false, "Forget the master password kept in the credential vault")
	return cmd
}

func (c *cli) addCmd() *cobra.Command {
	var (
		entry        models.Entry
		fields       []string
		secretFields []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an entry, or replace the entry with --id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			custom, err := parseCustomFields(fields, models.FieldText)
			if err != nil {
				return err
			}
			secrets, err := parseCustomFields(secretFields, models.FieldPassword)
			if err != nil {
				return err
			}
			entry.CustomFields = append(custom, secrets...)

			secret, err := c.unlock(cmd)
			if err != nil {
				return err
			}
			if entry.Password, err = c.reader.ReadSecret("Entry password: "); err != nil {
				return err
			}

			saved, err := c.app.Services.Entries.Save(ctx, entry, secret)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", saved.ID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&entry.ID, "id", "", "Id of the entry to replace")
	f.StringVarP(&entry.Title, "title", "t", "", "Title")
	f.StringVarP(&entry.Username, "username", "u", "", "User name")
	f.StringVarP(&entry.Website, "website", "w", "", "Website")
	f.StringVarP(&entry.Notes, "notes", "n", "", "Notes")
	f.StringVar(&entry.CategoryID, "category", "", "Category id")
	f.StringSliceVar(&entry.Tags, "tag", nil, "Tag, may be repeated")
	f.BoolVar(&entry.Favorite, "favorite", false, "Mark as favorite")
	f.StringArrayVar(&fields, "field", nil, "Custom field name=value, may be repeated")
	f.StringArrayVar(&secretFields, "secret-field", nil, "Secret custom field name=value, may be repeated")
	cmd.MarkFlagRequired("title")
	return cmd
}

func (c *cli) getCmd() *cobra.Command {
	var show, copyPassword bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			entries := c.app.Services.Entries

			secret, err := c.unlock(cmd)
			if err != nil {
				return err
			}
			e, found, err := entries.Get(ctx, args[0], secret)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("entry %q: %w", args[0], service.ErrNotFound)
			}

			printEntry(cmd.OutOrStdout(), e, show)

			if copyPassword {
				if err = clipboard.WriteAll(e.Password); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Password copied to clipboard.")
			}
			return entries.UpdateLastUsed(ctx, e.ID)
		},
	}

	cmd.Flags().BoolVarP(&show, "show", "s", false, "Print the password")
	cmd.Flags().BoolVar(&copyPassword, "copy", false, "Copy the password to the clipboard")
	return cmd
}

func (c *cli) listCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries, most recently updated first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				list []models.Entry
				err  error
			)
			if category != "" {
				list, err = c.app.Services.Entries.ByCategory(cmd.Context(), category)
			} else {
				list, err = c.app.Services.Entries.GetAll(cmd.Context())
			}
			if err != nil {
				return err
			}
			return printEntries(cmd.OutOrStdout(), list)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only entries of this category")
	return cmd
}

func (c *cli) searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find entries by title, user name, website, notes, tags or fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := c.app.Services.Entries.Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printEntries(cmd.OutOrStdout(), list)
		},
	}
}

func (c *cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.unlock(cmd); err != nil {
				return err
			}
			if err := c.app.Services.Entries.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func (c *cli) favoritesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "favorites",
		Short: "List favorite entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := c.app.Services.Entries.Favorites(cmd.Context())
			if err != nil {
				return err
			}
			return printEntries(cmd.OutOrStdout(), list)
		},
	}
}

func (c *cli) frequentCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "frequent",
		Short: "List recently used entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := c.app.Services.Entries.FrequentlyUsed(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return printEntries(cmd.OutOrStdout(), list)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "Maximum number of entries")
	return cmd
}

// parseCustomFields turns name=value pairs into custom fields of kind.
func parseCustomFields(pairs []string, kind models.CustomFieldKind) ([]models.CustomField, error) {
	out := make([]models.CustomField, 0, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("custom field %q: expected name=value", pair)
		}
		out = append(out, models.CustomField{Name: strings.TrimSpace(name), Value: value, Kind: kind})
	}
	return out, nil
}

func printEntries(w io.Writer, list []models.Entry) error {
	if len(list) == 0 {
		fmt.Fprintln(w, "No entries.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tUSERNAME\tCATEGORY\tUPDATED")
	for _, e := range list {
		title := e.Title
		if e.Favorite {
			title = "* " + title
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.ID, title, e.Username, e.CategoryID, e.UpdatedAt.Local().Format(time.DateTime))
	}
	return tw.Flush()
}

func printEntry(w io.Writer, e models.Entry, showPassword bool) {
	password := "********"
	if showPassword {
		password = e.Password
	}

	fmt.Fprintf(w, "ID:       %s\n", e.ID)
	fmt.Fprintf(w, "Title:    %s\n", e.Title)
	fmt.Fprintf(w, "Username: %s\n", e.Username)
	fmt.Fprintf(w, "Password: %s\n", password)
	if e.Website != "" {
		fmt.Fprintf(w, "Website:  %s\n", e.Website)
	}
	if e.Notes != "" {
		fmt.Fprintf(w, "Notes:    %s\n", e.Notes)
	}
	fmt.Fprintf(w, "Category: %s\n", e.CategoryID)
	if len(e.Tags) > 0 {
		fmt.Fprintf(w, "Tags:     %s\n", strings.Join(e.Tags, ", "))
	}
	for _, f := range e.CustomFields {
		value := f.Value
		if f.IsSecret() && !showPassword {
			value = "********"
		}
		fmt.Fprintf(w, "%s: %s\n", f.Name, value)
	}
}
