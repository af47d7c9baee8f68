package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/TuPhung369/PasswordEpic/internal/client"
	"github.com/TuPhung369/PasswordEpic/internal/service"
	"github.com/TuPhung369/PasswordEpic/models"
)

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow)
)

func (c *cli) categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "Manage categories",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.listCategories(cmd)
		},
	}

	var icon, colorHex string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := c.app.Services.Categories.Create(cmd.Context(), models.Category{
				Name:  args[0],
				Icon:  icon,
				Color: colorHex,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", created.ID)
			return nil
		},
	}
	add.Flags().StringVar(&icon, "icon", "folder", "Icon name")
	add.Flags().StringVar(&colorHex, "color", "#607D8B", "Color as #RRGGBB")

	rename := &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			categories := c.app.Services.Categories
			current, found, err := categories.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("category %q: %w", args[0], service.ErrNotFound)
			}
			current.Name = args[1]
			return categories.Update(cmd.Context(), current)
		},
	}

	remove := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category and move its entries to uncategorized",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Services.Categories.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.listCategories(cmd)
		},
	}

	cmd.AddCommand(list, add, rename, remove)
	return cmd
}

func (c *cli) listCategories(cmd *cobra.Command) error {
	all, err := c.app.Services.Categories.List(cmd.Context())
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tICON\tCOLOR")
	for _, cat := range all {
		name := cat.Name
		if cat.IsDefault {
			name += " (default)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", cat.ID, name, cat.Icon, cat.Color)
	}
	return tw.Flush()
}

func (c *cli) recoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recover",
		Short: "Report which entries can be decrypted with the master password",
		Long: `recover tries every historical key layout against every entry and
reports which entries could be opened. Nothing is written; run "vault migrate"
to re-encrypt the recovered entries.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret, err := c.reader.ReadSecret(client.MasterPasswordPrompt)
			if err != nil {
				return err
			}

			res := c.app.Services.Recovery.Recover(cmd.Context(), secret)
			printRecovery(cmd.OutOrStdout(), res)
			if res.Err != nil && !res.Success {
				return res.Err
			}
			return nil
		},
	}
}

func (c *cli) migrateCmd() *cobra.Command {
	var same bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Re-encrypt every recoverable entry under the current key layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			services := c.app.Services

			secret, err := c.unlock(cmd)
			if err != nil {
				return err
			}

			target := secret
			if !same {
				if target, err = readNewSecret(c.reader, "New master password: "); err != nil {
					return err
				}
			}

			res := services.Recovery.Migrate(ctx, secret, target)
			out := cmd.OutOrStdout()
			if !res.Success && len(res.FailedEntries) == 0 {
				return res.Err
			}
			okColor.Fprintf(out, "Migrated %d entries\n", res.MigratedCount)
			if !res.Success {
				failColor.Fprintf(out, "Not migrated: %d\n", len(res.FailedEntries))
				for _, id := range res.FailedEntries {
					fmt.Fprintf(out, "  - %s\n", id)
				}
				warnColor.Fprintln(out, "The master password was not changed; fix the entries above and run \"vault migrate\" again.")
				return res.Err
			}

			if target == secret {
				return nil
			}
			enabled, err := services.Verifier.IsVaultUnlockEnabled(ctx)
			if err != nil {
				return err
			}
			return services.Verifier.StoreMasterSecret(ctx, target, enabled)
		},
	}

	cmd.Flags().BoolVar(&same, "same", false, "Keep the current master password")
	return cmd
}

func (c *cli) exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the vault as JSON with passwords still encrypted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := c.unlock(cmd); err != nil {
				return err
			}
			blob, err := c.app.Services.Snapshots.Export(cmd.Context())
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(append(blob, '\n'))
				return err
			}
			if err = os.WriteFile(out, blob, 0o600); err != nil {
				return fmt.Errorf("write snapshot: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file, stdout when empty")
	return cmd
}

func (c *cli) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace every entry and category with the contents of a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read snapshot: %w", err)
			}
			if _, err = c.unlock(cmd); err != nil {
				return err
			}
			if err = c.app.Services.Snapshots.Import(cmd.Context(), blob); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s\n", args[0])
			return nil
		},
	}
}

func printRecovery(w io.Writer, res models.RecoveryResult) {
	if !res.Success {
		failColor.Fprintln(w, "Recovery did not complete")
	}
	fmt.Fprintf(w, "Entries:   %d\n", res.TotalEntries)
	okColor.Fprintf(w, "Recovered: %d\n", res.RecoveredEntries)

	if len(res.FailedEntries) == 0 {
		return
	}
	failColor.Fprintf(w, "Failed:    %d\n", len(res.FailedEntries))
	for _, id := range res.FailedEntries {
		fmt.Fprintf(w, "  - %s\n", id)
	}
	if res.Success {
		warnColor.Fprintln(w, "No known key layout opens the failed entries; \"vault migrate\" leaves them untouched.")
	}
}
