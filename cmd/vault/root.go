package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TuPhung369/PasswordEpic/internal/client"
	"github.com/TuPhung369/PasswordEpic/internal/config"
	"github.com/TuPhung369/PasswordEpic/internal/logger"
	"github.com/TuPhung369/PasswordEpic/internal/service"
	"github.com/TuPhung369/PasswordEpic/internal/vault"
	"github.com/TuPhung369/PasswordEpic/models"
)

// skipAppAnnotation marks commands that run without opening the vault.
const skipAppAnnotation = "vault/skip-app"

// cli holds the state shared by all commands of one invocation.
type cli struct {
	info   models.AppBuildInfo
	vault  vault.CredentialVault
	reader client.SecretReader

	flags   *config.StructuredConfig
	verbose bool

	app *client.App
}

func newCLI(info models.AppBuildInfo, v vault.CredentialVault, reader client.SecretReader) *cli {
	return &cli{info: info, vault: v, reader: reader}
}

func (c *cli) root() *cobra.Command {
	root := &cobra.Command{
		Use:   "vault",
		Short: "Local encrypted password vault",
		Long: `vault keeps login entries in a local encrypted store.

Every password is encrypted with a key derived from the master password.
When entries stop opening after an upgrade, "vault recover" reports which
entries can still be read and "vault migrate" re-encrypts them.`,
		PersistentPreRunE:  c.openApp,
		PersistentPostRunE: c.closeApp,
		SilenceUsage:       true,
		SilenceErrors:      true,
	}

	c.flags = config.BindFlags(root.PersistentFlags())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Print error details")

	root.AddCommand(
		c.initCmd(),
		c.unlockCmd(),
		c.addCmd(),
		c.getCmd(),
		c.listCmd(),
		c.searchCmd(),
		c.deleteCmd(),
		c.favoritesCmd(),
		c.frequentCmd(),
		c.categoriesCmd(),
		c.recoverCmd(),
		c.migrateCmd(),
		c.exportCmd(),
		c.importCmd(),
		c.versionCmd(),
	)
	return root
}

func (c *cli) openApp(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations[skipAppAnnotation] != "" {
		return nil
	}

	cfg, err := config.GetStructuredConfig(c.flags)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	a, err := client.NewApp(cmd.Context(), cfg, c.vault, c.info)
	if err != nil {
		return err
	}
	c.app = a
	cmd.SetContext(a.Context(cmd.Context()))
	return nil
}

func (c *cli) closeApp(*cobra.Command, []string) error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	return err
}

// unlock resolves and verifies the master secret for the running command.
func (c *cli) unlock(cmd *cobra.Command) (string, error) {
	if c.app == nil {
		return "", errors.New("vault is not open")
	}
	return c.app.ResolveSecret(cmd.Context(), c.reader)
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print build information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipAppAnnotation: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			infoService, err := service.NewAppInfoService(c.info, logger.Nop())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), infoService.GetBuildInfo(cmd.Context()))
			return nil
		},
	}
}
