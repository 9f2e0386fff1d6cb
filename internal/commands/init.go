package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/finguard-dev/finguard/internal/config"
	"github.com/finguard-dev/finguard/internal/seal"
)

func newInitCommand(a *app) *cobra.Command {
	var name string
	var encrypt bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new FinGuard project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.root
			if len(args) > 0 {
				abs, err := filepath.Abs(args[0])
				if err != nil {
					return fmt.Errorf("resolving path: %w", err)
				}
				dir = abs
			}
			return runInit(cmd, dir, name, encrypt)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "owner name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().BoolVar(&encrypt, "encrypt", false, "encrypt ledger files at rest")

	return cmd
}

func runInit(cmd *cobra.Command, dir, name string, encrypt bool) error {
	out := cmd.OutOrStdout()

	cfgPath := config.Path(dir)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	cfg := config.Default(name)
	cfg.Storage.Encrypt = encrypt

	if err := os.MkdirAll(cfg.DataDir(dir), 0o700); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	gitignore := fmt.Sprintf(".env\n%s/\n", cfg.Storage.DataDir)
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	if encrypt {
		keys := seal.NewKeyFile(cfg.KeyPath(dir))
		if _, err := keys.LoadOrCreate(); err != nil {
			return fmt.Errorf("creating key: %w", err)
		}
		fmt.Fprintf(out, "Encryption key written to %s\n", keys.Path())
		fmt.Fprintln(out, "Back it up: losing this file makes your ledger unrecoverable.")
	}

	fmt.Fprintf(out, "Initialized FinGuard project at %s\n", dir)
	return nil
}
