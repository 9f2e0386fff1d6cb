package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/finguard-dev/finguard/internal/buildinfo"
	"github.com/finguard-dev/finguard/internal/config"
	"github.com/finguard-dev/finguard/internal/logger"
	"github.com/finguard-dev/finguard/internal/session"
)

// app holds the state shared by every subcommand of one invocation.
type app struct {
	repo string
	user string
	now  func() time.Time

	root string
	cfg  *config.Config
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	return newRootCommand(time.Now)
}

func newRootCommand(now func() time.Time) *cobra.Command {
	a := &app{now: now}

	rootCmd := &cobra.Command{
		Use:     "finguard",
		Short:   "Personal expense tracking with budgets and scam alerts",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.repo, "repo", ".", "project directory")
	rootCmd.PersistentFlags().StringVar(&a.user, "user", "", "acting user (defaults to the configured owner)")

	rootCmd.AddCommand(
		newInitCommand(a),
		newAddCommand(a),
		newListCommand(a),
		newEditCommand(a),
		newSummaryCommand(a),
		newBudgetCommand(a),
		newBankCommand(a),
		newScanCommand(a),
		newAskCommand(a),
		newImportCommand(a),
		newExportCommand(a),
		newUserCommand(a),
		newActivityCommand(a),
	)

	return rootCmd
}

func (a *app) setup() error {
	root, err := filepath.Abs(a.repo)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}
	cfg, err := config.LoadProject(root)
	if err != nil {
		return err
	}
	logger.Init(cfg.Log.Env)

	a.root = root
	a.cfg = cfg
	if a.user == "" {
		a.user = cfg.Owner.Name
	}
	return nil
}

func (a *app) session() (*session.Session, error) {
	return session.Open(a.root, a.cfg, a.user, a.now())
}
