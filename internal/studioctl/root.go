// Package studioctl implements the admin command line: account tiers, weight
// table inspection and offline recommendations.
package studioctl

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"promptstudio/internal/shared/config"
	"promptstudio/internal/shared/storage/db"
	"promptstudio/internal/users"
	"promptstudio/internal/wizard"
)

func Execute() error {
	return NewRoot().Execute()
}

// openUsers connects to the configured database. Tests replace it.
var openUsers = func(ctx context.Context) (*users.Service, func() error, error) {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		return nil, nil, fmt.Errorf("DATABASE_URL is required")
	}
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultCLIOptions()))
	if err != nil {
		return nil, nil, err
	}
	return users.NewService(&users.PGRepo{DB: sqlDB}), sqlDB.Close, nil
}

func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "studioctl",
		Short:        "Administer Prompt Framework Studio",
		SilenceUsage: true,
	}
	root.AddCommand(
		UsersCmd(),
		WeightsCmd(),
		RecommendCmd(),
	)
	return root
}

// loadBank reads a bank file, or returns the embedded bank for an empty path.
func loadBank(path string) (*wizard.Bank, error) {
	if path == "" {
		return wizard.Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	b, err := wizard.LoadBank(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}
