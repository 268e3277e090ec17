package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sqldojo-labs/sqldojo/internal/restore"
)

// NewResetCommand creates the reset command.
func NewResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the sample database from the canonical backup",
		Long: `Discard the current database file and rebuild it from the canonical
backup directory. Every change made by learners is lost.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gw, cfg := openGateway(cmd)
			defer func() { _ = gw.Close() }()

			restorer := restore.NewController(gw, cfg.Database, cfg.BackupDir, GetLogger(cmd))
			if err := restorer.Reset(cmd.Context()); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Restored %s from %s\n", cfg.Database, cfg.BackupDir)
			return nil
		},
	}
}
