package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sqldojo-labs/sqldojo/internal/restore"
)

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export [dir]",
		Short: "Export the current database as the canonical backup",
		Long: `Write the current database contents to a backup directory using
DuckDB's EXPORT DATABASE. Without an argument the configured backup
directory is used, making the current state the new reset target.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, cfg := openGateway(cmd)
			defer func() { _ = gw.Close() }()

			dir := cfg.BackupDir
			if len(args) > 0 {
				dir = args[0]
			}

			restorer := restore.NewController(gw, cfg.Database, cfg.BackupDir, GetLogger(cmd))
			if err := restorer.Export(cmd.Context(), dir); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", cfg.Database, dir)
			return nil
		},
	}
}
