package commands

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/sqldojo-labs/sqldojo/internal/gateway"
	"github.com/sqldojo-labs/sqldojo/internal/history"
	"github.com/sqldojo-labs/sqldojo/internal/restore"
	"github.com/sqldojo-labs/sqldojo/internal/schema"
	"github.com/sqldojo-labs/sqldojo/internal/ui"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port      int
	NoBrowser bool
	Watch     bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the SQL workshop web server",
		Long: `Start a local web server hosting the interactive SQL workshop.

The workshop provides:
- A SQL editor preloaded with example queries
- Result tables and charts
- A live schema browser with row counts
- An ER diagram and SQL cheatsheet
- A reset control that restores the canonical dataset`,
		Example: `  # Start on the default port
  sqldojo serve

  # Start on a custom port
  sqldojo serve --port 3000

  # Start without auto-opening a browser
  sqldojo serve --no-browser`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().BoolVar(&opts.Watch, "watch", true, "Watch the backup directory for changes")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cfg := GetConfig(cmd)
	logger := GetLogger(cmd)

	// CLI flags override config file.
	port := cfg.UI.Port
	if opts.Port != 0 {
		port = opts.Port
	}

	autoOpen := cfg.UI.AutoOpen
	if opts.NoBrowser {
		autoOpen = false
	}

	watch := cfg.UI.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}

	if _, err := os.Stat(cfg.BackupDir); os.IsNotExist(err) {
		return fmt.Errorf("backup directory does not exist: %s (run 'sqldojo seed' then 'sqldojo export' first)", cfg.BackupDir)
	}

	gw := gateway.New(cfg.Database, logger)
	defer func() { _ = gw.Close() }()

	historyDir := filepath.Dir(cfg.History)
	if historyDir != "." && historyDir != "" {
		if err := os.MkdirAll(historyDir, 0750); err != nil {
			return fmt.Errorf("failed to create history directory: %w", err)
		}
	}
	hist := history.NewStore()
	if err := hist.Open(cfg.History); err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer func() { _ = hist.Close() }()

	server := ui.NewServer(ui.Config{
		Gateway:       gw,
		Inspector:     schema.NewInspector(gw),
		Restorer:      restore.NewController(gw, cfg.Database, cfg.BackupDir, logger),
		History:       hist,
		Port:          port,
		Watch:         watch,
		BackupDir:     cfg.BackupDir,
		AdminPasscode: cfg.AdminPasscode,
		SessionSecret: sessionSecret(),
		Logger:        logger,
	})

	if autoOpen {
		go openBrowser(fmt.Sprintf("http://localhost:%d", port))
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Starting workshop server on http://localhost:%d\n", port)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")

	return server.Serve(cmd.Context())
}

// sessionSecret returns the admin session secret.
func sessionSecret() string {
	secret := os.Getenv("SQLDOJO_SESSION_SECRET")
	if secret == "" {
		// Default secret for local workshops.
		secret = "sqldojo-dev-secret-change-in-production" //nolint:gosec
	}
	return secret
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
