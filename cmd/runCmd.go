package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shanaka95/DevOpsAgent/internal/remote"
	"github.com/shanaka95/DevOpsAgent/internal/waitfor"
)

// runCmd executes a manifest of commands over one persistent SSH shell
// session. Every command is sent to the same shell, so state (cwd, env,
// background jobs) carries between commands. Output is captured until it
// goes quiet for the settle window, then written to the output file and,
// optionally, a structured YAML report.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute a manifest of commands over a persistent SSH session",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Require manifest and output path first, since manifest may provide defaults
		if cfgManifest == "" {
			return errors.New("--manifest is required (path to YAML)")
		}
		if cfgOutPath == "" {
			return errors.New("--out is required (path to output file)")
		}

		// Load manifest to potentially source ssh_host defaults
		mf, err := loadManifest(cfgManifest)
		if err != nil {
			return fmt.Errorf("failed to read manifest: %w", err)
		}

		// Fall back to manifest ssh_host when CLI args are not provided
		if cfgHost == "" {
			if host := strings.TrimSpace(mf.SSHHost.IP); host != "" {
				cfgHost = host
			}
		}
		if mf.SSHHost.Port != 0 && !cmd.Flags().Changed("port") {
			cfgPort = mf.SSHHost.Port
		}
		if cfgUser == "" {
			if u := strings.TrimSpace(mf.SSHHost.User); u != "" {
				cfgUser = u
			}
		}

		// Remaining basic validation after applying manifest defaults
		if cfgHost == "" {
			return errors.New("--host is required (FQDN or IP)")
		}
		if cfgUser == "" {
			return errors.New("--user is required for SSH authentication")
		}

		// Prepare output file (create dirs if needed)
		if dir := filepath.Dir(cfgOutPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create output dir: %w", err)
			}
		}
		outFile, err := os.Create(cfgOutPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = outFile.Close() }()

		writeHeader(outFile, mf)

		// Prepare YAML report model
		report := newYAMLReport(mf)
		report.Target = fmt.Sprintf("%s:%d", cfgHost, cfgPort)

		log := newLogger()
		defer func() { _ = log.Sync() }()

		reg := remote.NewRegistry(log)
		defer reg.CloseAll()

		sess, err := connectSessionFunc(reg)
		if err != nil {
			return fmt.Errorf("ssh connection failed: %w", err)
		}
		report.SessionID = sess.ID()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		for i, c := range mf.Commands {
			title := fmt.Sprintf("[%d/%d] %s", i+1, len(mf.Commands), c.line())
			_, _ = fmt.Fprintf(os.Stderr, "Executing %s\n", title)

			cmdTimeout := c.perCommandTimeout(cfgCmdTimeout)
			settle := c.settleWindow(cfgSettle)

			var out string
			runErr := sess.Send(c.line())
			if runErr == nil {
				out, runErr = waitfor.Settled(ctx, sess.Drain, 0, settle, cmdTimeout)
			}

			if err := writeCommandSection(outFile, c, out, runErr, cmdTimeout); err != nil {
				return fmt.Errorf("failed to write output section: %w", err)
			}

			res := yamlCmdResult{
				Title:   strings.TrimSpace(c.Title),
				Command: c.line(),
				Output:  out,
			}
			if cmdTimeout > 0 {
				res.Timeout = cmdTimeout.String()
			}
			if runErr != nil {
				res.Error = runErr.Error()
			}
			report.addResult(res)

			// On timeout, the shell may be wedged mid-command. Reconnect
			// once and continue with the remaining commands.
			if errors.Is(runErr, context.DeadlineExceeded) {
				_, _ = fmt.Fprintln(os.Stderr, "Command timed out; reconnecting...")
				sess, err = connectSessionFunc(reg)
				if err != nil {
					return fmt.Errorf("reconnect failed after timeout: %w", err)
				}
			} else if runErr != nil {
				return fmt.Errorf("command %d failed: %w", i+1, runErr)
			}
		}

		// Emit YAML report when requested
		if cfgReportPath != "" {
			rf, err := os.Create(cfgReportPath)
			if err != nil {
				return fmt.Errorf("failed to create report file: %w", err)
			}
			if err := writeYAMLReport(rf, report); err != nil {
				_ = rf.Close()
				return fmt.Errorf("failed to write YAML report: %w", err)
			}
			if err := rf.Close(); err != nil {
				return fmt.Errorf("failed to close report file: %w", err)
			}
		}

		_, _ = fmt.Fprintf(os.Stderr, "Done. Output written to %s\n", cfgOutPath)
		return nil
	},
}
