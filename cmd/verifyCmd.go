package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Validate a manifest YAML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfgManifest == "" {
			return errors.New("--manifest is required (path to YAML)")
		}
		mf, err := loadManifest(cfgManifest)
		if err != nil {
			return fmt.Errorf("invalid manifest: %w", err)
		}
		// Duration fields must parse when present so run does not fall back
		// silently to the global defaults.
		for i, c := range mf.Commands {
			if c.Timeout != "" {
				if _, err := time.ParseDuration(c.Timeout); err != nil {
					return fmt.Errorf("invalid manifest: commands[%d].timeout: %w", i, err)
				}
			}
			if c.Settle != "" {
				if _, err := time.ParseDuration(c.Settle); err != nil {
					return fmt.Errorf("invalid manifest: commands[%d].settle: %w", i, err)
				}
			}
		}
		_, _ = fmt.Fprintln(os.Stdout, "Manifest OK")
		return nil
	},
}
