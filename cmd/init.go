package cmd

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// init configures the root command's persistent flags, binds them to
// environment variables via Viper, and registers all subcommands. This
// wiring keeps one consistent configuration surface across run/exec/verify
// and makes environment overrides predictable for operators.
func init() {
	// Persistent flags (inherited by subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgHost, "host", "H", "", "Remote host FQDN or IP")
	rootCmd.PersistentFlags().IntVarP(&cfgPort, "port", "p", 22, "Remote SSH port")
	rootCmd.PersistentFlags().StringVarP(&cfgUser, "user", "u", "", "SSH username")
	rootCmd.PersistentFlags().StringVar(&cfgPassword, "password", "", "SSH password (or set DEVOPS_AGENT_PASSWORD)")
	rootCmd.PersistentFlags().StringVar(&cfgKeyPath, "key", "", "Path to SSH private key (PEM, OpenSSH)")
	rootCmd.PersistentFlags().StringVar(&cfgPassphrase, "passphrase", "", "Private key passphrase (or set DEVOPS_AGENT_PASSPHRASE)")
	rootCmd.PersistentFlags().StringVar(&cfgKnownHosts, "known-hosts", filepath.Join(os.Getenv("HOME"), ".ssh", "known_hosts"), "Path to known_hosts file")
	rootCmd.PersistentFlags().BoolVar(&cfgStrictHost, "strict-host-key", true, "Require host key verification (disable to accept any host key)")
	rootCmd.PersistentFlags().StringVar(&cfgSessionID, "session", "", "Session id in the registry (default \"default\")")
	rootCmd.PersistentFlags().DurationVar(&cfgConnTimeout, "conn-timeout", 15*time.Second, "Connection timeout")
	rootCmd.PersistentFlags().DurationVar(&cfgCmdTimeout, "cmd-timeout", 0, "Per-command timeout (e.g., 30s). 0 disables")
	rootCmd.PersistentFlags().DurationVar(&cfgSettle, "settle", 2*time.Second, "Quiet window after which remote command output is considered complete")
	rootCmd.PersistentFlags().BoolVar(&cfgNoAutoCont, "no-auto-continue", false, "Disable the heuristic newline injection on \"press enter\" stalls")
	rootCmd.PersistentFlags().BoolVarP(&cfgVerbose, "verbose", "v", false, "Enable debug logging to stderr")

	// Bind env with Viper
	_ = viper.BindPFlag("host", rootCmd.PersistentFlags().Lookup("host"))
	_ = viper.BindPFlag("port", rootCmd.PersistentFlags().Lookup("port"))
	_ = viper.BindPFlag("user", rootCmd.PersistentFlags().Lookup("user"))
	_ = viper.BindPFlag("password", rootCmd.PersistentFlags().Lookup("password"))
	_ = viper.BindPFlag("key", rootCmd.PersistentFlags().Lookup("key"))
	_ = viper.BindPFlag("passphrase", rootCmd.PersistentFlags().Lookup("passphrase"))
	_ = viper.BindPFlag("known-hosts", rootCmd.PersistentFlags().Lookup("known-hosts"))
	_ = viper.BindPFlag("strict-host-key", rootCmd.PersistentFlags().Lookup("strict-host-key"))
	_ = viper.BindPFlag("session", rootCmd.PersistentFlags().Lookup("session"))
	_ = viper.BindPFlag("conn-timeout", rootCmd.PersistentFlags().Lookup("conn-timeout"))
	_ = viper.BindPFlag("cmd-timeout", rootCmd.PersistentFlags().Lookup("cmd-timeout"))
	_ = viper.BindPFlag("settle", rootCmd.PersistentFlags().Lookup("settle"))

	viper.SetEnvPrefix("DEVOPS_AGENT")
	viper.AutomaticEnv()

	// Pull in environment overrides on init
	cobra.OnInitialize(func() {
		if v := viper.GetString("host"); v != "" {
			cfgHost = v
		}
		if viper.IsSet("port") {
			if p := viper.GetInt("port"); p != 0 {
				cfgPort = p
			}
		}
		if v := viper.GetString("user"); v != "" {
			cfgUser = v
		}
		if v := viper.GetString("password"); v != "" {
			cfgPassword = v
		}
		if v := viper.GetString("key"); v != "" {
			cfgKeyPath = v
		}
		if v := viper.GetString("passphrase"); v != "" {
			cfgPassphrase = v
		}
		if v := viper.GetString("known-hosts"); v != "" {
			cfgKnownHosts = v
		}
		if v := viper.GetString("session"); v != "" {
			cfgSessionID = v
		}
		if v := viper.GetString("conn-timeout"); v != "" {
			if d, err := time.ParseDuration(v); err == nil {
				cfgConnTimeout = d
			}
		}
		if v := viper.GetString("cmd-timeout"); v != "" {
			if d, err := time.ParseDuration(v); err == nil {
				cfgCmdTimeout = d
			}
		}
		if v := viper.GetString("settle"); v != "" {
			if d, err := time.ParseDuration(v); err == nil {
				cfgSettle = d
			}
		}
		// Booleans
		if viper.IsSet("strict-host-key") {
			cfgStrictHost = viper.GetBool("strict-host-key")
		}
	})

	// run/verify flags
	runCmd.Flags().StringVarP(&cfgManifest, "manifest", "m", "", "Path to YAML manifest file")
	runCmd.Flags().StringVarP(&cfgOutPath, "out", "o", "", "Path to output text file")
	runCmd.Flags().StringVar(&cfgReportPath, "report", "", "Optional path for a structured YAML report")
	verifyCmd.Flags().StringVarP(&cfgManifest, "manifest", "m", "", "Path to YAML manifest file")

	// exec flags
	execCmd.Flags().StringArrayVar(&cfgResponds, "respond", nil, "Prompt/response pair as 'Prompt::Response'; repeatable")
	execCmd.Flags().BoolVar(&cfgUsePTY, "pty", false, "Run the command on a pseudo-terminal")
	execCmd.Flags().DurationVarP(&cfgExecTimeout, "timeout", "t", 30*time.Second, "Maximum execution time")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(verifyCmd)
}
