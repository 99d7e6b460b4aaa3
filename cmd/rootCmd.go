package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "devopsagent",
	Short: "Drive local and remote command-line sessions non-interactively",
	Long: "devopsagent lets an automated agent run commands that normally require a human: " +
		"it keeps persistent SSH shell sessions open with continuous output capture, and " +
		"executes local commands while auto-answering a declared set of interactive prompts.",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}
