package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// execCmd runs a single local command, auto-answering declared interactive
// prompts. The full transcript (including markers for each injected
// response) is printed to stdout. Use --pty for programs that insist on a
// terminal, or omit --respond entirely for a plain capture run.
var execCmd = &cobra.Command{
	Use:   "exec -- <command> [args...]",
	Short: "Run a local command, answering declared prompts",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		command := strings.Join(args, " ")

		responses, err := parsePromptResponses(cfgResponds)
		if err != nil {
			return err
		}

		var out string
		var runErr error
		switch {
		case cfgUsePTY:
			out, runErr = runPTYFunc(command, responses, cfgExecTimeout)
		case len(responses) > 0:
			out, runErr = runInteractiveFunc(command, responses, cfgExecTimeout)
		default:
			out, runErr = runSimpleFunc(command, cfgExecTimeout)
		}

		_, _ = fmt.Fprint(os.Stdout, out)
		if len(out) > 0 && !strings.HasSuffix(out, "\n") {
			_, _ = fmt.Fprintln(os.Stdout)
		}

		if runErr != nil && !errors.Is(runErr, context.DeadlineExceeded) {
			return runErr
		}
		return nil
	},
}
