package cmd

import (
	"fmt"
	"strings"

	"github.com/shanaka95/DevOpsAgent/internal/localexec"
)

// parsePromptResponses converts repeated --respond flag values of the form
// "Prompt::Response" into ordered prompt/response pairs. The split is on the
// first "::" so responses may themselves contain colons.
func parsePromptResponses(pairs []string) ([]localexec.PromptResponse, error) {
	out := make([]localexec.PromptResponse, 0, len(pairs))
	for _, p := range pairs {
		idx := strings.Index(p, "::")
		if idx < 0 {
			return nil, fmt.Errorf("invalid --respond value %q: want 'Prompt::Response'", p)
		}
		prompt := p[:idx]
		if strings.TrimSpace(prompt) == "" {
			return nil, fmt.Errorf("invalid --respond value %q: empty prompt", p)
		}
		out = append(out, localexec.PromptResponse{Prompt: prompt, Response: p[idx+2:]})
	}
	return out, nil
}
