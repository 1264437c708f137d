package logtesting

import (
	"bytes"
	"strings"

	"github.com/MobRulesGames/tabletop/logging"
)

// Runs 'fn' with the logging package redirected into a buffer and returns
// every non-empty line that was emitted.
func CollectOutput(fn func()) []string {
	buf := &bytes.Buffer{}
	reset := logging.Redirect(buf)
	defer reset()

	fn()

	var lines []string
	for _, line := range strings.Split(buf.String(), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
