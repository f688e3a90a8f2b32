package timer

import (
	"fmt"
	"os/exec"

	"github.com/kballard/go-shellquote"
)

// runSessionCmd executes cmdline after splitting it the way a shell would.
func runSessionCmd(cmdline string) error {
	args, err := shellquote.Split(cmdline)
	if err != nil {
		return fmt.Errorf("unable to parse session command: %w", err)
	}

	if len(args) == 0 {
		return nil
	}

	out, err := exec.Command(args[0], args[1:]...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, out)
	}

	return nil
}
