package camera

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	pkgerrors "github.com/snapbooth/snapbooth/pkg/errors"
)

// FilePlaceholder in a capture argument is replaced with the temporary
// output path handed to the capture command.
const FilePlaceholder = "{file}"

// ExecCamera shells out to an external capture tool such as gphoto2 or
// fswebcam. The command must write a JPEG to the path substituted for
// the {file} placeholder.
type ExecCamera struct {
	command string
	args    []string
	logger  *zerolog.Logger
}

// NewExecCamera creates a camera backed by an external command.
func NewExecCamera(command string, args []string, logger *zerolog.Logger) *ExecCamera {
	return &ExecCamera{command: command, args: args, logger: logger}
}

// Capture runs the capture command and reads back the produced image.
func (c *ExecCamera) Capture(ctx context.Context) ([]byte, error) {
	tmp, err := os.CreateTemp("", "snapbooth-capture-*.jpg")
	if err != nil {
		return nil, fmt.Errorf("creating capture file: %w", err)
	}
	path := tmp.Name()
	_ = tmp.Close()
	defer func() { _ = os.Remove(path) }()

	args := make([]string, len(c.args))
	for i, arg := range c.args {
		args[i] = strings.ReplaceAll(arg, FilePlaceholder, path)
	}

	c.logger.Debug().
		Str("command", c.command).
		Strs("args", args).
		Msg("Running capture command")

	cmd := exec.CommandContext(ctx, c.command, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		c.logger.Error().
			Err(err).
			Str("command", c.command).
			Str("output", strings.TrimSpace(string(output))).
			Msg("Capture command failed")
		return nil, fmt.Errorf("%w: %s: %v", pkgerrors.ErrCameraUnavailable, c.command, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading captured image: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s produced an empty image", pkgerrors.ErrCameraUnavailable, c.command)
	}

	return data, nil
}
