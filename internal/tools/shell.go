package tools

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/baalimago/dlai/internal/models"
)

const shellTimeout = 30 * time.Second

// dangerousPatterns is a heuristic blacklist, not a sandbox. Commands the
// assistant produces are still run as the local user.
var dangerousPatterns = []string{
	"rm -rf /",
	"rm -rf C:\\",
	"mkfs",
	"dd if=",
	":(){ :|:& };:",
	"> /dev/sd",
}

type ShellTool models.ToolDescriptor

var Shell = ShellTool{
	Name:        "run_shell",
	Description: "Run a shell command on the host and return its combined output. Fails on non-zero exit codes.",
	Parameters: models.ParameterSchema{
		Type: "object",
		Properties: map[string]models.ParameterProperty{
			"command": {
				Type:        "string",
				Description: "The command line to run.",
			},
		},
		Required: []string{"command"},
	},
}

func (s ShellTool) Call(args map[string]any) (string, error) {
	command, ok := args["command"].(string)
	if !ok {
		return "", fmt.Errorf("command must be a string")
	}
	if err := validateCommand(command); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), shellTimeout)
	defer cancel()

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.CommandContext(ctx, "powershell", "-Command", command)
	} else {
		cmd = exec.CommandContext(ctx, "sh", "-c", command)
	}
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("error: '%w', output: %v", err, string(output))
	}
	return string(output), nil
}

func validateCommand(command string) error {
	trimmed := strings.TrimSpace(command)
	if trimmed == "" {
		return fmt.Errorf("command cannot be empty")
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(trimmed, pattern) {
			return fmt.Errorf("command contains dangerous pattern: %v", pattern)
		}
	}
	return nil
}

func (s ShellTool) Descriptor() models.ToolDescriptor {
	return models.ToolDescriptor(Shell)
}
