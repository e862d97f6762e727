package logging

import (
	"log/slog"
)

// LogOperation records a named operation with its component and phase.
func LogOperation(logger *slog.Logger, operation, component, phase string, attrs ...any) {
	args := append([]any{
		"operation", operation,
		"component", component,
		"phase", phase,
	}, attrs...)
	logger.Info("Operation: "+operation, args...)
}

// LogCommand records a finished CLI command, its arguments, output and exit code.
func LogCommand(logger *slog.Logger, command string, args []string, output string, code int) {
	LogOperation(logger, "command_execution", "cli", "execution",
		"command", command,
		"args", args,
		"output", output,
		"return_code", code,
	)
}

// LogUserInput records raw input received from the user.
func LogUserInput(logger *slog.Logger, input string) {
	logger.Info("User input received", "user_input", input, "component", "cli", "phase", "input")
}

// LogOutput records output produced for the user.
func LogOutput(logger *slog.Logger, output string) {
	logger.Info("Output generated", "output", output, "component", "cli", "phase", "output")
}
