package errors

import (
	"fmt"
	"os"
)

// LogHandler is a Handler that logs errors to stderr.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

// HandleSetupError logs a SetupError to stderr.
func (h *LogHandler) HandleSetupError(err *SetupError) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "[ripple setup error] %s\n", err.Error())
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", err.StackTrace)
	}
}

// HandleRenderError logs a RenderError to stderr.
func (h *LogHandler) HandleRenderError(err *RenderError) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "[ripple render error] %s\n", err.Error())
	if h.Verbose {
		if err.Instance != "" {
			fmt.Fprintf(os.Stderr, "instance: %s\n", err.Instance)
		}
		if err.StackTrace != "" {
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", err.StackTrace)
		}
	}
}

// HandleCleanupError logs a CleanupError to stderr.
func (h *LogHandler) HandleCleanupError(err *CleanupError) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "[ripple cleanup error] %s\n", err.Error())
}
