package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/converger/internal/chart"
	"github.com/roach88/converger/internal/config"
	"github.com/roach88/converger/internal/converge"
	"github.com/roach88/converger/internal/table"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Validation failure (a panel cannot be drawn from the table)
	ExitCommandError = 2 // Command error (missing or malformed input, bad config, I/O)
)

// Error codes reported in CLIError.Code.
const (
	ErrCodeGeneric        = "E001" // Generic/unknown error
	ErrCodeInputNotFound  = "E002" // Input table not found
	ErrCodeInputMalformed = "E003" // Input table could not be parsed
	ErrCodeMissingColumn  = "E004" // Panel references a column the table lacks
	ErrCodeConfigNotFound = "E005" // Configuration file not found
	ErrCodeConfigInvalid  = "E006" // Configuration syntax or schema error
	ErrCodeWriteFailed    = "E007" // Figure write error
	ErrCodeInvalidPanel   = "E008" // Panel spec rejected
	ErrCodeDisplayFailed  = "E009" // On-screen display failed
	ErrCodeValidation     = "E010" // Validation found unusable panels
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// ErrorCode maps an error from the loading, building or rendering stages to
// its CLI error code.
func ErrorCode(err error) string {
	switch table.ErrorCodeOf(err) {
	case table.CodeNotFound:
		return ErrCodeInputNotFound
	case table.CodeMissingColumn, table.CodeUnknownColumn:
		return ErrCodeMissingColumn
	case "":
	default:
		return ErrCodeInputMalformed
	}

	var ce *config.Error
	if errors.As(err, &ce) {
		switch ce.Code {
		case config.CodeNotFound:
			return ErrCodeConfigNotFound
		case config.CodeInvalid:
			return ErrCodeInvalidPanel
		default:
			return ErrCodeConfigInvalid
		}
	}

	switch {
	case chart.IsOutputError(err):
		return ErrCodeWriteFailed
	case errors.Is(err, converge.ErrInvalidSweep):
		return ErrCodeInvalidPanel
	}
	return ErrCodeGeneric
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`           // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`   // success payload
	Error  *CLIError   `json:"error,omitempty"`  // error details
	RunID  string      `json:"run_id,omitempty"` // report run id, when one was generated
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string      `json:"code"`              // "E001", "E002", etc.
	Message string      `json:"message"`           // human-readable message
	Details interface{} `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Fail reports err under message and returns the ExitError the command
// should return.
func (f *OutputFormatter) Fail(exitCode int, message string, err error) error {
	_ = f.Error(ErrorCode(err), fmt.Sprintf("%s: %v", message, err), nil)
	return WrapExitError(exitCode, message, err)
}

// VerboseLog outputs a message only if verbose mode is enabled.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
