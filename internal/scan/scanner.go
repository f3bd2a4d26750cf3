package scan

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/shipit/internal/execshell"
)

const (
	executorNotConfiguredMessageConstant = "scanner executor not configured"
	scannerUnavailableMessageConstant    = "security scanner unavailable, skipping advisory scan"
	scannerFindingsMessageConstant       = "security scan reported findings"
	scanOutputTemplateConstant           = "%s"
	logFieldScannerErrorConstant         = "scanner_error"
)

// ErrExecutorNotConfigured indicates the runner was constructed without an executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// ScannerExecutor exposes the subset of shell execution used by the runner.
type ScannerExecutor interface {
	ExecuteScanner(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// AdvisoryRunner executes the security scanner without ever failing the caller.
type AdvisoryRunner struct {
	executor ScannerExecutor
	logger   *zap.Logger
}

// NewAdvisoryRunner constructs an AdvisoryRunner from the provided executor and logger.
func NewAdvisoryRunner(executor ScannerExecutor, logger *zap.Logger) (*AdvisoryRunner, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdvisoryRunner{executor: executor, logger: logger}, nil
}

// Run executes the scanner and surfaces its output on the provided writer.
//
// The scan is purely advisory: a missing binary or failing scan is logged and
// reported through the output writer, never returned as an error.
func (runner *AdvisoryRunner) Run(executionContext context.Context, repositoryPath string, output io.Writer) {
	executionResult, executionError := runner.executor.ExecuteScanner(executionContext, execshell.CommandDetails{
		WorkingDirectory: repositoryPath,
	})

	if executionError != nil {
		var commandFailure execshell.CommandFailedError
		if errors.As(executionError, &commandFailure) {
			runner.logger.Warn(scannerFindingsMessageConstant, zap.Int("exit_code", commandFailure.Result.ExitCode))
			runner.writeOutput(output, commandFailure.Result.StandardOutput)
			runner.writeOutput(output, commandFailure.Result.StandardError)
			return
		}
		runner.logger.Warn(scannerUnavailableMessageConstant, zap.String(logFieldScannerErrorConstant, executionError.Error()))
		return
	}

	runner.writeOutput(output, executionResult.StandardOutput)
}

func (runner *AdvisoryRunner) writeOutput(output io.Writer, scanOutput string) {
	if output == nil || len(scanOutput) == 0 {
		return
	}
	fmt.Fprintf(output, scanOutputTemplateConstant, scanOutput)
}
