package platform

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/shipit/internal/execshell"
)

const (
	executorNotConfiguredMessageConstant   = "platform executor not configured"
	applicationNameRequiredMessageConstant = "application name must be provided"
	remoteCommandRequiredMessageConstant   = "remote command must be provided"
	operationErrorTemplateConstant         = "%s failed for %s: %v"
	maintenanceOnSubcommandConstant        = "maintenance:on"
	maintenanceOffSubcommandConstant       = "maintenance:off"
	runSubcommandConstant                  = "run"
	restartSubcommandConstant              = "restart"
	applicationFlagConstant                = "--app"
)

// OperationName identifies a platform operation for error reporting.
type OperationName string

// Platform operations surfaced in errors.
const (
	OperationEnableMaintenance  OperationName = "EnableMaintenance"
	OperationDisableMaintenance OperationName = "DisableMaintenance"
	OperationRunRemoteCommand   OperationName = "RunRemoteCommand"
	OperationRestart            OperationName = "Restart"
)

// ErrExecutorNotConfigured indicates the client was constructed without an executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// ErrApplicationNameRequired indicates an operation was attempted without an application identifier.
var ErrApplicationNameRequired = errors.New(applicationNameRequiredMessageConstant)

// ErrRemoteCommandRequired indicates a remote command execution was attempted without a command.
var ErrRemoteCommandRequired = errors.New(remoteCommandRequiredMessageConstant)

// OperationError wraps a failed platform operation with its name and target application.
type OperationError struct {
	Operation       OperationName
	ApplicationName string
	Cause           error
}

// Error describes the failed operation.
func (operationError OperationError) Error() string {
	return fmt.Sprintf(operationErrorTemplateConstant, operationError.Operation, operationError.ApplicationName, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// PlatformExecutor exposes the subset of shell execution used by the client.
type PlatformExecutor interface {
	ExecutePlatformCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Client drives the deployment platform CLI against an explicit application identifier.
type Client struct {
	executor PlatformExecutor
}

// NewClient constructs a Client backed by the supplied executor.
func NewClient(executor PlatformExecutor) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor}, nil
}

// EnableMaintenance takes the application offline for end users.
func (client *Client) EnableMaintenance(executionContext context.Context, applicationName string) error {
	return client.runOperation(executionContext, OperationEnableMaintenance, applicationName, []string{maintenanceOnSubcommandConstant})
}

// DisableMaintenance brings the application back online.
func (client *Client) DisableMaintenance(executionContext context.Context, applicationName string) error {
	return client.runOperation(executionContext, OperationDisableMaintenance, applicationName, []string{maintenanceOffSubcommandConstant})
}

// RunRemoteCommand executes the supplied command on the application's remote environment.
func (client *Client) RunRemoteCommand(executionContext context.Context, applicationName string, remoteCommand string) (string, error) {
	trimmedApplicationName := strings.TrimSpace(applicationName)
	if len(trimmedApplicationName) == 0 {
		return "", OperationError{Operation: OperationRunRemoteCommand, ApplicationName: applicationName, Cause: ErrApplicationNameRequired}
	}

	commandParts := strings.Fields(remoteCommand)
	if len(commandParts) == 0 {
		return "", OperationError{Operation: OperationRunRemoteCommand, ApplicationName: trimmedApplicationName, Cause: ErrRemoteCommandRequired}
	}

	commandArguments := append([]string{runSubcommandConstant}, commandParts...)
	commandArguments = append(commandArguments, applicationFlagConstant, trimmedApplicationName)

	executionResult, executionError := client.executor.ExecutePlatformCLI(executionContext, execshell.CommandDetails{Arguments: commandArguments})
	if executionError != nil {
		return "", OperationError{Operation: OperationRunRemoteCommand, ApplicationName: trimmedApplicationName, Cause: executionError}
	}
	return executionResult.StandardOutput, nil
}

// Restart issues a restart against the application.
func (client *Client) Restart(executionContext context.Context, applicationName string) error {
	return client.runOperation(executionContext, OperationRestart, applicationName, []string{restartSubcommandConstant})
}

func (client *Client) runOperation(executionContext context.Context, operation OperationName, applicationName string, baseArguments []string) error {
	trimmedApplicationName := strings.TrimSpace(applicationName)
	if len(trimmedApplicationName) == 0 {
		return OperationError{Operation: operation, ApplicationName: applicationName, Cause: ErrApplicationNameRequired}
	}

	commandArguments := append(append([]string{}, baseArguments...), applicationFlagConstant, trimmedApplicationName)
	_, executionError := client.executor.ExecutePlatformCLI(executionContext, execshell.CommandDetails{Arguments: commandArguments})
	if executionError != nil {
		return OperationError{Operation: operation, ApplicationName: trimmedApplicationName, Cause: executionError}
	}
	return nil
}
