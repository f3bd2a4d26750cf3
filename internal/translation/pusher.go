package translation

import (
	"context"
	"errors"
	"strings"

	"github.com/temirov/shipit/internal/execshell"
)

const (
	executorNotConfiguredMessageConstant = "translation executor not configured"
	filePathRequiredMessageConstant      = "translation file path must be provided"
	pushSubcommandConstant               = "push"
	translationsFlagConstant             = "-t"
	fileFlagConstant                     = "-f"
)

// ErrExecutorNotConfigured indicates the pusher was constructed without an executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// ErrFilePathRequired indicates a push was attempted without a file path.
var ErrFilePathRequired = errors.New(filePathRequiredMessageConstant)

// TranslationExecutor exposes the subset of shell execution used by the pusher.
type TranslationExecutor interface {
	ExecuteTranslation(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Pusher uploads individual translation files to the hosted localization service.
type Pusher struct {
	executor TranslationExecutor
}

// NewPusher constructs a Pusher backed by the supplied executor.
func NewPusher(executor TranslationExecutor) (*Pusher, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Pusher{executor: executor}, nil
}

// PushFile uploads a single translation file.
func (pusher *Pusher) PushFile(executionContext context.Context, repositoryPath string, filePath string) error {
	trimmedFilePath := strings.TrimSpace(filePath)
	if len(trimmedFilePath) == 0 {
		return ErrFilePathRequired
	}

	_, executionError := pusher.executor.ExecuteTranslation(executionContext, execshell.CommandDetails{
		Arguments:        []string{pushSubcommandConstant, translationsFlagConstant, fileFlagConstant, trimmedFilePath},
		WorkingDirectory: strings.TrimSpace(repositoryPath),
	})
	return executionError
}
