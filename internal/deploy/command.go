package deploy

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/shipit/internal/execshell"
	"github.com/temirov/shipit/internal/gitrepo"
	"github.com/temirov/shipit/internal/platform"
	"github.com/temirov/shipit/internal/scan"
	"github.com/temirov/shipit/internal/translation"
	"github.com/temirov/shipit/internal/ui"
	"github.com/temirov/shipit/internal/utils"
)

const (
	commandUseConstant              = "deploy <remote> [migration-mode]"
	commandShortDescriptionConstant = "Deploy the application to a configured remote"
	commandLongDescriptionConstant  = "deploy synchronizes the working branch with upstream, previews undeployed commits, pushes translations, deploys to the selected remote, and runs migrations inside a maintenance window."
	skipMigrationsArgumentConstant  = "no-migrations"
	branchEnvironmentVariableName   = "BRANCH"
	remoteArgumentIndexConstant     = 0
	migrationArgumentIndexConstant  = 1
	conflictGuidanceMessageConstant = "Upstream merge could not complete. Resolve the conflicts manually and rerun the deployment.\n"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the deploy command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
	WorkingDirectory             string
	RepositoryManager            GitRepository
	PlatformClient               PlatformOperations
	TranslationPusher            TranslationPushClient
	SecurityScanner              SecurityScanner
	Prompter                     ConfirmationPrompter
}

// Build constructs the deploy command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.RangeArgs(1, 2),
		RunE:  builder.run,
	}
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	options := Options{
		RemoteName:     arguments[remoteArgumentIndexConstant],
		BranchName:     resolveBranchName(configuration),
		RepositoryPath: builder.WorkingDirectory,
		RunMigrations:  resolveMigrationMode(arguments),
	}

	logger := builder.resolveLogger()
	outputWriter := utils.NewFlushingWriter(command.OutOrStdout())

	gitExecutor, executorError := builder.resolveExecutor(logger)
	if executorError != nil {
		return executorError
	}

	dependencies, dependenciesError := builder.resolveDependencies(logger, gitExecutor, command, outputWriter)
	if dependenciesError != nil {
		return dependenciesError
	}

	service, serviceError := NewService(configuration, dependencies)
	if serviceError != nil {
		return serviceError
	}

	_, deploymentError := service.Deploy(command.Context(), options)
	if deploymentError == nil {
		return nil
	}

	// A failed upstream merge is recoverable by the operator outside the tool,
	// so it reports guidance and exits successfully.
	var upstreamConflict UpstreamConflictError
	if errors.As(deploymentError, &upstreamConflict) {
		fmt.Fprint(command.OutOrStdout(), conflictGuidanceMessageConstant)
		return nil
	}

	var unknownRemote UnknownRemoteError
	if errors.Is(deploymentError, ErrRemoteNameRequired) || errors.As(deploymentError, &unknownRemote) {
		_ = command.Help()
		return deploymentError
	}

	return deploymentError
}

func (builder *CommandBuilder) resolveDependencies(logger *zap.Logger, gitExecutor *execshell.ShellExecutor, command *cobra.Command, outputWriter io.Writer) (Dependencies, error) {
	dependencies := Dependencies{
		Logger:            logger,
		RepositoryManager: builder.RepositoryManager,
		PlatformClient:    builder.PlatformClient,
		TranslationPusher: builder.TranslationPusher,
		SecurityScanner:   builder.SecurityScanner,
		Prompter:          builder.Prompter,
		Output:            outputWriter,
	}

	if dependencies.RepositoryManager == nil {
		repositoryManager, managerError := gitrepo.NewRepositoryManager(gitExecutor)
		if managerError != nil {
			return Dependencies{}, managerError
		}
		dependencies.RepositoryManager = repositoryManager
	}

	if dependencies.PlatformClient == nil {
		platformClient, clientError := platform.NewClient(gitExecutor)
		if clientError != nil {
			return Dependencies{}, clientError
		}
		dependencies.PlatformClient = platformClient
	}

	if dependencies.TranslationPusher == nil {
		translationPusher, pusherError := translation.NewPusher(gitExecutor)
		if pusherError != nil {
			return Dependencies{}, pusherError
		}
		dependencies.TranslationPusher = translationPusher
	}

	if dependencies.SecurityScanner == nil {
		advisoryRunner, runnerError := scan.NewAdvisoryRunner(gitExecutor, logger)
		if runnerError != nil {
			return Dependencies{}, runnerError
		}
		dependencies.SecurityScanner = advisoryRunner
	}

	if dependencies.Prompter == nil {
		dependencies.Prompter = NewIOConfirmationPrompter(command.InOrStdin(), outputWriter)
	}

	return dependencies, nil
}

func (builder *CommandBuilder) resolveExecutor(logger *zap.Logger) (*execshell.ShellExecutor, error) {
	commandRunner := execshell.NewOSCommandRunner()
	if builder.humanReadableLoggingEnabled() {
		return execshell.NewShellExecutorWithObserver(logger, commandRunner, ui.NewConsoleCommandEventLogger(logger))
	}
	return execshell.NewShellExecutor(logger, commandRunner)
}

func (builder *CommandBuilder) humanReadableLoggingEnabled() bool {
	if builder.HumanReadableLoggingProvider == nil {
		return false
	}
	return builder.HumanReadableLoggingProvider()
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// resolveBranchName honors the BRANCH environment variable over the configured default.
func resolveBranchName(configuration CommandConfiguration) string {
	if branchOverride := os.Getenv(branchEnvironmentVariableName); len(branchOverride) > 0 {
		return branchOverride
	}
	return configuration.DefaultBranch
}

// resolveMigrationMode skips migrations only for the literal no-migrations argument.
func resolveMigrationMode(arguments []string) bool {
	if len(arguments) <= migrationArgumentIndexConstant {
		return true
	}
	return arguments[migrationArgumentIndexConstant] != skipMigrationsArgumentConstant
}
