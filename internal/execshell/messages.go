package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
)

const (
	gitFetchSubcommandNameConstant = "fetch"
	gitPullSubcommandNameConstant  = "pull"
	gitPushSubcommandNameConstant  = "push"
	gitLogSubcommandNameConstant   = "log"
	gitDiffSubcommandNameConstant  = "diff"
	gitForcePushFlagConstant       = "--force"
)

const (
	gitFetchStartTemplateConstant            = "Fetching %s"
	gitFetchSuccessTemplateConstant          = "Fetched %s"
	gitFetchFailureTemplateConstant          = "Failed to fetch %s (exit code %d%s)"
	gitFetchExecutionFailureTemplateConstant = "Unable to fetch %s: %s"
	gitPullStartTemplateConstant             = "Pulling %s"
	gitPullSuccessTemplateConstant           = "Pulled %s"
	gitPullFailureTemplateConstant           = "Failed to pull %s (exit code %d%s)"
	gitPullExecutionFailureTemplateConstant  = "Unable to pull %s: %s"
	gitPushStartTemplateConstant             = "Pushing %s"
	gitForcePushStartTemplateConstant        = "Force pushing %s"
	gitPushSuccessTemplateConstant           = "Pushed %s"
	gitPushFailureTemplateConstant           = "Failed to push %s (exit code %d%s)"
	gitPushExecutionFailureTemplateConstant  = "Unable to push %s: %s"
	gitLogStartTemplateConstant              = "Listing commits %s"
	gitLogSuccessTemplateConstant            = "Listed commits %s"
	gitLogFailureTemplateConstant            = "Failed to list commits %s (exit code %d%s)"
	gitLogExecutionFailureTemplateConstant   = "Unable to list commits %s: %s"
	gitDiffStartTemplateConstant             = "Comparing %s"
	gitDiffSuccessTemplateConstant           = "Compared %s"
	gitDiffFailureTemplateConstant           = "Failed to compare %s (exit code %d%s)"
	gitDiffExecutionFailureTemplateConstant  = "Unable to compare %s: %s"
	remainingArgumentsFallbackLabelConstant  = "repository state"
)

const (
	platformMaintenanceOnSubcommandConstant  = "maintenance:on"
	platformMaintenanceOffSubcommandConstant = "maintenance:off"
	platformRunSubcommandConstant            = "run"
	platformRestartSubcommandConstant        = "restart"
	platformApplicationFlagConstant          = "--app"
)

const (
	platformMaintenanceOnStartTemplateConstant    = "Enabling maintenance mode on %s"
	platformMaintenanceOnSuccessTemplateConstant  = "Maintenance mode enabled on %s"
	platformMaintenanceOffStartTemplateConstant   = "Disabling maintenance mode on %s"
	platformMaintenanceOffSuccessTemplateConstant = "Maintenance mode disabled on %s"
	platformRunStartTemplateConstant              = "Running %q on %s"
	platformRunSuccessTemplateConstant            = "Finished %q on %s"
	platformRestartStartTemplateConstant          = "Restarting %s"
	platformRestartSuccessTemplateConstant        = "Restarted %s"
	platformFailureTemplateConstant               = "Platform command %s failed on %s (exit code %d%s)"
	platformExecutionFailureTemplateConstant      = "Unable to run platform command %s on %s: %s"
	platformUnknownApplicationLabelConstant       = "the application"
)

const (
	translationPushStartTemplateConstant            = "Pushing translation file %s"
	translationPushSuccessTemplateConstant          = "Pushed translation file %s"
	translationPushFailureTemplateConstant          = "Failed to push translation file %s (exit code %d%s)"
	translationPushExecutionFailureTemplateConstant = "Unable to push translation file %s: %s"
	scannerStartMessageConstant                     = "Running security scan"
	scannerSuccessMessageConstant                   = "Security scan completed"
	scannerFailureTemplateConstant                  = "Security scan reported findings (exit code %d%s)"
	scannerExecutionFailureTemplateConstant         = "Security scan unavailable: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	case CommandPlatformCLI:
		return formatter.describePlatformMessage(command, result, failure, stage)
	case CommandTranslation:
		return formatter.describeTranslationMessage(command, result, failure, stage)
	case CommandScanner:
		return formatter.describeScannerMessage(result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subject := formatter.describeRemainingArguments(arguments)
	subcommand := strings.TrimSpace(arguments[0])
	switch subcommand {
	case gitFetchSubcommandNameConstant:
		return formatter.renderStagedMessage(stage, subject, result, failure,
			gitFetchStartTemplateConstant, gitFetchSuccessTemplateConstant, gitFetchFailureTemplateConstant, gitFetchExecutionFailureTemplateConstant)
	case gitPullSubcommandNameConstant:
		return formatter.renderStagedMessage(stage, subject, result, failure,
			gitPullStartTemplateConstant, gitPullSuccessTemplateConstant, gitPullFailureTemplateConstant, gitPullExecutionFailureTemplateConstant)
	case gitPushSubcommandNameConstant:
		startTemplate := gitPushStartTemplateConstant
		if containsArgument(arguments, gitForcePushFlagConstant) {
			startTemplate = gitForcePushStartTemplateConstant
		}
		return formatter.renderStagedMessage(stage, subject, result, failure,
			startTemplate, gitPushSuccessTemplateConstant, gitPushFailureTemplateConstant, gitPushExecutionFailureTemplateConstant)
	case gitLogSubcommandNameConstant:
		return formatter.renderStagedMessage(stage, subject, result, failure,
			gitLogStartTemplateConstant, gitLogSuccessTemplateConstant, gitLogFailureTemplateConstant, gitLogExecutionFailureTemplateConstant)
	case gitDiffSubcommandNameConstant:
		return formatter.renderStagedMessage(stage, subject, result, failure,
			gitDiffStartTemplateConstant, gitDiffSuccessTemplateConstant, gitDiffFailureTemplateConstant, gitDiffExecutionFailureTemplateConstant)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describePlatformMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	applicationName := formatter.resolveApplicationName(arguments)
	subcommand := strings.TrimSpace(arguments[0])

	switch stage {
	case messageStageStart:
		switch subcommand {
		case platformMaintenanceOnSubcommandConstant:
			return fmt.Sprintf(platformMaintenanceOnStartTemplateConstant, applicationName)
		case platformMaintenanceOffSubcommandConstant:
			return fmt.Sprintf(platformMaintenanceOffStartTemplateConstant, applicationName)
		case platformRunSubcommandConstant:
			return fmt.Sprintf(platformRunStartTemplateConstant, formatter.resolveRemoteCommand(arguments), applicationName)
		case platformRestartSubcommandConstant:
			return fmt.Sprintf(platformRestartStartTemplateConstant, applicationName)
		}
	case messageStageSuccess:
		switch subcommand {
		case platformMaintenanceOnSubcommandConstant:
			return fmt.Sprintf(platformMaintenanceOnSuccessTemplateConstant, applicationName)
		case platformMaintenanceOffSubcommandConstant:
			return fmt.Sprintf(platformMaintenanceOffSuccessTemplateConstant, applicationName)
		case platformRunSubcommandConstant:
			return fmt.Sprintf(platformRunSuccessTemplateConstant, formatter.resolveRemoteCommand(arguments), applicationName)
		case platformRestartSubcommandConstant:
			return fmt.Sprintf(platformRestartSuccessTemplateConstant, applicationName)
		}
	case messageStageFailure:
		return fmt.Sprintf(platformFailureTemplateConstant, subcommand, applicationName, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(platformExecutionFailureTemplateConstant, subcommand, applicationName, formatter.describeFailure(failure))
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeTranslationMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	filePath := emptyStringConstant
	if len(arguments) > 0 {
		filePath = strings.TrimSpace(arguments[len(arguments)-1])
	}
	if len(filePath) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	return formatter.renderStagedMessage(stage, filePath, result, failure,
		translationPushStartTemplateConstant, translationPushSuccessTemplateConstant, translationPushFailureTemplateConstant, translationPushExecutionFailureTemplateConstant)
}

func (formatter CommandMessageFormatter) describeScannerMessage(result ExecutionResult, failure error, stage messageStage) string {
	switch stage {
	case messageStageStart:
		return scannerStartMessageConstant
	case messageStageSuccess:
		return scannerSuccessMessageConstant
	case messageStageFailure:
		return fmt.Sprintf(scannerFailureTemplateConstant, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(scannerExecutionFailureTemplateConstant, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) renderStagedMessage(stage messageStage, subject string, result ExecutionResult, failure error, startTemplate string, successTemplate string, failureTemplate string, executionFailureTemplate string) string {
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(startTemplate, subject)
	case messageStageSuccess:
		return fmt.Sprintf(successTemplate, subject)
	case messageStageFailure:
		return fmt.Sprintf(failureTemplate, subject, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(executionFailureTemplate, subject, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeRemainingArguments(arguments []string) string {
	meaningfulArguments := make([]string, 0, len(arguments))
	for argumentIndex := 1; argumentIndex < len(arguments); argumentIndex++ {
		trimmedArgument := strings.TrimSpace(arguments[argumentIndex])
		if len(trimmedArgument) == 0 || strings.HasPrefix(trimmedArgument, "-") {
			continue
		}
		meaningfulArguments = append(meaningfulArguments, trimmedArgument)
	}
	if len(meaningfulArguments) == 0 {
		return remainingArgumentsFallbackLabelConstant
	}
	return strings.Join(meaningfulArguments, commandArgumentsJoinSeparatorConstant)
}

func (formatter CommandMessageFormatter) resolveApplicationName(arguments []string) string {
	for argumentIndex, argument := range arguments {
		if strings.TrimSpace(argument) == platformApplicationFlagConstant && argumentIndex+1 < len(arguments) {
			return strings.TrimSpace(arguments[argumentIndex+1])
		}
	}
	return platformUnknownApplicationLabelConstant
}

func (formatter CommandMessageFormatter) resolveRemoteCommand(arguments []string) string {
	remoteCommandParts := make([]string, 0, len(arguments))
	for argumentIndex := 1; argumentIndex < len(arguments); argumentIndex++ {
		trimmedArgument := strings.TrimSpace(arguments[argumentIndex])
		if trimmedArgument == platformApplicationFlagConstant {
			break
		}
		remoteCommandParts = append(remoteCommandParts, trimmedArgument)
	}
	return strings.Join(remoteCommandParts, commandArgumentsJoinSeparatorConstant)
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandParts := []string{string(command.Name)}
	if len(command.Details.Arguments) > 0 {
		commandParts = append(commandParts, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	commandLabel := strings.Join(commandParts, commandArgumentsJoinSeparatorConstant)
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return commandLabel
	}
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory))
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func containsArgument(arguments []string, candidate string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == candidate {
			return true
		}
	}
	return false
}
