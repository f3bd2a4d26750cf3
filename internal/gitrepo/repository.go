package gitrepo

import (
	"context"
	"errors"
	"strings"

	"github.com/temirov/shipit/internal/execshell"
)

const (
	executorNotConfiguredMessageConstant = "git executor not configured"
	gitRemoteSubcommandConstant          = "remote"
	gitPullSubcommandConstant            = "pull"
	gitFetchSubcommandConstant           = "fetch"
	gitPushSubcommandConstant            = "push"
	gitLogSubcommandConstant             = "log"
	gitDiffSubcommandConstant            = "diff"
	gitForcePushFlagConstant             = "--force"
	gitDiffQuietFlagConstant             = "--quiet"
	gitLogReverseFlagConstant            = "--reverse"
	gitLogFormatFlagConstant             = "--pretty=format:%h%x1f%ar%x1f%s%x1f%an"
	gitPathSeparatorConstant             = "--"
	remoteReferenceSeparatorConstant     = "/"
	revisionRangeSeparatorConstant       = ".."
	refSpecSeparatorConstant             = ":"
	gitTerminalPromptEnvironmentName     = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptDisableValue        = "0"
)

// ErrExecutorNotConfigured indicates the repository manager was constructed without an executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// GitExecutor exposes the subset of shell execution used by repository operations.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryManager exposes repository-level git operations for the deployment pipeline.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager backed by the supplied executor.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// ListRemotes returns the names of all configured remotes.
func (manager *RepositoryManager) ListRemotes(executionContext context.Context, repositoryPath string) ([]string, error) {
	executionResult, executionError := manager.executeGit(executionContext, repositoryPath, gitRemoteSubcommandConstant)
	if executionError != nil {
		return nil, executionError
	}

	remoteNames := make([]string, 0)
	for _, outputLine := range strings.Split(executionResult.StandardOutput, "\n") {
		trimmedLine := strings.TrimSpace(outputLine)
		if len(trimmedLine) == 0 {
			continue
		}
		remoteNames = append(remoteNames, trimmedLine)
	}
	return remoteNames, nil
}

// RemoteExists reports whether the named remote is configured for the repository.
func (manager *RepositoryManager) RemoteExists(executionContext context.Context, repositoryPath string, remoteName string) (bool, error) {
	remoteNames, listError := manager.ListRemotes(executionContext, repositoryPath)
	if listError != nil {
		return false, listError
	}
	for _, configuredRemote := range remoteNames {
		if configuredRemote == strings.TrimSpace(remoteName) {
			return true, nil
		}
	}
	return false, nil
}

// PullBranch merges the latest state of the remote branch into the local working branch.
func (manager *RepositoryManager) PullBranch(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error {
	_, executionError := manager.executeGit(executionContext, repositoryPath, gitPullSubcommandConstant, remoteName, branchName)
	return executionError
}

// FetchRemote retrieves the latest state of the named remote without merging.
func (manager *RepositoryManager) FetchRemote(executionContext context.Context, repositoryPath string, remoteName string) error {
	_, executionError := manager.executeGit(executionContext, repositoryPath, gitFetchSubcommandConstant, remoteName)
	return executionError
}

// ListUndeployedCommits returns commits present on the local branch but absent from the remote branch, oldest first.
func (manager *RepositoryManager) ListUndeployedCommits(executionContext context.Context, repositoryPath string, remoteName string, remoteBranchName string, localBranchName string) ([]DeployableCommit, error) {
	revisionRange := remoteName + remoteReferenceSeparatorConstant + remoteBranchName + revisionRangeSeparatorConstant + localBranchName
	executionResult, executionError := manager.executeGit(executionContext, repositoryPath, gitLogSubcommandConstant, gitLogReverseFlagConstant, gitLogFormatFlagConstant, revisionRange)
	if executionError != nil {
		return nil, executionError
	}
	return ParseCommitLog(executionResult.StandardOutput), nil
}

// PathDiffers reports whether the file at the given path differs between the remote branch and the local branch.
func (manager *RepositoryManager) PathDiffers(executionContext context.Context, repositoryPath string, remoteName string, remoteBranchName string, localBranchName string, filePath string) (bool, error) {
	remoteReference := remoteName + remoteReferenceSeparatorConstant + remoteBranchName
	_, executionError := manager.executeGit(executionContext, repositoryPath, gitDiffSubcommandConstant, gitDiffQuietFlagConstant, remoteReference, localBranchName, gitPathSeparatorConstant, filePath)
	if executionError == nil {
		return false, nil
	}

	// git diff --quiet exits 1 when the paths differ; anything else is a real failure.
	var commandFailure execshell.CommandFailedError
	if errors.As(executionError, &commandFailure) && commandFailure.Result.ExitCode == 1 {
		return true, nil
	}
	return false, executionError
}

// PushBranch pushes the local branch to the named remote branch, optionally forcing the update.
func (manager *RepositoryManager) PushBranch(executionContext context.Context, repositoryPath string, remoteName string, localBranchName string, remoteBranchName string, forcePush bool) error {
	refSpec := localBranchName + refSpecSeparatorConstant + remoteBranchName
	pushArguments := []string{gitPushSubcommandConstant}
	if forcePush {
		pushArguments = append(pushArguments, gitForcePushFlagConstant)
	}
	pushArguments = append(pushArguments, remoteName, refSpec)

	_, executionError := manager.executeGit(executionContext, repositoryPath, pushArguments...)
	return executionError
}

func (manager *RepositoryManager) executeGit(executionContext context.Context, repositoryPath string, arguments ...string) (execshell.ExecutionResult, error) {
	return manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: strings.TrimSpace(repositoryPath),
		EnvironmentVariables: map[string]string{
			gitTerminalPromptEnvironmentName: gitTerminalPromptDisableValue,
		},
	})
}
