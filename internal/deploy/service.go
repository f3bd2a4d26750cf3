package deploy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/shipit/internal/execshell"
	"github.com/temirov/shipit/internal/gitrepo"
)

const (
	remoteNameRequiredMessageConstant        = "deployment remote name must be provided"
	remoteNotConfiguredTemplateConstant      = "remote %q is not configured for this repository"
	nothingToDeployMessageConstant           = "nothing to deploy"
	upstreamConflictTemplateConstant         = "upstream merge failed: %v"
	repositoryManagerMissingMessageConstant  = "repository manager not configured"
	platformClientMissingMessageConstant     = "platform client not configured"
	translationPusherMissingMessageConstant  = "translation pusher not configured"
	prompterMissingMessageConstant           = "confirmation prompter not configured"
	stepFailureTemplateConstant              = "deployment step %s failed: %w"
	maintenanceReleaseFailureTemplateConstant = "disabling maintenance mode failed after migration error: %v"
	confirmationPromptConstant               = "Press enter to deploy these commits (Ctrl-C to abort): "
	nothingToDeployOutputTemplateConstant    = "Nothing to deploy: %s/%s already contains every commit on %s\n"
	previewHeaderTemplateConstant            = "Undeployed commits on %s (oldest first):\n"
	previewLineTemplateConstant              = "  %s\n"
	localeSkippedTemplateConstant            = "Locale %s unchanged, skipping translation push\n"
	localeSyncedTemplateConstant             = "Locale %s changed, pushed %s\n"
	localeFailureTemplateConstant            = "Locale %s push failed, continuing: %v\n"
	migrationsSkippedMessageConstant         = "Migrations skipped by request\n"
	deployCompletedTemplateConstant          = "Deployed %d commit(s) to %s\n"

	stepNameValidateTarget      = "validate-target"
	stepNameSecurityScan        = "security-scan"
	stepNameSyncUpstream        = "sync-upstream"
	stepNamePreviewChanges      = "preview-changes"
	stepNamePushUpstream        = "push-upstream"
	stepNameSyncTranslations    = "sync-translations"
	stepNamePushDeployTarget    = "push-deploy-target"
	stepNameMigrateDatabase     = "migrate-database"
	stepNameRestartApplication  = "restart-application"

	logMessageStepStartedConstant   = "deployment step started"
	logMessageLocalePushFailed      = "translation push failed for locale"
	logFieldStepNameConstant        = "step"
	logFieldRemoteNameConstant      = "remote"
	logFieldBranchNameConstant      = "branch"
	logFieldLocaleCodeConstant      = "locale"
	logFieldCommitCountConstant     = "commit_count"
)

// ErrRemoteNameRequired indicates the deployment remote argument was empty.
var ErrRemoteNameRequired = errors.New(remoteNameRequiredMessageConstant)

// ErrNothingToDeploy indicates the deployment remote already contains every local commit.
var ErrNothingToDeploy = errors.New(nothingToDeployMessageConstant)

var (
	errRepositoryManagerMissing = errors.New(repositoryManagerMissingMessageConstant)
	errPlatformClientMissing    = errors.New(platformClientMissingMessageConstant)
	errTranslationPusherMissing = errors.New(translationPusherMissingMessageConstant)
	errPrompterMissing          = errors.New(prompterMissingMessageConstant)
)

// UnknownRemoteError indicates the requested remote is absent from the repository configuration.
type UnknownRemoteError struct {
	RemoteName string
}

// Error describes the unconfigured remote.
func (unknownRemote UnknownRemoteError) Error() string {
	return fmt.Sprintf(remoteNotConfiguredTemplateConstant, unknownRemote.RemoteName)
}

// UpstreamConflictError indicates the upstream merge could not complete and requires manual resolution.
type UpstreamConflictError struct {
	Cause error
}

// Error describes the conflict.
func (conflictError UpstreamConflictError) Error() string {
	return fmt.Sprintf(upstreamConflictTemplateConstant, conflictError.Cause)
}

// Unwrap exposes the underlying cause.
func (conflictError UpstreamConflictError) Unwrap() error {
	return conflictError.Cause
}

// GitRepository exposes the repository operations consumed by the pipeline.
type GitRepository interface {
	RemoteExists(executionContext context.Context, repositoryPath string, remoteName string) (bool, error)
	PullBranch(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error
	FetchRemote(executionContext context.Context, repositoryPath string, remoteName string) error
	ListUndeployedCommits(executionContext context.Context, repositoryPath string, remoteName string, remoteBranchName string, localBranchName string) ([]gitrepo.DeployableCommit, error)
	PathDiffers(executionContext context.Context, repositoryPath string, remoteName string, remoteBranchName string, localBranchName string, filePath string) (bool, error)
	PushBranch(executionContext context.Context, repositoryPath string, remoteName string, localBranchName string, remoteBranchName string, forcePush bool) error
}

// PlatformOperations exposes the deployment platform operations consumed by the pipeline.
type PlatformOperations interface {
	EnableMaintenance(executionContext context.Context, applicationName string) error
	DisableMaintenance(executionContext context.Context, applicationName string) error
	RunRemoteCommand(executionContext context.Context, applicationName string, remoteCommand string) (string, error)
	Restart(executionContext context.Context, applicationName string) error
}

// TranslationPushClient uploads individual translation files.
type TranslationPushClient interface {
	PushFile(executionContext context.Context, repositoryPath string, filePath string) error
}

// SecurityScanner runs an advisory security scan.
type SecurityScanner interface {
	Run(executionContext context.Context, repositoryPath string, output io.Writer)
}

// ConfirmationPrompter blocks until the operator acknowledges the pending deployment.
type ConfirmationPrompter interface {
	AwaitConfirmation(prompt string) error
}

// Dependencies enumerates external collaborators required by the orchestrator.
type Dependencies struct {
	Logger            *zap.Logger
	RepositoryManager GitRepository
	PlatformClient    PlatformOperations
	TranslationPusher TranslationPushClient
	SecurityScanner   SecurityScanner
	Prompter          ConfirmationPrompter
	Output            io.Writer
}

// Options configures a single deployment run.
type Options struct {
	RemoteName     string
	BranchName     string
	RepositoryPath string
	RunMigrations  bool
}

// Result captures the observable outcomes of a deployment run.
type Result struct {
	DeployedCommits []gitrepo.DeployableCommit
	SyncedLocales   []string
	SkippedLocales  []string
	ForcedPush      bool
	MigrationsRun   bool
}

// Service sequences the deployment pipeline against the configured collaborators.
type Service struct {
	logger            *zap.Logger
	configuration     CommandConfiguration
	repositoryManager GitRepository
	platformClient    PlatformOperations
	translationPusher TranslationPushClient
	securityScanner   SecurityScanner
	prompter          ConfirmationPrompter
	output            io.Writer
}

// NewService constructs a Service from the provided configuration and dependencies.
func NewService(configuration CommandConfiguration, dependencies Dependencies) (*Service, error) {
	if dependencies.RepositoryManager == nil {
		return nil, errRepositoryManagerMissing
	}
	if dependencies.PlatformClient == nil {
		return nil, errPlatformClientMissing
	}
	if dependencies.TranslationPusher == nil {
		return nil, errTranslationPusherMissing
	}
	if dependencies.Prompter == nil {
		return nil, errPrompterMissing
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	output := dependencies.Output
	if output == nil {
		output = io.Discard
	}

	return &Service{
		logger:            logger,
		configuration:     configuration.Sanitize(),
		repositoryManager: dependencies.RepositoryManager,
		platformClient:    dependencies.PlatformClient,
		translationPusher: dependencies.TranslationPusher,
		securityScanner:   dependencies.SecurityScanner,
		prompter:          dependencies.Prompter,
		output:            output,
	}, nil
}

// deploymentRun carries per-run state between pipeline steps.
type deploymentRun struct {
	options Options
	result  Result
}

// Deploy executes the full deployment pipeline, stopping at the first failing step.
func (service *Service) Deploy(executionContext context.Context, options Options) (Result, error) {
	run := &deploymentRun{options: options}
	if len(strings.TrimSpace(run.options.BranchName)) == 0 {
		run.options.BranchName = service.configuration.DefaultBranch
	}

	pipeline := []pipelineStep{
		{name: stepNameValidateTarget, execute: service.validateTarget},
		{name: stepNameSecurityScan, execute: service.runSecurityScan},
		{name: stepNameSyncUpstream, execute: service.syncUpstream},
		{name: stepNamePreviewChanges, execute: service.previewChanges},
		{name: stepNamePushUpstream, execute: service.pushUpstream},
		{name: stepNameSyncTranslations, execute: service.syncTranslations},
		{name: stepNamePushDeployTarget, execute: service.pushDeployTarget},
		{name: stepNameMigrateDatabase, execute: service.migrateDatabase},
		{name: stepNameRestartApplication, execute: service.restartApplication},
	}

	executionError := executePipeline(executionContext, pipeline, func(stepName string) {
		service.logger.Debug(
			logMessageStepStartedConstant,
			zap.String(logFieldStepNameConstant, stepName),
			zap.String(logFieldRemoteNameConstant, run.options.RemoteName),
			zap.String(logFieldBranchNameConstant, run.options.BranchName),
		)
	}, run)
	if executionError != nil {
		return Result{}, executionError
	}

	fmt.Fprintf(service.output, deployCompletedTemplateConstant, len(run.result.DeployedCommits), run.options.RemoteName)
	return run.result, nil
}

// validateTarget rejects empty or unconfigured deployment remotes before any mutating step runs.
func (service *Service) validateTarget(executionContext context.Context, run *deploymentRun) error {
	trimmedRemoteName := strings.TrimSpace(run.options.RemoteName)
	if len(trimmedRemoteName) == 0 {
		return ErrRemoteNameRequired
	}
	run.options.RemoteName = trimmedRemoteName

	remoteConfigured, remoteCheckError := service.repositoryManager.RemoteExists(executionContext, run.options.RepositoryPath, trimmedRemoteName)
	if remoteCheckError != nil {
		return remoteCheckError
	}
	if !remoteConfigured {
		return UnknownRemoteError{RemoteName: trimmedRemoteName}
	}
	return nil
}

func (service *Service) runSecurityScan(executionContext context.Context, run *deploymentRun) error {
	if service.securityScanner == nil {
		return nil
	}
	service.securityScanner.Run(executionContext, run.options.RepositoryPath, service.output)
	return nil
}

// syncUpstream merges the upstream branch; a failing merge is recoverable by the operator, not fatal.
func (service *Service) syncUpstream(executionContext context.Context, run *deploymentRun) error {
	pullError := service.repositoryManager.PullBranch(executionContext, run.options.RepositoryPath, service.configuration.UpstreamRemote, run.options.BranchName)
	if pullError == nil {
		return nil
	}

	var commandFailure execshell.CommandFailedError
	if errors.As(pullError, &commandFailure) {
		return UpstreamConflictError{Cause: pullError}
	}
	return pullError
}

func (service *Service) previewChanges(executionContext context.Context, run *deploymentRun) error {
	if fetchError := service.repositoryManager.FetchRemote(executionContext, run.options.RepositoryPath, run.options.RemoteName); fetchError != nil {
		return fetchError
	}

	undeployedCommits, listError := service.repositoryManager.ListUndeployedCommits(
		executionContext,
		run.options.RepositoryPath,
		run.options.RemoteName,
		service.configuration.DeployBranch,
		run.options.BranchName,
	)
	if listError != nil {
		return listError
	}

	if len(undeployedCommits) == 0 {
		fmt.Fprintf(service.output, nothingToDeployOutputTemplateConstant, run.options.RemoteName, service.configuration.DeployBranch, run.options.BranchName)
		return ErrNothingToDeploy
	}

	run.result.DeployedCommits = undeployedCommits
	service.logger.Info(
		logMessageStepStartedConstant,
		zap.String(logFieldStepNameConstant, stepNamePreviewChanges),
		zap.Int(logFieldCommitCountConstant, len(undeployedCommits)),
	)

	fmt.Fprintf(service.output, previewHeaderTemplateConstant, run.options.RemoteName)
	for _, undeployedCommit := range undeployedCommits {
		fmt.Fprintf(service.output, previewLineTemplateConstant, undeployedCommit.Format())
	}

	return service.prompter.AwaitConfirmation(confirmationPromptConstant)
}

// pushUpstream keeps the upstream remote the single source of truth before production moves.
func (service *Service) pushUpstream(executionContext context.Context, run *deploymentRun) error {
	return service.repositoryManager.PushBranch(
		executionContext,
		run.options.RepositoryPath,
		service.configuration.UpstreamRemote,
		run.options.BranchName,
		service.configuration.DeployBranch,
		false,
	)
}

// syncTranslations pushes each changed locale file independently; one locale's failure never blocks the rest.
func (service *Service) syncTranslations(executionContext context.Context, run *deploymentRun) error {
	for _, locale := range service.configuration.Locales {
		localeDiffers, diffError := service.repositoryManager.PathDiffers(
			executionContext,
			run.options.RepositoryPath,
			run.options.RemoteName,
			service.configuration.DeployBranch,
			run.options.BranchName,
			locale.Path,
		)
		if diffError != nil {
			return diffError
		}

		if !localeDiffers {
			run.result.SkippedLocales = append(run.result.SkippedLocales, locale.Code)
			fmt.Fprintf(service.output, localeSkippedTemplateConstant, locale.Code)
			continue
		}

		if pushError := service.translationPusher.PushFile(executionContext, run.options.RepositoryPath, locale.Path); pushError != nil {
			service.logger.Warn(
				logMessageLocalePushFailed,
				zap.String(logFieldLocaleCodeConstant, locale.Code),
				zap.Error(pushError),
			)
			fmt.Fprintf(service.output, localeFailureTemplateConstant, locale.Code, pushError)
			continue
		}

		run.result.SyncedLocales = append(run.result.SyncedLocales, locale.Code)
		fmt.Fprintf(service.output, localeSyncedTemplateConstant, locale.Code, locale.Path)
	}
	return nil
}

// pushDeployTarget force-pushes to disposable targets but never rewrites production history.
func (service *Service) pushDeployTarget(executionContext context.Context, run *deploymentRun) error {
	forcePush := run.options.RemoteName != service.configuration.ProductionRemote
	run.result.ForcedPush = forcePush
	return service.repositoryManager.PushBranch(
		executionContext,
		run.options.RepositoryPath,
		run.options.RemoteName,
		run.options.BranchName,
		service.configuration.DeployBranch,
		forcePush,
	)
}

// migrateDatabase brackets the migration with maintenance mode. Maintenance is
// always released after a migration attempt; when both the migration and the
// release fail, the migration error wins and the release failure is logged.
func (service *Service) migrateDatabase(executionContext context.Context, run *deploymentRun) error {
	if !run.options.RunMigrations {
		fmt.Fprint(service.output, migrationsSkippedMessageConstant)
		return nil
	}

	applicationName := service.resolveApplicationName(run.options.RemoteName)
	if enableError := service.platformClient.EnableMaintenance(executionContext, applicationName); enableError != nil {
		return enableError
	}

	migrationOutput, migrationError := service.platformClient.RunRemoteCommand(executionContext, applicationName, service.configuration.MigrateCommand)
	if len(migrationOutput) > 0 {
		fmt.Fprint(service.output, migrationOutput)
	}

	if disableError := service.platformClient.DisableMaintenance(executionContext, applicationName); disableError != nil {
		if migrationError != nil {
			service.logger.Error(fmt.Sprintf(maintenanceReleaseFailureTemplateConstant, disableError))
		} else {
			return disableError
		}
	}

	if migrationError != nil {
		return migrationError
	}

	run.result.MigrationsRun = true
	return nil
}

func (service *Service) restartApplication(executionContext context.Context, run *deploymentRun) error {
	return service.platformClient.Restart(executionContext, service.resolveApplicationName(run.options.RemoteName))
}

// resolveApplicationName prefers the configured identifier and falls back to the remote name.
func (service *Service) resolveApplicationName(remoteName string) string {
	if len(service.configuration.ApplicationName) > 0 {
		return service.configuration.ApplicationName
	}
	return remoteName
}
