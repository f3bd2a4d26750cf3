package deploy_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/shipit/internal/deploy"
	"github.com/temirov/shipit/internal/execshell"
)

const (
	deployCommandUseConstant       = "deploy <remote> [migration-mode]"
	skipMigrationsArgumentForTests = "no-migrations"
	branchEnvironmentVariable      = "BRANCH"
	overrideBranchNameConstant     = "release-2026-08"
)

func newCommandFixture() (*serviceFixture, *deploy.CommandBuilder) {
	fixture := newServiceFixture()
	builder := &deploy.CommandBuilder{
		LoggerProvider:               func() *zap.Logger { return zap.NewNop() },
		HumanReadableLoggingProvider: func() bool { return false },
		ConfigurationProvider:        fixture.configuration,
		WorkingDirectory:             testRepositoryPathConstant,
		RepositoryManager:            fixture.repository,
		PlatformClient:               fixture.platform,
		TranslationPusher:            fixture.translation,
		SecurityScanner:              fixture.scanner,
		Prompter:                     fixture.prompter,
	}
	return fixture, builder
}

func TestCommandMetadata(testInstance *testing.T) {
	_, builder := newCommandFixture()

	command, buildError := builder.Build()

	require.NoError(testInstance, buildError)
	require.Equal(testInstance, deployCommandUseConstant, command.Use)
	require.NotEmpty(testInstance, command.Short)
}

func TestCommandRunsFullDeployment(testInstance *testing.T) {
	fixture, builder := newCommandFixture()

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuilder := &strings.Builder{}
	command.SetOut(outputBuilder)
	command.SetErr(outputBuilder)
	command.SetArgs([]string{testRemoteNameConstant})

	require.NoError(testInstance, command.Execute())
	require.Contains(testInstance, fixture.calls, callAwaitConfirmationConstant)
	require.Contains(testInstance, fixture.calls, "maintenance-on "+testApplicationNameConstant)
	require.Contains(testInstance, fixture.calls, "restart "+testApplicationNameConstant)
}

func TestCommandSkipsMigrationsForLiteralArgument(testInstance *testing.T) {
	fixture, builder := newCommandFixture()

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetOut(&strings.Builder{})
	command.SetArgs([]string{testRemoteNameConstant, skipMigrationsArgumentForTests})

	require.NoError(testInstance, command.Execute())
	require.NotContains(testInstance, fixture.calls, "maintenance-on "+testApplicationNameConstant)
	require.Contains(testInstance, fixture.calls, "restart "+testApplicationNameConstant)
}

func TestCommandHonorsBranchEnvironmentOverride(testInstance *testing.T) {
	fixture, builder := newCommandFixture()
	testInstance.Setenv(branchEnvironmentVariable, overrideBranchNameConstant)

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetOut(&strings.Builder{})
	command.SetArgs([]string{testRemoteNameConstant})

	require.NoError(testInstance, command.Execute())
	require.Contains(testInstance, fixture.calls, "pull "+testUpstreamRemoteConstant+" "+overrideBranchNameConstant)
}

func TestCommandReportsUpstreamConflictWithoutFailing(testInstance *testing.T) {
	fixture, builder := newCommandFixture()
	fixture.repository.pullError = execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: execshell.CommandGit},
		Result:  execshell.ExecutionResult{ExitCode: 1, StandardError: "merge conflict"},
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuilder := &strings.Builder{}
	command.SetOut(outputBuilder)
	command.SetArgs([]string{testRemoteNameConstant})

	require.NoError(testInstance, command.Execute())
	require.Contains(testInstance, outputBuilder.String(), "Resolve the conflicts manually")
}

func TestCommandFailsForUnknownRemote(testInstance *testing.T) {
	fixture, builder := newCommandFixture()
	fixture.repository.remoteExists = false

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetOut(&strings.Builder{})
	command.SetErr(&strings.Builder{})
	command.SetArgs([]string{testRemoteNameConstant})
	command.SilenceUsage = true
	command.SilenceErrors = true

	executionError := command.Execute()

	var unknownRemote deploy.UnknownRemoteError
	require.ErrorAs(testInstance, executionError, &unknownRemote)
}

func TestCommandFailsWhenNothingToDeploy(testInstance *testing.T) {
	fixture, builder := newCommandFixture()
	fixture.repository.commits = nil

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetOut(&strings.Builder{})
	command.SetErr(&strings.Builder{})
	command.SetArgs([]string{testRemoteNameConstant})
	command.SilenceUsage = true
	command.SilenceErrors = true

	require.ErrorIs(testInstance, command.Execute(), deploy.ErrNothingToDeploy)
}
