package execshell_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/shipit/internal/execshell"
)

const (
	testFetchStartCaseNameConstant        = "git_fetch_start"
	testPullFailureCaseNameConstant       = "git_pull_failure"
	testForcePushStartCaseNameConstant    = "git_force_push_start"
	testMaintenanceOnCaseNameConstant     = "platform_maintenance_on"
	testPlatformRunCaseNameConstant       = "platform_run_start"
	testTranslationPushCaseNameConstant   = "translation_push_success"
	testScannerUnavailableCaseNameConstant = "scanner_execution_failure"
	testGenericCommandCaseNameConstant    = "generic_command_start"
)

func TestCommandMessageFormatterDescribesPipelineCommands(testInstance *testing.T) {
	formatter := execshell.CommandMessageFormatter{}

	testCases := []struct {
		name            string
		buildMessage    func() string
		expectedMessage string
	}{
		{
			name: testFetchStartCaseNameConstant,
			buildMessage: func() string {
				return formatter.BuildStartedMessage(execshell.ShellCommand{
					Name:    execshell.CommandGit,
					Details: execshell.CommandDetails{Arguments: []string{"fetch", "staging"}},
				})
			},
			expectedMessage: "Fetching staging",
		},
		{
			name: testPullFailureCaseNameConstant,
			buildMessage: func() string {
				return formatter.BuildFailureMessage(execshell.ShellCommand{
					Name:    execshell.CommandGit,
					Details: execshell.CommandDetails{Arguments: []string{"pull", "origin", "master"}},
				}, execshell.ExecutionResult{ExitCode: 1, StandardError: "merge conflict"})
			},
			expectedMessage: "Failed to pull origin master (exit code 1: merge conflict)",
		},
		{
			name: testForcePushStartCaseNameConstant,
			buildMessage: func() string {
				return formatter.BuildStartedMessage(execshell.ShellCommand{
					Name:    execshell.CommandGit,
					Details: execshell.CommandDetails{Arguments: []string{"push", "--force", "staging", "master:main"}},
				})
			},
			expectedMessage: "Force pushing staging master:main",
		},
		{
			name: testMaintenanceOnCaseNameConstant,
			buildMessage: func() string {
				return formatter.BuildStartedMessage(execshell.ShellCommand{
					Name:    execshell.CommandPlatformCLI,
					Details: execshell.CommandDetails{Arguments: []string{"maintenance:on", "--app", "sample-app"}},
				})
			},
			expectedMessage: "Enabling maintenance mode on sample-app",
		},
		{
			name: testPlatformRunCaseNameConstant,
			buildMessage: func() string {
				return formatter.BuildStartedMessage(execshell.ShellCommand{
					Name:    execshell.CommandPlatformCLI,
					Details: execshell.CommandDetails{Arguments: []string{"run", "rake", "db:migrate", "--app", "sample-app"}},
				})
			},
			expectedMessage: "Running \"rake db:migrate\" on sample-app",
		},
		{
			name: testTranslationPushCaseNameConstant,
			buildMessage: func() string {
				return formatter.BuildSuccessMessage(execshell.ShellCommand{
					Name:    execshell.CommandTranslation,
					Details: execshell.CommandDetails{Arguments: []string{"push", "-t", "-f", "config/locales/de.yml"}},
				})
			},
			expectedMessage: "Pushed translation file config/locales/de.yml",
		},
		{
			name: testScannerUnavailableCaseNameConstant,
			buildMessage: func() string {
				return formatter.BuildExecutionFailureMessage(execshell.ShellCommand{
					Name: execshell.CommandScanner,
				}, errors.New("executable file not found"))
			},
			expectedMessage: "Security scan unavailable: executable file not found",
		},
		{
			name: testGenericCommandCaseNameConstant,
			buildMessage: func() string {
				return formatter.BuildStartedMessage(execshell.ShellCommand{
					Name:    execshell.CommandGit,
					Details: execshell.CommandDetails{Arguments: []string{"status"}, WorkingDirectory: "/srv/app"},
				})
			},
			expectedMessage: "Running git status (in /srv/app)",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedMessage, testCase.buildMessage())
		})
	}
}
