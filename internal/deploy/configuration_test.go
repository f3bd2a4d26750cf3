package deploy_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/shipit/internal/deploy"
)

const configurationKeyPrefixConstant = "tools.deploy"

func TestSanitizeRestoresDefaultsForBlankFields(testInstance *testing.T) {
	const (
		blankConfigurationCaseName  = "blank_configuration"
		paddedConfigurationCaseName = "padded_configuration"
		customConfigurationCaseName = "custom_configuration"
	)

	testCases := []struct {
		name     string
		input    deploy.CommandConfiguration
		expected deploy.CommandConfiguration
	}{
		{
			name:  blankConfigurationCaseName,
			input: deploy.CommandConfiguration{},
			expected: deploy.CommandConfiguration{
				UpstreamRemote:   "origin",
				ProductionRemote: "production",
				DefaultBranch:    "master",
				DeployBranch:     "main",
				MigrateCommand:   "rake db:migrate",
				Locales:          []deploy.LocaleConfiguration{},
			},
		},
		{
			name: paddedConfigurationCaseName,
			input: deploy.CommandConfiguration{
				UpstreamRemote:  "  origin  ",
				ApplicationName: "  sample-app  ",
				Locales: []deploy.LocaleConfiguration{
					{Code: " de ", Path: " config/locales/de.yml "},
					{Code: "", Path: "config/locales/orphan.yml"},
					{Code: "fr", Path: "   "},
				},
			},
			expected: deploy.CommandConfiguration{
				UpstreamRemote:   "origin",
				ProductionRemote: "production",
				DefaultBranch:    "master",
				DeployBranch:     "main",
				ApplicationName:  "sample-app",
				MigrateCommand:   "rake db:migrate",
				Locales: []deploy.LocaleConfiguration{
					{Code: "de", Path: "config/locales/de.yml"},
				},
			},
		},
		{
			name: customConfigurationCaseName,
			input: deploy.CommandConfiguration{
				UpstreamRemote:   "upstream",
				ProductionRemote: "live",
				DefaultBranch:    "trunk",
				DeployBranch:     "release",
				ApplicationName:  "billing",
				MigrateCommand:   "bin/migrate",
				Locales: []deploy.LocaleConfiguration{
					{Code: "en", Path: "config/locales/en.yml"},
				},
			},
			expected: deploy.CommandConfiguration{
				UpstreamRemote:   "upstream",
				ProductionRemote: "live",
				DefaultBranch:    "trunk",
				DeployBranch:     "release",
				ApplicationName:  "billing",
				MigrateCommand:   "bin/migrate",
				Locales: []deploy.LocaleConfiguration{
					{Code: "en", Path: "config/locales/en.yml"},
				},
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			require.Equal(subtestInstance, testCase.expected, testCase.input.Sanitize())
		})
	}
}

func TestDefaultConfigurationValuesUsePrefix(testInstance *testing.T) {
	defaultValues := deploy.DefaultConfigurationValues(configurationKeyPrefixConstant)

	require.Equal(testInstance, "origin", defaultValues[configurationKeyPrefixConstant+".upstream_remote"])
	require.Equal(testInstance, "production", defaultValues[configurationKeyPrefixConstant+".production_remote"])
	require.Equal(testInstance, "master", defaultValues[configurationKeyPrefixConstant+".default_branch"])
	require.Equal(testInstance, "main", defaultValues[configurationKeyPrefixConstant+".deploy_branch"])
	require.Equal(testInstance, "rake db:migrate", defaultValues[configurationKeyPrefixConstant+".migrate_command"])
}
