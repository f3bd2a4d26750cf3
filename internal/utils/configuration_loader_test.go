package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/shipit/internal/utils"
)

const (
	loaderConfigurationNameConstant = "config"
	loaderConfigurationTypeConstant = "yaml"
	loaderEnvironmentPrefixConstant = "SHIPITTEST"
	loaderConfigurationFileConstant = "config.yaml"
)

type loaderTargetConfiguration struct {
	Common struct {
		LogLevel  string `mapstructure:"log_level"`
		LogFormat string `mapstructure:"log_format"`
	} `mapstructure:"common"`
	Tools struct {
		Deploy struct {
			UpstreamRemote string   `mapstructure:"upstream_remote"`
			DefaultBranch  string   `mapstructure:"default_branch"`
			ExtraRemotes   []string `mapstructure:"extra_remotes"`
		} `mapstructure:"deploy"`
	} `mapstructure:"tools"`
}

func newLoaderForTest(searchPaths []string) *utils.ConfigurationLoader {
	return utils.NewConfigurationLoader(
		loaderConfigurationNameConstant,
		loaderConfigurationTypeConstant,
		loaderEnvironmentPrefixConstant,
		searchPaths,
	)
}

func TestLoadConfigurationAppliesDefaults(testInstance *testing.T) {
	loader := newLoaderForTest([]string{testInstance.TempDir()})

	defaultValues := map[string]any{
		"common.log_level":            "info",
		"tools.deploy.default_branch": "master",
	}

	var configuration loaderTargetConfiguration
	_, loadError := loader.LoadConfiguration("", defaultValues, &configuration)

	require.NoError(testInstance, loadError)
	require.Equal(testInstance, "info", configuration.Common.LogLevel)
	require.Equal(testInstance, "master", configuration.Tools.Deploy.DefaultBranch)
}

func TestLoadConfigurationReadsFile(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	configurationContent := "common:\n  log_level: debug\ntools:\n  deploy:\n    upstream_remote: upstream\n"
	configurationPath := filepath.Join(temporaryDirectory, loaderConfigurationFileConstant)
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(configurationContent), 0o600))

	loader := newLoaderForTest([]string{temporaryDirectory})

	var configuration loaderTargetConfiguration
	loadedConfiguration, loadError := loader.LoadConfiguration("", map[string]any{"common.log_level": "info"}, &configuration)

	require.NoError(testInstance, loadError)
	require.Equal(testInstance, "debug", configuration.Common.LogLevel)
	require.Equal(testInstance, "upstream", configuration.Tools.Deploy.UpstreamRemote)
	require.Equal(testInstance, configurationPath, loadedConfiguration.ConfigFileUsed)
}

func TestLoadConfigurationMergesEmbeddedConfiguration(testInstance *testing.T) {
	loader := newLoaderForTest([]string{testInstance.TempDir()})
	loader.SetEmbeddedConfiguration([]byte("common:\n  log_format: console\n"), loaderConfigurationTypeConstant)

	var configuration loaderTargetConfiguration
	_, loadError := loader.LoadConfiguration("", nil, &configuration)

	require.NoError(testInstance, loadError)
	require.Equal(testInstance, "console", configuration.Common.LogFormat)
}

func TestLoadConfigurationHonorsEnvironmentOverrides(testInstance *testing.T) {
	testInstance.Setenv(loaderEnvironmentPrefixConstant+"_COMMON_LOG_LEVEL", "error")
	testInstance.Setenv(loaderEnvironmentPrefixConstant+"_TOOLS_DEPLOY_EXTRA_REMOTES", "staging,review")

	loader := newLoaderForTest([]string{testInstance.TempDir()})

	defaultValues := map[string]any{
		"common.log_level":           "info",
		"tools.deploy.extra_remotes": []string{},
	}

	var configuration loaderTargetConfiguration
	_, loadError := loader.LoadConfiguration("", defaultValues, &configuration)

	require.NoError(testInstance, loadError)
	require.Equal(testInstance, "error", configuration.Common.LogLevel)
	require.Equal(testInstance, []string{"staging", "review"}, configuration.Tools.Deploy.ExtraRemotes)
}

func TestLoadConfigurationRejectsMalformedFile(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	configurationPath := filepath.Join(temporaryDirectory, loaderConfigurationFileConstant)
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte("common: ["), 0o600))

	loader := newLoaderForTest([]string{temporaryDirectory})

	var configuration loaderTargetConfiguration
	_, loadError := loader.LoadConfiguration(configurationPath, nil, &configuration)

	require.Error(testInstance, loadError)
}
