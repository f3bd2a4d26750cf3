package cli_test

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/temirov/shipit/cmd/cli"
)

const (
	testDeployCommandNameConstant      = "deploy"
	testEmbeddedUpstreamRemoteConstant = "origin"
	testEmbeddedProductionRemote       = "production"
	testEmbeddedDefaultBranchConstant  = "master"
	testEmbeddedDeployBranchConstant   = "main"
	testEmbeddedMigrateCommandConstant = "rake db:migrate"
	testEmbeddedLogLevelConstant       = "info"
	testEmbeddedLogFormatConstant      = "structured"
)

func TestNewApplicationRegistersDeployCommand(testInstance *testing.T) {
	application := cli.NewApplication()

	deployCommand, commandArguments, lookupError := application.RootCommand().Find([]string{testDeployCommandNameConstant})

	require.NoError(testInstance, lookupError)
	require.Equal(testInstance, testDeployCommandNameConstant, deployCommand.Name())
	require.Empty(testInstance, commandArguments)
}

func TestEmbeddedDefaultsProvideDeployConfiguration(testInstance *testing.T) {
	configuration := decodeEmbeddedApplicationConfiguration(testInstance)

	deployDefaults := configuration.Tools.Deploy.Sanitize()

	require.Equal(testInstance, testEmbeddedUpstreamRemoteConstant, deployDefaults.UpstreamRemote)
	require.Equal(testInstance, testEmbeddedProductionRemote, deployDefaults.ProductionRemote)
	require.Equal(testInstance, testEmbeddedDefaultBranchConstant, deployDefaults.DefaultBranch)
	require.Equal(testInstance, testEmbeddedDeployBranchConstant, deployDefaults.DeployBranch)
	require.Equal(testInstance, testEmbeddedMigrateCommandConstant, deployDefaults.MigrateCommand)
	require.NotEmpty(testInstance, deployDefaults.Locales)
	for _, localeDefault := range deployDefaults.Locales {
		require.NotEmpty(testInstance, localeDefault.Code)
		require.NotEmpty(testInstance, localeDefault.Path)
	}
}

func TestEmbeddedDefaultsProvideCommonLogging(testInstance *testing.T) {
	configuration := decodeEmbeddedApplicationConfiguration(testInstance)

	require.Equal(testInstance, testEmbeddedLogLevelConstant, configuration.Common.LogLevel)
	require.Equal(testInstance, testEmbeddedLogFormatConstant, configuration.Common.LogFormat)
}

func decodeEmbeddedApplicationConfiguration(testingInstance testing.TB) cli.ApplicationConfiguration {
	testingInstance.Helper()

	configurationData, configurationType := cli.EmbeddedDefaultConfiguration()
	viperInstance := viper.New()
	viperInstance.SetConfigType(configurationType)

	readError := viperInstance.ReadConfig(bytes.NewReader(configurationData))
	require.NoError(testingInstance, readError)

	var configuration cli.ApplicationConfiguration
	unmarshalError := viperInstance.Unmarshal(&configuration)
	require.NoError(testingInstance, unmarshalError)

	return configuration
}
