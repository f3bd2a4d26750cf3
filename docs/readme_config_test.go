package docs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const (
	readmeFileNameConstant           = "README.md"
	yamlFenceStartConstant           = "```yaml"
	yamlFenceEndConstant             = "```"
	configHeaderMarkerConstant       = "# config.yaml"
	parentDirectoryReferenceConstant = ".."
	missingHeaderMessageConstant     = "README example missing config header marker"
	missingStartFenceMessageConstant = "README example missing yaml fence start"
	missingEndFenceMessageConstant   = "README example missing yaml fence end"
	expectedUpstreamRemoteConstant   = "origin"
	expectedProductionRemoteConstant = "production"
	expectedDefaultBranchConstant    = "master"
	expectedDeployBranchConstant     = "main"
	expectedMigrateCommandConstant   = "rake db:migrate"
)

type readmeApplicationConfiguration struct {
	Common struct {
		LogLevel  string `yaml:"log_level"`
		LogFormat string `yaml:"log_format"`
	} `yaml:"common"`
	Tools struct {
		Deploy readmeDeployConfiguration `yaml:"deploy"`
	} `yaml:"tools"`
}

type readmeDeployConfiguration struct {
	UpstreamRemote   string                    `yaml:"upstream_remote"`
	ProductionRemote string                    `yaml:"production_remote"`
	DefaultBranch    string                    `yaml:"default_branch"`
	DeployBranch     string                    `yaml:"deploy_branch"`
	ApplicationName  string                    `yaml:"application_name"`
	MigrateCommand   string                    `yaml:"migrate_command"`
	Locales          []readmeLocaleDescription `yaml:"locales"`
}

type readmeLocaleDescription struct {
	Code string `yaml:"code"`
	Path string `yaml:"path"`
}

func TestReadmeDeployConfigurationParses(testInstance *testing.T) {
	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	readmePath := filepath.Join(workingDirectory, parentDirectoryReferenceConstant, readmeFileNameConstant)
	contentBytes, readError := os.ReadFile(readmePath)
	require.NoError(testInstance, readError)

	contentText := string(contentBytes)
	headerIndex := strings.Index(contentText, configHeaderMarkerConstant)
	require.NotEqual(testInstance, -1, headerIndex, missingHeaderMessageConstant)

	fenceStartIndex := strings.LastIndex(contentText[:headerIndex], yamlFenceStartConstant)
	require.NotEqual(testInstance, -1, fenceStartIndex, missingStartFenceMessageConstant)

	remainingText := contentText[headerIndex:]
	fenceEndRelativeIndex := strings.Index(remainingText, yamlFenceEndConstant)
	require.NotEqual(testInstance, -1, fenceEndRelativeIndex, missingEndFenceMessageConstant)
	fenceEndIndex := headerIndex + fenceEndRelativeIndex

	snippetContent := strings.TrimSpace(contentText[fenceStartIndex+len(yamlFenceStartConstant) : fenceEndIndex])

	var applicationConfiguration readmeApplicationConfiguration
	unmarshalError := yaml.Unmarshal([]byte(snippetContent), &applicationConfiguration)
	require.NoError(testInstance, unmarshalError)

	deployConfiguration := applicationConfiguration.Tools.Deploy
	require.Equal(testInstance, expectedUpstreamRemoteConstant, deployConfiguration.UpstreamRemote)
	require.Equal(testInstance, expectedProductionRemoteConstant, deployConfiguration.ProductionRemote)
	require.Equal(testInstance, expectedDefaultBranchConstant, deployConfiguration.DefaultBranch)
	require.Equal(testInstance, expectedDeployBranchConstant, deployConfiguration.DeployBranch)
	require.Equal(testInstance, expectedMigrateCommandConstant, deployConfiguration.MigrateCommand)
	require.NotEmpty(testInstance, deployConfiguration.ApplicationName)
	require.NotEmpty(testInstance, deployConfiguration.Locales)
	for _, localeDescription := range deployConfiguration.Locales {
		require.NotEmpty(testInstance, localeDescription.Code)
		require.NotEmpty(testInstance, localeDescription.Path)
	}
}
