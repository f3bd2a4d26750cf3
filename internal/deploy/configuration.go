package deploy

import "strings"

const (
	defaultUpstreamRemoteConstant   = "origin"
	defaultProductionRemoteConstant = "production"
	defaultBranchNameConstant       = "master"
	defaultDeployBranchConstant     = "main"
	defaultMigrateCommandConstant   = "rake db:migrate"

	upstreamRemoteConfigKeySuffixConstant   = ".upstream_remote"
	productionRemoteConfigKeySuffixConstant = ".production_remote"
	defaultBranchConfigKeySuffixConstant    = ".default_branch"
	deployBranchConfigKeySuffixConstant     = ".deploy_branch"
	applicationNameConfigKeySuffixConstant  = ".application_name"
	migrateCommandConfigKeySuffixConstant   = ".migrate_command"
)

// LocaleConfiguration associates a locale code with its tracked translation file.
type LocaleConfiguration struct {
	Code string `mapstructure:"code"`
	Path string `mapstructure:"path"`
}

// CommandConfiguration captures persisted configuration for the deploy command.
type CommandConfiguration struct {
	UpstreamRemote   string                `mapstructure:"upstream_remote"`
	ProductionRemote string                `mapstructure:"production_remote"`
	DefaultBranch    string                `mapstructure:"default_branch"`
	DeployBranch     string                `mapstructure:"deploy_branch"`
	ApplicationName  string                `mapstructure:"application_name"`
	MigrateCommand   string                `mapstructure:"migrate_command"`
	Locales          []LocaleConfiguration `mapstructure:"locales"`
}

// DefaultCommandConfiguration returns baseline configuration values for the deploy command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		UpstreamRemote:   defaultUpstreamRemoteConstant,
		ProductionRemote: defaultProductionRemoteConstant,
		DefaultBranch:    defaultBranchNameConstant,
		DeployBranch:     defaultDeployBranchConstant,
		MigrateCommand:   defaultMigrateCommandConstant,
	}
}

// DefaultConfigurationValues exposes defaults keyed for the configuration loader.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationKeyPrefix + upstreamRemoteConfigKeySuffixConstant:   defaults.UpstreamRemote,
		configurationKeyPrefix + productionRemoteConfigKeySuffixConstant: defaults.ProductionRemote,
		configurationKeyPrefix + defaultBranchConfigKeySuffixConstant:    defaults.DefaultBranch,
		configurationKeyPrefix + deployBranchConfigKeySuffixConstant:     defaults.DeployBranch,
		configurationKeyPrefix + applicationNameConfigKeySuffixConstant:  defaults.ApplicationName,
		configurationKeyPrefix + migrateCommandConfigKeySuffixConstant:   defaults.MigrateCommand,
	}
}

// Sanitize trims configured values, drops empty locale entries, and restores defaults for blank fields.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()

	sanitized := configuration
	sanitized.UpstreamRemote = fallbackWhenBlank(configuration.UpstreamRemote, defaults.UpstreamRemote)
	sanitized.ProductionRemote = fallbackWhenBlank(configuration.ProductionRemote, defaults.ProductionRemote)
	sanitized.DefaultBranch = fallbackWhenBlank(configuration.DefaultBranch, defaults.DefaultBranch)
	sanitized.DeployBranch = fallbackWhenBlank(configuration.DeployBranch, defaults.DeployBranch)
	sanitized.ApplicationName = strings.TrimSpace(configuration.ApplicationName)
	sanitized.MigrateCommand = fallbackWhenBlank(configuration.MigrateCommand, defaults.MigrateCommand)
	sanitized.Locales = sanitizeLocales(configuration.Locales)
	return sanitized
}

func sanitizeLocales(locales []LocaleConfiguration) []LocaleConfiguration {
	sanitized := make([]LocaleConfiguration, 0, len(locales))
	for _, locale := range locales {
		trimmedCode := strings.TrimSpace(locale.Code)
		trimmedPath := strings.TrimSpace(locale.Path)
		if len(trimmedCode) == 0 || len(trimmedPath) == 0 {
			continue
		}
		sanitized = append(sanitized, LocaleConfiguration{Code: trimmedCode, Path: trimmedPath})
	}
	return sanitized
}

func fallbackWhenBlank(configuredValue string, defaultValue string) string {
	trimmedValue := strings.TrimSpace(configuredValue)
	if len(trimmedValue) == 0 {
		return defaultValue
	}
	return trimmedValue
}
