package cmd

import (
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"forgeguard.dev/pkg/forgeguard/pkg"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "forgeguard"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	dryRunFlagName      = "dry-run"
	excludeFlagName     = "exclude"
	reportFlagName      = "report"
	claimSuffixFlagName = "claim-suffix"
	verboseFlagName     = "verbose"
	logFileFlagName     = "log-file"

	dryRunConfigKey         = "dry-run"
	reportConfigKey         = "report"
	controllerPathsKey      = "paths.controllers"
	viewPathsKey            = "paths.views"
	excludeConfigKey        = "paths.exclude"
	controllerExtensionsKey = "controllers.extensions"
	viewExtensionsKey       = "views.extensions"
	claimSuffixKey          = "claims.suffix"

	defaultDryRun = false

	envPrefix = "FORGEGUARD"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".forgeguard.log"
	defaultLogLevel      = "info"
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var defaultControllerExtensions = []string{".cs"}
var defaultViewExtensions = []string{".cshtml"}

func init() {
	configureViper()

	if err := viper.ReadInConfig(); err != nil {
		// Missing or unreadable config: run on defaults, env and flags.
		return
	}
}

// configureViper sets the config file location, env binding and defaults.
func configureViper() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	setConfigDefaults()
}

func setConfigDefaults() {
	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(dryRunConfigKey, defaultDryRun)
	viper.SetDefault(reportConfigKey, "")
	viper.SetDefault(controllerPathsKey, []string{})
	viper.SetDefault(viewPathsKey, []string{})
	viper.SetDefault(excludeConfigKey, []string{})
	viper.SetDefault(controllerExtensionsKey, defaultControllerExtensions)
	viper.SetDefault(viewExtensionsKey, defaultViewExtensions)
	viper.SetDefault(claimSuffixKey, pkg.DefaultClaimSuffix)

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Numeric slog levels are accepted too (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger installs a rotating file logger as the slog default.
//
// It logs at the configured level, or at Debug when verbose is set.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	logLevel := parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	if verbose {
		logLevel = slog.LevelDebug
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	slog.SetDefault(slog.New(handler))
}
