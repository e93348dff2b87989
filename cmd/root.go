// Package cmd provides the root command and CLI setup for forgeguard.
package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"forgeguard.dev/pkg/forgeguard/internal/adapter"
	"forgeguard.dev/pkg/forgeguard/internal/controller"
	"forgeguard.dev/pkg/forgeguard/internal/domain"
	m "forgeguard.dev/pkg/forgeguard/internal/model"
	"forgeguard.dev/pkg/forgeguard/pkg"
)

var fsAdapter adapter.SourceFSAdapter
var csharpAdapter adapter.CSharpFileAdapter
var reportStore adapter.ReportStore

// newPipeline builds the pipeline used by a single command invocation. Output goes
// to the invoking command so tests can capture it.
var newPipeline = func(cmd *cobra.Command, options domain.Options) (domain.Pipeline, error) {
	return domain.NewPipeline(fsAdapter, csharpAdapter, newClaimer(), controller.NewSimpleUI(cmd), options)
}

// newClaimer only treats files with a configured controller or view extension as
// claimable, so unrelated lock files are never listed or released.
var newClaimer = func() pkg.FileClaimer {
	options := pipelineOptions()
	extensions := append(slices.Clone(options.ControllerExtensions), options.ViewExtensions...)

	return pkg.NewFileClaimer(viper.GetString(claimSuffixKey), extensions...)
}

// Root-level flags shared by every command.
var (
	dryRunFlag      bool
	excludePatterns []string
	reportFlag      string
	claimSuffixFlag string
	verboseFlag     bool
	logFileFlag     string
)

func init() {
	configureRootFlags(rootCmd)

	fsAdapter = adapter.NewLocalSourceFSAdapter()
	csharpAdapter = adapter.NewLocalCSharpFileAdapter()
	reportStore = adapter.NewReportStore()
}

const pathsHelp = `Paths are directories that are scanned recursively. When none are given the
command falls back to the paths configured in forgeguard.yaml:
  paths.controllers   roots scanned for C# controllers
  paths.views         roots scanned for Razor views`

const rootLongDescription = `Forgeguard retrofits anti-forgery protection onto an existing ASP.NET MVC
codebase. Every [HttpPost] action gains [ValidateAntiForgeryToken] and every
POST form in a Razor view gains asp-antiforgery="true". Files are claimed
through a marker file while they are rewritten, so several forgeguard
processes can share a source tree.

` + pathsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forgeguard",
		Short: "Anti-forgery retrofit for ASP.NET MVC projects",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.BoolVar(&dryRunFlag, dryRunFlagName, viper.GetBool(dryRunConfigKey), "report pending changes as a diff without writing files")
	bindFlagToConfig(flags.Lookup(dryRunFlagName), dryRunConfigKey)

	flags.StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	bindFlagToConfig(flags.Lookup(excludeFlagName), excludeConfigKey)

	flags.StringVar(&reportFlag, reportFlagName, viper.GetString(reportConfigKey), "write a YAML run report to this file")
	bindFlagToConfig(flags.Lookup(reportFlagName), reportConfigKey)

	flags.StringVar(&claimSuffixFlag, claimSuffixFlagName, viper.GetString(claimSuffixKey), "suffix of the marker file that claims a source file")
	bindFlagToConfig(flags.Lookup(claimSuffixFlagName), claimSuffixKey)

	flags.BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)

	flags.StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(flags.Lookup(logFileFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// resolvePaths prefers explicit arguments and falls back to the configured roots.
func resolvePaths(args []string, configKey string) ([]m.Path, error) {
	if len(args) == 0 {
		args = viper.GetStringSlice(configKey)
	}

	if len(args) == 0 {
		return nil, fmt.Errorf("no paths given and %s is not configured", configKey)
	}

	return parsePaths(args), nil
}

// pipelineOptions assembles domain options from flags, env and config.
func pipelineOptions() domain.Options {
	options := domain.DefaultOptions()

	if exts := viper.GetStringSlice(controllerExtensionsKey); len(exts) > 0 {
		options.ControllerExtensions = exts
	}

	if exts := viper.GetStringSlice(viewExtensionsKey); len(exts) > 0 {
		options.ViewExtensions = exts
	}

	options.Exclude = viper.GetStringSlice(excludeConfigKey)
	options.DryRun = viper.GetBool(dryRunConfigKey)

	return options
}
