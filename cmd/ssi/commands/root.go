// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package commands holds the cobra commands of the ssi binary.
package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ChainSafe/ssi/internal/inspector"
	"github.com/ChainSafe/ssi/internal/log"
	"github.com/ChainSafe/ssi/internal/metrics"
	"github.com/ChainSafe/ssi/internal/report"
	"github.com/ChainSafe/ssi/internal/trie/codec"
	"github.com/ChainSafe/ssi/internal/trie/nodestore"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables
// setting global flags, for example SSI_BACKEND.
const EnvPrefix = "SSI"

// Global flag names, also used as viper keys.
const (
	logFlag              = "log"
	configFlag           = "config"
	backendFlag          = "backend"
	namespacesFlag       = "namespaces"
	layoutFlag           = "layout"
	cacheSizeFlag        = "cache-size"
	strictNamespacesFlag = "strict-namespaces"
	outputFlag           = "output"
	metricsFileFlag      = "metrics-file"
)

type metricsWriter interface {
	inspector.Metrics
	WriteToTextfile(path string) error
}

// app holds the state shared by the commands of one command tree.
type app struct {
	viper  *viper.Viper
	logger *log.Logger
}

// NewRootCommand creates the root command and its sub commands.
func NewRootCommand() *cobra.Command {
	a := &app{viper: viper.New()}

	cmd := &cobra.Command{
		Use:   "ssi",
		Short: "Substrate storage inspector",
		Long: `ssi inspects the state tries persisted in a Substrate node database.
Usage:
	ssi inspect ./db -r 0x<root> -P System -F Account
	ssi diff ./db -r 0x<root> -R 0x<other root> -k 26aa394eea5630e07c48ae0c9558cef7 -s
	ssi decode -k 26aa394eea5630e07c48ae0c9558cef7b99d880ec681799c0cf30e8886371da9
	journalctl -u node | ssi stream`,
		SilenceUsage:      true,
		PersistentPreRunE: a.configure,
	}

	addGlobalFlags(cmd, a.viper)

	cmd.AddCommand(
		a.newInspectCommand(),
		a.newDiffCommand(),
		a.newDecodeCommand(),
		a.newStreamCommand(),
		a.newNamespacesCommand(),
	)

	return cmd
}

func addGlobalFlags(cmd *cobra.Command, v *viper.Viper) {
	flags := cmd.PersistentFlags()
	flags.StringP(logFlag, "l", "info",
		"log level: trace, debug, info, warn, error, crit or all")
	flags.String(configFlag, "",
		"toml configuration file, defaults to config.toml in the database directory")
	flags.String(backendFlag, inspector.BackendPebble,
		"database backend: pebble, badger, leveldb or bolt")
	flags.StringSlice(namespacesFlag, nodestore.DefaultNamespaces,
		"namespaces searched in order for trie nodes")
	flags.String(layoutFlag, codec.SubstrateLayoutName,
		"trie node layout: substrate or extension")
	flags.Int(cacheSizeFlag, nodestore.DefaultCacheSize,
		"node cache size in bytes, 0 disables the cache")
	flags.Bool(strictNamespacesFlag, false,
		"search all namespaces and warn about nodes differing between namespaces")
	flags.StringP(outputFlag, "o", string(report.JSON),
		"output format: json, lines or tree")
	flags.String(metricsFileFlag, "",
		"file to write prometheus metrics to when the command ends")

	for _, name := range [...]string{logFlag, backendFlag, namespacesFlag, layoutFlag,
		cacheSizeFlag, strictNamespacesFlag, outputFlag, metricsFileFlag} {
		// the flag exists so binding never fails
		_ = v.BindPFlag(name, flags.Lookup(name))
	}
}

// configure reads environment variables and the configuration file
// and creates the logger.
func (a *app) configure(cmd *cobra.Command, args []string) (err error) {
	a.viper.SetEnvPrefix(EnvPrefix)
	a.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.viper.AutomaticEnv()

	configFile, err := cmd.Flags().GetString(configFlag)
	if err != nil {
		return fmt.Errorf("getting --%s: %w", configFlag, err)
	}

	switch {
	case configFile != "":
		a.viper.SetConfigFile(configFile)
		err = a.viper.ReadInConfig()
		if err != nil {
			return fmt.Errorf("reading configuration file: %w", err)
		}
	case len(args) > 0 && cmd.Name() != "stream":
		a.viper.SetConfigName("config")
		a.viper.SetConfigType("toml")
		a.viper.AddConfigPath(configDirectory(args[0]))
		err = a.viper.ReadInConfig()
		var notFound viper.ConfigFileNotFoundError
		if err != nil && !errors.As(err, &notFound) {
			return fmt.Errorf("reading configuration file: %w", err)
		}
	}

	level, err := log.ParseLevel(a.viper.GetString(logFlag))
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}

	a.logger = log.New(
		log.SetLevel(level),
		log.SetWriter(cmd.ErrOrStderr()),
		log.AddContext("cmd", cmd.Name()),
	)
	return nil
}

// configDirectory returns the database path if it is a directory,
// and its parent directory otherwise.
func configDirectory(databasePath string) string {
	info, err := os.Stat(databasePath)
	if err == nil && !info.IsDir() {
		return filepath.Dir(databasePath)
	}
	return databasePath
}

func (a *app) inspectorConfig(path string) inspector.Config {
	strictNamespaces := a.viper.GetBool(strictNamespacesFlag)
	cacheSize := a.viper.GetInt(cacheSizeFlag)
	config := inspector.Config{
		Path:    path,
		Backend: a.viper.GetString(backendFlag),
		Layout:  a.viper.GetString(layoutFlag),
		NodeStore: nodestore.Settings{
			StrictNamespaces: &strictNamespaces,
			CacheSize:        &cacheSize,
		},
	}

	if namespaces := a.viper.GetStringSlice(namespacesFlag); len(namespaces) > 0 {
		config.NodeStore.Namespaces = namespaces
	}

	return config
}

func (a *app) newReporter(cmd *cobra.Command, key string) (reporter *report.Reporter, err error) {
	format, err := report.ParseFormat(a.viper.GetString(outputFlag))
	if err != nil {
		return nil, err
	}

	summarize, err := cmd.Flags().GetBool(summarizeFlag)
	if err != nil {
		return nil, fmt.Errorf("getting --%s: %w", summarizeFlag, err)
	}

	return report.New(cmd.OutOrStdout(), format, summarize, key), nil
}

// withInspector opens the database at path, runs the function
// given with an inspector reading from it and closes the database.
// Metrics are written to the metrics file, if any, once done.
func (a *app) withInspector(path string, run func(*inspector.Inspector) error) (err error) {
	metricsFile := a.viper.GetString(metricsFileFlag)

	var runMetrics metricsWriter = metrics.NewNoop()
	if metricsFile != "" {
		runMetrics, err = metrics.NewPrometheus()
		if err != nil {
			return fmt.Errorf("creating metrics: %w", err)
		}
	}

	inspectorInstance, err := inspector.New(a.inspectorConfig(path), a.logger, runMetrics)
	if err != nil {
		return fmt.Errorf("creating inspector: %w", err)
	}

	err = run(inspectorInstance)
	closeErr := inspectorInstance.Close()
	switch {
	case err != nil:
		return err
	case closeErr != nil:
		return fmt.Errorf("closing database: %w", closeErr)
	}

	if metricsFile == "" {
		return nil
	}

	err = runMetrics.WriteToTextfile(metricsFile)
	if err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	a.logger.Debugf("metrics written to %s", metricsFile)
	return nil
}
