package cmd

import (
	"fmt"

	"asciitree/pkg/tree"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// buildConfig merges command-line flags with the optional configuration file.
// Flags set on the command line win over file values, which win over defaults.
// Keys in the file are the long flag names.
func buildConfig(settings *viper.Viper, flags *pflag.FlagSet, configFile string) (tree.Config, error) {
	if err := settings.BindPFlags(flags); err != nil {
		return tree.Config{}, fmt.Errorf("bind flags: %w", err)
	}
	if configFile != "" {
		settings.SetConfigFile(configFile)
		if err := settings.ReadInConfig(); err != nil {
			return tree.Config{}, fmt.Errorf("read configuration from %s: %w", configFile, err)
		}
	}

	cfg := tree.DefaultConfig()

	var err error
	if cfg.MaxDepth, err = limitSetting(settings, depthFlag); err != nil {
		return tree.Config{}, err
	}
	if cfg.MaxFiles, err = limitSetting(settings, maxFilesFlag); err != nil {
		return tree.Config{}, err
	}
	if cfg.SortBy, err = tree.ParseSortKey(settings.GetString(sortByFlag)); err != nil {
		return tree.Config{}, fmt.Errorf("invalid --%s: %w", sortByFlag, err)
	}

	cfg.DirsOnly = settings.GetBool(dirsOnlyFlag)
	cfg.FilesOnly = settings.GetBool(filesOnlyFlag)
	cfg.ShowHidden = settings.GetBool(allFlag)
	cfg.FollowLinks = settings.GetBool(followLinksFlag)
	cfg.UseGitignore = settings.GetBool(gitignoreFlag)
	cfg.ReverseSort = settings.GetBool(reverseFlag)
	cfg.ShowSize = settings.GetBool(sizeFlag)
	cfg.ShowPermissions = settings.GetBool(permissionsFlag)
	cfg.FullPath = settings.GetBool(fullPathFlag)

	// viper reads string arrays back through a CSV round trip; take them
	// straight from the flag set when given on the command line.
	if flags.Changed(ignoreFlag) {
		if cfg.CustomIgnore, err = flags.GetStringArray(ignoreFlag); err != nil {
			return tree.Config{}, err
		}
	} else {
		cfg.CustomIgnore = settings.GetStringSlice(ignoreFlag)
	}

	return cfg, nil
}

// limitSetting returns the value of an optional non-negative limit, or
// tree.NoLimit when neither the command line nor the configuration file sets it.
func limitSetting(settings *viper.Viper, key string) (int, error) {
	if !settings.IsSet(key) {
		return tree.NoLimit, nil
	}
	value := settings.GetInt(key)
	if value < 0 {
		return 0, fmt.Errorf("--%s must be a non-negative integer, got %d", key, value)
	}
	return value, nil
}
