package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/genophen/genophen/internal/stats"
)

// Configuration keys read by the analyze command. Flags set on the command
// line always win over configured values.
const (
	keyCorrection        = "analysis.correction"
	keyMinFrequency      = "analysis.min_frequency"
	keyExcludeUnmeasured = "analysis.exclude_unmeasured"
	keyGroupSimilar      = "analysis.group_similar"
)

// configParsers maps each known key to its value parser, so "config set"
// rejects unknown keys and ill-typed values before they reach a run.
var configParsers = map[string]func(value string) (any, error){
	keyCorrection: func(v string) (any, error) {
		m, err := stats.CanonicalMethod(v)
		if err != nil {
			return nil, err
		}
		return m, nil
	},
	keyMinFrequency: func(v string) (any, error) {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 1 || f > 100 {
			return nil, fmt.Errorf("want a percentage between 1 and 100, got %q", v)
		}
		return f, nil
	},
	keyExcludeUnmeasured: parseConfigBool,
	keyGroupSimilar:      parseConfigBool,
}

func parseConfigBool(v string) (any, error) {
	switch v {
	case "true", "yes", "on":
		return true, nil
	case "false", "no", "off":
		return false, nil
	}
	return nil, fmt.Errorf("want true or false, got %q", v)
}

// parseConfigValue validates a key/value pair against the known keys.
func parseConfigValue(key, value string) (any, error) {
	parse, ok := configParsers[key]
	if !ok {
		return nil, fmt.Errorf("unknown configuration key %q (known keys: %s)", key, strings.Join(knownConfigKeys(), ", "))
	}
	parsed, err := parse(value)
	if err != nil {
		return nil, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return parsed, nil
}

func knownConfigKeys() []string {
	keys := make([]string, 0, len(configParsers))
	for k := range configParsers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage genophen configuration",
		Long:  "Show, get, or set configuration values. Config is stored in ~/.genophen.yaml.",
		Example: `  genophen config                          # show all config
  genophen config set analysis.correction fdr_bh  # set default correction
  genophen config get analysis.correction         # get a value`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow()
		},
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(args[0], args[1])
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(args[0])
		},
	}
}

func runConfigShow() error {
	settings := viper.AllSettings()
	if len(settings) == 0 {
		fmt.Println("# No configuration set. Config file: ~/.genophen.yaml")
		return nil
	}

	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Print(string(out))
	return nil
}

func runConfigSet(key, value string) error {
	parsed, err := parseConfigValue(key, value)
	if err != nil {
		return err
	}
	viper.Set(key, parsed)

	cfgFile := viper.ConfigFileUsed()
	if cfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		cfgFile = filepath.Join(home, ".genophen.yaml")
	}

	if err := viper.WriteConfigAs(cfgFile); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Set %s = %v in %s\n", key, parsed, cfgFile)
	return nil
}

func runConfigGet(key string) error {
	val := viper.Get(key)
	if val == nil {
		return fmt.Errorf("key %q is not set", key)
	}
	fmt.Println(val)
	return nil
}
