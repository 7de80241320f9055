package config

import (
	"errors"
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "MODUNPACK"

// ErrInvalidConfig indicates a configuration file or value could not be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// Zip entry name encodings accepted by ZipNameEncoding.
const (
	EncodingCP437 = "cp437"
	EncodingCP866 = "cp866"
	EncodingNone  = "none"
)

// Rule kinds accepted by RuleConfig.Kind.
const (
	RuleKindFolders = "folders"
	RuleKindFile    = "file"
)

// Config is the full modunpack configuration.
type Config struct {
	// InputFolder holds the downloaded archives.
	InputFolder string `mapstructure:"input_folder" toml:"input_folder"`

	// OutputFolder receives extracted and reconciled content.
	OutputFolder string `mapstructure:"output_folder" toml:"output_folder"`

	// Version is the game client version used in res_mods/<version> and mods/<version>.
	Version string `mapstructure:"version" toml:"version"`

	// VendorFolder is the wrapper folder some archives put around res_mods and mods.
	VendorFolder string `mapstructure:"vendor_folder" toml:"vendor_folder"`

	// ModFile is a loose mod file relocated into mods/<version>.
	ModFile string `mapstructure:"mod_file" toml:"mod_file"`

	// NestedModsWrapper is a legacy wrapper folder containing a mods folder.
	NestedModsWrapper string `mapstructure:"nested_mods_wrapper" toml:"nested_mods_wrapper"`

	// JunkFiles are deleted from the output root after extraction.
	JunkFiles []string `mapstructure:"junk_files" toml:"junk_files"`

	// JunkFolders are deleted from the output root after extraction.
	JunkFolders []string `mapstructure:"junk_folders" toml:"junk_folders"`

	// ZipNameEncoding decodes zip entry names stored without the UTF-8 flag.
	ZipNameEncoding string `mapstructure:"zip_name_encoding" toml:"zip_name_encoding"`

	LogLevel string `mapstructure:"log_level" toml:"log_level"`

	Rar RarConfig `mapstructure:"rar" toml:"rar"`

	// Rules replaces the built-in reconciliation sequence when non-empty.
	Rules []RuleConfig `mapstructure:"rules" toml:"rules,omitempty"`
}

// RarConfig describes the external tool used to unpack .rar archives.
// Args may contain the {ARCHIVE} and {OUTDIR} placeholders.
type RarConfig struct {
	Command string   `mapstructure:"command" toml:"command"`
	Args    []string `mapstructure:"args" toml:"args"`
}

// RuleConfig is the file form of a reconciliation rule.
type RuleConfig struct {
	Name        string   `mapstructure:"name" toml:"name"`
	Kind        string   `mapstructure:"kind" toml:"kind"`
	Names       []string `mapstructure:"names" toml:"names"`
	Source      string   `mapstructure:"source" toml:"source,omitempty"`
	Target      string   `mapstructure:"target" toml:"target,omitempty"`
	When        string   `mapstructure:"when" toml:"when,omitempty"`
	RemoveAfter string   `mapstructure:"remove_after" toml:"remove_after,omitempty"`
}

// DefaultConfig returns the built-in configuration. The denylists carry the
// junk left behind by the archives of the original mod site, including names
// mangled by legacy code pages.
func DefaultConfig() *Config {
	return &Config{
		InputFolder:       "./download_mods",
		OutputFolder:      "./unpacking_mods",
		Version:           "2.0.0.1",
		VendorFolder:      "WG",
		ModFile:           "three-direction-indicator.wotmod",
		NestedModsWrapper: "2 3 5 8 13 17 21 24 27 30",
		JunkFiles: []string{
			"Best mods.url",
			"install_mods_wotmod.txt",
			"install_mods.txt",
			"Скачать лучшие моды.url",
			"Установка.txt",
			"Установка .txt",
			"Установка_mods.txt",
			"ВНИМАНИЕ!!! WARNING!!!.txt",
			"ôßΓá¡«ó¬á .txt",
			"æ¬áτáΓ∞ ½πτΦ¿Ñ ¼«ñδ.url",
			"webSite.url",
			"Скачать лучшие моды_1.url",
		},
		JunkFolders: []string{
			"2 4 8 16",
			"2 4 8 12 16 20 22 25 30",
			"2 4 8 12 16",
			"Lesta",
		},
		ZipNameEncoding: EncodingCP437,
		LogLevel:        "info",
		Rar: RarConfig{
			Command: "unrar",
			Args:    []string{"x", "-o+", "-y", "{ARCHIVE}", "{OUTDIR}/"},
		},
	}
}

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// ConfigFilePath is an explicit config file (--config). It must exist.
	ConfigFilePath string

	// Flags, when set, supplies --input, --output and --log-level overrides.
	Flags *pflag.FlagSet
}

// flagKeys maps config keys to the CLI flags that override them.
var flagKeys = map[string]string{
	"input_folder":  "input",
	"output_folder": "output",
	"log_level":     "log-level",
}

// Load builds the effective configuration and returns it together with the
// path of the config file that was read ("" when only defaults applied).
func Load(opts LoadOptions) (*Config, string, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	paths, err := DefaultPaths()
	if err != nil {
		return nil, "", err
	}
	configFile, err := paths.ResolveConfigFile(opts.ConfigFilePath)
	if err != nil {
		return nil, "", err
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("%w: failed to read %s: %v", ErrInvalidConfig, configFile, err)
		}
	}

	if opts.Flags != nil {
		for key, name := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, "", fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	return &cfg, configFile, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("input_folder", d.InputFolder)
	v.SetDefault("output_folder", d.OutputFolder)
	v.SetDefault("version", d.Version)
	v.SetDefault("vendor_folder", d.VendorFolder)
	v.SetDefault("mod_file", d.ModFile)
	v.SetDefault("nested_mods_wrapper", d.NestedModsWrapper)
	v.SetDefault("junk_files", d.JunkFiles)
	v.SetDefault("junk_folders", d.JunkFolders)
	v.SetDefault("zip_name_encoding", d.ZipNameEncoding)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("rar.command", d.Rar.Command)
	v.SetDefault("rar.args", d.Rar.Args)
}

// Validate checks values that the rest of the program relies on.
func (c *Config) Validate() error {
	if c.InputFolder == "" {
		return fmt.Errorf("%w: input_folder must not be empty", ErrInvalidConfig)
	}
	if c.OutputFolder == "" {
		return fmt.Errorf("%w: output_folder must not be empty", ErrInvalidConfig)
	}
	if c.Version == "" {
		return fmt.Errorf("%w: version must not be empty", ErrInvalidConfig)
	}

	switch c.ZipNameEncoding {
	case EncodingCP437, EncodingCP866, EncodingNone:
	default:
		return fmt.Errorf("%w: unknown zip_name_encoding %q", ErrInvalidConfig, c.ZipNameEncoding)
	}

	for i, r := range c.Rules {
		if r.Kind != RuleKindFolders && r.Kind != RuleKindFile {
			return fmt.Errorf("%w: rules[%d]: unknown kind %q", ErrInvalidConfig, i, r.Kind)
		}
		if len(r.Names) == 0 {
			return fmt.Errorf("%w: rules[%d]: names must not be empty", ErrInvalidConfig, i)
		}
	}

	return nil
}

// ToTOML renders the configuration as a TOML document.
func (c *Config) ToTOML() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}
