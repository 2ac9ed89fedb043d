package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	DefaultFile = "swagts.yaml"
	// PackageFile holds the configuration under its "swagger" key.
	PackageFile = "package.json"
	packageKey  = "swagger"
)

const (
	ScalarModelsSkip  = "skip"
	ScalarModelsAlias = "alias"
)

// Config is the resolved configuration of one run. It is passed explicitly to
// every component that needs it.
type Config struct {
	Output       string           `koanf:"output"`
	Ext          string           `koanf:"ext"`
	Resources    []ResourceConfig `koanf:"resources"`
	Prettier     FormatterConfig  `koanf:"prettier"`
	Templates    TemplateConfig   `koanf:"templates"`
	ScalarModels string           `koanf:"scalar-models"`
	Workers      int              `koanf:"workers"`
	Fetch        FetchConfig      `koanf:"fetch"`
	Log          LogConfig        `koanf:"log"`
}

// ResourceConfig is one named source group serving swagger-resources.
type ResourceConfig struct {
	Name string `koanf:"name"`
	URL  string `koanf:"url"`
}

// FormatterConfig keeps the key names of the prettier section so existing
// package.json configurations load unchanged.
type FormatterConfig struct {
	Semi        bool `koanf:"semi"`
	SingleQuote bool `koanf:"singleQuote"`
}

type TemplateConfig struct {
	Dir string `koanf:"dir"`
}

type FetchConfig struct {
	Timeout time.Duration `koanf:"timeout"`
	Retries int           `koanf:"retries"`
	Backoff time.Duration `koanf:"backoff"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func defaults() map[string]any {
	return map[string]any{
		"output":               "definitions",
		"ext":                  "d.ts",
		"prettier.semi":        false,
		"prettier.singleQuote": true,
		"scalar-models":        ScalarModelsSkip,
		"workers":              0,
		"fetch.timeout":        "10s",
		"fetch.retries":        3,
		"fetch.backoff":        "200ms",
		"log.level":            "info",
		"log.format":           "text",
	}
}

// BindFlags registers the flags that override configuration values.
func BindFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringP("config", "c", "", "Config file path (default: swagts.yaml, then package.json)")
	flags.StringP("output", "o", "", "Output root directory")
	flags.String("ext", "", "Output extension: d.ts, ts")
	flags.StringSlice("resource", nil, "Resource group as name=url (repeatable)")
	flags.Bool("semi", false, "Terminate members with semicolons")
	flags.Bool("single-quote", true, "Use single-quoted strings")
	flags.String("templates", "", "Custom templates directory")
	flags.String("scalar-models", "", "Scalar model handling: skip, alias")
	flags.Int("workers", 0, "Parallel compile workers (0 = number of CPUs)")
	flags.Duration("timeout", 0, "HTTP timeout per request")
	flags.Int("retries", 0, "Attempts per HTTP request")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-format", "", "Log format: text, json")
}

func Load(cmd *cobra.Command) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	configFile, _ := flagSet(cmd).GetString("config")
	if err := loadFile(k, discover(configFile)); err != nil {
		return nil, err
	}

	flagsMap, err := buildFlagsMap(cmd)
	if err != nil {
		return nil, err
	}
	if len(flagsMap) > 0 {
		if err := k.Load(confmap.Provider(flagsMap, "."), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func discover(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, candidate := range []string{DefaultFile, PackageFile} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// loadFile merges a config file into k. A package.json contributes only its
// "swagger" key; JSON is read with the YAML parser.
func loadFile(k *koanf.Koanf, path string) error {
	if path == "" {
		return nil
	}

	if filepath.Base(path) != PackageFile {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
		return nil
	}

	pkg := koanf.New(".")
	if err := pkg.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := k.Merge(pkg.Cut(packageKey)); err != nil {
		return fmt.Errorf("merging %s: %w", path, err)
	}
	return nil
}

// flagSet includes the persistent flags of cmd even before cobra has parsed
// the command line.
func flagSet(cmd *cobra.Command) *pflag.FlagSet {
	flags := cmd.Flags()
	flags.AddFlagSet(cmd.PersistentFlags())
	return flags
}

func buildFlagsMap(cmd *cobra.Command) (map[string]any, error) {
	m := make(map[string]any)
	flags := flagSet(cmd)

	getString := func(name string) string {
		v, _ := flags.GetString(name)
		return strings.TrimSpace(v)
	}

	if v := getString("output"); v != "" {
		m["output"] = v
	}
	if v := getString("ext"); v != "" {
		m["ext"] = v
	}
	if v := getString("templates"); v != "" {
		m["templates.dir"] = v
	}
	if v := getString("scalar-models"); v != "" {
		m["scalar-models"] = v
	}
	if v := getString("log-level"); v != "" {
		m["log.level"] = v
	}
	if v := getString("log-format"); v != "" {
		m["log.format"] = v
	}
	if flags.Changed("semi") {
		v, _ := flags.GetBool("semi")
		m["prettier.semi"] = v
	}
	if flags.Changed("single-quote") {
		v, _ := flags.GetBool("single-quote")
		m["prettier.singleQuote"] = v
	}
	if flags.Changed("workers") {
		v, _ := flags.GetInt("workers")
		m["workers"] = v
	}
	if flags.Changed("timeout") {
		v, _ := flags.GetDuration("timeout")
		m["fetch.timeout"] = v
	}
	if flags.Changed("retries") {
		v, _ := flags.GetInt("retries")
		m["fetch.retries"] = v
	}
	if flags.Changed("resource") {
		values, _ := flags.GetStringSlice("resource")
		resources, err := parseResources(values)
		if err != nil {
			return nil, err
		}
		m["resources"] = resources
	}

	return m, nil
}

func parseResources(values []string) ([]map[string]any, error) {
	var out []map[string]any
	for _, v := range values {
		name, url, ok := strings.Cut(v, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid resource %q (expected name=url)", v)
		}
		out = append(out, map[string]any{
			"name": strings.TrimSpace(name),
			"url":  strings.TrimSpace(url),
		})
	}
	return out, nil
}

func (c *Config) Validate() error {
	if c.Output == "" {
		return fmt.Errorf("output directory is required")
	}

	validExts := map[string]bool{"d.ts": true, "ts": true}
	if !validExts[c.Ext] {
		return fmt.Errorf("invalid ext: %s (valid: d.ts, ts)", c.Ext)
	}

	validScalarModels := map[string]bool{"": true, ScalarModelsSkip: true, ScalarModelsAlias: true}
	if !validScalarModels[c.ScalarModels] {
		return fmt.Errorf("invalid scalar-models: %s (valid: skip, alias)", c.ScalarModels)
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	if c.Fetch.Retries < 0 {
		return fmt.Errorf("fetch retries must not be negative")
	}

	validLogFormats := map[string]bool{"": true, "text": true, "json": true}
	if !validLogFormats[c.Log.Format] {
		return fmt.Errorf("invalid log format: %s (valid: text, json)", c.Log.Format)
	}

	seen := make(map[string]bool)
	for _, r := range c.Resources {
		if r.Name == "" {
			return fmt.Errorf("resource name is required")
		}
		if seen[r.Name] {
			return fmt.Errorf("duplicate resource name: %s", r.Name)
		}
		seen[r.Name] = true
		if !strings.HasPrefix(r.URL, "http://") && !strings.HasPrefix(r.URL, "https://") {
			return fmt.Errorf("resource %s: url must be http or https, got %q", r.Name, r.URL)
		}
	}

	return nil
}

// RequireResources fails when no resource group is configured.
func (c *Config) RequireResources() error {
	if len(c.Resources) == 0 {
		return fmt.Errorf("at least one resource is required")
	}
	return nil
}

// OutputPath is the artifact path of one resource.
func (c *Config) OutputPath(source, name string) string {
	return filepath.Join(c.Output, source, name+"."+c.Ext)
}
