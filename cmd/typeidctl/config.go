package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/omeyang/xtypeid/pkg/util/xid"
	"github.com/omeyang/xtypeid/pkg/util/xtypeid"
)

var (
	errUnsupportedFormat = errors.New("typeidctl: unsupported config format")
	errLoadConfig        = errors.New("typeidctl: load config failed")
	errInvalidConfig     = errors.New("typeidctl: invalid config")
)

// config typeidctl 配置文件结构。
//
// YAML 示例:
//
//	prefix: user
//	count: 10
//	workers: 2
//	generator:
//	  max_drift: 50ms
//	  max_wait: 1s
//	  retry_interval: 1ms
//	log:
//	  level: info
//	  format: json
//	  file: /var/log/typeidctl.log
//	  max_size_mb: 50
type config struct {
	Prefix    string          `koanf:"prefix"`
	Count     int             `koanf:"count"`
	Workers   int             `koanf:"workers"`
	Generator generatorConfig `koanf:"generator"`
	Log       logConfig       `koanf:"log"`
}

// generatorConfig 对应 xid 生成器选项，零值表示使用 xid 默认值。
type generatorConfig struct {
	MaxDrift      time.Duration `koanf:"max_drift"`
	MaxWait       time.Duration `koanf:"max_wait"`
	RetryInterval time.Duration `koanf:"retry_interval"`
}

type logConfig struct {
	Level      string `koanf:"level"`
	Format     string `koanf:"format"`
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAgeDays int    `koanf:"max_age_days"`
	Compress   bool   `koanf:"compress"`
}

func defaultConfig() config {
	return config{
		Count:   1,
		Workers: 1,
		Log: logConfig{
			Level:      "warn",
			Format:     "text",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}

// loadConfig 加载配置文件，path 为空时返回默认配置。
// 文件中未出现的键保留默认值。
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	parser, err := parserFor(path)
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("%w: %w", errLoadConfig, err)
	}

	k := koanf.New(".")
	if len(data) > 0 {
		if err := k.Load(rawbytes.Provider(data), parser); err != nil {
			return cfg, fmt.Errorf("%w: %w", errLoadConfig, err)
		}
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return cfg, fmt.Errorf("%w: %w", errInvalidConfig, err)
	}
	return cfg, nil
}

// parserFor 根据文件扩展名选择解析器。
func parserFor(path string) (koanf.Parser, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("%w: unknown extension %q", errUnsupportedFormat, ext)
	}
}

func (c config) validate() error {
	if err := xtypeid.ValidatePrefix(c.Prefix); err != nil {
		return fmt.Errorf("%w: prefix: %w", errInvalidConfig, err)
	}
	if c.Count < 1 {
		return fmt.Errorf("%w: count must be positive, got %d", errInvalidConfig, c.Count)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be positive, got %d", errInvalidConfig, c.Workers)
	}
	if _, err := xid.NewGenerator(c.Generator.options()...); err != nil {
		return fmt.Errorf("%w: generator: %w", errInvalidConfig, err)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", errInvalidConfig, err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", errInvalidConfig, c.Log.Format)
	}
	return nil
}

// options 只传递显式配置的项，其余沿用 xid 默认值。
func (g generatorConfig) options() []xid.Option {
	var opts []xid.Option
	if g.MaxDrift != 0 {
		opts = append(opts, xid.WithMaxDrift(g.MaxDrift))
	}
	if g.MaxWait != 0 {
		opts = append(opts, xid.WithMaxWaitDuration(g.MaxWait))
	}
	if g.RetryInterval != 0 {
		opts = append(opts, xid.WithRetryInterval(g.RetryInterval))
	}
	return opts
}
