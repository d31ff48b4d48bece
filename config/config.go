// Package config loads application configuration from an optional YAML file
// with INVENTARIO_* environment overrides on top.
package config

import (
	"os"
	"path"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Workdir  string `yaml:"workdir" json:"workdir"`
	Location string `yaml:"location" json:"location"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
}

type DBConfig struct {
	// Path of the bbolt store file. Relative paths resolve under the workdir.
	Path string `yaml:"path" json:"path"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"` // development or production
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig `yaml:"system" json:"system"`
	Web      WebConfig `yaml:"web" json:"web"`
	Database DBConfig  `yaml:"database" json:"database"`
	Logger   LogConfig `yaml:"logger" json:"logger"`
}

// DefaultAppConfig runs a local single-user instance out of ./data.
var DefaultAppConfig = AppConfig{
	System: SysConfig{
		Workdir:  "data",
		Location: "Local",
		Debug:    false,
	},
	Web: WebConfig{
		Host: "127.0.0.1",
		Port: 8960,
	},
	Database: DBConfig{
		Path: "inventory.db",
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "inventario.log",
	},
}

// StorePath resolves the store file location under the workdir.
func (c *AppConfig) StorePath() string {
	if path.IsAbs(c.Database.Path) {
		return c.Database.Path
	}
	return path.Join(c.System.Workdir, c.Database.Path)
}

// BackupDir is where scheduled snapshots land.
func (c *AppConfig) BackupDir() string {
	return path.Join(c.System.Workdir, "backup")
}

// LoadConfig reads the YAML file at cfile when it exists, then applies
// environment overrides. A missing file is not an error; defaults apply.
func LoadConfig(cfile string) (*AppConfig, error) {
	cfg := DefaultAppConfig
	if cfile != "" {
		data, err := os.ReadFile(cfile)
		switch {
		case os.IsNotExist(err):
			// fall through to defaults
		case err != nil:
			return nil, errors.Wrapf(err, "read config %s", cfile)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, errors.Wrapf(err, "parse config %s", cfile)
			}
		}
	}
	applyEnv(&cfg)
	return &cfg, nil
}

func applyEnv(cfg *AppConfig) {
	setString(&cfg.System.Workdir, "INVENTARIO_WORKDIR")
	setString(&cfg.System.Location, "INVENTARIO_LOCATION")
	setBool(&cfg.System.Debug, "INVENTARIO_DEBUG")
	setString(&cfg.Web.Host, "INVENTARIO_WEB_HOST")
	setInt(&cfg.Web.Port, "INVENTARIO_WEB_PORT")
	setString(&cfg.Database.Path, "INVENTARIO_DB_PATH")
	setString(&cfg.Logger.Mode, "INVENTARIO_LOG_MODE")
	setBool(&cfg.Logger.FileEnable, "INVENTARIO_LOG_FILE")
	setString(&cfg.Logger.Filename, "INVENTARIO_LOG_FILENAME")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := cast.ToIntE(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := cast.ToBoolE(v); err == nil {
			*dst = b
		}
	}
}
