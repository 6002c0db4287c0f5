package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

// DefaultBackendURL is the hosted AgroNova API used when no override is set.
const DefaultBackendURL = "https://agronova-ml0a.onrender.com"

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host      string `yaml:"host" json:"host"`
	Port      int    `yaml:"port" json:"port"`
	JwtSecret string `yaml:"jwt_secret" json:"jwt_secret"`
}

type BackendConfig struct {
	// BaseURL selects the remote AgroNova API. It is the only runtime
	// setting the storefront strictly needs.
	BaseURL string `yaml:"base_url" json:"base_url"`
	// RefreshInterval re-runs the catalog load periodically. Zero disables
	// the refresh job.
	RefreshInterval int `yaml:"refresh_interval" json:"refresh_interval"`
}

type AdminConfig struct {
	Username string `yaml:"username" json:"username"`
	// PasswordHash is a bcrypt hash. When empty a hash of "admin" is used,
	// matching the stock credentials of the hosted panel.
	PasswordHash string `yaml:"password_hash" json:"password_hash"`
	// IdleTimeout and IdleWarning are minutes. Defaults: 120 and 90.
	IdleTimeout int `yaml:"idle_timeout" json:"idle_timeout"`
	IdleWarning int `yaml:"idle_warning" json:"idle_warning"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System  SysConfig     `yaml:"system" json:"system"`
	Web     WebConfig     `yaml:"web" json:"web"`
	Backend BackendConfig `yaml:"backend" json:"backend"`
	Admin   AdminConfig   `yaml:"admin" json:"admin"`
	Logger  LogConfig     `yaml:"logger" json:"logger"`
}

func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		System: SysConfig{
			Appid:    "agronova",
			Location: "Asia/Kolkata",
			Workdir:  "/var/agronova",
			Debug:    false,
		},
		Web: WebConfig{
			Host:      "0.0.0.0",
			Port:      1816,
			JwtSecret: "9b6de5cc-agronova-0cc9f05a",
		},
		Backend: BackendConfig{
			BaseURL:         DefaultBackendURL,
			RefreshInterval: 0,
		},
		Admin: AdminConfig{
			Username:    "admin",
			IdleTimeout: 120,
			IdleWarning: 90,
		},
		Logger: LogConfig{
			Mode:       "development",
			FileEnable: false,
			Filename:   "/var/agronova/agronova.log",
		},
	}
}

// LoadConfig reads the YAML config file and applies environment overrides.
// A missing file yields the defaults.
func LoadConfig(cfile string) *AppConfig {
	cfg := DefaultAppConfig()
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}
	setEnvValue("AGRONOVA_WORKDIR", &cfg.System.Workdir)
	setEnvValue("AGRONOVA_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("AGRONOVA_WEB_PORT", &cfg.Web.Port)
	setEnvValue("AGRONOVA_WEB_SECRET", &cfg.Web.JwtSecret)
	setEnvValue("AGRONOVA_API_BASE", &cfg.Backend.BaseURL)
	setEnvValue("AGRONOVA_ADMIN_USERNAME", &cfg.Admin.Username)
	setEnvValue("AGRONOVA_ADMIN_PASSWORD_HASH", &cfg.Admin.PasswordHash)
	setEnvBoolValue("AGRONOVA_SYSTEM_DEBUG", &cfg.System.Debug)
	return cfg
}

// StoragePath locates the embedded state file under the workdir.
func (c *AppConfig) StoragePath() string {
	return filepath.Join(c.System.Workdir, "agronova.db")
}

func setEnvValue(name string, val *string) {
	if evalue, ok := os.LookupEnv(name); ok {
		*val = evalue
	}
}

func setEnvBoolValue(name string, val *bool) {
	if evalue, ok := os.LookupEnv(name); ok {
		*val = cast.ToBool(evalue)
	}
}

func setEnvIntValue(name string, val *int) {
	if evalue, ok := os.LookupEnv(name); ok {
		*val = cast.ToInt(evalue)
	}
}
