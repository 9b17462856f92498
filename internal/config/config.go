package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Onboarding OnboardingConfig `mapstructure:"onboarding"`
	Logger     LoggerConfig     `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig holds the durable mirror database configuration
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// OnboardingConfig holds invitation resolution and export configuration
type OnboardingConfig struct {
	TokenParam     string `mapstructure:"token_param"`
	RoleParam      string `mapstructure:"role_param"`
	DemoParam      string `mapstructure:"demo_param"`
	DemoValue      string `mapstructure:"demo_value"`
	DemoToken      string `mapstructure:"demo_token"`
	InviterParam   string `mapstructure:"inviter_param"`
	CompanyParam   string `mapstructure:"company_param"`
	ViewParam      string `mapstructure:"view_param"`
	DefaultInviter string `mapstructure:"default_inviter"`
	DefaultCompany string `mapstructure:"default_company"`
	ExportDir      string `mapstructure:"export_dir"`
	ExportEnabled  bool   `mapstructure:"export_enabled"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from file and environment variables. A .env
// file next to the binary is honored before viper reads the environment.
func Load(configPath string) (*Config, error) {
	_ = gotenv.Load()

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)

	// Database defaults
	viper.SetDefault("database.path", "data/onboarding_mirror.db")
	viper.SetDefault("database.max_open_conns", 5)
	viper.SetDefault("database.max_idle_conns", 2)
	viper.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	// Onboarding defaults match the recognized navigation inputs
	viper.SetDefault("onboarding.token_param", "uid")
	viper.SetDefault("onboarding.role_param", "type")
	viper.SetDefault("onboarding.demo_param", "demo")
	viper.SetDefault("onboarding.demo_value", "onboarding")
	viper.SetDefault("onboarding.demo_token", "demo-invitation-001")
	viper.SetDefault("onboarding.inviter_param", "inviter")
	viper.SetDefault("onboarding.company_param", "company")
	viper.SetDefault("onboarding.view_param", "view")
	viper.SetDefault("onboarding.default_inviter", "Sarah Chen")
	viper.SetDefault("onboarding.default_company", "ProjectFlow Solutions")
	viper.SetDefault("onboarding.export_dir", "exports")
	viper.SetDefault("onboarding.export_enabled", true)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.output_path", "stdout")
	viper.SetDefault("logger.format", "json")
}

// bindEnvVars binds environment variables to configuration
func bindEnvVars() {
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("database.path", "MIRROR_DB_PATH")
	viper.BindEnv("onboarding.export_dir", "EXPORT_DIR")
	viper.BindEnv("logger.level", "LOG_LEVEL")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Onboarding.TokenParam == "" {
		return fmt.Errorf("onboarding.token_param is required")
	}
	if c.Onboarding.RoleParam == "" {
		return fmt.Errorf("onboarding.role_param is required")
	}
	if c.Onboarding.DemoToken == "" {
		return fmt.Errorf("onboarding.demo_token is required")
	}
	if c.Onboarding.ExportEnabled && c.Onboarding.ExportDir == "" {
		return fmt.Errorf("onboarding.export_dir is required when export is enabled")
	}
	return nil
}
