package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var configLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	configLogger = l
}

// Config represents the complete configuration structure
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Content  ContentConfig  `yaml:"content"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type SiteConfig struct {
	Name        string `yaml:"name" default:"Inkpress"`
	Description string `yaml:"description" default:"A small blogging platform"`
}

type ServerConfig struct {
	Host string `yaml:"host" default:"0.0.0.0"`
	Port string `yaml:"port" default:"12700"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" default:"./inkpress.db"`
}

type AuthConfig struct {
	// Name of the environment variable holding the JWT signing key.
	// The key itself never goes in the config file.
	SigningKeyEnv string `yaml:"signing_key_env" default:"INKPRESS_JWT_KEY"`
	TokenTTLHours int    `yaml:"token_ttl_hours" default:"24"`
}

type ContentConfig struct {
	PostsPerPage int    `yaml:"posts_per_page" default:"10"`
	SyntaxTheme  string `yaml:"syntax_theme" default:"gruvbox"`
}

type LoggingConfig struct {
	Level string `yaml:"level" default:"info"`
}

var AppConfig *Config

func LoadConfig(path string) error {
	config := &Config{}

	// Apply default values first
	applyDefaults(config)

	// Try to read and parse the config file
	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, just use defaults
		configLogger.Info().Str("path", path).Msg("Config file not found, using defaults")
		AppConfig = config
		return nil
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	AppConfig = config
	return nil
}

// SigningKey resolves the JWT signing key from the configured env var.
func (c *Config) SigningKey() string {
	return os.Getenv(c.Auth.SigningKeyEnv)
}

func ApplyDefaults(config interface{}) {
	applyDefaults(config)
}

func applyDefaults(config interface{}) {
	v := reflect.ValueOf(config)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.IsValid() || !field.CanSet() {
			continue
		}

		// Recursively apply defaults to nested structs
		if field.Kind() == reflect.Struct {
			applyDefaults(field.Addr().Interface())
			continue
		}

		defaultValue := fieldType.Tag.Get("default")
		if defaultValue == "" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(defaultValue)
		case reflect.Bool:
			if val, err := strconv.ParseBool(defaultValue); err == nil {
				field.SetBool(val)
			}
		case reflect.Int:
			if val, err := strconv.ParseInt(defaultValue, 10, 64); err == nil {
				field.SetInt(val)
			}
		case reflect.Float64:
			if val, err := strconv.ParseFloat(defaultValue, 64); err == nil {
				field.SetFloat(val)
			}
		case reflect.Slice:
			if field.Len() == 0 && field.Type().Elem().Kind() == reflect.String {
				parts := strings.Split(defaultValue, ",")
				slice := reflect.MakeSlice(field.Type(), len(parts), len(parts))
				for j, part := range parts {
					slice.Index(j).SetString(strings.TrimSpace(part))
				}
				field.Set(slice)
			}
		default:
			configLogger.Warn().
				Str("field_name", fieldType.Name).
				Str("field_type", field.Kind().String()).
				Msg("Unsupported field type for default value")
		}
	}
}
