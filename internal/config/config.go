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
	Site        SiteConfig        `yaml:"site"`
	Server      ServerConfig      `yaml:"server"`
	Storage     StorageConfig     `yaml:"storage"`
	Collections CollectionsConfig `yaml:"collections"`
	Slideshow   SlideshowConfig   `yaml:"slideshow"`
	Uploads     UploadsConfig     `yaml:"uploads"`
	Theme       ThemeConfig       `yaml:"theme"`
	CORS        CORSConfig        `yaml:"cors"`
	Social      SocialConfig      `yaml:"social"`
	Logging     LoggingConfig     `yaml:"logging"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" default:"info"`
	Format string `yaml:"format" default:"console"`
}

type SiteConfig struct {
	Name        string `yaml:"name" default:"BabaGallery"`
	Description string `yaml:"description" default:"Professional techy gallery & portfolio"`
	Author      string `yaml:"author" default:"Babamosie333"`
}

type ServerConfig struct {
	Host string `yaml:"host" default:"0.0.0.0"`
	Port string `yaml:"port" default:"12600"`
}

// StorageConfig selects the local store backend. Type is one of memory, diskv,
// sqlite or s3. Path is the diskv directory or the sqlite file.
type StorageConfig struct {
	Type     string `yaml:"type" default:"diskv"`
	Path     string `yaml:"path" default:"~/.babagallery"`
	Bucket   string `yaml:"bucket" default:""`
	Prefix   string `yaml:"prefix" default:"collections/"`
	Endpoint string `yaml:"endpoint" default:""`
	Region   string `yaml:"region" default:"auto"`

	// Compression applies to the sqlite backend only: zstd, gzip or none.
	Compression string `yaml:"compression" default:"zstd"`
}

type CollectionsConfig struct {
	ImagesKey   string `yaml:"images_key" default:"babaGalleryImages"`
	ProjectsKey string `yaml:"projects_key" default:"babaGalleryProjects"`
	PostsKey    string `yaml:"posts_key" default:"babaGalleryBlogPosts"`
}

type SlideshowConfig struct {
	IntervalMs int      `yaml:"interval_ms" default:"5000"`
	Slides     []string `yaml:"slides" default:"https://images.unsplash.com/photo-1541701494587-cb58502866ab?w=1600&h=900&fit=crop,https://images.unsplash.com/photo-1518770660439-4636190af475?w=1600&h=900&fit=crop,https://images.unsplash.com/photo-1518770660439-4636190af475?w=1600&h=900&fit=crop"`
}

type UploadsConfig struct {
	MaxBytes int `yaml:"max_bytes" default:"10485760"`
	// MaxTotalBytes bounds everything held in memory at once.
	MaxTotalBytes int `yaml:"max_total_bytes" default:"104857600"`
}

type ThemeConfig struct {
	Default            string       `yaml:"default" default:"dark-theme"`
	AllowSwitching     bool         `yaml:"allow_switching" default:"true"`
	SyntaxHighlighting SyntaxConfig `yaml:"syntax_highlighting"`
}

type SyntaxConfig struct {
	DefaultDark  string `yaml:"default_dark" default:"gruvbox"`
	DefaultLight string `yaml:"default_light" default:"catppuccin-latte"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" default:"http://localhost:3000,http://127.0.0.1:3000"`
}

type SocialConfig struct {
	GitHub  string `yaml:"github" default:"https://github.com/babamosie333"`
	YouTube string `yaml:"youtube" default:""`
	Email   string `yaml:"email" default:""`
}

var AppConfig = Default()

// Default returns a configuration with every default value applied.
func Default() *Config {
	config := &Config{}
	applyDefaults(config)
	return config
}

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

	if err := config.Validate(); err != nil {
		return err
	}

	AppConfig = config
	return nil
}

// Validate reports settings that would keep the server from starting.
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case StorageMemory, StorageDiskv, StorageSQLite:
	case StorageS3:
		if c.Storage.Bucket == "" {
			return fmt.Errorf("storage type %q requires a bucket", c.Storage.Type)
		}
	default:
		return fmt.Errorf("unsupported storage type %q", c.Storage.Type)
	}

	if !IsTheme(c.Theme.Default) {
		return fmt.Errorf("unknown default theme %q, want one of %v", c.Theme.Default, Themes)
	}

	if c.Slideshow.IntervalMs <= 0 {
		return fmt.Errorf("slideshow interval must be positive, got %d", c.Slideshow.IntervalMs)
	}
	if len(c.Slideshow.Slides) == 0 {
		return fmt.Errorf("slideshow needs at least one slide")
	}
	if c.Uploads.MaxBytes <= 0 {
		return fmt.Errorf("uploads max_bytes must be positive, got %d", c.Uploads.MaxBytes)
	}
	if c.Uploads.MaxTotalBytes < c.Uploads.MaxBytes {
		return fmt.Errorf("uploads max_total_bytes (%d) must be at least max_bytes (%d)", c.Uploads.MaxTotalBytes, c.Uploads.MaxBytes)
	}
	return nil
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
