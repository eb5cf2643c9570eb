package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSetLogger(t *testing.T) {
	logger := zerolog.New(os.Stdout).Level(zerolog.InfoLevel)
	SetLogger(logger)

	// Verify logger is set (we can't easily compare loggers directly)
	// This test mainly ensures the function doesn't panic
}

func TestApplyDefaults(t *testing.T) {
	t.Run("Config struct defaults", func(t *testing.T) {
		config := &Config{}
		applyDefaults(config)

		if config.Site.Name != "BabaGallery" {
			t.Errorf("Expected site name 'BabaGallery', got %q", config.Site.Name)
		}
		if config.Server.Host != "0.0.0.0" {
			t.Errorf("Expected host '0.0.0.0', got %q", config.Server.Host)
		}
		if config.Server.Port != "12600" {
			t.Errorf("Expected port '12600', got %q", config.Server.Port)
		}

		if config.Storage.Type != StorageDiskv {
			t.Errorf("Expected storage type %q, got %q", StorageDiskv, config.Storage.Type)
		}
		if config.Storage.Path != "~/.babagallery" {
			t.Errorf("Expected storage path '~/.babagallery', got %q", config.Storage.Path)
		}

		if config.Collections.ImagesKey != "babaGalleryImages" {
			t.Errorf("Expected images key 'babaGalleryImages', got %q", config.Collections.ImagesKey)
		}
		if config.Collections.ProjectsKey != "babaGalleryProjects" {
			t.Errorf("Expected projects key 'babaGalleryProjects', got %q", config.Collections.ProjectsKey)
		}
		if config.Collections.PostsKey != "babaGalleryBlogPosts" {
			t.Errorf("Expected posts key 'babaGalleryBlogPosts', got %q", config.Collections.PostsKey)
		}

		if config.Slideshow.IntervalMs != 5000 {
			t.Errorf("Expected slideshow interval 5000, got %d", config.Slideshow.IntervalMs)
		}
		if len(config.Slideshow.Slides) != 3 {
			t.Errorf("Expected 3 default slides, got %d", len(config.Slideshow.Slides))
		}
		for _, slide := range config.Slideshow.Slides {
			if !strings.HasPrefix(slide, "https://") {
				t.Errorf("Expected slide to be an https URL, got %q", slide)
			}
		}

		if config.Theme.Default != DarkTheme {
			t.Errorf("Expected theme %q, got %q", DarkTheme, config.Theme.Default)
		}
		if config.Theme.SyntaxHighlighting.DefaultDark != "gruvbox" {
			t.Errorf("Expected dark syntax theme 'gruvbox', got %q", config.Theme.SyntaxHighlighting.DefaultDark)
		}

		expectedOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
		if !reflect.DeepEqual(config.CORS.AllowedOrigins, expectedOrigins) {
			t.Errorf("Expected origins %v, got %v", expectedOrigins, config.CORS.AllowedOrigins)
		}

		if config.Logging.Level != "info" {
			t.Errorf("Expected logging level 'info', got %q", config.Logging.Level)
		}
	})

	t.Run("Custom struct with various field types", func(t *testing.T) {
		type TestStruct struct {
			StringField  string   `default:"test-string"`
			BoolField    bool     `default:"true"`
			IntField     int      `default:"42"`
			Float64Field float64  `default:"3.14"`
			SliceField   []string `default:"a, b ,c"`
			NoDefault    string
		}

		s := &TestStruct{}
		applyDefaults(s)

		if s.StringField != "test-string" {
			t.Errorf("Expected 'test-string', got %q", s.StringField)
		}
		if !s.BoolField {
			t.Error("Expected BoolField to be true")
		}
		if s.IntField != 42 {
			t.Errorf("Expected 42, got %d", s.IntField)
		}
		if s.Float64Field != 3.14 {
			t.Errorf("Expected 3.14, got %f", s.Float64Field)
		}
		if !reflect.DeepEqual(s.SliceField, []string{"a", "b", "c"}) {
			t.Errorf("Expected [a b c], got %v", s.SliceField)
		}
		if s.NoDefault != "" {
			t.Errorf("Expected empty NoDefault, got %q", s.NoDefault)
		}
	})

	t.Run("Non-struct input is ignored", func(t *testing.T) {
		value := 10
		applyDefaults(&value)
		if value != 10 {
			t.Errorf("Expected value to stay 10, got %d", value)
		}
	})
}

func TestLoadConfig(t *testing.T) {
	SetLogger(zerolog.New(os.Stdout).Level(zerolog.ErrorLevel))

	t.Run("Missing file uses defaults", func(t *testing.T) {
		originalAppConfig := AppConfig
		defer func() { AppConfig = originalAppConfig }()

		err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if err != nil {
			t.Fatalf("Expected no error for missing file, got %v", err)
		}
		if AppConfig.Site.Name != "BabaGallery" {
			t.Errorf("Expected default site name, got %q", AppConfig.Site.Name)
		}
	})

	t.Run("File overrides defaults", func(t *testing.T) {
		originalAppConfig := AppConfig
		defer func() { AppConfig = originalAppConfig }()

		if err := LoadConfig("testdata/custom.yaml"); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if AppConfig.Site.Name != "My Portfolio" {
			t.Errorf("Expected site name 'My Portfolio', got %q", AppConfig.Site.Name)
		}
		if AppConfig.Server.Port != "8080" {
			t.Errorf("Expected port '8080', got %q", AppConfig.Server.Port)
		}
		if AppConfig.Server.Host != "0.0.0.0" {
			t.Errorf("Expected default host to survive, got %q", AppConfig.Server.Host)
		}
		if AppConfig.Storage.Type != StorageSQLite {
			t.Errorf("Expected storage type sqlite, got %q", AppConfig.Storage.Type)
		}
		if AppConfig.Collections.PostsKey != "myPosts" {
			t.Errorf("Expected posts key 'myPosts', got %q", AppConfig.Collections.PostsKey)
		}
		if AppConfig.Collections.ImagesKey != "babaGalleryImages" {
			t.Errorf("Expected default images key, got %q", AppConfig.Collections.ImagesKey)
		}
		if AppConfig.Slideshow.IntervalMs != 2500 {
			t.Errorf("Expected interval 2500, got %d", AppConfig.Slideshow.IntervalMs)
		}
		if len(AppConfig.Slideshow.Slides) != 2 {
			t.Errorf("Expected 2 slides, got %d", len(AppConfig.Slideshow.Slides))
		}
		if AppConfig.Logging.Level != "debug" {
			t.Errorf("Expected level 'debug', got %q", AppConfig.Logging.Level)
		}
	})

	testCases := []struct {
		name      string
		filename  string
		errorText string
	}{
		{name: "Unknown storage type", filename: "testdata/invalid_storage.yaml", errorText: "unsupported storage type"},
		{name: "S3 without bucket", filename: "testdata/s3_without_bucket.yaml", errorText: "requires a bucket"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			originalAppConfig := AppConfig
			defer func() { AppConfig = originalAppConfig }()

			err := LoadConfig(tc.filename)
			if err == nil {
				t.Fatal("Expected error but got none")
			}
			if !strings.Contains(err.Error(), tc.errorText) {
				t.Errorf("Expected error to contain %q, got %q", tc.errorText, err.Error())
			}
			if AppConfig != originalAppConfig {
				t.Error("Expected AppConfig to stay untouched on error")
			}
		})
	}

	t.Run("Malformed YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.yaml")
		if err := os.WriteFile(path, []byte("site: [unclosed"), 0o644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}

		err := LoadConfig(path)
		if err == nil || !strings.Contains(err.Error(), "failed to parse config file") {
			t.Errorf("Expected parse error, got %v", err)
		}
	})
}

func TestValidate(t *testing.T) {
	t.Run("Defaults are valid", func(t *testing.T) {
		if err := Default().Validate(); err != nil {
			t.Errorf("Expected defaults to validate, got %v", err)
		}
	})

	t.Run("Zero interval", func(t *testing.T) {
		cfg := Default()
		cfg.Slideshow.IntervalMs = 0
		if err := cfg.Validate(); err == nil {
			t.Error("Expected error for zero interval")
		}
	})

	t.Run("No slides", func(t *testing.T) {
		cfg := Default()
		cfg.Slideshow.Slides = nil
		if err := cfg.Validate(); err == nil {
			t.Error("Expected error for empty slides")
		}
	})

	t.Run("Zero upload limit", func(t *testing.T) {
		cfg := Default()
		cfg.Uploads.MaxBytes = 0
		if err := cfg.Validate(); err == nil {
			t.Error("Expected error for zero upload limit")
		}
	})

	t.Run("Unknown default theme", func(t *testing.T) {
		cfg := Default()
		cfg.Theme.Default = "sepia"
		if err := cfg.Validate(); err == nil {
			t.Error("Expected error for unknown default theme")
		}
	})

	t.Run("Total upload limit below file limit", func(t *testing.T) {
		cfg := Default()
		cfg.Uploads.MaxTotalBytes = cfg.Uploads.MaxBytes - 1
		if err := cfg.Validate(); err == nil {
			t.Error("Expected error for total upload limit below file limit")
		}
	})
}
