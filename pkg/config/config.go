package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nodewee/doc-translate/pkg/constants"
	"github.com/nodewee/doc-translate/pkg/types"
)

// Default values
const (
	DefaultLibreTranslateURL  = "http://localhost:5000"
	DefaultSourceLang         = "ru"
	DefaultTargetLang         = "en"
	DefaultLogLevel           = "info"
	DefaultTimeoutMinutes     = 120
	DefaultMaxConcurrency     = 4
	DefaultRequestsPerSecond  = 0
	DefaultMinTextThreshold   = 10
	DefaultOCRStrategy        = types.OCRStrategyGosseract
	DefaultContentType        = types.ContentTypeImage
	DefaultEnableVerbose      = false
	DefaultOverwrite          = false
	DefaultCopyUnsupported    = false
	DefaultRequestTimeoutSecs = int(constants.DefaultRequestTimeout / time.Second)
)

// Config holds application configuration
type Config struct {
	// Persisted settings
	LibreTranslateURL    string
	LibreTranslateAPIKey string
	SourceLang           string
	TargetLang           string
	TessdataPrefix       string
	OCRLanguage          string
	GhostscriptPath      string
	TesseractPath        string

	// Runtime settings (not persisted to file)
	OCRStrategy           types.OCRStrategy
	ContentType           types.ContentType
	Overwrite             bool
	CopyUnsupported       bool
	DryRun                bool
	RenameDirs            bool
	MaxConcurrency        int
	RequestsPerSecond     float64
	MaxRetries            int
	RequestTimeoutSeconds int
	TimeoutMinutes        int
	RenderDPI             int
	MaxImageDimension     int
	MinTextThreshold      int
	MaxChunkChars         int
	Include               []string
	Exclude               []string
	LogLevel              string
	EnableVerbose         bool
}

// NewConfig returns a configuration holding only built-in defaults
func NewConfig() *Config {
	return &Config{
		LibreTranslateURL:     DefaultLibreTranslateURL,
		SourceLang:            DefaultSourceLang,
		TargetLang:            DefaultTargetLang,
		OCRStrategy:           DefaultOCRStrategy,
		ContentType:           DefaultContentType,
		Overwrite:             DefaultOverwrite,
		CopyUnsupported:       DefaultCopyUnsupported,
		MaxConcurrency:        DefaultMaxConcurrency,
		RequestsPerSecond:     DefaultRequestsPerSecond,
		MaxRetries:            constants.DefaultMaxRetries,
		RequestTimeoutSeconds: DefaultRequestTimeoutSecs,
		TimeoutMinutes:        DefaultTimeoutMinutes,
		RenderDPI:             constants.DefaultRenderDPI,
		MaxImageDimension:     constants.DefaultMaxImageDimension,
		MinTextThreshold:      DefaultMinTextThreshold,
		MaxChunkChars:         constants.DefaultMaxChunkChars,
		LogLevel:              DefaultLogLevel,
		EnableVerbose:         DefaultEnableVerbose,
	}
}

// Load reads the config file at path (creating it when missing) and applies
// environment overrides. An empty path selects the default location.
func Load(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	ApplyEnvOverrides(cfg, os.Getenv)
	return cfg, nil
}

// ApplyEnvOverrides applies environment variable overrides read through getenv
func ApplyEnvOverrides(config *Config, getenv func(string) string) {
	// External service and tool settings
	if value := getenv("LIBRETRANSLATE_URL"); value != "" {
		config.LibreTranslateURL = value
	}
	if value := getenv("LIBRETRANSLATE_API_KEY"); value != "" {
		config.LibreTranslateAPIKey = value
	}
	if value := getenv("TESSDATA_PREFIX"); value != "" {
		config.TessdataPrefix = value
	}
	if value := getenv("GHOSTSCRIPT_PATH"); value != "" {
		config.GhostscriptPath = value
	}
	if value := getenv("TESSERACT_PATH"); value != "" {
		config.TesseractPath = value
	}

	// Runtime settings
	if value := getenv("DOC_TRANSLATE_SOURCE_LANG"); value != "" {
		config.SourceLang = value
	}
	if value := getenv("DOC_TRANSLATE_TARGET_LANG"); value != "" {
		config.TargetLang = value
	}
	if value := getenv("DOC_TRANSLATE_OCR_LANGUAGE"); value != "" {
		config.OCRLanguage = value
	}
	if value := getenv("DOC_TRANSLATE_OCR_STRATEGY"); value != "" {
		config.OCRStrategy = types.OCRStrategy(value)
	}
	if value := getenv("DOC_TRANSLATE_CONTENT_TYPE"); value != "" {
		config.ContentType = types.ContentType(value)
	}
	if value := getenv("DOC_TRANSLATE_MAX_CONCURRENCY"); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			config.MaxConcurrency = intVal
		}
	}
	if value := getenv("DOC_TRANSLATE_REQUESTS_PER_SECOND"); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			config.RequestsPerSecond = floatVal
		}
	}
	if value := getenv("DOC_TRANSLATE_TIMEOUT_MINUTES"); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			config.TimeoutMinutes = intVal
		}
	}
	if value := getenv("DOC_TRANSLATE_LOG_LEVEL"); value != "" {
		config.LogLevel = value
	}
	if value := getenv("DOC_TRANSLATE_VERBOSE"); value != "" {
		config.EnableVerbose = parseBool(value)
	}
}

func parseBool(value string) bool {
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	validator := NewConfigValidator()
	return validator.Validate(c)
}

// Timeout returns the overall run timeout
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMinutes) * time.Minute
}

// RequestTimeout returns the timeout of a single translation request
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{URL: %s, Pair: %s->%s, OCR: %s, Content: %s, Concurrency: %d, LogLevel: %s, Verbose: %v}",
		c.LibreTranslateURL, c.SourceLang, c.TargetLang, c.OCRStrategy, c.ContentType,
		c.MaxConcurrency, c.LogLevel, c.EnableVerbose)
}
