package config

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"

	"github.com/nodewee/doc-translate/pkg/constants"
	"github.com/nodewee/doc-translate/pkg/types"
	"github.com/nodewee/doc-translate/pkg/utils"
)

// Accepted ranges for numeric settings
const (
	MaxConcurrencyLimit = 32
	MinRenderDPI        = 72
	MaxRenderDPI        = 1200
	MinImageDimension   = 256
)

// ConfigValidator checks a Config and reports every problem at once
type ConfigValidator struct{}

func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// Validate validates the configuration
func (v *ConfigValidator) Validate(c *Config) error {
	var errors []string

	if err := v.validateURL(c.LibreTranslateURL); err != nil {
		errors = append(errors, err.Error())
	}
	if err := v.validateLanguages(c.SourceLang, c.TargetLang); err != nil {
		errors = append(errors, err.Error())
	}
	if err := v.validateOCRStrategy(c.OCRStrategy); err != nil {
		errors = append(errors, err.Error())
	}
	if err := v.validateContentType(c.ContentType); err != nil {
		errors = append(errors, err.Error())
	}
	if err := v.validateNumericValues(c); err != nil {
		errors = append(errors, err.Error())
	}
	if err := v.validateLogLevel(c.LogLevel); err != nil {
		errors = append(errors, err.Error())
	}

	if len(errors) > 0 {
		return utils.NewValidationError("configuration validation failed",
			fmt.Errorf("validation errors: %s", strings.Join(errors, "; ")))
	}
	return nil
}

func (v *ConfigValidator) validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("invalid LibreTranslate URL: %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("LibreTranslate URL must use http or https: %q", raw)
	}
	return nil
}

func (v *ConfigValidator) validateLanguages(source, target string) error {
	src, err := language.Parse(source)
	if err != nil {
		return fmt.Errorf("invalid source language: %q", source)
	}
	dst, err := language.Parse(target)
	if err != nil {
		return fmt.Errorf("invalid target language: %q", target)
	}
	if src == dst {
		return fmt.Errorf("source and target language are both %q", source)
	}
	return nil
}

func (v *ConfigValidator) validateOCRStrategy(strategy types.OCRStrategy) error {
	switch strategy {
	case types.OCRStrategyGosseract, types.OCRStrategyTesseractCLI:
		return nil
	}
	return fmt.Errorf("invalid OCR strategy: %s", strategy)
}

func (v *ConfigValidator) validateContentType(contentType types.ContentType) error {
	switch contentType {
	case types.ContentTypeText, types.ContentTypeImage:
		return nil
	}
	return fmt.Errorf("invalid content type: %s", contentType)
}

func (v *ConfigValidator) validateNumericValues(c *Config) error {
	if c.MaxConcurrency < 1 {
		return fmt.Errorf("max concurrency must be at least 1")
	}
	if c.MaxConcurrency > MaxConcurrencyLimit {
		return fmt.Errorf("max concurrency should not exceed %d", MaxConcurrencyLimit)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests per second must be non-negative")
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max retries must be at least 1")
	}
	if c.RequestTimeoutSeconds < 1 {
		return fmt.Errorf("request timeout must be at least 1 second")
	}
	if c.TimeoutMinutes < 1 {
		return fmt.Errorf("timeout must be at least 1 minute")
	}
	if c.RenderDPI < MinRenderDPI || c.RenderDPI > MaxRenderDPI {
		return fmt.Errorf("render DPI must be between %d and %d", MinRenderDPI, MaxRenderDPI)
	}
	if c.MaxImageDimension < MinImageDimension {
		return fmt.Errorf("max image dimension must be at least %d", MinImageDimension)
	}
	if c.MinTextThreshold < 0 {
		return fmt.Errorf("min text threshold must be non-negative")
	}
	if c.MaxChunkChars < constants.MinChunkChars {
		return fmt.Errorf("max chunk size must be at least %d characters", constants.MinChunkChars)
	}
	return nil
}

func (v *ConfigValidator) validateLogLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("invalid log level: %s", level)
}
