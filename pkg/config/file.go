package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/nodewee/doc-translate/pkg/constants"
	"github.com/nodewee/doc-translate/pkg/utils"
)

const ConfigFileName = "config.yaml"

// ConfigFile represents the YAML configuration file structure
type ConfigFile struct {
	LibreTranslateURL    string `yaml:"libretranslate_url"`
	LibreTranslateAPIKey string `yaml:"libretranslate_api_key"`
	SourceLang           string `yaml:"source_lang"`
	TargetLang           string `yaml:"target_lang"`
	TessdataPrefix       string `yaml:"tessdata_prefix"`
	OCRLanguage          string `yaml:"ocr_language"`
	GhostscriptPath      string `yaml:"ghostscript_path"`
	TesseractPath        string `yaml:"tesseract_path"`
}

// configKey binds a persisted key to its field
type configKey struct {
	get func(*ConfigFile) string
	set func(*ConfigFile, string)
}

var configKeys = map[string]configKey{
	"libretranslate_url": {
		get: func(f *ConfigFile) string { return f.LibreTranslateURL },
		set: func(f *ConfigFile, v string) { f.LibreTranslateURL = v },
	},
	"libretranslate_api_key": {
		get: func(f *ConfigFile) string { return f.LibreTranslateAPIKey },
		set: func(f *ConfigFile, v string) { f.LibreTranslateAPIKey = v },
	},
	"source_lang": {
		get: func(f *ConfigFile) string { return f.SourceLang },
		set: func(f *ConfigFile, v string) { f.SourceLang = v },
	},
	"target_lang": {
		get: func(f *ConfigFile) string { return f.TargetLang },
		set: func(f *ConfigFile, v string) { f.TargetLang = v },
	},
	"tessdata_prefix": {
		get: func(f *ConfigFile) string { return f.TessdataPrefix },
		set: func(f *ConfigFile, v string) { f.TessdataPrefix = v },
	},
	"ocr_language": {
		get: func(f *ConfigFile) string { return f.OCRLanguage },
		set: func(f *ConfigFile, v string) { f.OCRLanguage = v },
	},
	"ghostscript_path": {
		get: func(f *ConfigFile) string { return f.GhostscriptPath },
		set: func(f *ConfigFile, v string) { f.GhostscriptPath = v },
	},
	"tesseract_path": {
		get: func(f *ConfigFile) string { return f.TesseractPath },
		set: func(f *ConfigFile, v string) { f.TesseractPath = v },
	},
}

// GetConfigDir returns the user configuration directory (~/.doc-translate)
func GetConfigDir() (string, error) {
	homeDir, err := homedir.Dir()
	if err != nil {
		return "", utils.WrapError(err, utils.ErrorTypeIO, "failed to get user home directory")
	}
	return filepath.Join(homeDir, constants.AppDirName), nil
}

// GetConfigFilePath returns the configuration file path, honoring the
// DOC_TRANSLATE_CONFIG override
func GetConfigFilePath() (string, error) {
	if override := os.Getenv(constants.ConfigFileEnv); override != "" {
		return utils.ExpandPath(override)
	}

	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ConfigFileName), nil
}

// LoadFile loads configuration from path, creating a default file when it
// does not exist. An empty path selects the default location.
func LoadFile(path string) (*Config, error) {
	configPath, err := resolvePath(path)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfigFile(configPath)
	}

	configFile, err := readConfigFile(configPath)
	if err != nil {
		return nil, err
	}
	return configFileToConfig(configFile), nil
}

func resolvePath(path string) (string, error) {
	if path != "" {
		return utils.ExpandPath(path)
	}
	configPath, err := GetConfigFilePath()
	if err != nil {
		return "", utils.WrapError(err, utils.ErrorTypeIO, "failed to get config file path")
	}
	return configPath, nil
}

// createDefaultConfigFile writes defaults plus auto-detected tool paths
func createDefaultConfigFile(configPath string) (*Config, error) {
	if err := utils.EnsureDir(filepath.Dir(configPath)); err != nil {
		return nil, utils.WrapError(err, utils.ErrorTypeIO, "failed to create config directory")
	}

	configFile := configToConfigFile(NewConfig())
	detectToolPaths(configFile)

	if err := saveConfigFile(configPath, configFile); err != nil {
		return nil, utils.WrapError(err, utils.ErrorTypeIO, "failed to save default config file")
	}

	fmt.Fprintf(os.Stderr, "✅ Created default configuration file: %s\n", configPath)
	return configFileToConfig(configFile), nil
}

func readConfigFile(configPath string) (*ConfigFile, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, utils.WrapError(err, utils.ErrorTypeIO, "failed to read config file")
	}

	var configFile ConfigFile
	if err := yaml.Unmarshal(data, &configFile); err != nil {
		return nil, utils.WrapError(err, utils.ErrorTypeConversion, "failed to parse config file")
	}
	return &configFile, nil
}

// SaveConfig saves the persisted part of config to path
func SaveConfig(path string, config *Config) error {
	configPath, err := resolvePath(path)
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(configPath)); err != nil {
		return utils.WrapError(err, utils.ErrorTypeIO, "failed to create config directory")
	}
	return saveConfigFile(configPath, configToConfigFile(config))
}

func saveConfigFile(configPath string, configFile *ConfigFile) error {
	data, err := yaml.Marshal(configFile)
	if err != nil {
		return utils.WrapError(err, utils.ErrorTypeConversion, "failed to marshal config")
	}
	if err := utils.WriteFileAtomic(configPath, data); err != nil {
		return utils.WrapError(err, utils.ErrorTypeIO, "failed to write config file")
	}
	return nil
}

// detectToolPaths fills empty tool paths with the first installed candidate
func detectToolPaths(configFile *ConfigFile) {
	platformConfig := constants.GetPlatformConfig()

	if configFile.GhostscriptPath == "" {
		if path, err := utils.FindExecutable("", platformConfig.GhostscriptPaths); err == nil {
			configFile.GhostscriptPath = path
		}
	}
	if configFile.TesseractPath == "" {
		if path, err := utils.FindExecutable("", platformConfig.TesseractPaths); err == nil {
			configFile.TesseractPath = path
		}
	}
	if configFile.TessdataPrefix == "" {
		configFile.TessdataPrefix = utils.FirstExistingDir(platformConfig.TessdataDirs)
	}
}

// configFileToConfig converts ConfigFile to Config, keeping defaults for
// anything the file leaves empty
func configFileToConfig(cf *ConfigFile) *Config {
	config := NewConfig()
	if cf.LibreTranslateURL != "" {
		config.LibreTranslateURL = cf.LibreTranslateURL
	}
	if cf.SourceLang != "" {
		config.SourceLang = cf.SourceLang
	}
	if cf.TargetLang != "" {
		config.TargetLang = cf.TargetLang
	}
	config.LibreTranslateAPIKey = cf.LibreTranslateAPIKey
	config.TessdataPrefix = cf.TessdataPrefix
	config.OCRLanguage = cf.OCRLanguage
	config.GhostscriptPath = cf.GhostscriptPath
	config.TesseractPath = cf.TesseractPath
	return config
}

func configToConfigFile(c *Config) *ConfigFile {
	return &ConfigFile{
		LibreTranslateURL:    c.LibreTranslateURL,
		LibreTranslateAPIKey: c.LibreTranslateAPIKey,
		SourceLang:           c.SourceLang,
		TargetLang:           c.TargetLang,
		TessdataPrefix:       c.TessdataPrefix,
		OCRLanguage:          c.OCRLanguage,
		GhostscriptPath:      c.GhostscriptPath,
		TesseractPath:        c.TesseractPath,
	}
}

// GetConfigValue reads one persisted key from the file at path
func GetConfigValue(path, key string) (string, error) {
	entry, ok := configKeys[key]
	if !ok {
		return "", utils.NewValidationError(fmt.Sprintf("unknown config key: %s", key), nil)
	}

	config, err := LoadFile(path)
	if err != nil {
		return "", err
	}
	return entry.get(configToConfigFile(config)), nil
}

// SetConfigValue updates one persisted key in the file at path
func SetConfigValue(path, key, value string) error {
	entry, ok := configKeys[key]
	if !ok {
		return utils.NewValidationError(fmt.Sprintf("unknown config key: %s", key), nil)
	}

	config, err := LoadFile(path)
	if err != nil {
		return err
	}

	configFile := configToConfigFile(config)
	entry.set(configFile, value)
	updated := configFileToConfig(configFile)
	if err := updated.Validate(); err != nil {
		return err
	}

	return SaveConfig(path, updated)
}

// ListConfigKeys returns all persisted configuration keys in sorted order
func ListConfigKeys() []string {
	keys := make([]string, 0, len(configKeys))
	for key := range configKeys {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
