package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/ytget/ytmp4/internal/engine"
	"github.com/ytget/ytmp4/internal/platform"
	"github.com/ytget/ytmp4/internal/ui"
)

// Environment
const (
	EnvPrefix         = "YTMP4"
	EnvConfigFile     = "YTMP4_CONFIG"
	LocalConfigFile   = "ytmp4.yaml"
	DefaultConfigType = "yaml"
)

// Settings keys
const (
	KeyEngineName             = "engine.name"
	KeyEngineFormat           = "engine.format"
	KeyEngineContainer        = "engine.container"
	KeyEngineFilenameTemplate = "engine.filename_template"
	KeyEngineExecutable       = "engine.executable"
	KeyEngineAutoInstall      = "engine.auto_install"
	KeyEngineProgressInterval = "engine.progress_interval"
	KeyEngineHTTPTimeout      = "engine.http_timeout"
	KeyUILanguage             = "ui.language"
	KeyUIColor                = "ui.color"
	KeyLoggingLevel           = "logging.level"
	KeyLoggingFormat          = "logging.format"
	KeyExitStrict             = "exit.strict"
)

// Default values
const (
	DefaultEngine        = engine.NameYTDLP
	DefaultLanguage      = ui.LanguageEnglish
	DefaultColor         = ui.ColorAuto
	DefaultLoggingLevel  = "warn"
	DefaultLoggingFormat = "text"
)

// Valid logging values
var (
	LoggingLevels  = []string{"debug", "info", "warn", "error"}
	LoggingFormats = []string{"text", "json"}
)

// Settings represents the entire application configuration
type Settings struct {
	Engine  EngineSettings  `mapstructure:"engine"`
	UI      UISettings      `mapstructure:"ui"`
	Logging LoggingSettings `mapstructure:"logging"`
	Exit    ExitSettings    `mapstructure:"exit"`

	// ConfigFile is the file the settings were read from, empty if none
	ConfigFile string `mapstructure:"-"`
}

// EngineSettings selects and tunes the extraction engine
type EngineSettings struct {
	Name             string        `mapstructure:"name"`
	Format           string        `mapstructure:"format"`
	Container        string        `mapstructure:"container"`
	FilenameTemplate string        `mapstructure:"filename_template"`
	Executable       string        `mapstructure:"executable"`
	AutoInstall      bool          `mapstructure:"auto_install"`
	ProgressInterval time.Duration `mapstructure:"progress_interval"`
	HTTPTimeout      time.Duration `mapstructure:"http_timeout"`
}

// UISettings contains terminal output settings
type UISettings struct {
	Language string `mapstructure:"language"`
	Color    string `mapstructure:"color"`
}

// LoggingSettings contains logging settings
type LoggingSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ExitSettings controls the process exit code
type ExitSettings struct {
	Strict bool `mapstructure:"strict"`
}

// Default returns the compiled-in settings
func Default() *Settings {
	return &Settings{
		Engine: EngineSettings{
			Name:             DefaultEngine,
			Format:           engine.DefaultFormat,
			Container:        engine.DefaultContainer,
			FilenameTemplate: engine.DefaultFilenameTemplate,
			ProgressInterval: engine.DefaultProgressInterval,
		},
		UI: UISettings{
			Language: DefaultLanguage,
			Color:    DefaultColor,
		},
		Logging: LoggingSettings{
			Level:  DefaultLoggingLevel,
			Format: DefaultLoggingFormat,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyEngineName, d.Engine.Name)
	v.SetDefault(KeyEngineFormat, d.Engine.Format)
	v.SetDefault(KeyEngineContainer, d.Engine.Container)
	v.SetDefault(KeyEngineFilenameTemplate, d.Engine.FilenameTemplate)
	v.SetDefault(KeyEngineExecutable, d.Engine.Executable)
	v.SetDefault(KeyEngineAutoInstall, d.Engine.AutoInstall)
	v.SetDefault(KeyEngineProgressInterval, d.Engine.ProgressInterval)
	v.SetDefault(KeyEngineHTTPTimeout, d.Engine.HTTPTimeout)
	v.SetDefault(KeyUILanguage, d.UI.Language)
	v.SetDefault(KeyUIColor, d.UI.Color)
	v.SetDefault(KeyLoggingLevel, d.Logging.Level)
	v.SetDefault(KeyLoggingFormat, d.Logging.Format)
	v.SetDefault(KeyExitStrict, d.Exit.Strict)
}

// Load reads settings from the environment and the first config file found:
// $YTMP4_CONFIG, ./ytmp4.yaml, then the per-user config file.
// A file named by $YTMP4_CONFIG must exist; the others are optional.
func Load(fs afero.Fs) (*Settings, error) {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigType(DefaultConfigType)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	configFile, err := findConfigFile(fs)
	if err != nil {
		return nil, err
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	settings.ConfigFile = configFile

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &settings, nil
}

func findConfigFile(fs afero.Fs) (string, error) {
	if path := os.Getenv(EnvConfigFile); path != "" {
		if !platform.PathExists(fs, path) {
			return "", fmt.Errorf("config file %s (from %s) does not exist", path, EnvConfigFile)
		}
		return path, nil
	}

	if platform.PathExists(fs, LocalConfigFile) {
		return LocalConfigFile, nil
	}

	if path, err := platform.UserConfigFile(); err == nil && platform.PathExists(fs, path) {
		return path, nil
	}
	return "", nil
}

// Validate validates the configuration
func (s *Settings) Validate() error {
	var errs []error

	// Validate engine config
	if !slices.Contains(engine.Names(), s.Engine.Name) {
		errs = append(errs, fmt.Errorf("invalid %s: %q (want one of %s)", KeyEngineName, s.Engine.Name, strings.Join(engine.Names(), ", ")))
	}
	if strings.TrimSpace(s.Engine.Format) == "" {
		errs = append(errs, fmt.Errorf("%s is required", KeyEngineFormat))
	}
	if strings.TrimSpace(s.Engine.Container) == "" {
		errs = append(errs, fmt.Errorf("%s is required", KeyEngineContainer))
	}
	if !strings.Contains(s.Engine.FilenameTemplate, "%(title)s") && !strings.Contains(s.Engine.FilenameTemplate, "%(id)s") {
		errs = append(errs, fmt.Errorf("%s must reference %%(title)s or %%(id)s", KeyEngineFilenameTemplate))
	}
	if s.Engine.ProgressInterval < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative", KeyEngineProgressInterval))
	}
	if s.Engine.HTTPTimeout < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative", KeyEngineHTTPTimeout))
	}

	// Validate UI config
	languages := ui.NewLocalization().GetAvailableLanguages()
	if _, ok := languages[s.UI.Language]; !ok && s.UI.Language != ui.LanguageSystem {
		errs = append(errs, fmt.Errorf("invalid %s: %s", KeyUILanguage, s.UI.Language))
	}
	if !slices.Contains(ui.ColorModes, s.UI.Color) {
		errs = append(errs, fmt.Errorf("invalid %s: %s", KeyUIColor, s.UI.Color))
	}

	// Validate logging config
	if !slices.Contains(LoggingLevels, s.Logging.Level) {
		errs = append(errs, fmt.Errorf("invalid %s: %s", KeyLoggingLevel, s.Logging.Level))
	}
	if !slices.Contains(LoggingFormats, s.Logging.Format) {
		errs = append(errs, fmt.Errorf("invalid %s: %s", KeyLoggingFormat, s.Logging.Format))
	}

	return multierr.Combine(errs...)
}

// EngineOptions returns the engine options described by the settings
func (s *Settings) EngineOptions() engine.Options {
	return engine.Options{
		Format:           s.Engine.Format,
		Container:        s.Engine.Container,
		Executable:       s.Engine.Executable,
		ProgressInterval: s.Engine.ProgressInterval,
		HTTPTimeout:      s.Engine.HTTPTimeout,
	}
}
