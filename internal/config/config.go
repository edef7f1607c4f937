package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/goliatone/go-regform/pkg/questions"
)

// EnvPrefix namespaces environment overrides: questions.mode is read from
// REGFORM_QUESTIONS_MODE.
const EnvPrefix = "REGFORM"

// Question source modes.
const (
	QuestionsFixed  = "fixed"
	QuestionsSample = "sample"
	QuestionsNone   = "none"
	QuestionsBank   = "bank"
)

// Recorder modes.
const (
	RecorderDiscard = "discard"
	RecorderPrint   = "print"
	RecorderLog     = "log"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env       string    `mapstructure:"env"` // local, dev, production
	HTTP      HTTP      `mapstructure:"http"`
	Questions Questions `mapstructure:"questions"`
	Form      Form      `mapstructure:"form"`
	Recorder  Recorder  `mapstructure:"recorder"`
	Theme     Theme     `mapstructure:"theme"`
	Renderer  string    `mapstructure:"renderer"`
}

// HTTP configures the web server.
type HTTP struct {
	Addr          string        `mapstructure:"addr"`
	ShutdownGrace time.Duration `mapstructure:"shutdown_grace"` // time allowed for in-flight requests on shutdown
}

// Questions selects and configures the question source.
type Questions struct {
	Mode   string   `mapstructure:"mode"`
	List   []string `mapstructure:"list"`
	Pool   []string `mapstructure:"pool"`
	Sample int      `mapstructure:"sample"`
	Bank   string   `mapstructure:"bank"` // path to a JSON or YAML question bank
}

// Form toggles schema builder behaviour.
type Form struct {
	Title               string `mapstructure:"title"`
	OptionalCredentials bool   `mapstructure:"optional_credentials"`
	ConfirmPassword     bool   `mapstructure:"confirm_password"`
	UISchema            string `mapstructure:"ui_schema"` // overlay file or directory relabelling fields
	TemplatesDir        string `mapstructure:"templates_dir"`
}

// Recorder selects where validated answers go.
type Recorder struct {
	Mode     string `mapstructure:"mode"`
	Sanitize bool   `mapstructure:"sanitize"`
}

// Theme selects the page theme and overrides its tokens.
type Theme struct {
	Name    string            `mapstructure:"name"`
	Variant string            `mapstructure:"variant"`
	Tokens  map[string]string `mapstructure:"tokens"`
}

// LoadOptions point Load at explicit files. Empty values use the defaults:
// config.yaml in ./config or the working directory, and an optional .env.
type LoadOptions struct {
	ConfigFile string
	EnvFile    string
}

// Load reads configuration from an optional .env file, config files and
// environment variables, in increasing order of precedence for the latter two.
func Load(opts LoadOptions) (*Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("config: load config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.shutdown_grace", "5s")
	v.SetDefault("questions.mode", QuestionsFixed)
	v.SetDefault("questions.list", questions.DefaultQuestions)
	v.SetDefault("questions.pool", questions.DefaultPool)
	v.SetDefault("questions.sample", questions.DefaultSampleSize)
	v.SetDefault("questions.bank", "")
	v.SetDefault("form.title", "Register")
	v.SetDefault("form.optional_credentials", false)
	v.SetDefault("form.confirm_password", false)
	v.SetDefault("form.ui_schema", "")
	v.SetDefault("form.templates_dir", "")
	v.SetDefault("recorder.mode", RecorderLog)
	v.SetDefault("recorder.sanitize", false)
	v.SetDefault("theme.name", "regform")
	v.SetDefault("theme.variant", "light")
	v.SetDefault("renderer", "vanilla")
}

func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: load env file %q: %w", path, err)
	}
	return nil
}

// Validate rejects unknown modes and values the rest of the program cannot
// act on.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.HTTP.Addr) == "" {
		problems = append(problems, "http.addr is required")
	}
	if c.HTTP.ShutdownGrace < 0 {
		problems = append(problems, "http.shutdown_grace must not be negative")
	}

	switch c.Questions.Mode {
	case QuestionsFixed, QuestionsNone:
	case QuestionsSample:
		if c.Questions.Sample < 0 || c.Questions.Sample > len(c.Questions.Pool) {
			problems = append(problems, fmt.Sprintf("questions.sample must be between 0 and %d", len(c.Questions.Pool)))
		}
	case QuestionsBank:
		if strings.TrimSpace(c.Questions.Bank) == "" {
			problems = append(problems, "questions.bank is required when questions.mode is bank")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown questions.mode %q", c.Questions.Mode))
	}

	if !slices.Contains([]string{RecorderDiscard, RecorderPrint, RecorderLog}, c.Recorder.Mode) {
		problems = append(problems, fmt.Sprintf("unknown recorder.mode %q", c.Recorder.Mode))
	}
	if c.Renderer != "vanilla" {
		problems = append(problems, fmt.Sprintf("unknown renderer %q", c.Renderer))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// IsProduction reports whether the configured environment is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
