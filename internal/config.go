package internal

import (
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/starford/notegraph/internal/apperr"
	"github.com/starford/notegraph/internal/graph"
	"github.com/starford/notegraph/internal/walker"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App    ApplicationConfig `yaml:"app"`
	Notes  NotesConfig       `yaml:"notes"`
	Output OutputConfig      `yaml:"output"`
	Auth   AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return configErr(err)
	}
	if err := c.Notes.Validate(); err != nil {
		return configErr(err)
	}
	return configErr(c.Auth.Validate())
}

func configErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%v: %w", err, apperr.ErrConfig)
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration for the serve command.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// NotesConfig describes the markdown tree and how to translate it.
type NotesConfig struct {
	Root        string `yaml:"root"`
	BaseURI     string `yaml:"base_uri"`
	Format      string `yaml:"format"`
	Layout      string `yaml:"layout"`
	DailyFolder string `yaml:"daily_folder"`
	// Repository is an "owner/name" string; the binder is named after its
	// last segment. Required for the binder layout.
	Repository string `yaml:"repository"`
}

// Validate validates the notes configuration.
func (c *NotesConfig) Validate() error {
	formats := make([]interface{}, len(graph.FormatNames))
	for i, f := range graph.FormatNames {
		formats[i] = f
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Root, validation.Required),
		validation.Field(&c.BaseURI, validation.Required, is.URL),
		validation.Field(&c.Format, validation.Required, validation.In(formats...)),
		validation.Field(&c.Layout, validation.Required, validation.In(walker.LayoutBinder, walker.LayoutTopic)),
		validation.Field(&c.DailyFolder, validation.Required),
		validation.Field(&c.Repository,
			validation.When(c.Layout == walker.LayoutBinder, validation.Required.Error("is required for the binder layout"))),
	)
}

// Base returns the identifier prefix: the base URI with "#" appended unless
// it already ends in "#" or "/".
func (c *NotesConfig) Base() string {
	if strings.HasSuffix(c.BaseURI, "#") || strings.HasSuffix(c.BaseURI, "/") {
		return c.BaseURI
	}
	return c.BaseURI + "#"
}

// BinderName returns the last "/"-separated segment of Repository.
func (c *NotesConfig) BinderName() string {
	r := strings.TrimRight(c.Repository, "/")
	if i := strings.LastIndex(r, "/"); i >= 0 {
		return r[i+1:]
	}
	return r
}

// OutputConfig selects where one-shot and watch conversions write.
type OutputConfig struct {
	// Path is the output file. Empty means stdout.
	Path string `yaml:"path"`
}

// AuthConfig holds authentication configuration for the serve command.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): the graph endpoint is public.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Notes: NotesConfig{
			Format:      "ttl",
			Layout:      walker.LayoutBinder,
			DailyFolder: walker.DefaultDailyFolder,
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
