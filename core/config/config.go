package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

//go:embed default/config.yaml
var defaultConfigData []byte

const ConfigurationName = "config.yaml"

// Values for the tri-state settings.
const (
	ModeAuto   = "auto"
	ModeAlways = "always"
	ModeNever  = "never"
)

type Configuration struct {
	configFs  afero.Fs
	configDir string

	Prompt      string `json:"prompt"`
	ShowPrompt  string `json:"show_prompt" validate:"oneof=auto always never"`
	Color       string `json:"color" validate:"oneof=auto always never"`
	LineEditing bool   `json:"line_editing"`
	HistoryFile string `json:"history_file"`
	InheritEnv  bool   `json:"inherit_env"`
	EventLog    string `json:"event_log"`
	Recording   string `json:"recording"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// Enabled resolves a tri-state setting, auto follows terminal.
func Enabled(mode string, terminal bool) bool {
	switch mode {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	default:
		return terminal
	}
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		return afero.NewOsFs()
	}
	return c.configFs
}

// Resolve makes name relative to the directory the configuration was loaded
// from. Absolute names are returned as-is.
func (c *Configuration) Resolve(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.configDir, name)
}

// OpenEventLog opens the event log in an append only state.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	return c.fs().OpenFile(c.Resolve(c.EventLog), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadEventLog opens the event log for reading.
func (c *Configuration) ReadEventLog() (afero.File, error) {
	return c.fs().Open(c.Resolve(c.EventLog))
}

// CreateRecording truncates and opens the session recording.
func (c *Configuration) CreateRecording() (afero.File, error) {
	return c.fs().OpenFile(c.Resolve(c.Recording), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
}

// Default returns the built-in configuration, relative paths in it are
// resolved against the working directory.
func Default() *Configuration {
	out := defaultConfig()
	out.configFs = afero.NewOsFs()
	out.configDir = "."
	return out
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
