package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v2"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefaultConfig(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	cfg := defaultConfig()

	assert.Nil(t, cfg.Validate())
	assert.Equal(t, "$ ", cfg.Prompt)
	assert.Equal(t, ModeAuto, cfg.ShowPrompt)
	assert.Equal(t, ModeAuto, cfg.Color)
	assert.False(t, cfg.LineEditing)
	assert.True(t, cfg.InheritEnv)
	assert.Empty(t, cfg.EventLog)
	assert.Empty(t, cfg.Recording)
}

func TestValidate(t *testing.T) {
	cases := map[string]struct {
		mutate  func(c *Configuration)
		wantErr string
	}{
		"default": {
			mutate: func(c *Configuration) {},
		},
		"bad show_prompt": {
			mutate:  func(c *Configuration) { c.ShowPrompt = "sometimes" },
			wantErr: "show_prompt",
		},
		"bad color": {
			mutate:  func(c *Configuration) { c.Color = "" },
			wantErr: "color",
		},
		"empty prompt": {
			mutate: func(c *Configuration) { c.Prompt = "" },
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.Nil(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestEnabled(t *testing.T) {
	assert.True(t, Enabled(ModeAuto, true))
	assert.False(t, Enabled(ModeAuto, false))
	assert.True(t, Enabled(ModeAlways, false))
	assert.False(t, Enabled(ModeNever, true))
}

func TestResolve(t *testing.T) {
	cfg := &Configuration{configDir: "/etc/minish"}

	assert.Equal(t, "", cfg.Resolve(""))
	assert.Equal(t, "/var/log/minish.jsonl", cfg.Resolve("/var/log/minish.jsonl"))
	assert.Equal(t, "/etc/minish/events.jsonl", cfg.Resolve("events.jsonl"))
}
