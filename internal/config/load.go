package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. SOFTRAS_CANVAS_WIDTH.
const EnvPrefix = "SOFTRAS"

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"model":        "model.path",
	"texture":      "model.diffuse",
	"normal-map":   "model.normal_map",
	"specular-map": "model.specular",
	"fit":          "model.fit",
	"scale":        "model.scale",
	"smooth":       "model.smooth_normals",
	"eye":          "camera.eye",
	"center":       "camera.center",
	"up":           "camera.up",
	"distance":     "camera.distance",
	"width":        "canvas.width",
	"height":       "canvas.height",
	"depth":        "canvas.depth",
	"background":   "canvas.background",
	"light":        "light.direction",
	"ambient":      "light.ambient",
	"shader":       "shading.shader",
	"palette":      "shading.palette",
	"channels":     "shading.channels",
	"cutoff-axis":  "shading.cutoff_axis",
	"cutoff-level": "shading.cutoff_level",
	"output":       "output.path",
	"frames":       "animation.frames",
	"fps":          "animation.fps",
	"turns":        "animation.turns",
	"log-level":    "logging.level",
	"log-file":     "logging.log_file",
}

// FlagKey returns the config key a flag overrides.
func FlagKey(flag string) (string, bool) {
	k, ok := flagKeys[flag]
	return k, ok
}

// Load builds a Config with priority defaults < file < environment < flags.
// An empty path searches the standard locations; a missing file there is
// not an error. flags may be nil; only flags the user set override.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	defaults, err := yaml.Marshal(Default())
	if err != nil {
		return nil, fmt.Errorf("encoding defaults: %w", err)
	}
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return nil, fmt.Errorf("reading defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{}
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		vec3Hook,
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(cfg, hook); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var vec3Type = reflect.TypeOf(Vec3{})

// vec3Hook decodes "x,y,z" strings coming from flags and the environment.
func vec3Hook(from, to reflect.Type, data any) (any, error) {
	if to != vec3Type || from.Kind() != reflect.String {
		return data, nil
	}
	return ParseVec3(data.(string))
}

// findConfigFile looks for softras.yaml in the working directory and then
// in the user config directory.
func findConfigFile() string {
	candidates := []string{
		"./softras.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "softras")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "softras")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "softras")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "softras")
	}
}
