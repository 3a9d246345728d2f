// Package config loads two distinct kinds of configuration: the ambient
// process configuration in this file (model/voice paths, ORT library
// location, locale, log level — loaded via viper/pflag) and the two
// synthesizer model config documents in voice.go and phonemizer.go (loaded
// directly from JSON and compiled into immutable lookup tables). The two
// never mix: a voice is not reconfigured by flags or environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the ambient process configuration: where to find the three
// ONNX models and the two config documents, how to reach the ORT shared
// library, and how to log. It is orthogonal to VoiceTables/PhonemizerTables.
type Config struct {
	Paths    PathsConfig   `mapstructure:"paths"`
	Runtime  RuntimeConfig `mapstructure:"runtime"`
	Locale   string        `mapstructure:"locale"`
	LogLevel string        `mapstructure:"log_level"`
}

type PathsConfig struct {
	PhonemizerModelPath  string `mapstructure:"phonemizer_model_path"`
	StressModelPath      string `mapstructure:"stress_model_path"`
	VoiceModelPath       string `mapstructure:"voice_model_path"`
	VoiceConfigPath      string `mapstructure:"voice_config_path"`
	PhonemizerConfigPath string `mapstructure:"phonemizer_config_path"`
}

type RuntimeConfig struct {
	ORTLibraryPath string `mapstructure:"ort_library_path"`
	ORTVersion     string `mapstructure:"ort_version"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			PhonemizerModelPath:  "models/phonemizer.onnx",
			StressModelPath:      "models/stress.onnx",
			VoiceModelPath:       "models/voice.onnx",
			VoiceConfigPath:      "models/voice.json",
			PhonemizerConfigPath: "models/phonemizer.json",
		},
		Runtime: RuntimeConfig{
			ORTLibraryPath: "",
			ORTVersion:     "",
		},
		Locale:   "",
		LogLevel: "info",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("phonemizer-model-path", defaults.Paths.PhonemizerModelPath, "Path to the G2P phonemizer ONNX model")
	fs.String("stress-model-path", defaults.Paths.StressModelPath, "Path to the stress-prediction ONNX model")
	fs.String("voice-model-path", defaults.Paths.VoiceModelPath, "Path to the acoustic (voice) ONNX model")
	fs.String("voice-config-path", defaults.Paths.VoiceConfigPath, "Path to the voice config JSON document")
	fs.String("phonemizer-config-path", defaults.Paths.PhonemizerConfigPath, "Path to the phonemizer config JSON document")
	fs.String("runtime-ort-library-path", defaults.Runtime.ORTLibraryPath, "Path to ONNX Runtime shared library")
	fs.String("ort-lib", defaults.Runtime.ORTLibraryPath, "Path to ONNX Runtime shared library (alias for --runtime-ort-library-path)")
	fs.String("runtime-ort-version", defaults.Runtime.ORTVersion, "Expected ONNX Runtime version")
	fs.String("locale", defaults.Locale, "BCP 47 locale tag for text normalization (empty = root locale)")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := v.BindPFlags(opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}
	registerAliases(v)

	v.SetEnvPrefix("VOXCORE")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	if err := v.BindEnv("runtime.ort_library_path", "VOXCORE_ORT_LIB", "ORT_LIBRARY_PATH"); err != nil {
		return Config{}, fmt.Errorf("bind ort env vars: %w", err)
	}
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("voxcore")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("paths.phonemizer_model_path", c.Paths.PhonemizerModelPath)
	v.SetDefault("paths.stress_model_path", c.Paths.StressModelPath)
	v.SetDefault("paths.voice_model_path", c.Paths.VoiceModelPath)
	v.SetDefault("paths.voice_config_path", c.Paths.VoiceConfigPath)
	v.SetDefault("paths.phonemizer_config_path", c.Paths.PhonemizerConfigPath)
	v.SetDefault("runtime.ort_library_path", c.Runtime.ORTLibraryPath)
	v.SetDefault("runtime.ort_version", c.Runtime.ORTVersion)
	v.SetDefault("locale", c.Locale)
	v.SetDefault("log_level", c.LogLevel)
}

func registerAliases(v *viper.Viper) {
	v.RegisterAlias("paths.phonemizer_model_path", "phonemizer-model-path")
	v.RegisterAlias("paths.stress_model_path", "stress-model-path")
	v.RegisterAlias("paths.voice_model_path", "voice-model-path")
	v.RegisterAlias("paths.voice_config_path", "voice-config-path")
	v.RegisterAlias("paths.phonemizer_config_path", "phonemizer-config-path")
	v.RegisterAlias("runtime.ort_library_path", "runtime-ort-library-path")
	v.RegisterAlias("runtime.ort_library_path", "ort-lib")
	v.RegisterAlias("runtime.ort_version", "runtime-ort-version")
	v.RegisterAlias("locale", "locale")
	v.RegisterAlias("log_level", "log-level")
}
