package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// envBindings maps every config key to its environment variable. Binding
// each key explicitly (instead of AutomaticEnv) makes viper include the
// key during Unmarshal even when neither a default nor a config file
// mentions it, and keeps set-but-empty variables behaving as unset.
var envBindings = [][2]string{
	{"log_level", "SETU_LOG_LEVEL"},
	{"pipeline.mode", "SETU_MODE"},
	{"pipeline.input_path", "SETU_INPUT_PATH"},
	{"pipeline.output_path", "SETU_OUTPUT_PATH"},
	{"pipeline.checkpoint_path", "SETU_CHECKPOINT_PATH"},
	{"pipeline.checkpoint_interval", "SETU_CHECKPOINT_INTERVAL"},
	{"pipeline.resume", "SETU_RESUME"},
	{"pipeline.retry_failed", "SETU_RETRY_FAILED"},
	{"engine.workers", "SETU_ENGINE_WORKERS"},
	{"engine.max_retries", "SETU_ENGINE_MAX_RETRIES"},
	{"engine.calls_per_second", "SETU_ENGINE_CALLS_PER_SECOND"},
	{"engine.batch_size", "SETU_ENGINE_BATCH_SIZE"},
	{"llm.api_key", "SETU_LLM_API_KEY"},
	{"llm.model", "SETU_LLM_MODEL"},
	{"llm.temperature", "SETU_LLM_TEMPERATURE"},
	{"llm.max_output_tokens", "SETU_LLM_MAX_OUTPUT_TOKENS"},
	{"quality.min_length", "SETU_QUALITY_MIN_LENGTH"},
	{"quality.chunk_sentences", "SETU_QUALITY_CHUNK_SENTENCES"},
	{"server.enabled", "SETU_SERVER_ENABLED"},
	{"server.port", "SETU_SERVER_PORT"},
}

// setDefaults registers the default value for every key that has one.
// Keys without a default (input path, API key) are required by validation
// or by the selected mode.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("pipeline.mode", ModeAlign)
	v.SetDefault("pipeline.output_path", "out/chunks.jsonl")
	v.SetDefault("pipeline.checkpoint_path", "out/checkpoint.json")
	v.SetDefault("pipeline.checkpoint_interval", 10)
	v.SetDefault("pipeline.resume", true)
	v.SetDefault("pipeline.retry_failed", false)
	v.SetDefault("engine.workers", 3)
	v.SetDefault("engine.max_retries", 3)
	v.SetDefault("engine.calls_per_second", 5.0)
	v.SetDefault("engine.batch_size", 50)
	v.SetDefault("llm.model", "gemini-2.0-flash")
	v.SetDefault("llm.temperature", 0.1)
	v.SetDefault("llm.max_output_tokens", 8192)
	v.SetDefault("quality.min_length", 20)
	v.SetDefault("quality.chunk_sentences", 3)
	v.SetDefault("server.enabled", false)
	v.SetDefault("server.port", 8080)
}

// Override forces one configuration key to a fixed value, taking
// precedence over environment variables and defaults. Key uses the
// dotted form, e.g. "pipeline.mode". The CLI turns explicitly set
// flags into overrides.
type Override struct {
	Key   string
	Value any
}

// Load configuration from environment variables, with a .env file in the
// working directory filling in variables that are not already set and
// overrides taking precedence over both.
// Returns a populated Config struct or an error if loading/validation fails.
func Load(overrides ...Override) (*Config, error) {
	// Pull a .env file into the process environment first so the explicit
	// bindings below see its values. Real environment variables win.
	if err := gotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	for _, binding := range envBindings {
		if err := v.BindEnv(binding[0], binding[1]); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", binding[1], err)
		}
	}

	for _, override := range overrides {
		v.Set(override.Key, override.Value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// The API key requirement depends on the mode, which struct tags
	// cannot express: the heuristic mode never calls the LLM.
	if cfg.Pipeline.Mode != ModeHeuristic && cfg.LLM.APIKey == "" {
		return nil, fmt.Errorf(
			"config validation failed: SETU_LLM_API_KEY is required for mode %q",
			cfg.Pipeline.Mode)
	}

	return &cfg, nil
}
