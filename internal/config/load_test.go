package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv sets up environment variables for testing
func setupEnv(t *testing.T, envVars map[string]string) func() {
	// Save current environment values
	originalValues := make(map[string]string)
	for name := range envVars {
		originalValues[name] = os.Getenv(name)
	}

	// Set new environment variables
	for name, value := range envVars {
		err := os.Setenv(name, value)
		require.NoError(t, err, "Failed to set environment variable %s", name)
	}

	// Return cleanup function
	return func() {
		// Restore original environment
		for name, value := range originalValues {
			if value == "" {
				os.Unsetenv(name)
			} else {
				os.Setenv(name, value)
			}
		}
	}
}

// baseEnv returns the environment variables a minimal valid align-mode
// configuration needs, clearing the optional ones so defaults apply.
func baseEnv() map[string]string {
	env := map[string]string{
		"SETU_INPUT_PATH":  "data/entries.jsonl",
		"SETU_LLM_API_KEY": "test-api-key",
	}

	// Explicitly unset the ones we want to test defaults for
	for _, name := range []string{
		"SETU_MODE", "SETU_LOG_LEVEL", "SETU_OUTPUT_PATH",
		"SETU_CHECKPOINT_PATH", "SETU_ENGINE_WORKERS", "SETU_SERVER_PORT",
		"SETU_LLM_MODEL", "SETU_RESUME", "SETU_QUALITY_MIN_LENGTH",
	} {
		env[name] = ""
	}

	return env
}

// TestLoadDefaults verifies that Load fills in the documented defaults
// when only the required variables are set.
func TestLoadDefaults(t *testing.T) {
	cleanup := setupEnv(t, baseEnv())
	defer cleanup()

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg, "Load() should return a non-nil config")
	assert.Equal(t, "info", cfg.LogLevel, "Default log level should be 'info'")
	assert.Equal(t, ModeAlign, cfg.Pipeline.Mode, "Default mode should be align")
	assert.Equal(t, "out/chunks.jsonl", cfg.Pipeline.OutputPath)
	assert.Equal(t, "out/checkpoint.json", cfg.Pipeline.CheckpointPath)
	assert.Equal(t, 10, cfg.Pipeline.CheckpointInterval)
	assert.True(t, cfg.Pipeline.Resume, "Resume should default to true")
	assert.False(t, cfg.Pipeline.RetryFailed, "RetryFailed should default to false")
	assert.Equal(t, 3, cfg.Engine.Workers)
	assert.Equal(t, 3, cfg.Engine.MaxRetries)
	assert.Equal(t, 5.0, cfg.Engine.CallsPerSecond)
	assert.Equal(t, 50, cfg.Engine.BatchSize)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Model)
	assert.Equal(t, 0.1, cfg.LLM.Temperature)
	assert.Equal(t, 8192, cfg.LLM.MaxOutputTokens)
	assert.Equal(t, 20, cfg.Quality.MinLength)
	assert.Equal(t, 3, cfg.Quality.ChunkSentences)
	assert.False(t, cfg.Server.Enabled)
	assert.Equal(t, 8080, cfg.Server.Port)
}

// TestLoadFromEnv verifies that Load correctly reads values from
// environment variables.
func TestLoadFromEnv(t *testing.T) {
	cleanup := setupEnv(t, map[string]string{
		"SETU_LOG_LEVEL":               "debug",
		"SETU_MODE":                    "clean",
		"SETU_INPUT_PATH":              "data/pairs.jsonl",
		"SETU_OUTPUT_PATH":             "out/cleaned.jsonl",
		"SETU_CHECKPOINT_PATH":         "out/clean_checkpoint.json",
		"SETU_CHECKPOINT_INTERVAL":     "25",
		"SETU_RESUME":                  "false",
		"SETU_RETRY_FAILED":            "true",
		"SETU_ENGINE_WORKERS":          "8",
		"SETU_ENGINE_MAX_RETRIES":      "5",
		"SETU_ENGINE_CALLS_PER_SECOND": "2.5",
		"SETU_ENGINE_BATCH_SIZE":       "20",
		"SETU_LLM_API_KEY":             "test-api-key",
		"SETU_LLM_MODEL":               "gemini-2.5-pro",
		"SETU_LLM_TEMPERATURE":         "0.4",
		"SETU_LLM_MAX_OUTPUT_TOKENS":   "4096",
		"SETU_SERVER_ENABLED":          "true",
		"SETU_SERVER_PORT":             "9090",
	})
	defer cleanup()

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with valid environment variables")
	require.NotNil(t, cfg, "Load() should return a non-nil config")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ModeClean, cfg.Pipeline.Mode)
	assert.Equal(t, "data/pairs.jsonl", cfg.Pipeline.InputPath)
	assert.Equal(t, "out/cleaned.jsonl", cfg.Pipeline.OutputPath)
	assert.Equal(t, "out/clean_checkpoint.json", cfg.Pipeline.CheckpointPath)
	assert.Equal(t, 25, cfg.Pipeline.CheckpointInterval)
	assert.False(t, cfg.Pipeline.Resume)
	assert.True(t, cfg.Pipeline.RetryFailed)
	assert.Equal(t, 8, cfg.Engine.Workers)
	assert.Equal(t, 5, cfg.Engine.MaxRetries)
	assert.Equal(t, 2.5, cfg.Engine.CallsPerSecond)
	assert.Equal(t, 20, cfg.Engine.BatchSize)
	assert.Equal(t, "test-api-key", cfg.LLM.APIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.LLM.Model)
	assert.Equal(t, 0.4, cfg.LLM.Temperature)
	assert.Equal(t, 4096, cfg.LLM.MaxOutputTokens)
	assert.True(t, cfg.Server.Enabled)
	assert.Equal(t, 9090, cfg.Server.Port)
}

// TestLoadHeuristicModeNeedsNoAPIKey verifies the mode-dependent API key
// requirement: the heuristic pipeline never calls the LLM.
func TestLoadHeuristicModeNeedsNoAPIKey(t *testing.T) {
	env := baseEnv()
	env["SETU_MODE"] = "heuristic"
	env["SETU_LLM_API_KEY"] = ""
	cleanup := setupEnv(t, env)
	defer cleanup()

	cfg, err := Load()

	require.NoError(t, err, "heuristic mode should load without an API key")
	assert.Equal(t, ModeHeuristic, cfg.Pipeline.Mode)
	assert.Empty(t, cfg.LLM.APIKey)
}

// TestLoadOverrides verifies that explicit overrides win over both
// environment variables and defaults, which is how CLI flags are applied.
func TestLoadOverrides(t *testing.T) {
	env := baseEnv()
	env["SETU_MODE"] = "clean"
	env["SETU_ENGINE_WORKERS"] = "4"
	cleanup := setupEnv(t, env)
	defer cleanup()

	cfg, err := Load(
		Override{Key: "pipeline.mode", Value: "heuristic"},
		Override{Key: "engine.workers", Value: 12},
		Override{Key: "pipeline.resume", Value: false},
	)

	require.NoError(t, err, "Load() should accept valid overrides")
	assert.Equal(t, ModeHeuristic, cfg.Pipeline.Mode, "override should beat the environment variable")
	assert.Equal(t, 12, cfg.Engine.Workers, "override should beat the environment variable")
	assert.False(t, cfg.Pipeline.Resume, "override should beat the default")
}

// TestLoadOverridesAreValidated verifies that overridden values still go
// through validation.
func TestLoadOverridesAreValidated(t *testing.T) {
	cleanup := setupEnv(t, baseEnv())
	defer cleanup()

	cfg, err := Load(Override{Key: "engine.workers", Value: 0})

	require.Error(t, err, "Load() should reject an invalid override")
	assert.Contains(t, err.Error(), "validation failed")
	assert.Nil(t, cfg)
}

// TestLoadValidationErrors verifies that Load rejects invalid
// configurations with a descriptive error.
func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name           string
		override       map[string]string
		errorSubstring string
	}{
		{
			name:           "missing input path",
			override:       map[string]string{"SETU_INPUT_PATH": ""},
			errorSubstring: "validation failed",
		},
		{
			name:           "missing API key in align mode",
			override:       map[string]string{"SETU_LLM_API_KEY": ""},
			errorSubstring: "SETU_LLM_API_KEY is required",
		},
		{
			name:           "invalid mode",
			override:       map[string]string{"SETU_MODE": "turbo"},
			errorSubstring: "validation failed",
		},
		{
			name:           "invalid log level",
			override:       map[string]string{"SETU_LOG_LEVEL": "loud"},
			errorSubstring: "validation failed",
		},
		{
			name:           "port out of range",
			override:       map[string]string{"SETU_SERVER_PORT": "999999"},
			errorSubstring: "validation failed",
		},
		{
			name:           "zero workers",
			override:       map[string]string{"SETU_ENGINE_WORKERS": "0"},
			errorSubstring: "validation failed",
		},
		{
			name:           "negative rate",
			override:       map[string]string{"SETU_ENGINE_CALLS_PER_SECOND": "-1"},
			errorSubstring: "validation failed",
		},
		{
			name:           "temperature above range",
			override:       map[string]string{"SETU_LLM_TEMPERATURE": "3.5"},
			errorSubstring: "validation failed",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := baseEnv()
			for name, value := range tc.override {
				env[name] = value
			}
			cleanup := setupEnv(t, env)
			defer cleanup()

			cfg, err := Load()

			require.Error(t, err, "Load() should return an error with invalid configuration")
			assert.Contains(t, err.Error(), tc.errorSubstring,
				"Error message should contain expected substring")
			assert.Nil(t, cfg, "Config should be nil when an error occurs")
		})
	}
}
