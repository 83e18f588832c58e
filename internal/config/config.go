package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	LogLevel string         `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Engine   EngineConfig   `mapstructure:"engine"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Quality  QualityConfig  `mapstructure:"quality"`
	Server   ServerConfig   `mapstructure:"server"`
}

// Pipeline modes. Align and clean call the LLM per entry; heuristic runs
// entirely locally.
const (
	ModeAlign     = "align"
	ModeClean     = "clean"
	ModeHeuristic = "heuristic"
)

// PipelineConfig contains the run-level settings: what to process, where
// results go, and how checkpointing behaves.
type PipelineConfig struct {
	Mode               string `mapstructure:"mode"                validate:"required,oneof=align clean heuristic"`
	InputPath          string `mapstructure:"input_path"          validate:"required"`
	OutputPath         string `mapstructure:"output_path"         validate:"required"`
	CheckpointPath     string `mapstructure:"checkpoint_path"     validate:"required"`
	CheckpointInterval int    `mapstructure:"checkpoint_interval" validate:"gte=1"`

	// Resume skips entries recorded in the checkpoint instead of starting
	// over. When false the checkpoint and output are reset first.
	Resume bool `mapstructure:"resume"`

	// RetryFailed re-submits entries whose previous run ended in failure.
	// Only meaningful together with Resume.
	RetryFailed bool `mapstructure:"retry_failed"`
}

// EngineConfig contains the parallel execution engine settings.
type EngineConfig struct {
	Workers        int     `mapstructure:"workers"          validate:"gte=1,lte=64"`
	MaxRetries     int     `mapstructure:"max_retries"      validate:"gte=1,lte=10"`
	CallsPerSecond float64 `mapstructure:"calls_per_second" validate:"gt=0"`
	BatchSize      int     `mapstructure:"batch_size"       validate:"gte=1"`
}

// LLMConfig contains all LLM integration related settings. APIKey is
// required for the align and clean modes; Load enforces this because the
// requirement depends on the selected mode.
type LLMConfig struct {
	APIKey          string  `mapstructure:"api_key"`
	Model           string  `mapstructure:"model"             validate:"required"`
	Temperature     float64 `mapstructure:"temperature"       validate:"gte=0,lte=2"`
	MaxOutputTokens int     `mapstructure:"max_output_tokens" validate:"gte=1"`
}

// QualityConfig contains the heuristic text processing settings.
type QualityConfig struct {
	MinLength      int `mapstructure:"min_length"      validate:"gte=1"`
	ChunkSentences int `mapstructure:"chunk_sentences" validate:"gte=1"`
}

// ServerConfig contains the optional status server settings.
type ServerConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port" validate:"gte=1,lte=65535"`
}
