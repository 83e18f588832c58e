package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/setu/internal/align"
	"github.com/phrazzld/setu/internal/config"
	"github.com/phrazzld/setu/internal/domain"
	"github.com/phrazzld/setu/internal/redact"
	"github.com/phrazzld/setu/internal/text"
	"google.golang.org/genai"
)

// Aligner implements the align.Aligner interface using Google's Gemini API
// to align and deep-clean English/Hindi translation pairs.
type Aligner struct {
	// logger is used for structured logging
	logger *slog.Logger

	// config contains LLM-specific configuration
	config config.LLMConfig

	// client is the Gemini API client for making requests
	client *genai.Client
}

var _ align.Aligner = (*Aligner)(nil)

// NewAligner creates a new instance of Aligner with the provided dependencies.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing API key, model name, and other settings
//
// Returns:
//   - A properly initialized Aligner or an error if initialization fails
func NewAligner(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Aligner, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	// Validate configuration
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", align.ErrInvalidConfig)
	}

	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", align.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %s",
			align.ErrInvalidConfig, redact.Error(err))
	}

	return &Aligner{
		logger: logger.With("component", "gemini_aligner"),
		config: cfg,
		client: client,
	}, nil
}

// AlignChunks sends one alignment request to Gemini and parses the returned
// chunk pairs. The sentence counts included in the prompt come from the same
// splitter the heuristic pipeline uses, so the model sees the exact mismatch
// the caller detected.
func (a *Aligner) AlignChunks(ctx context.Context, english, hindi string) ([]domain.ChunkPair, error) {
	english = strings.TrimSpace(english)
	hindi = strings.TrimSpace(hindi)
	if english == "" || hindi == "" {
		return nil, ErrEmptyText
	}

	engSentences := len(text.SplitEnglish(english))
	hinSentences := len(text.SplitHindi(hindi))

	a.logger.DebugContext(ctx, "Requesting chunk alignment",
		"english_sentences", engSentences,
		"hindi_sentences", hinSentences,
		"english_length", len(english),
		"hindi_length", len(hindi))

	raw, err := a.generate(ctx, alignSystemPrompt, buildAlignPrompt(english, hindi, engSentences, hinSentences))
	if err != nil {
		return nil, err
	}

	pairs, err := parseAlignResponse(raw)
	if err != nil {
		return nil, err
	}

	a.logger.DebugContext(ctx, "Alignment response parsed", "chunks", len(pairs))
	return pairs, nil
}

// CleanPair sends one clean-and-verify request to Gemini. Empty sides in the
// reply fall back to the input text.
func (a *Aligner) CleanPair(ctx context.Context, english, hindi string) (*align.Cleaned, error) {
	english = strings.TrimSpace(english)
	hindi = strings.TrimSpace(hindi)
	if english == "" || hindi == "" {
		return nil, ErrEmptyText
	}

	raw, err := a.generate(ctx, cleanSystemPrompt, buildCleanPrompt(english, hindi))
	if err != nil {
		return nil, err
	}

	cleaned, err := parseCleanResponse(raw)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cleaned.English) == "" {
		cleaned.English = english
	}
	if strings.TrimSpace(cleaned.Hindi) == "" {
		cleaned.Hindi = hindi
	}

	a.logger.DebugContext(ctx, "Clean response parsed",
		"is_aligned", cleaned.IsAligned,
		"issues", len(cleaned.Issues))
	return cleaned, nil
}

// generate makes a single Gemini API call and returns the raw response text.
// Retry belongs to the execution engine, which drives this method through
// the align sentinel errors classifyError produces.
func (a *Aligner) generate(ctx context.Context, system, prompt string) (string, error) {
	genConfig := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(float32(a.config.Temperature)),
		MaxOutputTokens:   int32(a.config.MaxOutputTokens),
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.config.Model, genai.Text(prompt), genConfig)
	if err != nil {
		classified := a.classifyError(err)
		if !errors.Is(classified, context.Canceled) && !errors.Is(classified, context.DeadlineExceeded) {
			a.logger.ErrorContext(ctx, "Gemini API call failed", "error", classified)
		}
		return "", classified
	}

	if resp == nil {
		return "", fmt.Errorf("%w: nil response", align.ErrInvalidResponse)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", align.ErrInvalidResponse)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: response stopped by safety filters", align.ErrContentBlocked)
	}
	if resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: empty content in response", align.ErrInvalidResponse)
	}

	out := resp.Text()
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("%w: empty text in response", align.ErrInvalidResponse)
	}
	return out, nil
}

// classifyError maps provider failures onto the align sentinel errors so the
// engine can decide whether an attempt is worth repeating. Context
// cancellation passes through unwrapped; all other error text is redacted
// because the Gemini REST transport carries the API key in request URLs.
func (a *Aligner) classifyError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		msg := redact.Error(err)
		switch {
		case apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError:
			return fmt.Errorf("%w: %s", align.ErrTransientFailure, msg)
		case apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden:
			return fmt.Errorf("%w: %s", align.ErrInvalidConfig, msg)
		default:
			return fmt.Errorf("%w: %s", align.ErrAlignmentFailed, msg)
		}
	}

	// No API status means the request never completed, usually a network
	// failure. Treat as retryable.
	return fmt.Errorf("%w: %s", align.ErrTransientFailure, redact.Error(err))
}
