package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/inkmatch/inkmatch-server/internal/constants"
	"github.com/inkmatch/inkmatch-server/internal/domain"
	"github.com/inkmatch/inkmatch-server/internal/prompt"
	"github.com/inkmatch/inkmatch-server/internal/util"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// VisionService fronts the external vision-language model: Gemini primary,
// OpenAI fallback, with a circuit breaker around both. All failures at this
// boundary are recoverable by callers via the documented defaults.
type VisionService struct {
	geminiClient   *genai.Client
	openaiClient   *openai.Client
	prompts        *prompt.Builder
	logger         *zap.Logger
	geminiModel    string
	openaiModel    string
	enableFallback bool
	circuitBreaker *util.CircuitBreaker
}

type VisionConfig struct {
	GeminiAPIKey   string
	OpenAIAPIKey   string
	GeminiModel    string
	OpenAIModel    string
	EnableFallback bool
}

func NewVisionService(ctx context.Context, cfg VisionConfig, logger *zap.Logger) (*VisionService, error) {
	geminiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	geminiModel := cfg.GeminiModel
	if geminiModel == "" {
		geminiModel = "gemini-2.5-flash"
	}

	openaiModel := cfg.OpenAIModel
	if openaiModel == "" {
		openaiModel = "gpt-4o"
	}

	vs := &VisionService{
		geminiClient:   geminiClient,
		prompts:        prompt.NewBuilder(),
		logger:         logger,
		geminiModel:    geminiModel,
		openaiModel:    openaiModel,
		enableFallback: cfg.EnableFallback && cfg.OpenAIAPIKey != "",
	}

	if cfg.OpenAIAPIKey != "" {
		client := openai.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey))
		vs.openaiClient = &client
		logger.Info("OpenAI vision fallback enabled", zap.String("model", openaiModel))
	} else {
		logger.Info("OpenAI vision fallback disabled (no API key)")
	}

	vs.circuitBreaker = util.NewCircuitBreaker(
		constants.CircuitBreakerConfig.FailureThreshold,
		constants.CircuitBreakerConfig.ResetTimeout,
		constants.CircuitBreakerConfig.HealthCheckInterval,
		vs.healthCheckPing,
		logger,
	)

	return vs, nil
}

// Describe sends the image plus a free-text prompt to the model and returns
// the raw answer. This is the opaque classify(imageBytes) boundary.
func (vs *VisionService) Describe(ctx context.Context, image []byte, mimeType, promptText string) (string, error) {
	if !vs.circuitBreaker.CanExecute() {
		status := vs.circuitBreaker.GetStatus()
		vs.logger.Error("Vision model unavailable (circuit open)",
			zap.String("state", status.State.String()),
			zap.Int("failure_count", status.FailureCount),
		)
		return "", fmt.Errorf("vision model circuit open")
	}

	text, geminiErr := vs.describeWithGemini(ctx, image, mimeType, promptText)
	if geminiErr == nil {
		vs.circuitBreaker.RecordSuccess()
		return text, nil
	}

	if vs.enableFallback && vs.openaiClient != nil {
		text, openaiErr := vs.describeWithOpenAI(ctx, image, mimeType, promptText)
		if openaiErr == nil {
			vs.circuitBreaker.RecordSuccess()
			return text, nil
		}
		vs.recordBoundaryFailure(geminiErr, openaiErr)
		return "", fmt.Errorf("vision model request failed: %w", openaiErr)
	}

	vs.recordBoundaryFailure(geminiErr, nil)
	return "", geminiErr
}

// AnnotateImage asks the model for structured vision signals (labels,
// objects, colors, faces, text) in JSON mode and decodes them into the
// pipeline's input contract.
func (vs *VisionService) AnnotateImage(ctx context.Context, image []byte, mimeType string) (*domain.VisionAnnotations, error) {
	promptText, err := vs.prompts.Render(prompt.TemplateVisionAnnotations, struct {
		MaxLabels int
		MaxColors int
	}{
		MaxLabels: constants.MaxAnnotationLabels,
		MaxColors: constants.MaxAnnotationColors,
	})
	if err != nil {
		return nil, fmt.Errorf("render annotation prompt: %w", err)
	}

	answer, err := vs.Describe(ctx, image, mimeType, promptText)
	if err != nil {
		return nil, err
	}

	cleaned := stripMarkdownFences(answer)

	var annotations domain.VisionAnnotations
	if err := json.Unmarshal([]byte(cleaned), &annotations); err != nil {
		vs.logger.Error("Failed to unmarshal vision annotations",
			zap.Error(err),
			zap.String("response_preview", util.TruncateString(cleaned, 200)),
		)
		return nil, fmt.Errorf("invalid annotation JSON: %w", err)
	}

	clampAnnotations(&annotations)

	vs.logger.Debug("Vision annotations received",
		zap.Int("labels", len(annotations.Labels)),
		zap.Int("objects", len(annotations.Objects)),
		zap.Int("colors", len(annotations.Colors)),
		zap.Int("faces", annotations.FaceCount),
	)

	return &annotations, nil
}

// clampAnnotations bounds model output into the contract ranges; the model
// occasionally returns channel values outside 0-255 or scores outside [0,1].
func clampAnnotations(ann *domain.VisionAnnotations) {
	clamp01 := func(v float64) float64 {
		return util.MinF(1, util.MaxF(0, v))
	}
	clampChannel := func(v int) int {
		return util.Min(255, util.Max(0, v))
	}

	for i := range ann.Labels {
		ann.Labels[i].Score = clamp01(ann.Labels[i].Score)
	}
	for i := range ann.Colors {
		ann.Colors[i].Red = clampChannel(ann.Colors[i].Red)
		ann.Colors[i].Green = clampChannel(ann.Colors[i].Green)
		ann.Colors[i].Blue = clampChannel(ann.Colors[i].Blue)
		ann.Colors[i].Score = clamp01(ann.Colors[i].Score)
	}
	if ann.FaceCount < 0 {
		ann.FaceCount = 0
	}
}

func (vs *VisionService) describeWithGemini(ctx context.Context, image []byte, mimeType, promptText string) (string, error) {
	vs.logger.Debug("Generating with Gemini",
		zap.String("model", vs.geminiModel),
		zap.Int("image_bytes", len(image)),
	)

	parts := []*genai.Part{{Text: promptText}}
	if len(image) > 0 {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: mimeType,
				Data:     image,
			},
		})
	}

	resp, err := vs.geminiClient.Models.GenerateContent(ctx, vs.geminiModel, []*genai.Content{
		{Parts: parts},
	}, nil)
	if err != nil {
		vs.logger.Error("Gemini generation failed", zap.Error(err))
		return "", err
	}

	text := extractTextFromGeminiResponse(resp)
	if text == "" {
		return "", fmt.Errorf("empty response from Gemini")
	}

	return text, nil
}

func (vs *VisionService) describeWithOpenAI(ctx context.Context, image []byte, mimeType, promptText string) (string, error) {
	if vs.openaiClient == nil {
		return "", fmt.Errorf("OpenAI client not initialized")
	}

	vs.logger.Info("Fallback: generating with OpenAI",
		zap.String("model", vs.openaiModel),
	)

	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(promptText),
	}
	if len(image) > 0 {
		dataURL := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(image)
		parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: dataURL,
		}))
	}

	resp, err := vs.openaiClient.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(vs.openaiModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(parts),
		},
	})
	if err != nil {
		vs.logger.Error("OpenAI generation failed", zap.Error(err))
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in OpenAI response")
	}

	return resp.Choices[0].Message.Content, nil
}

func (vs *VisionService) recordBoundaryFailure(primaryErr, fallbackErr error) {
	if !vs.isServiceFailure(primaryErr) && !vs.isServiceFailure(fallbackErr) {
		return
	}

	timeout := constants.CircuitBreakerConfig.ResetTimeout
	if vs.isRateLimitError(primaryErr) || vs.isRateLimitError(fallbackErr) {
		timeout = constants.CircuitBreakerConfig.RateLimitTimeout
	}
	vs.circuitBreaker.RecordFailure(timeout)
}

func (vs *VisionService) healthCheckPing() bool {
	vs.logger.Info("Health check: testing vision model...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := vs.describeWithGemini(ctx, nil, "", "ping")
	if err == nil {
		return true
	}

	if vs.enableFallback && vs.openaiClient != nil {
		_, err = vs.describeWithOpenAI(ctx, nil, "", "ping")
		return err == nil
	}

	return false
}

func (vs *VisionService) GetCircuitStatus() util.CircuitBreakerStatus {
	return vs.circuitBreaker.GetStatus()
}

func (vs *VisionService) ResetCircuit() {
	vs.circuitBreaker.Reset()
}

func (vs *VisionService) isServiceFailure(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()

	if strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded") {
		return true
	}

	if vs.isRateLimitError(err) {
		return true
	}

	statusRegex := regexp.MustCompile(`\b(5\d{2})\b`)
	if statusRegex.MatchString(msg) {
		return true
	}

	codeRegex := regexp.MustCompile(`"code":(\d{3})`)
	if matches := codeRegex.FindStringSubmatch(msg); len(matches) > 1 {
		if code, err := strconv.Atoi(matches[1]); err == nil {
			return code >= 500 && code < 600
		}
	}

	return false
}

func (vs *VisionService) isRateLimitError(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "Rate limit") || strings.Contains(msg, "quota")
}

// stripMarkdownFences removes the ```json fences some models wrap JSON in.
func stripMarkdownFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "```json"))
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "```"))
	}
	if strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimSpace(strings.TrimSuffix(cleaned, "```"))
	}
	return cleaned
}

func extractTextFromGeminiResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return ""
	}

	var texts []string
	for _, part := range candidate.Content.Parts {
		if part.Text != "" {
			texts = append(texts, part.Text)
		}
	}

	return strings.Join(texts, "")
}
