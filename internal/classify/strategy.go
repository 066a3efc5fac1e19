package classify

import (
	"context"
	"strings"

	"github.com/inkmatch/inkmatch-server/internal/domain"
	"github.com/inkmatch/inkmatch-server/internal/prompt"
	"github.com/inkmatch/inkmatch-server/internal/util"
	"go.uber.org/zap"
)

const (
	exactMatchConfidence     = 0.9
	substringMatchConfidence = 0.75
	preCheckConfidence       = 0.85
	defaultConfidence        = 0.5
)

// Input is everything a strategy may consume for one image. Annotations may
// be nil on the model path; Image may be empty on the heuristic path.
type Input struct {
	Image           []byte
	MIMEType        string
	Annotations     *domain.VisionAnnotations
	RequestedStyles []domain.StyleKey
}

// Strategy classifies one tattoo image. Implementations must degrade to the
// documented default result instead of failing when a downstream boundary is
// unavailable; a returned error therefore always indicates a caller bug, not
// an outage.
type Strategy interface {
	Classify(ctx context.Context, in Input) (*domain.Classification, error)
}

// VisionModel is the opaque external model boundary: image in, free-text
// answer out.
type VisionModel interface {
	Describe(ctx context.Context, image []byte, mimeType, promptText string) (string, error)
}

// HeuristicStrategy runs the deterministic feature-scoring pipeline. It is a
// pure function of the annotations and never fails.
type HeuristicStrategy struct {
	engine *Engine
}

func NewHeuristicStrategy(engine *Engine) *HeuristicStrategy {
	return &HeuristicStrategy{engine: engine}
}

func (s *HeuristicStrategy) Classify(_ context.Context, in Input) (*domain.Classification, error) {
	features := ExtractFeatures(in.Annotations)
	scores := s.engine.Score(in.Annotations, features, in.RequestedStyles)

	result := s.engine.Select(scores, features)
	result.Tags = s.engine.DetectTags(in.Annotations, features)
	return result, nil
}

// ModelStrategy delegates the style decision to the external vision model:
// ask, parse the first line, map to the vocabulary or fall back to the
// default. Tags still come from the heuristic detector when annotations are
// available.
type ModelStrategy struct {
	model   VisionModel
	engine  *Engine
	prompts *prompt.Builder
	logger  *zap.Logger
}

func NewModelStrategy(model VisionModel, engine *Engine, prompts *prompt.Builder, logger *zap.Logger) *ModelStrategy {
	return &ModelStrategy{
		model:   model,
		engine:  engine,
		prompts: prompts,
		logger:  logger,
	}
}

func (s *ModelStrategy) Classify(ctx context.Context, in Input) (*domain.Classification, error) {
	promptText, err := s.prompts.Render(prompt.TemplateStyleClassification, struct {
		Styles []string
	}{Styles: styleDisplayNames()})
	if err != nil {
		s.logger.Error("Failed to render classification prompt", zap.Error(err))
		return s.withTags(domain.DefaultClassification(), in), nil
	}

	answer, err := s.model.Describe(ctx, in.Image, in.MIMEType, promptText)
	if err != nil {
		s.logger.Warn("Vision model unavailable, using default classification", zap.Error(err))
		return s.withTags(domain.DefaultClassification(), in), nil
	}

	style, confidence := matchStyleAnswer(answer)

	result := &domain.Classification{
		MatchedStyle:      style,
		StyleDisplayName:  style.DisplayName(),
		ConfidenceScore:   confidence,
		AlternativeStyles: []domain.StyleScore{},
	}
	return s.withTags(result, in), nil
}

func (s *ModelStrategy) withTags(result *domain.Classification, in Input) *domain.Classification {
	if in.Annotations != nil {
		features := ExtractFeatures(in.Annotations)
		result.Tags = s.engine.DetectTags(in.Annotations, features)
	} else if len(result.Tags) == 0 {
		result.Tags = domain.DefaultTags()
	}
	return result
}

// matchStyleAnswer maps the model's free-text answer to the style
// vocabulary: exact display-name match on the first line, then substring
// containment, then the default.
func matchStyleAnswer(answer string) (domain.StyleKey, float64) {
	line := util.FirstLine(answer)
	if line == "" {
		return domain.StyleRealism, defaultConfidence
	}

	if key, ok := domain.StyleKeyFromDisplayName(line); ok {
		return key, exactMatchConfidence
	}

	lower := strings.ToLower(line)
	for _, key := range domain.AllStyles {
		if strings.Contains(lower, strings.ToLower(key.DisplayName())) {
			return key, substringMatchConfidence
		}
	}

	return domain.StyleRealism, defaultConfidence
}

func styleDisplayNames() []string {
	names := make([]string, 0, len(domain.AllStyles))
	for _, key := range domain.AllStyles {
		names = append(names, key.DisplayName())
	}
	return names
}

// preCheckHints gives the model extra context for styles that are easy to
// confuse from a photo alone.
var preCheckHints = map[domain.StyleKey]string{
	domain.StyleTrashPolka: "red and black ink, chaotic collage-like composition",
	domain.StyleRealism:    "photorealistic, no abstraction",
}

// PreCheckStrategy decorates another strategy with a single yes/no question
// for one style. An affirmative answer short-circuits to that style at a
// higher confidence; anything else delegates.
type PreCheckStrategy struct {
	model   VisionModel
	style   domain.StyleKey
	next    Strategy
	engine  *Engine
	prompts *prompt.Builder
	logger  *zap.Logger
}

func NewPreCheckStrategy(model VisionModel, style domain.StyleKey, next Strategy, engine *Engine, prompts *prompt.Builder, logger *zap.Logger) *PreCheckStrategy {
	return &PreCheckStrategy{
		model:   model,
		style:   style,
		next:    next,
		engine:  engine,
		prompts: prompts,
		logger:  logger,
	}
}

func (s *PreCheckStrategy) Classify(ctx context.Context, in Input) (*domain.Classification, error) {
	promptText, err := s.prompts.Render(prompt.TemplateStylePreCheck, struct {
		StyleName string
		Hint      string
	}{
		StyleName: s.style.DisplayName(),
		Hint:      preCheckHints[s.style],
	})
	if err != nil {
		s.logger.Error("Failed to render pre-check prompt", zap.Error(err))
		return s.next.Classify(ctx, in)
	}

	answer, err := s.model.Describe(ctx, in.Image, in.MIMEType, promptText)
	if err != nil {
		s.logger.Warn("Pre-check unavailable, delegating", zap.Error(err))
		return s.next.Classify(ctx, in)
	}

	if strings.HasPrefix(strings.ToLower(util.FirstLine(answer)), "yes") {
		result := &domain.Classification{
			MatchedStyle:      s.style,
			StyleDisplayName:  s.style.DisplayName(),
			ConfidenceScore:   preCheckConfidence,
			AlternativeStyles: []domain.StyleScore{},
		}
		if in.Annotations != nil {
			features := ExtractFeatures(in.Annotations)
			result.Tags = s.engine.DetectTags(in.Annotations, features)
		} else {
			result.Tags = domain.DefaultTags()
		}
		return result, nil
	}

	return s.next.Classify(ctx, in)
}
