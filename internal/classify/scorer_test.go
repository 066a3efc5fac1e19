package classify

import (
	"testing"

	"github.com/inkmatch/inkmatch-server/internal/domain"
	"go.uber.org/zap"
)

func testEngine() *Engine {
	return NewEngine(zap.NewNop())
}

func traditionalAnnotations() *domain.VisionAnnotations {
	return &domain.VisionAnnotations{
		Labels: []domain.LabelObservation{
			{Description: "traditional tattoo", Score: 0.95},
			{Description: "bold outline", Score: 0.9},
			{Description: "anchor", Score: 0.85},
		},
		Colors: []domain.ColorSwatch{
			{Red: 255, Green: 30, Blue: 30, Score: 0.4},
			{Red: 30, Green: 30, Blue: 230, Score: 0.3},
			{Red: 240, Green: 230, Blue: 40, Score: 0.3},
		},
	}
}

func TestScoreEmptyAnnotationsYieldsEmptyMap(t *testing.T) {
	engine := testEngine()
	ann := &domain.VisionAnnotations{}
	features := ExtractFeatures(ann)

	scores := engine.Score(ann, features, nil)

	if len(scores) != 0 {
		t.Fatalf("expected empty score map without keyword evidence, got %v", scores)
	}
}

func TestScoreTraditionalImage(t *testing.T) {
	engine := testEngine()
	ann := traditionalAnnotations()
	features := ExtractFeatures(ann)

	scores := engine.Score(ann, features, nil)

	best := domain.StyleKey("")
	bestScore := 0.0
	for key, score := range scores {
		if score <= 0 {
			t.Errorf("style %s has non-positive score %f in map", key, score)
		}
		if score > bestScore {
			best, bestScore = key, score
		}
	}

	if best != domain.StyleTraditional {
		t.Fatalf("best style = %s (%.2f), want traditional; full map %v", best, bestScore, scores)
	}
	if _, ok := scores[domain.StyleRealism]; ok {
		t.Error("realism has no keyword evidence and must not appear")
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	engine := testEngine()
	ann := traditionalAnnotations()
	features := ExtractFeatures(ann)

	first := engine.Score(ann, features, nil)
	second := engine.Score(ann, features, nil)

	if len(first) != len(second) {
		t.Fatalf("score maps differ in size: %d vs %d", len(first), len(second))
	}
	for key, score := range first {
		if second[key] != score {
			t.Errorf("style %s: %f vs %f across identical calls", key, score, second[key])
		}
	}
}

func TestScoreRespectsRequestedStyles(t *testing.T) {
	engine := testEngine()
	ann := traditionalAnnotations()
	features := ExtractFeatures(ann)

	scores := engine.Score(ann, features, []domain.StyleKey{domain.StyleFlowers})

	if len(scores) != 0 {
		t.Fatalf("flowers has no evidence here, expected empty map, got %v", scores)
	}

	scores = engine.Score(ann, features, []domain.StyleKey{domain.StyleTraditional, "not_a_style"})
	if _, ok := scores[domain.StyleTraditional]; !ok {
		t.Error("traditional was requested and has evidence")
	}
	if len(scores) != 1 {
		t.Errorf("unknown requested keys must be ignored, got %v", scores)
	}
}

func TestScoreFlowerImage(t *testing.T) {
	engine := testEngine()
	ann := &domain.VisionAnnotations{
		Labels: []domain.LabelObservation{
			{Description: "flower", Score: 1.0},
		},
		Objects: []domain.DetectedObject{
			{Name: "Flower"},
		},
	}
	features := ExtractFeatures(ann)

	scores := engine.Score(ann, features, nil)

	flowerScore, ok := scores[domain.StyleFlowers]
	if !ok {
		t.Fatalf("flowers missing from %v", scores)
	}
	// keyword 1.0*1.5, object adjustment 1.0, weight 0.95
	want := (1.0*1.5 + 1.0) * 0.95
	if diff := flowerScore - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("flowers score = %f, want %f", flowerScore, want)
	}
	if _, ok := scores[domain.StyleRealism]; ok {
		t.Error("realism has no evidence and must not appear")
	}
}

func TestNegativeKeywordsReduceScore(t *testing.T) {
	engine := testEngine()

	clean := &domain.VisionAnnotations{
		Labels: []domain.LabelObservation{{Description: "traditional", Score: 0.9}},
	}
	tainted := &domain.VisionAnnotations{
		Labels: []domain.LabelObservation{
			{Description: "traditional", Score: 0.9},
			{Description: "watercolor", Score: 0.8},
		},
	}

	cleanScore := engine.Score(clean, ExtractFeatures(clean), nil)[domain.StyleTraditional]
	taintedScore := engine.Score(tainted, ExtractFeatures(tainted), nil)[domain.StyleTraditional]

	if taintedScore >= cleanScore {
		t.Errorf("negative keyword should reduce score: %f >= %f", taintedScore, cleanScore)
	}
}

func TestCombinedTextIncludesObjects(t *testing.T) {
	ann := &domain.VisionAnnotations{
		Labels:  []domain.LabelObservation{{Description: "Tattoo Art"}},
		Objects: []domain.DetectedObject{{Name: "Anchor"}},
	}

	text := CombinedText(ann)
	if text != "tattoo art anchor" {
		t.Errorf("combined text = %q", text)
	}

	if CombinedText(nil) != "" {
		t.Error("nil annotations should produce empty text")
	}
}
