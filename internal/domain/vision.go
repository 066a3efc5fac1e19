package domain

// LabelObservation is a detected semantic label with its confidence score.
// Collections are unordered and may contain duplicate descriptions; each
// observation is considered independently during matching.
type LabelObservation struct {
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

// Vertex is one corner of a bounding quadrilateral, normalized to [0,1].
type Vertex struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BoundingQuad is a detected object's bounding quadrilateral with
// coordinates normalized to the image dimensions.
type BoundingQuad struct {
	Vertices []Vertex `json:"vertices"`
}

// Width returns the normalized horizontal span of the quad.
func (q BoundingQuad) Width() float64 {
	return q.span(func(v Vertex) float64 { return v.X })
}

// Height returns the normalized vertical span of the quad.
func (q BoundingQuad) Height() float64 {
	return q.span(func(v Vertex) float64 { return v.Y })
}

func (q BoundingQuad) span(axis func(Vertex) float64) float64 {
	if len(q.Vertices) == 0 {
		return 0
	}
	min, max := axis(q.Vertices[0]), axis(q.Vertices[0])
	for _, v := range q.Vertices[1:] {
		c := axis(v)
		if c < min {
			min = c
		}
		if c > max {
			max = c
		}
	}
	return max - min
}

// DetectedObject is a detected physical object with its bounding quad.
type DetectedObject struct {
	Name        string       `json:"name"`
	BoundingBox BoundingQuad `json:"boundingBox"`
}

// ColorSwatch is one dominant image color with its prevalence score.
type ColorSwatch struct {
	Red   int     `json:"red"`
	Green int     `json:"green"`
	Blue  int     `json:"blue"`
	Score float64 `json:"score"`
}

// VisionAnnotations bundles the raw vision signals for one image. This is
// the input contract of the classification pipeline; where the signals come
// from (hosted vision API, local model) is the caller's concern.
type VisionAnnotations struct {
	Labels    []LabelObservation `json:"labels"`
	Objects   []DetectedObject   `json:"objects"`
	Colors    []ColorSwatch      `json:"colors"`
	FaceCount int                `json:"faceCount"`
	HasText   bool               `json:"hasText"`
}
