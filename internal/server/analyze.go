package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/inkmatch/inkmatch-server/internal/classify"
	"github.com/inkmatch/inkmatch-server/internal/constants"
	"github.com/inkmatch/inkmatch-server/internal/domain"
	"github.com/inkmatch/inkmatch-server/internal/util"
	apperrors "github.com/inkmatch/inkmatch-server/pkg/errors"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

type styleAlternative struct {
	Style      string `json:"style"`
	Confidence string `json:"confidence"`
}

type analyzeResponse struct {
	Style             string             `json:"style"`
	Confidence        string             `json:"confidence"`
	AlternativeStyles []styleAlternative `json:"alternativeStyles"`
	Tags              []string           `json:"tags"`
}

type portfolioItem struct {
	Filename string          `json:"filename"`
	Result   analyzeResponse `json:"result"`
}

func toAnalyzeResponse(result *domain.Classification) analyzeResponse {
	alternatives := make([]styleAlternative, 0, len(result.AlternativeStyles))
	for _, alt := range result.AlternativeStyles {
		alternatives = append(alternatives, styleAlternative{
			Style:      alt.Style.DisplayName(),
			Confidence: fmt.Sprintf("%.2f", alt.Confidence),
		})
	}
	return analyzeResponse{
		Style:             result.StyleDisplayName,
		Confidence:        fmt.Sprintf("%.2f", result.ConfidenceScore),
		AlternativeStyles: alternatives,
		Tags:              result.Tags,
	}
}

func (s *Server) handleAnalyzeTattoo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(constants.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "malformed multipart request")
		return
	}

	image, mimeType, err := readImageField(r, "image")
	if err != nil {
		writeAppError(w, err)
		return
	}

	requested, err := parseRequestedStyles(r.FormValue("styles"))
	if err != nil {
		writeAppError(w, err)
		return
	}

	result := s.classifyImage(r.Context(), image, mimeType, requested)
	writeJSON(w, http.StatusOK, toAnalyzeResponse(result))
}

func (s *Server) handleAnalyzePortfolio(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(constants.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "malformed multipart request")
		return
	}

	if r.MultipartForm == nil || len(r.MultipartForm.File["images"]) == 0 {
		writeError(w, http.StatusBadRequest, "at least one image is required")
		return
	}

	requested, err := parseRequestedStyles(r.FormValue("styles"))
	if err != nil {
		writeAppError(w, err)
		return
	}

	headers := r.MultipartForm.File["images"]
	items := make([]portfolioItem, len(headers))

	p := pool.New().WithMaxGoroutines(s.cfg.Classifier.Concurrency)
	for i, header := range headers {
		p.Go(func() {
			image, mimeType, err := readImageHeader(header)
			if err != nil {
				s.logger.Warn("Skipping unreadable portfolio image",
					zap.String("filename", header.Filename), zap.Error(err))
				items[i] = portfolioItem{
					Filename: header.Filename,
					Result:   toAnalyzeResponse(domain.DefaultClassification()),
				}
				return
			}
			result := s.classifyImage(r.Context(), image, mimeType, requested)
			items[i] = portfolioItem{
				Filename: header.Filename,
				Result:   toAnalyzeResponse(result),
			}
		})
	}
	p.Wait()

	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// classifyImage runs the full pipeline for one image: cache lookup, vision
// annotation, strategy classification, cache fill. It never fails; every
// failure mode collapses into the documented default result.
func (s *Server) classifyImage(ctx context.Context, image []byte, mimeType string, requested []domain.StyleKey) *domain.Classification {
	digest := imageDigest(image, requested)

	if cached, ok := s.cache.GetClassification(ctx, digest); ok {
		return cached
	}

	annotateCtx, cancel := context.WithTimeout(ctx, s.cfg.Classifier.ModelTimeout)
	defer cancel()

	annotations, err := s.vision.AnnotateImage(annotateCtx, image, mimeType)
	if err != nil {
		s.logger.Warn("Vision annotation failed, returning default classification",
			zap.Error(err), zap.String("request_id", RequestID(ctx)))
		return domain.DefaultClassification()
	}

	result, err := s.strategy.Classify(ctx, classify.Input{
		Image:           image,
		MIMEType:        mimeType,
		Annotations:     annotations,
		RequestedStyles: requested,
	})
	if err != nil {
		s.logger.Error("Classification strategy failed",
			zap.Error(err), zap.String("request_id", RequestID(ctx)))
		return domain.DefaultClassification()
	}

	s.cache.SetClassification(ctx, digest, result, s.cfg.Classifier.CacheTTL)
	return result
}

// imageDigest keys the cache on content plus the style filter, so a filtered
// request never collides with an unfiltered one.
func imageDigest(image []byte, requested []domain.StyleKey) string {
	h := sha256.New()
	h.Write(image)
	for _, style := range requested {
		h.Write([]byte{0})
		h.Write([]byte(style))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func parseRequestedStyles(raw string) ([]domain.StyleKey, error) {
	if raw == "" {
		return nil, nil
	}
	var keys []string
	if err := json.Unmarshal([]byte(raw), &keys); err != nil {
		return nil, apperrors.NewValidationError("styles must be a JSON array of style keys", "styles", raw)
	}
	styles := make([]domain.StyleKey, 0, len(keys))
	for _, key := range keys {
		styles = append(styles, domain.StyleKey(util.Normalize(key)))
	}
	return styles, nil
}

func readImageField(r *http.Request, field string) ([]byte, string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, "", apperrors.NewValidationError(fmt.Sprintf("%s file field is required", field), field, nil)
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, constants.MaxUploadBytes+1))
	if err != nil {
		return nil, "", apperrors.NewValidationError(fmt.Sprintf("failed to read %s field", field), field, nil)
	}
	if len(content) > constants.MaxUploadBytes {
		return nil, "", apperrors.NewValidationError("image exceeds size limit", field, len(content))
	}

	return content, contentTypeOf(header), nil
}

func readImageHeader(header *multipart.FileHeader) ([]byte, string, error) {
	file, err := header.Open()
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, constants.MaxUploadBytes+1))
	if err != nil {
		return nil, "", err
	}
	if len(content) > constants.MaxUploadBytes {
		return nil, "", fmt.Errorf("image exceeds size limit")
	}

	return content, contentTypeOf(header), nil
}

func contentTypeOf(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "image/jpeg"
}
