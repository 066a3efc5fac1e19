package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inkmatch/inkmatch-server/pkg/errors"
	"go.uber.org/zap"
)

// Client uploads image assets to the external object store and hands back
// public URLs.
type Client struct {
	baseURL    string
	token      string
	publicBase string
	httpClient *http.Client
	logger     *zap.Logger
}

type uploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

func NewClient(baseURL, token, publicBase string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		publicBase: strings.TrimRight(publicBase, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Upload stores the content under a collision-free object key and returns
// the public URL. The original filename only contributes its extension.
func (c *Client) Upload(ctx context.Context, filename string, content []byte, contentType string) (string, error) {
	key := objectKey(filename)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="file"; filename="%s"`, key)}
	header["Content-Type"] = []string{contentType}
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", errors.NewServiceError("failed to build upload body", "storage", "upload", err)
	}
	if _, err := part.Write(content); err != nil {
		return "", errors.NewServiceError("failed to write upload body", "storage", "upload", err)
	}
	if err := writer.Close(); err != nil {
		return "", errors.NewServiceError("failed to finalize upload body", "storage", "upload", err)
	}

	url := c.baseURL + "/objects/" + key
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, &body)
	if err != nil {
		return "", errors.NewServiceError("failed to create upload request", "storage", "upload", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.NewDownstreamError("storage upload failed", "storage", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		c.logger.Error("Storage rejected upload",
			zap.Int("status", resp.StatusCode),
			zap.String("key", key),
			zap.String("body", string(bodyBytes)),
		)
		return "", errors.NewDownstreamError(
			fmt.Sprintf("storage returned %s", resp.Status),
			"storage", resp.StatusCode, nil,
		)
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err == nil && parsed.URL != "" {
		return parsed.URL, nil
	}

	return c.publicBase + "/" + key, nil
}

func objectKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".bin"
	}
	stamp := time.Now().UTC().Format("20060102T150405")
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("%s-%s%s", stamp, suffix, ext)
}
