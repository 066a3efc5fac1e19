package server

import (
	"io"
	"net/http"

	"github.com/inkmatch/inkmatch-server/internal/constants"
	"go.uber.org/zap"
)

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(constants.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "malformed multipart request")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, constants.MaxUploadBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read file field")
		return
	}
	if len(content) > constants.MaxUploadBytes {
		writeError(w, http.StatusBadRequest, "file exceeds size limit")
		return
	}

	url, err := s.storage.Upload(r.Context(), header.Filename, content, contentTypeOf(header))
	if err != nil {
		s.logger.Error("Upload to storage failed", zap.Error(err), zap.String("filename", header.Filename))
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}
