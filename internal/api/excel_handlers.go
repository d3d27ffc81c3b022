package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/vytor/wordcards/internal/errors"
	"github.com/vytor/wordcards/internal/excel"
	"github.com/vytor/wordcards/internal/logger"
)

const defaultMaxUploadBytes = 8 << 20

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	view := controllerFromContext(r.Context()).View()

	var buf bytes.Buffer
	if err := excel.Export(&buf, view.FilteredCards); err != nil {
		handleError(w, r, apperrors.NewInternalError(err))
		return
	}

	name := fmt.Sprintf("wordcards-%s.xlsx", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Warn("failed to write export: %v", err)
		return
	}
	log.Info("exported %d cards", len(view.FilteredCards))
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	limit := s.MaxUploadBytes
	if limit <= 0 {
		limit = defaultMaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		handleError(w, r, apperrors.NewBadRequestError("upload a spreadsheet of at most "+byteSize(limit)))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		handleError(w, r, apperrors.NewBadRequestError("choose a spreadsheet to import"))
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".xlsx") {
		handleError(w, r, apperrors.NewValidationError("Only .xlsx spreadsheets can be imported"))
		return
	}

	ctrl := controllerFromContext(r.Context())
	drafts, warnings, err := excel.Parse(file, ctrl.Snapshot().Categories)
	if err != nil {
		log.Warn("failed to parse %s: %v", header.Filename, err)
		handleError(w, r, apperrors.NewValidationError("The file is not a readable spreadsheet"))
		return
	}
	for _, warning := range warnings {
		log.Debug("import %s: %s", header.Filename, warning)
	}
	log.Info("parsed %d rows from %s (%d warnings)", len(drafts), header.Filename, len(warnings))

	ctrl.ImportCards(r.Context(), drafts)
	redirect(w, r, "/dictionary")
}

func byteSize(n int64) string {
	return fmt.Sprintf("%d MB", n>>20)
}
