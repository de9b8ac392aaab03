package upload

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"ccf-analysis/internal/service/ingest"
)

// maxUploadBytes caps the multipart memory buffer; larger parts spill to disk.
const maxUploadBytes = 64 << 20

type Importer interface {
	Validate(file ingest.File) ingest.ValidationResult
	ImportFiles(ctx context.Context, files []ingest.File) []ingest.FileResult
	ClearAll(ctx context.Context) error
}

func ImportData(log *slog.Logger, importer Importer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.import.ImportData"

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			log.Error("invalid multipart form", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid multipart form", http.StatusBadRequest)
			return
		}

		action := r.FormValue("action")
		if action == "" {
			action = "import"
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
		defer cancel()

		switch action {
		case "clear":
			if err := importer.ClearAll(ctx); err != nil {
				log.Error("clear failed", slog.String("op", op), slog.String("error", err.Error()))
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			render.JSON(w, r, map[string]interface{}{
				"success": true,
				"message": "All data cleared",
			})
			return

		case "validate", "import":
			files, err := readFiles(r)
			if err != nil {
				log.Error("failed to read upload", slog.String("op", op), slog.String("error", err.Error()))
				http.Error(w, "Bad request: unreadable file", http.StatusBadRequest)
				return
			}
			if len(files) == 0 {
				log.Warn("no files in upload", slog.String("op", op))
				http.Error(w, "No files provided", http.StatusBadRequest)
				return
			}

			if action == "validate" {
				results := make([]ingest.ValidationResult, 0, len(files))
				for _, f := range files {
					results = append(results, importer.Validate(f))
				}
				render.JSON(w, r, map[string]interface{}{
					"success": true,
					"results": results,
				})
				return
			}

			log.Info("starting import",
				slog.Int("files", len(files)),
				slog.String("first", files[0].Name),
			)

			results := importer.ImportFiles(ctx, files)

			var total int64
			allOK := true
			for _, res := range results {
				total += res.RecordsImported
				if !res.Success {
					allOK = false
				}
			}

			render.JSON(w, r, map[string]interface{}{
				"success":      allOK,
				"totalRecords": total,
				"results":      results,
			})
			return

		default:
			log.Warn("unknown action", slog.String("op", op), slog.String("action", action))
			http.Error(w, "Unknown action: "+action, http.StatusBadRequest)
		}
	}
}

func readFiles(r *http.Request) ([]ingest.File, error) {
	var files []ingest.File
	for _, headers := range r.MultipartForm.File {
		for _, hdr := range headers {
			part, err := hdr.Open()
			if err != nil {
				return nil, err
			}
			data, err := io.ReadAll(part)
			part.Close()
			if err != nil {
				return nil, err
			}
			files = append(files, ingest.File{
				Name: hdr.Filename,
				Size: hdr.Size,
				Data: data,
			})
		}
	}
	return files, nil
}
