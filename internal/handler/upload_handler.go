package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"

	"github.com/Shalinisinha22/Ewa-admin/pkg/logger"
	"github.com/Shalinisinha22/Ewa-admin/pkg/uploader"
	"github.com/Shalinisinha22/Ewa-admin/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// readImageFile validates and reads one multipart image file
func readImageFile(file *multipart.FileHeader) ([]byte, string) {
	if file.Size > uploader.MaxFileSize() {
		return nil, "File too large"
	}
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "Only image files are allowed"
	}

	src, err := file.Open()
	if err != nil {
		return nil, "Failed to read file"
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "Failed to read file"
	}
	return data, ""
}

// UploadImage accepts a single multipart image and stores it in the
// effective store's folder on the image host
func UploadImage(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}
	if storeID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Store context is required"})
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Image file is required"})
	}

	data, problem := readImageFile(file)
	if problem != "" {
		log.Warn("Rejected upload",
			zap.String("filename", file.Filename),
			zap.Int64("size", file.Size),
			zap.String("reason", problem))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": problem})
	}

	result, err := uploader.UploadImage(data, file.Filename, *storeID)
	if err != nil {
		prometheus.UploadErrorsCounter.Inc()
		log.Error("Image upload failed", zap.String("filename", file.Filename), zap.Error(err))
		if errors.Is(err, uploader.ErrNotConfigured) {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Image upload is not configured"})
		}
		return c.JSON(http.StatusBadGateway, echo.Map{"message": "Image upload failed"})
	}

	prometheus.UploadCounter.Inc()
	log.Info("Image uploaded",
		zap.String("filename", file.Filename),
		zap.String("public_id", result.PublicID),
		zap.Uint("store_id", *storeID))

	return c.JSON(http.StatusOK, result)
}

// uploadOutcome carries one file's result through the concurrent multi-upload
type uploadOutcome struct {
	Filename string                 `json:"filename"`
	Result   *uploader.UploadResult `json:"result,omitempty"`
	Error    string                 `json:"error,omitempty"`
}

// UploadImages accepts multiple images and uploads them concurrently.
// The upload is best-effort: every file is attempted and the response
// reports per-file success or failure.
func UploadImages(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}
	if storeID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Store context is required"})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Image files are required"})
	}
	files := form.File["images"]
	if len(files) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Image files are required"})
	}

	outcomes := make([]uploadOutcome, len(files))

	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(i int, file *multipart.FileHeader) {
			defer wg.Done()

			outcome := uploadOutcome{Filename: file.Filename}
			data, problem := readImageFile(file)
			if problem != "" {
				outcome.Error = problem
				outcomes[i] = outcome
				return
			}

			result, err := uploader.UploadImage(data, file.Filename, *storeID)
			if err != nil {
				prometheus.UploadErrorsCounter.Inc()
				outcome.Error = "Image upload failed"
			} else {
				prometheus.UploadCounter.Inc()
				outcome.Result = result
			}
			outcomes[i] = outcome
		}(i, file)
	}
	wg.Wait()

	uploaded := 0
	for _, outcome := range outcomes {
		if outcome.Error == "" {
			uploaded++
		}
	}

	log.Info("Batch image upload finished",
		zap.Int("total", len(files)),
		zap.Int("uploaded", uploaded),
		zap.Uint("store_id", *storeID))

	status := http.StatusOK
	if uploaded == 0 {
		status = http.StatusBadGateway
	}

	return c.JSON(status, echo.Map{
		"uploaded": uploaded,
		"total":    len(files),
		"results":  outcomes,
	})
}

// DeleteImage removes an image from the image host by its public id
func DeleteImage(c echo.Context) error {
	log := logger.FromContext(c)

	if _, _, err := resolveScope(c); err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}

	var req struct {
		PublicID string `json:"publicId"`
	}

	if err := c.Bind(&req); err != nil || req.PublicID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "publicId is required"})
	}

	if err := uploader.DeleteImage(req.PublicID); err != nil {
		log.Error("Image deletion failed", zap.String("public_id", req.PublicID), zap.Error(err))
		if errors.Is(err, uploader.ErrNotConfigured) {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Image upload is not configured"})
		}
		return c.JSON(http.StatusBadGateway, echo.Map{"message": "Image deletion failed"})
	}

	log.Info("Image deleted", zap.String("public_id", req.PublicID))

	return c.JSON(http.StatusOK, echo.Map{"message": "Image deleted successfully"})
}
