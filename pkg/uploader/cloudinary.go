package uploader

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Shalinisinha22/Ewa-admin/pkg/config"
	"github.com/go-resty/resty/v2"
)

var (
	cfg    *config.UploadConfig
	client *resty.Client
)

// ErrNotConfigured is returned when upload credentials are missing
var ErrNotConfigured = errors.New("image host credentials are not configured")

// UploadResult holds the image host response for a stored image
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

type destroyResponse struct {
	Result string `json:"result"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Initialize configures the image host client from application configuration
func Initialize(uploadConfig *config.UploadConfig) {
	cfg = uploadConfig
	client = resty.New().
		SetTimeout(uploadConfig.Timeout).
		SetRetryCount(uploadConfig.RetryCount)
}

// MaxFileSize returns the configured per-file upload limit in bytes
func MaxFileSize() int64 {
	if cfg == nil {
		return 5 * 1024 * 1024
	}
	return cfg.MaxFileSize
}

// UploadImage stores an image in the per-store folder and returns its public URL
func UploadImage(data []byte, filename string, storeID uint) (*UploadResult, error) {
	if cfg == nil || cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, ErrNotConfigured
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	folder := fmt.Sprintf("%s/%d", cfg.Folder, storeID)
	params := map[string]string{
		"folder":    folder,
		"timestamp": timestamp,
	}

	resp, err := client.R().
		SetFileReader("file", filename, bytes.NewReader(data)).
		SetFormData(map[string]string{
			"api_key":   cfg.APIKey,
			"folder":    folder,
			"timestamp": timestamp,
			"signature": sign(params, cfg.APISecret),
		}).
		SetResult(&uploadResponse{}).
		Post(fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", cfg.CloudName))
	if err != nil {
		return nil, err
	}

	result := resp.Result().(*uploadResponse)
	if resp.IsError() || result.SecureURL == "" {
		if result.Error.Message != "" {
			return nil, fmt.Errorf("image host rejected upload: %s", result.Error.Message)
		}
		return nil, fmt.Errorf("image host upload failed with status %d", resp.StatusCode())
	}

	return &UploadResult{
		URL:      result.SecureURL,
		PublicID: result.PublicID,
		Width:    result.Width,
		Height:   result.Height,
	}, nil
}

// DeleteImage removes a previously uploaded image by its public ID
func DeleteImage(publicID string) error {
	if cfg == nil || cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return ErrNotConfigured
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	params := map[string]string{
		"public_id": publicID,
		"timestamp": timestamp,
	}

	resp, err := client.R().
		SetFormData(map[string]string{
			"api_key":   cfg.APIKey,
			"public_id": publicID,
			"timestamp": timestamp,
			"signature": sign(params, cfg.APISecret),
		}).
		SetResult(&destroyResponse{}).
		Post(fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/destroy", cfg.CloudName))
	if err != nil {
		return err
	}

	result := resp.Result().(*destroyResponse)
	if resp.IsError() {
		if result.Error.Message != "" {
			return fmt.Errorf("image host rejected deletion: %s", result.Error.Message)
		}
		return fmt.Errorf("image host deletion failed with status %d", resp.StatusCode())
	}

	return nil
}

// sign builds the request signature the image host expects: the SHA1 hex digest
// of the alphabetically ordered parameters concatenated with the API secret.
func sign(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	digest := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(digest[:])
}
