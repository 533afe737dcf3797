package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/SscSPs/trade_journal_app/internal/apperrors"
	"github.com/SscSPs/trade_journal_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// Multipart file fields accepted by the entry endpoints.
const (
	fieldImageUpload      = "imageUpload"
	fieldAdditionalImages = "additionalImages"
)

// limitBody caps the request body at maxBytes.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// readUploads collects the image files posted under the given fields, in field order.
// Requests that are not multipart carry no uploads. Files whose sniffed content
// type is not an image are rejected with a validation error.
func readUploads(c *gin.Context, fields ...string) ([]domain.ImageUpload, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	var uploads []domain.ImageUpload
	for _, field := range fields {
		for _, fh := range form.File[field] {
			upload, err := readUpload(fh)
			if err != nil {
				return nil, err
			}
			if upload != nil {
				uploads = append(uploads, *upload)
			}
		}
	}
	return uploads, nil
}

func readUpload(fh *multipart.FileHeader) (*domain.ImageUpload, error) {
	// Browsers post an empty part when no file was picked.
	if fh.Filename == "" && fh.Size == 0 {
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload %s: %w", fh.Filename, err)
	}
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: file %s is not an image (%s)", apperrors.ErrValidation, fh.Filename, contentType)
	}
	return &domain.ImageUpload{
		FileName:    fh.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}
