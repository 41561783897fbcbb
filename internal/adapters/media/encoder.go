package media

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"

	"deptevents/internal/domain"
	"deptevents/internal/utils"
)

// DefaultMaxDimension bounds the width and height of stored images.
const DefaultMaxDimension = 1280

type encoder struct {
	maxDim int
	logger *slog.Logger
}

// NewEncoder returns a MediaEncoder that downsizes JPEG, PNG and GIF images to fit
// within maxDim×maxDim and stores MP4 video unchanged.
func NewEncoder(maxDim int, logger *slog.Logger) domain.MediaEncoder {
	if maxDim <= 0 {
		maxDim = DefaultMaxDimension
	}
	return &encoder{maxDim: maxDim, logger: logger}
}

func (e *encoder) EncodeImage(ctx context.Context, file domain.MediaFile) (string, error) {
	raw, err := utils.ReadFile(ctx, file)
	if err != nil {
		return "", err
	}
	contentType := file.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(raw)
	}

	format, ok := imageFormat(contentType)
	if !ok {
		return utils.EncodeDataURI(contentType, raw), nil
	}
	resized, err := e.fit(raw, format)
	if err != nil {
		// Browsers may still render what Go cannot decode.
		e.logger.Warn("image not resized", "filename", file.Filename, "content_type", contentType, "error", err)
		return utils.EncodeDataURI(contentType, raw), nil
	}
	if resized == nil {
		return utils.EncodeDataURI(contentType, raw), nil
	}
	return utils.EncodeDataURI(contentType, resized), nil
}

// fit returns nil when the image already fits.
func (e *encoder) fit(raw []byte, format imaging.Format) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	b := img.Bounds()
	if b.Dx() <= e.maxDim && b.Dy() <= e.maxDim {
		return nil, nil
	}
	resized := imaging.Fit(img, e.maxDim, e.maxDim, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *encoder) EncodeVideo(ctx context.Context, file domain.MediaFile) (string, error) {
	if !strings.Contains(file.ContentType, "video/mp4") {
		return "", domain.NewValidationError(domain.MsgVideoFormat)
	}
	return utils.FileToBase64(ctx, file)
}

func imageFormat(contentType string) (imaging.Format, bool) {
	switch strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])) {
	case "image/jpeg", "image/jpg":
		return imaging.JPEG, true
	case "image/png":
		return imaging.PNG, true
	case "image/gif":
		return imaging.GIF, true
	default:
		return 0, false
	}
}
