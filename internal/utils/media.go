package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"

	"deptevents/internal/domain"
)

const readChunk = 32 * 1024

// FileToBase64 reads file.Content to the end and returns it as a data URI
// "data:<type>;base64,<payload>". The read stops with ctx.Err() on cancellation.
// An empty ContentType is sniffed from the content.
func FileToBase64(ctx context.Context, file domain.MediaFile) (string, error) {
	raw, err := ReadFile(ctx, file)
	if err != nil {
		return "", err
	}
	return EncodeDataURI(file.ContentType, raw), nil
}

// ReadFile reads file.Content to the end, honouring ctx cancellation between chunks.
func ReadFile(ctx context.Context, file domain.MediaFile) ([]byte, error) {
	if file.Content == nil {
		return nil, fmt.Errorf("read %q: no content", file.Filename)
	}
	raw, err := readAllContext(ctx, file.Content)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", file.Filename, err)
	}
	return raw, nil
}

// EncodeDataURI wraps raw bytes in a base64 data URI.
func EncodeDataURI(contentType string, raw []byte) string {
	if contentType == "" {
		contentType = http.DetectContentType(raw)
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(raw)
}

func readAllContext(ctx context.Context, r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	chunk := make([]byte, readChunk)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := r.Read(chunk)
		buf.Write(chunk[:n])
		if err == io.EOF {
			return buf.Bytes(), nil
		}
		if err != nil {
			return nil, err
		}
	}
}
