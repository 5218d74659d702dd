package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"path"
	"strings"
	"time"
)

// SaveEvidencePhoto decodes a data-URL payload captured at the clock
// terminal ("data:image/jpeg;base64,...") and stores it under
// attendance/<date>/. Returns the stored path.
func SaveEvidencePhoto(ctx context.Context, fs FileStorage, workerID, action string, now time.Time, dataURL string) (string, error) {
	meta, data, found := strings.Cut(dataURL, ";base64,")
	if !found {
		return "", fmt.Errorf("evidence payload is not a base64 data URL")
	}

	ext := "jpg"
	if _, imageType, ok := strings.Cut(meta, "image/"); ok && imageType != "" {
		ext = imageType
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode evidence payload: %w", err)
	}

	name := fmt.Sprintf("%d-%s-%s.%s", now.UnixMilli(), action, workerID, ext)
	dest := path.Join("attendance", now.Format("2006-01-02"), name)

	return fs.Upload(ctx, bytes.NewReader(raw), dest, "image/"+ext)
}
