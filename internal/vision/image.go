// Package vision proxies clothing photos to a multimodal model, either to
// describe the garment or to produce a cleaned-up product image.
package vision

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const defaultMIMEType = "image/jpeg"

// Image is a decoded upload
type Image struct {
	MIMEType string
	Data     []byte
}

// DecodeImage accepts raw base64 or a data: URL. Raw input is assumed to be
// JPEG. Empty input decodes to an empty image.
func DecodeImage(s string) (Image, error) {
	img := Image{MIMEType: defaultMIMEType}
	payload := strings.TrimSpace(s)

	if rest, ok := strings.CutPrefix(payload, "data:"); ok {
		meta, data, found := strings.Cut(rest, ",")
		if !found {
			return Image{}, fmt.Errorf("malformed data URL")
		}
		mime, isBase64 := strings.CutSuffix(meta, ";base64")
		if !isBase64 {
			return Image{}, fmt.Errorf("data URL must be base64 encoded")
		}
		if mime != "" {
			img.MIMEType = mime
		}
		payload = data
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Image{}, fmt.Errorf("invalid base64 image: %w", err)
	}
	img.Data = decoded

	return img, nil
}

// DataURL encodes the image for direct use in an <img> src
func (i Image) DataURL() string {
	mime := i.MIMEType
	if mime == "" {
		mime = defaultMIMEType
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}
