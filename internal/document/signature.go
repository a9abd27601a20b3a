package document

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/disintegration/imaging"
)

// DataURLPrefix starts every stored signature.
const DataURLPrefix = "data:image/png;base64,"

// Signature images are scaled down to fit this box before storing.
const (
	SignatureMaxWidth  = 400
	SignatureMaxHeight = 200
)

// ErrSignature is returned for signatures that are not a decodable image.
var ErrSignature = errors.New("invalid signature image")

// EncodeSignature decodes any image format imaging understands, fits it into
// the signature box and returns it as a PNG data URL.
func EncodeSignature(data []byte) (string, error) {
	png, err := normalizeImage(data)
	if err != nil {
		return "", err
	}
	return DataURLPrefix + base64.StdEncoding.EncodeToString(png), nil
}

// SignatureFromFile reads an image file and encodes it as a signature.
func SignatureFromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read signature: %w", err)
	}
	return EncodeSignature(data)
}

// DecodeSignature returns the PNG bytes of a data URL. The image is decoded
// and re-encoded so the result is always a plain 8-bit PNG.
func DecodeSignature(dataURL string) ([]byte, error) {
	header, payload, ok := strings.Cut(dataURL, ",")
	if !ok || !strings.HasPrefix(header, "data:image/") || !strings.HasSuffix(header, ";base64") {
		return nil, fmt.Errorf("%w: not a base64 image data URL", ErrSignature)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignature, err)
	}
	return normalizeImage(raw)
}

func normalizeImage(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignature, err)
	}
	img = imaging.Fit(img, SignatureMaxWidth, SignatureMaxHeight, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode signature: %w", err)
	}
	return buf.Bytes(), nil
}
