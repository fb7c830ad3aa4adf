package upload

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

// MaxProofSide bounds the longest edge of a stored proof image.
const MaxProofSide = 1600

const proofJPEGQuality = 85

// NormalizeProofImage decodes a transfer receipt, applies its EXIF
// orientation, shrinks it to MaxProofSide and re-encodes it as JPEG.
func NormalizeProofImage(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode proof image: %w", err)
	}

	b := img.Bounds()
	if b.Dx() > MaxProofSide || b.Dy() > MaxProofSide {
		img = imaging.Fit(img, MaxProofSide, MaxProofSide, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(proofJPEGQuality)); err != nil {
		return nil, fmt.Errorf("encode proof image: %w", err)
	}
	return buf.Bytes(), nil
}

// ProofObjectName returns proof-<unix millis>-<email>.jpg.
func ProofObjectName(email string, now time.Time) string {
	email = strings.ReplaceAll(strings.TrimSpace(email), "/", "_")
	return fmt.Sprintf("proof-%d-%s.jpg", now.UnixMilli(), email)
}

// QRISObjectName returns qris-<unix millis>.png.
func QRISObjectName(now time.Time) string {
	return fmt.Sprintf("qris-%d.png", now.UnixMilli())
}
