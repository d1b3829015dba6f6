package storage

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// Medidas máximas de la miniatura; se conserva la proporción.
const (
	ThumbnailWidth  = 300
	ThumbnailHeight = 400
)

// Downscale decodifica la imagen (PNG, JPEG, GIF...) y la reduce para que quepa en
// ThumbnailWidth x ThumbnailHeight. Devuelve PNG.
func Downscale(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode thumbnail: %w", err)
	}
	thumb := imaging.Fit(img, ThumbnailWidth, ThumbnailHeight, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
