// Package imaging recompresses PNG, JPEG and GIF images.
package imaging

import (
	"bytes"
	"image/gif"
	"image/jpeg"
	"image/png"
	"strings"

	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/zerr"
)

type encoder func(src []byte, dst *bytes.Buffer) error

// Compressor re-encodes images and keeps whichever of the result and the
// original is smaller. PNG output is lossless: colors are never quantized
// to a palette, so savings are smaller than with pngquant.
type Compressor struct {
	quality int
	png     png.Encoder
}

// NewCompressor creates a Compressor for cfg.
func NewCompressor(cfg domain.ImageConfig) (*Compressor, error) {
	q := cfg.JPEGQuality
	if q == 0 {
		q = domain.DefaultJPEGQuality
	}
	if q < 1 || q > 100 {
		return nil, zerr.With(zerr.New("jpeg quality out of range"), "quality", q)
	}
	return &Compressor{
		quality: q,
		png:     png.Encoder{CompressionLevel: png.BestCompression},
	}, nil
}

// Compress returns src with recompressed contents. Files of unknown type
// are returned unchanged.
func (c *Compressor) Compress(src domain.Asset) (domain.Asset, error) {
	enc := c.encoderFor(src.Ext())
	if enc == nil {
		return src, nil
	}

	var buf bytes.Buffer
	if err := enc(src.Contents, &buf); err != nil {
		return domain.Asset{}, zerr.With(zerr.Wrap(err, domain.ErrImageCompressFailed.Error()), "file", src.Path)
	}

	if buf.Len() >= len(src.Contents) {
		return src, nil
	}
	out := src
	out.Contents = buf.Bytes()
	return out, nil
}

func (c *Compressor) encoderFor(ext string) encoder {
	switch strings.ToLower(ext) {
	case ".png":
		return c.encodePNG
	case ".jpg", ".jpeg":
		return c.encodeJPEG
	case ".gif":
		return encodeGIF
	default:
		return nil
	}
}

func (c *Compressor) encodePNG(src []byte, dst *bytes.Buffer) error {
	img, err := png.Decode(bytes.NewReader(src))
	if err != nil {
		return err
	}
	return c.png.Encode(dst, img)
}

func (c *Compressor) encodeJPEG(src []byte, dst *bytes.Buffer) error {
	img, err := jpeg.Decode(bytes.NewReader(src))
	if err != nil {
		return err
	}
	return jpeg.Encode(dst, img, &jpeg.Options{Quality: c.quality})
}

func encodeGIF(src []byte, dst *bytes.Buffer) error {
	g, err := gif.DecodeAll(bytes.NewReader(src))
	if err != nil {
		return err
	}
	return gif.EncodeAll(dst, g)
}
