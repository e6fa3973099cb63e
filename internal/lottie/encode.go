package lottie

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"

	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/system"
)

// Sticker limits enforced by Telegram for animated stickers.
const (
	StickerSize      = 512
	StickerMaxFrames = 180
	StickerMaxBytes  = 64 * 1024
)

// Encode serializes the document as JSON.
func Encode(doc *Document) ([]byte, error) {
	return json.Marshal(doc)
}

// EncodeTGS serializes the document as a gzip-compressed TGS sticker.
func EncodeTGS(doc *Document) ([]byte, error) {
	buf := system.GetBuffer()
	defer system.PutBuffer(buf)

	if err := WriteTGS(buf, doc); err != nil {
		return nil, err
	}
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

// WriteTGS writes the TGS form of doc to w.
func WriteTGS(w io.Writer, doc *Document) error {
	tgs := *doc
	tgs.TGS = 1

	zw, err := gzip.NewWriterLevel(w, gzip.BestCompression)
	if err != nil {
		return err
	}
	if err := json.NewEncoder(zw).Encode(&tgs); err != nil {
		zw.Close()
		return fmt.Errorf("encode tgs: %w", err)
	}
	return zw.Close()
}

// ReadTGS decodes the top-level header of a TGS stream. Shape items are not
// decoded back into concrete types.
func ReadTGS(r io.Reader) (map[string]any, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var out map[string]any
	if err := json.NewDecoder(zr).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// CheckSticker reports why doc would be rejected as a Telegram sticker.
// size is the compressed size in bytes.
func CheckSticker(doc *Document, size int) error {
	if doc.Width != StickerSize || doc.Height != StickerSize {
		return fmt.Errorf("sticker must be %dx%d, got %dx%d", StickerSize, StickerSize, doc.Width, doc.Height)
	}
	if doc.FrameRate != 30 && doc.FrameRate != 60 {
		return fmt.Errorf("sticker frame rate must be 30 or 60, got %g", doc.FrameRate)
	}
	if doc.OutPoint-doc.InPoint > 3*doc.FrameRate {
		return fmt.Errorf("sticker longer than 3s: %g frames at %g fps", doc.OutPoint-doc.InPoint, doc.FrameRate)
	}
	if size > StickerMaxBytes {
		return fmt.Errorf("sticker is %d bytes, limit %d", size, StickerMaxBytes)
	}
	return nil
}
