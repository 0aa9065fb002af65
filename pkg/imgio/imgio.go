// Package imgio reads raster files into pixel buffers and writes converted
// buffers back out as PNG.
//
// Decoding goes through image.Decode so the format is sniffed from the
// file content, not the extension. BMP is the format legacy sprite sheets
// actually ship in, but PNG, GIF, JPEG and TIFF inputs decode the same
// way. Whatever the source format, the decoded image is normalized to
// non-premultiplied RGBA before the converter sees it: images without an
// alpha channel come out fully opaque, which is what the key-color pass
// expects for color-keyed sprites.
//
// Output is always PNG (the only alpha-capable format the legacy engines'
// modern ports read) and is written atomically: the encoder targets a
// uniquely named temp file in the destination directory and renames it
// into place only once the full buffer has been encoded, so a failed
// conversion never leaves a truncated output behind.
package imgio

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	// Register the decoders image.Decode can sniff.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/dinktools/chess/pkg/errors"
	"github.com/dinktools/chess/pkg/raster"
)

// Decode reads a raster image from r and returns it as an RGBA buffer.
func Decode(r io.Reader) (*raster.Buffer, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode image")
	}
	return raster.FromNRGBA(imaging.Clone(img)), nil
}

// DecodeBytes decodes an in-memory raster image.
func DecodeBytes(data []byte) (*raster.Buffer, error) {
	return Decode(bytes.NewReader(data))
}

// DecodeFile reads and decodes the raster file at path.
// A missing file reports ErrCodeFileNotFound before any pixel work starts.
func DecodeFile(path string) (*raster.Buffer, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "input file not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()

	b, err := Decode(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode %s", path)
	}
	return b, nil
}

// EncodePNG writes the buffer to w as PNG.
func EncodePNG(w io.Writer, b *raster.Buffer) error {
	if err := png.Encode(w, b.NRGBA()); err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "encode png")
	}
	return nil
}

// EncodePNGBytes encodes the buffer to an in-memory PNG.
func EncodePNGBytes(b *raster.Buffer) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, b); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFileAtomic writes data to path through a uniquely named temp file in
// the same directory, renaming it into place on success. On any failure
// the temp file is removed and the destination is left untouched.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%s", filepath.Base(path), uuid.NewString()))

	f, err := os.Create(tmp)
	if err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "create temp file in %s", dir)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeEncode, err, "write %s", tmp)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeEncode, err, "close %s", tmp)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeEncode, err, "rename %s to %s", tmp, path)
	}
	return nil
}

// WritePNGFile encodes the buffer and writes it atomically to path.
func WritePNGFile(path string, b *raster.Buffer) error {
	data, err := EncodePNGBytes(b)
	if err != nil {
		return err
	}
	return WriteFileAtomic(path, data)
}

// OutputPath derives the default output file name for an input: the input
// path with its extension replaced by .png.
func OutputPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".png"
}
