// Package codec turns image files into in-memory bitmaps. It knows which
// extensions the linked decoders handle, reads EXIF metadata, builds
// placeholder bitmaps for files that fail to decode and scales images to fit
// the viewer.
package codec

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	serr "imgview/internal/errors"
	"imgview/internal/log"
)

// Bitmap is a decoded image ready for display. A bitmap with a non-nil Err is
// a placeholder standing in for a file that could not be decoded.
type Bitmap struct {
	Image  image.Image
	Width  int
	Height int
	Format string
	Exif   *ExifInfo
	Err    error
}

// IsPlaceholder reports whether the bitmap stands in for a failed decode.
func (b *Bitmap) IsPlaceholder() bool {
	return b != nil && b.Err != nil
}

// Size returns "WxH".
func (b *Bitmap) Size() string {
	if b == nil {
		return "0x0"
	}
	return fmt.Sprintf("%dx%d", b.Width, b.Height)
}

// PlaceholderWidth and PlaceholderHeight give the size of placeholder images.
const (
	PlaceholderWidth  = 320
	PlaceholderHeight = 240
)

var placeholderColor = color.NRGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}

// Placeholder returns the bitmap shown in place of path when err prevented
// decoding it.
func Placeholder(path string, err error) *Bitmap {
	if err == nil {
		err = serr.NewDecodeError(path, "", nil)
	}
	img := image.NewNRGBA(image.Rect(0, 0, PlaceholderWidth, PlaceholderHeight))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = placeholderColor.R
		img.Pix[i+1] = placeholderColor.G
		img.Pix[i+2] = placeholderColor.B
		img.Pix[i+3] = placeholderColor.A
	}
	return &Bitmap{
		Image:  img,
		Width:  PlaceholderWidth,
		Height: PlaceholderHeight,
		Err:    err,
	}
}

// FileDecoder decodes images from the local filesystem. The format is
// detected from content, so a mis-named file still decodes.
type FileDecoder struct {
	// ReadExif enables EXIF extraction for formats that carry it.
	ReadExif bool
}

// NewFileDecoder returns a decoder that also reads EXIF metadata.
func NewFileDecoder() *FileDecoder {
	return &FileDecoder{ReadExif: true}
}

// Decode reads and decodes the file at path. Failures are returned as
// *errors.DecodeError (or *errors.FileError when the file cannot be opened).
func (d *FileDecoder) Decode(path string) (*Bitmap, error) {
	f, err := os.Open(path)
	if err != nil {
		kind := serr.FileAccessDenied
		if os.IsNotExist(err) {
			kind = serr.PathNotFound
		}
		return nil, serr.NewFileError("failed to open image", path, kind, err)
	}
	defer f.Close()

	img, format, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, serr.NewDecodeError(path, FormatForExtension(filepath.Ext(path)), err)
	}

	b := img.Bounds()
	bm := &Bitmap{
		Image:  img,
		Width:  b.Dx(),
		Height: b.Dy(),
		Format: format,
	}

	if d.ReadExif && carriesExif(format) {
		if _, err := f.Seek(0, io.SeekStart); err == nil {
			bm.Exif = ReadExif(f)
		}
	}

	log.LogWithFields(log.F("path", path), log.F("format", format), log.F("size", bm.Size())).Debug("decoded image")
	return bm, nil
}

func carriesExif(format string) bool {
	switch strings.ToLower(format) {
	case "jpeg", "tiff":
		return true
	}
	return false
}
