package codec

import (
	"io"
	"sync"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
	"github.com/rwcarlsen/goexif/tiff"
)

// ExifInfo is the subset of EXIF metadata the viewer shows. It is never used
// to transform pixels.
type ExifInfo struct {
	CameraMake  string
	CameraModel string
	LensModel   string
	DateTaken   time.Time
	Orientation int
	ISO         int
}

var registerParsers sync.Once

// ReadExif extracts metadata from r. It returns nil when r has no EXIF block.
func ReadExif(r io.Reader) *ExifInfo {
	registerParsers.Do(func() {
		exif.RegisterParsers(mknote.All...)
	})

	x, err := exif.Decode(r)
	if err != nil {
		return nil
	}

	info := &ExifInfo{Orientation: 1}
	info.CameraMake = tagString(x, exif.Make)
	info.CameraModel = tagString(x, exif.Model)
	info.LensModel = tagString(x, exif.LensModel)

	if dt, err := x.DateTime(); err == nil {
		info.DateTaken = dt
	}
	if tag, err := x.Get(exif.Orientation); err == nil {
		if v, err := tag.Int(0); err == nil && v >= 1 && v <= 8 {
			info.Orientation = v
		}
	}
	if tag, err := x.Get(exif.ISOSpeedRatings); err == nil {
		if v, err := tag.Int(0); err == nil {
			info.ISO = v
		}
	}
	return info
}

// Camera returns "make model", skipping empty parts.
func (e *ExifInfo) Camera() string {
	if e == nil {
		return ""
	}
	switch {
	case e.CameraMake == "":
		return e.CameraModel
	case e.CameraModel == "":
		return e.CameraMake
	}
	return e.CameraMake + " " + e.CameraModel
}

func tagString(x *exif.Exif, name exif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	if tag.Format() == tiff.StringVal {
		s, _ := tag.StringVal()
		return s
	}
	return tag.String()
}
