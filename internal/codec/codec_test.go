package codec

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	serr "imgview/internal/errors"
	"imgview/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportedExtensions(t *testing.T) {
	exts := SupportedExtensions()
	require.GreaterOrEqual(t, len(exts), len(priority))
	assert.Equal(t, priority, exts[:len(priority)], "common extensions come first")
	assert.Contains(t, exts, ".tiff")
	assert.Contains(t, exts, ".jfif")

	seen := map[string]bool{}
	for _, ext := range exts {
		assert.False(t, seen[ext], "duplicate %s", ext)
		seen[ext] = true
		assert.NotEmpty(t, FormatForExtension(ext), "extension %s has no format", ext)
	}
}

func TestFormatForExtension(t *testing.T) {
	assert.Equal(t, "jpeg", FormatForExtension(".JPG"))
	assert.Equal(t, "tiff", FormatForExtension(".tif"))
	assert.Equal(t, "", FormatForExtension(".txt"))
}

func TestExtensionSet(t *testing.T) {
	set := NewExtensionSet()

	tests := []struct {
		name string
		want bool
	}{
		{"a.png", true},
		{"A.PNG", true},
		{"photo.JpEg", true},
		{".hidden.gif", true},
		{"scan.tiff", true},
		{"notes.txt", false},
		{"png", false},
		{"archive.png.bak", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, set.Match(tt.name))
		})
	}

	t.Run("extra extensions", func(t *testing.T) {
		extra := NewExtensionSet(".HEIC", "raw", ".png")
		assert.True(t, extra.Match("IMG_1.heic"))
		assert.False(t, extra.Match("IMG_1.raw"), "extensions without a dot are ignored")
		assert.Len(t, extra.Extensions(), len(SupportedExtensions())+1)
	})
}

func TestFileDecoder(t *testing.T) {
	dir := t.TempDir()

	t.Run("png", func(t *testing.T) {
		path := testutils.WriteImage(t, dir, "a.png", 40, 30)
		bm, err := NewFileDecoder().Decode(path)
		require.NoError(t, err)
		assert.Equal(t, 40, bm.Width)
		assert.Equal(t, 30, bm.Height)
		assert.Equal(t, "png", bm.Format)
		assert.Equal(t, "40x30", bm.Size())
		assert.False(t, bm.IsPlaceholder())
		assert.Nil(t, bm.Exif)
	})

	t.Run("gif", func(t *testing.T) {
		path := testutils.WriteImage(t, dir, "c.gif", 8, 8)
		bm, err := NewFileDecoder().Decode(path)
		require.NoError(t, err)
		assert.Equal(t, "gif", bm.Format)
	})

	t.Run("jpeg without exif", func(t *testing.T) {
		path := testutils.WriteImage(t, dir, "b.jpg", 16, 12)
		bm, err := NewFileDecoder().Decode(path)
		require.NoError(t, err)
		assert.Equal(t, "jpeg", bm.Format)
		assert.Nil(t, bm.Exif)
	})

	t.Run("content wins over extension", func(t *testing.T) {
		path := filepath.Join(dir, "misnamed.jpg")
		require.NoError(t, os.WriteFile(path, testutils.EncodeImage(t, "x.png", 5, 5), 0644))
		bm, err := NewFileDecoder().Decode(path)
		require.NoError(t, err)
		assert.Equal(t, "png", bm.Format)
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(dir, "broken.png")
		require.NoError(t, os.WriteFile(path, []byte("not an image"), 0644))
		bm, err := NewFileDecoder().Decode(path)
		assert.Nil(t, bm)
		require.Error(t, err)
		assert.True(t, serr.IsDecodeFailure(err))

		var decodeErr *serr.DecodeError
		require.True(t, serr.As(err, &decodeErr))
		assert.Equal(t, path, decodeErr.Path())
		assert.Equal(t, "png", decodeErr.Format())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewFileDecoder().Decode(filepath.Join(dir, "gone.png"))
		require.Error(t, err)
		assert.True(t, serr.IsPathNotFound(err))
	})
}

func TestReadExifWithoutExif(t *testing.T) {
	data := testutils.EncodeImage(t, "x.jpg", 4, 4)
	assert.Nil(t, ReadExif(bytes.NewReader(data)))
	assert.Equal(t, "", (*ExifInfo)(nil).Camera())
}

func TestExifCamera(t *testing.T) {
	assert.Equal(t, "Canon EOS", (&ExifInfo{CameraMake: "Canon", CameraModel: "EOS"}).Camera())
	assert.Equal(t, "EOS", (&ExifInfo{CameraModel: "EOS"}).Camera())
	assert.Equal(t, "Canon", (&ExifInfo{CameraMake: "Canon"}).Camera())
}

func TestPlaceholder(t *testing.T) {
	cause := serr.NewDecodeError("/x/a.png", "png", nil)
	bm := Placeholder("/x/a.png", cause)
	require.NotNil(t, bm)
	assert.True(t, bm.IsPlaceholder())
	assert.Equal(t, PlaceholderWidth, bm.Width)
	assert.Equal(t, PlaceholderHeight, bm.Height)
	assert.Equal(t, PlaceholderWidth, bm.Image.Bounds().Dx())
	assert.Same(t, cause, bm.Err)

	withoutCause := Placeholder("/x/b.png", nil)
	assert.True(t, serr.IsDecodeFailure(withoutCause.Err))
}

func TestFit(t *testing.T) {
	small := testutils.TestImage(100, 50)
	assert.Same(t, small, Fit(small, 1024, 728), "small images are not upscaled")

	wide := testutils.TestImage(2048, 1024)
	out := Fit(wide, 1024, 728)
	assert.Equal(t, 1024, out.Bounds().Dx())
	assert.Equal(t, 512, out.Bounds().Dy())

	tall := testutils.TestImage(364, 1456)
	out = Fit(tall, 1024, 728)
	assert.Equal(t, 182, out.Bounds().Dx())
	assert.Equal(t, 728, out.Bounds().Dy())

	assert.Nil(t, Fit(nil, 10, 10))
}

func TestFitSize(t *testing.T) {
	w, h := FitSize(2048, 1024, 1024, 728)
	assert.Equal(t, 1024, w)
	assert.Equal(t, 512, h)

	w, h = FitSize(364, 1456, 1024, 728)
	assert.Equal(t, 182, w)
	assert.Equal(t, 728, h)

	w, h = FitSize(10, 10, 1024, 728)
	assert.Equal(t, 10, w)
	assert.Equal(t, 10, h)
}
