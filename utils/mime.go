package utils

import (
	"path/filepath"
	"strings"
)

const (
	// MimeTypeJPEG is regular jpgs.
	MimeTypeJPEG = "image/jpeg"

	// MimeTypePNG is regular pngs.
	MimeTypePNG = "image/png"

	// MimeTypeGIF is for gifs; only the first frame is used.
	MimeTypeGIF = "image/gif"

	// MimeTypeBMP is for windows bitmaps.
	MimeTypeBMP = "image/bmp"

	// MimeTypeTIFF is for tiffs.
	MimeTypeTIFF = "image/tiff"

	// MimeTypeWebP is for lossy and lossless webp.
	MimeTypeWebP = "image/webp"

	// MimeTypePPM is for netpbm portable pixmaps.
	MimeTypePPM = "image/x-portable-pixmap"

	// MimeTypeQOI is for .qoi "Quite OK Image" for lossless, fast encoding/decoding.
	MimeTypeQOI = "image/qoi"
)

var extensionMimeTypes = map[string]string{
	".jpg":  MimeTypeJPEG,
	".jpeg": MimeTypeJPEG,
	".png":  MimeTypePNG,
	".gif":  MimeTypeGIF,
	".bmp":  MimeTypeBMP,
	".tif":  MimeTypeTIFF,
	".tiff": MimeTypeTIFF,
	".webp": MimeTypeWebP,
	".ppm":  MimeTypePPM,
	".qoi":  MimeTypeQOI,
}

// MimeTypeFromPath guesses the mime type from a file extension. It returns the empty
// string for unknown extensions.
func MimeTypeFromPath(path string) string {
	return extensionMimeTypes[strings.ToLower(filepath.Ext(path))]
}
