package rimage

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"os"

	// registered image formats.
	_ "image/gif"

	_ "github.com/lmittmann/ppm"
	"github.com/pkg/errors"
	"github.com/xfmoulet/qoi"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	goutils "go.viam.com/utils"

	"go.viam.com/radialwarp/utils"
)

// ReadImageFromFile decodes the image at path into an Image. The format is sniffed
// from the file contents.
func ReadImageFromFile(path string) (*Image, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "error opening image file")
	}
	defer goutils.UncheckedErrorFunc(f.Close)

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "could not decode %s", path)
	}
	return NewImageFromStdImage(img), nil
}

// DecodeImage decodes data. An empty mimeType sniffs the format; otherwise the sniffed
// format must agree with the requested one.
func DecodeImage(ctx context.Context, data []byte, mimeType string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "could not decode image")
	}
	if mimeType != "" && formatMimeType(format) != mimeType {
		return nil, errors.Errorf("expected %s image but got %s", mimeType, format)
	}
	return img, nil
}

// EncodeImage encodes img for presentation. PNG, JPEG and QOI are supported.
func EncodeImage(ctx context.Context, img image.Image, mimeType string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	switch mimeType {
	case utils.MimeTypePNG, "":
		if err := png.Encode(&buf, img); err != nil {
			return nil, errors.Wrap(err, "png encode")
		}
	case utils.MimeTypeJPEG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
			return nil, errors.Wrap(err, "jpeg encode")
		}
	case utils.MimeTypeQOI:
		if err := qoi.Encode(&buf, img); err != nil {
			return nil, errors.Wrap(err, "qoi encode")
		}
	default:
		return nil, errors.Errorf("do not know how to encode %q", mimeType)
	}
	return buf.Bytes(), nil
}

// formatMimeType maps the names image.RegisterFormat uses onto mime types.
func formatMimeType(format string) string {
	switch format {
	case "jpeg":
		return utils.MimeTypeJPEG
	case "png":
		return utils.MimeTypePNG
	case "gif":
		return utils.MimeTypeGIF
	case "bmp":
		return utils.MimeTypeBMP
	case "tiff":
		return utils.MimeTypeTIFF
	case "webp":
		return utils.MimeTypeWebP
	case "ppm":
		return utils.MimeTypePPM
	case "qoi":
		return utils.MimeTypeQOI
	default:
		return "image/" + format
	}
}
