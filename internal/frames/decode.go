package frames

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// filetype needs at most this many bytes to recognise a format.
const headerSize = 261

// DecodeFile decodes a single image file, refusing anything whose header does
// not identify it as an image.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	return Decode(f)
}

// Decode sniffs the stream header and then decodes it with whichever
// registered codec matches.
func Decode(r io.Reader) (image.Image, error) {
	header := make([]byte, headerSize)
	n, err := io.ReadFull(r, header)
	if err != nil && err != io.ErrUnexpectedEOF {
		if err == io.EOF {
			return nil, errors.New("empty file")
		}
		return nil, err
	}
	header = header[:n]

	if !filetype.IsImage(header) {
		kind, _ := filetype.Match(header)
		if kind == filetype.Unknown {
			return nil, errors.New("not an image")
		}
		return nil, fmt.Errorf("not an image (detected %s)", kind.MIME.Value)
	}

	img, _, err := image.Decode(io.MultiReader(bytes.NewReader(header), r))
	if err != nil {
		return nil, err
	}
	return img, nil
}
