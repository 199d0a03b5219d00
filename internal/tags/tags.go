// Package tags encodes a drug's identity into a scannable QR image and
// resolves scanned payloads back to catalog descriptions.
package tags

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"regexp"
	"strconv"

	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/Sirius241/Pharmacy-Managment-System/domain"
)

// ErrNoTagDetected means the image held no readable tag at all, as opposed to
// a tag whose payload matched nothing.
var ErrNoTagDetected = errors.New("no tag detected")

const NotFoundMessage = "Medicine details not found."

const imageSize = 256

var payloadRe = regexp.MustCompile(`^Medicine ID: (\d+)\nName: (.+)$`)

// Payload renders the fixed two-line tag text for a drug.
func Payload(id int64, name string) string {
	return fmt.Sprintf("Medicine ID: %d\nName: %s", id, name)
}

// Encode produces a PNG QR image of the drug's payload.
func Encode(id int64, name string) ([]byte, error) {
	return qrcode.Encode(Payload(id, name), qrcode.Medium, imageSize)
}

// Decode extracts the first detected tag payload from an image.
func Decode(r io.Reader) (string, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return "", err
	}
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", err
	}
	result, err := zxqrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return "", ErrNoTagDetected
	}
	return result.GetText(), nil
}

// Catalog resolves drugs by id.
type Catalog interface {
	DrugByID(ctx context.Context, id int64) (domain.Drug, error)
}

// Resolver maps tag payloads to catalog descriptions.
type Resolver struct {
	catalog Catalog
}

func NewResolver(catalog Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// Describe parses a payload and looks the drug up in the catalog. Payloads
// that do not parse, or that name a drug the catalog does not know, yield the
// not-found message rather than an error.
func (r *Resolver) Describe(ctx context.Context, payload string) (string, error) {
	m := payloadRe.FindStringSubmatch(payload)
	if m == nil {
		return NotFoundMessage, nil
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return NotFoundMessage, nil
	}

	drug, err := r.catalog.DrugByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return NotFoundMessage, nil
		}
		return "", err
	}
	// The payload must match the catalog record exactly.
	if drug.Name != m[2] || drug.Description == "" {
		return NotFoundMessage, nil
	}
	return drug.Description, nil
}
