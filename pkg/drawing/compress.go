package drawing

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// SaveCompressed writes the drawing to stream as zstd-compressed ASCII DXF,
// an at-rest encoding for callers storing many drawings rather than
// exchanging them with other DXF tools. The encoder streams directly off
// Save's writer so a whole drawing is never buffered twice.
func (d *Drawing) SaveCompressed(stream io.Writer) error {
	enc, err := zstd.NewWriter(stream)
	if err != nil {
		return err
	}
	if err := d.Save(enc); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// LoadCompressed reads a drawing previously written with SaveCompressed.
func LoadCompressed(stream io.Reader) (*Drawing, error) {
	dec, err := zstd.NewReader(stream)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return Load(dec)
}
