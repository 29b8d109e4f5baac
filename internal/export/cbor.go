package export

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// encMode uses Core Deterministic Encoding so the same capture always
// exports to identical bytes.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("export: CBOR encoder initialization failed: " + err.Error())
	}
}

// WriteCBOR writes doc as a single CBOR item.
func WriteCBOR(w io.Writer, doc Document) error {
	data, err := encMode.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode cbor: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// ReadCBOR decodes a document written by WriteCBOR.
func ReadCBOR(r io.Reader) (Document, error) {
	var doc Document
	if err := cbor.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode cbor: %w", err)
	}
	return doc, nil
}
