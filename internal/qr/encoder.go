package qr

import (
	"context"
	"encoding/json"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/geomark/geomark/internal/document"
)

// Payload is the QR content for a document. Field order is fixed so the
// encoded payload is reproducible for the same record.
type Payload struct {
	ID          uint    `json:"id"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Category    string  `json:"category"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	DocumentID  string  `json:"document_id"`
}

func PayloadFor(d *document.Document) Payload {
	return Payload{
		ID:          d.ID,
		Lat:         d.Lat,
		Lon:         d.Lon,
		Category:    d.Category,
		Name:        d.Name,
		Description: d.Description,
		DocumentID:  d.DocumentID,
	}
}

// ImageStore persists a rendered image under a name. Implementations: local
// directory (DirStore) and the MinIO blob wrapper.
type ImageStore interface {
	Put(ctx context.Context, name string, png []byte) error
}

// Encoder serializes a document to its payload, renders a scannable PNG and
// hands it to the configured store as <document_id>.png.
type Encoder struct {
	store ImageStore
	size  int
}

func NewEncoder(store ImageStore) *Encoder {
	return &Encoder{store: store, size: 256}
}

// EncodePayload returns the deterministic textual payload.
func EncodePayload(p Payload) ([]byte, error) {
	return json.Marshal(p)
}

func (e *Encoder) Encode(ctx context.Context, d *document.Document) error {
	data, err := EncodePayload(PayloadFor(d))
	if err != nil {
		return fmt.Errorf("qr payload: %w", err)
	}
	png, err := qrcode.Encode(string(data), qrcode.Medium, e.size)
	if err != nil {
		return fmt.Errorf("qr render: %w", err)
	}
	if err := e.store.Put(ctx, d.DocumentID+".png", png); err != nil {
		return fmt.Errorf("qr store: %w", err)
	}
	return nil
}
