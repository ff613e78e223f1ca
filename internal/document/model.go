package document

import (
	"errors"
	"fmt"
)

// Field limits enforced at validation time and as column sizes.
const (
	MaxCategoryLen    = 30
	MaxNameLen        = 300
	MaxDescriptionLen = 300
)

var ErrInvalid = errors.New("invalid document")

// Document is a geotagged point of interest. The numeric ID is assigned by
// the store; DocumentID is the generated 10-letter public key and is
// immutable after creation.
type Document struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Lat         float64 `json:"lat" gorm:"not null"`
	Lon         float64 `json:"lon" gorm:"not null"`
	Category    string  `json:"category" gorm:"size:30;not null"`
	Name        string  `json:"name" gorm:"size:300;not null"`
	Description string  `json:"description" gorm:"size:300;not null"`
	DocumentID  string  `json:"document_id" gorm:"column:document_id;size:10;uniqueIndex;not null"`
}

func (Document) TableName() string { return "documents" }

// Point is the projection returned by the full document listing; the map
// frontend only needs coordinates and the public key.
type Point struct {
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	DocumentID string  `json:"document_id"`
}

func (d *Document) Point() Point {
	return Point{Lat: d.Lat, Lon: d.Lon, DocumentID: d.DocumentID}
}

// Validate checks the mutable fields. Lat/lon are required floats; zero is a
// valid coordinate, so presence is checked at the handler where absence is
// still observable.
func (d *Document) Validate() error {
	if d.Category == "" {
		return fmt.Errorf("%w: category is required", ErrInvalid)
	}
	if len(d.Category) > MaxCategoryLen {
		return fmt.Errorf("%w: category exceeds %d characters", ErrInvalid, MaxCategoryLen)
	}
	if d.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if len(d.Name) > MaxNameLen {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalid, MaxNameLen)
	}
	if d.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalid)
	}
	if len(d.Description) > MaxDescriptionLen {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalid, MaxDescriptionLen)
	}
	return nil
}
