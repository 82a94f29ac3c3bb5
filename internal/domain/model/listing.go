// Package model contains domain records passed between layers.
package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// Listing represents one property listing as held in the reconciled
// collection. The backend owns the record; the engine never originates one.
type Listing struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Price     float64     `json:"price"`
	Type      string      `json:"type"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Location  Location    `json:"location"`
	Landlord  LandlordRef `json:"landlord"`
}

// CreationTime returns the creation timestamp, falling back to the update
// timestamp when creation is absent.
func (l Listing) CreationTime() (time.Time, bool) {
	if !l.CreatedAt.IsZero() {
		return l.CreatedAt, true
	}
	if !l.UpdatedAt.IsZero() {
		return l.UpdatedAt, true
	}
	return time.Time{}, false
}

// Location is the nested place reference on a listing.
type Location struct {
	Estate string `json:"estate"`
	Town   string `json:"town"`
}

// Review is a tenant review attached to a listing.
type Review struct {
	ListingID string    `json:"listingId"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

// LandlordRef is the polymorphic owning-landlord reference on a listing.
// The backend serializes it as a bare id string, an embedded object exposing
// "_id" or "id" (and sometimes "name"), or omits it entirely. Decoding is
// lossless: the raw payload is kept so re-encoding round-trips.
type LandlordRef struct {
	id   string
	name string
	raw  json.RawMessage
}

// NewLandlordRef builds a reference from a bare identifier. Intended for
// tests and fixtures; production references arrive via JSON.
func NewLandlordRef(id string) LandlordRef {
	raw, _ := json.Marshal(id)
	return LandlordRef{id: id, raw: raw}
}

// ID normalizes the reference to a landlord identifier. The second return
// is false when the reference is absent or carries no recognizable id.
func (r LandlordRef) ID() (string, bool) {
	return r.id, r.id != ""
}

// Name returns the landlord display name when the embedded object carried one.
func (r LandlordRef) Name() (string, bool) {
	return r.name, r.name != ""
}

// UnmarshalJSON accepts a string, an object with "_id"/"id", or null.
// Unrecognized shapes decode as an absent reference rather than failing the
// whole listing.
func (r *LandlordRef) UnmarshalJSON(data []byte) error {
	*r = LandlordRef{raw: append(json.RawMessage(nil), data...)}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	switch trimmed[0] {
	case '"':
		var id string
		if err := json.Unmarshal(trimmed, &id); err != nil {
			return nil
		}
		r.id = id
	case '{':
		var obj struct {
			MongoID string `json:"_id"`
			ID      string `json:"id"`
			Name    string `json:"name"`
		}
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil
		}
		if obj.MongoID != "" {
			r.id = obj.MongoID
		} else {
			r.id = obj.ID
		}
		r.name = obj.Name
	}
	return nil
}

// MarshalJSON re-emits the reference exactly as it arrived.
func (r LandlordRef) MarshalJSON() ([]byte, error) {
	if len(r.raw) == 0 {
		return []byte("null"), nil
	}
	return r.raw, nil
}
