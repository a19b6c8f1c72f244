package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Gem represents a gemstone in the catalog.
type Gem struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	Weight        float64   `json:"weight"` // carats
	Price         float64   `json:"price"`
	Description   string    `json:"description"`
	Certification *string   `json:"certification"`
	Image         *string   `json:"image"`
	Gallery       []string  `json:"gallery"`
	CreatedAt     time.Time `json:"created_at,omitzero"`
	UpdatedAt     time.Time `json:"updated_at,omitzero"`
}

// MarshalJSON writes the identifier under both "id" and "_id" so clients of
// either naming keep working.
func (g Gem) MarshalJSON() ([]byte, error) {
	type plain Gem
	out := struct {
		plain
		LegacyID string `json:"_id"`
	}{plain: plain(g), LegacyID: g.ID}
	if out.Gallery == nil {
		out.Gallery = []string{}
	}
	return json.Marshal(out)
}

// GemInput is the create/update payload. Identifier and timestamps are
// server-assigned and therefore absent here.
type GemInput struct {
	Name          string   `json:"name" validate:"required,min=2"`
	Type          string   `json:"type" validate:"required,min=2"`
	Weight        *float64 `json:"weight" validate:"required,gte=0"`
	Price         *float64 `json:"price" validate:"required,gte=0"`
	Description   string   `json:"description" validate:"required,min=10"`
	Certification *string  `json:"certification"`
	Image         *string  `json:"image" validate:"omitempty,http_url"`
	Gallery       []string `json:"gallery" validate:"dive,http_url"`
}

// Normalize trims text fields and fills defaults. It must run before
// validation so length rules apply to the stripped values.
func (in *GemInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Type = strings.TrimSpace(in.Type)
	in.Description = strings.TrimSpace(in.Description)
	if in.Image != nil {
		img := strings.TrimSpace(*in.Image)
		in.Image = &img
	}
	if in.Gallery == nil {
		in.Gallery = []string{}
	}
}

// ApplyTo overwrites every mutable field of g. Identifier and timestamps are
// left alone.
func (in *GemInput) ApplyTo(g *Gem) {
	g.Name = in.Name
	g.Type = in.Type
	if in.Weight != nil {
		g.Weight = *in.Weight
	}
	if in.Price != nil {
		g.Price = *in.Price
	}
	g.Description = in.Description
	g.Certification = in.Certification
	g.Image = in.Image
	g.Gallery = append([]string{}, in.Gallery...)
}

// Clone returns a deep copy so callers can mutate the result freely.
func (g Gem) Clone() Gem {
	c := g
	if g.Certification != nil {
		v := *g.Certification
		c.Certification = &v
	}
	if g.Image != nil {
		v := *g.Image
		c.Image = &v
	}
	c.Gallery = append([]string{}, g.Gallery...)
	return c
}

// GemPage is one page of a listing plus the filtered total.
type GemPage struct {
	Items []Gem `json:"items"`
	Total int64 `json:"total"`
}

// SeedResult reports what a seed request did.
type SeedResult struct {
	Seeded   bool   `json:"seeded"`
	Existing bool   `json:"existing,omitempty"`
	Inserted int    `json:"inserted,omitempty"`
	Reason   string `json:"reason,omitempty"`
}
