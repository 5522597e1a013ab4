package models

import (
	"encoding/json"
	"maps"
)

// Product is a catalog record keyed by ID. Well-known fields are typed; any
// other field received from the API is kept verbatim in Extra and written
// back on marshal. Zero-valued well-known fields other than ID are omitted
// when encoding.
type Product struct {
	ID                 int64   `json:"id"`
	Title              string  `json:"title,omitempty"`
	Description        string  `json:"description,omitempty"`
	Category           string  `json:"category,omitempty"`
	Price              float64 `json:"price,omitempty"`
	DiscountPercentage float64 `json:"discountPercentage,omitempty"`
	Rating             float64 `json:"rating,omitempty"`
	Stock              int     `json:"stock,omitempty"`
	Brand              string  `json:"brand,omitempty"`
	Thumbnail          string  `json:"thumbnail,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

type productFields Product

var productKnownKeys = []string{
	"id", "title", "description", "category", "price",
	"discountPercentage", "rating", "stock", "brand", "thumbnail",
}

func (p *Product) UnmarshalJSON(b []byte) error {
	var fields productFields
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	for _, k := range productKnownKeys {
		delete(raw, k)
	}
	fields.Extra = nil
	if len(raw) > 0 {
		fields.Extra = raw
	}
	*p = Product(fields)
	return nil
}

func (p Product) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(productFields(p))
	if err != nil || len(p.Extra) == 0 {
		return b, err
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(b, &merged); err != nil {
		return nil, err
	}
	for k, v := range p.Extra {
		if _, known := merged[k]; !known {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// Clone returns a copy whose Extra map is not shared with p.
func (p Product) Clone() Product {
	if p.Extra != nil {
		p.Extra = maps.Clone(p.Extra)
	}
	return p
}

// ProductList is the envelope of list and search responses.
type ProductList struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

// ProductPayload is the body of create and update requests. Nil or empty
// fields are not sent, so an update only touches the fields that are set.
type ProductPayload struct {
	Title              string   `json:"title,omitempty"`
	Description        string   `json:"description,omitempty"`
	Category           string   `json:"category,omitempty"`
	Brand              string   `json:"brand,omitempty"`
	Thumbnail          string   `json:"thumbnail,omitempty"`
	Price              *float64 `json:"price,omitempty"`
	DiscountPercentage *float64 `json:"discountPercentage,omitempty"`
	Stock              *int     `json:"stock,omitempty"`
}

// DeleteResult acknowledges DELETE /products/:id: the deleted record plus
// deletion markers.
type DeleteResult struct {
	Product   Product
	IsDeleted bool
	DeletedOn string
}

func (d *DeleteResult) UnmarshalJSON(b []byte) error {
	var markers struct {
		IsDeleted bool   `json:"isDeleted"`
		DeletedOn string `json:"deletedOn"`
	}
	if err := json.Unmarshal(b, &markers); err != nil {
		return err
	}
	var p Product
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	delete(p.Extra, "isDeleted")
	delete(p.Extra, "deletedOn")
	if len(p.Extra) == 0 {
		p.Extra = nil
	}
	*d = DeleteResult{Product: p, IsDeleted: markers.IsDeleted, DeletedOn: markers.DeletedOn}
	return nil
}
