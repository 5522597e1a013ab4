package models

import "encoding/json"

// Category is an entry of GET /products/categories.
type Category struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

type categoryFields Category

// UnmarshalJSON accepts both the object form and the legacy bare string form,
// in which case the string is used as slug and name.
func (c *Category) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		*c = Category{Slug: name, Name: name}
		return nil
	}
	var fields categoryFields
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	*c = Category(fields)
	return nil
}
