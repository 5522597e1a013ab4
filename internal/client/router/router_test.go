package router

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_Match(t *testing.T) {
	r := New()

	tests := []struct {
		path   string
		name   string
		params map[string]string
		ok     bool
	}{
		{"/login", RouteLogin, map[string]string{}, true},
		{"/products", RouteProducts, map[string]string{}, true},
		{"/products/new", RouteProductNew, map[string]string{}, true},
		{"/products/42", RouteProductDetail, map[string]string{"id": "42"}, true},
		{"/", "", nil, false},
		{"/nope", "", nil, false},
		{"/products/1/extra", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rt, params, ok := r.Match(tt.path)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.name, rt.Name)
			assert.Equal(t, tt.params, params)
		})
	}
}

func TestRouter_Guard(t *testing.T) {
	r := New()

	tests := []struct {
		name string
		path string
		auth bool
		want *Location
	}{
		{"anonymous on protected", "/products/7?tab=reviews", false,
			&Location{Name: RouteLogin, Path: "/login", Query: url.Values{RedirectParam: []string{"/products/7?tab=reviews"}}}},
		{"anonymous on login", "/login", false, nil},
		{"authenticated on login", "/login", true, &Location{Name: RouteProducts, Path: "/products"}},
		{"authenticated on protected", "/products/new", true, nil},
		{"root", "/", true, &Location{Name: RouteProducts, Path: "/products"}},
		{"unknown", "/whatever/else", false, &Location{Name: RouteProducts, Path: "/products"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Guard(tt.path, tt.auth))
		})
	}
}

func TestRouter_Resolve(t *testing.T) {
	r := New()

	d := r.Resolve("/", false)
	assert.True(t, d.Redirected)
	assert.Equal(t, RouteLogin, d.Location.Name)
	assert.Equal(t, "/products", d.Location.Query.Get(RedirectParam))
	assert.Equal(t, "/login?redirect=%2Fproducts", d.Location.String())

	d = r.Resolve("/products/5", true)
	assert.False(t, d.Redirected)
	assert.Equal(t, RouteProductDetail, d.Location.Name)
	assert.Equal(t, "5", d.Params["id"])
	assert.Equal(t, "/products/5", d.Location.String())

	d = r.Resolve("/missing", true)
	assert.True(t, d.Redirected)
	assert.Equal(t, RouteProducts, d.Location.Name)
}
