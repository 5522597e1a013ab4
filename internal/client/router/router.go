// Package router maps client locations to named views and decides, for a
// given session state, whether a navigation is allowed or redirected.
package router

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// Route names.
const (
	RouteLogin         = "login"
	RouteProducts      = "products"
	RouteProductNew    = "product-new"
	RouteProductDetail = "product-detail"
)

// RedirectParam carries the originally requested location on a redirect to login.
const RedirectParam = "redirect"

// maxRedirects bounds redirect chains; the static table never needs more than two hops.
const maxRedirects = 4

// Route describes one view.
type Route struct {
	Name         string
	Path         string
	RequiresAuth bool
	GuestOnly    bool
}

// Routes is the route table. Paths use chi patterns.
var Routes = []Route{
	{Name: RouteLogin, Path: "/login", GuestOnly: true},
	{Name: RouteProducts, Path: "/products", RequiresAuth: true},
	{Name: RouteProductNew, Path: "/products/new", RequiresAuth: true},
	{Name: RouteProductDetail, Path: "/products/{id}", RequiresAuth: true},
}

var paths = map[string]string{
	RouteLogin:    "/login",
	RouteProducts: "/products",
}

// Location is a resolved navigation target.
type Location struct {
	Name  string
	Path  string
	Query url.Values
}

// String returns the full path, query included.
func (l Location) String() string {
	if len(l.Query) == 0 {
		return l.Path
	}
	return l.Path + "?" + l.Query.Encode()
}

// Decision is the outcome of a navigation.
type Decision struct {
	// Location is where the navigation ends up, after redirects.
	Location Location
	// Params holds path parameters of the final route, e.g. "id".
	Params map[string]string
	// Redirected reports whether Location differs from the requested one.
	Redirected bool
}

// Router resolves locations against Routes.
type Router struct {
	mux    *chi.Mux
	routes map[string]Route
}

func New() *Router {
	r := &Router{mux: chi.NewRouter(), routes: make(map[string]Route, len(Routes))}
	noop := func(http.ResponseWriter, *http.Request) {}
	for _, rt := range Routes {
		r.mux.Get(rt.Path, noop)
		r.routes[rt.Path] = rt
	}
	return r
}

// Match finds the route serving path. ok is false for unknown paths.
func (r *Router) Match(path string) (Route, map[string]string, bool) {
	rctx := chi.NewRouteContext()
	if !r.mux.Match(rctx, http.MethodGet, path) {
		return Route{}, nil, false
	}
	rt, ok := r.routes[rctx.RoutePattern()]
	if !ok {
		return Route{}, nil, false
	}
	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, k := range rctx.URLParams.Keys {
		params[k] = rctx.URLParams.Values[i]
	}
	return rt, params, true
}

// Guard applies a single navigation step. It returns the redirect target,
// or nil when the navigation to fullPath is allowed as is.
//
// Unknown paths and "/" redirect to products. Protected routes redirect an
// anonymous user to login, carrying fullPath in the redirect parameter.
// Guest-only routes redirect an authenticated user to products.
func (r *Router) Guard(fullPath string, authenticated bool) *Location {
	u, err := url.Parse(fullPath)
	if err != nil {
		return named(RouteProducts, nil)
	}

	rt, _, ok := r.Match(u.Path)
	if !ok {
		return named(RouteProducts, nil)
	}

	if rt.RequiresAuth && !authenticated {
		return named(RouteLogin, url.Values{RedirectParam: []string{fullPath}})
	}
	if rt.GuestOnly && authenticated {
		return named(RouteProducts, nil)
	}
	return nil
}

// Resolve follows Guard redirects until a location is allowed.
func (r *Router) Resolve(fullPath string, authenticated bool) Decision {
	current := fullPath
	redirected := false
	for range maxRedirects {
		next := r.Guard(current, authenticated)
		if next == nil {
			break
		}
		current = next.String()
		redirected = true
	}

	u, err := url.Parse(current)
	if err != nil {
		u = &url.URL{Path: current}
	}
	loc := Location{Path: u.Path, Query: u.Query()}
	if len(loc.Query) == 0 {
		loc.Query = nil
	}
	var params map[string]string
	if rt, p, ok := r.Match(u.Path); ok {
		loc.Name = rt.Name
		params = p
	}
	return Decision{Location: loc, Params: params, Redirected: redirected}
}

func named(name string, query url.Values) *Location {
	return &Location{Name: name, Path: paths[name], Query: query}
}
