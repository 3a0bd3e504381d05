package filehost

import (
	"path/filepath"
	"strings"
)

// Route maps a virtual path requested by clients to a file on local disk.
type Route struct {
	Virtual string // e.g. "/file.txt"
	Local   string // absolute path on disk
}

// RouteTable is built once at startup and never modified afterwards, so it
// can be shared by every connection handler without locking.
type RouteTable struct {
	files  map[string]string
	routes []Route
}

// NewRouteTable builds a RouteTable from tokens taken as
// (local path, virtual path) pairs. Relative local paths are resolved
// against workDir. A later pair with the same virtual path replaces the
// earlier one.
func NewRouteTable(tokens []string, workDir string) (*RouteTable, error) {
	if len(tokens)%2 != 0 {
		return nil, &ConfigError{Token: tokens[len(tokens)-1], Err: ErrUnpairedToken}
	}

	rt := &RouteTable{files: make(map[string]string, len(tokens)/2)}
	for i := 0; i < len(tokens); i += 2 {
		local, virtual := tokens[i], tokens[i+1]
		if !validURL(virtual) {
			return nil, &ConfigError{Token: virtual, Err: ErrVirtualPathSlash}
		}

		if !filepath.IsAbs(local) {
			local = filepath.Join(workDir, local)
		}
		local = filepath.Clean(local)

		if _, ok := rt.files[virtual]; ok {
			for j := range rt.routes {
				if rt.routes[j].Virtual == virtual {
					rt.routes[j].Local = local
				}
			}
		} else {
			rt.routes = append(rt.routes, Route{Virtual: virtual, Local: local})
		}
		rt.files[virtual] = local
	}

	return rt, nil
}

// Lookup returns the local file for an exact virtual path match.
func (rt *RouteTable) Lookup(virtual string) (string, bool) {
	local, ok := rt.files[virtual]
	return local, ok
}

// Routes returns a copy of the routes in the order they were first configured.
func (rt *RouteTable) Routes() []Route {
	routes := make([]Route, len(rt.routes))
	copy(routes, rt.routes)
	return routes
}

func (rt *RouteTable) Len() int {
	return len(rt.routes)
}

// A well-formed virtual path always starts with a / character.
func validURL(url string) bool {
	return strings.HasPrefix(url, "/")
}
