package routes

import (
	"net/http"

	"github.com/JaimeStill/hawkcalc/pkg/middleware"
)

// Group organizes routes under a common prefix. Middleware applies to the
// group's routes and to every child group.
type Group struct {
	Prefix     string
	Middleware middleware.Chain
	Routes     []Route
	Children   []Group
}

// Register adds all routes from the given groups to the mux and returns the
// registered patterns in registration order.
func Register(mux *http.ServeMux, groups ...Group) []string {
	var patterns []string
	for _, group := range groups {
		patterns = registerGroup(mux, "", nil, group, patterns)
	}
	return patterns
}

func registerGroup(mux *http.ServeMux, parentPrefix string, parentChain middleware.Chain, group Group, patterns []string) []string {
	prefix := parentPrefix + group.Prefix
	chain := append(append(middleware.Chain{}, parentChain...), group.Middleware...)

	for _, route := range group.Routes {
		route.Pattern = prefix + route.Pattern
		pattern := route.String()
		mux.Handle(pattern, chain.Then(route.Handler))
		patterns = append(patterns, pattern)
	}
	for _, child := range group.Children {
		patterns = registerGroup(mux, prefix, chain, child, patterns)
	}
	return patterns
}
