package api

import (
	"github.com/JaimeStill/hawkcalc/internal/calculator"
	"github.com/JaimeStill/hawkcalc/pkg/offline"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Calculator *calculator.Handler
	Offline    *offline.Manager
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime, manager *offline.Manager) *Domain {
	return &Domain{
		Calculator: calculator.NewHandler(runtime.Logger),
		Offline:    manager,
	}
}
