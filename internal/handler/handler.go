package handler

import (
	"net/http"

	"github.com/lifeline-dev/lifeline/internal/config"
	"github.com/lifeline-dev/lifeline/internal/service"
)

// Renderer is the out-of-scope rendering boundary: a named view plus a data
// bag become a response body.
type Renderer interface {
	Render(w http.ResponseWriter, name string, data any)
}

type Handler struct {
	auth     service.AuthService
	donors   service.DonorService
	requests service.RequestService
	renderer Renderer
	health   Pinger
	cfg      *config.Config
}

func New(auth service.AuthService, donors service.DonorService, requests service.RequestService, renderer Renderer, health Pinger, cfg *config.Config) *Handler {
	return &Handler{auth, donors, requests, renderer, health, cfg}
}
