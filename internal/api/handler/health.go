package handler

import (
	"net/http"

	"github.com/mcoot/brewduel/internal/api/response"
)

// Health handles GET /api/v1/health
func Health(w http.ResponseWriter, _ *http.Request) {
	_ = response.OK(w, response.Health{Status: "ok"})
}
