package handlers

import (
	"net/http"

	"github.com/TwigBush/shopgraph/internal/httpx"
	"github.com/TwigBush/shopgraph/internal/version"
)

func Version(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, version.Get())
}
