package httpapi

import "net/http"

type RouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

// NewRouter assembles the API mux. A nil controller is skipped; a nil
// authMiddleware leaves the routes open.
func NewRouter(
	operationController RouteRegistrar,
	accountController RouteRegistrar,
	customerController RouteRegistrar,
	authMiddleware func(http.Handler) http.Handler,
) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, Response[struct{}]{Success: true, Message: "ok"})
	})

	for _, controller := range []RouteRegistrar{operationController, accountController, customerController} {
		if controller != nil {
			controller.RegisterRoutes(mux, authMiddleware)
		}
	}

	return mux
}
