package v1

import (
	"net/http"

	"futur-backend/pkg/utils"
)

type Handlers struct {
	Catalog *CatalogHandler
	Cart    *CartHandler
	Design  *DesignHandler
	Upload  *UploadHandler
	Order   *OrderHandler
}

// RegisterRoutes mounts the v1 API on mux. session wraps every route that
// reads or writes a cart.
func RegisterRoutes(mux *http.ServeMux, h Handlers, session func(http.Handler) http.Handler) {
	withSession := func(fn http.HandlerFunc) http.Handler {
		return session(fn)
	}

	// Catalog (Public)
	mux.HandleFunc("GET /api/v1/products", h.Catalog.ListProducts)
	mux.HandleFunc("GET /api/v1/products/{id}", h.Catalog.GetProduct)
	mux.HandleFunc("GET /api/v1/jackets/catalog", h.Catalog.GetJacketCatalog)
	mux.HandleFunc("POST /api/v1/jackets/quote", h.Catalog.QuoteJacket)

	// Cart (Session)
	mux.Handle("GET /api/v1/cart", withSession(h.Cart.GetCart))
	mux.Handle("POST /api/v1/cart/items", withSession(h.Cart.AddItem))
	mux.Handle("POST /api/v1/cart/jackets", withSession(h.Cart.AddJacket))
	mux.Handle("PUT /api/v1/cart/items/{id}", withSession(h.Cart.UpdateItem))
	mux.Handle("DELETE /api/v1/cart/items/{id}", withSession(h.Cart.RemoveItem))
	mux.Handle("DELETE /api/v1/cart", withSession(h.Cart.ClearCart))
	mux.Handle("PUT /api/v1/cart/visibility", withSession(h.Cart.SetVisibility))

	// Designs
	mux.HandleFunc("POST /api/v1/designs", h.Design.SaveDesign)
	mux.HandleFunc("GET /api/v1/designs/{id}", h.Design.GetDesign)
	mux.HandleFunc("POST /api/v1/upload", h.Upload.UploadBackDesign)

	// Checkout & Orders (Session)
	mux.Handle("POST /api/v1/checkout", withSession(h.Order.Checkout))
	mux.Handle("GET /api/v1/orders/{id}", withSession(h.Order.GetOrder))

	// Health Check
	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
	mux.HandleFunc("GET /api/v1/health", healthHandler)
	mux.HandleFunc("GET /health", healthHandler) // root health check for load balancers
}
