package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"ninedelivery/storefront-svc/internal/cart"
	"ninedelivery/storefront-svc/internal/catalog"
	"ninedelivery/storefront-svc/internal/category"
	"ninedelivery/storefront-svc/internal/domain"
	"ninedelivery/storefront-svc/internal/order"
	"ninedelivery/storefront-svc/internal/service"

	"github.com/gorilla/mux"
)

const SessionHeader = "X-Session-ID"

type Handler struct {
	Catalog  service.CatalogServiceInterface
	Carts    service.CartServiceInterface
	Checkout service.CheckoutServiceInterface

	UploadDir     string
	PublicBaseURL string
}

func NewHandler(catalogSvc service.CatalogServiceInterface, cartSvc service.CartServiceInterface, checkoutSvc service.CheckoutServiceInterface) *Handler {
	return &Handler{
		Catalog:   catalogSvc,
		Carts:     cartSvc,
		Checkout:  checkoutSvc,
		UploadDir: "./uploads",
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/restaurants", h.getRestaurants).Methods("GET")
	r.HandleFunc("/api/restaurants", h.createRestaurant).Methods("POST")
	r.HandleFunc("/api/restaurants/{id}", h.getRestaurant).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", h.updateRestaurant).Methods("PUT")
	r.HandleFunc("/api/restaurants/{id}", h.deleteRestaurant).Methods("DELETE")
	r.HandleFunc("/api/restaurants/{id}/image", h.uploadRestaurantImage).Methods("POST")

	r.HandleFunc("/api/restaurants/{id}/menu", h.createMenuItem).Methods("POST")
	r.HandleFunc("/api/restaurants/{id}/menu/{itemId}", h.updateMenuItem).Methods("PUT")
	r.HandleFunc("/api/restaurants/{id}/menu/{itemId}", h.deleteMenuItem).Methods("DELETE")
	r.HandleFunc("/api/restaurants/{id}/menu/{itemId}/image", h.uploadMenuItemImage).Methods("POST")

	r.HandleFunc("/api/categories/canonicalize", h.canonicalizeCategories).Methods("GET")

	r.HandleFunc("/api/cart", h.getCart).Methods("GET")
	r.HandleFunc("/api/cart", h.clearCart).Methods("DELETE")
	r.HandleFunc("/api/cart/actions", h.dispatchCartAction).Methods("POST")
	r.HandleFunc("/api/cart/items", h.addCartItem).Methods("POST")
	r.HandleFunc("/api/cart/items/{itemId}", h.removeCartItem).Methods("DELETE")
	r.HandleFunc("/api/cart/items/{itemId}/quantity", h.setCartQuantity).Methods("PUT")
	r.HandleFunc("/api/cart/items/{itemId}/note", h.setCartNote).Methods("PUT")

	r.HandleFunc("/api/checkout", h.checkout).Methods("POST")
	r.HandleFunc("/api/checkout/qrcode", h.checkoutQRCode).Methods("POST")

	if h.UploadDir != "" {
		r.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.UploadDir))))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps service errors onto status codes. Customer-facing
// validation messages are returned as JSON.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case order.IsValidation(err):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrRestaurantNotFound):
		http.Error(w, "Restaurant not found", http.StatusNotFound)
	case errors.Is(err, service.ErrMenuItemNotFound):
		http.Error(w, "Menu item not found", http.StatusNotFound)
	case errors.Is(err, service.ErrItemUnavailable),
		errors.Is(err, service.ErrUnknownExtra),
		errors.Is(err, catalog.ErrInvalidRecord),
		errors.Is(err, cart.ErrUnknownAction):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "storefront-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *Handler) getRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Catalog.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	rest, err := h.Catalog.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *Handler) createRestaurant(w http.ResponseWriter, r *http.Request) {
	var rest domain.Restaurant
	if err := json.NewDecoder(r.Body).Decode(&rest); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Catalog.CreateRestaurant(r.Context(), &rest); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rest)
}

func (h *Handler) updateRestaurant(w http.ResponseWriter, r *http.Request) {
	var rest domain.Restaurant
	if err := json.NewDecoder(r.Body).Decode(&rest); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rest.ID = mux.Vars(r)["id"]
	if err := h.Catalog.UpdateRestaurant(r.Context(), &rest); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *Handler) deleteRestaurant(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.DeleteRestaurant(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var item domain.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Catalog.CreateMenuItem(r.Context(), mux.Vars(r)["id"], &item); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var item domain.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	item.ID = vars["itemId"]
	if err := h.Catalog.UpdateMenuItem(r.Context(), vars["id"], &item); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.Catalog.DeleteMenuItem(r.Context(), vars["id"], vars["itemId"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// saveUpload stores the multipart "image" field under relPath (its extension
// taken from the uploaded filename) and returns the public URL.
func (h *Handler) saveUpload(w http.ResponseWriter, r *http.Request, relPath string) (string, bool) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "File too large", http.StatusBadRequest)
		return "", false
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Error retrieving the file", http.StatusBadRequest)
		return "", false
	}
	defer file.Close()

	if contentType := header.Header.Get("Content-Type"); contentType != "" && !allowedImageTypes[contentType] {
		http.Error(w, "Invalid file type. Only JPEG, PNG, GIF, WebP allowed", http.StatusBadRequest)
		return "", false
	}

	ext := strings.TrimPrefix(filepath.Ext(header.Filename), ".")
	if ext == "" {
		ext = "jpg"
	}
	relPath += "." + ext

	dst := filepath.Join(h.UploadDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		http.Error(w, "Failed to create upload directory", http.StatusInternalServerError)
		return "", false
	}
	out, err := os.Create(dst)
	if err != nil {
		http.Error(w, "Failed to create file", http.StatusInternalServerError)
		return "", false
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return "", false
	}
	return strings.TrimSuffix(h.PublicBaseURL, "/") + "/uploads/" + relPath, true
}

// safeSegment rejects ids that would escape the upload directory.
func safeSegment(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
}

func (h *Handler) uploadRestaurantImage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !safeSegment(id) {
		http.Error(w, "Invalid restaurant id", http.StatusBadRequest)
		return
	}
	imageURL, ok := h.saveUpload(w, r, path.Join("restaurants", id, "cover"))
	if !ok {
		return
	}
	if err := h.Catalog.SetRestaurantImage(r.Context(), id, imageURL); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"image_url": imageURL})
}

func (h *Handler) uploadMenuItemImage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, itemID := vars["id"], vars["itemId"]
	if !safeSegment(id) || !safeSegment(itemID) {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	imageURL, ok := h.saveUpload(w, r, path.Join("restaurants", id, "menu", itemID))
	if !ok {
		return
	}
	if err := h.Catalog.SetMenuItemImage(r.Context(), id, itemID, imageURL); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":   "Image uploaded successfully",
		"image_url": imageURL,
	})
}

func (h *Handler) canonicalizeCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"categories": category.ParseText(r.URL.Query().Get("text")),
	})
}

type cartResponse struct {
	State *cart.State `json:"cart"`
	Total float64     `json:"total"`
	Error string      `json:"error,omitempty"`
}

func newCartResponse(state *cart.State) cartResponse {
	return cartResponse{State: state, Total: cart.Total(state)}
}

func session(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := strings.TrimSpace(r.Header.Get(SessionHeader))
	if id == "" {
		http.Error(w, "Missing "+SessionHeader+" header", http.StatusBadRequest)
		return "", false
	}
	return id, true
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	sid, ok := session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(h.Carts.Get(r.Context(), sid)))
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	sid, ok := session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(h.Carts.Clear(r.Context(), sid)))
}

// writeAddResult answers 409 with the previous cart when an add was rejected.
func (h *Handler) writeAddResult(w http.ResponseWriter, r *http.Request, sid string, state *cart.State, result cart.AddResult) {
	if !result.OK {
		resp := newCartResponse(h.Carts.Get(r.Context(), sid))
		resp.Error = result.Error
		writeJSON(w, http.StatusConflict, resp)
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(state))
}

func (h *Handler) dispatchCartAction(w http.ResponseWriter, r *http.Request) {
	sid, ok := session(w, r)
	if !ok {
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	action, err := cart.DecodeAction(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	state, result, err := h.Carts.Dispatch(r.Context(), sid, action)
	if err != nil {
		writeError(w, err)
		return
	}
	h.writeAddResult(w, r, sid, state, result)
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	sid, ok := session(w, r)
	if !ok {
		return
	}
	var req service.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	state, result, err := h.Carts.AddMenuItem(r.Context(), sid, req)
	if err != nil {
		writeError(w, err)
		return
	}
	h.writeAddResult(w, r, sid, state, result)
}

func (h *Handler) applyAction(w http.ResponseWriter, r *http.Request, action cart.Action) {
	sid, ok := session(w, r)
	if !ok {
		return
	}
	state, _, err := h.Carts.Dispatch(r.Context(), sid, action)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(state))
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	h.applyAction(w, r, cart.RemoveItem{ItemID: mux.Vars(r)["itemId"]})
}

func (h *Handler) setCartQuantity(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Quantity json.RawMessage `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.applyAction(w, r, cart.SetQty{ItemID: mux.Vars(r)["itemId"], Quantity: cart.CoerceQuantity(body.Quantity)})
}

func (h *Handler) setCartNote(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Note string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.applyAction(w, r, cart.SetNote{ItemID: mux.Vars(r)["itemId"], Note: body.Note})
}

func decodeDraft(w http.ResponseWriter, r *http.Request) (order.Draft, bool) {
	var draft order.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return order.Draft{}, false
	}
	return draft, true
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	sid, ok := session(w, r)
	if !ok {
		return
	}
	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}
	result, err := h.Checkout.Prepare(r.Context(), sid, draft)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) checkoutQRCode(w http.ResponseWriter, r *http.Request) {
	sid, ok := session(w, r)
	if !ok {
		return
	}
	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}
	png, err := h.Checkout.QRCode(r.Context(), sid, draft)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
