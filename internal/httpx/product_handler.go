package httpx

import (
	"errors"
	"net/http"
	"strconv"

	"plantstore-be/internal/product"
	"plantstore-be/internal/utils"
)

type productHandler struct {
	service       product.Service
	maxImageBytes int64
}

func (h *productHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		utils.WriteJSONError(w, "could not load products", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, products, http.StatusOK)
}

func (h *productHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeProductError(w, err)
		return
	}
	utils.WriteJSON(w, p, http.StatusOK)
}

func (h *productHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, image, ok := h.parseProductForm(w, r)
	if !ok {
		return
	}

	p, err := h.service.Create(r.Context(), product.CreateInput{
		Name:        input.name,
		Price:       input.price,
		Stock:       input.stock,
		Description: input.description,
	}, image)
	if err != nil {
		writeProductError(w, err)
		return
	}
	utils.WriteJSON(w, p, http.StatusCreated)
}

func (h *productHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	input, image, ok := h.parseProductForm(w, r)
	if !ok {
		return
	}

	p, err := h.service.Update(r.Context(), product.UpdateInput{
		ID:          id,
		Name:        input.name,
		Price:       input.price,
		Stock:       input.stock,
		Description: input.description,
	}, image)
	if err != nil {
		writeProductError(w, err)
		return
	}
	utils.WriteJSON(w, p, http.StatusOK)
}

// ReplaceImage swaps only the product image, keeping the catalog fields.
func (h *productHandler) ReplaceImage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	existing, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeProductError(w, err)
		return
	}

	image, ok := h.parseImage(w, r)
	if !ok {
		return
	}
	if image == nil {
		utils.WriteJSONError(w, "image file is required", http.StatusBadRequest)
		return
	}

	p, err := h.service.Update(r.Context(), product.UpdateInput{
		ID:          id,
		Name:        existing.Name,
		Price:       existing.Price,
		Stock:       existing.Stock,
		Description: utils.PtrString(existing.Description),
	}, image)
	if err != nil {
		writeProductError(w, err)
		return
	}
	utils.WriteJSON(w, p, http.StatusOK)
}

type updateStockRequest struct {
	Stock int `json:"stock"`
}

func (h *productHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req updateStockRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateStock(r.Context(), id, req.Stock); err != nil {
		writeProductError(w, err)
		return
	}
	utils.WriteJSON(w, map[string]any{"id": id, "stock": req.Stock}, http.StatusOK)
}

func (h *productHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeProductError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type productForm struct {
	name        string
	price       float64
	stock       int
	description string
}

func (h *productHandler) parseProductForm(w http.ResponseWriter, r *http.Request) (productForm, *product.ImageUpload, bool) {
	if err := r.ParseMultipartForm(h.maxImageBytes + 1<<20); err != nil {
		utils.WriteJSONError(w, "invalid multipart form", http.StatusBadRequest)
		return productForm{}, nil, false
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		utils.WriteJSONError(w, "price must be a number", http.StatusBadRequest)
		return productForm{}, nil, false
	}
	stock, err := strconv.Atoi(r.FormValue("stock"))
	if err != nil {
		utils.WriteJSONError(w, "stock must be an integer", http.StatusBadRequest)
		return productForm{}, nil, false
	}

	form := productForm{
		name:        r.FormValue("name"),
		price:       price,
		stock:       stock,
		description: r.FormValue("description"),
	}

	image, ok := h.parseImage(w, r)
	if !ok {
		return productForm{}, nil, false
	}
	return form, image, true
}

// parseImage returns (nil, true) when no file was attached.
func (h *productHandler) parseImage(w http.ResponseWriter, r *http.Request) (*product.ImageUpload, bool) {
	if r.MultipartForm == nil {
		if err := r.ParseMultipartForm(h.maxImageBytes + 1<<20); err != nil {
			utils.WriteJSONError(w, "invalid multipart form", http.StatusBadRequest)
			return nil, false
		}
	}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, true
	}
	if err != nil {
		utils.WriteJSONError(w, "could not read image", http.StatusBadRequest)
		return nil, false
	}

	return &product.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}, true
}

func writeProductError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, product.ErrProductNotFound):
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, product.ErrImageTooLarge):
		utils.WriteJSONError(w, err.Error(), http.StatusRequestEntityTooLarge)
	case errors.Is(err, product.ErrImageBadType):
		utils.WriteJSONError(w, err.Error(), http.StatusUnsupportedMediaType)
	case errors.Is(err, product.ErrNameTooShort),
		errors.Is(err, product.ErrInvalidPrice),
		errors.Is(err, product.ErrNegativeStock),
		errors.Is(err, product.ErrImageRequired):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	default:
		utils.WriteJSONError(w, "product operation failed", http.StatusInternalServerError)
	}
}
