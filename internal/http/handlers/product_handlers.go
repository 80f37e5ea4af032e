package handlers

import (
	"errors"
	"net/http"

	"github.com/rogerio-castellano/product-values/internal/repo"
)

const productNotFound = "Product not found"

// decodeProduct reads and validates a product body, writing the error
// response itself when the body is unusable.
func decodeProduct(w http.ResponseWriter, r *http.Request) (ProductRequest, bool) {
	var req ProductRequest
	typeErrs, err := typeErrors(readJSON(w, r, &req))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return req, false
		}
		writeError(w, http.StatusBadRequest, "invalid input")
		return req, false
	}

	if validationErrors := validateProduct(req, typeErrs); len(validationErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, validationErrors)
		return req, false
	}
	return req, true
}

// GetProductsHandler godoc
// @Summary List all products
// @Tags products
// @Produce json
// @Success 200 {array} ProductResponse
// @Failure 500 {object} ErrorResponse
// @Router /value [get]
func (s *Server) GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	products, err := s.products.GetAll(r.Context(), sess)
	if err != nil {
		storageFailure(w, r, err, "could not fetch products")
		return
	}

	response := make([]ProductResponse, len(products))
	for i, p := range products {
		response[i] = toProductResponse(p)
	}
	writeJSON(w, http.StatusOK, response)
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} ErrorResponse "Invalid ID"
// @Failure 404 {object} ErrorResponse "Product not found"
// @Failure 500 {object} ErrorResponse
// @Router /value/{id} [get]
func (s *Server) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID")
		return
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	product, err := s.products.GetByID(r.Context(), sess, id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, productNotFound)
			return
		}
		storageFailure(w, r, err, "could not fetch product")
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Stores a product; the id is assigned by storage
// @Tags products
// @Accept json
// @Produce json
// @Param product body ProductRequest true "Product to add"
// @Success 200 {object} ProductResponse
// @Failure 400 {array} ProductValidationError
// @Failure 500 {object} ErrorResponse
// @Router /value [post]
func (s *Server) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeProduct(w, r)
	if !ok {
		return
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	created, err := s.products.Create(r.Context(), sess, req.toProduct(0))
	if err != nil {
		storageFailure(w, r, err, "could not create product")
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(created))
}

// UpdateProductHandler godoc
// @Summary Replace a product
// @Description Overwrites every field but the id. Missing products are not created.
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body ProductRequest true "Updated product"
// @Success 200 {object} ProductResponse
// @Failure 400 {array} ProductValidationError
// @Failure 404 {object} ErrorResponse "Product not found"
// @Failure 500 {object} ErrorResponse
// @Router /value/{id} [put]
func (s *Server) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID")
		return
	}
	req, ok := decodeProduct(w, r)
	if !ok {
		return
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	updated, err := s.products.Update(r.Context(), sess, req.toProduct(id))
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, productNotFound)
			return
		}
		storageFailure(w, r, err, "could not update product")
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(updated))
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse "Invalid ID"
// @Failure 404 {object} ErrorResponse "Product not found"
// @Failure 500 {object} ErrorResponse
// @Router /value/{id} [delete]
func (s *Server) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID")
		return
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	if err := s.products.Delete(r.Context(), sess, id); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, productNotFound)
			return
		}
		storageFailure(w, r, err, "could not delete product")
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Product deleted successfully"})
}
