package handlers

import "github.com/rogerio-castellano/product-values/internal/models"

// ProductRequest is the body accepted by create and update. Pointer fields
// let validation tell a missing field from a zero value. ID is accepted for
// compatibility and ignored.
type ProductRequest struct {
	ID          *int    `json:"id,omitempty"`
	Name        *string `json:"name"`
	Quantity    *int    `json:"quantity"`
	Quality     *string `json:"quality"`
	Description *string `json:"decs"`
}

type ProductResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	Quality     string `json:"quality"`
	Description string `json:"decs"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// toProduct copies the validated request into a product. Callers must run
// validateProduct first.
func (req ProductRequest) toProduct(id int) models.Product {
	return models.Product{
		ID:          id,
		Name:        *req.Name,
		Quantity:    *req.Quantity,
		Quality:     *req.Quality,
		Description: *req.Description,
	}
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Quantity:    p.Quantity,
		Quality:     p.Quality,
		Description: p.Description,
	}
}
