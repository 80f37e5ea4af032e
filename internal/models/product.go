package models

// Product represents a product row in the products table.
type Product struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	Quality     string `json:"quality"`
	Description string `json:"decs"`
}
