package contracts

import "github.com/Toston-App/lake-sub000/internal/domain/category"

type CategoryCreateRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Icon     string `json:"icon" binding:"omitempty,max=50"`
	IsIncome bool   `json:"is_income"`
}

type SubcategoryCreateRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type CategoryResponse struct {
	Message  string             `json:"message,omitempty"`
	Category *category.Category `json:"category"`
}

type SubcategoryResponse struct {
	Message     string                `json:"message,omitempty"`
	Subcategory *category.Subcategory `json:"subcategory"`
}

type CategoryListResponse struct {
	Categories []*category.Category `json:"categories"`
	Total      int                  `json:"total"`
}
