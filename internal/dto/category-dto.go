package dto

type CreateCategoryDTO struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
	Responsible *string `json:"responsible,omitempty"`
}

type UpdateCategoryDTO struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string `json:"description,omitempty"`
	Responsible *string `json:"responsible,omitempty"`
}
