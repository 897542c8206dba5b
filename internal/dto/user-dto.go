package dto

type CreateUserDTO struct {
	Email      string  `json:"email" validate:"required,email"`
	Name       string  `json:"name" validate:"required"`
	Password   string  `json:"password" validate:"required,min=6"`
	Role       string  `json:"role" validate:"required,user_role"`
	Department *string `json:"department,omitempty"`
	Avatar     *string `json:"avatar,omitempty"`
}

type UpdateUserDTO struct {
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Name       *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Password   *string `json:"password,omitempty" validate:"omitempty,min=6"`
	Role       *string `json:"role,omitempty" validate:"omitempty,user_role"`
	Department *string `json:"department,omitempty"`
	Avatar     *string `json:"avatar,omitempty"`
}
