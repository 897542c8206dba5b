package dto

type CreateTeamDTO struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	MemberIDs   []string `json:"memberIds" validate:"omitempty,dive,required"`
}

type UpdateTeamDTO struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string  `json:"description,omitempty"`
	MemberIDs   []string `json:"memberIds,omitempty" validate:"omitempty,dive,required"`
}
