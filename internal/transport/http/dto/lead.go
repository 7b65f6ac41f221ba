package dto

type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Company string `json:"company,omitempty" validate:"omitempty,max=100"`
	Service string `json:"service,omitempty" validate:"omitempty,max=100"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}
