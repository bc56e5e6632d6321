package api

// swagger:model api.ProfileResponse
type ProfileResponse struct {
	ID            int    `json:"id" example:"12"`
	Name          string `json:"name" example:"Asha"`
	College       string `json:"college" example:"MIT"`
	Year          string `json:"year" example:"3"`
	Accommodation string `json:"accommodation" example:"no"`
	Role          string `json:"role" example:"user"`
	Phone         string `json:"phone" example:"9876543210"`
	QRCodeID      string `json:"qr_code_id" example:"EVT_12"`
}

// swagger:model api.UpdateProfileRequest
type UpdateProfileRequest struct {
	Name          string `json:"name" form:"name" validate:"required" example:"Asha"`
	College       string `json:"college" form:"college" validate:"required" example:"MIT"`
	Year          string `json:"year" form:"year" validate:"required" example:"3"`
	Accommodation string `json:"accommodation" form:"accommodation" validate:"required" example:"yes"`
	Phone         string `json:"phone" form:"phone" validate:"required,digits10" example:"9876543210"`
}

// swagger:model api.PaymentStatusResponse
type PaymentStatusResponse struct {
	PaymentStatus string `json:"payment_status" example:"pending"`
}

// swagger:model api.UserEventsResponse
type UserEventsResponse struct {
	Events []string `json:"events"`
}
