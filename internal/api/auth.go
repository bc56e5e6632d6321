package api

// swagger:model api.RegisterRequest
type RegisterRequest struct {
	Name          string `json:"name" form:"name" validate:"required" example:"Asha"`
	College       string `json:"college" form:"college" validate:"required" example:"MIT"`
	Department    string `json:"department" form:"department" example:"CSE"`
	RegNo         string `json:"reg_no" form:"reg_no" example:"21CS001"`
	Year          string `json:"year" form:"year" example:"3"`
	Phone         string `json:"phone" form:"phone" validate:"digits10" example:"9876543210"`
	Email         string `json:"email" form:"email" validate:"required,email" example:"asha@example.com"`
	Password      string `json:"password" form:"password" validate:"required,min=6" example:"Secret123!"`
	Accommodation string `json:"accommodation" form:"accommodation" example:"no"`
	Role          string `json:"role" form:"role" validate:"omitempty,oneof=user admin" example:"user"`
	AdminKey      string `json:"admin_key" form:"admin_key" example:""`
	TransactionID string `json:"transid" form:"transid" validate:"digits12" example:"123456789012"`
	PassType      string `json:"Pass" form:"Pass" example:"single"`
}

// swagger:model api.RegisterResponse
type RegisterResponse struct {
	Message  string `json:"message" example:"User registered successfully!"`
	Token    string `json:"token"`
	QRCodeID string `json:"qr_code_id" example:"EVT_12"`
}

// swagger:model api.LoginRequest
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email" example:"asha@example.com"`
	Password string `json:"password" form:"password" validate:"required" example:"Secret123!"`
}

// swagger:model api.LoginResponse
type LoginResponse struct {
	Message   string `json:"message" example:"Logged in successfully"`
	Role      string `json:"role" example:"user"`
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in" example:"3600"`
}

// swagger:model api.ForgotPasswordRequest
type ForgotPasswordRequest struct {
	Email string `json:"email" form:"email" validate:"required,email" example:"asha@example.com"`
}

// swagger:model api.ForgotPasswordResponse
type ForgotPasswordResponse struct {
	Message      string `json:"message" example:"Reset token generated successfully!"`
	Note         string `json:"note"`
	RandomString string `json:"randomString" example:"a1b2c"`
	ExpiresIn    string `json:"expiresIn" example:"1 hour"`
}

// swagger:model api.ResetPasswordRequest
type ResetPasswordRequest struct {
	Email       string `json:"email" form:"email" validate:"required,email" example:"asha@example.com"`
	ResetToken  string `json:"resetToken" form:"resetToken" validate:"required" example:"9876543210a1b2c"`
	NewPassword string `json:"newPassword" form:"newPassword" validate:"required,min=6" example:"N3wSecret!"`
}
