package api

import "time"

// swagger:model api.MarkAttendanceRequest
type MarkAttendanceRequest struct {
	QRCodeID string `json:"qr_code_id" form:"qr_code_id" validate:"required" example:"EVT_12"`
	EventID  int    `json:"event_id" form:"event_id" validate:"required,gt=0,lte=2147483647" example:"10"`
}

// swagger:model api.MarkAttendanceResponse
type MarkAttendanceResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Attendance marked successfully!"`
}

// swagger:model api.AttendanceResponse
type AttendanceResponse struct {
	ID        int       `json:"id"`
	UserName  string    `json:"user_name" example:"Asha"`
	College   string    `json:"college" example:"MIT"`
	EventName string    `json:"event_name" example:"Hackathon"`
	Status    string    `json:"attendance_status" example:"present"`
	MarkedAt  time.Time `json:"marked_at"`
}

// swagger:model api.AdminAttendanceResponse
type AdminAttendanceResponse struct {
	Success bool                 `json:"success" example:"true"`
	Data    []AttendanceResponse `json:"data"`
}

// swagger:model api.AdminProfileResponse
type AdminProfileResponse struct {
	Name    string `json:"name" example:"Ravi"`
	Email   string `json:"email" example:"ravi@example.com"`
	College string `json:"college" example:"MIT"`
}
