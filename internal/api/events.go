package api

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// TeammateList 接受字串或數字形式的隊友 ID
type TeammateList []string

func (l *TeammateList) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("teammates must be an array: %w", err)
	}
	out := make(TeammateList, 0, len(raw))
	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			out = append(out, s)
			continue
		}
		var n json.Number
		if err := json.Unmarshal(r, &n); err != nil {
			return fmt.Errorf("invalid teammate value %s", r)
		}
		if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
			return fmt.Errorf("invalid teammate value %s", r)
		}
		out = append(out, n.String())
	}
	*l = out
	return nil
}

// swagger:model api.RegisterEventRequest
type RegisterEventRequest struct {
	EventID   int          `json:"eventId" validate:"required,gt=0,lte=2147483647" example:"6"`
	Teammates TeammateList `json:"teammates" swaggertype:"array,string" example:"12,15"`
}

// swagger:model api.RegisterEventResponse
type RegisterEventResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Registration successful!"`
	Team    string `json:"team" example:"7,12,15"`
}

// swagger:model api.SlotsTakenResponse
type SlotsTakenResponse struct {
	SlotsTaken int `json:"slotsTaken" example:"4"`
}

// swagger:model api.EventResponse
type EventResponse struct {
	ID    int    `json:"id" example:"1"`
	Name  string `json:"name" example:"Paper Presentation"`
	Date  string `json:"date" example:"14-03-2025"`
	Time  string `json:"time" example:"10:00:00"`
	Venue string `json:"venue" example:"Main Auditorium"`
}
