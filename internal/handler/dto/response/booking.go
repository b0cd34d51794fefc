package response

import (
	"log/slog"
	"time"

	"storeroom-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// Envelope wraps every successful response as {status, data}; list
// endpoints additionally carry a results count.
type Envelope struct {
	Status  string `json:"status"`
	Results *int   `json:"results,omitempty"`
	Data    any    `json:"data"`
}

func Success(data any) Envelope {
	return Envelope{Status: "success", Data: data}
}

func SuccessList(data any, results int) Envelope {
	return Envelope{Status: "success", Results: &results, Data: data}
}

type BookingResponse struct {
	ID        uuid.UUID             `json:"id"`
	UserID    uuid.UUID             `json:"userId"`
	Items     []BookingItemResponse `json:"items"`
	StartDate time.Time             `json:"startDate"`
	EndDate   time.Time             `json:"endDate"`
	Status    string                `json:"status"`
	Note      *string               `json:"notes,omitempty"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

type BookingItemResponse struct {
	ItemID   uuid.UUID `json:"itemId"`
	ItemName string    `json:"itemName"`
	Quantity int       `json:"quantity"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	if err := copier.Copy(&resp, rm); err != nil {
		slog.Error("failed to map booking view", "error", err.Error())
	}
	return &resp
}

func FromBookingViews(rms []*queries.BookingView) []*BookingResponse {
	out := make([]*BookingResponse, len(rms))
	for i, rm := range rms {
		out[i] = FromBookingView(rm)
	}
	return out
}
