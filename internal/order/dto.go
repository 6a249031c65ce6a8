package order

import (
	"github.com/ntsfreight/client-portal/internal"
)

type UpdateStatusDTO struct {
	Status string `json:"status"`
}

func (d UpdateStatusDTO) Validate() error {
	switch d.Status {
	case StatusBooked, StatusInTransit, StatusDelivered, StatusCancelled:
		return nil
	}
	return internal.NewValidationFieldError("status", "unknown order status", internal.ErrCodeValidationFailed)
}
