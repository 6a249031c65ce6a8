package quote

import (
	"time"

	"github.com/ntsfreight/client-portal/internal"
	"github.com/ntsfreight/client-portal/internal/core/common/validation"
)

type SubmitQuoteDTO struct {
	CompanyID     string    `json:"company_id"`
	OriginCity    string    `json:"origin_city"`
	OriginState   string    `json:"origin_state"`
	OriginZip     string    `json:"origin_zip,omitempty"`
	DestCity      string    `json:"dest_city"`
	DestState     string    `json:"dest_state"`
	DestZip       string    `json:"dest_zip,omitempty"`
	EquipmentType string    `json:"equipment_type"`
	Commodity     string    `json:"commodity,omitempty"`
	WeightLbs     int64     `json:"weight_lbs,omitempty"`
	PickupDate    time.Time `json:"pickup_date"`
}

// Validate returns the specific stop/equipment/rate code as the top-level
// error code, so clients can branch on Code without digging into Details.
func (d SubmitQuoteDTO) Validate() error {
	if d.CompanyID == "" {
		return internal.NewValidationError("company_id is required", internal.ErrCodeValidationFailed)
	}
	if d.OriginCity == "" || d.OriginState == "" {
		return internal.NewValidationError("origin city and state are required", internal.ErrCodeInvalidStop)
	}
	if d.DestCity == "" || d.DestState == "" {
		return internal.NewValidationError("destination city and state are required", internal.ErrCodeInvalidStop)
	}
	if !validEquipment(d.EquipmentType) {
		return internal.NewValidationError("unknown equipment type", internal.ErrCodeInvalidEquipment)
	}
	if err := validation.ValidatePickupDate(d.PickupDate); err != nil {
		return err
	}
	if err := validation.ValidateWeight(d.WeightLbs); err != nil {
		return err
	}
	return nil
}

func validEquipment(equipment string) bool {
	for _, e := range EquipmentTypes {
		if e == equipment {
			return true
		}
	}
	return false
}

type PriceQuoteDTO struct {
	RateCents int64 `json:"rate_cents"`
}

func (d PriceQuoteDTO) Validate() error {
	if d.RateCents <= 0 {
		return internal.NewValidationError("rate must be positive", internal.ErrCodeInvalidRate)
	}
	if err := validation.ValidateQuoteRate(d.RateCents); err != nil {
		return err
	}
	return nil
}
