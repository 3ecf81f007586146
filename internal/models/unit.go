package models

import "time"

type Unit struct {
	ID            string     `json:"id"`
	Status        Status     `json:"status"`
	PlantCode     string     `json:"plant_code"`
	SourceCountry string     `json:"source_country"`
	FlightDate    *time.Time `json:"flight_date,omitempty"`
	// Container refs are additive per stage: assigning a box never clears
	// the earlier tray assignment.
	TrayNumber     *string   `json:"tray_number,omitempty"`
	BoxNumber      *string   `json:"box_number,omitempty"`
	TrackingNumber *string   `json:"tracking_number,omitempty"`
	ReceiverID     *int      `json:"receiver_id,omitempty"`
	SellerID       *int      `json:"seller_id,omitempty"`
	BuyerID        *int      `json:"buyer_id,omitempty"`
	Garden         string    `json:"garden,omitempty"`
	ListingType    string    `json:"listing_type"`
	Quantity       int       `json:"quantity"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ContainerRef returns the unit's container code for the given kind, or nil
// if the unit is ungrouped for that stage.
func (u *Unit) ContainerRef(kind ContainerKind) *string {
	switch kind {
	case ContainerTray:
		return u.TrayNumber
	case ContainerBox:
		return u.BoxNumber
	case ContainerTracking:
		return u.TrackingNumber
	}
	return nil
}

// SetStatusRequest is the body of the batch status endpoint. The batch path
// always uses the plural id-list form.
type SetStatusRequest struct {
	OrderIDs []string `json:"orderIds"`
	Status   Status   `json:"status"`
}

// SetStatusResponse carries the updated per-stage aggregates alongside the
// success flag so screens can refresh their tab counters.
type SetStatusResponse struct {
	Success bool           `json:"success"`
	Updated int            `json:"updated,omitempty"`
	Counts  map[Status]int `json:"counts,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// UnitListResponse is the listByStage read model.
type UnitListResponse struct {
	Data  []*Unit `json:"data"`
	Total int     `json:"total"`
}
