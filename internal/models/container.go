package models

import "time"

// ContainerKind identifies which fulfillment stage a container belongs to.
type ContainerKind string

const (
	ContainerTray     ContainerKind = "tray"     // sorting
	ContainerBox      ContainerKind = "box"      // packing
	ContainerTracking ContainerKind = "tracking" // shipping
)

// StageStatus returns the status members advance to when grouped into a
// container of this kind.
func (k ContainerKind) StageStatus() Status {
	switch k {
	case ContainerTray:
		return StatusSorted
	case ContainerBox:
		return StatusPacked
	case ContainerTracking:
		return StatusShipping
	}
	return ""
}

type Container struct {
	ID   int           `json:"id"`
	Code string        `json:"code"`
	Kind ContainerKind `json:"kind"`
	// Box metadata
	LengthCM *float64 `json:"length_cm,omitempty"`
	WidthCM  *float64 `json:"width_cm,omitempty"`
	HeightCM *float64 `json:"height_cm,omitempty"`
	WeightKG *float64 `json:"weight_kg,omitempty"`
	// Tracking metadata
	DeliveryDate *string   `json:"delivery_date,omitempty"`
	DeliveryTime *string   `json:"delivery_time,omitempty"`
	IsDelayed    bool      `json:"is_delayed"`
	CreatedAt    time.Time `json:"created_at"`
}

// BoxDetails carries the packing-stage container metadata.
type BoxDetails struct {
	BoxNumber string  `json:"boxNumber"`
	LengthCM  float64 `json:"lengthCm"`
	WidthCM   float64 `json:"widthCm"`
	HeightCM  float64 `json:"heightCm"`
	WeightKG  float64 `json:"weightKg"`
}

// AssignContainerRequest groups units into a tray, box or tracking shipment.
// Exactly one of the three container fields is set; the same request shape is
// used for a single unit and for a full selection.
type AssignContainerRequest struct {
	OrderIDs          []string    `json:"orderIds"`
	SortingTrayNumber string      `json:"sortingTrayNumber,omitempty"`
	BoxDetails        *BoxDetails `json:"boxDetails,omitempty"`
	TrackingNumber    string      `json:"trackingNumber,omitempty"`
	DeliveryDate      string      `json:"deliveryDate,omitempty"`
	DeliveryTime      string      `json:"deliveryTime,omitempty"`
	IsDelayed         bool        `json:"isDelayed,omitempty"`
}

// Kind resolves which container kind the request addresses.
func (r *AssignContainerRequest) Kind() ContainerKind {
	switch {
	case r.SortingTrayNumber != "":
		return ContainerTray
	case r.BoxDetails != nil:
		return ContainerBox
	case r.TrackingNumber != "":
		return ContainerTracking
	}
	return ""
}

// Code returns the human-entered container code for the request.
func (r *AssignContainerRequest) Code() string {
	switch {
	case r.SortingTrayNumber != "":
		return r.SortingTrayNumber
	case r.BoxDetails != nil:
		return r.BoxDetails.BoxNumber
	default:
		return r.TrackingNumber
	}
}

type AssignContainerResponse struct {
	Success     bool   `json:"success"`
	ContainerID int    `json:"container_id,omitempty"`
	Error       string `json:"error,omitempty"`
}

// ContainerDetail is the lookup-by-code read model. Count and flight date are
// computed server-side from current members at read time.
type ContainerDetail struct {
	Container  *Container `json:"container"`
	Data       []*Unit    `json:"data"`
	UnitCount  int        `json:"unit_count"`
	FlightDate *time.Time `json:"flight_date,omitempty"`
}
