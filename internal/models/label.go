package models

// Label is one rendered shipping label. Image is the base64-encoded rendered
// artifact. A label batch is never persisted; it lives only in the response.
type Label struct {
	OrderID   string `json:"orderId"`
	PlantCode string `json:"plantCode"`
	Image     string `json:"image"`
}

type GenerateLabelsRequest struct {
	OrderIDs []string `json:"orderIds"`
}

// GenerateLabelsResponse carries exactly one label per requested id, in
// request order. A length mismatch is a total failure, never a partial batch.
type GenerateLabelsResponse struct {
	Success bool     `json:"success"`
	BatchID string   `json:"batch_id,omitempty"`
	Labels  []*Label `json:"labels,omitempty"`
	Error   string   `json:"error,omitempty"`
}

type EmailLabelsRequest struct {
	OrderIDs []string `json:"orderIds"`
}

type EmailLabelsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Details struct {
		SentTo string `json:"sentTo"`
	} `json:"details"`
	Error string `json:"error,omitempty"`
}
