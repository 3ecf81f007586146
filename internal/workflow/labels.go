package workflow

import (
	"context"
	"sync"

	"fulfillment-backend/internal/models"
)

// LabelFlow drives the generate -> view -> send label sequence. The two
// steps are separate calls, not one transaction: a failed send leaves the
// generated batch viewable, and retry re-invokes only the send step.
type LabelFlow struct {
	mu     sync.Mutex
	client *Client
	ids    []string
	labels []*models.Label
}

func NewLabelFlow(client *Client, orderIDs []string) *LabelFlow {
	ids := make([]string, len(orderIDs))
	copy(ids, orderIDs)
	return &LabelFlow{client: client, ids: ids}
}

// Generate renders the batch. The client re-verifies length equality; a
// short batch is a total failure and nothing becomes viewable.
func (f *LabelFlow) Generate(ctx context.Context) error {
	f.mu.Lock()
	ids := f.ids
	f.mu.Unlock()
	if len(ids) == 0 {
		return ValidationError{Message: "Nothing selected."}
	}

	resp, err := f.client.GenerateLabels(ctx, ids)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.labels = resp.Labels
	f.mu.Unlock()
	return nil
}

// Labels returns the generated batch, in request order. Empty until a
// successful Generate.
func (f *LabelFlow) Labels() []*models.Label {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Label, len(f.labels))
	copy(out, f.labels)
	return out
}

// Send emails the batch to the print desk. It requires a prior successful
// Generate; a send failure does not invalidate the batch.
func (f *LabelFlow) Send(ctx context.Context) (sentTo string, err error) {
	f.mu.Lock()
	generated := len(f.labels) > 0
	ids := f.ids
	f.mu.Unlock()
	if !generated {
		return "", ValidationError{Message: "Generate labels before sending."}
	}

	resp, err := f.client.EmailLabels(ctx, ids)
	if err != nil {
		return "", err
	}
	return resp.Details.SentTo, nil
}
