package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fulfillment-backend/internal/models"
)

// MailerService posts label batches to the mail gateway that delivers them to
// the print desk inbox.
type MailerService struct {
	client  *http.Client
	baseURL string
	sendTo  string
}

type mailRequest struct {
	To      string          `json:"to"`
	Subject string          `json:"subject"`
	Labels  []*models.Label `json:"labels"`
}

type mailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func NewMailerService(baseURL, sendTo string) *MailerService {
	return &MailerService{
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL: baseURL,
		sendTo:  sendTo,
	}
}

func (s *MailerService) SendLabels(ctx context.Context, labels []*models.Label) (string, error) {
	payload := mailRequest{
		To:      s.sendTo,
		Subject: fmt.Sprintf("Shipping labels (%d)", len(labels)),
		Labels:  labels,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal mail request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/send", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send mail request: %w", err)
	}
	defer resp.Body.Close()

	var mailResp mailResponse
	if err := json.NewDecoder(resp.Body).Decode(&mailResp); err != nil {
		return "", fmt.Errorf("failed to decode mail response: %w", err)
	}
	if !mailResp.Success {
		return "", fmt.Errorf("mail failed: %s", mailResp.Message)
	}
	return s.sendTo, nil
}
