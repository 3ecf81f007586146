package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"

	"fulfillment-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf/v2"
)

// LabelMailer dispatches a rendered label batch to the print desk mailbox.
// *MailerService satisfies it.
type LabelMailer interface {
	SendLabels(ctx context.Context, labels []*models.Label) (sentTo string, err error)
}

type LabelService struct {
	Units  UnitStore
	Mailer LabelMailer
}

func NewLabelService(units UnitStore, mailer LabelMailer) *LabelService {
	return &LabelService{Units: units, Mailer: mailer}
}

// Generate renders one label per requested unit, in request order. The batch
// is all-or-nothing: if any unit is unknown or any render fails, no labels
// are returned. The result is never persisted.
func (s *LabelService) Generate(ctx context.Context, orderIDs []string) (string, []*models.Label, error) {
	if len(orderIDs) == 0 {
		return "", nil, errors.New("no unit ids provided")
	}

	units, err := s.Units.GetByIDs(ctx, orderIDs)
	if err != nil {
		return "", nil, err
	}
	byID := make(map[string]*models.Unit, len(units))
	for _, u := range units {
		byID[u.ID] = u
	}

	labels := make([]*models.Label, 0, len(orderIDs))
	for _, id := range orderIDs {
		u, ok := byID[id]
		if !ok {
			return "", nil, fmt.Errorf("unit %s not found", id)
		}
		image, err := renderLabel(u)
		if err != nil {
			return "", nil, fmt.Errorf("rendering label for %s: %w", id, err)
		}
		labels = append(labels, &models.Label{
			OrderID:   u.ID,
			PlantCode: u.PlantCode,
			Image:     image,
		})
	}

	if len(labels) != len(orderIDs) {
		return "", nil, fmt.Errorf("rendered %d labels for %d units", len(labels), len(orderIDs))
	}

	batchID := uuid.NewString()
	log.Printf("[Labels] generated batch %s (%d labels)", batchID, len(labels))
	return batchID, labels, nil
}

// Email regenerates the batch and hands it to the mailer. Generation failure
// fails the call before anything is dispatched.
func (s *LabelService) Email(ctx context.Context, orderIDs []string) (string, error) {
	_, labels, err := s.Generate(ctx, orderIDs)
	if err != nil {
		return "", err
	}
	sentTo, err := s.Mailer.SendLabels(ctx, labels)
	if err != nil {
		return "", err
	}
	log.Printf("[Labels] emailed %d labels to %s", len(labels), sentTo)
	return sentTo, nil
}

// renderLabel draws a 100x62mm thermal label and returns it base64-encoded.
func renderLabel(u *models.Unit) (string, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: 100, Ht: 62},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 22)
	pdf.CellFormat(0, 12, u.PlantCode, "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, u.ID, "", 1, "C", false, 0, "")

	line := u.SourceCountry
	if u.FlightDate != nil {
		line += "  " + u.FlightDate.Format("2006-01-02")
	}
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 7, line, "", 1, "C", false, 0, "")

	if u.BoxNumber != nil {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 9, "BOX "+*u.BoxNumber, "", 1, "C", false, 0, "")
	}
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Qty %d", u.Quantity), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
