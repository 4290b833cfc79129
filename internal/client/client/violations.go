package client

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/traffichub/internal/client/models"
)

// ListViolations returns the violations recorded for a plate. A vehicle with
// no violations comes back as ErrNotFound carrying the backend's message.
func (c *HTTPClient) ListViolations(ctx context.Context, licensePlate string) ([]models.Violation, error) {
	const op = "list violations"

	plate := strings.TrimSpace(licensePlate)
	if plate == "" {
		return nil, validationError(op, "license plate is required")
	}

	var out []models.Violation
	if err := c.doJSON(ctx, op, http.MethodGet, "/get-violations/"+pathSegment(plate), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetViolation looks up a violation by the identifier as the user typed it.
// Identifiers the backend does not know come back as ErrNotFound.
func (c *HTTPClient) GetViolation(ctx context.Context, id string) (*models.Violation, error) {
	const op = "get violation"

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, validationError(op, "violation id is required")
	}

	var out models.Violation
	if err := c.doJSON(ctx, op, http.MethodGet, "/get-violation/"+pathSegment(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) AddViolation(ctx context.Context, v models.NewViolation) (string, error) {
	const op = "add violation"

	v.LicensePlate = strings.TrimSpace(v.LicensePlate)
	switch {
	case v.LicensePlate == "":
		return "", validationError(op, "license plate is required")
	case strings.TrimSpace(v.ViolationType) == "":
		return "", validationError(op, "violation type is required")
	case strings.TrimSpace(v.Location) == "":
		return "", validationError(op, "location is required")
	case v.FineAmount < models.MinFineAmount:
		return "", validationError(op, fmt.Sprintf("fine amount must be at least %.0f", models.MinFineAmount))
	}
	return c.doMessage(ctx, op, http.MethodPost, "/add-violation", v)
}

// PayFine settles a violation. Card details are sent only for credit card
// payments, with spaces removed from the card number.
func (c *HTTPClient) PayFine(ctx context.Context, id int64, method models.PaymentMethod, card *models.CardDetails) (string, error) {
	const op = "pay fine"

	if id <= 0 {
		return "", validationError(op, "violation id must be positive")
	}
	if !method.Valid() {
		return "", validationError(op, fmt.Sprintf("unknown payment method %q", method))
	}

	req := models.PayFineRequest{PaymentMethod: method}
	if method == models.PaymentCreditCard {
		if card == nil || !card.Complete() {
			return "", validationError(op, "card details are incomplete")
		}
		details := *card
		details.CardNumber = strings.Join(strings.Fields(details.CardNumber), "")
		req.PaymentDetails = &details
	}

	return c.doMessage(ctx, op, http.MethodPut, "/pay-fine/"+strconv.FormatInt(id, 10), req)
}

// AutoDetect streams the image as multipart field image_file and returns the
// backend's outcome message.
func (c *HTTPClient) AutoDetect(ctx context.Context, file Upload) (string, error) {
	const op = "autodetect"

	if file.Reader == nil || file.Name == "" {
		return "", validationError(op, "image file is required")
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("image_file", filepath.Base(file.Name))
		if err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file.Reader); err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		_ = pw.CloseWithError(mw.Close())
	}()

	resp, err := c.do(ctx, op, http.MethodPost, "/autodetect", pr, mw.FormDataContentType())
	if err != nil {
		_ = pr.CloseWithError(err)
		return "", err
	}

	var out models.MessageResponse
	if err := decodeJSON(op, resp, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}
