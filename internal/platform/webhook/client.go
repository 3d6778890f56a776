package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"pet-care-advisor/internal/assessment"
)

// Client posts emergency alerts to an operator-configured endpoint.
type Client struct {
	URL        string
	httpClient *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		URL: url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type alertPayload struct {
	AssessmentID string   `json:"assessment_id"`
	Species      string   `json:"species"`
	PetName      string   `json:"pet_name,omitempty"`
	Symptoms     []string `json:"symptoms"`
	Alerts       []string `json:"alerts"`
	Message      string   `json:"message"`
}

func (c *Client) SendEmergencyAlert(ctx context.Context, a *assessment.Assessment) error {
	payload := alertPayload{
		AssessmentID: a.ID.String(),
		Species:      a.Pet.Species,
		PetName:      a.Pet.Name,
		Symptoms:     a.Input,
		Alerts:       a.Result.EmergencyAlerts,
		Message:      assessment.EmergencyDirective,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.URL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver emergency alert: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var bodyBytes []byte
		if resp.Body != nil {
			bodyBytes, _ = io.ReadAll(resp.Body)
		}
		return fmt.Errorf("alert webhook returned status: %s, body: %s", resp.Status, string(bodyBytes))
	}

	return nil
}
