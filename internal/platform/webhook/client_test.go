package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-care-advisor/internal/assessment"
	"pet-care-advisor/internal/pet"
)

func sampleAssessment() *assessment.Assessment {
	return &assessment.Assessment{
		ID:    uuid.New(),
		Pet:   pet.Profile{Name: "Rex", Species: "dog"},
		Input: []string{"seizure", "unresponsive"},
		Result: assessment.DiagnosticResult{
			Emergency:       true,
			EmergencyAlerts: []string{"URGENT: Seizures requires immediate veterinary attention"},
		},
		Emergency: true,
	}
}

func TestSendEmergencyAlert(t *testing.T) {
	var received alertPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := sampleAssessment()
	client := NewClient(srv.URL)
	require.NoError(t, client.SendEmergencyAlert(context.Background(), a))

	assert.Equal(t, a.ID.String(), received.AssessmentID)
	assert.Equal(t, "dog", received.Species)
	assert.Equal(t, a.Input, received.Symptoms)
	assert.Equal(t, assessment.EmergencyDirective, received.Message)
}

func TestSendEmergencyAlertNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.SendEmergencyAlert(context.Background(), sampleAssessment())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestSendEmergencyAlertUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:0")
	err := client.SendEmergencyAlert(context.Background(), sampleAssessment())
	assert.Error(t, err)
}
