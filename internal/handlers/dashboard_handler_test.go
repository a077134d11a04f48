package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visaflow/backend/internal/models"
)

func TestDashboardStats(t *testing.T) {
	te := newEnv()
	te.employees.employees = []models.Employee{
		// valid across the board
		{ID: "e1", VisaExpiryDate: futureDate(120), HealthCardExpiryDate: futureDate(100), LabourCardExpiryDate: futureDate(90)},
		// warning visa
		{ID: "e2", VisaExpiryDate: futureDate(25), HealthCardExpiryDate: futureDate(60), LabourCardExpiryDate: futureDate(60)},
		// critical visa
		{ID: "e3", VisaExpiryDate: futureDate(5), HealthCardExpiryDate: futureDate(40), LabourCardExpiryDate: futureDate(40)},
		// expired health card
		{ID: "e4", VisaExpiryDate: futureDate(60), HealthCardExpiryDate: futureDate(-2), LabourCardExpiryDate: futureDate(60)},
		// missing labour card date -> aggregate UNKNOWN, one unknown document
		{ID: "e5", VisaExpiryDate: futureDate(60), HealthCardExpiryDate: futureDate(60)},
	}

	c, rec := te.request(http.MethodGet, "/api/v1/dashboard/stats", "")
	require.NoError(t, te.dashboardH.GetStats(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			TotalEmployees   int            `json:"totalEmployees"`
			Expiring30Days   int            `json:"expiring30Days"`
			Expiring7Days    int            `json:"expiring7Days"`
			Expired          int            `json:"expired"`
			UnknownDocuments int            `json:"unknownDocuments"`
			Distribution     map[string]int `json:"distribution"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, 5, resp.Data.TotalEmployees)
	assert.Equal(t, 1, resp.Data.Expiring30Days)
	assert.Equal(t, 1, resp.Data.Expiring7Days)
	assert.Equal(t, 1, resp.Data.Expired)
	assert.Equal(t, 1, resp.Data.UnknownDocuments)
	assert.Equal(t, 1, resp.Data.Distribution["VALID"])
	assert.Equal(t, 1, resp.Data.Distribution["UNKNOWN"])
}
