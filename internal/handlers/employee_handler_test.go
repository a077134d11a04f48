package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/visaflow/backend/internal/models"
	"github.com/visaflow/backend/validators"
)

type env struct {
	echo       *echo.Echo
	employees  *fakeEmployeeRepo
	notifs     *fakeNotificationRepo
	sweeps     *fakeSweepRepo
	employeeH  *EmployeeHandler
	notifH     *NotificationHandler
	dashboardH *DashboardHandler
}

func newEnv() *env {
	e := echo.New()
	e.Validator = validators.NewValidator()

	employees := &fakeEmployeeRepo{}
	notifs := &fakeNotificationRepo{}
	sweeps := &fakeSweepRepo{}
	sweeper := NewSweeper(employees, notifs, sweeps, zap.NewNop())

	return &env{
		echo:       e,
		employees:  employees,
		notifs:     notifs,
		sweeps:     sweeps,
		employeeH:  NewEmployeeHandler(employees, sweeper, zap.NewNop()),
		notifH:     NewNotificationHandler(notifs, sweeps, sweeper),
		dashboardH: NewDashboardHandler(employees),
	}
}

func (te *env) request(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return te.echo.NewContext(req, rec), rec
}

func futureDate(offset int) string {
	return time.Now().AddDate(0, 0, offset).Format("2006-01-02")
}

func TestCreateEmployeeDerivesStatusAndSweeps(t *testing.T) {
	te := newEnv()
	body := `{
		"fullName": "Charlie Davis",
		"employeeCode": "EMP003",
		"visaType": "Tourist",
		"visaExpiryDate": "` + futureDate(5) + `",
		"healthCardExpiryDate": "` + futureDate(40) + `",
		"labourCardExpiryDate": "` + futureDate(-3) + `"
	}`
	c, rec := te.request(http.MethodPost, "/api/v1/employees", body)

	require.NoError(t, te.employeeH.CreateEmployee(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Employee
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "EXPIRED", created.Status) // worst of CRITICAL/VALID/EXPIRED
	assert.NotEmpty(t, created.ID)

	// The write triggered a sweep: critical visa + expired labour card.
	assert.Len(t, te.notifs.notifications, 2)
	require.Len(t, te.sweeps.runs, 1)
	assert.Equal(t, 2, te.sweeps.runs[0].Created)
}

func TestCreateEmployeeDuplicateCodeConflicts(t *testing.T) {
	te := newEnv()
	te.employees.employees = []models.Employee{{ID: "e1", EmployeeCode: "EMP001", FullName: "Alice Johnson"}}

	body := `{"fullName": "Someone Else", "employeeCode": "EMP001"}`
	c, _ := te.request(http.MethodPost, "/api/v1/employees", body)

	err := te.employeeH.CreateEmployee(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
}

func TestCreateEmployeeRejectsBadDate(t *testing.T) {
	te := newEnv()
	body := `{"fullName": "Alice Johnson", "visaExpiryDate": "03/15/2026"}`
	c, _ := te.request(http.MethodPost, "/api/v1/employees", body)

	err := te.employeeH.CreateEmployee(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestGetEmployeesSortedWithFreshStatus(t *testing.T) {
	te := newEnv()
	te.employees.employees = []models.Employee{
		{ID: "e1", FullName: "Alice Johnson", VisaExpiryDate: futureDate(120), HealthCardExpiryDate: futureDate(100), LabourCardExpiryDate: futureDate(90)},
		{ID: "e2", FullName: "Charlie Davis", VisaExpiryDate: futureDate(5), HealthCardExpiryDate: futureDate(40), LabourCardExpiryDate: futureDate(40)},
	}

	c, rec := te.request(http.MethodGet, "/api/v1/employees", "")
	require.NoError(t, te.employeeH.GetEmployees(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []models.Employee
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	// Soonest visa expiry first.
	assert.Equal(t, "e2", got[0].ID)
	assert.Equal(t, "CRITICAL", got[0].Status)
	assert.Equal(t, "VALID", got[1].Status)
}

func TestGetEmployeeMissingDateIsUnknown(t *testing.T) {
	te := newEnv()
	te.employees.employees = []models.Employee{
		{ID: "e1", FullName: "Diana Evans", VisaExpiryDate: futureDate(120), LabourCardExpiryDate: futureDate(90)},
	}

	c, rec := te.request(http.MethodGet, "/api/v1/employees/e1", "")
	c.SetParamNames("id")
	c.SetParamValues("e1")
	require.NoError(t, te.employeeH.GetEmployee(c))

	var got models.Employee
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "UNKNOWN", got.Status)
}

func TestUpdateEmployeeNotFound(t *testing.T) {
	te := newEnv()
	c, _ := te.request(http.MethodPut, "/api/v1/employees/missing", `{"fullName": "New Name"}`)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	err := te.employeeH.UpdateEmployee(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestUpdateEmployeeRecomputesStatus(t *testing.T) {
	te := newEnv()
	te.employees.employees = []models.Employee{
		{ID: "e1", FullName: "Bob Smith", VisaExpiryDate: futureDate(120), HealthCardExpiryDate: futureDate(100), LabourCardExpiryDate: futureDate(90)},
	}

	body := `{"visaExpiryDate": "` + futureDate(25) + `"}`
	c, rec := te.request(http.MethodPut, "/api/v1/employees/e1", body)
	c.SetParamNames("id")
	c.SetParamValues("e1")
	require.NoError(t, te.employeeH.UpdateEmployee(c))

	var got models.Employee
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "WARNING", got.Status)

	// The update sweep caught the visa entering WARNING.
	require.Len(t, te.notifs.notifications, 1)
	assert.Equal(t, models.SeverityWarning, te.notifs.notifications[0].Severity)
}

func TestUpdateEmployeeClearsDateWithEmptyString(t *testing.T) {
	te := newEnv()
	te.employees.employees = []models.Employee{
		{ID: "e1", FullName: "Bob Smith", VisaExpiryDate: futureDate(120), HealthCardExpiryDate: futureDate(100), LabourCardExpiryDate: futureDate(-3)},
	}

	// Blank out a mistaken labour-card date; omitted fields stay put.
	c, rec := te.request(http.MethodPut, "/api/v1/employees/e1", `{"labourCardExpiryDate": ""}`)
	c.SetParamNames("id")
	c.SetParamValues("e1")
	require.NoError(t, te.employeeH.UpdateEmployee(c))

	var got models.Employee
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Empty(t, got.LabourCardExpiryDate)
	assert.Equal(t, "Bob Smith", got.FullName)
	assert.Equal(t, futureDate(120), got.VisaExpiryDate)
	// EXPIRED gave way to UNKNOWN once the bad date was removed.
	assert.Equal(t, "UNKNOWN", got.Status)
	assert.Empty(t, te.employees.employees[0].LabourCardExpiryDate)
}

func TestGetEmployeesMissingVisaDateSortsLast(t *testing.T) {
	te := newEnv()
	te.employees.employees = []models.Employee{
		{ID: "e1", FullName: "Diana Evans", HealthCardExpiryDate: futureDate(100), LabourCardExpiryDate: futureDate(90)},
		{ID: "e2", FullName: "Alice Johnson", VisaExpiryDate: futureDate(120), HealthCardExpiryDate: futureDate(100), LabourCardExpiryDate: futureDate(90)},
	}

	c, rec := te.request(http.MethodGet, "/api/v1/employees", "")
	require.NoError(t, te.employeeH.GetEmployees(c))

	var got []models.Employee
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "e2", got[0].ID)
	assert.Equal(t, "e1", got[1].ID) // no visa date sorts after dated records
}

func TestDeleteEmployeeKeepsNotificationHistory(t *testing.T) {
	te := newEnv()
	te.employees.employees = []models.Employee{{ID: "e1", FullName: "Bob Smith"}}
	te.notifs.notifications = []models.Notification{{ID: "n1", EmployeeID: "e1", EmployeeName: "Bob Smith"}}

	c, rec := te.request(http.MethodDelete, "/api/v1/employees/e1", "")
	c.SetParamNames("id")
	c.SetParamValues("e1")
	require.NoError(t, te.employeeH.DeleteEmployee(c))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Empty(t, te.employees.employees)
	assert.Len(t, te.notifs.notifications, 1) // weak reference, no cascade
}
