package fleet

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fleetflow-service/internal/domain/fleet"
	"fleetflow-service/internal/engine"
	service "fleetflow-service/internal/service/fleet"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nopStore satisfies the service store contracts without a database.
type nopStore struct{}

func (nopStore) Load(ctx context.Context) (*fleet.Snapshot, error)             { return &fleet.Snapshot{}, nil }
func (nopStore) SaveVehicle(ctx context.Context, v *fleet.Vehicle) error       { return nil }
func (nopStore) DeleteVehicle(ctx context.Context, id string) error            { return nil }
func (nopStore) SaveDriver(ctx context.Context, d *fleet.Driver) error         { return nil }
func (nopStore) DeleteDriver(ctx context.Context, id string) error             { return nil }
func (nopStore) SaveTrip(ctx context.Context, t *fleet.Trip) error             { return nil }
func (nopStore) SaveMaintenance(ctx context.Context, m *fleet.MaintenanceRecord) error {
	return nil
}
func (nopStore) SaveFuelLog(ctx context.Context, f *fleet.FuelLog) error { return nil }
func (nopStore) SaveExpense(ctx context.Context, x *fleet.Expense) error { return nil }
func (nopStore) SaveTripTransition(ctx context.Context, t *fleet.Trip, v *fleet.Vehicle, d *fleet.Driver) error {
	return nil
}
func (nopStore) SaveMaintenanceResult(ctx context.Context, m *fleet.MaintenanceRecord, v *fleet.Vehicle) error {
	return nil
}
func (nopStore) SaveIncidentResult(ctx context.Context, inc *fleet.Incident, v *fleet.Vehicle, t *fleet.Trip, d *fleet.Driver) error {
	return nil
}

type nopActivity struct{}

func (nopActivity) Append(ctx context.Context, a *fleet.Activity) error { return nil }
func (nopActivity) Recent(ctx context.Context, limit int) ([]fleet.Activity, error) {
	return nil, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newVehicleRouter(t *testing.T) (*gin.Engine, *service.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := service.NewService(engine.New(nil), nopStore{}, nopActivity{}, nil, nil)
	h := NewVehicleHandler(svc)

	r := gin.New()
	r.GET("/vehicles", h.ListVehicles)
	r.GET("/vehicles/:id", h.GetVehicle)
	r.POST("/vehicles", h.CreateVehicle)
	return r, svc
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestCreateVehicle_Created(t *testing.T) {
	r, _ := newVehicleRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/vehicles", fleet.CreateVehicleRequest{
		Name:         "Volvo FH16",
		LicensePlate: "ka-01-ab-1234",
		MaxCapacity:  25000,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "vehicle created", env.Message)

	var v fleet.Vehicle
	require.NoError(t, json.Unmarshal(env.Data, &v))
	assert.Equal(t, "KA-01-AB-1234", v.LicensePlate)
	assert.Equal(t, fleet.VehicleAvailable, v.Status)
}

func TestCreateVehicle_ValidationError(t *testing.T) {
	r, _ := newVehicleRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/vehicles", fleet.CreateVehicleRequest{Name: "No Plate"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "required")
}

func TestCreateVehicle_DuplicatePlateConflict(t *testing.T) {
	r, _ := newVehicleRouter(t)

	_, env := doJSON(t, r, http.MethodPost, "/vehicles", fleet.CreateVehicleRequest{
		Name: "Volvo FH16", LicensePlate: "KA-01-AB-1234",
	})
	require.True(t, env.Success)

	w, env := doJSON(t, r, http.MethodPost, "/vehicles", fleet.CreateVehicleRequest{
		Name: "Tata Prima", LicensePlate: "ka-01-ab-1234",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, env.Message, "already exists")
}

func TestGetVehicle_NotFound(t *testing.T) {
	r, _ := newVehicleRouter(t)

	w, env := doJSON(t, r, http.MethodGet, "/vehicles/v999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
}

func TestListVehicles_Envelope(t *testing.T) {
	r, svc := newVehicleRouter(t)

	_, err := svc.AddVehicle(context.Background(), fleet.CreateVehicleRequest{
		Name: "Volvo FH16", LicensePlate: "KA-01",
	})
	require.NoError(t, err)

	w, env := doJSON(t, r, http.MethodGet, "/vehicles", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Vehicles []fleet.Vehicle `json:"vehicles"`
		Count    int             `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 1, data.Count)
	require.Len(t, data.Vehicles, 1)
}
