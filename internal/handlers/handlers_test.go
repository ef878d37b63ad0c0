package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/netdash/apiserver/internal/services"
	"github.com/netdash/apiserver/types"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type stubUserRepo struct {
	user types.User
	err  error
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (types.User, error) {
	return s.user, s.err
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (types.User, error) {
	return s.user, s.err
}

func (s *stubUserRepo) GetByPhone(ctx context.Context, phone string) (types.User, error) {
	return s.user, s.err
}

func (s *stubUserRepo) TouchLastLogin(ctx context.Context, userID int) error {
	return nil
}

type stubCountsRepo struct {
	counts types.OwnerCounts
}

func (s *stubCountsRepo) OwnerCounts(ctx context.Context, ownerID int) (types.OwnerCounts, error) {
	return s.counts, nil
}

type stubDeviceRepo struct {
	devices []types.Device
	total   int
	updated types.Device
	err     error
}

func (s *stubDeviceRepo) List(ctx context.Context, ownerID int, search string, offset, limit int) ([]types.Device, int, error) {
	return s.devices, s.total, s.err
}

func (s *stubDeviceRepo) Top(ctx context.Context, ownerID, limit int) ([]types.Device, error) {
	return s.devices, s.err
}

func (s *stubDeviceRepo) UpdateMeta(ctx context.Context, ownerID, deviceID int, name, location string) (types.Device, error) {
	return s.updated, s.err
}

type stubDashboardRepo struct {
	counts types.DashboardCounts
	err    error
}

func (s *stubDashboardRepo) DashboardCounts(ctx context.Context, ownerID int) (types.DashboardCounts, error) {
	return s.counts, s.err
}

func newTestRouter(users services.UserRepository, counts *stubCountsRepo, devices *stubDeviceRepo, dashboard *stubDashboardRepo) *chi.Mux {
	log := testLogger()

	router := chi.NewRouter()
	router.NotFound(NotFound)
	router.MethodNotAllowed(MethodNotAllowed)
	router.Route("/api", func(r chi.Router) {
		AuthRouter(r, services.NewAuthService(users, counts), log)
		r.Route("/mikrotiks", func(r chi.Router) {
			DeviceRouter(r, services.NewDeviceService(devices), log)
		})
		r.Route("/dashboard-stats", func(r chi.Router) {
			DashboardRouter(r, services.NewDashboardService(dashboard, devices), log)
		})
	})
	return router
}

func doRequest(t *testing.T, router http.Handler, method, target string, body io.Reader) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var parsed Response
	if err := json.Unmarshal(rec.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("invalid response body %q: %v", rec.Body.String(), err)
	}
	return rec, parsed
}
