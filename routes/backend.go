package routes

import (
	"civictrack/repository"
	"civictrack/service"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

// Backend is the in-memory reference backend: stores, services and router
type Backend struct {
	Users      *service.UserService
	Complaints *service.ComplaintService
	Dashboards *service.DashboardService
	Router     *mux.Router
}

// NewBackend wires empty repositories, services and routes.
// Domain and HTTP metrics are registered with reg.
func NewBackend(jwtSecret string, tokenTTLHours int, uploadBasePath string, reg *prometheus.Registry) *Backend {
	userRepo := repository.NewUserRepository()
	complaintRepo := repository.NewComplaintRepository()

	metrics := service.NewMetricsService(reg)
	b := &Backend{
		Users:      service.NewUserService(userRepo, jwtSecret, tokenTTLHours),
		Complaints: service.NewComplaintService(complaintRepo, userRepo, metrics, uploadBasePath),
		Dashboards: service.NewDashboardService(complaintRepo, userRepo),
	}
	b.Router = SetupRoutes(b.Users, b.Complaints, b.Dashboards, reg, uploadBasePath)
	return b
}
