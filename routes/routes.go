package routes

import (
	"net/http"

	"civictrack/handler"
	"civictrack/middleware"
	"civictrack/models"
	"civictrack/service"
	"civictrack/utils"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures all API routes.
// Metrics are registered with and served from reg.
func SetupRoutes(
	userService *service.UserService,
	complaintService *service.ComplaintService,
	dashboardService *service.DashboardService,
	reg *prometheus.Registry,
	uploadBasePath string,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.NewHTTPMetrics(reg).Middleware)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userService)
	citizenHandler := handler.NewCitizenHandler(complaintService, dashboardService)
	governmentHandler := handler.NewGovernmentHandler(complaintService, dashboardService)

	authMiddleware := middleware.NewAuthMiddleware(userService)

	api := router.PathPrefix("/api").Subrouter()

	// Auth routes; profile and logout need any valid token
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", authHandler.Login).Methods("POST")
	auth.HandleFunc("/register", authHandler.Register).Methods("POST")
	auth.HandleFunc("/register/government", authHandler.RegisterGovernment).Methods("POST")
	auth.HandleFunc("/forgot-password", authHandler.ForgotPassword).Methods("POST")
	auth.Handle("/profile", authMiddleware.RequireAuth(http.HandlerFunc(authHandler.Profile))).Methods("GET")
	auth.Handle("/logout", authMiddleware.RequireAuth(http.HandlerFunc(authHandler.Logout))).Methods("POST")

	// Citizen routes (citizen tokens only)
	citizen := api.PathPrefix("/citizen").Subrouter()
	citizen.Use(authMiddleware.RequireRole(models.RoleCitizen))
	citizen.HandleFunc("/dashboard", citizenHandler.Dashboard).Methods("GET")
	citizen.HandleFunc("/complaints", citizenHandler.ListComplaints).Methods("GET")
	citizen.HandleFunc("/complaints", citizenHandler.CreateComplaint).Methods("POST")
	citizen.HandleFunc("/complaints/{id}", citizenHandler.GetComplaint).Methods("GET")
	citizen.HandleFunc("/leaderboard", citizenHandler.Leaderboard).Methods("GET")

	// Government routes (government tokens only)
	government := api.PathPrefix("/government").Subrouter()
	government.Use(authMiddleware.RequireRole(models.RoleGovernment))
	government.HandleFunc("/dashboard", governmentHandler.Dashboard).Methods("GET")
	government.HandleFunc("/complaints", governmentHandler.ListComplaints).Methods("GET")
	government.HandleFunc("/complaints/{id}", governmentHandler.GetComplaint).Methods("GET")
	government.HandleFunc("/complaints/{id}/status", governmentHandler.UpdateStatus).Methods("PATCH")

	// Stored complaint photos
	router.PathPrefix(utils.UploadURLPrefix + "/").Handler(
		http.StripPrefix(utils.UploadURLPrefix+"/", http.FileServer(http.Dir(uploadBasePath))),
	).Methods("GET")

	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods("GET")

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	return router
}
