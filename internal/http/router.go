package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fulfillment-backend/internal/handlers"
	"fulfillment-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	unitHandler *handlers.UnitHandler,
	containerHandler *handlers.ContainerHandler,
	creditHandler *handlers.CreditHandler,
	labelHandler *handlers.LabelHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected API routes - Users (staff profiles)
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.Authenticate)
	usersAPI.HandleFunc("/me", userHandler.Me).Methods("GET")
	usersAPI.HandleFunc("/{id}", userHandler.GetUser).Methods("GET")

	// Protected API routes - Units (stage listings and batch status tagging)
	unitsAPI := r.PathPrefix("/api/units").Subrouter()
	unitsAPI.Use(authMiddleware.Authenticate)
	unitsAPI.HandleFunc("", unitHandler.ListByStage).Methods("GET")
	unitsAPI.HandleFunc("/status", unitHandler.SetStatus).Methods("POST")
	unitsAPI.HandleFunc("/{id}", unitHandler.GetUnit).Methods("GET")

	// Protected API routes - Containers (tray/box/tracking grouping)
	containersAPI := r.PathPrefix("/api/containers").Subrouter()
	containersAPI.Use(authMiddleware.Authenticate)
	containersAPI.HandleFunc("/assign", containerHandler.Assign).Methods("POST")
	containersAPI.HandleFunc("/{kind}/{code}/units", containerHandler.Lookup).Methods("GET")

	// Protected API routes - Credit requests (admin review only)
	creditsAPI := r.PathPrefix("/api/credit-requests").Subrouter()
	creditsAPI.Use(authMiddleware.Authenticate)
	creditsAPI.HandleFunc("", creditHandler.List).Methods("GET")
	creditsAPI.HandleFunc("/{id}/review", authMiddleware.RequireRole("admin")(http.HandlerFunc(creditHandler.Review)).ServeHTTP).Methods("POST")

	// Protected API routes - Labels (never persisted server-side)
	labelsAPI := r.PathPrefix("/api/labels").Subrouter()
	labelsAPI.Use(authMiddleware.Authenticate)
	labelsAPI.HandleFunc("/generate", labelHandler.Generate).Methods("POST")
	labelsAPI.HandleFunc("/email", labelHandler.Email).Methods("POST")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
