package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/linesmerrill/civic-report-api/api"
	"github.com/linesmerrill/civic-report-api/config"
	"github.com/linesmerrill/civic-report-api/databases"
	"github.com/linesmerrill/civic-report-api/geocode"
	"github.com/linesmerrill/civic-report-api/logging"
	"github.com/linesmerrill/civic-report-api/media"
	"github.com/linesmerrill/civic-report-api/models"
	"github.com/linesmerrill/civic-report-api/triage"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router   *mux.Router
	Config   config.Config
	Geocoder triage.Geocoder
	Media    media.Store
	Signer   Signer
	Limiter  *api.RateLimiter
	Metrics  *api.MetricsCollector
	dbHelper databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	if a.Media == nil {
		a.Media = media.Disabled{}
	}
	if a.Limiter == nil {
		a.Limiter = api.NewRateLimiter(a.Config.RateLimitRequests, a.Config.RateLimitWindow)
	}
	if a.Metrics == nil {
		a.Metrics = api.NewMetricsCollector()
	}

	// setup go-guardian for middleware
	m := api.MiddlewareDB{
		DB:         databases.NewUserDatabase(a.dbHelper),
		Secret:     []byte(a.Config.JWTSecret),
		Expiration: a.Config.JWTExpiration,
	}
	m.SetupGoGuardian()

	reports := databases.NewReportDatabase(a.dbHelper)
	municipalities := databases.NewMunicipalityDatabase(a.dbHelper)
	departments := databases.NewDepartmentDatabase(a.dbHelper)
	uploads := databases.NewUploadDatabase(a.dbHelper)
	svc := triage.NewService(reports, municipalities, departments,
		databases.NewCounterDatabase(a.dbHelper), uploads, a.Geocoder, a.Config.JurisdictionRadiusMeters)

	rep := Report{Service: svc, DB: reports, Media: a.Media, Uploads: uploads}
	j := Jurisdiction{Resolver: svc.Resolver}
	mun := Municipality{DB: municipalities, DDB: departments}
	med := Media{Store: a.Media, Signer: a.Signer, Uploads: uploads}
	st := Stats{DB: reports}
	mh := MetricsHandler{Metrics: a.Metrics}

	authed := func(h http.HandlerFunc) http.Handler { return api.Middleware(h) }
	limited := func(h http.HandlerFunc) http.Handler { return api.Middleware(a.Limiter.Middleware(h)) }
	admin := func(h http.HandlerFunc) http.Handler {
		return api.Middleware(api.RequireRole(models.RoleAdmin, models.RoleSuperAdmin)(h))
	}
	superadmin := func(h http.HandlerFunc) http.Handler {
		return api.Middleware(api.RequireRole(models.RoleSuperAdmin)(h))
	}

	r := mux.NewRouter()
	r.Use(a.Metrics.Middleware)
	if a.Config.RequestTimeout > 0 {
		r.Use(api.TimeoutMiddleware(a.Config.RequestTimeout))
	}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/token", api.Middleware(http.HandlerFunc(m.CreateToken))).Methods("POST")

	apiCreate.Handle("/reports", limited(rep.CreateReportHandler)).Methods("POST")
	apiCreate.Handle("/reports", authed(rep.ReportsHandler)).Methods("GET")
	apiCreate.Handle("/reports/nearby", authed(rep.NearbyReportsHandler)).Methods("GET")
	apiCreate.Handle("/reports/{report_id}", authed(rep.ReportByIDHandler)).Methods("GET")
	apiCreate.Handle("/reports/{report_id}", authed(rep.DeleteReportHandler)).Methods("DELETE")
	apiCreate.Handle("/reports/{report_id}/status", authed(rep.UpdateStatusHandler)).Methods("PATCH")
	apiCreate.Handle("/reports/{report_id}/assign", admin(rep.AssignHandler)).Methods("POST")
	apiCreate.Handle("/reports/{report_id}/comments", authed(rep.CommentHandler)).Methods("POST")
	apiCreate.Handle("/reports/{report_id}/urgency", authed(rep.UrgencyHandler)).Methods("PATCH")
	apiCreate.Handle("/reports/{report_id}/upvote", limited(rep.UpvoteHandler)).Methods("POST")
	apiCreate.Handle("/reports/{report_id}/upvote", limited(rep.RemoveUpvoteHandler)).Methods("DELETE")
	apiCreate.Handle("/reports/{report_id}/feedback", authed(rep.FeedbackHandler)).Methods("POST")

	apiCreate.Handle("/media", limited(med.UploadHandler)).Methods("POST")
	apiCreate.Handle("/media/signature", limited(med.GenerateSignature)).Methods("POST")

	apiCreate.Handle("/jurisdiction", authed(j.ResolveHandler)).Methods("GET")
	apiCreate.Handle("/municipalities", authed(mun.MunicipalitiesHandler)).Methods("GET")
	apiCreate.Handle("/municipalities", superadmin(mun.CreateMunicipalityHandler)).Methods("POST")
	apiCreate.Handle("/municipalities/{municipality_id}/departments", authed(mun.DepartmentsHandler)).Methods("GET")
	apiCreate.Handle("/municipalities/{municipality_id}/departments", admin(mun.CreateDepartmentHandler)).Methods("POST")

	apiCreate.Handle("/stats", authed(st.StatsHandler)).Methods("GET")
	apiCreate.Handle("/metrics", admin(mh.GetMetricsSummary)).Methods("GET")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {
	if err := a.Config.Validate(); err != nil {
		zap.S().With(err).Error("invalid configuration")
		return err
	}

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	err = client.Connect(ctx)
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("civic-report-api has connected to the database")

	if err := databases.EnsureIndexes(ctx, a.dbHelper); err != nil {
		zap.S().With(err).Error("failed to ensure indexes")
		return err
	}

	a.Geocoder = geocode.NewClient(a.Config.GeocoderURL, a.Config.GeocoderUserAgent,
		a.Config.GeocoderTimeout, logging.Sugared(a.Config.Environment))

	if a.Config.CloudinaryURL != "" {
		cld, err := media.NewCloudinary(a.Config.CloudinaryURL, "")
		if err != nil {
			zap.S().With(err).Error("failed to configure cloudinary")
			return err
		}
		a.Media = cld
		a.Signer = cld
	} else {
		zap.S().Warn("CLOUDINARY_URL not set, media uploads are disabled")
	}

	// initialize api router
	a.initializeRoutes()
	return nil
}

// Reports exposes the report store to the scheduler
func (a *App) Reports() databases.ReportDatabase {
	return databases.NewReportDatabase(a.dbHelper)
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
