package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kosherspect/kosherspect-backend/api/controllers"
	"github.com/kosherspect/kosherspect-backend/api/middleware"
	"github.com/kosherspect/kosherspect-backend/internal/factories"
	"github.com/kosherspect/kosherspect-backend/internal/inspections"
	"github.com/kosherspect/kosherspect-backend/internal/reports"
	"github.com/kosherspect/kosherspect-backend/internal/uploads"
	"github.com/kosherspect/kosherspect-backend/internal/wizard"
	"github.com/kosherspect/kosherspect-backend/pkg/config"
	"github.com/kosherspect/kosherspect-backend/pkg/db"
	"github.com/kosherspect/kosherspect-backend/pkg/logger"
	"github.com/kosherspect/kosherspect-backend/pkg/metrics"
	"github.com/kosherspect/kosherspect-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	factoryService factories.Service,
	inspectionService inspections.Service,
	wizardService wizard.Service,
	reportService reports.Service,
	uploadService uploads.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.Metrics(httpMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, redisP, logg))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/inspections", func(r chi.Router) {
			r.Get("/", controllers.InspectionList(inspectionService, logg))
			r.Get("/stats", controllers.InspectionStats(inspectionService, logg))
			r.Get("/search", controllers.InspectionSearch(inspectionService, logg))
			r.Get("/filter", controllers.InspectionFilter(inspectionService, logg))
			r.Post("/", controllers.InspectionCreate(inspectionService, logg))
			r.Get("/{id}", controllers.InspectionGet(inspectionService, logg))
			r.Patch("/{id}", controllers.InspectionUpdate(inspectionService, logg))
			r.Delete("/{id}", controllers.InspectionDelete(inspectionService, logg))
			r.Get("/{id}/report", controllers.ReportDownload(reportService, logg))
			r.Get("/{id}/report/preview", controllers.ReportPreview(reportService, logg))
		})

		r.Route("/factories", func(r chi.Router) {
			r.Get("/", controllers.FactoryList(factoryService, logg))
			r.Get("/search", controllers.FactorySearch(factoryService, logg))
			r.Post("/", controllers.FactoryCreate(factoryService, logg))
			r.Get("/{id}", controllers.FactoryGet(factoryService, logg))
			r.Put("/{id}", controllers.FactoryUpdate(factoryService, logg))
			r.Delete("/{id}", controllers.FactoryDelete(factoryService, logg))
		})

		r.Route("/wizard/sessions", func(r chi.Router) {
			r.Post("/", controllers.WizardStart(wizardService, logg))
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", controllers.WizardGet(wizardService, logg))
				r.Post("/select-factory", controllers.WizardSelectFactory(wizardService, logg))
				r.Post("/steps/{step}", controllers.WizardApplyStep(wizardService, logg))
				r.Post("/navigate", controllers.WizardNavigate(wizardService, logg))
				r.Post("/draft", controllers.WizardSaveDraft(wizardService, logg))
				r.Post("/complete", controllers.WizardComplete(wizardService, logg))
			})
		})

		r.Route("/upload", func(r chi.Router) {
			r.Post("/photos", controllers.UploadPhotos(uploadService, logg))
			r.Post("/documents", controllers.UploadDocuments(uploadService, logg))
		})
	})

	// Uploaded files are served straight off the disk directory the upload
	// service writes into.
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Uploads.Dir)))
	r.Method(http.MethodGet, "/uploads/*", fileServer)

	return r
}
