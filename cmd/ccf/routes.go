package main

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	adminrecreate "ccf-analysis/http-server/admin/recreate"
	adminstats "ccf-analysis/http-server/admin/stats"
	admintruncate "ccf-analysis/http-server/admin/truncate"
	getanalysis "ccf-analysis/http-server/analysis/get"
	shipto "ccf-analysis/http-server/analysis/ship-to"
	generate_excel "ccf-analysis/http-server/generate-report/generate-excel"
	importdata "ccf-analysis/http-server/import/upload"
	clearsim "ccf-analysis/http-server/simulation/clear"
	getsim "ccf-analysis/http-server/simulation/get"
	runsim "ccf-analysis/http-server/simulation/run"
	getvars "ccf-analysis/http-server/variables/get"
	savevars "ccf-analysis/http-server/variables/save"
	getvolumes "ccf-analysis/http-server/volumes/get"
	"ccf-analysis/internal/config"
	"ccf-analysis/internal/middleware/auth"
	"ccf-analysis/internal/service/analysis"
	"ccf-analysis/internal/service/ingest"
	"ccf-analysis/internal/service/report"
	"ccf-analysis/internal/service/simulation"
	"ccf-analysis/internal/storage/sqlite"
)

func routes(
	cfg config.Config,
	log *slog.Logger,
	storage *sqlite.Storage,
	ingestService *ingest.Service,
	engine *simulation.Engine,
	analysisService *analysis.Service,
	reportService *report.ReportService,
) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Post("/api/import", importdata.ImportData(log, ingestService))

	router.Post("/api/process-simulation", runsim.RunSimulation(log, engine, storage))
	router.Get("/api/process-simulation", getsim.GetLaborStatistics(log, storage))
	router.Delete("/api/process-simulation", clearsim.ClearLaborStatistics(log, storage))
	router.Get("/api/labor-statistics", getsim.GetLaborStatistics(log, storage))

	router.Get("/api/transaction-volumes", getvolumes.GetTransactionVolumes(log, storage))

	router.Get("/api/analysis", getanalysis.GetAnalysis(log, analysisService))
	router.Get("/api/ship-to-details", shipto.GetShipToDetails(log, storage))

	router.Get("/api/variables", getvars.GetVariables(log, storage))
	router.Post("/api/variables", savevars.SaveVariables(log, storage))

	router.Get("/api/report/excel", generate_excel.GenerateReportExcel(log, reportService))

	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Post("/recreate-db", adminrecreate.RecreateDatabase(log, storage))
	adminRouter.Post("/truncate-retention", admintruncate.TruncateRetention(log, storage, cfg.RetentionSupplierPrefix))
	adminRouter.Get("/stats", adminstats.GetDatabaseStats(log, storage))

	router.Mount("/api/admin", adminRouter)

	return router
}
