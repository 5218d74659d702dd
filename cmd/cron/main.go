package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/config"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/handler/http/response"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/pkg/cron"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/pkg/database"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/repository/postgresql"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Standalone reconciler runner for deployments that keep the sweep out
// of the API process.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Invalid APP_TIMEZONE: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	workerRepo := postgresql.NewWorkerRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	recorder := cron.NewRunRecorder()
	reconcilerJob, err := cron.NewReconcilerJob(
		workerRepo,
		attendanceRepo,
		recorder,
		loc,
		cfg.Reconciler.RunHour,
		cfg.Reconciler.AbsentAnchor,
	)
	if err != nil {
		log.Fatal("Failed to initialize reconciler: ", err)
	}

	scheduler := cron.NewScheduler()
	reconcilerJob.RegisterJobs(scheduler, cfg.Reconciler.CheckInterval)
	scheduler.Start()
	defer scheduler.Stop()

	r := chi.NewRouter()
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))
	r.Get("/status", func(w http.ResponseWriter, req *http.Request) {
		response.Success(w, recorder.Snapshot())
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Reconciler running on port", cfg.App.Port)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal("Reconciler server failed: ", err)
	}
}
