package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/config"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/domain/attendance"
	appHTTP "github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/handler/http"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/pkg/cron"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/pkg/database"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/pkg/identity"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/pkg/jwt"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/pkg/storage"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/repository/postgresql"
	attendanceService "github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/service/attendance"
	leaveService "github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/service/leave"
)

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

	policy, err := attendance.ParsePolicy(
		cfg.Attendance.WorkWindowStartHour,
		cfg.Attendance.WorkWindowEndHour,
		cfg.Attendance.GraceCutoff,
		cfg.Attendance.NormalWorkMinutes,
		cfg.Attendance.FullWorkMinutes,
	)
	if err != nil {
		log.Fatal("Invalid attendance policy: ", err)
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	workerRepo := postgresql.NewWorkerRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	approvalLogRepo := postgresql.NewApprovalLogRepository(db)
	activityRepo := postgresql.NewActivityRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)
	identityClient := identity.NewClient(cfg.Identity.BaseURL, cfg.Identity.Timeout)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage: ", err)
	}

	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		workerRepo,
		activityRepo,
		identityClient,
		fileStorage,
		policy,
		loc,
	)
	leaveSvc := leaveService.NewLeaveService(
		db,
		leaveRequestRepo,
		approvalLogRepo,
		workerRepo,
		activityRepo,
		attendanceSvc,
	)

	recorder := cron.NewRunRecorder()
	if cfg.Reconciler.Enabled {
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
	}

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc, JWTService)
	reconcilerHandler := appHTTP.NewReconcilerHandler(recorder)

	router := appHTTP.NewRouter(
		JWTService,
		cfg.App.Env,
		attendanceHandler,
		leaveHandler,
		reconcilerHandler,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Server running on port", cfg.App.Port)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server failed: ", err)
	}
}
