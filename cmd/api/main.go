package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/kintaihq/kintai-backend-go/internal/config"
	appHTTP "github.com/kintaihq/kintai-backend-go/internal/handler/http"
	"github.com/kintaihq/kintai-backend-go/internal/pkg/cron"
	"github.com/kintaihq/kintai-backend-go/internal/pkg/database"
	"github.com/kintaihq/kintai-backend-go/internal/pkg/jwt"
	"github.com/kintaihq/kintai-backend-go/internal/pkg/oauth"
	"github.com/kintaihq/kintai-backend-go/internal/pkg/sse"
	"github.com/kintaihq/kintai-backend-go/internal/repository/postgresql"
	attendanceService "github.com/kintaihq/kintai-backend-go/internal/service/attendance"
	authService "github.com/kintaihq/kintai-backend-go/internal/service/auth"
	employeeService "github.com/kintaihq/kintai-backend-go/internal/service/employee"
	leaveService "github.com/kintaihq/kintai-backend-go/internal/service/leave"
	notificationService "github.com/kintaihq/kintai-backend-go/internal/service/notification"
	payrollService "github.com/kintaihq/kintai-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleSvc := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	hub := sse.NewHub()

	notificationSvc := notificationService.NewNotificationService(notificationRepo, hub)
	authSvc := authService.NewAuthService(db, userRepo, jwtSvc, jwtRepo)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, employeeRepo, notificationSvc, cfg.Attendance.Location, nil)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo, employeeRepo, notificationSvc, cfg.Attendance.Location)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, employeeRepo, attendanceRepo, leaveRequestRepo, cfg.Attendance.Location, nil)

	authHandler := appHTTP.NewAuthHandler(jwtSvc, authSvc, googleSvc, cfg.App.FrontendURL)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc, jwtSvc, hub)

	router := appHTTP.NewRouter(
		jwtSvc,
		cfg.App.FrontendURL,
		authHandler,
		attendanceHandler,
		employeeHandler,
		leaveHandler,
		payrollHandler,
		notificationHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc, cfg.Attendance.SweepInterval).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{Addr: port, Handler: router}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	_ = server.Close()
}
