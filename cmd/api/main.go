package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/levelminds/levelminds-backend/internal/config"
	"github.com/levelminds/levelminds-backend/internal/database"
	"github.com/levelminds/levelminds-backend/internal/handlers"
	"github.com/levelminds/levelminds-backend/internal/logger"
	"github.com/levelminds/levelminds-backend/internal/mailer"
	"github.com/levelminds/levelminds-backend/internal/middleware"
	"github.com/levelminds/levelminds-backend/internal/models"
	"github.com/levelminds/levelminds-backend/internal/services"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zlog := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer zlog.Sync()

	// 2. Database Connection
	db, err := database.Connect(cfg.DatabaseDSN, zlog)
	if err != nil {
		zlog.Fatal("database connection failed", zap.Error(err))
	}

	// 3. Outbound Mail
	var m mailer.Mailer
	if cfg.EmailEnabled {
		m, err = mailer.NewSESMailer(context.Background(), cfg.AWSRegion, cfg.EmailFrom)
		if err != nil {
			zlog.Fatal("SES mailer initialization failed", zap.Error(err))
		}
	} else {
		m = &mailer.LogMailer{Log: zlog}
	}

	// 4. Initialize Core Services
	notificationService := services.NewNotificationService(db, m, zlog)
	skillService := services.NewSkillService(db)
	assessmentService := services.NewAssessmentService(db)
	jobService := services.NewJobService(db)
	applicationService := services.NewApplicationService(db, notificationService)
	interviewService := services.NewInterviewService(db, notificationService)
	userService := services.NewUserService(db, notificationService, cfg.PublicBaseURL)

	// 5. Initialize Handlers
	adminHandler := handlers.NewAdminHandler(skillService, assessmentService, userService, zlog, cfg.UploadDir)
	schoolHandler := handlers.NewSchoolHandler(jobService, applicationService, interviewService, zlog)
	studentHandler := handlers.NewStudentHandler(jobService, applicationService, interviewService, zlog,
		cfg.UploadDir, cfg.PublicBaseURL)

	// 6. Setup Router & CORS
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// 7. Define Routes
	r.GET("/health", handlers.Health)

	api := r.Group("/api", middleware.Auth(cfg.JWTSecret))
	{
		admin := api.Group("/admin", middleware.RequireRole(models.RoleAdmin))
		{
			admin.POST("/skills", adminHandler.CreateCoreSkill)
			admin.GET("/skills", adminHandler.ListCoreSkills)
			admin.POST("/categories", adminHandler.CreateCategory)
			admin.GET("/categories", adminHandler.ListCategories)
			// :id is the student on /marks and the core skill on
			// /bulk-marks-upload; gin requires the param names to agree.
			admin.POST("/skills/:id/marks", adminHandler.UploadMarks)
			admin.POST("/skills/:id/bulk-marks-upload", adminHandler.BulkUploadMarks)
			admin.POST("/users/bulk-create", adminHandler.BulkCreateUsers)
			admin.GET("/users", adminHandler.ListUsers)
		}

		jobs := api.Group("/jobs")
		{
			jobs.POST("", middleware.RequireRole(models.RoleSchool), schoolHandler.CreateJob)
			jobs.GET("", middleware.RequireRole(models.RoleSchool), schoolHandler.ListJobs)
			jobs.GET("/:id", schoolHandler.GetJob)
			jobs.PATCH("/:id/status", middleware.RequireRole(models.RoleSchool), schoolHandler.UpdateJobStatus)
			jobs.GET("/:id/applicants", middleware.RequireRole(models.RoleSchool), schoolHandler.ListApplicants)
			jobs.POST("/:id/apply", middleware.RequireRole(models.RoleStudent), studentHandler.Apply)
		}

		api.PATCH("/applications/:id/status", middleware.RequireRole(models.RoleSchool), schoolHandler.UpdateApplicationStatus)
		api.POST("/applications/:id/schedule", middleware.RequireRole(models.RoleSchool), schoolHandler.ScheduleInterview)

		student := api.Group("/student", middleware.RequireRole(models.RoleStudent))
		{
			student.GET("/jobs", studentHandler.ListJobs)
			student.GET("/calendar", studentHandler.Calendar)
		}
	}

	zlog.Info("server starting", zap.String("addr", cfg.HTTPAddr))
	if err := r.Run(cfg.HTTPAddr); err != nil {
		zlog.Fatal("server failed", zap.Error(err))
	}
}
