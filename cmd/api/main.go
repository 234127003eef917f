package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/Alxpy/backSistDent/internal/bootstrap"
	"github.com/Alxpy/backSistDent/internal/config"
	"github.com/Alxpy/backSistDent/internal/handlers"
	"github.com/Alxpy/backSistDent/internal/logger"
	"github.com/Alxpy/backSistDent/internal/metrics"
	"github.com/Alxpy/backSistDent/internal/middleware"
	"github.com/Alxpy/backSistDent/internal/repository"
	"github.com/Alxpy/backSistDent/internal/scheduling"
	"github.com/Alxpy/backSistDent/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}
	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	if cfg.JWTSecret == "" {
		zlog.Fatal("JWT_SECRET is not set")
	}

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		zlog.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer client.Disconnect(context.Background())
	if err := client.Ping(ctx, nil); err != nil {
		zlog.Fatal("MongoDB unreachable", zap.Error(err))
	}
	db := client.Database(cfg.MongoDatabase)
	zlog.Info("Connected to MongoDB", zap.String("database", cfg.MongoDatabase))

	// --- Bootstrap seeding (roles before admin user, all idempotent) ---
	seeder := bootstrap.NewSeeder(db, zlog, cfg.AdminEmail, cfg.AdminPassword)
	if err := seeder.Run(ctx); err != nil {
		zlog.Fatal("Bootstrap seeding failed", zap.Error(err))
	}

	// --- Repositories ---
	appointmentRepo := repository.NewAppointmentRepository(db)
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	treatmentRepo := repository.NewTreatmentRepository(db)

	// --- Services ---
	collector := metrics.NewCollector("backsistdent")
	reminderSvc := services.NewReminderService(appointmentRepo, patientRepo, userRepo, collector, zlog, cfg.TextbeltKey)
	scheduler := scheduling.NewScheduler(appointmentRepo, reminderSvc, scheduling.SystemClock(), zlog)

	h := handlers.NewHandler(scheduler, appointmentRepo, userRepo, roleRepo, patientRepo, treatmentRepo,
		collector, zlog, []byte(cfg.JWTSecret))

	// --- Gin Router ---
	r := gin.Default()

	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics(collector))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// --- Routes ---
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", h.Register)
		authRoutes.POST("/login", h.Login)
	}

	apiRoutes := r.Group("/api")
	apiRoutes.Use(middleware.AuthMiddleware([]byte(cfg.JWTSecret)))
	{
		apiRoutes.GET("/auth/validate", h.ValidateToken)

		// Appointment Routes
		apiRoutes.GET("/appointments", h.GetAppointments)
		apiRoutes.POST("/appointments", h.CreateAppointment)
		apiRoutes.GET("/appointments/:id", h.GetAppointment)
		apiRoutes.PUT("/appointments/:id", h.UpdateAppointment)
		apiRoutes.PATCH("/appointments/:id/cancel", h.CancelAppointment)

		// Patient Routes
		apiRoutes.GET("/patients", h.GetPatients)
		apiRoutes.POST("/patients", h.CreatePatient)
		apiRoutes.GET("/patients/:id", h.GetPatient)
		apiRoutes.PUT("/patients/:id", h.UpdatePatient)
		apiRoutes.DELETE("/patients/:id", h.DeletePatient)

		// Treatment Routes
		apiRoutes.GET("/treatments", h.GetTreatments)
		apiRoutes.POST("/treatments", h.CreateTreatment)
		apiRoutes.GET("/treatments/:id", h.GetTreatment)
		apiRoutes.PUT("/treatments/:id", h.UpdateTreatment)
		apiRoutes.DELETE("/treatments/:id", h.DeleteTreatment)
	}

	zlog.Info("Starting server", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		zlog.Fatal("Server stopped", zap.Error(err))
	}
}
