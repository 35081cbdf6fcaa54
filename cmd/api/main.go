package main

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"clinicdesk/cmd/internal/domain/sqlite"
	"clinicdesk/cmd/internal/domain/sqlite/repository"
	"clinicdesk/cmd/internal/routes"
	"clinicdesk/cmd/internal/service"
	"clinicdesk/cmd/internal/utils/validators"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warnf("no .env file loaded: %v", err)
	}

	validate := validator.New()
	registerValidators(validate)

	// Init SQLite
	db, err := sqlite.Init(getenv("CLINICDESK_DB", "./clinic.db"))
	if err != nil {
		log.Fatal("failed to initialize database", err)
	}

	jwtSecret := os.Getenv("CLINICDESK_JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("CLINICDESK_JWT_SECRET must be set")
	}

	// Getting repositories
	userRepo := repository.NewUserRepository(db)
	apptRepo := repository.NewAppointmentRepository(db)

	// Getting services
	userService := service.NewUserService(userRepo, validate, jwtSecret)
	apptService := service.NewAppointmentService(apptRepo, validate)

	// Getting routes
	userRoutes := routes.NewUserDefault(userService, jwtSecret)
	apptRoutes := routes.NewAppointmentDefault(apptService)

	e := echo.New()
	e.Use(middleware.CORS())

	// Appointments
	e.GET("/api/appointments", apptRoutes.GetAppointments)
	e.POST("/api/appointments", apptRoutes.CreateAppointment)
	e.DELETE("/api/appointments/:id", apptRoutes.DeleteAppointment)

	// Users
	e.POST("/api/register", userRoutes.Register)
	e.POST("/api/login", userRoutes.Login)
	e.GET("/api/users/:id", userRoutes.GetUser)

	err = e.Start(getenv("CLINICDESK_ADDR", ":6060"))
	if err != nil {
		e.Logger.Fatal(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("hasupper", validators.HasUpper)
	_ = validate.RegisterValidation("haslower", validators.HasLower)
	_ = validate.RegisterValidation("hasdigit", validators.HasDigit)
	_ = validate.RegisterValidation("hasspecial", validators.HasSpecial)
	_ = validate.RegisterValidation("iso8601", validators.IsIso8601)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
