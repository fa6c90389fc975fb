package main

import (
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"time"

	"hbs/src/apperrors"
	"hbs/src/config"
	"hbs/src/db"
	"hbs/src/lib"
	"hbs/src/middlewares"
	"hbs/src/models"
	"hbs/src/repositories"
	"hbs/src/services"
	"hbs/src/types"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	_ "github.com/joho/godotenv/autoload"
)

const apiPrefix string = "/api"

var bookingDateValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := time.Parse(types.DATE_PARSE_FORMAT, value)
	return err == nil
}

type apiDeps struct {
	auth      services.AuthService
	bookings  services.BookingService
	invoices  services.InvoiceService
	jwtSecret []byte
}

func respondError(ctx *gin.Context, err error) {
	appErr := apperrors.AsAppError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		log.Printf("internal error: %s\n", appErr.Error())
		ctx.JSON(appErr.HTTPStatus, gin.H{"error": "internal server error"})
		return
	}
	ctx.JSON(appErr.HTTPStatus, gin.H{"error": appErr.Message})
}

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(middlewares.SecureHeaders)
	router.Use(middlewares.RequestID)
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})
	return router
}

func registerRoutes(router *gin.Engine, deps *apiDeps) {
	public := router.Group(apiPrefix)
	authRoutes(public, deps.auth)

	authorized := router.Group(apiPrefix)
	authorized.Use(middlewares.AuthMiddleware(deps.jwtSecret))
	bookingRoutes(authorized, deps.bookings)
	invoiceRoutes(authorized, deps.invoices)
}

func initLogger() {
	cwd, _ := os.Getwd()
	serverLogs := path.Join(cwd, "logs", "server.log")
	apiLogs := path.Join(cwd, "logs", "api.log")
	gin.ForceConsoleColor()

	f, _ := os.Create(apiLogs)
	gin.DefaultWriter = io.MultiWriter(f, os.Stdout)
	log.SetOutput(&lumberjack.Logger{
		Filename:   serverLogs,
		MaxSize:    500,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	})
}

func main() {
	apiEnv := os.Getenv("API_ENV")
	if apiEnv == "local" {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil {
			panic(err)
		}
	}
	initLogger()

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("bookingdate", bookingDateValidatorFunc)
	}

	gdb, err := db.Connect(config.GetDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %s", err)
	}
	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Hotel{},
		&models.Booking{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %s", err)
	}

	rdb := lib.NewRedisClient(config.GetRedisURL())

	jwtSecret := config.GetJWTSecret()
	userRepo := repositories.NewUserRepository(gdb)
	bookingRepo := repositories.NewBookingRepository(gdb, rdb)
	deps := &apiDeps{
		auth:      services.NewAuthService(userRepo, jwtSecret),
		bookings:  services.NewBookingService(bookingRepo),
		invoices:  services.NewInvoiceService(bookingRepo, lib.NewInvoiceRenderer()),
		jwtSecret: jwtSecret,
	}

	router := setupRouter()
	if apiEnv == "local" {
		router.Use(cors.Default())
	} else {
		cc := cors.DefaultConfig()
		cc.AllowMethods = append(cc.AllowMethods, "GET", "POST", "HEAD")
		cc.AllowHeaders = append(cc.AllowHeaders, "Origin", "Authorization")
		cc.AllowAllOrigins = false
		cc.AllowOrigins = []string{os.Getenv("APP_HOST")}
		router.Use(cors.New(cc))
	}
	registerRoutes(router, deps)

	if err := router.Run(config.GetListenAddr()); err != nil {
		log.Fatalf("Failed to start server: %s", err)
	}
}
