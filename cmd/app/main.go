package main

import (
	"fmt"
	"log/slog"
	"os"

	"dispatch/cmd"
	httpadapter "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres/bundlerepo"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/statrepo"
	"dispatch/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := openDatabase(configs)
	migrateSchema(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	jobManager := jobs.NewJobManager(app.CreateGetUnassignedOrdersQueryHandler(), logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func openDatabase(configs cmd.Config) *gorm.DB {
	gormDB, err := gorm.Open(postgresdriver.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func migrateSchema(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&courierrepo.CourierDTO{},
		&orderrepo.OrderDTO{},
		&bundlerepo.BundleDTO{},
		&statrepo.RegionStatDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpadapter.NewServer(
		app.CreateCreateCourierCommandHandler(),
		app.CreateCreateOrderCommandHandler(),
		app.CreateDispatchOrdersCommandHandler(),
		app.CreateCompleteOrderCommandHandler(),
		app.CreateUpdateCourierCommandHandler(),
		app.CreateGetCourierQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
