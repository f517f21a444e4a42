package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/mnpatel007/delhiveryway-shopper/cmd"
	httpin "github.com/mnpatel007/delhiveryway-shopper/internal/adapters/in/http"
	"github.com/mnpatel007/delhiveryway-shopper/internal/adapters/in/ws"
	"github.com/mnpatel007/delhiveryway-shopper/internal/adapters/out/postgres/orderrepo"
	"github.com/mnpatel007/delhiveryway-shopper/internal/adapters/out/postgres/shopperrepo"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	gormDB := mustOpenDatabase(configs)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	root := cmd.NewCompositionRoot(configs, gormDB)

	hub := ws.NewHub(
		root.CreateUpdateShopperLocationCommandHandler(),
		root.CreateSetAvailabilityCommandHandler(),
		logger,
	)

	server := httpin.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateCreateShopperCommandHandler(),
		root.CreateAcceptOrderCommandHandler(),
		root.CreateUpdateOrderStatusCommandHandler(hub),
		root.CreateBeginRevisionCommandHandler(hub),
		root.CreateResolveRevisionCommandHandler(hub),
		root.CreateCancelOrderCommandHandler(hub),
		root.CreateSetAvailabilityCommandHandler(),
		root.CreateUpdateShopperLocationCommandHandler(),
		root.CreateForceOrderStatusCommandHandler(hub),
		root.CreateForceShopperAvailabilityCommandHandler(hub),
		root.CreateGetActiveOrdersQueryHandler(),
		root.CreateGetOrderHistoryQueryHandler(),
		root.CreateGetEarningsSummaryQueryHandler(),
	)

	shopPosition, err := kernel.NewGeoPosition(
		configs.ShopLatitude, configs.ShopLongitude, -1, -1, time.Now())
	if err != nil {
		log.Fatalf("Invalid shop position: %v", err)
	}

	jobManager := jobs.NewJobManager(
		root.CreateDispatchOrderCommandHandler(hub), shopPosition, logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(server, ws.NewChannelHandler(hub), configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:      goDotEnvVariable("HTTP_PORT"),
		DBHost:        goDotEnvVariable("DB_HOST"),
		DBPort:        goDotEnvVariable("DB_PORT"),
		DBUser:        goDotEnvVariable("DB_USER"),
		DBPassword:    goDotEnvVariable("DB_PASSWORD"),
		DBName:        goDotEnvVariable("DB_NAME"),
		DBSslMode:     goDotEnvVariable("DB_SSLMODE"),
		ShopLatitude:  goDotEnvFloat("SHOP_LATITUDE"),
		ShopLongitude: goDotEnvFloat("SHOP_LONGITUDE"),
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

func goDotEnvFloat(key string) float64 {
	value, err := strconv.ParseFloat(goDotEnvVariable(key), 64)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		configs.DBHost, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBPort, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	if err := gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &shopperrepo.ShopperDTO{}); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	return gormDB
}

func startWebServer(server *httpin.Server, channelHandler *ws.ChannelHandler, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server.RegisterRoutes(e)
	e.GET("/api/v1/shoppers/:shopperId/channel", channelHandler.Handle)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
