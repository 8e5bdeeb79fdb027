package main

import (
	"context"
	"fmt"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"os"
	"os/signal"
	"recruit-portal/config"
	apiv1 "recruit-portal/controllers/v1"
	"recruit-portal/db"
	"recruit-portal/fiberlog"
	"recruit-portal/initializers"
	"recruit-portal/lib/ws"
	"recruit-portal/middleware"
	apimodels "recruit-portal/models/api"
	"sync"
	"time"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	app := fiber.New(fiber.Config{
		BodyLimit: int(config.Conf.App.ApplicationBodyLimit),
		// значения из запроса живут в окнах смены статуса и кэшах дольше самого запроса
		Immutable: true,
	})
	app.Use(fiberRecover.New())
	app.Use(requestid.New())
	app.Use(middleware.Metrics())
	app.Use(fiberlog.New(*initializers.LoggerConfig))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/health", func(ctx *fiber.Ctx) error {
		if err := db.PingDB(); err != nil {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(apimodels.NewError(err.Error()))
		}
		return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
	})

	clientID := middleware.ClientID(config.Conf.App.ClientCookie, *config.Conf.App.SecureCookie)

	//api
	apiV1 := fiber.New()
	apiV1.Use(clientID)
	if config.Conf.App.ErrNotifyAddr != "" {
		apiV1.Use(middleware.ErrNotify(config.Conf.App.ErrNotifyAddr))
	}
	app.Mount("/api/v1", apiV1)
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PATCH, DELETE, PUT",
	}))
	apiv1.InitAuthApiRouters(apiV1)
	apiv1.InitPublicJobsApiRouters(apiV1, config.Conf.App.ApplicationBodyLimit)

	//админка
	admin := fiber.New()
	apiV1.Mount("/admin", admin)
	apiv1.InitLayoutApiRouters(admin)
	admin.Use(middleware.SessionRequired(config.Conf.App.LoginRoute))
	apiv1.InitDashboardApiRouters(admin)
	apiv1.InitCandidatesApiRouters(admin)
	apiv1.InitJobsApiRouters(admin)
	apiv1.InitAdminsApiRouters(admin)
	apiv1.InitProfileApiRouters(admin)
	apiv1.InitReportsApiRouters(admin)

	//ws
	wsApp := fiber.New()
	wsApp.Use(clientID)
	app.Mount("/ws", wsApp)
	ws.InitWs(wsApp)

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	wg := sync.WaitGroup{}
	go func() {
		_ = <-c
		wg.Add(1)
		defer wg.Done()
		log.Info("Gracefully shutting down...")
		cancel()
		initializers.ShutdownServices()
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		time.Sleep(time.Second)
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}
