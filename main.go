// File: slotsync/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotsync/cache"
	"slotsync/config"
	"slotsync/connectivity"
	"slotsync/database"
	remoteRepo "slotsync/database/repository/remote"
	"slotsync/handlers"
	"slotsync/middleware"
	"slotsync/routes"
	"slotsync/services/realtime"
	"slotsync/services/stats"
	syncService "slotsync/services/sync"
	"slotsync/store"
	"slotsync/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// State store and collaborators.
	stateStore := store.New()
	remoteClient := remoteRepo.NewMongoSyncClient()
	snapshotCache := cache.NewRedisSnapshotCache(utils.GetCacheClient())

	statsMaintainer := &stats.DefaultMaintainer{
		Remote: remoteClient,
	}
	syncSvc := &syncService.DefaultSyncService{
		Remote: remoteClient,
		Cache:  snapshotCache,
		Store:  stateStore,
		Stats:  statsMaintainer,
	}
	applier := realtime.NewApplier(stateStore)

	rootCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	// Initial bulk load; cache fallback happens inside. An empty store is
	// survivable, the reload endpoint recovers once the remote is back.
	if err := syncSvc.Bootstrap(rootCtx); err != nil {
		logger.Sugar().Warnf("main: bootstrap failed, starting empty: %v", err)
	}

	// Live change feed.
	unsubscribe, err := remoteClient.Subscribe(rootCtx, applier.Apply, applier.SetChannelStatus)
	if err != nil {
		logger.Sugar().Warnf("main: realtime subscription unavailable: %v", err)
		applier.SetChannelStatus(remoteRepo.ChannelErrored)
	} else {
		defer unsubscribe()
	}

	// Connectivity feed.
	prober := &connectivity.Prober{
		Remote:   remoteClient,
		Interval: time.Duration(config.AppConfig.ConnectivityProbeSecs) * time.Second,
		OnChange: func(s connectivity.Status) {
			syncSvc.SetConnectivity(s.Connected)
		},
	}
	go prober.Run(rootCtx)

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Customer: handlers.NewCustomerHandler(syncSvc),
		Booking:  handlers.NewBookingHandler(syncSvc),
		Schedule: handlers.NewScheduleHandler(stateStore),
		Sync:     handlers.NewSyncHandler(syncSvc, stateStore),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	stopBackground()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
