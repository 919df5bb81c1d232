package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ninedelivery/config"
	httpapi "ninedelivery/stats-svc/internal/api/http"
	"ninedelivery/stats-svc/internal/service"
	"ninedelivery/stats-svc/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := config.MustInitRedis()
	defer rdb.Close()
	store := storage.NewPopularityStore(rdb)

	reader := config.NewKafkaReader(config.CheckoutTopic, config.GetEnv("KAFKA_GROUP_ID", "stats-svc"))
	defer reader.Close()
	go service.NewConsumer(reader, store).Start(ctx)

	handler := httpapi.NewHandler(service.NewStatsService(store, time.Now))
	httpapi.StartServer(":"+config.GetEnv("STATS_PORT", "8083"), httpapi.NewRouter(handler))
}
