package main

import (
	"context"
	"log"
	"time"

	"ninedelivery/config"
	httpapi "ninedelivery/storefront-svc/internal/api/http"
	"ninedelivery/storefront-svc/internal/catalog"
	"ninedelivery/storefront-svc/internal/hours"
	"ninedelivery/storefront-svc/internal/kv"
	"ninedelivery/storefront-svc/internal/service"
	"ninedelivery/storefront-svc/internal/storage"
)

func main() {
	ctx := context.Background()

	var backend kv.Backend
	if config.RedisEnabled() {
		rdb := config.MustInitRedis()
		defer rdb.Close()
		backend = storage.NewRedisBackend(rdb, config.GetDuration("KV_TTL", 0))
	} else {
		log.Println("REDIS_HOST not set, keeping carts in memory")
		backend = kv.NewMemoryBackend()
	}
	store := kv.New(backend)

	var repo service.CatalogRepository
	if config.PostgresEnabled() {
		db := config.MustInitPostgres()
		defer db.Close()
		pg := storage.NewPostgresRepository(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatal("Failed to migrate catalog schema:", err)
		}
		repo = pg
	} else {
		log.Println("DB_HOST not set, serving the local catalog")
		repo = storage.NewLocalCatalog(store)
	}

	var publisher service.CheckoutPublisher
	if config.KafkaEnabled() {
		writer := config.NewKafkaWriter(config.CheckoutTopic)
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)
	}

	storeClock := hours.InZone(time.Now, config.GetLocation("STORE_TIMEZONE", config.DefaultStoreTimezone))
	catalogSvc := service.NewCatalogService(repo, catalog.UUIDProvider{}, storeClock)
	cartSvc := service.NewCartService(store, catalogSvc)
	checkoutSvc := service.NewCheckoutService(cartSvc, catalogSvc, publisher,
		service.DefaultQRGenerator{Size: config.GetInt("QR_SIZE", 256)})

	handler := httpapi.NewHandler(catalogSvc, cartSvc, checkoutSvc)
	handler.UploadDir = config.GetEnv("UPLOAD_DIR", "./uploads")
	handler.PublicBaseURL = config.GetEnv("PUBLIC_BASE_URL", "")

	httpapi.StartServer(":"+config.GetEnv("PORT", "8081"), httpapi.NewRouter(handler))
}
