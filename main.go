package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"
	"github.com/redis/go-redis/v9"

	"edugest_backend/internals/configs"
	database "edugest_backend/internals/databases"
	billing "edugest_backend/internals/features/finance/billing/service"
	inventory "edugest_backend/internals/features/inventory/service"
	backup "edugest_backend/internals/features/system/backup/service"
	"edugest_backend/internals/features/system/kvstore/repository"
	authModel "edugest_backend/internals/features/users/auth/model"
	scheduler "edugest_backend/internals/features/users/auth/scheduler"
	authService "edugest_backend/internals/features/users/auth/service"
	helper "edugest_backend/internals/helpers"
	ossHelper "edugest_backend/internals/helpers/oss"
	middlewares "edugest_backend/internals/middlewares"
	routes "edugest_backend/internals/route"
	"edugest_backend/internals/state"
)

func main() {
	configs.LoadEnv()
	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		BodyLimit:               50 << 20, // backup + scan factură
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return helper.JsonDomainError(c, err)
		},
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	// 🔎 Request-ID + timing
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("requestid", id)
		start := time.Now()
		ctx, cancel := context.WithTimeout(c.Context(), 60*time.Second) // scan Gemini bisa lambat
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 Store: Postgres kalau DB_HOST ada, selain itu in-memory
	var (
		store repository.Store
		ping  func() error
	)
	if database.Enabled() {
		if err := database.ConnectDB(); err != nil {
			log.Fatalf("❌ %v", err)
		}
		database.TunePool()
		gs := repository.NewGormStore(database.DB)
		if err := gs.Migrate(); err != nil {
			log.Fatalf("❌ migrate app_kv_entries: %v", err)
		}
		store, ping = gs, database.Ping
	} else {
		log.Println("⚠️ DB_HOST kosong, data disimpan in-memory (hilang saat restart)")
		store = repository.NewMemoryStore()
	}

	ctl := state.New(store, state.WithFoodCost(configs.FoodCostPerDay))
	if err := ctl.Load(rootCtx); err != nil {
		log.Fatalf("❌ load state: %v", err)
	}
	log.Println("✅ State dimuat.")

	// 🧮 Cache statement: Redis kalau ada
	var cache billing.StatementCache = billing.NewMemoryCache()
	if configs.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: configs.RedisAddr, Password: configs.GetEnv("REDIS_PASSWORD"), DB: configs.GetEnvInt("REDIS_DB", 0)})
		pctx, cancel := context.WithTimeout(rootCtx, 3*time.Second)
		if err := rdb.Ping(pctx).Err(); err != nil {
			log.Printf("⚠️ Redis %s tidak bisa dihubungi (%v), pakai cache in-process", configs.RedisAddr, err)
			_ = rdb.Close()
		} else {
			cache = billing.NewRedisCache(rdb)
			defer rdb.Close()
			log.Println("✅ Redis connected.")
		}
		cancel()
	}
	memo := billing.NewMemo(ctl, cache)

	// 🤖 Gemini (scan factură + sugestie ingrediente)
	scanner := inventory.NewScanService(nil)
	if configs.GeminiAPIKey != "" {
		gm, err := inventory.NewGeminiModel(rootCtx, configs.GeminiAPIKey, configs.GeminiModel)
		if err != nil {
			log.Printf("⚠️ Gemini init gagal: %v", err)
		} else {
			scanner.Model = gm
			defer gm.Close()
			log.Printf("✅ Gemini model %s siap.", configs.GeminiModel)
		}
	}

	// ☁️ OSS untuk salinan backup
	var uploader backup.Uploader
	if ossHelper.OSSConfigured() {
		oss, err := ossHelper.NewOSSServiceFromEnv("backups")
		if err != nil {
			log.Printf("⚠️ OSS init gagal: %v", err)
		} else {
			uploader = oss
		}
	}
	backupSvc := backup.New(ctl, store, uploader)

	// ⏱ scheduler
	cronJob, err := backupSvc.StartCron(configs.BackupCron)
	if err != nil {
		log.Printf("❌ BACKUP_CRON invalid (%v), backup otomatis nonaktif", err)
	}
	blacklist := authModel.NewTokenBlacklist()
	scheduler.StartBlacklistCleanupScheduler(rootCtx, blacklist, time.Hour)

	auth := authService.NewAuthService(ctl, configs.JWTSecret, configs.JWTTTL, blacklist)

	// ✅ Routes
	routes.SetupRoutes(app, routes.Deps{
		Ctl:     ctl,
		Auth:    auth,
		Memo:    memo,
		Scanner: scanner,
		Backup:  backupSvc,
		Ping:    ping,
	})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 30 * time.Second
	app.Server().WriteTimeout = 90 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	// graceful shutdown; listener gagal juga lewat jalur yang sama
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go listen(app, "0.0.0.0:"+configs.Port, quit)

	<-quit
	log.Println("🛑 Shutting down...")
	stop()
	if cronJob != nil {
		<-cronJob.Stop().Done()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)
	database.Close()
}

// listen: error listener dikirim ke quit sebagai SIGTERM supaya defer di main tetap jalan
func listen(app *fiber.App, addr string, quit chan<- os.Signal) {
	log.Printf("✅ Listening on %s", addr)
	if err := app.Listen(addr); err != nil {
		log.Printf("❌ server error: %v", err)
		select {
		case quit <- syscall.SIGTERM:
		default:
		}
	}
}
