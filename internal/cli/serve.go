package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "poster_events/docs"
	"poster_events/internal/auth"
	"poster_events/internal/cache"
	"poster_events/internal/config"
	"poster_events/internal/extract"
	"poster_events/internal/gemini"
	"poster_events/internal/handlers"
	"poster_events/internal/metrics"
	"poster_events/internal/storage"
	"poster_events/internal/tasks"
	"poster_events/internal/ws"
)

const shutdownTimeout = 10 * time.Second

// Execute запускает сервис и блокируется до SIGINT/SIGTERM.
func (c *ServeCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.HTTP.Addr = c.Addr
	}
	if err := cfg.Validate(true); err != nil {
		return err
	}

	ctx := context.Background()

	db, err := storage.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer storage.Close(db)

	if err := storage.Migrate(db); err != nil {
		return err
	}
	store := storage.NewEventStore(db)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	model, err := gemini.New(ctx, cfg.Model.APIKey, cfg.Model.Name)
	if err != nil {
		return err
	}

	hub := ws.NewHub()
	go hub.Run()
	defer hub.Stop()

	opts := []extract.Option{
		extract.WithObserver(m),
		extract.WithNotifier(hub),
		extract.WithModelTimeout(cfg.Model.Timeout),
	}

	rdb, err := storage.NewRedis(ctx, cfg.Redis)
	if err != nil {
		log.Printf("Redis недоступен, кэш ответов модели отключён: %v", err)
	} else if rdb != nil {
		defer rdb.Close()
		opts = append(opts, extract.WithCache(cache.NewModelResponses(rdb, cfg.Redis.TTL)))
		log.Println("Подключение к Redis успешно!")
	}

	pipeline := extract.NewPipeline(model, store, opts...)

	scheduler, err := tasks.InitScheduler(cfg.Tasks.UpcomingRefreshCron, store, m)
	if err != nil {
		return err
	}
	defer scheduler.Stop()

	h := handlers.New(pipeline, store, cfg.HTTP.MaxUploadMB<<20, func(ctx context.Context) error {
		return storage.Ping(ctx, db)
	})
	router := newRouter(cfg, h, hub, m, reg)

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("poster-events %s слушает %s", c.version, cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("запуск сервера: %w", err)
		}
		return nil
	case <-done:
	}

	log.Println("Остановка сервера...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("остановка сервера: %w", err)
	}
	log.Println("Сервер остановлен")
	return nil
}

// newRouter собирает gin: middleware, маршруты API, WebSocket, метрики и swagger.
func newRouter(cfg *config.Config, h *handlers.Handler, hub *ws.Hub, m *metrics.Metrics, gatherer prometheus.Gatherer) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", handlers.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", handlers.RequestIDHeader},
		AllowCredentials: true,
	}))
	r.Use(handlers.RequestID())
	r.Use(m.Middleware())

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	r.GET("/events/ws", hub.Handler)

	h.Register(r, auth.UploadMiddleware([]byte(cfg.Auth.UploadSecret)))
	return r
}
