package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Divy97/rajawadu/docs"
	"github.com/Divy97/rajawadu/internal/app/api/handlers"
	"github.com/Divy97/rajawadu/internal/app/service/catalog"
	"github.com/Divy97/rajawadu/internal/app/service/guestuser"
	ordersvc "github.com/Divy97/rajawadu/internal/app/service/order"
	"github.com/Divy97/rajawadu/internal/app/service/payu"
	"github.com/Divy97/rajawadu/internal/app/service/reconcile"
	cfgpkg "github.com/Divy97/rajawadu/pkg/config"

	mw "github.com/Divy97/rajawadu/internal/app/api/middleware"

	metrics "github.com/Divy97/rajawadu/pkg/metrics"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	// Request logger & access log are attached per group in registerRoutes
	r.Use(mw.TraceMiddleware())
	return r
}

func registerRoutes(
	r *gin.Engine,
	log *zap.SugaredLogger,
	cfg *cfgpkg.Config,
	cat *catalog.Service,
	orders *ordersvc.Service,
	guests *guestuser.Service,
	client *payu.Client,
	callbacks *handlers.PaymentCallbacks,
	rec reconcile.Reconciler,
) {
	// Prometheus metrics
	if cfg != nil && cfg.MetricsAddr != "" {
		p := metrics.NewPrometheus(metrics.NewPrometheusOptions{
			ReqCntURLLabelMappingFn: func(c *gin.Context) string {
				if fp := c.FullPath(); fp != "" {
					return fp
				}
				return c.Request.URL.Path
			},
			Logger: log,
		})
		p.SetListenAddress(cfg.MetricsAddr)
		p.Use(r)

		log.Infow("metrics started", "addr", cfg.MetricsAddr)
	}
	// Public group: request logger + access log
	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	handlers.RegisterHealthRoutes(pub)
	// Swagger UI
	docs.SwaggerInfo.BasePath = "/"
	pub.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Storefront APIs
	api := r.Group("/api")
	api.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	handlers.RegisterCatalogRoutes(api, cat)
	handlers.RegisterUserRoutes(api, guests)
	handlers.RegisterOrderRoutes(api, orders, guests, log)
	handlers.RegisterPaymentRoutes(api, orders, client, cfg)

	// Gateway-facing endpoints: PayU posts form data here
	handlers.RegisterPaymentCallbackRoutes(api, callbacks)
	handlers.RegisterPaymentWebhookRoutes(api, callbacks)

	// Admin APIs
	apiV1 := r.Group("/api/v1")
	apiV1.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	handlers.RegisterAdminRoutes(apiV1.Group("/admin"), rec)
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil {
					log.Errorf("server error: %v", err)
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Provide(handlers.NewPaymentCallbacks),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)
