package server

import (
	"context"
	"net/http"
	"time"

	cartdomain "github.com/Blits-planeet/driftv8.xyz/internal/cart/domain"
	"github.com/Blits-planeet/driftv8.xyz/internal/config"
	contactdomain "github.com/Blits-planeet/driftv8.xyz/internal/contact/domain"
	customorderdomain "github.com/Blits-planeet/driftv8.xyz/internal/customorder/domain"
	donationdomain "github.com/Blits-planeet/driftv8.xyz/internal/donation/domain"
	"github.com/Blits-planeet/driftv8.xyz/internal/metrics"
	orderdomain "github.com/Blits-planeet/driftv8.xyz/internal/order/domain"
	paymentdomain "github.com/Blits-planeet/driftv8.xyz/internal/payment/domain"
	"github.com/Blits-planeet/driftv8.xyz/internal/ratelimit"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, log *zap.Logger, m *metrics.Metrics) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(m.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", m.Handler())

	return r
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	orderSvc        orderdomain.Service
	customOrderSvc  customorderdomain.Service
	contactSvc      contactdomain.Service
	cartSvc         cartdomain.Service
	donationSvc     donationdomain.Service
	paymentSvc      paymentdomain.Service
	checkoutLimiter *ratelimit.Limiter
}

type Params struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	OrderSvc        orderdomain.Service
	CustomOrderSvc  customorderdomain.Service
	ContactSvc      contactdomain.Service
	CartSvc         cartdomain.Service
	DonationSvc     donationdomain.Service
	PaymentSvc      paymentdomain.Service
	CheckoutLimiter *ratelimit.Limiter
}

func NewServer(p Params) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		orderSvc:        p.OrderSvc,
		customOrderSvc:  p.CustomOrderSvc,
		contactSvc:      p.ContactSvc,
		cartSvc:         p.CartSvc,
		donationSvc:     p.DonationSvc,
		paymentSvc:      p.PaymentSvc,
		checkoutLimiter: p.CheckoutLimiter,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	api.POST("/payments/webhooks/:provider", s.HandlePaymentWebhook)
	api.POST("/checkout", s.CheckoutRateLimit(), s.CreateCheckout)
	api.GET("/checkout/sessions/:id", s.GetCheckoutSession)

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.PATCH("/orders/:id/rating", s.UpdateOrderRating)

	api.POST("/custom-orders", s.CreateCustomOrder)
	api.GET("/custom-orders", s.ListCustomOrders)

	api.POST("/contact", s.CreateContact)
	api.GET("/contact", s.ListContacts)

	api.POST("/cart", s.AddCartItem)
	api.GET("/cart", s.ListCartItems)
	api.PATCH("/cart/:id", s.UpdateCartItem)
	api.DELETE("/cart/:id", s.RemoveCartItem)
	api.DELETE("/cart", s.ClearCart)

	api.POST("/donations", s.CreateDonation)
	api.GET("/donations", s.ListDonations)
	api.GET("/donations/success", s.DonationSuccess)
}

func (s *Server) CheckoutRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.checkoutLimiter.Allow(c.Request.Context(), c.ClientIP()) {
			AbortWithError(c, ErrRateLimited)
			return
		}
		c.Next()
	}
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
