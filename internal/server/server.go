package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dormos/dormos/internal/config"
	"github.com/dormos/dormos/internal/contract"
	contractdomain "github.com/dormos/dormos/internal/contract/domain"
	"github.com/dormos/dormos/internal/invoice"
	invoicedomain "github.com/dormos/dormos/internal/invoice/domain"
	obslogger "github.com/dormos/dormos/internal/observability/logger"
	obsmetrics "github.com/dormos/dormos/internal/observability/metrics"
	"github.com/dormos/dormos/internal/payment"
	paymentdomain "github.com/dormos/dormos/internal/payment/domain"
	"github.com/dormos/dormos/internal/reading"
	readingdomain "github.com/dormos/dormos/internal/reading/domain"
	"github.com/dormos/dormos/internal/room"
	roomdomain "github.com/dormos/dormos/internal/room/domain"
	"github.com/dormos/dormos/internal/settings"
	settingsdomain "github.com/dormos/dormos/internal/settings/domain"
	"github.com/dormos/dormos/internal/tenant"
	tenantdomain "github.com/dormos/dormos/internal/tenant/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	room.Module,
	tenant.Module,
	contract.Module,
	reading.Module,
	settings.Module,
	invoice.Module,
	payment.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(log, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
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

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	roomSvc     roomdomain.Service
	tenantSvc   tenantdomain.Service
	contractSvc contractdomain.Service
	readingSvc  readingdomain.Service
	settingsSvc settingsdomain.Service
	invoiceSvc  invoicedomain.Service
	paymentSvc  paymentdomain.Service
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	RoomSvc     roomdomain.Service
	TenantSvc   tenantdomain.Service
	ContractSvc contractdomain.Service
	ReadingSvc  readingdomain.Service
	SettingsSvc settingsdomain.Service
	InvoiceSvc  invoicedomain.Service
	PaymentSvc  paymentdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		roomSvc:     p.RoomSvc,
		tenantSvc:   p.TenantSvc,
		contractSvc: p.ContractSvc,
		readingSvc:  p.ReadingSvc,
		settingsSvc: p.SettingsSvc,
		invoiceSvc:  p.InvoiceSvc,
		paymentSvc:  p.PaymentSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	api.GET("/rooms", s.ListRooms)
	api.POST("/rooms", s.CreateRoom)
	api.GET("/rooms/:id", s.GetRoom)
	api.PATCH("/rooms/:id", s.UpdateRoom)
	api.DELETE("/rooms/:id", s.DeleteRoom)

	api.GET("/tenants", s.ListTenants)
	api.POST("/tenants", s.CreateTenant)
	api.GET("/tenants/:id", s.GetTenant)
	api.PATCH("/tenants/:id", s.UpdateTenant)
	api.DELETE("/tenants/:id", s.DeleteTenant)

	api.GET("/readings", s.ListReadings)
	api.POST("/readings", s.UpsertReading)
	api.DELETE("/readings/:id", s.DeleteReading)
	api.GET("/readings/summary", s.ReadingSummary)
	api.GET("/readings/consumption", s.ReadingConsumption)
	api.GET("/readings/history", s.ReadingHistory)

	api.GET("/contracts", s.ListContracts)
	api.POST("/contracts", s.CreateContract)
	api.GET("/contracts/expiring", s.ExpiringContracts)
	api.GET("/contracts/:id", s.GetContract)
	api.POST("/contracts/:id/renew", s.RenewContract)
	api.POST("/contracts/:id/terminate", s.TerminateContract)

	api.GET("/invoices", s.ListInvoices)
	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices/:id", s.GetInvoice)
	api.DELETE("/invoices/:id", s.DeleteInvoice)
	api.GET("/invoices/:id/payments", s.ListInvoicePayments)

	api.POST("/payments", s.SubmitPayment)
	api.POST("/payments/:id/verify", s.VerifyPayment)

	api.GET("/settings/billing", s.GetBillingSettings)
	api.PUT("/settings/billing", s.UpdateBillingSettings)
}
