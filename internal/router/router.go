package router

import (
	"net/http"
	"strings"

	"github.com/LoushikLK/dynamic-pricing-food-service/internal/cache"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/config"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/constants"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/http/handlers/api"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/http/handlers/shared"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/http/response"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/http/validation"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/logger"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/models"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/provider"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()
	validation.Register()

	h := api.New(c)
	pricingRule := RateLimitRule{
		Prefix:        cache.Key("rate", "pricing"),
		WindowSeconds: cfg.RateLimit.Pricing.WindowSeconds,
		MaxRequests:   cfg.RateLimit.Pricing.MaxRequests,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	if cfg.Telemetry.Enabled {
		r.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	r.Use(LoggerMiddleware(log))
	r.Use(c.Metrics.Middleware())
	r.Use(SecurityHeadersMiddleware())
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/healthz", healthHandler(c))
	if cfg.Metrics.Enabled && c.Metrics != nil {
		r.GET(metricsPath(cfg.Metrics.Path), gin.WrapH(c.Metrics.Handler()))
	}

	apiV1 := r.Group("/api/v1")
	if cfg.Auth.Enabled {
		apiV1.Use(BearerAuthMiddleware(cfg.Auth.JWTSecret))
	}
	{
		item := apiV1.Group("/item")
		{
			item.POST("", validation.JSON[api.CreateItemRequest](), h.CreateItem)
			item.GET("", validation.Query[api.ItemListQuery](), h.ListItems)
			item.GET("/by-type/:type", validation.URI[api.ItemTypeParam](), h.GetItemByType)
			item.GET("/:id", validation.URI[api.IDParam](), h.GetItem)
			item.PATCH("/:id", validation.URI[api.IDParam](), validation.JSON[api.UpdateItemRequest](), h.UpdateItem)
			item.DELETE("/:id", validation.URI[api.IDParam](), h.DeleteItem)
		}

		organization := apiV1.Group("/organization")
		{
			organization.POST("", validation.JSON[api.OrganizationRequest](), h.CreateOrganization)
			organization.GET("", validation.Query[api.OrganizationListQuery](), h.ListOrganizations)
			organization.GET("/by-name/:name", validation.URI[api.OrganizationNameParam](), h.GetOrganizationByName)
			organization.GET("/:id", validation.URI[api.IDParam](), h.GetOrganization)
			organization.PATCH("/:id", validation.URI[api.IDParam](), validation.JSON[api.OrganizationRequest](), h.UpdateOrganization)
			organization.DELETE("/:id", validation.URI[api.IDParam](), h.DeleteOrganization)
		}

		price := apiV1.Group("/price")
		{
			price.POST("", validation.JSON[api.CreatePricingRequest](), h.CreatePricing)
			price.GET("", validation.Query[api.PricingListQuery](), h.ListPricing)
			price.POST("/pricing",
				RateLimitMiddleware(cache.Client(), pricingRule, KeyByIP),
				validation.JSON[api.DynamicPriceRequest](),
				h.CalculatePrice,
			)
			price.GET("/:id", validation.URI[api.IDParam](), h.GetPricing)
			price.PATCH("/:id", validation.URI[api.IDParam](), validation.JSON[api.UpdatePricingRequest](), h.UpdatePricing)
			price.DELETE("/:id", validation.URI[api.IDParam](), h.DeletePricing)
		}
	}

	r.NoRoute(NotFoundHandler)

	return r
}

// healthHandler 数据库与 Redis 连通性检查
func healthHandler(c *provider.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := models.PingDB(ctx.Request.Context(), c.DB); err != nil {
			shared.RespondError(ctx, response.CodeUnavailable, constants.MsgServiceUnavailable, err)
			return
		}
		if err := cache.Ping(ctx.Request.Context()); err != nil {
			shared.RespondError(ctx, response.CodeUnavailable, constants.MsgServiceUnavailable, err)
			return
		}
		ctx.JSON(http.StatusOK, response.Response{Msg: "ok", Success: true})
	}
}

func metricsPath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return "/metrics"
	}
	if !strings.HasPrefix(path, "/") {
		return "/" + path
	}
	return path
}
