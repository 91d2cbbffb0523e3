// cmd/coupon-service/main.go
package main

import (
	"log"

	"go.opentelemetry.io/otel"

	"github.com/Kabudence/coupon-microservice/internal/pkg/bootstrap"
	"github.com/Kabudence/coupon-microservice/internal/pkg/mysql"
	"github.com/Kabudence/coupon-microservice/internal/pkg/redis"
	"github.com/Kabudence/coupon-microservice/internal/service/coupon/application"
	"github.com/Kabudence/coupon-microservice/internal/service/coupon/infrastructure"
	"github.com/Kabudence/coupon-microservice/internal/service/coupon/interfaces"
)

const (
	serviceName = "coupon-service"
	servicePort = 8080

	// 单张券允许的客群定价条数上限，0 表示不限制
	maxSegmentPricesPerCoupon = 50
)

func main() {
	cfg := bootstrap.GetCurrentConfig()

	db, err := mysql.NewGormDB(cfg.Infra.Mysql.DSN)
	if err != nil {
		log.Fatalf("🛑 failed to connect mysql: %v", err)
	}

	rdb, err := redis.NewClient(cfg.Infra.Redis.Addrs)
	if err != nil {
		log.Fatalf("🛑 failed to connect redis: %v", err)
	}

	tracer := otel.Tracer(serviceName)

	// 仓储层：触发映射读多写少，套一层 Redis 读穿缓存
	triggerRepo := infrastructure.NewCachedTriggerMappingRepository(
		infrastructure.NewGormTriggerMappingRepository(db), rdb)

	catalogService := application.NewCatalogService(
		infrastructure.NewGormDiscountTypeRepository(db),
		infrastructure.NewGormCouponTypeRepository(db),
		infrastructure.NewGormCategoryRepository(db),
		infrastructure.NewGormEventRepository(db),
		tracer,
	)
	couponService := application.NewCouponService(
		infrastructure.NewGormCouponRepository(db),
		infrastructure.NewGormCouponProductRepository(db),
		tracer,
	)
	triggerService := application.NewTriggerMappingService(triggerRepo, tracer)
	eligibilityService := application.NewEligibilityService(triggerRepo, tracer)
	segmentService := application.NewSegmentService(
		infrastructure.NewGormSegmentRepository(db),
		infrastructure.NewGormSegmentPriceRepository(db),
		maxSegmentPricesPerCoupon,
		tracer,
	)
	clientService := application.NewClientCouponService(
		infrastructure.NewGormClientCouponRepository(db), tracer)
	allianceService := application.NewAllianceService(
		infrastructure.NewGormAllianceRepository(db), tracer)

	bootstrap.StartService(bootstrap.AppInfo{
		ServiceName: serviceName,
		Port:        servicePort,
		RegisterHandlers: func(appCtx bootstrap.AppCtx) {
			interfaces.NewCatalogHandler(catalogService).RegisterRoutes(appCtx.Mux)
			interfaces.NewCouponHandler(couponService).RegisterRoutes(appCtx.Mux)
			interfaces.NewTriggerMappingHandler(triggerService).RegisterRoutes(appCtx.Mux)
			interfaces.NewEligibilityHandler(eligibilityService).RegisterRoutes(appCtx.Mux)
			interfaces.NewSegmentHandler(segmentService).RegisterRoutes(appCtx.Mux)
			interfaces.NewClientCouponHandler(clientService).RegisterRoutes(appCtx.Mux)
			interfaces.NewAllianceHandler(allianceService).RegisterRoutes(appCtx.Mux)
		},
	})
}
