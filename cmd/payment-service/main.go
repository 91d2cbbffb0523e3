// cmd/payment-service/main.go
package main

import (
	"context"
	"log"
	"strings"

	"go.opentelemetry.io/otel"

	"github.com/Kabudence/coupon-microservice/internal/pkg/bootstrap"
	"github.com/Kabudence/coupon-microservice/internal/pkg/mq"
	"github.com/Kabudence/coupon-microservice/internal/pkg/mysql"
	"github.com/Kabudence/coupon-microservice/internal/service/payment/application"
	"github.com/Kabudence/coupon-microservice/internal/service/payment/infrastructure"
	"github.com/Kabudence/coupon-microservice/internal/service/payment/interfaces"
)

const (
	serviceName = "payment-service"
	servicePort = 8081
)

func main() {
	cfg := bootstrap.GetCurrentConfig()

	db, err := mysql.NewGormDB(cfg.Infra.Mysql.DSN)
	if err != nil {
		log.Fatalf("🛑 failed to connect mysql: %v", err)
	}

	brokers := strings.Split(cfg.Infra.Kafka.Brokers, ",")
	webhookWriter := mq.NewKafkaWriter(brokers, cfg.Infra.Kafka.WebhookTopic)

	tracer := otel.Tracer(serviceName)

	partyService := application.NewPartyService(
		infrastructure.NewGormPartyRepository(db), tracer)
	accountService := application.NewProviderAccountService(
		infrastructure.NewGormProviderAccountRepository(db), tracer)
	customerService := application.NewProviderCustomerService(
		infrastructure.NewGormProviderCustomerRepository(db), tracer)
	sourceService := application.NewPaymentSourceService(
		infrastructure.NewGormPaymentSourceRepository(db), tracer)
	orderService := application.NewOrderService(
		infrastructure.NewGormOrderRepository(db), tracer)
	checkoutService := application.NewCheckoutSessionService(
		infrastructure.NewGormCheckoutSessionRepository(db), tracer)
	webhookService := application.NewWebhookService(
		infrastructure.NewGormWebhookEventRepository(db),
		infrastructure.NewKafkaWebhookPublisher(webhookWriter),
		cfg.Webhook.Secrets,
		tracer,
	)

	bootstrap.StartService(bootstrap.AppInfo{
		ServiceName: serviceName,
		Port:        servicePort,
		RegisterHandlers: func(appCtx bootstrap.AppCtx) {
			interfaces.NewPartyHandler(partyService).RegisterRoutes(appCtx.Mux)
			interfaces.NewProviderAccountHandler(accountService).RegisterRoutes(appCtx.Mux)
			interfaces.NewProviderCustomerHandler(customerService).RegisterRoutes(appCtx.Mux)
			interfaces.NewPaymentSourceHandler(sourceService).RegisterRoutes(appCtx.Mux)
			interfaces.NewOrderHandler(orderService).RegisterRoutes(appCtx.Mux)
			interfaces.NewCheckoutSessionHandler(checkoutService).RegisterRoutes(appCtx.Mux)
			interfaces.NewWebhookHandler(webhookService).RegisterRoutes(appCtx.Mux)
		},
		OnShutdown: func(ctx context.Context) {
			if err := webhookWriter.Close(); err != nil {
				log.Printf("Error closing kafka writer: %v", err)
			}
		},
	})
}
