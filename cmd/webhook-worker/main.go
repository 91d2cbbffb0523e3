// cmd/webhook-worker/main.go
package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/Kabudence/coupon-microservice/internal/pkg/bootstrap"
	"github.com/Kabudence/coupon-microservice/internal/pkg/logger"
	"github.com/Kabudence/coupon-microservice/internal/pkg/mq"
	"github.com/Kabudence/coupon-microservice/internal/pkg/mysql"
	"github.com/Kabudence/coupon-microservice/internal/pkg/tracing"
	"github.com/Kabudence/coupon-microservice/internal/pkg/zookeeper"
	"github.com/Kabudence/coupon-microservice/internal/service/payment/application"
	"github.com/Kabudence/coupon-microservice/internal/service/payment/infrastructure"
	"github.com/Kabudence/coupon-microservice/internal/service/payment/interfaces"
)

const (
	serviceName   = "webhook-worker"
	consumerGroup = "webhook-worker"
	drainLockName = "webhook-drain"

	// sweepInterval 控制兜底扫描的频率，扫描补上丢失的 Kafka 通知
	sweepInterval = time.Minute
	sweepBatch    = 100
)

func main() {
	logger.Init(serviceName)
	cfg := bootstrap.GetCurrentConfig()

	workerID := uuid.NewString()
	log.Printf("✅ %s starting, worker id %s", serviceName, workerID)

	tp, err := tracing.InitTracerProvider(serviceName, cfg.Infra.Jaeger.Endpoint)
	if err != nil {
		log.Fatalf("🛑 failed to initialize tracer provider: %v", err)
	}

	db, err := mysql.NewGormDB(cfg.Infra.Mysql.DSN)
	if err != nil {
		log.Fatalf("🛑 failed to connect mysql: %v", err)
	}

	zkConn, err := zookeeper.NewConn(cfg.Infra.Zookeeper.Servers)
	if err != nil {
		log.Fatalf("🛑 failed to connect zookeeper: %v", err)
	}
	defer zkConn.Close()

	brokers := strings.Split(cfg.Infra.Kafka.Brokers, ",")
	reader := mq.NewKafkaReader(brokers, cfg.Infra.Kafka.WebhookTopic, consumerGroup)
	defer reader.Close()

	tracer := otel.Tracer(serviceName)
	webhookService := application.NewWebhookService(
		infrastructure.NewGormWebhookEventRepository(db), nil, nil, tracer)

	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return consumeLoop(ctx, reader, webhookService) })
	g.Go(func() error { return sweepLoop(ctx, zkConn, webhookService) })

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutting down %s...", serviceName)
	cancel()

	if err := g.Wait(); err != nil && err != context.Canceled {
		log.Printf("worker stopped with error: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down tracer provider: %v", err)
	}
	log.Printf("%s gracefully shut down.", serviceName)
}

// consumeLoop 逐条消费回调通知并推进事件状态，处理成功后手动提交位点
func consumeLoop(ctx context.Context, reader *kafka.Reader, service *application.WebhookService) error {
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Logger().Error().Err(err).Msg("failed to fetch message")
			continue
		}

		// 恢复生产端注入的追踪上下文
		carrier := mq.KafkaHeaderCarrier(msg.Headers)
		msgCtx := otel.GetTextMapPropagator().Extract(ctx, &carrier)

		var notice infrastructure.WebhookReceivedMessage
		if err := json.Unmarshal(msg.Value, &notice); err != nil {
			logger.Ctx(msgCtx).Error().Err(err).Msg("dropping malformed webhook notice")
			if err := reader.CommitMessages(ctx, msg); err != nil {
				logger.Logger().Error().Err(err).Msg("failed to commit offset")
			}
			continue
		}

		if _, err := service.MarkProcessed(msgCtx, notice.EventID); err != nil {
			// 不提交位点，等待下一轮重试
			logger.Ctx(msgCtx).Error().Err(err).
				Int64("event_id", notice.EventID).
				Msg("⚠️ failed to process webhook event")
			continue
		}

		logger.Ctx(msgCtx).Info().
			Int64("event_id", notice.EventID).
			Str("provider", notice.Provider).
			Msg("✅ webhook event processed")

		if err := reader.CommitMessages(ctx, msg); err != nil {
			logger.Logger().Error().Err(err).Msg("failed to commit offset")
		}
	}
}

// sweepLoop 周期性地持锁扫描未处理的事件，补上 Kafka 通知丢失的行。
// 分布式锁保证同一时刻只有一个实例在排空。
func sweepLoop(ctx context.Context, zkConn *zookeeper.Conn, service *application.WebhookService) error {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := sweepOnce(ctx, zkConn, service); err != nil {
				logger.Logger().Error().Err(err).Msg("sweep failed")
			}
		}
	}
}

func sweepOnce(ctx context.Context, zkConn *zookeeper.Conn, service *application.WebhookService) error {
	lock := zookeeper.NewDistributedLock(zkConn, drainLockName)
	if err := lock.Lock(); err != nil {
		return err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Logger().Error().Err(err).Msg("failed to release drain lock")
		}
	}()

	swept := 0
	for {
		events, err := service.ListUnprocessed(ctx, "", "", sweepBatch, 0)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			break
		}
		for _, event := range events {
			if _, err := service.MarkProcessed(ctx, event.ID); err != nil {
				return err
			}
			swept++
		}
		if len(events) < sweepBatch {
			break
		}
	}

	backlog, err := service.CountUnprocessed(ctx)
	if err != nil {
		return err
	}
	interfaces.SetUnprocessedBacklog(backlog)

	if swept > 0 {
		logger.Logger().Info().Int("swept", swept).Int64("backlog", backlog).Msg("unprocessed webhook events drained")
	}
	return nil
}
