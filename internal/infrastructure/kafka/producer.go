package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/iggarsaudev/Api-IgLusShop/internal/cfg"
	"github.com/iggarsaudev/Api-IgLusShop/internal/usecase"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/e"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/jitter"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/segmentio/kafka-go"
)

const (
	publishRetries = 3
	retryBase      = 100 * time.Millisecond
	retryMax       = 2 * time.Second
)

// Producer публикует события каталога в Kafka.
// Сообщения ключуются по entity_id, чтобы события одной сущности
// попадали в одну партицию и сохраняли порядок.
type Producer struct {
	writer *kafka.Writer
	logger logger.Logger
	cfg    *cfg.KafkaCfg
}

func NewProducer(logger logger.Logger, cfg *cfg.KafkaCfg) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    10,
		BatchTimeout: 500 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warnf("Kafka producer error: %s", err.Error())
			}
		},
	}

	return &Producer{
		writer: writer,
		logger: logger,
		cfg:    cfg,
	}
}

// Publish отправляет событие с ретраями и экспоненциальным отступлением.
func (p *Producer) Publish(ctx context.Context, event *usecase.CatalogEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.EntityID, 10)),
		Value: value,
	}

	for attempt := 0; ; attempt++ {
		err = p.writer.WriteMessages(ctx, msg)
		if err == nil {
			return nil
		}
		if attempt >= publishRetries {
			break
		}

		backoff := jitter.ExponentialBackoff(retryBase, retryMax, attempt, jitter.DefaultJitter)
		p.logger.Warnf("Kafka publish attempt %d failed, retrying in %s: %s", attempt+1, backoff, err.Error())

		select {
		case <-ctx.Done():
			return e.Wrap(whereami.WhereAmI(), ctx.Err())
		case <-time.After(backoff):
		}
	}

	return e.Wrap(whereami.WhereAmI(), err)
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
