package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/veertradingvadi-ship-it/laboros-sub001/config"
	"github.com/veertradingvadi-ship-it/laboros-sub001/pkg/logger"
	mqotel "github.com/veertradingvadi-ship-it/laboros-sub001/pkg/mq"
)

// 发布通道单例 + 读写锁，断线后下一次发布时重建

var (
	publisherCh *amqp.Channel
	pubMutex    sync.RWMutex
)

func getPublisherChannel() (*amqp.Channel, error) {
	pubMutex.RLock()
	if publisherCh != nil && !publisherCh.IsClosed() {
		ch := publisherCh
		pubMutex.RUnlock()
		return ch, nil
	}
	pubMutex.RUnlock()

	pubMutex.Lock()
	defer pubMutex.Unlock()

	if publisherCh != nil && !publisherCh.IsClosed() {
		return publisherCh, nil
	}

	if conn == nil {
		return nil, fmt.Errorf("RabbitMQ connection is nil")
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open publish channel")
	}

	publisherCh = ch

	go func() {
		closeChan := make(chan *amqp.Error, 1)
		closeChan = ch.NotifyClose(closeChan)
		<-closeChan

		pubMutex.Lock()
		publisherCh = nil
		pubMutex.Unlock()

		logger.Logger.Warn("Publisher channel closed, will recreate on next publish",
			zap.String("component", "rabbitmq"),
		)
	}()

	logger.Logger.Info("Publisher channel created",
		zap.String("component", "rabbitmq"),
	)

	return publisherCh, nil
}

// PublishMessage 发送普通消息
func PublishMessage(exchange, routingKey string, body interface{}) error {
	ch, err := getPublisherChannel()
	if err != nil {
		return err
	}

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	publishing := amqp.Publishing{
		ContentType:  "application/json",
		Body:         bodyBytes,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	}

	if config.Cfg.TracingEnabled {
		err = mqotel.PublishWithTracing(context.Background(), ch, config.Cfg.ServiceName, exchange, routingKey, publishing)
	} else {
		err = ch.Publish(exchange, routingKey, false, false, publishing)
	}

	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}
