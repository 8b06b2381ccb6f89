package mq

import (
	"context"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/veertradingvadi-ship-it/laboros-sub001/config"
)

// 队列与交换机拓扑，server 发布、worker 消费
const (
	ExchangeEvents = "laboros.events"

	QueueAccessAlerts    = "laboros.access.alerts"
	QueueClosingAlerts   = "laboros.closing.alerts"
	QueueClosingReminder = "laboros.closing.reminders"

	RoutingKeyAccessRequestCreated = "access_request.created"
	RoutingKeyClosingMismatch      = "closing.mismatch"
	RoutingKeyClosingReminder      = "closing.reminder"
)

var (
	conn     *amqp.Connection
	connOnce sync.Once
	connErr  error
)

func Init() error {
	connOnce.Do(func() {
		url := config.Cfg.GetRabbitMQURL()
		conn, connErr = amqp.Dial(url)
		if connErr != nil {
			return
		}

		connErr = declareTopology()
	})

	return connErr
}

func Connection() *amqp.Connection {
	return conn
}

// declareTopology 声明交换机、队列与绑定，幂等
func declareTopology() error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(ExchangeEvents, "topic", true, false, false, false, nil); err != nil {
		return err
	}

	bindings := map[string]string{
		QueueAccessAlerts:    RoutingKeyAccessRequestCreated,
		QueueClosingAlerts:   RoutingKeyClosingMismatch,
		QueueClosingReminder: RoutingKeyClosingReminder,
	}

	for queue, key := range bindings {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return err
		}
		if err := ch.QueueBind(queue, key, ExchangeEvents, false, nil); err != nil {
			return err
		}
	}

	return nil
}

func Close(ctx context.Context) error {
	if conn == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- conn.Close()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}
