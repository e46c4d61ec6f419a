package rabbitmq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher is the piece of MQConn the service layer depends on.
type Publisher interface {
	Publish(queue string, body []byte) error
}

type MQConn struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func Dial(url string) (*MQConn, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("error establishing connection with rabbitmq: %s", err.Error())
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("error opening channel for rabbitmq: %s", err.Error())
	}

	return &MQConn{conn: conn, ch: ch}, nil
}

func (m *MQConn) Publish(queue string, body []byte) error {
	q, err := m.ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return err
	}

	return m.ch.Publish("", q.Name, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

func (m *MQConn) Close() {
	if m.ch != nil {
		m.ch.Close()
	}
	if m.conn != nil {
		m.conn.Close()
	}
}
