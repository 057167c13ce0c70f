package mqtt

import (
	"errors"
	"fmt"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/markusressel/fuzzy2go/internal/configuration"
	"github.com/markusressel/fuzzy2go/internal/ui"
)

const (
	connectTimeout    = 10 * time.Second
	disconnectQuiesce = 250
)

var ErrNoBroker = errors.New("mqtt broker is not configured")

type MessageHandler func(topic string, payload []byte)

// Client is the subset of a broker connection used by sensors and actuators
type Client interface {
	Subscribe(topic string, handler MessageHandler) error
	Publish(topic string, retained bool, payload []byte) error
	Disconnect()
}

type PahoClient struct {
	config configuration.MqttConfig
	client paho.Client
}

func NewClient(config configuration.MqttConfig) (*PahoClient, error) {
	if len(config.Broker) <= 0 {
		return nil, ErrNoBroker
	}

	opts := paho.NewClientOptions().
		AddBroker(config.Broker).
		SetClientID(config.ClientId).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			ui.Warning("Lost connection to mqtt broker %s: %v", config.Broker, err)
		})
	if len(config.Username) > 0 {
		opts.SetUsername(config.Username)
		opts.SetPassword(config.Password)
	}

	client := paho.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("unable to connect to mqtt broker %s: %w", config.Broker, token.Error())
	}
	ui.Info("Connected to mqtt broker %s", config.Broker)

	return &PahoClient{
		config: config,
		client: client,
	}, nil
}

func (c *PahoClient) Subscribe(topic string, handler MessageHandler) error {
	token := c.client.Subscribe(topic, c.config.Qos, func(_ paho.Client, msg paho.Message) {
		handler(msg.Topic(), msg.Payload())
	})
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("unable to subscribe to %s: %w", topic, token.Error())
	}
	return nil
}

func (c *PahoClient) Publish(topic string, retained bool, payload []byte) error {
	token := c.client.Publish(topic, c.config.Qos, retained, payload)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("unable to publish to %s: %w", topic, token.Error())
	}
	return nil
}

func (c *PahoClient) Disconnect() {
	c.client.Disconnect(disconnectQuiesce)
}

var (
	sharedMu     sync.Mutex
	sharedClient Client
)

// Shared returns the process wide broker connection, connecting on first use
func Shared() (Client, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if sharedClient != nil {
		return sharedClient, nil
	}
	client, err := NewClient(configuration.CurrentConfig.Mqtt)
	if err != nil {
		return nil, err
	}
	sharedClient = client
	return sharedClient, nil
}

// SetShared replaces the shared connection, nil disconnects it
func SetShared(client Client) {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if client == nil && sharedClient != nil {
		sharedClient.Disconnect()
	}
	sharedClient = client
}
