package mqtt

import (
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"
)

const connectTimeout = 10 * time.Second

// Config - параметры подключения к брокеру
type Config struct {
	Broker   string
	ClientID string
}

// NewOptions собирает опции клиента с автоматическим переподключением.
// onConnect вызывается при каждом (пере)подключении, в нем оформляются подписки.
func NewOptions(cfg Config, onConnect paho.OnConnectHandler, log *logrus.Logger) *paho.ClientOptions {
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetCleanSession(false).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(2 * time.Second).
		SetMaxReconnectInterval(30 * time.Second)

	opts.SetOnConnectHandler(func(c paho.Client) {
		log.WithFields(logrus.Fields{
			"broker":    cfg.Broker,
			"client_id": cfg.ClientID,
		}).Info("MQTT connection established")
		if onConnect != nil {
			onConnect(c)
		}
	})

	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		log.WithError(err).WithField("broker", cfg.Broker).Warn("MQTT connection lost, will auto-reconnect")
	})

	return opts
}

// Connect подключается к брокеру и ждет первого подключения не дольше connectTimeout
func Connect(cfg Config, onConnect paho.OnConnectHandler, log *logrus.Logger) (paho.Client, error) {
	client := paho.NewClient(NewOptions(cfg, onConnect, log))

	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		client.Disconnect(0)
		return nil, fmt.Errorf("mqtt connect: timeout after %v", connectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return client, nil
}
