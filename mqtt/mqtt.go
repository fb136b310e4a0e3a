// Package mqtt reports access decisions to an optional broker and
// accepts remote unlock commands. With no host configured the client
// is a no-op: the device runs fully offline.
package mqtt

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

// Client wraps the MQTT client with device-specific topics.
type Client struct {
	client       paho.Client
	clientID     string
	enabled      bool
	remoteUnlock bool
	onConnect    func()
	onDisconnect func()
	onUnlock     func()
}

// Config holds MQTT connection settings.
type Config struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	CACert       string `yaml:"ca_cert"`
	ClientCert   string `yaml:"client_cert"`
	ClientKey    string `yaml:"client_key"`
	RemoteUnlock bool   `yaml:"remote_unlock"` // accept unlock commands from the broker
}

// Handlers holds callback functions for MQTT events.
type Handlers struct {
	OnConnect    func()
	OnDisconnect func()
	OnUnlock     func()
}

// AccessEvent is the JSON payload published for every decision
// change.
type AccessEvent struct {
	EventID   string    `json:"event_id"`
	FaceName  string    `json:"face_name"`
	TagName   string    `json:"tag_name"`
	Granted   bool      `json:"granted"`
	Timestamp time.Time `json:"timestamp"`
}

// New creates a new MQTT client. Returns a disabled no-op client if
// host is empty.
func New(cfg Config, clientID string, handlers Handlers) (*Client, error) {
	c := &Client{
		clientID:     clientID,
		remoteUnlock: cfg.RemoteUnlock,
		onConnect:    handlers.OnConnect,
		onDisconnect: handlers.OnDisconnect,
		onUnlock:     handlers.OnUnlock,
	}

	if cfg.Host == "" {
		c.enabled = false
		log.Println("MQTT disabled (no host configured)")
		return c, nil
	}
	c.enabled = true

	var broker string
	var tlsConfig *tls.Config

	if cfg.CACert != "" || cfg.ClientCert != "" {
		if cfg.Port == 0 {
			cfg.Port = 8883
		}
		broker = fmt.Sprintf("ssl://%s:%d", cfg.Host, cfg.Port)

		var err error
		tlsConfig, err = buildTLSConfig(cfg)
		if err != nil {
			return nil, fmt.Errorf("build TLS config: %w", err)
		}
	} else {
		if cfg.Port == 0 {
			cfg.Port = 1883
		}
		broker = fmt.Sprintf("tcp://%s:%d", cfg.Host, cfg.Port)
		log.Println("MQTT using non-TLS connection")
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetKeepAlive(60 * time.Second).
		SetConnectionLostHandler(c.handleConnectionLost).
		SetOnConnectHandler(c.handleConnect).
		SetDefaultPublishHandler(c.handleMessage)

	if tlsConfig != nil {
		opts.SetTLSConfig(tlsConfig)
	}

	c.client = paho.NewClient(opts)

	paho.ERROR = log.New(os.Stdout, "[MQTT ERROR] ", 0)
	paho.CRITICAL = log.New(os.Stdout, "[MQTT CRIT] ", 0)

	return c, nil
}

// Connect establishes the broker connection. No-op when disabled.
func (c *Client) Connect() error {
	if !c.enabled {
		return nil
	}
	token := c.client.Connect()
	token.Wait()
	return token.Error()
}

// Disconnect closes the broker connection. No-op when disabled.
func (c *Client) Disconnect() {
	if !c.enabled {
		return
	}
	c.client.Disconnect(250)
}

// PublishAccess reports one decision change, tagged with a fresh
// event id.
func (c *Client) PublishAccess(faceName, tagName string, granted bool) {
	evt := AccessEvent{
		EventID:   uuid.New().String(),
		FaceName:  faceName,
		TagName:   tagName,
		Granted:   granted,
		Timestamp: time.Now().UTC(),
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		log.Printf("Marshal access event: %v", err)
		return
	}
	c.publish(fmt.Sprintf("smartdoor/status/%s/access", c.clientID), string(payload))
}

// Ping publishes a liveness message.
func (c *Client) Ping() {
	c.publish(fmt.Sprintf("smartdoor/status/%s/ping", c.clientID), `{"status":"ok"}`)
}

func (c *Client) publish(topic, payload string) {
	if !c.enabled {
		return
	}
	token := c.client.Publish(topic, 0, false, payload)
	go func() {
		token.Wait()
		if err := token.Error(); err != nil {
			log.Printf("Publish %s: %v", topic, err)
		}
	}()
}

func (c *Client) unlockTopic() string {
	return fmt.Sprintf("smartdoor/control/%s/unlock", c.clientID)
}

func (c *Client) handleConnect(client paho.Client) {
	log.Println("MQTT connected")
	if c.remoteUnlock {
		token := client.Subscribe(c.unlockTopic(), 1, nil)
		go func() {
			token.Wait()
			if err := token.Error(); err != nil {
				log.Printf("Subscribe %s: %v", c.unlockTopic(), err)
			}
		}()
	}
	if c.onConnect != nil {
		c.onConnect()
	}
}

func (c *Client) handleConnectionLost(client paho.Client, err error) {
	log.Printf("MQTT connection lost: %v", err)
	if c.onDisconnect != nil {
		c.onDisconnect()
	}
}

func (c *Client) handleMessage(client paho.Client, msg paho.Message) {
	if msg.Topic() == c.unlockTopic() && c.remoteUnlock && c.onUnlock != nil {
		c.onUnlock()
	}
}

func buildTLSConfig(cfg Config) (*tls.Config, error) {
	tlsConfig := &tls.Config{}

	if cfg.CACert != "" {
		caCert, err := os.ReadFile(cfg.CACert)
		if err != nil {
			return nil, fmt.Errorf("read CA cert: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("parse CA cert %s", cfg.CACert)
		}
		tlsConfig.RootCAs = pool
	}

	if cfg.ClientCert != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCert, cfg.ClientKey)
		if err != nil {
			return nil, fmt.Errorf("load client cert: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}
