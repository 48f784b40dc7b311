// Package telemetry bridges the driver to an MQTT broker: decoded
// messages and diagnostics are published, and command topics drive the
// controller remotely.
package telemetry

import (
	"net/url"
	"strings"
	"sync"

	"github.com/denisbrodbeck/machineid"
	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"
)

// Handler is the callback when a message is received.
type Handler func(topic string, payload []byte)

// Queue wraps the MQTT client with a topic prefix.
type Queue struct {
	Client      paho.Client
	TopicPrefix string

	subsLock sync.RWMutex
	subs     map[string]Handler
}

// ClientOptionsFromURL creates ClientOptions from a broker URL of the
// form mqtt://host:port/topic/prefix. The client ID defaults to one
// derived from the machine ID so reconnects from the same host replace
// the stale session.
func ClientOptionsFromURL(serverURL string) (*paho.ClientOptions, string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, "", err
	}
	var server string
	if u.Scheme == "" || u.Scheme == "mqtt" {
		server = "tcp"
	} else {
		server = u.Scheme
	}
	server += "://" + u.Host

	topicPrefix := strings.TrimPrefix(u.Path, "/")

	opts := paho.NewClientOptions()
	opts.AddBroker(server).
		SetAutoReconnect(true).
		SetCleanSession(true)
	if u.User != nil {
		opts.SetUsername(u.User.Username())
		if pwd, ok := u.User.Password(); ok {
			opts.SetPassword(pwd)
		}
	}

	clientID := u.Query().Get("client-id")
	if clientID == "" {
		if id, err := machineid.ProtectedID("vesc.go"); err == nil {
			clientID = "vesc-" + id[:12]
		}
	}
	if clientID != "" {
		opts.SetClientID(clientID)
	}

	return opts, topicPrefix, nil
}

// NewQueue creates a Queue.
func NewQueue(options *paho.ClientOptions, topicPrefix string) *Queue {
	q := &Queue{TopicPrefix: topicPrefix, subs: make(map[string]Handler)}
	options.SetOnConnectHandler(q.onConnect)
	options.SetConnectionLostHandler(q.onConnectionLost)
	q.Client = paho.NewClient(options)
	return q
}

// NewQueueFromURL creates a Queue from a broker URL.
func NewQueueFromURL(brokerURL string) (*Queue, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	return NewQueue(opts, topicPrefix), nil
}

// Connect connects to the broker and waits for the result.
func (q *Queue) Connect() error {
	token := q.Client.Connect()
	token.Wait()
	return token.Error()
}

// Close implements io.Closer.
func (q *Queue) Close() error {
	q.Client.Disconnect(0)
	return nil
}

// Sub subscribes a topic. Subscriptions survive reconnects.
func (q *Queue) Sub(topic string, handler Handler) error {
	q.subsLock.Lock()
	q.subs[topic] = handler
	q.subsLock.Unlock()
	return q.subscribe(topic, handler)
}

// Pub publishes to a topic under the queue's prefix.
func (q *Queue) Pub(topic string, payload []byte) {
	q.Client.Publish(q.TopicPrefix+topic, 0, false, payload)
}

func (q *Queue) subscribe(topic string, handler Handler) error {
	if glog.V(2) {
		glog.Infof("SUB %q", q.TopicPrefix+topic)
	}
	token := q.Client.Subscribe(q.TopicPrefix+topic, 0, func(c paho.Client, msg paho.Message) {
		handler(strings.TrimPrefix(msg.Topic(), q.TopicPrefix), msg.Payload())
	})
	token.Wait()
	return token.Error()
}

func (q *Queue) onConnect(paho.Client) {
	glog.Info("broker connected")
	q.subsLock.RLock()
	defer q.subsLock.RUnlock()
	for topic, handler := range q.subs {
		if err := q.subscribe(topic, handler); err != nil {
			glog.Errorf("resubscribe %q: %v", topic, err)
		}
	}
}

func (q *Queue) onConnectionLost(c paho.Client, err error) {
	glog.Warningf("broker connection lost: %v", err)
}
