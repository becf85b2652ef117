package realtime

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sync"

	"github.com/gorilla/websocket"
)

const defaultOutboundQueueSize = 256

// ErrTransportClosed is returned by Send once the sender loop has stopped,
// either through Close or after a fatal write failure.
var ErrTransportClosed = errors.New("session transport closed")

// Client is a duplex session transport. A single sender goroutine drains the
// outbound command queue in enqueue order and is the sole writer to the
// wire; Listen is the sole reader.
type Client struct {
	conn *websocket.Conn

	outbound   chan ClientEvent
	quit       chan struct{}
	senderDone chan struct{}

	closeOnce sync.Once

	mu       sync.Mutex
	writeErr error
}

// Dial opens the websocket connection and starts the sender loop.
func Dial(ctx context.Context, opts ...DialOption) (*Client, error) {
	options := DialOptions{
		BaseURL:           defaultBaseURL,
		Model:             defaultModel,
		OutboundQueueSize: defaultOutboundQueueSize,
	}
	for _, opt := range opts {
		opt(&options)
	}

	if options.APIKey == "" {
		apiKey, ok := os.LookupEnv("OPENAI_API_KEY")
		if !ok {
			return nil, fmt.Errorf("api key not found")
		}
		options.APIKey = apiKey
	}

	sessionURL, err := url.Parse(options.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid session url: %w", err)
	}
	queryParams := sessionURL.Query()
	queryParams.Set("model", options.Model)
	sessionURL.RawQuery = queryParams.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, sessionURL.String(), http.Header{
		"Authorization": {"Bearer " + options.APIKey},
		"OpenAI-Beta":   {"realtime=v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open socket connection to session: %w", err)
	}

	client := &Client{
		conn:       conn,
		outbound:   make(chan ClientEvent, options.OutboundQueueSize),
		quit:       make(chan struct{}),
		senderDone: make(chan struct{}),
	}
	go client.sendLoop()

	return client, nil
}

// Send enqueues a command for the sender loop. Commands reach the wire in
// enqueue order. Once the send path has stopped, Send fails with
// [ErrTransportClosed] wrapped around the fatal write error, if any.
func (c *Client) Send(event ClientEvent) error {
	select {
	case <-c.senderDone:
		return c.closedErr()
	default:
	}

	select {
	case <-c.senderDone:
		return c.closedErr()
	case c.outbound <- event:
		return nil
	}
}

func (c *Client) closedErr() error {
	c.mu.Lock()
	writeErr := c.writeErr
	c.mu.Unlock()

	if writeErr != nil {
		return fmt.Errorf("%w: %w", ErrTransportClosed, writeErr)
	}
	return ErrTransportClosed
}

func (c *Client) sendLoop() {
	defer close(c.senderDone)

	for {
		select {
		case <-c.quit:
			return
		case event := <-c.outbound:
			if err := c.conn.WriteJSON(event); err != nil {
				c.mu.Lock()
				c.writeErr = err
				c.mu.Unlock()
				logger.Error("failed to write session command", "error", err)
				return
			}
		}
	}
}

// Listen reads inbound frames until the connection fails or ctx is
// cancelled, dispatching each recognized event to handler in arrival order.
// Non-text frames and undecodable payloads are skipped.
func (c *Client) Listen(ctx context.Context, handler func(ServerEvent)) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			c.Close()
		case <-done:
		}
	}()

	for {
		msgType, msg, err := c.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("failed to read session message: %w", err)
		}
		if msgType != websocket.TextMessage {
			continue
		}

		event, ok := DecodeServerEvent(msg)
		if !ok {
			continue
		}
		handler(event)
	}
}

// Close stops the sender loop and closes the connection. Safe to call more
// than once.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.quit)
		err = c.conn.Close()
	})
	return err
}
