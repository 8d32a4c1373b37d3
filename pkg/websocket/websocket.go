package websocketPkg

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// IChatClient is a client side of the chat websocket, used by the terminal
// client to talk to a running server.
type IChatClient interface {
	Connect() error
	Send(text string) error
	Listen(onMessage func(text string)) error
	Close()
}

type chatClient struct {
	url          string
	conn         *websocket.Conn
	mu           sync.Mutex
	writeTimeout time.Duration
}

func NewChatClient(url string) IChatClient {
	return &chatClient{
		url:          url,
		writeTimeout: 5 * time.Second,
	}
}

func (c *chatClient) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}

	dialer := websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.Dial(c.url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", c.url, err)
	}

	conn.SetPingHandler(func(appData string) error {
		err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(c.writeTimeout))
		if err != nil {
			log.Printf("Error sending pong: %v", err)
		}
		return nil
	})

	c.conn = conn
	return nil
}

func (c *chatClient) Send(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return fmt.Errorf("not connected to %s", c.url)
	}

	c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	if err := c.conn.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		c.conn.Close()
		c.conn = nil
		return fmt.Errorf("error sending chat frame: %w", err)
	}
	c.conn.SetWriteDeadline(time.Time{})

	return nil
}

// Listen reads frames until the connection drops, invoking onMessage for each
// text frame. It blocks the calling goroutine.
func (c *chatClient) Listen(onMessage func(text string)) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		return fmt.Errorf("not connected to %s", c.url)
	}

	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return fmt.Errorf("error reading chat frame: %w", err)
			}
			return nil
		}

		if messageType == websocket.TextMessage {
			onMessage(string(message))
		}
	}
}

func (c *chatClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return
	}

	deadline := time.Now().Add(c.writeTimeout)
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	c.conn.Close()
	c.conn = nil
}
