package server

import (
	"net/http"
	"time"

	"github.com/HoriaMercan/PM-project/internal/domain"
	"github.com/HoriaMercan/PM-project/internal/network"
	"github.com/HoriaMercan/PM-project/internal/session"
	"github.com/HoriaMercan/PM-project/pkg/api"
	"github.com/HoriaMercan/PM-project/pkg/logger"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между WebSocket и сессией. Одно соединение = одно
// удаленное устройство.
type Client struct {
	Session *session.Session
	Hub     *network.Broadcaster
	Conn    *websocket.Conn
	Address domain.Address

	// send - личный канал из Hub, его читает writePump
	send chan api.ServerResponse
}

func NewClient(s *session.Session, hub *network.Broadcaster, conn *websocket.Conn, addr domain.Address) *Client {
	return &Client{
		Session: s,
		Hub:     hub,
		Conn:    conn,
		Address: addr,
		send:    hub.Register(addr),
	}
}

func (c *Client) log() *logrus.Entry {
	return logger.Log.WithField("address", c.Address)
}

// readPump читает сообщения устройства: эхо отправителю и в очередь сессии.
func (c *Client) readPump() {
	defer func() {
		// Если адрес уже перехвачен новым соединением, устройство не отключаем
		if c.Hub.Unregister(c.Address, c.send) {
			c.Session.Disconnect(c.Address)
			c.log().WithField("subscribers", c.Hub.SubscriberCount()).Info("Client disconnected")
		}
		if err := c.Conn.Close(); err != nil {
			c.log().WithError(err).Debug("failed to close websocket connection")
		}
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log().WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			c.log().WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	c.Session.Connect(c.Address)
	c.log().WithField("subscribers", c.Hub.SubscriberCount()).Info("Client connected")

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log().WithError(err).Error("WS error")
			}
			break
		}

		// Эхо как notify характеристики: сырые данные обратно отправителю
		c.Hub.SendTo(c.Address, api.ServerResponse{
			Type:   api.TypeEcho,
			Echo:   string(data),
			Viewer: -1,
		})
		c.Session.Enqueue(c.Address, data)
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			c.log().WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log().WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.log().WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				c.log().WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log().WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log().WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
