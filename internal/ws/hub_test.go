package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"poster_events/internal/models"
)

func setupHubServer(t *testing.T) (*Hub, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)

	r := gin.New()
	r.GET("/events/ws", hub.Handler)
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)

	return hub, "ws" + strings.TrimPrefix(ts.URL, "http") + "/events/ws"
}

func dial(t *testing.T, hub *Hub, url string, want int) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err, "Ошибка подключения к WS")
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool { return hub.ClientCount() == want }, 2*time.Second, 10*time.Millisecond)
	return conn
}

func TestHub_BroadcastsCreatedEvent(t *testing.T) {
	hub, url := setupHubServer(t)
	first := dial(t, hub, url, 1)
	second := dial(t, hub, url, 2)

	title := "Robotics Workshop"
	tm := datatypes.NewTime(17, 30, 0, 0)
	hub.PublishPoster(&models.Poster{ID: 42, Title: &title, EventTime: &tm})

	for _, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, raw, err := conn.ReadMessage()
		require.NoError(t, err, "Ошибка чтения WS сообщения")

		var msg struct {
			EventType string                 `json:"event_type"`
			Data      map[string]interface{} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, EventCreated, msg.EventType)
		assert.Equal(t, 42.0, msg.Data["id"])
		assert.Equal(t, title, msg.Data["title"])
		assert.Equal(t, "17:30:00", msg.Data["event_time"])
		assert.Nil(t, msg.Data["event_date"])
	}
}

func TestHub_UnregistersClosedClient(t *testing.T) {
	hub, url := setupHubServer(t)
	conn := dial(t, hub, url, 1)

	conn.Close()

	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_StopClosesClients(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	go hub.Run()

	r := gin.New()
	r.GET("/events/ws", hub.Handler)
	ts := httptest.NewServer(r)
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/events/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Stop()
	assert.Equal(t, 0, hub.ClientCount())

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err, "connection is closed after Stop")

	// После остановки публикация не блокируется.
	hub.PublishPoster(&models.Poster{ID: 1})
}
