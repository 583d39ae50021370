package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"skillsync-api/internal/database"
	"skillsync-api/internal/models"
	"skillsync-api/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

// wsClient implements realtime.Client by wrapping a websocket connection.
// gorilla/websocket forbids concurrent writes on one conn, and a connection
// can be written to from several goroutines at once (a room broadcast from a
// sender's reader loop, a direct notification from a booking handler), so
// Send serializes the deadline+write pair behind a mutex.
type wsClient struct {
	writeMu sync.Mutex
	conn    *websocket.Conn
}

func (c *wsClient) Send(message []byte) bool {
	if c == nil || c.conn == nil {
		return false
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		return false
	}
	return true
}

func (c *wsClient) Close() {
	if c != nil && c.conn != nil {
		_ = c.conn.Close()
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS is already handled at Gin level; allow upgrade from any origin here
		return true
	},
}

// wsEvent is the inbound event envelope for the realtime channel.
type wsEvent struct {
	Type       string `json:"type"`
	BookingID  string `json:"bookingId,omitempty"`
	SenderID   string `json:"senderId,omitempty"`
	ReceiverID string `json:"receiverId,omitempty"`
	Text       string `json:"text,omitempty"`
}

func sendEvent(client realtime.Client, evt map[string]any) {
	if bytes, err := json.Marshal(evt); err == nil {
		client.Send(bytes)
	}
}

// WebSocketHandler upgrades the connection and runs its event loop.
// It requires JWT middleware to have set "user_id" in context; the token
// identity, not any client-supplied id, is what enters the presence registry.
// Events from one connection are handled to completion in arrival order.
func WebSocketHandler(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("websocket upgrade error:", err)
		return
	}

	client := &wsClient{conn: conn}

	// Heartbeat: send periodic pings; close on error
	pingTicker := time.NewTicker(30 * time.Second)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-pingTicker.C:
				if err := conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second)); err != nil {
					// ping failed; reader loop will exit on next error
					return
				}
			}
		}
	}()
	defer func() {
		close(done)
		pingTicker.Stop()
		Hub.Unregister(client)
		client.Close()
	}()

	conn.SetReadLimit(8192)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			// Normal close or error; registry cleanup happens in the defer
			return
		}

		var evt wsEvent
		if err := json.Unmarshal(data, &evt); err != nil {
			continue
		}

		switch evt.Type {
		case "register":
			Hub.Register(userID, client)
		case "joinRoom":
			handleJoinRoom(client, userID, evt.BookingID)
		case "sendMessage":
			handleSendMessage(client, userID, evt)
		}
	}
}

// handleJoinRoom admits the connection to a booking's room after verifying
// the caller is one of the booking's two participants. Guessing a booking id
// is not enough to listen in on its chat.
func handleJoinRoom(client realtime.Client, userID, bookingID string) {
	if bookingID == "" {
		return
	}

	var booking models.Booking
	if err := database.GetDB().Where("id = ?", bookingID).First(&booking).Error; err != nil {
		sendEvent(client, map[string]any{
			"type":      "joinError",
			"bookingId": bookingID,
			"error":     "Booking not found",
		})
		return
	}
	if !booking.IsParticipant(userID) {
		sendEvent(client, map[string]any{
			"type":      "joinError",
			"bookingId": bookingID,
			"error":     "Not a participant of this booking",
		})
		return
	}

	Hub.JoinRoom(client, bookingID)
}

// handleSendMessage is the one state transition of the realtime subsystem.
// The message is persisted before any fan-out; when the write fails the
// sender gets an explicit sendError and nobody else hears about the message,
// so nothing is ever delivered live that history could not return later.
func handleSendMessage(sender realtime.Client, userID string, evt wsEvent) {
	if evt.BookingID == "" || evt.Text == "" {
		return
	}
	// The token identity is authoritative; a payload claiming to speak for
	// someone else is dropped
	if evt.SenderID != "" && evt.SenderID != userID {
		sendEvent(sender, map[string]any{
			"type":      "sendError",
			"bookingId": evt.BookingID,
			"error":     "Sender does not match the authenticated user",
		})
		return
	}

	db := database.GetDB()
	createdAt := time.Now().UTC()
	message := models.Message{
		ID:         uuid.NewString(),
		BookingID:  evt.BookingID,
		SenderID:   userID,
		ReceiverID: evt.ReceiverID,
		Text:       evt.Text,
		CreatedAt:  createdAt,
	}

	if err := db.Create(&message).Error; err != nil {
		log.Println("failed to persist chat message:", err)
		sendEvent(sender, map[string]any{
			"type":      "sendError",
			"bookingId": evt.BookingID,
			"error":     "Message could not be saved",
		})
		return
	}

	// Room fan-out, excluding the sender
	sendEventToRoom(evt.BookingID, sender, map[string]any{
		"type":      "receiveMessage",
		"booking":   evt.BookingID,
		"sender":    map[string]string{"_id": userID},
		"text":      evt.Text,
		"createdAt": createdAt.Format(time.RFC3339),
	})

	// Separate direct notification for UI surfaces outside the room (badge).
	// Delivered even when the receiver is also in the room; the client
	// decides whether to suppress the badge while the chat is focused.
	if evt.ReceiverID == "" {
		return
	}
	if _, online := Hub.Lookup(evt.ReceiverID); !online {
		return
	}
	senderName := userID
	var u models.User
	if err := db.Where("id = ?", userID).First(&u).Error; err == nil {
		senderName = u.Name
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("failed to load sender name:", err)
	}
	notification, err := json.Marshal(map[string]any{
		"type":       "newMessageNotification",
		"bookingId":  evt.BookingID,
		"senderName": senderName,
	})
	if err == nil {
		Hub.SendToUser(evt.ReceiverID, notification)
	}
}

func sendEventToRoom(bookingID string, exclude realtime.Client, evt map[string]any) {
	if bytes, err := json.Marshal(evt); err == nil {
		Hub.BroadcastToRoom(bookingID, bytes, exclude)
	}
}
