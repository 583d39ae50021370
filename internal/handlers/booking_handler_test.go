package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skillsync-api/internal/auth"
	"skillsync-api/internal/database"
	"skillsync-api/internal/middleware"
	"skillsync-api/internal/models"
	"skillsync-api/internal/realtime"
	"skillsync-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// testWSClient records messages delivered through the hub.
type testWSClient struct {
	messages [][]byte
}

func (f *testWSClient) Send(message []byte) bool {
	f.messages = append(f.messages, message)
	return true
}

func (f *testWSClient) Close() {}

func (f *testWSClient) events(t *testing.T) []map[string]any {
	t.Helper()
	out := make([]map[string]any, 0, len(f.messages))
	for _, raw := range f.messages {
		var evt map[string]any
		require.NoError(t, json.Unmarshal(raw, &evt))
		out = append(out, evt)
	}
	return out
}

func seedBookingUsers(t *testing.T) {
	t.Helper()
	require.NoError(t, database.DB.Create(&models.User{
		ID: "mentee-1", Name: "Mia", Email: "mia@example.com", Role: models.RoleMentee,
	}).Error)
	require.NoError(t, database.DB.Create(&models.User{
		ID: "mentor-1", Name: "Max", Email: "max@example.com", Role: models.RoleMentor,
	}).Error)
}

func TestCreateBooking_NotifiesOnlineMentor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db
	Hub = realtime.NewHub()
	seedBookingUsers(t)

	mentorConn := &testWSClient{}
	Hub.Register("mentor-1", mentorConn)

	r := gin.New()
	r.Use(middleware.JWTAuthMiddleware())
	r.POST("/api/bookings", CreateBooking)

	token, err := auth.GenerateToken("mentee-1", "Mia")
	require.NoError(t, err)

	payload := map[string]any{
		"mentorId":        "mentor-1",
		"sessionDate":     time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		"sessionTimeSlot": "10:00 - 10:30",
		"userMessage":     "Keen to talk about Go",
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, models.StatusPending, created.Status)
	require.Equal(t, "Mia", created.Mentee.Name)

	events := mentorConn.events(t)
	require.Len(t, events, 1)
	require.Equal(t, "newBookingRequest", events[0]["type"])
	require.Contains(t, events[0]["message"], "Mia")
}

func TestCreateBooking_OfflineMentorStillCreated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db
	Hub = realtime.NewHub()
	seedBookingUsers(t)

	r := gin.New()
	r.Use(middleware.JWTAuthMiddleware())
	r.POST("/api/bookings", CreateBooking)

	token, err := auth.GenerateToken("mentee-1", "Mia")
	require.NoError(t, err)

	payload := map[string]any{
		"mentorId":        "mentor-1",
		"sessionDate":     time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
		"sessionTimeSlot": "14:00 - 14:30",
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Booking{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestGetMyBookings_ReturnsBothSides(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db
	seedBookingUsers(t)

	require.NoError(t, db.Create(&models.Booking{
		ID: "b-1", MenteeID: "mentee-1", MentorID: "mentor-1",
		SessionDate: time.Now(), SessionTimeSlot: "10:00 - 10:30", Status: models.StatusPending,
	}).Error)
	require.NoError(t, db.Create(&models.Booking{
		ID: "b-2", MenteeID: "someone-else", MentorID: "mentor-1",
		SessionDate: time.Now(), SessionTimeSlot: "11:00 - 11:30", Status: models.StatusConfirmed,
	}).Error)

	r := gin.New()
	r.Use(middleware.JWTAuthMiddleware())
	r.GET("/api/bookings", GetMyBookings)

	// The mentor sees both bookings
	token, err := auth.GenerateToken("mentor-1", "Max")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var bookings []models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bookings))
	require.Len(t, bookings, 2)

	// The mentee only sees their own
	token, err = auth.GenerateToken("mentee-1", "Mia")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bookings))
	require.Len(t, bookings, 1)
	require.Equal(t, "Max", bookings[0].Mentor.Name)
	require.Equal(t, "Mia", bookings[0].Mentee.Name)
}

func TestUpdateBookingStatus_NonParticipantRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db
	seedBookingUsers(t)
	require.NoError(t, db.Create(&models.User{
		ID: "intruder", Name: "Ivan", Email: "ivan@example.com",
	}).Error)
	require.NoError(t, db.Create(&models.Booking{
		ID: "b-1", MenteeID: "mentee-1", MentorID: "mentor-1",
		SessionDate: time.Now(), SessionTimeSlot: "10:00 - 10:30", Status: models.StatusPending,
	}).Error)

	r := gin.New()
	r.Use(middleware.JWTAuthMiddleware())
	r.PUT("/api/bookings/:id", UpdateBookingStatus)

	token, err := auth.GenerateToken("intruder", "Ivan")
	require.NoError(t, err)
	body, _ := json.Marshal(map[string]string{"status": "confirmed"})
	req := httptest.NewRequest(http.MethodPut, "/api/bookings/b-1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var stored models.Booking
	require.NoError(t, db.Where("id = ?", "b-1").First(&stored).Error)
	require.Equal(t, models.StatusPending, stored.Status)
}

func TestUpdateBookingStatus_MentorConfirms(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db
	seedBookingUsers(t)
	require.NoError(t, db.Create(&models.Booking{
		ID: "b-1", MenteeID: "mentee-1", MentorID: "mentor-1",
		SessionDate: time.Now(), SessionTimeSlot: "10:00 - 10:30", Status: models.StatusPending,
	}).Error)

	r := gin.New()
	r.Use(middleware.JWTAuthMiddleware())
	r.PUT("/api/bookings/:id", UpdateBookingStatus)

	token, err := auth.GenerateToken("mentor-1", "Max")
	require.NoError(t, err)
	body, _ := json.Marshal(map[string]string{"status": "confirmed"})
	req := httptest.NewRequest(http.MethodPut, "/api/bookings/b-1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Booking
	require.NoError(t, db.Where("id = ?", "b-1").First(&stored).Error)
	require.Equal(t, models.StatusConfirmed, stored.Status)
}

func TestUpdateBookingStatus_InvalidStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db
	seedBookingUsers(t)

	r := gin.New()
	r.Use(middleware.JWTAuthMiddleware())
	r.PUT("/api/bookings/:id", UpdateBookingStatus)

	token, err := auth.GenerateToken("mentor-1", "Max")
	require.NoError(t, err)
	body, _ := json.Marshal(map[string]string{"status": "abandoned"})
	req := httptest.NewRequest(http.MethodPut, "/api/bookings/b-1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
