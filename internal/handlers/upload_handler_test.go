package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"skillsync-api/internal/auth"
	"skillsync-api/internal/database"
	"skillsync-api/internal/middleware"
	"skillsync-api/internal/models"
	"skillsync-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func uploadTestRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db
	require.NoError(t, db.Create(&models.User{
		ID: "u-1", Name: "Alice", Email: "alice@example.com",
	}).Error)

	r := gin.New()
	r.Use(middleware.JWTAuthMiddleware())
	r.POST("/api/upload/avatar", UploadAvatarHandler)

	token, err := auth.GenerateToken("u-1", "Alice")
	require.NoError(t, err)
	return r, token
}

func multipartAvatar(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("avatar", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadAvatar_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r, token := uploadTestRouter(t)

	var gotUserID string
	UploadAvatar = func(ctx context.Context, file io.Reader, userID string) (string, error) {
		gotUserID = userID
		_, err := io.ReadAll(file)
		require.NoError(t, err)
		return "https://res.cloudinary.com/demo/avatar.png", nil
	}
	defer func() { UploadAvatar = nil }()

	body, contentType := multipartAvatar(t, "me.png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload/avatar", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "u-1", gotUserID)

	var resp struct {
		ImageURL string `json:"imageUrl"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "https://res.cloudinary.com/demo/avatar.png", resp.ImageURL)
}

func TestUploadAvatar_MissingFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r, token := uploadTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/upload/avatar", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadAvatar_RejectsUnsupportedType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r, token := uploadTestRouter(t)

	body, contentType := multipartAvatar(t, "malware.exe", []byte("nope"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload/avatar", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
