package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"skillsync-api/internal/config"
	"skillsync-api/internal/realtime"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	openai "github.com/sashabaranov/go-openai"
)

// Collaborators owned by main and shared across handlers. Tests swap these
// for fakes (same idea as swapping database.DB with an in-memory DB).
var (
	// Hub is the presence registry and room relay for the realtime channel.
	Hub = realtime.NewHub()

	// Summarize performs the outbound AI round trip. Nil until Setup wires
	// a client; the endpoint reports the feature as unavailable in that case.
	Summarize func(ctx context.Context, prompt string) (string, error)

	// UploadAvatar stores an avatar image and returns its public URL.
	UploadAvatar func(ctx context.Context, file io.Reader, userID string) (string, error)
)

// Setup wires the outbound OpenAI and Cloudinary clients from config.
// Either integration is skipped when its credentials are absent.
func Setup(cfg config.Config) error {
	if cfg.OpenAIAPIKey != "" {
		client := openai.NewClient(cfg.OpenAIAPIKey)
		Summarize = func(ctx context.Context, prompt string) (string, error) {
			resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
				Model: openai.GPT3Dot5Turbo,
				Messages: []openai.ChatCompletionMessage{
					{Role: openai.ChatMessageRoleUser, Content: prompt},
				},
				Temperature: 0.5,
			})
			if err != nil {
				return "", err
			}
			if len(resp.Choices) == 0 {
				return "", errors.New("empty completion response")
			}
			return resp.Choices[0].Message.Content, nil
		}
	}

	if cfg.CloudinaryCloudName != "" {
		cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			return err
		}
		UploadAvatar = func(ctx context.Context, file io.Reader, userID string) (string, error) {
			result, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
				Folder:         "SkillSync_Avatars",
				PublicID:       fmt.Sprintf("avatar-%s-%d", userID, time.Now().UnixMilli()),
				Transformation: "c_fill,g_face,h_250,w_250",
			})
			if err != nil {
				return "", err
			}
			return result.SecureURL, nil
		}
	}

	return nil
}
