package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// SummarizeRequest represents the summarization payload
type SummarizeRequest struct {
	Text string `json:"text"`
}

const summarizePromptTemplate = `You are a helpful assistant for a mentorship platform called SkillSync.
Your task is to summarize the following session notes or chat log.
The summary should be concise (2-3 sentences).
After the summary, provide a clear, bulleted list of actionable "Next Steps" for the mentee based on the text.
Format your entire response in Markdown.

Here is the text to summarize:
---
%s
---`

// SummarizeSession handles POST /api/ai/summarize
// A single prompt/response round trip; no retries and no streaming.
func SummarizeSession(c *gin.Context) {
	var req SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide text to summarize."})
		return
	}

	if Summarize == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Summarization is not configured"})
		return
	}

	prompt := fmt.Sprintf(summarizePromptTemplate, req.Text)
	summary, err := Summarize(c.Request.Context(), prompt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to generate summary from AI.",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
