package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// imagePair mirrors the API's standard/hd pair; absent roles are null.
type imagePair struct {
	Standard *string `json:"standard"`
	HD       *string `json:"hd"`
}

// imagesResponse mirrors the API's GET /api/all body, success or failure.
type imagesResponse struct {
	Success        bool      `json:"success"`
	ProfilePicture imagePair `json:"profile_picture"`
	CoverPhoto     imagePair `json:"cover_photo"`
	Photos         []string  `json:"photos"`
	AllImages      []string  `json:"all_images"`
	TotalCount     int       `json:"total_count"`
	TimeTaken      string    `json:"time_taken"`

	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func main() {
	apiURL := os.Getenv("PROFILEPIX_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:5000"
	}

	s := server.NewMCPServer(
		"profilepix",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	profileImagesTool := mcp.NewTool("profile_images",
		mcp.WithDescription("Find the profile picture, cover photo and gallery images on a public Facebook profile page. Returns image URLs."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The Facebook profile URL, e.g. https://www.facebook.com/username or a /share/ link"),
		),
	)

	s.AddTool(profileImagesTool, handleProfileImages(strings.TrimRight(apiURL, "/")))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func handleProfileImages(apiURL string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 120 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		profileURL, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		endpoint := apiURL + "/api/all?url=" + url.QueryEscape(profileURL)
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to create request: %v", err)), nil
		}

		resp, err := client.Do(httpReq)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("API request failed: %v", err)), nil
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read response: %v", err)), nil
		}

		var imagesResp imagesResponse
		if err := json.Unmarshal(respBody, &imagesResp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response (HTTP %d): %v", resp.StatusCode, err)), nil
		}

		if !imagesResp.Success {
			errMsg := imagesResp.Error
			if errMsg == "" {
				errMsg = fmt.Sprintf("request failed with HTTP %d", resp.StatusCode)
			}
			if imagesResp.Code != "" {
				errMsg = fmt.Sprintf("[%s] %s", imagesResp.Code, errMsg)
			}
			if imagesResp.Message != "" {
				errMsg += ": " + imagesResp.Message
			}
			return mcp.NewToolResultError(errMsg), nil
		}

		return mcp.NewToolResultText(summarize(&imagesResp)), nil
	}
}

// summarize renders a success body as plain text for the model.
func summarize(r *imagesResponse) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Profile picture: %s\n", orNone(r.ProfilePicture.Standard))
	fmt.Fprintf(&b, "Profile picture (HD): %s\n", orNone(r.ProfilePicture.HD))
	fmt.Fprintf(&b, "Cover photo: %s\n", orNone(r.CoverPhoto.Standard))
	fmt.Fprintf(&b, "Cover photo (HD): %s\n", orNone(r.CoverPhoto.HD))

	if len(r.Photos) > 0 {
		fmt.Fprintf(&b, "\nPhotos (%d):\n", len(r.Photos))
		for _, p := range r.Photos {
			fmt.Fprintf(&b, "- %s\n", p)
		}
	}

	fmt.Fprintf(&b, "\n---\nImages found: %d (in %s)", r.TotalCount, r.TimeTaken)
	return b.String()
}

func orNone(s *string) string {
	if s == nil {
		return "none"
	}
	return *s
}
