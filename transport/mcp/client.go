package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/christmas-fun/game/engine"
	"github.com/wricardo/christmas-fun/game/service"
	"github.com/wricardo/christmas-fun/game/spirit"
	"github.com/wricardo/christmas-fun/game/tracker"
)

const (
	ServerName    = "christmas-fun-mcp"
	ServerVersion = "1.0.0"
)

// Resource URIs
const (
	StoryResourceEN = "christmas://story/en"
	StoryResourceES = "christmas://story/es"
	TreeResource    = "christmas://ascii-art/tree"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(`Christmas Fun - MCP Interface

This is a thin client that proxies all requests to the REST API server.

FESTIVE TOOLS:
- get_holiday_message: A holiday message (cheerful, motivational, funny)
- check_naughty_or_nice: Is a snippet or commit message on the nice list?
- get_christmas_joke, get_christmas_trivia, suggest_festive_activity
- new_year_countdown: Time left until the new year

KARAOKE:
- list_carols: Carols available for karaoke
- create_karaoke_session: Start a session, optionally with a carol
- karaoke_session: Current state of one session, or all sessions
- karaoke_control: select, start, pause, reset, mode, back or speed
- submit_karaoke_answer: Fill in the blank when a prompt is shown
- karaoke_events: The directives a session has emitted

SANTA:
- santa_location: Where Santa is right now

Resources carry the Christmas story in English and Spanish plus an ASCII tree.`),
	)

	c.registerTools()
	c.registerResources()
	c.registerPrompts()
}

func (c *Client) registerTools() {
	// Festive utilities
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_holiday_message",
		Description: "Get a festive holiday message with coding and Christmas cheer! Perfect for spreading joy in your development workflow.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"mood": map[string]interface{}{
					"type":        "string",
					"description": "The mood you want (cheerful, motivational, funny)",
					"enum":        []string{"cheerful", "motivational", "funny"},
				},
			},
		},
	}, c.handleHolidayMessage)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "check_naughty_or_nice",
		Description: "Check if a piece of code or commit message is on Santa's naughty or nice list! Returns a festive evaluation.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"code_or_message": map[string]interface{}{
					"type":        "string",
					"description": "The code snippet or commit message to evaluate",
				},
			},
			Required: []string{"code_or_message"},
		},
	}, c.handleNaughtyOrNice)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_christmas_joke",
		Description: "Tell a random Christmas programming joke",
		InputSchema: mcp.ToolInputSchema{Type: "object", Properties: map[string]interface{}{}},
	}, c.handleJoke)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_christmas_trivia",
		Description: "Share a random piece of Christmas trivia",
		InputSchema: mcp.ToolInputSchema{Type: "object", Properties: map[string]interface{}{}},
	}, c.handleTrivia)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "suggest_festive_activity",
		Description: "Suggest a festive activity for a developer break",
		InputSchema: mcp.ToolInputSchema{Type: "object", Properties: map[string]interface{}{}},
	}, c.handleActivity)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "new_year_countdown",
		Description: "Time remaining until the next new year, or until an RFC3339 target",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"target": map[string]interface{}{
					"type":        "string",
					"description": "Optional RFC3339 timestamp to count down to",
				},
			},
		},
	}, c.handleCountdown)

	// Karaoke
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_carols",
		Description: "List the carols available for karaoke",
		InputSchema: mcp.ToolInputSchema{Type: "object", Properties: map[string]interface{}{}},
	}, c.handleListCarols)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_karaoke_session",
		Description: "Create a new karaoke session. Without a carol the session waits in the carol selection menu.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"carol_id": map[string]interface{}{
					"type":        "string",
					"description": "Carol to load (see list_carols)",
				},
				"random": map[string]interface{}{
					"type":        "boolean",
					"description": "Pick a random carol",
				},
				"mode": map[string]interface{}{
					"type":        "string",
					"description": "plain sing-along or karaoke with fill-in-the-blank challenges",
					"enum":        []string{string(engine.ModePlain), string(engine.ModeKaraoke)},
				},
				"speed": map[string]interface{}{
					"type":        "number",
					"description": fmt.Sprintf("Playback speed between %.1f and %.1f", engine.MinSpeed, engine.MaxSpeed),
				},
				"auto_start": map[string]interface{}{
					"type":        "boolean",
					"description": "Start playback immediately",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "karaoke_session",
		Description: "Get the state of a karaoke session. Without session_id all sessions are listed.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
		},
	}, c.handleSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "karaoke_control",
		Description: "Control a karaoke session: select a carol, start, pause, reset, toggle mode, go back to selection or change speed",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"action": map[string]interface{}{
					"type":        "string",
					"description": "Action to perform",
					"enum":        controlActions,
				},
				"carol_id": map[string]interface{}{
					"type":        "string",
					"description": "Carol for the select action",
				},
				"random": map[string]interface{}{
					"type":        "boolean",
					"description": "Select a random carol",
				},
				"speed": map[string]interface{}{
					"type":        "number",
					"description": "New speed for the speed action",
				},
			},
			Required: []string{"session_id", "action"},
		},
	}, c.handleControl)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "submit_karaoke_answer",
		Description: "Answer the fill-in-the-blank prompt of a karaoke session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"answer": map[string]interface{}{
					"type":        "string",
					"description": "The missing word",
				},
			},
			Required: []string{"session_id", "answer"},
		},
	}, c.handleAnswer)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "karaoke_events",
		Description: "List the directives (lines, prompts, feedback, results) a session has emitted",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"since": map[string]interface{}{
					"type":        "number",
					"description": "Only events with a greater sequence number",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Events per page (default 20)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleEvents)

	// Santa
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "santa_location",
		Description: "Where Santa is on his Christmas Eve journey right now",
		InputSchema: mcp.ToolInputSchema{Type: "object", Properties: map[string]interface{}{}},
	}, c.handleSantaLocation)
}

var controlActions = []string{"select", "start", "pause", "reset", "mode", "back", "speed"}

func (c *Client) registerResources() {
	c.mcpServer.AddResource(mcp.NewResource(
		StoryResourceEN,
		"Christmas Story (English)",
		mcp.WithResourceDescription("The full 2025 AI-themed Christmas story featuring GitHub Copilot, agents, and MCP tools"),
		mcp.WithMIMEType("application/json"),
	), c.handleStoryResource("en"))

	c.mcpServer.AddResource(mcp.NewResource(
		StoryResourceES,
		"Christmas Story (Spanish)",
		mcp.WithResourceDescription("La historia navideña completa de 2025 con temas de IA"),
		mcp.WithMIMEType("application/json"),
	), c.handleStoryResource("es"))

	c.mcpServer.AddResource(mcp.NewResource(
		TreeResource,
		"ASCII Christmas Tree",
		mcp.WithResourceDescription("Festive ASCII art Christmas tree"),
		mcp.WithMIMEType("text/plain"),
	), c.handleTreeResource)
}

func (c *Client) registerPrompts() {
	c.mcpServer.AddPrompt(mcp.NewPrompt("festive_code_review",
		mcp.WithPromptDescription("A festive code review prompt that brings holiday cheer to your PR reviews"),
		mcp.WithArgument("code",
			mcp.ArgumentDescription("The code to review"),
			mcp.RequiredArgument(),
		),
	), handleCodeReviewPrompt)

	c.mcpServer.AddPrompt(mcp.NewPrompt("christmas_commit_message",
		mcp.WithPromptDescription("Generate a festive commit message for your holiday season commits"),
		mcp.WithArgument("changes",
			mcp.ArgumentDescription("Description of the changes made"),
			mcp.RequiredArgument(),
		),
	), handleCommitMessagePrompt)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	resp, err := c.do(method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

// apiText fetches a plain text endpoint
func (c *Client) apiText(path string) (string, error) {
	resp, err := c.do("GET", path, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// do sends the request and turns error statuses into errors
func (c *Client) do(method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return nil, fmt.Errorf("%s", msg)
		}
		return nil, fmt.Errorf("API error: %d", resp.StatusCode)
	}
	return resp, nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	if args, ok := request.Params.Arguments.(map[string]interface{}); ok {
		return args
	}
	return map[string]interface{}{}
}

func sessionPath(id, action string) string {
	p := "/api/sessions/" + url.PathEscape(id)
	if action != "" {
		p += "/" + action
	}
	return p
}

// Tool handlers

func (c *Client) handleHolidayMessage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mood, _ := arguments(request)["mood"].(string)

	var resp struct {
		Message string `json:"message"`
	}
	if err := c.apiCall("GET", "/api/spirit/message?mood="+url.QueryEscape(mood), nil, &resp); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(resp.Message), nil
}

func (c *Client) handleNaughtyOrNice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, _ := arguments(request)["code_or_message"].(string)
	if strings.TrimSpace(text) == "" {
		return mcp.NewToolResultError("code_or_message is required"), nil
	}

	var eval spirit.Evaluation
	if err := c.apiCall("POST", "/api/spirit/naughty-or-nice", map[string]string{"text": text}, &eval); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(eval.Message), nil
}

func (c *Client) handleJoke(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.spiritText("/api/spirit/joke", "joke")
}

func (c *Client) handleTrivia(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.spiritText("/api/spirit/trivia", "trivia")
}

func (c *Client) handleActivity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.spiritText("/api/spirit/activity", "activity")
}

func (c *Client) spiritText(path, key string) (*mcp.CallToolResult, error) {
	var resp map[string]string
	if err := c.apiCall("GET", path, nil, &resp); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(resp[key]), nil
}

func (c *Client) handleCountdown(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := "/api/spirit/countdown"
	if target, _ := arguments(request)["target"].(string); target != "" {
		path += "?target=" + url.QueryEscape(target)
	}

	var countdown spirit.Countdown
	if err := c.apiCall("GET", path, nil, &countdown); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatCountdown(&countdown)), nil
}

func (c *Client) handleListCarols(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var resp struct {
		Carols []*service.CarolInfo `json:"carols"`
	}
	if err := c.apiCall("GET", "/api/carols", nil, &resp); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatCarols(resp.Carols)), nil
}

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	var req service.CreateSessionRequest
	req.CarolID, _ = args["carol_id"].(string)
	req.Random, _ = args["random"].(bool)
	req.AutoStart, _ = args["auto_start"].(bool)
	req.Speed, _ = args["speed"].(float64)
	if mode, _ := args["mode"].(string); mode != "" {
		req.Mode = engine.Mode(mode)
	}

	var session service.SessionInfo
	if err := c.apiCall("POST", "/api/sessions", req, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("🎄 Session created\n" + formatSessionInfo(&session)), nil
}

func (c *Client) handleSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)
	if sessionID == "" {
		var resp struct {
			Sessions []*service.SessionInfo `json:"sessions"`
		}
		if err := c.apiCall("GET", "/api/sessions", nil, &resp); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(formatSessionList(resp.Sessions)), nil
	}

	var session service.SessionInfo
	if err := c.apiCall("GET", sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleControl(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	action, _ := args["action"].(string)
	if sessionID == "" {
		return mcp.NewToolResultError("session_id is required"), nil
	}

	var body interface{}
	switch action {
	case "select":
		var req service.SelectRequest
		req.CarolID, _ = args["carol_id"].(string)
		req.Random, _ = args["random"].(bool)
		if req.CarolID == "" {
			req.Random = true
		}
		body = req
	case "speed":
		speed, ok := args["speed"].(float64)
		if !ok {
			return mcp.NewToolResultError("speed is required for the speed action"), nil
		}
		body = map[string]float64{"speed": speed}
	case "start", "pause", "reset", "mode", "back":
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown action %q, expected one of %s", action, strings.Join(controlActions, ", "))), nil
	}

	var session service.SessionInfo
	if err := c.apiCall("POST", sessionPath(sessionID, action), body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleAnswer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	answer, _ := args["answer"].(string)
	if sessionID == "" {
		return mcp.NewToolResultError("session_id is required"), nil
	}

	var result service.AnswerResult
	if err := c.apiCall("POST", sessionPath(sessionID, "answer"), map[string]string{"answer": answer}, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatAnswerResult(&result)), nil
}

func (c *Client) handleEvents(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	if sessionID == "" {
		return mcp.NewToolResultError("session_id is required"), nil
	}

	query := url.Values{}
	if since, ok := args["since"].(float64); ok && since > 0 {
		query.Set("since", fmt.Sprintf("%d", int(since)))
	}
	if limit, ok := args["limit"].(float64); ok && limit > 0 {
		query.Set("limit", fmt.Sprintf("%d", int(limit)))
	}
	path := sessionPath(sessionID, "events")
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var events service.EventsResponse
	if err := c.apiCall("GET", path, nil, &events); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatEvents(sessionID, &events)), nil
}

func (c *Client) handleSantaLocation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var loc tracker.Location
	if err := c.apiCall("GET", "/api/santa/location", nil, &loc); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatLocation(&loc)), nil
}

// Resource handlers

func (c *Client) handleStoryResource(lang string) server.ResourceHandlerFunc {
	uri := "christmas://story/" + lang
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		var resp struct {
			Lines json.RawMessage `json:"lines"`
		}
		if err := c.apiCall("GET", "/api/story/"+lang, nil, &resp); err != nil {
			return nil, err
		}

		var out bytes.Buffer
		if err := json.Indent(&out, resp.Lines, "", "  "); err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      uri,
				MIMEType: "application/json",
				Text:     out.String(),
			},
		}, nil
	}
}

func (c *Client) handleTreeResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	tree, err := c.apiText("/api/art/mcp-tree")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      TreeResource,
			MIMEType: "text/plain",
			Text:     tree,
		},
	}, nil
}

// Prompt handlers

func handleCodeReviewPrompt(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	code := request.Params.Arguments["code"]
	text := "🎄 Ho ho ho! Time for a festive code review! 🎅\n\n" +
		"Please review this code with holiday cheer and provide constructive feedback:\n\n" +
		"```\n" + code + "\n```\n\n" +
		"Consider:\n" +
		"- 🎁 Code quality and best practices\n" +
		"- ✨ Potential improvements\n" +
		"- 🔔 Any bugs or issues\n" +
		"- ⭐ What's done well\n\n" +
		"Keep the feedback encouraging and helpful - it's the season of giving (good code reviews)!"

	return mcp.NewGetPromptResult("Festive code review", []mcp.PromptMessage{
		mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
	}), nil
}

func handleCommitMessagePrompt(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	changes := request.Params.Arguments["changes"]
	text := "🎅 Generate a festive commit message for these changes:\n\n" +
		changes + "\n\n" +
		"The commit message should:\n" +
		"- 🎄 Be clear and descriptive\n" +
		"- ✨ Follow conventional commit format\n" +
		"- 🎁 Include a touch of holiday spirit (optional emoji)\n" +
		"- 🔔 Be professional yet cheerful\n\n" +
		"Example format: \"🎄 feat: add holiday themed error messages\""

	return mcp.NewGetPromptResult("Christmas commit message", []mcp.PromptMessage{
		mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
	}), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Session: %s\n", session.ID)
	fmt.Fprintf(&sb, "Phase: %s | Mode: %s | Speed: %.1fx\n", session.Phase, session.Mode, session.Speed)

	if k := session.Karaoke; k != nil {
		fmt.Fprintf(&sb, "Carol: %s (%s, %s)\n", k.Title, k.CarolID, k.Difficulty)
		fmt.Fprintf(&sb, "Line: %d/%d (%.0f%%)\n", k.Cursor, k.TotalLines, k.Progress)
		if k.Mode == engine.ModeKaraoke {
			fmt.Fprintf(&sb, "Score: %d | Correct: %d/%d | Accuracy: %d%%\n",
				k.Score, k.CorrectAnswers, k.TotalBlanks, k.Accuracy)
		}
		if k.State == engine.StateAwaitingAnswer && k.Prompt != "" {
			fmt.Fprintf(&sb, "🎤 Fill in the blank: %s\n", k.Prompt)
			sb.WriteString("Use submit_karaoke_answer with the missing word.\n")
		}
	} else if session.Phase == engine.PhaseSelecting {
		sb.WriteString("Waiting for a carol. Use karaoke_control with action=select.\n")
	}

	if session.LastResults != nil {
		sb.WriteString(formatResults(session.LastResults))
	}
	return sb.String()
}

func formatSessionList(sessions []*service.SessionInfo) string {
	if len(sessions) == 0 {
		return "No active sessions"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Active sessions (%d):\n", len(sessions))
	for _, s := range sessions {
		title := "-"
		if s.Karaoke != nil {
			title = s.Karaoke.Title
		}
		fmt.Fprintf(&sb, "- %s: %s, %s, %s\n", s.ID, s.Phase, s.Mode, title)
	}
	return sb.String()
}

func formatResults(r *engine.Results) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🎉 Results for %s\n", r.Title)
	fmt.Fprintf(&sb, "Score: %d | Correct: %d/%d | Accuracy: %d%%\n", r.Score, r.CorrectAnswers, r.TotalBlanks, r.Accuracy)
	if r.Message != "" {
		sb.WriteString(r.Message + "\n")
	}
	return sb.String()
}

func formatAnswerResult(result *service.AnswerResult) string {
	var sb strings.Builder
	if fb := result.Feedback; fb != nil {
		switch {
		case fb.Ignored:
			sb.WriteString("Empty answer ignored, the prompt is still open.\n")
		default:
			fmt.Fprintf(&sb, "%s (+%d points, score %d)\n", fb.Message, fb.Points, fb.Score)
		}
	}
	if result.Session != nil {
		sb.WriteString(formatSessionInfo(result.Session))
	}
	return sb.String()
}

func formatCarols(carols []*service.CarolInfo) string {
	if len(carols) == 0 {
		return "No carols available"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "🎶 Carols (%d):\n", len(carols))
	for i, carol := range carols {
		fmt.Fprintf(&sb, "%d. %s [%s] %s, %d lines, %d blanks, %s\n",
			i+1, carol.Title, carol.ID, carol.Difficulty, carol.Lines, carol.Blanks,
			(time.Duration(carol.DurationMs) * time.Millisecond).Round(time.Second))
	}
	return sb.String()
}

func formatEvents(sessionID string, events *service.EventsResponse) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Events for %s (page %d/%d, %d total):\n", sessionID, events.Page, events.TotalPages, events.TotalEvents)
	for _, e := range events.Events {
		fmt.Fprintf(&sb, "#%d %s", e.Seq, e.Kind)
		if text := directiveText(e.Directive); text != "" {
			fmt.Fprintf(&sb, ": %s", text)
		}
		sb.WriteString("\n")
	}
	if events.HasNext {
		sb.WriteString("More events available.\n")
	}
	return sb.String()
}

func directiveText(d engine.Directive) string {
	switch d.Kind {
	case engine.DirectiveFeedback:
		if d.Feedback != nil {
			return d.Feedback.Message
		}
	case engine.DirectiveResults:
		if d.Results != nil {
			return fmt.Sprintf("score %d, accuracy %d%%", d.Results.Score, d.Results.Accuracy)
		}
	case engine.DirectiveState:
		return string(d.State)
	case engine.DirectiveMode:
		return string(d.Mode)
	case engine.DirectiveProgress:
		return fmt.Sprintf("%.0f%%", d.Progress)
	}
	return d.Text
}

func formatCountdown(c *spirit.Countdown) string {
	if c.Ended {
		return "🎆 Happy New Year! The countdown is over."
	}
	return fmt.Sprintf("⏳ %s until %s", c.Formatted, c.Target.Format("2006-01-02 15:04 MST"))
}

func formatLocation(loc *tracker.Location) string {
	switch loc.Status {
	case tracker.StatusPreparing:
		return "🎅 Santa is still at the North Pole preparing the sleigh."
	case tracker.StatusComplete:
		return "🎅 Santa has finished his journey and is back home. Merry Christmas!"
	}

	var sb strings.Builder
	if loc.Current != nil {
		fmt.Fprintf(&sb, "🦌 Santa is in %s, %s\n", loc.Current.City, loc.Current.Country)
		if loc.Current.FunFact != "" {
			fmt.Fprintf(&sb, "Fun fact: %s\n", loc.Current.FunFact)
		}
		fmt.Fprintf(&sb, "Presents delivered: %d\n", loc.Current.Deliveries)
	}
	if loc.Next != nil {
		fmt.Fprintf(&sb, "Next stop: %s, %s at %s\n", loc.Next.City, loc.Next.Country, loc.Next.ArrivalTime.Format("15:04 MST"))
	}
	return sb.String()
}
