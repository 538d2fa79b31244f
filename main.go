// Command christmas-fun is the holiday toolbox: the animated story, the
// carol karaoke, Santa's tracker and the festive one-liners.
//
// Commands:
//  1. "story" (default) – plays the Christmas story in the terminal
//  2. "karaoke" – interactive sing-along and fill-in-the-blank karaoke
//  3. "serve" – HTTP server exposing the REST API, WebSocket and an /mcp endpoint
//  4. "mcp" – MCP stdio server, spinning up an internal HTTP API if none is available
//  5. "santa", "joke", "trivia", "activity", "countdown", "message", "naughty-or-nice"
//
// Settings come from christmas.yaml, then .env and the environment, then flags.
// Content is read from the data directory when it exists and from the copy
// embedded in the binary otherwise.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/christmas-fun/api"
	"github.com/wricardo/christmas-fun/data"
	"github.com/wricardo/christmas-fun/game/config"
	"github.com/wricardo/christmas-fun/game/engine"
	"github.com/wricardo/christmas-fun/game/service"
	"github.com/wricardo/christmas-fun/game/session"
	"github.com/wricardo/christmas-fun/game/spirit"
	"github.com/wricardo/christmas-fun/game/story"
	"github.com/wricardo/christmas-fun/game/tracker"
	"github.com/wricardo/christmas-fun/logging"
	"github.com/wricardo/christmas-fun/transport/console"
	"github.com/wricardo/christmas-fun/transport/mcp"
	"github.com/wricardo/christmas-fun/transport/websocket"
	"github.com/wricardo/christmas-fun/web"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Christmas Fun"
)

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "christmas-fun",
		Usage:   "Holiday cheer for your terminal, browser and AI assistant",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "YAML settings file",
				Value:   config.DefaultSettingsFile,
				Sources: cli.EnvVars("CHRISTMAS_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Usage:   "Directory with carols.json, santa-journey.json and story files (embedded copy when missing)",
				Sources: cli.EnvVars("CHRISTMAS_DATA_DIR"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "Enable debug logging",
				Sources: cli.EnvVars("CHRISTMAS_DEBUG"),
			},
		},
		Action: runStory,
		Commands: []*cli.Command{
			{
				Name:   "story",
				Usage:  "Play the Christmas story",
				Flags:  storyFlags(),
				Action: runStory,
			},
			{
				Name:   "karaoke",
				Usage:  "Sing along or fill in the blanks of a Christmas carol",
				Action: runKaraoke,
			},
			{
				Name:    "serve",
				Aliases: []string{"server", "http"},
				Usage:   "Run the HTTP server with REST API, WebSocket and MCP endpoint",
				Flags:   serveFlags(),
				Action:  runServe,
			},
			{
				Name:    "mcp",
				Aliases: []string{"stdio-mcp", "mcp-stdio"},
				Usage:   "Run the MCP stdio server",
				Action:  runStdioMCP,
			},
			{
				Name:  "santa",
				Usage: "Follow Santa's Christmas Eve journey",
				Flags: []cli.Flag{
					&cli.FloatFlag{Name: "speed", Usage: fmt.Sprintf("Replay speed (%.1f-%.1f)", tracker.MinSpeed, tracker.MaxSpeed)},
				},
				Action: runSanta,
			},
			{
				Name:  "joke",
				Usage: "Get a random Christmas joke",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					console.NewSpiritPrinter(os.Stdout).Joke((&spirit.Generator{}).Joke())
					return nil
				},
			},
			{
				Name:  "trivia",
				Usage: "Learn a Christmas trivia fact",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					console.NewSpiritPrinter(os.Stdout).Trivia((&spirit.Generator{}).Trivia())
					return nil
				},
			},
			{
				Name:  "activity",
				Usage: "Get a festive activity suggestion",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					console.NewSpiritPrinter(os.Stdout).Activity((&spirit.Generator{}).Activity())
					return nil
				},
			},
			{
				Name:  "countdown",
				Usage: "See the countdown to New Year's",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "target", Usage: "RFC3339 instant to count down to instead"},
				},
				Action: runCountdown,
			},
			{
				Name:  "message",
				Usage: "Get a holiday message",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "mood", Usage: "cheerful, motivational or funny", Value: string(spirit.MoodCheerful)},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					mood := cmd.String("mood")
					msg, err := (&spirit.Generator{}).HolidayMessage(mood)
					if err != nil {
						return err
					}
					console.NewSpiritPrinter(os.Stdout).Message(spirit.Mood(mood), msg)
					return nil
				},
			},
			{
				Name:      "naughty-or-nice",
				Usage:     "Check a commit message or snippet against Santa's list",
				ArgsUsage: "<text>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					text := strings.Join(cmd.Args().Slice(), " ")
					if strings.TrimSpace(text) == "" {
						return fmt.Errorf("%w: text is required", service.ErrInvalidRequest)
					}
					console.NewSpiritPrinter(os.Stdout).Verdict(spirit.NaughtyOrNice(text))
					return nil
				},
			},
		},
	}
}

func storyFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "lang",
			Usage:   "Story language (en, es)",
			Sources: cli.EnvVars("LANGUAGE"),
		},
		&cli.FloatFlag{Name: "speed", Usage: "Divide every delay by this factor", Value: 1},
	}
}

func serveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "host", Usage: "HTTP server host", Sources: cli.EnvVars("HOST")},
		&cli.IntFlag{Name: "port", Usage: "HTTP server port", Sources: cli.EnvVars("PORT")},
		&cli.StringFlag{Name: "public-url", Usage: "Base URL encoded in join QR codes", Sources: cli.EnvVars("PUBLIC_URL")},
		&cli.BoolFlag{Name: "ngrok", Usage: "Enable ngrok tunnel", Sources: cli.EnvVars("NGROK_ENABLED")},
		&cli.StringFlag{Name: "ngrok-auth", Usage: "Ngrok auth token", Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN")},
		&cli.StringFlag{Name: "ngrok-domain", Usage: "Custom ngrok domain (optional)", Sources: cli.EnvVars("NGROK_DOMAIN")},
	}
}

// environment is what every command needs: settings, content and a logger
type environment struct {
	settings config.Settings
	content  fs.FS
	logger   *slog.Logger
}

func setup(cmd *cli.Command) (*environment, error) {
	settings, err := config.LoadSettings(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	if dir := cmd.String("data-dir"); dir != "" {
		settings.DataDir = dir
	}

	debug := cmd.Bool("debug")
	if debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
	logger := logging.New(os.Stderr, debug)
	slog.SetDefault(logger)

	return &environment{
		settings: settings,
		content:  contentFS(settings.DataDir, logger),
		logger:   logger,
	}, nil
}

// contentFS prefers the data directory and falls back to the embedded copy
func contentFS(dir string, logger *slog.Logger) fs.FS {
	if dir != "" {
		if _, err := os.Stat(filepath.Join(dir, config.CarolsFile)); err == nil {
			logger.Debug("using data directory", "dir", dir)
			return os.DirFS(dir)
		}
	}
	logger.Debug("using embedded content", "dir", dir)
	return data.Files
}

// stack is the wired server side: catalog, sessions, karaoke, tracker, hub
type stack struct {
	catalog  *config.Manager
	sessions *session.Manager
	karaoke  service.KaraokeService
	tracker  *tracker.Tracker
	hub      *websocket.Hub
}

// buildStack wires the services. The hub must be started with Run.
func buildStack(env *environment) (*stack, error) {
	catalog, err := config.NewManager(env.content)
	if err != nil {
		return nil, fmt.Errorf("failed to load carols: %w", err)
	}
	stops, err := tracker.LoadJourney(env.content)
	if err != nil {
		return nil, fmt.Errorf("failed to load santa journey: %w", err)
	}

	hub := websocket.NewHub(env.logger)
	santa, err := tracker.New(stops,
		tracker.WithStopDelay(env.settings.StopDelay()),
		tracker.WithSpeed(env.settings.Tracker.Speed),
		tracker.WithListener(func(ev tracker.Event) {
			hub.BroadcastEvent(websocket.SantaChannel, string(ev.Kind), ev)
		}),
	)
	if err != nil {
		return nil, err
	}

	sessions := session.NewManager()
	karaoke := service.NewKaraokeService(sessions, catalog,
		service.WithBroadcaster(hub),
		service.WithFeedbackDelay(env.settings.FeedbackDelay()),
		service.WithDefaultSpeed(env.settings.Karaoke.Speed),
		service.WithJournalLimit(env.settings.Karaoke.JournalLimit),
		service.WithLogger(env.logger),
	)

	return &stack{
		catalog:  catalog,
		sessions: sessions,
		karaoke:  karaoke,
		tracker:  santa,
		hub:      hub,
	}, nil
}

func (st *stack) apiServer(env *environment, publicURL string) *api.Server {
	return api.NewServer(st.karaoke, st.hub,
		api.WithTracker(st.tracker),
		api.WithContent(env.content),
		api.WithStatic(web.Files()),
		api.WithPublicURL(publicURL),
		api.WithLogger(env.logger),
	)
}

// newHTTPHandler mounts the API at the root and the MCP proxy at /mcp
func newHTTPHandler(apiServer http.Handler, mcpClient *mcp.Client) http.Handler {
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)

	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})
	return mainRouter
}

// runServe starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled, it also provisions a public tunnel.
func runServe(ctx context.Context, cmd *cli.Command) error {
	env, err := setup(cmd)
	if err != nil {
		return err
	}
	settings := &env.settings
	if cmd.IsSet("host") {
		settings.Server.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		settings.Server.Port = int(cmd.Int("port"))
	}
	if cmd.IsSet("ngrok") {
		settings.Server.Ngrok = cmd.Bool("ngrok")
	}

	st, err := buildStack(env)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer st.tracker.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go st.hub.Run(ctx)
	go sessionCleanupRoutine(ctx, st.sessions, settings.CleanupInterval(), settings.SessionTTL())

	addr := settings.Addr()
	mcpClient := mcp.NewClient(fmt.Sprintf("http://%s", addr))
	handler := newHTTPHandler(st.apiServer(env, cmd.String("public-url")), mcpClient)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting %s v%s", AppName, Version)

	var wg sync.WaitGroup
	serveErr := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("HTTP server listening on %s", addr)
		log.Printf("Karaoke page: http://%s/", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws?session=<session_id>", addr)
		log.Printf("Santa channel: ws://%s/ws?channel=%s", addr, websocket.SantaChannel)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- fmt.Errorf("HTTP server failed: %w", err)
			cancel()
		}
	}()

	if settings.Server.Ngrok {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrok(ctx, handler, cmd.String("ngrok-auth"), cmd.String("ngrok-domain"))
		}()
	}

	<-ctx.Done()
	log.Println("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("Server stopped")

	select {
	case err := <-serveErr:
		return err
	default:
		return nil
	}
}

// runNgrok serves handler through an ngrok tunnel until ctx is done
func runNgrok(ctx context.Context, handler http.Handler, authToken, domain string) {
	if authToken == "" {
		log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	log.Println("Starting ngrok tunnel...")

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		log.Printf("Using custom ngrok domain: %s", domain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}
	defer func() {
		if err := tun.Close(); err != nil {
			log.Printf("Failed to close ngrok tunnel: %v", err)
		}
	}()

	ngrokURL := tun.URL()
	log.Printf("🚀 Ngrok tunnel established: %s", ngrokURL)
	log.Printf("  REST API (ngrok): %s/api", ngrokURL)
	log.Printf("  WebSocket (ngrok): %s/ws?session=<session_id>", ngrokURL)
	log.Printf("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	go func() {
		<-ctx.Done()
		tun.Close()
	}()

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed && ctx.Err() == nil {
		log.Printf("Ngrok server error: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}

// sessionCleanupRoutine periodically removes sessions that have not been accessed
// within the retention window.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, interval, ttl time.Duration) {
	if interval <= 0 || ttl <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(ttl); removed > 0 {
				log.Printf("Cleaned up %d expired sessions", removed)
			}
		}
	}
}

// apiAvailable reports whether a healthy API server answers at baseURL
func apiAvailable(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/api/health")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 500
}

// runStdioMCP runs an MCP stdio server.
// It tries to reuse an external API at the configured address; if unavailable, it
// starts an internal HTTP API bound to a random loopback port and targets that.
func runStdioMCP(ctx context.Context, cmd *cli.Command) error {
	env, err := setup(cmd)
	if err != nil {
		return err
	}

	externalURL := fmt.Sprintf("http://%s", env.settings.Addr())
	baseURL := externalURL
	log.Printf("Checking for external API server at %s...", externalURL)

	if apiAvailable(&http.Client{Timeout: 2 * time.Second}, externalURL) {
		log.Printf("External API server found at %s, using it for MCP", externalURL)
	} else {
		log.Printf("No external API server found, starting internal HTTP server")

		st, err := buildStack(env)
		if err != nil {
			return fmt.Errorf("failed to initialize services: %w", err)
		}
		defer st.tracker.Stop()

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		go st.hub.Run(ctx)

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}
		internalAddr := listener.Addr().String()
		log.Printf("Starting internal HTTP server on %s for MCP stdio", internalAddr)

		httpServer := &http.Server{Handler: st.apiServer(env, "")}
		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Printf("Internal HTTP server error: %v", err)
			}
		}()
		defer httpServer.Close()

		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	mcpClient := mcp.NewClient(baseURL)
	log.Printf("MCP stdio server ready (API at %s)", baseURL)

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

func runStory(ctx context.Context, cmd *cli.Command) error {
	env, err := setup(cmd)
	if err != nil {
		return err
	}

	want := env.settings.Language
	if lang := cmd.String("lang"); lang != "" {
		want = lang
	}
	want = story.NormalizeLanguage(want)

	lines, lang, err := story.Load(env.content, want)
	if err != nil {
		return err
	}
	if lang != want {
		env.logger.Warn("story not available, falling back", "language", want, "fallback", lang)
	}

	runner := console.NewStoryRunner(os.Stdout)
	runner.Player.Speed = cmd.Float("speed")
	return runner.Run(ctx, lines)
}

func runKaraoke(ctx context.Context, cmd *cli.Command) error {
	env, err := setup(cmd)
	if err != nil {
		return err
	}
	catalog, err := config.NewManager(env.content)
	if err != nil {
		return fmt.Errorf("failed to load carols: %w", err)
	}

	app := console.NewKaraokeApp(os.Stdin, os.Stdout, catalog,
		engine.WithFeedbackDelay(env.settings.ConsoleFeedbackDelay()),
		engine.WithSpeed(env.settings.Karaoke.Speed),
	)
	return app.Run(ctx)
}

func runSanta(ctx context.Context, cmd *cli.Command) error {
	env, err := setup(cmd)
	if err != nil {
		return err
	}
	stops, err := tracker.LoadJourney(env.content)
	if err != nil {
		return err
	}

	speed := env.settings.Tracker.Speed
	if cmd.IsSet("speed") {
		speed = cmd.Float("speed")
		if speed < tracker.MinSpeed || speed > tracker.MaxSpeed {
			return fmt.Errorf("%w: %.2f (allowed %.1f-%.1f)", tracker.ErrInvalidSpeed, speed, tracker.MinSpeed, tracker.MaxSpeed)
		}
	}

	return console.RunTracker(ctx, os.Stdout, stops,
		tracker.WithStopDelay(env.settings.StopDelay()),
		tracker.WithSpeed(speed),
	)
}

func runCountdown(ctx context.Context, cmd *cli.Command) error {
	var target *time.Time
	if raw := cmd.String("target"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return fmt.Errorf("%w: target must be RFC3339: %v", service.ErrInvalidRequest, err)
		}
		target = &t
	}
	console.NewSpiritPrinter(os.Stdout).Countdown((&spirit.Generator{}).Countdown(target))
	return nil
}
