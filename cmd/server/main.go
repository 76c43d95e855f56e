package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/vladimirvolkov/tennis/internal/config"
	"github.com/vladimirvolkov/tennis/internal/game"
	"github.com/vladimirvolkov/tennis/internal/logging"
	"github.com/vladimirvolkov/tennis/internal/middleware"
	"github.com/vladimirvolkov/tennis/internal/telemetry"
	"github.com/vladimirvolkov/tennis/internal/ws"
)

// SessionManager starts one room per accepted connection.
type SessionManager struct {
	hub      *ws.Hub
	game     config.GameConfig
	recorder *telemetry.Recorder
	log      zerolog.Logger
}

func (sm *SessionManager) CreateSession(conn *ws.Conn) {
	room := game.NewRoom(conn, game.RoomOptions{
		ID:       conn.ID,
		Names:    conn.Names,
		TickRate: sm.game.TickRate,
		Rand:     game.NewRand(sm.game.Seed),
		Recorder: sm.recorder,
		Log:      sm.log,
	})
	room.Start(context.Background())
	go func() {
		<-room.Done()
		sm.hub.SessionEnded()
	}()
}

// newMux serves /ws, /health and /schema next to the static client.
func newMux(hub *ws.Hub, schema *ws.ProtocolSchema, staticDir string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.HandleWS)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(hub.Stats())
	})

	mux.HandleFunc("/schema", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/schema+json")
		json.NewEncoder(w).Encode(schema)
	})

	mux.Handle("/", middleware.NoCache(http.FileServer(http.Dir(staticDir))))
	return mux
}

func main() {
	configDir := flag.String("config", ".", "directory containing tennis.json")
	flag.Parse()

	if err := config.Load(*configDir); err != nil {
		boot := logging.New("info", logging.FormatConsole, os.Stdout)
		boot.Fatal().Err(err).Msg("config")
	}
	logCfg := config.Log()
	log := logging.New(logCfg.Level, logCfg.Format, os.Stdout)

	srvCfg := config.Server()
	limits := config.Limits()
	gameCfg := config.Game()

	recorder, err := telemetry.New(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("telemetry")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	limiter := middleware.NewIPRateLimiter(middleware.LimiterConfig{
		MaxConnsPerIP: limits.MaxConnsPerIP,
		MsgRate:       limits.MsgRate,
		MsgWindow:     limits.MsgWindow,
	})
	go limiter.Run(ctx)

	manager := &SessionManager{game: gameCfg, recorder: recorder, log: log}
	hub := ws.NewHub(manager, limiter, ws.HubOptions{
		OriginPatterns: srvCfg.AllowedOrigins,
		MaxSessions:    limits.MaxSessions,
		DefaultNames:   [2]string{gameCfg.Player1, gameCfg.Player2},
		TrustProxy:     srvCfg.TrustProxy,
	}, log)
	manager.hub = hub

	schema, err := game.ProtocolSchema()
	if err != nil {
		log.Fatal().Err(err).Msg("protocol schema")
	}

	mux := newMux(hub, schema, srvCfg.StaticDir)

	server := &http.Server{
		Addr:              ":" + srvCfg.Port,
		Handler:           middleware.SecurityHeaders(mux),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down...")
		server.Close()
	}()

	log.Info().
		Str("port", srvCfg.Port).
		Str("static", srvCfg.StaticDir).
		Int("tickRate", gameCfg.TickRate).
		Msg("court tennis server starting")
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server error")
	}
	log.Info().Msg("server stopped")
}
