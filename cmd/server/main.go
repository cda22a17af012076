// Command server runs the tile region engine behind a websocket and a
// set of debug HTTP endpoints. Terrain comes from a text map file, a
// previous save, or the generator, in that order; every rebuild is
// streamed to connected clients as a patch.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/websocket"

	"github.com/karstvale/tile-region-engine/internal/config"
	"github.com/karstvale/tile-region-engine/internal/logger"
	"github.com/karstvale/tile-region-engine/internal/objects"
	"github.com/karstvale/tile-region-engine/internal/pathgate"
	"github.com/karstvale/tile-region-engine/internal/protocol"
	"github.com/karstvale/tile-region-engine/internal/region"
	"github.com/karstvale/tile-region-engine/internal/store"
	"github.com/karstvale/tile-region-engine/internal/web/views"
	"github.com/karstvale/tile-region-engine/internal/world"
	"github.com/karstvale/tile-region-engine/internal/ws"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Sugar

	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		log.Errorf("open store %s: %v", cfg.Store.Path, err)
		os.Exit(1)
	}
	defer db.Close()

	w, source, err := loadWorld(cfg, db)
	if err != nil {
		log.Errorf("load world: %v", err)
		os.Exit(1)
	}
	cols, rows := w.Size()
	log.Infof("world %dx%d from %s: %d doors, %d objects", cols, rows, source, len(w.Doors()), len(w.Objects()))

	manager := region.NewManager(w, region.Config{
		ChunkSize: cfg.World.ChunkSize,
		Log:       log,
		SelfCheck: cfg.Logging.Level == "debug",
	})
	tracker := objects.NewTracker(manager)
	gate := pathgate.New(manager, NewAStarPathfinder(w))

	hub := ws.NewHub()
	sequence := NewSequenceGenerator()
	broadcaster := NewBroadcaster(hub, sequence, log)

	host := NewHost(w, manager, tracker, gate, db, broadcaster, log)
	manager.SetListener(host)
	host.Initialize()

	stats := host.Stats()
	log.Infof("decomposition ready: %d regions (%d doors), %d links, %d rooms",
		stats.Regions, stats.DoorRegions, stats.Links, stats.Rooms)

	intents := NewIntentHandlers(host, log)

	mux := http.NewServeMux()

	mux.HandleFunc("/stream", func(rw http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(rw, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			return
		}
		hub.Add(conn)
		log.Debugf("client connected, %d online", hub.Count())

		hello, _ := json.Marshal(protocol.PatchEnvelope{
			Sequence: sequence.Current(),
			Type:     "hello",
			Payload:  statsLite(host.Stats()),
		})
		_ = conn.Write(context.Background(), websocket.MessageText, hello)

		go func(c *websocket.Conn) {
			defer hub.Remove(c)
			defer c.Close(websocket.StatusNormalClosure, "")
			for {
				_, data, err := c.Read(context.Background())
				if err != nil {
					return
				}
				if err := intents.HandleMessage(data); err != nil {
					log.Warnf("intent rejected: %v", err)
				}
			}
		}(conn)
	})

	debug := NewDebugSystem(GetDebugConfigFromEnv(), host, hub, log)
	debug.RegisterDebugRoutes(mux)

	mux.HandleFunc("/", func(rw http.ResponseWriter, r *http.Request) {
		data := views.IndexData{
			Stats:   statsLite(host.Stats()),
			Objects: host.ObjectCounts(),
			Clients: hub.Count(),
		}
		if err := views.IndexPage(data).Render(r.Context(), rw); err != nil {
			http.Error(rw, err.Error(), http.StatusInternalServerError)
		}
	})

	server := &http.Server{Addr: cfg.Server.ListenAddr, Handler: mux}
	go func() {
		log.Infof("listening on %s", cfg.Server.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("http server: %v", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh
	log.Infof("received %s, shutting down", sig)

	if err := host.Persist(); err != nil {
		log.Errorf("final save failed: %v", err)
	}
	hub.CloseAll()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Warnf("shutdown: %v", err)
	}
	log.Infof("world saved, server stopped")
}

// loadWorld picks the terrain source. An explicit map file wins, then a
// previous save; otherwise a fresh world is generated and saved so the
// next start resumes it.
func loadWorld(cfg *config.Config, db *store.DB) (*world.World, string, error) {
	if cfg.World.Map != "" {
		w, err := world.LoadMapFile(cfg.World.Map)
		if err != nil {
			return nil, "", fmt.Errorf("map file %s: %w", cfg.World.Map, err)
		}
		return w, cfg.World.Map, nil
	}
	if db.HasWorld() {
		w, err := db.LoadWorld()
		if err != nil {
			return nil, "", fmt.Errorf("saved world: %w", err)
		}
		return w, "store", nil
	}
	w := world.Generate(world.DefaultGenConfig(cfg.World.Cols, cfg.World.Rows, cfg.World.Seed))
	if err := db.SaveWorld(w); err != nil {
		return nil, "", fmt.Errorf("save generated world: %w", err)
	}
	return w, "generator", nil
}
