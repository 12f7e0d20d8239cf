package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"stockmap/pkg/config"
	"stockmap/pkg/engine/geom"
	"stockmap/pkg/engine/input"
	"stockmap/pkg/i18n"
	"stockmap/pkg/inventory"
	inventorycsv "stockmap/pkg/inventory/csv"
	"stockmap/pkg/inventory/memory"
	"stockmap/pkg/inventory/sqlite"
	"stockmap/pkg/server"
	"stockmap/pkg/warehouse/animator"
	"stockmap/pkg/warehouse/devtools"
	"stockmap/pkg/warehouse/layout"
	"stockmap/pkg/warehouse/renderer"
	ebitenrenderer "stockmap/pkg/warehouse/renderer/ebiten"
	"stockmap/pkg/warehouse/renderer/tui"
	"stockmap/pkg/warehouse/session"
)

func main() {
	cfg := config.Load()

	flag.StringVar(&cfg.Renderer, "renderer", cfg.Renderer, "front end: ebiten, tui or server")
	flag.StringVar(&cfg.LayoutPath, "layout", cfg.LayoutPath, "facility layout JSON (default: built-in facility)")
	flag.StringVar(&cfg.InventoryCSV, "inventory", cfg.InventoryCSV, "inventory CSV to load")
	flag.StringVar(&cfg.InventoryDB, "db", cfg.InventoryDB, "SQLite database to persist the inventory in")
	flag.StringVar(&cfg.Language, "lang", cfg.Language, "message language ("+strings.Join(i18n.Available(), ", ")+")")
	flag.StringVar(&cfg.Bindings, "bind", cfg.Bindings, "rebind keys, e.g. zoomin=z,zoomout=x")
	flag.StringVar(&cfg.Port, "port", cfg.Port, "HTTP port for -renderer server")
	flag.BoolVar(&cfg.SmoothCamera, "smooth", cfg.SmoothCamera, "animate camera moves (ebiten only)")
	dumpDir := flag.String("dump-layout", "", "write a text dump of the layout to this directory and exit")
	flag.Parse()

	config.Set(cfg)

	if err := run(cfg, *dumpDir); err != nil {
		log.Fatalf("stockmap: %v", err)
	}
}

func run(cfg *config.Config, dumpDir string) error {
	if err := i18n.Use(cfg.Language); err != nil {
		log.Printf("Language %q unavailable, using %s: %v", cfg.Language, i18n.Language(), err)
	}

	if cfg.Bindings != "" {
		if err := input.ApplyBindings(cfg.Bindings); err != nil {
			return err
		}
	}

	l, err := loadLayout(cfg.LayoutPath)
	if err != nil {
		return err
	}
	for _, w := range l.Warnings() {
		log.Printf("Layout: %s", w)
	}

	if dumpDir != "" {
		path, err := devtools.DumpLayoutToFile(l, dumpDir)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	}

	ctx := context.Background()
	store, closeStore, err := openInventory(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	// Ebiten drives the marker pulse from its own frame loop
	var sched animator.Scheduler
	var frames *animator.FrameScheduler
	if cfg.Renderer == config.RendererEbiten {
		frames = animator.NewFrameScheduler()
		sched = frames
	} else {
		sched = animator.NewTickerScheduler(cfg.PulseInterval)
	}

	s := session.New(l, store, session.Options{
		Scheduler:    sched,
		SmoothCamera: cfg.SmoothCamera && cfg.Renderer == config.RendererEbiten,
	})
	defer s.Close()

	switch cfg.Renderer {
	case config.RendererServer:
		return serve(cfg, s, store)
	case config.RendererTUI:
		renderer.SetRenderer(tui.New())
	case config.RendererEbiten:
		r := ebitenrenderer.New(frames, cfg.WindowWidth, cfg.WindowHeight)
		r.SetScreenshotDir(os.TempDir())
		renderer.SetRenderer(r)
	default:
		return fmt.Errorf("unknown renderer %q", cfg.Renderer)
	}

	if err := renderer.Init(); err != nil {
		return fmt.Errorf("init renderer: %w", err)
	}
	return renderer.Current.Run(s)
}

func loadLayout(path string) (*layout.Layout, error) {
	if path == "" {
		return layout.Default(), nil
	}
	return layout.LoadFile(path)
}

// openInventory loads the CSV seed into memory or, with a database configured,
// imports it into SQLite and serves lookups from there
func openInventory(ctx context.Context, cfg *config.Config) (inventory.Store, func(), error) {
	records, err := loadRecords(cfg.InventoryCSV)
	if err != nil {
		return nil, nil, err
	}

	if cfg.InventoryDB == "" {
		repo := memory.NewRepository()
		if err := repo.Load(records); err != nil {
			return nil, nil, err
		}
		log.Printf("Inventory: %d items in memory", repo.Len())
		return repo, func() {}, nil
	}

	db, err := sqlite.OpenSQLite(cfg.InventoryDB)
	if err != nil {
		return nil, nil, fmt.Errorf("open inventory db: %w", err)
	}
	repo := sqlite.New(db)
	if err := repo.Init(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	if err := repo.Import(ctx, records); err != nil {
		db.Close()
		return nil, nil, err
	}
	log.Printf("Inventory: %d items imported into %s", len(records), cfg.InventoryDB)
	return repo, func() { db.Close() }, nil
}

func loadRecords(path string) ([]*inventory.Record, error) {
	if path == "" {
		return nil, nil
	}
	records, err := inventorycsv.NewLoader().LoadRecords(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("Inventory file %s not found, starting empty", path)
		return nil, nil
	}
	return records, err
}

// serve runs the REST front end until SIGINT/SIGTERM
func serve(cfg *config.Config, s *session.Session, items server.Items) error {
	if err := s.Resize(geom.Sz(float64(cfg.WindowWidth), float64(cfg.WindowHeight))); err != nil {
		return err
	}
	srv := server.New(cfg, s, items)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Listen() }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-sig:
		log.Printf("[SERVER] Shutting down")
		done := make(chan error, 1)
		go func() { done <- srv.Shutdown() }()
		select {
		case err := <-done:
			return err
		case <-time.After(5 * time.Second):
			return errors.New("shutdown timed out")
		}
	}
}
