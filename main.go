package main

import (
	"context"
	"flag"
	"log"

	"orrery/internal/config"
	"orrery/internal/game"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	// Load configuration
	cfg := config.MustLoadConfig(*configPath)

	// Set window properties from config
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(cfg.Display.TPS)

	g := game.NewOrreryGame(cfg)
	defer g.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(ctx)
	if m := g.Threading().Metrics; m != nil {
		group.Go(func() error {
			log.Printf("Serving metrics on %s/metrics", cfg.Metrics.ListenAddr)
			return m.ServeMetrics(ctx, cfg.Metrics.ListenAddr)
		})
	}

	runErr := ebiten.RunGame(g)
	cancel()
	if err := group.Wait(); err != nil {
		log.Printf("Warning: metrics endpoint stopped: %v", err)
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}
