package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tapedeck/internal/app"
	"github.com/llehouerou/tapedeck/internal/archive"
	"github.com/llehouerou/tapedeck/internal/config"
	"github.com/llehouerou/tapedeck/internal/favorites"
	"github.com/llehouerou/tapedeck/internal/mpris"
	"github.com/llehouerou/tapedeck/internal/player"
	"github.com/llehouerou/tapedeck/internal/state"
	"github.com/llehouerou/tapedeck/internal/tracks"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	stateMgr, err := state.Open()
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}
	defer stateMgr.Close()

	favs, err := favorites.Load(stateMgr)
	if err != nil {
		return fmt.Errorf("load favorites: %w", err)
	}

	client := archive.NewClient()
	pl := player.New()
	defer pl.Close()

	m, err := app.New(cfg, stateMgr, app.Deps{
		Searcher:  client,
		Loader:    tracks.NewLoader(client),
		Player:    pl,
		Favorites: favs,
	})
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}
	defer m.Session().Close()

	if !cfg.DisableMpris {
		// Desktop integration is best effort; the app runs fine without it.
		bridge, err := mpris.New(m.Session(), cfg.Artist, archive.ImageURL(cfg.Collection))
		if err == nil {
			defer bridge.Close()
			m = m.WithMedia(bridge)
		}
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
