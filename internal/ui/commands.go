package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/cinecluster/internal/cluster"
)

// Service is the remote clustering service. *api.Client satisfies it.
type Service interface {
	Genres(ctx context.Context) ([]string, error)
	Cluster(ctx context.Context, genre, rating string) (*cluster.Result, error)
}

// UseService points the config's command functions at svc. ctx bounds every
// request; cancelling it abandons in-flight work when the program exits.
func (cfg *AppConfig) UseService(ctx context.Context, svc Service) {
	cfg.LoadGenres = func() tea.Cmd {
		return func() tea.Msg {
			genres, err := svc.Genres(ctx)
			return GenresLoaded{Genres: genres, Err: err}
		}
	}
	cfg.RequestCluster = func(cycleID, genre, rating string) tea.Cmd {
		return func() tea.Msg {
			start := time.Now()
			res, err := svc.Cluster(ctx, genre, rating)
			return ClusterLoaded{
				CycleID: cycleID,
				Genre:   genre,
				Rating:  rating,
				Result:  res,
				Dur:     time.Since(start),
				Err:     err,
			}
		}
	}
}
