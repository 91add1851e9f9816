package ui

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/abelbrown/cinecluster/internal/cluster"
)

const (
	noResultsMessage = "🤷 Looks like nothing matched your request."
	errorMessage     = "❌ Oops, something went wrong with the server."
	hintMessage      = "Pick a genre and a minimum rating, then press enter."

	// cardWidth is the outer width of one card including its border.
	cardWidth = 30
	cardGap   = 1
)

var sortLabels = map[cluster.SortMode]string{
	cluster.SortNone:   "No sorting",
	cluster.SortTitle:  "Sort by title",
	cluster.SortRating: "Sort by rating",
}

var sortKeys = map[cluster.SortMode]string{
	cluster.SortNone:   "n",
	cluster.SortTitle:  "t",
	cluster.SortRating: "r",
}

// RenderResults rebuilds the whole results view from st. It reads st and
// nothing else, so the same state always renders the same way.
func RenderResults(st *cluster.State, width int) string {
	if !st.HasResults() {
		return NoResults.Render(noResultsMessage)
	}
	if width <= 0 {
		width = 80
	}

	res := st.Result()
	sections := make([]string, 0, len(res.Clusters)+1)
	sections = append(sections, renderSortBar(st.Mode()))
	for i, c := range res.Clusters {
		sections = append(sections, renderCluster(i, c, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderSortBar(active cluster.SortMode) string {
	buttons := make([]string, 0, len(cluster.Modes))
	for _, m := range cluster.Modes {
		label := fmt.Sprintf("[%s] %s", sortKeys[m], sortLabels[m])
		if m == active {
			buttons = append(buttons, SortButtonActive.Render(label))
		} else {
			buttons = append(buttons, SortButton.Render(label))
		}
	}
	return SortBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
}

// ClusterHeading is the 1-based title line of a cluster.
func ClusterHeading(index int, avg float64) string {
	return fmt.Sprintf("Cluster %d (avg rating: %.1f)", index+1, avg)
}

func renderCluster(index int, c cluster.Cluster, width int) string {
	perRow := (width + cardGap) / (cardWidth + cardGap)
	if perRow < 1 {
		perRow = 1
	}

	rows := []string{ClusterHeader.Render(ClusterHeading(index, c.AvgRating))}
	for start := 0; start < len(c.Items); start += perRow {
		end := min(start+perRow, len(c.Items))
		cards := make([]string, 0, 2*(end-start))
		for i, it := range c.Items[start:end] {
			if i > 0 {
				cards = append(cards, strings.Repeat(" ", cardGap))
			}
			cards = append(cards, renderCard(it))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCard(it cluster.Item) string {
	inner := cardWidth - Card.GetHorizontalFrameSize()
	fit := func(s string) string { return runewidth.Truncate(s, inner, "…") }

	genres := it.GenreList()
	if genres == "" {
		genres = " "
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		CardPoster.Render(fit(PosterURL(it))),
		CardTitle.Render(fit(it.Title)),
		CardRating.Render(StarLabel(it.Rating)),
		CardGenres.Render(fit(genres)),
	)
	return Card.Width(cardWidth - Card.GetHorizontalBorderSize()).Render(body)
}

// StarLabel formats a rating the way the card shows it, e.g. "★ 8.3".
func StarLabel(rating float64) string {
	return "★ " + strconv.FormatFloat(rating, 'f', -1, 64)
}

// PosterURL returns the item's poster, or a per-item placeholder when the
// poster cannot be loaded (missing or not an absolute http(s) URL).
func PosterURL(it cluster.Item) string {
	if u, err := url.Parse(it.Poster); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return it.Poster
	}
	return FallbackPoster(it.ID)
}

// FallbackPoster is the deterministic placeholder image for id.
func FallbackPoster(id cluster.ID) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/240/360", url.PathEscape(string(id)))
}
