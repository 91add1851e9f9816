package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap is built once; every render reuses the same bindings.
type keyMap struct {
	PrevGenre  key.Binding
	NextGenre  key.Binding
	RatingDown key.Binding
	RatingUp   key.Binding
	Cluster    key.Binding
	SortNone   key.Binding
	SortTitle  key.Binding
	SortRating key.Binding
	Help       key.Binding
	Debug      key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PrevGenre:  key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev genre")),
		NextGenre:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next genre")),
		RatingDown: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "rating -")),
		RatingUp:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "rating +")),
		Cluster:    key.NewBinding(key.WithKeys("enter", "c"), key.WithHelp("enter", "cluster")),
		SortNone:   key.NewBinding(key.WithKeys("n", "1"), key.WithHelp("n", "no sort")),
		SortTitle:  key.NewBinding(key.WithKeys("t", "2"), key.WithHelp("t", "by title")),
		SortRating: key.NewBinding(key.WithKeys("r", "3"), key.WithHelp("r", "by rating")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Debug:      key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "debug")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Cluster, k.SortTitle, k.SortRating, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevGenre, k.NextGenre, k.RatingDown, k.RatingUp},
		{k.Cluster, k.SortNone, k.SortTitle, k.SortRating},
		{k.Help, k.Debug, k.Quit},
	}
}
