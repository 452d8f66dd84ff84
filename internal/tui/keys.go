package tui

import "charm.land/bubbles/v2/key"

// KeyMap holds the document pane bindings.
type KeyMap struct {
	Quit         key.Binding
	Help         key.Binding
	Search       key.Binding
	BatchSearch  key.Binding
	NextMatch    key.Binding
	PrevMatch    key.Binding
	ScrollDown   key.Binding
	ScrollUp     key.Binding
	ScrollLeft   key.Binding
	ScrollRight  key.Binding
	HalfDown     key.Binding
	HalfUp       key.Binding
	NextPage     key.Binding
	PrevPage     key.Binding
	FirstPage    key.Binding
	LastPage     key.Binding
	ZoomIn       key.Binding
	ZoomOut      key.Binding
	ZoomReset    key.Binding
	FitWidth     key.Binding
	FitPage      key.Binding
	Copy         key.Binding
	SelectPage   key.Binding
	SelectAll    key.Binding
	Clear        key.Binding
	ToggleStrip  key.Binding
	Reload       key.Binding
	SubmitSearch key.Binding
	CancelSearch key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		BatchSearch: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "multi-term search")),
		NextMatch:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n/N", "next/prev match")),
		PrevMatch:   key.NewBinding(key.WithKeys("N")),
		ScrollDown:  key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/k", "scroll")),
		ScrollUp:    key.NewBinding(key.WithKeys("k", "up")),
		ScrollLeft:  key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/l", "pan")),
		ScrollRight: key.NewBinding(key.WithKeys("l", "right")),
		HalfDown:    key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d/u", "half page")),
		HalfUp:      key.NewBinding(key.WithKeys("ctrl+u")),
		NextPage:    key.NewBinding(key.WithKeys("pgdown", "space", "J"), key.WithHelp("pgdn/pgup", "page")),
		PrevPage:    key.NewBinding(key.WithKeys("pgup", "K")),
		FirstPage:   key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g/G", "first/last page")),
		LastPage:    key.NewBinding(key.WithKeys("G", "end")),
		ZoomIn:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
		ZoomOut:     key.NewBinding(key.WithKeys("-")),
		ZoomReset:   key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset zoom")),
		FitWidth:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "fit width")),
		FitPage:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "fit page")),
		Copy:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		SelectPage:  key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "select page")),
		SelectAll:   key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "select document")),
		Clear:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		ToggleStrip: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "toggle minimap")),
		Reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),

		SubmitSearch: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		CancelSearch: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.BatchSearch, k.NextMatch, k.ZoomIn, k.Copy, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ScrollDown, k.ScrollLeft, k.HalfDown, k.NextPage, k.FirstPage},
		{k.ZoomIn, k.ZoomReset, k.FitWidth, k.FitPage},
		{k.Search, k.BatchSearch, k.NextMatch, k.Clear},
		{k.Copy, k.SelectPage, k.SelectAll, k.ToggleStrip, k.Reload, k.Quit},
	}
}

// searchKeys is the help shown while the search input is focused.
type searchKeys struct{ k KeyMap }

func (s searchKeys) ShortHelp() []key.Binding {
	return []key.Binding{s.k.SubmitSearch, s.k.CancelSearch}
}

func (s searchKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{s.ShortHelp()}
}
