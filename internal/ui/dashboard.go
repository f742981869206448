package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// BalanceEntry is one coin balance on the live dashboard.
type BalanceEntry struct {
	Wallet  string
	Address string
	Coin    string
	Balance string
	Value   string // fiat value, empty when unknown
}

// BalanceFetcher returns the current balances to display.
type BalanceFetcher func() ([]BalanceEntry, error)

// snapshot is the result of one fetch.
type snapshot struct {
	entries []BalanceEntry
	err     error
	at      time.Time
}

type refreshMsg time.Time

type dashboard struct {
	title    string
	every    time.Duration
	fetch    BalanceFetcher
	shown    snapshot // last successful fetch
	failure  error    // latest failure, cleared by the next success
	inFlight bool
	fetches  int
	closed   bool
}

// NewDashboard returns a program that re-fetches balances every interval
// until q is pressed. r forces a refresh.
func NewDashboard(title string, interval time.Duration, fetcher BalanceFetcher) *tea.Program {
	return tea.NewProgram(newDashboardModel(title, interval, fetcher))
}

func newDashboardModel(title string, interval time.Duration, fetcher BalanceFetcher) dashboard {
	return dashboard{title: title, every: interval, fetch: fetcher}
}

func (d dashboard) Init() tea.Cmd {
	return tea.Batch(d.load(), scheduleRefresh(d.every))
}

func (d dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			d.closed = true
			return d, tea.Quit
		case "r":
			if d.inFlight {
				return d, nil
			}
			d.inFlight = true
			return d, d.load()
		}

	case refreshMsg:
		next := scheduleRefresh(d.every)
		if d.inFlight {
			return d, next
		}
		d.inFlight = true
		return d, tea.Batch(d.load(), next)

	case snapshot:
		d.inFlight = false
		d.fetches++
		if msg.err != nil {
			d.failure = msg.err
			return d, nil
		}
		d.shown, d.failure = msg, nil
	}
	return d, nil
}

func (d dashboard) View() string {
	if d.closed {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(d.title) + "\n")
	b.WriteString(StyleMeta.Render(d.status()) + "\n\n")

	if d.failure != nil {
		b.WriteString(Err(trimErr(d.failure.Error())) + "\n")
	}
	if d.shown.at.IsZero() {
		if d.failure == nil {
			b.WriteString(StyleMeta.Render("Loading...") + "\n")
		}
		return b.String()
	}
	if len(d.shown.entries) == 0 {
		b.WriteString(StyleMeta.Render("No coins owned.") + "\n")
		return b.String()
	}

	t := NewTable([]Column{
		{Title: "Wallet", Width: 14},
		{Title: "Address", Width: 14},
		{Title: "Coin", Width: 8},
		{Title: "Balance", Width: 22},
		{Title: "Value", Width: 14},
	})
	for _, e := range d.shown.entries {
		t.AddRow(Row{e.Wallet, TruncateAddr(e.Address), e.Coin, e.Balance, e.Value})
	}
	b.WriteString(t.Render())
	return b.String()
}

// status renders the header line, flagging balances left over from an
// earlier fetch.
func (d dashboard) status() string {
	updated := "never"
	if !d.shown.at.IsZero() {
		updated = d.shown.at.Format("15:04:05")
		if d.failure != nil {
			updated += " (stale)"
		}
	}
	return fmt.Sprintf("Updated: %s · fetch #%d · every %s · r refresh · q quit", updated, d.fetches, d.every)
}

func (d dashboard) load() tea.Cmd {
	fetch := d.fetch
	return func() tea.Msg {
		entries, err := fetch()
		return snapshot{entries: entries, err: err, at: time.Now()}
	}
}

func scheduleRefresh(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg { return refreshMsg(t) })
}
