package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/contacts/internal/book"
	"github.com/smileynet/contacts/internal/record"
)

// borderChrome is the number of columns consumed by left + right borders.
const borderChrome = 2

// Model is the Bubble Tea model for paging through an address book.
// Each page shows book.PageSize() records.
type Model struct {
	book     *book.Book
	pager    paginator.Model
	keys     pagerKeys
	help     help.Model
	now      func() time.Time
	width    int
	height   int
	quitting bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithClock sets the clock used for birthday countdowns (default: time.Now).
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// NewModel creates a pager Model positioned on the first page of b.
func NewModel(b *book.Book, opts ...ModelOption) Model {
	p := paginator.New()
	p.Type = paginator.Dots
	p.PerPage = b.PageSize()
	p.SetTotalPages(b.Len())
	p.ActiveDot = titleStyle.Render("•")
	p.InactiveDot = mutedText.Render("•")

	m := Model{
		book:  b,
		pager: p,
		keys:  PagerKeyMap(),
		help:  help.New(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Page returns the zero-based index of the page on screen.
func (m Model) Page() int {
	return m.pager.Page
}

// Update handles key and resize messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Prev):
			m.pager.PrevPage()
		case key.Matches(msg, m.keys.Next):
			m.pager.NextPage()
		case key.Matches(msg, m.keys.First):
			m.pager.Page = 0
		case key.Matches(msg, m.keys.Last):
			m.pager.Page = max(0, m.pager.TotalPages-1)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil
	}

	return m, nil
}

// View renders the current page of contact cards, the page dots, and help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Address Book (%d contacts)", m.book.Len())))
	b.WriteString("\n\n")

	records := m.book.Page(m.pager.Page)
	if len(records) == 0 {
		b.WriteString(mutedText.Render("No contacts"))
		b.WriteString("\n")
	}

	today := m.now()
	card := CardBorder().Width(CardWidth(m.width) - borderChrome)
	offset := m.pager.Page * m.book.PageSize()
	for i, r := range records {
		b.WriteString(card.Render(renderCard(offset+i+1, r, today)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.pager.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// renderCard renders one record's fields as card body text.
func renderCard(index int, r *record.Record, today time.Time) string {
	lines := []string{
		fmt.Sprintf("%s %s", labelStyle.Render(fmt.Sprintf("%d.", index)), nameStyle.Render(r.Name().Value())),
	}

	phones := r.PhoneValues()
	if len(phones) == 0 {
		lines = append(lines, labelStyle.Render("Phones:   ")+mutedText.Render("none"))
	} else {
		lines = append(lines, labelStyle.Render("Phones:   ")+strings.Join(phones, ", "))
	}

	birthday := labelStyle.Render("Birthday: ") + r.Birthday().String()
	if days, ok := r.DaysToBirthdayFrom(today); ok {
		birthday += " " + BirthdayBadge(days)
	}
	lines = append(lines, birthday)

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
