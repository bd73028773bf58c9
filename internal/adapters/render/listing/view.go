package listing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bnema/camp-cli/internal/application"
	"github.com/bnema/camp-cli/internal/domain"
	"github.com/bnema/camp-cli/internal/textfmt"
	"github.com/charmbracelet/lipgloss"
)

const barWidth = 20

// Listing is a titled list of store entries ready to render.
type Listing struct {
	Title string
	Noun  string
	Rows  []Row
}

type Row struct {
	ID       string
	Title    string
	Details  []string
	Bar      *Bar
	Body     []textfmt.Segment
	Selected bool
	State    application.EntryState
}

// Bar is a labelled gauge such as hit points or carried weight.
type Bar struct {
	Label  string
	Value  float64
	Max    float64
	Suffix string
	// Invert colors the bar hotter as it fills, for things like load.
	Invert bool
}

type Options struct {
	Selected  string
	State     func(id string) application.EntryState
	Highlight string
}

func (o Options) row(id, title string) Row {
	row := Row{ID: id, Title: title, Selected: id != "" && id == o.Selected}
	if o.State != nil {
		row.State = o.State(id)
	}
	return row
}

func renderView(l Listing, s styles) string {
	noun := l.Noun
	if noun == "" {
		noun = "entries"
	}

	lines := []string{
		s.title.Render(l.Title),
		s.header.Render(fmt.Sprintf("%s: %d", noun, len(l.Rows))),
	}

	if len(l.Rows) == 0 {
		lines = append(lines, s.empty.Render(fmt.Sprintf("No %s yet.", noun)))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, row := range l.Rows {
		lines = append(lines, s.section.Render(renderRow(row, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderRow(row Row, s styles) string {
	titleStyle := s.entry
	marker := "  "
	if row.Selected {
		titleStyle = s.selected
		marker = "▸ "
	}

	head := marker + titleStyle.Render(row.Title)
	if row.ID != "" {
		head += " " + s.header.Render("("+row.ID+")")
	}
	if flag := stateFlag(row.State, s); flag != "" {
		head += " " + flag
	}

	parts := []string{head}
	if row.Bar != nil {
		parts = append(parts, "  "+renderBar(*row.Bar, s))
	}
	for _, detail := range row.Details {
		parts = append(parts, "  "+s.detail.Render(detail))
	}
	if len(row.Body) > 0 {
		body := textfmt.Render(row.Body, func(text string) string {
			if strings.HasPrefix(text, "#") {
				return s.tag.Render(text)
			}
			return s.match.Render(text)
		})
		for _, line := range strings.Split(body, "\n") {
			parts = append(parts, "  "+line)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func stateFlag(state application.EntryState, s styles) string {
	switch state {
	case application.EntryOptimistic:
		return s.pending.Render("[saving]")
	case application.EntryStale:
		return s.warning.Render("[unsynced]")
	default:
		return ""
	}
}

func renderBar(b Bar, s styles) string {
	fraction := 0.0
	if b.Max > 0 {
		fraction = textfmt.Clamp(b.Value/b.Max, 0, 1)
	}

	percent := fraction * 100
	if b.Invert {
		percent = 100 - percent
	}
	valueStyle := lipgloss.NewStyle().Foreground(interpolateColor(percent, 0, 100))
	value := valueStyle.Render(fmt.Sprintf("%s/%s", formatNumber(b.Value), formatNumber(b.Max)))
	if b.Suffix != "" {
		value += " " + s.header.Render(b.Suffix)
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.detail.Render(b.Label+":"),
		" ",
		renderProgressBar(fraction, barWidth, s),
		" ",
		value,
	)
}

func renderProgressBar(fraction float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := textfmt.Clamp(int(math.Round(float64(width)*fraction)), 0, width)
	empty := width - filled

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", empty)),
		s.barBracket.Render("]"),
	)
}

// interpolateColor walks the 256-color ramp from red (low) to green (high).
func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := textfmt.Clamp((value-min)/(max-min), 0, 1)
	ramp := []string{"196", "202", "208", "214", "220", "190", "154", "118", "82"}
	idx := int(math.Round(normalized * float64(len(ramp)-1)))
	return lipgloss.Color(ramp[idx])
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func Characters(items []domain.Character, opts Options) Listing {
	l := Listing{Title: "Characters", Noun: "characters"}
	for _, c := range items {
		row := opts.row(c.ID, c.Name)
		row.Details = append(row.Details, joinNonEmpty(" ", fmt.Sprintf("level %d", c.Level), c.Race, c.Class))
		if !c.Currency.IsZero() {
			row.Details = append(row.Details, "purse: "+c.Currency.String())
		}
		if c.HitPoints.Max > 0 {
			suffix := ""
			if c.HitPoints.Temporary > 0 {
				suffix = fmt.Sprintf("+%d temp", c.HitPoints.Temporary)
			}
			row.Bar = &Bar{Label: "hp", Value: float64(c.HitPoints.Current), Max: float64(c.HitPoints.Max), Suffix: suffix}
		}
		l.Rows = append(l.Rows, row)
	}
	return l
}

// Inventories lists each inventory with its items. capacity, when positive,
// renders the carried weight as a gauge.
func Inventories(items []domain.Inventory, capacity float64, opts Options) Listing {
	l := Listing{Title: "Inventories", Noun: "inventories"}
	for _, inv := range items {
		row := opts.row(inv.ID, inv.Name)
		if len(inv.Items) == 0 {
			row.Details = append(row.Details, "(empty)")
		}
		for _, item := range inv.Items {
			line := fmt.Sprintf("- %s x%d", item.Name, item.Quantity)
			if item.Weight > 0 {
				line += fmt.Sprintf(" (%s lb)", formatNumber(item.Weight*float64(item.Quantity)))
			}
			if item.Equipped {
				line += " [equipped]"
			}
			row.Details = append(row.Details, line)
		}
		if !inv.Currency.IsZero() {
			row.Details = append(row.Details, "purse: "+inv.Currency.String())
		}
		if capacity > 0 {
			row.Bar = &Bar{Label: "load", Value: inv.TotalWeight(), Max: capacity, Suffix: "lb", Invert: true}
		} else if weight := inv.TotalWeight(); weight > 0 {
			row.Details = append(row.Details, fmt.Sprintf("weight: %s lb", formatNumber(weight)))
		}
		l.Rows = append(l.Rows, row)
	}
	return l
}

// Notes highlights opts.Highlight in note bodies, or the hashtags when no term is set.
func Notes(items []domain.Note, opts Options) Listing {
	l := Listing{Title: "Notes", Noun: "notes"}
	for _, n := range items {
		row := opts.row(n.ID, n.Title)
		if opts.Highlight != "" {
			row.Body = textfmt.Highlight(n.Content, opts.Highlight)
		} else {
			row.Body = textfmt.SplitHashtags(n.Content)
		}
		if !n.UpdatedAt.IsZero() {
			row.Details = append(row.Details, "updated "+n.UpdatedAt.Format("2006-01-02 15:04"))
		}
		l.Rows = append(l.Rows, row)
	}
	return l
}

func Spells(items []domain.Spell, opts Options) Listing {
	l := Listing{Title: "Spells", Noun: "spells"}
	for _, sp := range items {
		row := opts.row(sp.ID, sp.Name)
		level := "cantrip"
		if sp.Level > 0 {
			level = fmt.Sprintf("level %d", sp.Level)
		}
		row.Details = append(row.Details, joinNonEmpty(" ", level, sp.School))
		l.Rows = append(l.Rows, row)
	}
	return l
}

func Equipment(items []domain.Equipment, opts Options) Listing {
	l := Listing{Title: "Equipment", Noun: "equipment"}
	for _, e := range items {
		row := opts.row(e.ID, e.Name)
		details := []string{e.Index, e.Category}
		if e.Cost.Quantity > 0 {
			details = append(details, fmt.Sprintf("%d %s", e.Cost.Quantity, e.Cost.Unit))
		}
		if e.Weight > 0 {
			details = append(details, formatNumber(e.Weight)+" lb")
		}
		row.Details = append(row.Details, joinNonEmpty(" · ", details...))
		l.Rows = append(l.Rows, row)
	}
	return l
}

func Monsters(items []domain.Monster, opts Options) Listing {
	l := Listing{Title: "Monsters", Noun: "monsters"}
	for _, m := range items {
		row := opts.row(m.ID, m.Name)
		row.Details = append(row.Details,
			joinNonEmpty(" ", m.Size, m.Type, m.Alignment),
			fmt.Sprintf("AC %d · HP %d · CR %s", m.ArmorClass, m.HitPoints, formatNumber(m.ChallengeRating)),
		)
		l.Rows = append(l.Rows, row)
	}
	return l
}

func Users(items []domain.User, opts Options) Listing {
	l := Listing{Title: "Users", Noun: "users"}
	for _, u := range items {
		row := opts.row(u.ID, u.Username)
		row.Details = append(row.Details, joinNonEmpty(" · ", u.Email, strings.Join(u.Roles, ", ")))
		l.Rows = append(l.Rows, row)
	}
	return l
}

func Campaigns(items []domain.Campaign, opts Options) Listing {
	l := Listing{Title: "Campaigns", Noun: "campaigns"}
	for _, c := range items {
		row := opts.row(c.ID, c.Name)
		if c.Description != "" {
			row.Details = append(row.Details, c.Description)
		}
		row.Details = append(row.Details, fmt.Sprintf("characters: %d", len(c.CharacterIDs)))
		l.Rows = append(l.Rows, row)
	}
	return l
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, sep)
}
