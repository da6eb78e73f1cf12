package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/five82/backdrop/internal/preset"
	"github.com/five82/backdrop/internal/style"
)

const listWidth = 38

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	styles := m.theme.Styles()
	bodyHeight := max(3, m.height-4)

	list := styles.FocusPanel.
		Width(listWidth).
		Height(bodyHeight).
		Render(m.renderList(styles, bodyHeight))

	previewWidth := max(10, m.width-listWidth-6)
	preview := styles.Panel.
		Width(previewWidth).
		Height(bodyHeight).
		Render(m.renderPreview(styles, previewWidth, bodyHeight))

	body := lipgloss.JoinHorizontal(lipgloss.Top, list, preview)
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(styles),
		body,
		m.renderFooter(styles),
	)
}

func (m Model) renderHeader(styles Styles) string {
	bg := NewBgStyle(m.theme.Surface)
	title := bg.Render("backdrop", styles.AccentText.Bold(true))
	current := bg.Render("current: "+m.selected, styles.MutedText)
	return bg.FillLine(title+bg.Render("  ", styles.Text)+current, m.width)
}

func (m Model) renderList(styles Styles, height int) string {
	if len(m.catalog) == 0 {
		return styles.MutedText.Render("No presets")
	}

	// Keep the cursor visible.
	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	end := min(len(m.catalog), start+height)

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		p := m.catalog[i]
		marker := "  "
		if p.ID == m.selected {
			marker = "✓ "
		}
		name := p.Name
		if !preset.IsBuiltIn(p.ID) {
			name += " *"
		}
		line := fmt.Sprintf("%s%-*s", marker, listWidth-4, truncate(name, listWidth-4))
		if i == m.cursor {
			line = styles.Selected.Render(line)
		} else if p.ID == m.selected {
			line = styles.SuccessText.Render(line)
		} else {
			line = styles.Text.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderPreview(styles Styles, width, height int) string {
	p, ok := m.highlighted()
	if !ok {
		return ""
	}
	decl := style.Compiler{Logger: m.logger}.Compile(p)

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.Text.Bold(true).Render(p.Name),
		" ",
		styles.VariantStyle(string(p.Variant)).Render(string(p.Variant)),
	)

	props := decl.Properties()
	detail := make([]string, 0, len(props))
	for _, prop := range props {
		detail = append(detail, styles.FaintText.Render(truncate(prop.Name+": "+prop.Value, width)))
	}

	swatchHeight := max(1, height-len(detail)-3)
	swatch := renderSwatch(p, max(1, width/2), swatchHeight)

	return strings.Join([]string{header, "", swatch, strings.Join(detail, "\n")}, "\n")
}

func (m Model) renderFooter(styles Styles) string {
	left := m.help.ShortHelpView(m.keys.ShortHelp())
	if m.status != "" {
		st := styles.MutedText
		if m.statusErr {
			st = styles.DangerText
		}
		left = st.Render(m.status) + "  " + left
	}
	return styles.Footer.Width(m.width).Render(left)
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return runewidth.Truncate(s, n, "…")
}
