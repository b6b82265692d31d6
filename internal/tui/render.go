package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/jaskseq/internal/sequence"
	"github.com/jask/jaskseq/internal/transform"
)

// styles
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	faintStyle    = lipgloss.NewStyle().Faint(true)
)

func (a *App) View() string {
	var body string
	switch a.state {
	case viewGenerate:
		body = a.renderGenerate()
	case viewLibrary:
		body = a.renderLibrary()
	case viewSettings:
		body = a.renderSettings()
	default:
		body = a.renderEditor()
	}
	if a.modal != modalNone {
		body += "\n\n" + a.renderModal()
	}
	return body
}

func (a *App) renderEditor() string {
	title := titleStyle.Render("JaskSeq Editor")
	out := title + "\n"
	out += fmt.Sprintf("word: %s  level: %d  beats: %d  channel: %s\n",
		displayWord(a.seq), sequence.Level(a.seq), a.seq.Length(), a.channel)
	out += a.renderBeatGrid() + "\n"
	out += a.renderSelectedBeat()
	out += a.renderPicker()
	out += "\n" + helpLine(a.keys.Enter, a.keys.Remove, a.keys.RemoveRest, a.keys.TurnsUp,
		a.keys.Orientation, a.keys.Channel, a.keys.Mirror, a.keys.Rotate, a.keys.SwapHands,
		a.keys.PickStart, a.keys.ClearStart, a.keys.Clear, a.keys.Save)
	out += "\n" + helpLine(a.keys.Generate, a.keys.Library, a.keys.Settings, a.keys.Quit)
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderBeatGrid() string {
	var cells []string
	if start, ok := a.seq.StartPosition(); ok {
		cells = append(cells, faintStyle.Render(fmt.Sprintf("start %s@%s", start.Letter, start.Pictograph.EndPos)))
	} else {
		cells = append(cells, faintStyle.Render("start (unset)"))
	}
	beats := a.seq.RegularBeats()
	if len(beats) == 0 {
		cells = append(cells, faintStyle.Render("(no beats)"))
	}
	for i, b := range beats {
		cell := fmt.Sprintf("%d:%s", b.Number, b.Letter)
		if i == a.beatCursor {
			cell = selectedStyle.Render(cell)
		}
		cells = append(cells, cell)
	}
	return strings.Join(cells, "  ")
}

func (a *App) renderSelectedBeat() string {
	beats := a.seq.RegularBeats()
	if len(beats) == 0 || a.beatCursor >= len(beats) {
		return ""
	}
	b := beats[a.beatCursor]
	out := fmt.Sprintf("beat %d  %s  %s→%s\n", b.Number, b.Letter, b.Pictograph.StartPos, b.Pictograph.EndPos)
	for _, ch := range sequence.Channels() {
		marker := " "
		if ch == a.channel {
			marker = "▶"
		}
		m := b.Pictograph.Motions[ch]
		out += fmt.Sprintf("%s %-4s %-6s %s→%s  turns %.1f  ori %s→%s\n",
			marker, ch, m.MotionType, m.StartLoc, m.EndLoc, m.Turns, m.StartOri, m.EndOri)
	}
	return out
}

func (a *App) renderPicker() string {
	label := "options from " + string(a.endPosition())
	if _, hasStart := a.seq.StartPosition(); a.pickingStart || !hasStart {
		label = "pick a start position"
	}
	out := "\n" + label + "\n"
	if len(a.options) == 0 {
		return out + faintStyle.Render("  (none)") + "\n"
	}
	for i, p := range a.options {
		marker := " "
		if i == a.optionCursor {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %-2s %s→%s  blue %-6s red %-6s\n", marker, p.Letter, p.StartPos, p.EndPos,
			p.Motions[sequence.ChannelBlue].MotionType, p.Motions[sequence.ChannelRed].MotionType)
	}
	return out
}

func (a *App) renderGenerate() string {
	title := titleStyle.Render("Generate")
	mode := "freeform"
	if a.genMode == transform.OpCircular {
		mode = "circular"
	}
	out := title + "\n"
	out += fmt.Sprintf("mode: %s\n", mode)
	out += a.lengthInput.View() + "\n"
	if a.genMode == transform.OpCircular {
		out += fmt.Sprintf("CAP: %s (j/k)  slice: %s (←/→)\n", a.capType, a.capSlice)
	}
	out += faintStyle.Render("enter builds a fresh sequence in place of the current one") + "\n"
	out += helpLine(a.keys.Enter, a.keys.Mode, a.keys.Back, a.keys.Quit)
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderLibrary() string {
	title := titleStyle.Render("Library")
	out := title + "\n"
	out += a.searchInput.View() + "\n"
	if len(a.entries) == 0 {
		out += faintStyle.Render("(no saved sequences)") + "\n"
	}
	for i, e := range a.entries {
		marker := " "
		if i == a.libCursor {
			marker = "▶"
		}
		star := " "
		if e.Favorite {
			star = "★"
		}
		name := ""
		if e.Name != e.Word {
			name = "  (" + e.Name + ")"
		}
		out += fmt.Sprintf("%s %s %-12s lvl %d  %2d beats%s\n", marker, star, e.Word, e.Level, e.Length, name)
	}
	out += "\n" + helpLine(a.keys.Enter, a.keys.Search, a.keys.Favorite, a.keys.Delete,
		a.keys.Import, a.keys.Back, a.keys.Quit)
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderSettings() string {
	title := titleStyle.Render("Settings")
	out := title + "\n"
	for i, f := range settingsFields {
		marker := " "
		if i == a.settingsCursor {
			marker = "▶"
		}
		value := a.settingValue(f)
		if value == "" {
			value = "(not set)"
		}
		out += fmt.Sprintf("%s %-6s %s\n", marker, f, value)
	}
	out += faintStyle.Render("db: "+a.cfg.Database.Path) + "\n"
	out += faintStyle.Render("sequence file: "+a.cfg.Sequence.Path) + "\n"
	out += "\n" + helpLine(a.keys.Enter, a.keys.Reset, a.keys.Back, a.keys.Quit)
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalSave:
		return titleStyle.Render("Save to library") + "\n" + a.saveInput.View() + "\n[enter] Save  [esc] Cancel"
	case modalImport:
		return titleStyle.Render("Import sequence file") + "\n" + a.importInput.View() + "\n[enter] Import  [esc] Cancel"
	case modalEditField:
		return titleStyle.Render("Edit setting") + "\n" + a.fieldInput.View() + "\n[enter] Save  [esc] Cancel"
	case modalConfirmReset:
		return titleStyle.Render("Reset library?") + "\nThis deletes every saved sequence.\n[y] Yes  [n] No"
	default:
		return ""
	}
}
