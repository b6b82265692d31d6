package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/jaskseq/internal/config"
	"github.com/jask/jaskseq/internal/database/repository"
	"github.com/jask/jaskseq/internal/generate"
	"github.com/jask/jaskseq/internal/seqfile"
	"github.com/jask/jaskseq/internal/sequence"
	"github.com/jask/jaskseq/internal/service"
	"github.com/jask/jaskseq/internal/transform"
	"github.com/jask/jaskseq/internal/workbench"
)

// App ties together views around the current working sequence. The app IS
// the workbench: the engine reads and writes a.seq through closures, so
// every engine call must happen on the update goroutine. Only library I/O
// runs as commands.
type App struct {
	ctx    context.Context
	cfg    config.Config
	deps   Deps
	engine *workbench.Orchestrator
	keys   keyMap

	state appState
	modal modalState

	seq sequence.SequenceData

	// editor
	beatCursor   int
	options      []sequence.PictographData
	optionCursor int
	pickingStart bool
	channel      sequence.Channel

	// generate
	genMode     transform.Operation
	capType     transform.CAPType
	capSlice    transform.SliceSize
	lengthInput textinput.Model

	// library
	entries     []repository.Sequence
	libCursor   int
	searchInput textinput.Model
	lastQuery   string

	// settings
	settingsCursor int

	saveInput   textinput.Model
	importInput textinput.Model
	fieldInput  textinput.Model

	status string
}

// Deps are the constructed collaborators the app drives.
type Deps struct {
	Store       *seqfile.Store
	Library     *service.Library
	Maintenance *service.MaintenanceService
	Dataset     *generate.Dataset
	Transformer *transform.Transformer
	Logger      *log.Logger
}

type appState string

const (
	viewEditor   appState = "editor"
	viewGenerate appState = "generate"
	viewLibrary  appState = "library"
	viewSettings appState = "settings"
)

type modalState string

const (
	modalNone         modalState = ""
	modalSave         modalState = "save"
	modalImport       modalState = "import"
	modalEditField    modalState = "editField"
	modalConfirmReset modalState = "confirmReset"
)

func New(ctx context.Context, cfg config.Config, deps Deps) *App {
	a := &App{
		ctx:      ctx,
		cfg:      cfg,
		deps:     deps,
		keys:     newKeyMap(),
		state:    viewEditor,
		channel:  sequence.ChannelBlue,
		genMode:  transform.OpFreeform,
		capType:  transform.CAPRotated,
		capSlice: transform.SliceHalved,
	}

	a.lengthInput = textinput.New()
	a.lengthInput.Prompt = "length: "
	a.lengthInput.CharLimit = 3
	a.lengthInput.SetValue(strconv.Itoa(cfg.Generate.Length))
	a.lengthInput.Focus()

	a.searchInput = textinput.New()
	a.searchInput.Prompt = "/"
	a.searchInput.Placeholder = "word"

	a.saveInput = textinput.New()
	a.saveInput.Prompt = "name: "

	a.importInput = textinput.New()
	a.importInput.Prompt = "path: "

	a.fieldInput = textinput.New()

	a.engine = workbench.New(
		workbench.WorkbenchFuncs{
			Get: func() sequence.SequenceData { return a.seq },
			Set: func(s sequence.SequenceData) { a.seq = s },
		},
		deps.Store,
		seqfile.Converter{},
		deps.Transformer,
		a.emitter(),
		deps.Logger,
	)

	if err := a.engine.LoadSequenceOnStartup(); err != nil {
		a.status = "error: " + err.Error()
	}
	a.refreshOptions()
	return a
}

// emitter maps engine events onto the status line.
func (a *App) emitter() workbench.EventEmitter {
	return workbench.EmitterFuncs{
		OnBeatAdded:        func(b sequence.BeatData) { a.status = fmt.Sprintf("beat %d added (%s)", b.Number, b.Letter) },
		OnBeatRemoved:      func(i int) { a.status = fmt.Sprintf("beat %d removed", i+1) },
		OnBeatUpdated:      func(i int) { a.status = fmt.Sprintf("beat %d updated", i+1) },
		OnStartPositionSet: func(b sequence.BeatData) { a.status = "start position " + b.Letter },
		OnSequenceCleared:  func() { a.status = "sequence cleared" },
		OnSequenceLoaded:   func(s sequence.SequenceData) { a.status = fmt.Sprintf("loaded %d beats", s.Length()) },
		OnSequenceModified: func(s sequence.SequenceData) { a.status = "sequence updated: " + displayWord(s) },
	}
}

func (a *App) Init() tea.Cmd {
	return a.loadLibrary("")
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		switch a.state {
		case viewGenerate:
			return a.handleGenerateKey(m)
		case viewLibrary:
			return a.handleLibraryKey(m)
		case viewSettings:
			return a.handleSettingsKey(m)
		default:
			return a.handleEditorKey(m)
		}
	case libraryMsg:
		a.entries = []repository.Sequence(m)
		if a.libCursor >= len(a.entries) {
			a.libCursor = 0
		}
	case loadedMsg:
		a.seq = sequence.SequenceData(m)
		if err := a.engine.HandleWorkbenchModified(); err != nil {
			a.status = "error: " + err.Error()
		} else {
			a.status = fmt.Sprintf("loaded %q into editor", displayWord(a.seq))
		}
		a.state = viewEditor
		a.beatCursor = 0
		a.clampEditor()
	case savedMsg:
		a.status = fmt.Sprintf("saved %q to library", m.row.Name)
		return a, a.loadLibrary(a.lastQuery)
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.status = "error: " + m.Error()
	}
	return a, nil
}

func (a *App) handleEditorKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Generate):
		a.state = viewGenerate
	case key.Matches(m, a.keys.Library):
		a.state = viewLibrary
		return a, a.loadLibrary(a.lastQuery)
	case key.Matches(m, a.keys.Settings):
		a.state = viewSettings
	case key.Matches(m, a.keys.Back):
		if a.pickingStart {
			a.pickingStart = false
			a.refreshOptions()
		}
	case key.Matches(m, a.keys.Up):
		if a.optionCursor > 0 {
			a.optionCursor--
		}
	case key.Matches(m, a.keys.Down):
		if a.optionCursor < len(a.options)-1 {
			a.optionCursor++
		}
	case key.Matches(m, a.keys.Left):
		if a.beatCursor > 0 {
			a.beatCursor--
		}
	case key.Matches(m, a.keys.Right):
		if a.beatCursor < len(a.seq.RegularBeats())-1 {
			a.beatCursor++
		}
	case key.Matches(m, a.keys.Enter):
		a.chooseOption()
	case key.Matches(m, a.keys.PickStart):
		a.pickingStart = true
		a.optionCursor = 0
		a.refreshOptions()
	case key.Matches(m, a.keys.ClearStart):
		a.runEngine(a.engine.ClearStartPosition)
	case key.Matches(m, a.keys.Remove):
		i := a.beatCursor
		a.runEngine(func() error { return a.engine.RemoveBeat(i) })
	case key.Matches(m, a.keys.RemoveRest):
		i := a.beatCursor
		a.runEngine(func() error { return a.engine.DeleteBeatAndFollowing(i) })
	case key.Matches(m, a.keys.TurnsUp):
		a.adjustTurns(0.5)
	case key.Matches(m, a.keys.TurnsDown):
		a.adjustTurns(-0.5)
	case key.Matches(m, a.keys.Orientation):
		a.cycleOrientation()
	case key.Matches(m, a.keys.Channel):
		if a.channel == sequence.ChannelBlue {
			a.channel = sequence.ChannelRed
		} else {
			a.channel = sequence.ChannelBlue
		}
		a.status = "editing " + string(a.channel) + " channel"
	case key.Matches(m, a.keys.Mirror):
		a.applyTransform(transform.OpMirror)
	case key.Matches(m, a.keys.Rotate):
		a.applyTransform(transform.OpRotate)
	case key.Matches(m, a.keys.SwapHands):
		a.applyTransform(transform.OpSwap)
	case key.Matches(m, a.keys.Clear):
		a.runEngine(a.engine.ClearSequence)
	case key.Matches(m, a.keys.Save):
		if sequence.Word(a.seq) == "" {
			a.status = "nothing to save"
			return a, nil
		}
		a.modal = modalSave
		a.saveInput.SetValue("")
		a.saveInput.Placeholder = sequence.Word(a.seq)
		a.saveInput.Focus()
		return a, textinput.Blink
	}
	return a, nil
}

// chooseOption applies the highlighted picker entry: the first pick (or an
// explicit re-pick) sets the start position, after that picks append beats.
func (a *App) chooseOption() {
	if len(a.options) == 0 {
		return
	}
	p := a.options[a.optionCursor]
	_, hasStart := a.seq.StartPosition()
	if a.pickingStart || !hasStart {
		a.pickingStart = false
		a.runEngine(func() error { return a.engine.SetStartPosition(p) })
		return
	}
	a.runEngine(func() error { return a.engine.AddPictograph(p) })
}

func (a *App) adjustTurns(delta float64) {
	beats := a.seq.RegularBeats()
	if len(beats) == 0 {
		a.status = "no beats"
		return
	}
	i, ch := a.beatCursor, a.channel
	turns := beats[i].Pictograph.Motions[ch].Turns + delta
	if turns < 0 {
		turns = 0
	}
	if turns > 3 {
		turns = 3
	}
	a.runEngine(func() error { return a.engine.UpdateBeatTurns(i, ch, turns) })
}

func (a *App) cycleOrientation() {
	beats := a.seq.RegularBeats()
	if len(beats) == 0 {
		a.status = "no beats"
		return
	}
	i, ch := a.beatCursor, a.channel
	next := nextOrientation(beats[i].Pictograph.Motions[ch].EndOri)
	a.runEngine(func() error { return a.engine.UpdateBeatOrientation(i, ch, next) })
}

func nextOrientation(o sequence.Orientation) sequence.Orientation {
	switch o {
	case sequence.OrientIn:
		return sequence.OrientOut
	case sequence.OrientOut:
		return sequence.OrientClock
	case sequence.OrientClock:
		return sequence.OrientCounter
	default:
		return sequence.OrientIn
	}
}

func (a *App) applyTransform(op transform.Operation) {
	if a.seq.Length() == 0 {
		a.status = "nothing to transform"
		return
	}
	a.runEngine(func() error { return a.engine.ApplyTransformation(op, transform.Params{}) })
}

// runEngine executes one engine operation synchronously and reports the
// outcome on the status line. Successful mutations already set the status
// through the emitter.
func (a *App) runEngine(op func() error) bool {
	err := op()
	if err != nil {
		var verr *sequence.ValidationError
		if errors.As(err, &verr) {
			a.status = "invalid: " + verr.Msg
		} else {
			a.status = "error: " + err.Error()
		}
	}
	a.clampEditor()
	return err == nil
}

func (a *App) clampEditor() {
	n := len(a.seq.RegularBeats())
	if a.beatCursor >= n {
		a.beatCursor = n - 1
	}
	if a.beatCursor < 0 {
		a.beatCursor = 0
	}
	a.refreshOptions()
}

// refreshOptions rebuilds the picker: start templates while picking a start
// (or when none is set yet), otherwise dataset options chaining from the
// current end position.
func (a *App) refreshOptions() {
	_, hasStart := a.seq.StartPosition()
	if a.pickingStart || !hasStart {
		a.options = a.deps.Dataset.StartPositions()
	} else {
		a.options = a.deps.Dataset.OptionsFrom(a.endPosition())
	}
	if a.optionCursor >= len(a.options) {
		a.optionCursor = 0
	}
}

// endPosition is where the props sit after the last beat.
func (a *App) endPosition() sequence.Position {
	if beats := a.seq.RegularBeats(); len(beats) > 0 {
		return beats[len(beats)-1].Pictograph.EndPos
	}
	if start, ok := a.seq.StartPosition(); ok {
		return start.Pictograph.EndPos
	}
	return ""
}

func (a *App) handleGenerateKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Back), key.Matches(m, a.keys.Editor):
		a.state = viewEditor
		return a, nil
	case key.Matches(m, a.keys.Library):
		a.state = viewLibrary
		return a, a.loadLibrary(a.lastQuery)
	case key.Matches(m, a.keys.Settings):
		a.state = viewSettings
		return a, nil
	case key.Matches(m, a.keys.Mode):
		if a.genMode == transform.OpFreeform {
			a.genMode = transform.OpCircular
		} else {
			a.genMode = transform.OpFreeform
		}
		return a, nil
	case key.Matches(m, a.keys.Up):
		a.capType = cycleCAP(a.capType, false)
		return a, nil
	case key.Matches(m, a.keys.Down):
		a.capType = cycleCAP(a.capType, true)
		return a, nil
	case key.Matches(m, a.keys.Left), key.Matches(m, a.keys.Right):
		if a.capSlice == transform.SliceHalved {
			a.capSlice = transform.SliceQuartered
		} else {
			a.capSlice = transform.SliceHalved
		}
		return a, nil
	case key.Matches(m, a.keys.Enter):
		a.runGenerate()
		return a, nil
	}
	var cmd tea.Cmd
	a.lengthInput, cmd = a.lengthInput.Update(m)
	return a, cmd
}

var capOrder = []transform.CAPType{
	transform.CAPRotated,
	transform.CAPMirrored,
	transform.CAPSwapped,
	transform.CAPComplementary,
}

func cycleCAP(cur transform.CAPType, forward bool) transform.CAPType {
	i := 0
	for idx, c := range capOrder {
		if c == cur {
			i = idx
			break
		}
	}
	if forward {
		i = (i + 1) % len(capOrder)
	} else {
		i = (i - 1 + len(capOrder)) % len(capOrder)
	}
	return capOrder[i]
}

// runGenerate replaces the working sequence with generated material.
func (a *App) runGenerate() {
	length, err := strconv.Atoi(strings.TrimSpace(a.lengthInput.Value()))
	if err != nil || length < 1 {
		a.status = "enter a length"
		return
	}
	params := transform.Params{Length: length}
	if a.genMode == transform.OpCircular {
		params.CAP = a.capType
		params.Slice = a.capSlice
	}
	if a.runEngine(func() error { return a.engine.ApplyTransformation(a.genMode, params) }) {
		a.state = viewEditor
	}
}

func (a *App) handleLibraryKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.searchInput.Focused() {
		switch m.String() {
		case "esc":
			a.searchInput.Blur()
			a.searchInput.SetValue("")
			a.lastQuery = ""
			return a, a.loadLibrary("")
		case "enter":
			a.searchInput.Blur()
			a.lastQuery = a.searchInput.Value()
			return a, a.loadLibrary(a.lastQuery)
		}
		var cmd tea.Cmd
		a.searchInput, cmd = a.searchInput.Update(m)
		return a, cmd
	}

	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Back), key.Matches(m, a.keys.Editor):
		a.state = viewEditor
	case key.Matches(m, a.keys.Generate):
		a.state = viewGenerate
	case key.Matches(m, a.keys.Settings):
		a.state = viewSettings
	case key.Matches(m, a.keys.Up):
		if a.libCursor > 0 {
			a.libCursor--
		}
	case key.Matches(m, a.keys.Down):
		if a.libCursor < len(a.entries)-1 {
			a.libCursor++
		}
	case key.Matches(m, a.keys.Search):
		a.searchInput.Focus()
		return a, textinput.Blink
	case key.Matches(m, a.keys.Enter):
		if len(a.entries) == 0 {
			return a, nil
		}
		return a, a.loadEntry(a.entries[a.libCursor].ID)
	case key.Matches(m, a.keys.Favorite):
		if len(a.entries) == 0 {
			return a, nil
		}
		return a, a.favoriteCmd(a.entries[a.libCursor].ID)
	case key.Matches(m, a.keys.Delete):
		if len(a.entries) == 0 {
			return a, nil
		}
		return a, a.removeCmd(a.entries[a.libCursor].ID)
	case key.Matches(m, a.keys.Import):
		a.modal = modalImport
		a.importInput.SetValue("")
		a.importInput.Focus()
		return a, textinput.Blink
	}
	return a, nil
}

func (a *App) handleSettingsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Back), key.Matches(m, a.keys.Editor):
		a.state = viewEditor
	case key.Matches(m, a.keys.Generate):
		a.state = viewGenerate
	case key.Matches(m, a.keys.Library):
		a.state = viewLibrary
		return a, a.loadLibrary(a.lastQuery)
	case key.Matches(m, a.keys.Up):
		if a.settingsCursor > 0 {
			a.settingsCursor--
		}
	case key.Matches(m, a.keys.Down):
		if a.settingsCursor < len(settingsFields)-1 {
			a.settingsCursor++
		}
	case key.Matches(m, a.keys.Enter):
		f := settingsFields[a.settingsCursor]
		a.modal = modalEditField
		a.fieldInput.Prompt = f + ": "
		a.fieldInput.SetValue(a.settingValue(f))
		a.fieldInput.Focus()
		return a, textinput.Blink
	case key.Matches(m, a.keys.Reset):
		a.modal = modalConfirmReset
	}
	return a, nil
}

var settingsFields = []string{"author", "grid", "prop"}

func (a *App) settingValue(field string) string {
	switch field {
	case "author":
		return a.cfg.Editor.Author
	case "grid":
		return a.cfg.Editor.Grid
	case "prop":
		return a.cfg.Editor.Prop
	}
	return ""
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalConfirmReset:
		switch m.String() {
		case "y", "Y":
			a.modal = modalNone
			return a, a.resetCmd()
		case "n", "N", "esc":
			a.modal = modalNone
		}
		return a, nil
	case modalSave:
		switch m.String() {
		case "esc":
			a.modal = modalNone
			a.saveInput.Blur()
			return a, nil
		case "enter":
			a.modal = modalNone
			a.saveInput.Blur()
			return a, a.saveCmd(a.seq, strings.TrimSpace(a.saveInput.Value()))
		}
		var cmd tea.Cmd
		a.saveInput, cmd = a.saveInput.Update(m)
		return a, cmd
	case modalImport:
		switch m.String() {
		case "esc":
			a.modal = modalNone
			a.importInput.Blur()
			return a, nil
		case "enter":
			path := strings.TrimSpace(a.importInput.Value())
			if path == "" {
				a.status = "enter a file path"
				return a, nil
			}
			a.modal = modalNone
			a.importInput.Blur()
			return a, a.importCmd(path)
		}
		var cmd tea.Cmd
		a.importInput, cmd = a.importInput.Update(m)
		return a, cmd
	case modalEditField:
		switch m.String() {
		case "esc":
			a.modal = modalNone
			a.fieldInput.Blur()
			return a, nil
		case "enter":
			a.modal = modalNone
			a.fieldInput.Blur()
			field := settingsFields[a.settingsCursor]
			return a, a.applySetting(field, strings.TrimSpace(a.fieldInput.Value()))
		}
		var cmd tea.Cmd
		a.fieldInput, cmd = a.fieldInput.Update(m)
		return a, cmd
	}
	return a, nil
}

// applySetting stores the new value in the in-memory config and persists
// it. Metadata defaults were handed to the store and library at startup, so
// changes land on the next run.
func (a *App) applySetting(field, value string) tea.Cmd {
	switch field {
	case "author":
		a.cfg.Editor.Author = value
	case "grid":
		a.cfg.Editor.Grid = value
	case "prop":
		a.cfg.Editor.Prop = value
	}
	cfg := a.cfg
	return func() tea.Msg {
		if err := config.Save(cfg); err != nil {
			return errMsg{err}
		}
		return statusMsg(field + " saved to config (restart to apply)")
	}
}

// commands
func (a *App) loadLibrary(query string) tea.Cmd {
	return func() tea.Msg {
		rows, err := a.deps.Library.Search(a.ctx, query)
		if err != nil {
			return errMsg{err}
		}
		return libraryMsg(rows)
	}
}

func (a *App) loadEntry(id string) tea.Cmd {
	return func() tea.Msg {
		seq, err := a.deps.Library.Load(a.ctx, id)
		if err != nil {
			return errMsg{err}
		}
		return loadedMsg(seq)
	}
}

func (a *App) saveCmd(seq sequence.SequenceData, name string) tea.Cmd {
	return func() tea.Msg {
		row, err := a.deps.Library.SaveCurrent(a.ctx, seq, name)
		if err != nil {
			return errMsg{err}
		}
		return savedMsg{row: row}
	}
}

func (a *App) favoriteCmd(id string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			on, err := a.deps.Library.ToggleFavorite(a.ctx, id)
			if err != nil {
				return errMsg{err}
			}
			if on {
				return statusMsg("favorited")
			}
			return statusMsg("unfavorited")
		},
		a.loadLibrary(a.lastQuery),
	)
}

func (a *App) removeCmd(id string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.deps.Library.Remove(a.ctx, id); err != nil {
				return errMsg{err}
			}
			return statusMsg("entry removed")
		},
		a.loadLibrary(a.lastQuery),
	)
}

func (a *App) importCmd(path string) tea.Cmd {
	abs := path
	if !filepath.IsAbs(path) {
		if p, err := filepath.Abs(path); err == nil {
			abs = p
		}
	}
	return tea.Batch(
		func() tea.Msg {
			row, err := a.deps.Library.ImportFile(a.ctx, abs, "")
			if err != nil {
				return errMsg{err}
			}
			return statusMsg(fmt.Sprintf("imported %q", row.Word))
		},
		a.loadLibrary(a.lastQuery),
	)
}

func (a *App) resetCmd() tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if a.deps.Maintenance == nil {
				return errMsg{fmt.Errorf("maintenance not configured")}
			}
			if err := a.deps.Maintenance.Reset(a.ctx); err != nil {
				return errMsg{err}
			}
			return statusMsg("library reset (empty)")
		},
		a.loadLibrary(""),
	)
}

// messages
type libraryMsg []repository.Sequence

type loadedMsg sequence.SequenceData

type savedMsg struct{ row repository.Sequence }

type statusMsg string

type errMsg struct{ error }

func displayWord(s sequence.SequenceData) string {
	if w := sequence.Word(s); w != "" {
		return w
	}
	return "(empty)"
}
