package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/unklstewy/groundscope/internal/db"
	"github.com/unklstewy/groundscope/pkg/config"
	"github.com/unklstewy/groundscope/pkg/ssd"
	"github.com/unklstewy/groundscope/pkg/trajectory"
)

// windowEntry is one row in the window list: a window start time plus the
// aggregate Free Path Fraction picture across its aircraft.
type windowEntry struct {
	Start     time.Time
	Aircraft  int
	Undefined int
	MinFPF    float64
	MeanFPF   float64
	Results   []ssd.Result
}

// Viewer is a two-pane results browser: windows on the left, per-aircraft
// results for the highlighted window on the right.
type Viewer struct {
	app     *tview.Application
	windows *tview.Table
	detail  *tview.Table
	status  *tview.TextView

	entries  []windowEntry
	selected int
}

func main() {
	configPath := flag.String("config", "configs/config.json", "Path to configuration file")
	inputPath := flag.String("input", "", "Results CSV to browse (omit to read from PostgreSQL)")
	flag.Parse()

	var entries []windowEntry
	var err error
	if *inputPath != "" {
		entries, err = loadFromCSV(*inputPath)
	} else {
		entries, err = loadFromDB(*configPath)
	}
	if err != nil {
		log.Fatalf("Failed to load results: %v", err)
	}
	if len(entries) == 0 {
		log.Fatal("No results to display")
	}

	v := newViewer(entries)
	if err := v.Run(); err != nil {
		log.Fatalf("UI failed: %v", err)
	}
}

func loadFromCSV(path string) ([]windowEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	results, err := trajectory.ReadResults(f)
	if err != nil {
		return nil, err
	}

	byWindow := make(map[time.Time][]ssd.Result)
	for _, r := range results {
		byWindow[r.Time] = append(byWindow[r.Time], r)
	}

	entries := make([]windowEntry, 0, len(byWindow))
	for start, rs := range byWindow {
		entries = append(entries, summarizeWindow(start, rs))
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Start.After(entries[j].Start)
	})
	return entries, nil
}

func loadFromDB(configPath string) ([]windowEntry, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	database, err := db.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	defer database.Close()

	repo := db.NewResultRepository(database)
	ctx := context.Background()

	summaries, err := repo.ListWindows(ctx, 200)
	if err != nil {
		return nil, err
	}

	entries := make([]windowEntry, 0, len(summaries))
	for _, s := range summaries {
		results, err := repo.GetResultsByWindow(ctx, s.WindowTime)
		if err != nil {
			return nil, err
		}
		entries = append(entries, summarizeWindow(s.WindowTime, results))
	}
	return entries, nil
}

func summarizeWindow(start time.Time, results []ssd.Result) windowEntry {
	e := windowEntry{Start: start, Aircraft: len(results), Results: results}
	sum, defined := 0.0, 0
	for _, r := range results {
		if !r.Defined {
			e.Undefined++
			continue
		}
		if defined == 0 || r.FPF < e.MinFPF {
			e.MinFPF = r.FPF
		}
		sum += r.FPF
		defined++
	}
	if defined > 0 {
		e.MeanFPF = sum / float64(defined)
	}
	sort.Slice(e.Results, func(i, j int) bool {
		a, b := e.Results[i], e.Results[j]
		if a.Defined != b.Defined {
			return !a.Defined
		}
		return a.FPF < b.FPF
	})
	return e
}

func newViewer(entries []windowEntry) *Viewer {
	v := &Viewer{
		app:     tview.NewApplication(),
		windows: tview.NewTable(),
		detail:  tview.NewTable(),
		status:  tview.NewTextView(),
		entries: entries,
	}

	v.windows.SetBorder(true).SetTitle(" Windows ")
	v.windows.SetSelectable(true, false)
	v.windows.SetSelectionChangedFunc(func(row, col int) {
		if row >= 1 && row <= len(v.entries) {
			v.selected = row - 1
			v.renderDetail()
		}
	})

	v.detail.SetBorder(true).SetTitle(" Aircraft ")

	v.status.SetDynamicColors(true)
	fmt.Fprintf(v.status, "[yellow]q/Esc[white] quit  [yellow]↑/k ↓/j[white] navigate  %d windows", len(entries))

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(tview.NewFlex().
			SetDirection(tview.FlexColumn).
			AddItem(v.windows, 0, 1, true).
			AddItem(v.detail, 0, 2, false), 0, 1, true).
		AddItem(v.status, 1, 0, false)

	v.app.SetInputCapture(v.handleKeyboard)
	v.app.SetRoot(layout, true)

	v.renderWindows()
	v.renderDetail()
	return v
}

func (v *Viewer) handleKeyboard(event *tcell.EventKey) *tcell.EventKey {
	key := event.Key()
	r := event.Rune()

	switch {
	case key == tcell.KeyEscape || r == 'q':
		v.app.Stop()
		return nil
	case r == 'k':
		return tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)
	case r == 'j':
		return tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)
	}
	return event
}

func (v *Viewer) renderWindows() {
	headers := []string{"Window", "Aircraft", "Min FPF", "Mean FPF", "Undef"}
	for c, h := range headers {
		v.windows.SetCell(0, c, tview.NewTableCell(h).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false))
	}

	for i, e := range v.entries {
		row := i + 1
		v.windows.SetCell(row, 0, tview.NewTableCell(e.Start.Format("15:04:05")))
		v.windows.SetCell(row, 1, tview.NewTableCell(fmt.Sprintf("%d", e.Aircraft)))

		minCell := tview.NewTableCell(fpfString(e.MinFPF, e.Aircraft > e.Undefined))
		minCell.SetTextColor(fpfColor(e.MinFPF, e.Aircraft > e.Undefined))
		v.windows.SetCell(row, 2, minCell)

		v.windows.SetCell(row, 3, tview.NewTableCell(fpfString(e.MeanFPF, e.Aircraft > e.Undefined)))
		v.windows.SetCell(row, 4, tview.NewTableCell(fmt.Sprintf("%d", e.Undefined)))
	}
	v.windows.Select(1, 0)
	v.windows.SetFixed(1, 0)
}

func (v *Viewer) renderDetail() {
	v.detail.Clear()

	headers := []string{"Callsign", "FPF"}
	for c, h := range headers {
		v.detail.SetCell(0, c, tview.NewTableCell(h).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false))
	}

	e := v.entries[v.selected]
	v.detail.SetTitle(fmt.Sprintf(" Aircraft at %s ", e.Start.Format(time.RFC3339)))
	for i, r := range e.Results {
		row := i + 1
		v.detail.SetCell(row, 0, tview.NewTableCell(r.Callsign))
		cell := tview.NewTableCell(fpfString(r.FPF, r.Defined))
		cell.SetTextColor(fpfColor(r.FPF, r.Defined))
		v.detail.SetCell(row, 1, cell)
	}
}

func fpfString(fpf float64, defined bool) string {
	if !defined {
		return "undefined"
	}
	return fmt.Sprintf("%.3f", fpf)
}

// fpfColor maps low fractions to alarm colors. Below 0.3 most of the
// reachable velocity ring is blocked by conflict regions.
func fpfColor(fpf float64, defined bool) tcell.Color {
	switch {
	case !defined:
		return tcell.ColorGray
	case fpf < 0.3:
		return tcell.ColorRed
	case fpf < 0.7:
		return tcell.ColorOrange
	default:
		return tcell.ColorGreen
	}
}

func (v *Viewer) Run() error {
	return v.app.Run()
}
