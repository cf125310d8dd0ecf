package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/tunecatcher/tunecatcher/internal/config"
	"github.com/tunecatcher/tunecatcher/internal/download"
	"github.com/tunecatcher/tunecatcher/internal/model"
	"github.com/tunecatcher/tunecatcher/internal/platform"
	"github.com/tunecatcher/tunecatcher/internal/playlist"
	"github.com/tunecatcher/tunecatcher/internal/preview"
)

// Menu commands
const (
	CommandToggleMode    = "1"
	CommandVideoQuality  = "2"
	CommandPlaylistLimit = "3"
	CommandShowHistory   = "4"
	CommandClearHistory  = "5"
	CommandOpenFolder    = "6"
)

// Polling interval while waiting for a batch to finish
const batchPollInterval = 100 * time.Millisecond

// Previewer is the slice of the preview fetcher the REPL needs
type Previewer interface {
	Request(url string)
	Cancel()
}

// REPL is the interactive loop. It owns terminal rendering; the services
// report back through the Handle* methods, which are safe to call from
// worker goroutines.
type REPL struct {
	store        *config.Store
	previewer    Previewer
	orchestrator *download.Orchestrator
	resolver     *playlist.Resolver
	in           io.Reader
	out          io.Writer
	logger       *zap.SugaredLogger

	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

// New creates the REPL front-end
func New(store *config.Store, previewer Previewer, orchestrator *download.Orchestrator, resolver *playlist.Resolver, in io.Reader, out io.Writer, logger *zap.SugaredLogger) *REPL {
	return &REPL{
		store:        store,
		previewer:    previewer,
		orchestrator: orchestrator,
		resolver:     resolver,
		in:           in,
		out:          out,
		logger:       logger,
	}
}

// Run executes the input loop until the user exits or input ends
func (r *REPL) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(r.in)

	for {
		r.printHeader()
		fmt.Fprint(r.out, "> ")

		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
		case isExitCommand(line):
			color.New(color.FgCyan).Fprintln(r.out, "Goodbye!")
			r.previewer.Cancel()
			return nil
		case isNumeric(line):
			r.handleCommand(line, scanner)
		case strings.HasPrefix(line, "http"):
			r.handleURL(ctx, line, scanner)
		default:
			color.New(color.FgRed).Fprintln(r.out, "Invalid input.")
		}
	}
}

// HandleStatus prints a status line from the services
func (r *REPL) HandleStatus(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, text)
}

// HandleProgress renders a progress event on the terminal bar
func (r *REPL) HandleProgress(event model.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.bar == nil {
		r.bar = progressbar.NewOptions(100,
			progressbar.OptionSetWriter(r.out),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetPredictTime(false),
		)
	}
	r.bar.Describe(event.Label)
	_ = r.bar.Set(int(event.Fraction * 100))
}

// HandleBusy resets the progress bar when a job finishes
func (r *REPL) HandleBusy(busy bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !busy && r.bar != nil {
		_ = r.bar.Finish()
		r.bar = nil
	}
}

// HandlePreview prints preview state transitions
func (r *REPL) HandlePreview(state preview.State) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch state.Kind {
	case preview.StateLoading:
		fmt.Fprintln(r.out, "Fetching preview...")
	case preview.StateResolved:
		color.New(color.FgGreen).Fprintf(r.out, "%s (%s)\n", state.Result.Title, state.Result.Uploader)
	case preview.StateFailed:
		color.New(color.FgRed).Fprintln(r.out, "Invalid URL or video not found")
	}
}

func (r *REPL) printHeader() {
	settings := r.store.Snapshot()

	modeDisplay := fmt.Sprintf("%s Audio", strings.ToUpper(settings.AudioFormat))
	qualityInfo := "High Quality"
	if settings.Mode == model.ModeVideo {
		modeDisplay = fmt.Sprintf("%s Video", strings.ToUpper(settings.VideoFormat))
		qualityInfo = fmt.Sprintf("Max: %s", settings.VideoQuality)
	}

	fmt.Fprintln(r.out)
	color.New(color.FgCyan, color.Bold).Fprintln(r.out, "TuneCatcher")
	fmt.Fprintf(r.out, "Mode: %s | %s\n", color.GreenString(modeDisplay), color.GreenString(qualityInfo))
	fmt.Fprintf(r.out, "Output: %s | Playlist: %s\n", color.GreenString(settings.SavePath), color.GreenString(settings.PlaylistLimit))
	color.New(color.FgYellow).Fprintln(r.out,
		"[1] Toggle Mode [2] Video Quality [3] Playlist Count [4] History [5] Clear History [6] Open Folder")
	fmt.Fprintln(r.out, "Paste URL or command ('q' to quit):")
}

func (r *REPL) handleCommand(command string, scanner *bufio.Scanner) {
	switch command {
	case CommandToggleMode:
		var mode model.Mode
		if err := r.store.Update(func(s *config.Settings) {
			s.Mode = s.Mode.Toggle()
			mode = s.Mode
		}); err != nil {
			r.HandleStatus(err.Error())
		}
		color.New(color.FgGreen).Fprintf(r.out, ">> Mode: %s\n", strings.ToUpper(mode.String()))

	case CommandVideoQuality:
		r.changeVideoQuality(scanner)

	case CommandPlaylistLimit:
		r.changePlaylistLimit(scanner)

	case CommandShowHistory:
		r.showHistory()

	case CommandClearHistory:
		r.clearHistory(scanner)

	case CommandOpenFolder:
		if err := platform.OpenFolder(r.store.Snapshot().SavePath); err != nil {
			r.HandleStatus(fmt.Sprintf("Error opening folder: %v", err))
		}

	default:
		color.New(color.FgRed).Fprintln(r.out, "Invalid command.")
	}
}

func (r *REPL) changeVideoQuality(scanner *bufio.Scanner) {
	color.New(color.FgCyan).Fprintln(r.out, "Video Quality:")
	for i, quality := range config.VideoResolutions {
		fmt.Fprintf(r.out, "  [%d] %s\n", i+1, quality)
	}

	choice := r.prompt(scanner, "> ")
	quality := config.ValidateQualityChoice(choice, config.VideoResolutions)
	if quality == "" {
		color.New(color.FgRed).Fprintln(r.out, "Invalid choice.")
		return
	}

	if err := r.store.Update(func(s *config.Settings) { s.VideoQuality = quality }); err != nil {
		r.HandleStatus(err.Error())
	}
	color.New(color.FgGreen).Fprintf(r.out, ">> Set to %s\n", quality)
}

func (r *REPL) changePlaylistLimit(scanner *bufio.Scanner) {
	value := strings.ToLower(r.prompt(scanner, "Playlist items ('5' or 'all'): "))
	if !config.ValidatePlaylistLimit(value) {
		color.New(color.FgRed).Fprintln(r.out, "Invalid input.")
		return
	}

	if err := r.store.Update(func(s *config.Settings) { s.PlaylistLimit = value }); err != nil {
		r.HandleStatus(err.Error())
	}
	color.New(color.FgGreen).Fprintf(r.out, ">> Set to %s\n", value)
}

func (r *REPL) showHistory() {
	history := r.store.Snapshot().History
	if len(history) == 0 {
		fmt.Fprintln(r.out, "No downloads yet.")
		return
	}
	for i, item := range history {
		fmt.Fprintf(r.out, "  [%d] %s\n      %s\n", i+1, item.Title, item.FilePath)
	}
}

func (r *REPL) clearHistory(scanner *bufio.Scanner) {
	answer := strings.ToLower(r.prompt(scanner, "Permanently delete all download history? (y/N): "))
	if answer != "y" && answer != "yes" {
		return
	}
	if err := r.store.ClearHistory(); err != nil {
		r.HandleStatus(err.Error())
		return
	}
	r.HandleStatus("History cleared.")
}

func (r *REPL) handleURL(ctx context.Context, url string, scanner *bufio.Scanner) {
	r.previewer.Request(url)

	urls := []string{url}
	if playlist.IsPlaylistURL(url) {
		settings := r.store.Snapshot()
		entries, err := r.resolver.Resolve(ctx, url, settings.PlaylistLimitValue())
		if err != nil {
			r.HandleStatus(fmt.Sprintf("Error fetching playlist: %v", err))
			return
		}
		if len(entries) == 0 {
			r.HandleStatus("Playlist has no downloadable items.")
			return
		}

		for i, entry := range entries {
			fmt.Fprintf(r.out, "  [%d] %s\n", i+1, entry.Title)
		}
		selection := r.prompt(scanner, "Download which items? ('all' or e.g. 1,3,5): ")
		urls = selectEntries(entries, selection)
		if len(urls) == 0 {
			color.New(color.FgRed).Fprintln(r.out, "Nothing selected.")
			return
		}
	}

	r.orchestrator.SubmitBatch(ctx, urls)
	r.waitForBatch(ctx)
	r.prompt(scanner, "Press Enter to continue...")
}

// waitForBatch blocks until the running batch finishes so output does not
// interleave with the next prompt.
func (r *REPL) waitForBatch(ctx context.Context) {
	for r.orchestrator.Running() {
		select {
		case <-ctx.Done():
			return
		case <-time.After(batchPollInterval):
		}
	}
}

func (r *REPL) prompt(scanner *bufio.Scanner, label string) string {
	fmt.Fprint(r.out, label)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

// selectEntries resolves a selection string against the playlist entries:
// "all" or empty selects everything, otherwise comma-separated 1-based
// indexes. Out-of-range and non-numeric tokens are ignored.
func selectEntries(entries []model.PlaylistEntry, selection string) []string {
	selection = strings.ToLower(strings.TrimSpace(selection))
	if selection == "" || selection == "all" {
		urls := make([]string, 0, len(entries))
		for _, entry := range entries {
			urls = append(urls, entry.URL)
		}
		return urls
	}

	var urls []string
	for _, token := range strings.Split(selection, ",") {
		index, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil || index < 1 || index > len(entries) {
			continue
		}
		urls = append(urls, entries[index-1].URL)
	}
	return urls
}

func isExitCommand(line string) bool {
	switch strings.ToLower(line) {
	case "exit", "q", "quit":
		return true
	}
	return false
}

func isNumeric(line string) bool {
	_, err := strconv.Atoi(line)
	return err == nil
}
