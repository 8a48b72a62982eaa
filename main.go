// Command vmdrop scans a directory of call recordings, picks the drop
// point for each one (beep, silence plus a complete greeting, or an
// end-of-stream fallback) and writes a copy with the configured message
// clip spliced in at that instant.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"vmdrop/audio"
	"vmdrop/detect"
	"vmdrop/drop"
	"vmdrop/log"
	"vmdrop/oracle"
	"vmdrop/transcribe"
)

var version = "dev"

// FileResult is the per-file record written to the results file.
type FileResult struct {
	File      string
	Triggered bool
	Timestamp float64
	Reason    string
	Status    string
	Output    string
	Err       string
}

func main() {
	os.Exit(run())
}

func run() int {
	dirFlag := flag.String("dir", "demo_files", "directory of call recordings (.wav/.flac)")
	messageFlag := flag.String("message", "voice_mail.wav", "message clip spliced in at each drop point")
	outFlag := flag.String("out", "output", "output directory for spliced files")
	resultsFlag := flag.String("results", "", "results file path (default <out>/results.txt)")
	playFlag := flag.Bool("play", false, "play each spliced output after writing it")
	tuiFlag := flag.Bool("tui", true, "show live progress when stdout is a terminal")
	logPathFlag := flag.String("logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println("vmdrop " + version)
		return 0
	}

	logDir, err := log.ResolveDir(*logPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vmdrop: resolving log directory: %v\n", err)
		return 1
	}
	log.SetDir(logDir)
	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "vmdrop: initializing logging: %v\n", err)
		return 1
	}
	defer log.Close()
	log.Infof("vmdrop %s starting", version)

	files, err := scanInputs(*dirFlag, *messageFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vmdrop: %v\n", err)
		return 1
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "vmdrop: no .wav or .flac files found in %s\n", *dirFlag)
		return 1
	}

	var message *audio.Clip
	if clip, err := audio.ReadFile(*messageFlag); err != nil {
		log.Warnf("message clip unavailable: %v", err)
		fmt.Fprintf(os.Stderr, "vmdrop: warning: cannot load %s; drop points will be detected but no spliced output written\n", *messageFlag)
	} else {
		message = &clip
	}

	var remote oracle.Oracle
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		remote = oracle.NewRemote(token)
		log.Info("remote completeness oracle enabled")
	} else {
		log.Info("GITHUB_TOKEN not set, heuristic-only mode")
	}

	engine := drop.NewEngine(detect.NewClassifier(), transcribe.NewSimulatedSource(), oracle.NewAnalyzer(remote))

	b := &batch{
		engine:  engine,
		message: message,
		outDir:  *outFlag,
		play:    *playFlag,
		files:   files,
	}

	var results []FileResult
	if *tuiFlag && term.IsTerminal(int(os.Stdout.Fd())) {
		p := newTUIProgram(len(files))
		go func() {
			results = b.run(p.Send)
			p.Send(batchDoneMsg{})
		}()
		if _, err := p.Run(); err != nil {
			log.Errorf("tui error: %v", err)
		}
	} else {
		results = b.run(nil)
	}

	resultsPath := *resultsFlag
	if resultsPath == "" {
		resultsPath = filepath.Join(*outFlag, "results.txt")
	}
	if err := writeResults(resultsPath, results); err != nil {
		log.Errorf("writing results file: %v", err)
		fmt.Fprintf(os.Stderr, "vmdrop: writing results file: %v\n", err)
	}

	printSummary(os.Stdout, results)
	fmt.Printf("\nResults saved to %s\n", resultsPath)

	succeeded := 0
	for _, r := range results {
		if r.Status == "SUCCESS" {
			succeeded++
		}
	}
	log.BatchSummary(len(results), succeeded, len(results)-succeeded)
	if succeeded == 0 {
		return 1
	}
	return 0
}

type batch struct {
	engine  *drop.Engine
	message *audio.Clip
	outDir  string
	play    bool
	files   []string
}

// run processes every input sequentially. send, when non-nil, receives
// TUI messages; file processing itself is identical either way.
func (b *batch) run(send func(tea.Msg)) []FileResult {
	results := make([]FileResult, 0, len(b.files))
	for i, path := range b.files {
		if send != nil {
			send(fileStartMsg{Index: i, Count: len(b.files), File: filepath.Base(path)})
			b.engine.Progress = func(elapsed, total float64) {
				send(progressMsg{Elapsed: elapsed, Total: total})
			}
		}
		r := b.processOne(path)
		results = append(results, r)
		if send != nil {
			send(fileDoneMsg(r))
		}
	}
	b.engine.Progress = nil
	return results
}

func (b *batch) processOne(path string) FileResult {
	name := filepath.Base(path)
	r := FileResult{File: name, Status: "FAILED"}

	decision, err := b.engine.ProcessFile(path)
	if err != nil {
		log.Errorf("processing %s: %v", name, err)
		r.Err = err.Error()
		return r
	}
	r.Triggered = true
	r.Timestamp = decision.Time
	r.Reason = string(decision.Reason)
	log.Decision(name, r.Reason, decision.Time, b.engine.BeepConfidence())

	if b.message == nil {
		r.Err = "message clip unavailable"
		return r
	}

	original, err := audio.ReadFile(path)
	if err != nil {
		r.Err = err.Error()
		return r
	}
	spliced, err := audio.Insert(original, *b.message, decision.Time)
	if err != nil {
		log.Errorf("splicing %s: %v", name, err)
		r.Err = err.Error()
		return r
	}

	base := strings.TrimSuffix(name, filepath.Ext(name))
	outPath := filepath.Join(b.outDir, base+"_dropped.wav")
	if err := audio.WriteWAV(outPath, spliced); err != nil {
		log.Errorf("writing %s: %v", outPath, err)
		r.Err = err.Error()
		return r
	}
	log.SpliceWritten(name, outPath, spliced.Len())

	r.Status = "SUCCESS"
	r.Output = outPath
	if b.play {
		playClip(spliced)
	}
	return r
}

func scanInputs(dir, messagePath string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}
	skip := filepath.Base(messagePath)
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".wav" && ext != ".flac" {
			continue
		}
		if e.Name() == skip {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func writeResults(path string, results []FileResult) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	var sb strings.Builder
	sb.WriteString("Voicemail Drop Timestamps\n")
	sb.WriteString(strings.Repeat("=", 40) + "\n")
	for _, r := range results {
		ts := "N/A"
		if r.Triggered {
			ts = fmt.Sprintf("%.2f", r.Timestamp)
		}
		reason := r.Reason
		if reason == "" {
			reason = "decode_error"
		}
		sb.WriteString(fmt.Sprintf("%s: %s seconds (%s) -> %s\n", r.File, ts, reason, r.Status))
	}
	return os.WriteFile(path, []byte(sb.String()), 0644)
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	reasonStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func printSummary(w io.Writer, results []FileResult) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-28s %-10s %-32s %s", "File", "Drop", "Trigger", "Status")))
	for _, r := range results {
		ts := "N/A"
		if r.Triggered {
			ts = fmt.Sprintf("%.2fs", r.Timestamp)
		}
		reason := r.Reason
		if reason == "" {
			reason = r.Err
		}
		status := failedStyle.Render(r.Status)
		if r.Status == "SUCCESS" {
			status = successStyle.Render(r.Status)
		}
		fmt.Fprintf(w, "%-28s %-10s %s %s\n", r.File, ts, reasonStyle.Render(fmt.Sprintf("%-32s", reason)), status)
	}
}
