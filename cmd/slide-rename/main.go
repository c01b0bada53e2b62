package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"

	"github.com/handiism/slide-renamer/internal/config"
	"github.com/handiism/slide-renamer/internal/label"
	"github.com/handiism/slide-renamer/internal/review"
)

// editFlags collects repeatable -edit index=identifier flags.
type editFlags []string

func (e *editFlags) String() string { return strings.Join(*e, ", ") }

func (e *editFlags) Set(value string) error {
	*e = append(*e, value)
	return nil
}

func main() {
	// Command line flags
	var edits editFlags
	var (
		folderFlag      = flag.String("folder", "", "Slide folder to process")
		outputFlag      = flag.String("output", "", "Output directory (default: rename in place)")
		configFlag      = flag.String("config", "", "Path to config file")
		prefixFlag      = flag.String("prefix", "", "Filename prefix (default: derived from folder name)")
		extFlag         = flag.String("ext", "", "Target extension, e.g. .ndpi (overrides config)")
		amountFlag      = flag.Int("amount", 0, "Numbers per slide (overrides config)")
		skipFlag        = flag.Int("skip", -1, "Values skipped between slides (overrides config)")
		startFlag       = flag.Int("start", -1, "First number of the batch, 0 allowed (overrides config)")
		extractFlag     = flag.Bool("extract", false, "Extract label images before numbering")
		commitFlag      = flag.Bool("commit", false, "Execute the renames (default: preview only)")
		yesFlag         = flag.Bool("yes", false, "Skip the confirmation prompt")
		sessionFlag     = flag.String("session", "", "Restore a saved session file")
		saveSessionFlag = flag.String("save-session", "", "Save the review to a session file")
		verboseFlag     = flag.Bool("verbose", false, "Show verbose output")
	)
	flag.Var(&edits, "edit", "Override an identifier, index=numbers (repeatable), e.g. -edit 3=031_032")

	flag.Parse()

	folder := *folderFlag
	if folder == "" && flag.NArg() > 0 {
		folder = flag.Arg(0)
	}
	if folder == "" {
		fmt.Println("Slide Renamer - Batch rename whole-slide images")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  slide-rename -folder <dir> [options]")
		fmt.Println("  slide-rename <dir> [options]")
		fmt.Println()
		fmt.Println("For interactive mode, use: slide-rename-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	settings.SlideFolder = folder
	if *outputFlag != "" {
		settings.OutputFolder = *outputFlag
	}
	if *prefixFlag != "" {
		settings.Prefix = *prefixFlag
	} else {
		settings.Prefix = settings.AutoPrefix()
	}
	if *extFlag != "" {
		settings.Extension = *extFlag
	}
	if *amountFlag > 0 {
		settings.AmountPerSlide = *amountFlag
	}
	if *skipFlag >= 0 {
		settings.SkipFactor = *skipFlag
	}
	if *startFlag >= 0 {
		settings.Start = *startFlag
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	// Plain prefixes when piped, glyphs on a terminal
	tty := isatty.IsTerminal(os.Stdout.Fd())

	manager := review.NewManager(settings, label.SidecarSource{}, func(event review.ProgressEvent) {
		if event.Level == review.LevelVerbose && !*verboseFlag {
			return
		}
		fmt.Println(progressPrefix(event.Level, tty) + event.Message)
	})

	// Build the batch, either fresh or from a saved session
	if *sessionFlag != "" {
		if err := manager.RestoreSession(*sessionFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error restoring session: %v\n", err)
			os.Exit(1)
		}
	} else {
		if err := manager.LoadBatch(ctx, *extractFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading batch: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply identifier overrides
	for _, edit := range edits {
		index, text, err := parseEdit(edit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid -edit %q: %v\n", edit, err)
			os.Exit(1)
		}
		if err := manager.Edit(index, text); err != nil {
			fmt.Fprintf(os.Stderr, "Error applying edit %q: %v\n", edit, err)
			os.Exit(1)
		}
	}

	fmt.Println()
	printPreview(manager)

	if *saveSessionFlag != "" {
		if err := manager.SaveSession(*saveSessionFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving session: %v\n", err)
			os.Exit(1)
		}
	}

	if !*commitFlag {
		fmt.Println("\n[Preview only - use -commit to rename]")
		return
	}

	if !*yesFlag && !confirm(manager.Len()) {
		fmt.Println("Aborted.")
		return
	}

	results, err := manager.Commit(ctx)
	if err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nRename cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error during rename: %v\n", err)
		os.Exit(1)
	}

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
		}
	}
	fmt.Printf("\nDone. Renamed %d/%d slides.\n", len(results)-failed, len(results))
	if failed > 0 {
		os.Exit(1)
	}
}

// parseEdit splits an index=identifier override.
func parseEdit(edit string) (int, string, error) {
	index, text, found := strings.Cut(edit, "=")
	if !found {
		return 0, "", fmt.Errorf("expected index=numbers")
	}
	i, err := strconv.Atoi(strings.TrimSpace(index))
	if err != nil {
		return 0, "", fmt.Errorf("bad index %q", index)
	}
	return i, text, nil
}

// printPreview renders the batch as a table.
func printPreview(manager *review.Manager) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"#", "Identifier", "Status", "Current Name", "New Name"})
	for _, row := range manager.Rows() {
		status := "auto"
		if row.Explicit {
			status = "edited"
		}
		t.AppendRow(table.Row{row.Index + 1, row.Identifier, status, row.SlideName, row.NewFilename})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

// confirm asks before touching the filesystem.
func confirm(count int) bool {
	fmt.Printf("\nRename %d slides? [y/N] ", count)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func progressPrefix(level review.ProgressLevel, tty bool) string {
	if !tty {
		switch level {
		case review.LevelError:
			return "ERROR "
		case review.LevelWarning:
			return "WARN  "
		default:
			return ""
		}
	}
	switch level {
	case review.LevelError:
		return "❌ "
	case review.LevelWarning:
		return "⚠️  "
	case review.LevelSuccess:
		return "✅ "
	case review.LevelInfo:
		return "ℹ️  "
	default:
		return "   "
	}
}
