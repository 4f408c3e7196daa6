package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/seojin/pdflate/internal/api"
	"github.com/seojin/pdflate/internal/app"
	"github.com/seojin/pdflate/internal/config"
	"github.com/seojin/pdflate/internal/model"
	"github.com/seojin/pdflate/internal/store"
	"github.com/seojin/pdflate/internal/ui"
	"github.com/seojin/pdflate/internal/ui/theme"
	"github.com/seojin/pdflate/internal/upload"
)

var (
	version = "0.1.0"
)

func main() {
	// Subcommand handling
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "upload":
			handleUpload(os.Args[2:])
			return
		case "list":
			handleList()
			return
		case "version":
			fmt.Printf("pdflate v%s\n", version)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		}
	}

	// Parse flags for TUI mode
	serverFlag := flag.String("server", "", "Translation server URL (overrides config)")
	themeFlag := flag.String("theme", "", "Theme name (nord, dracula, gruvbox, catppuccin)")
	flag.Parse()

	// Run TUI
	if err := runTUI(*serverFlag, *themeFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	help := `pdflate - PDF document translation client

Usage:
  pdflate                        Start the TUI
  pdflate upload [opts] <file>   Upload a PDF and start translation
  pdflate list                   List projects on the server
  pdflate version                Show version
  pdflate help                   Show this help

Upload Options:
  --from <code>     Source language (two-letter code, default from config)
  --to <code>       Target language (two-letter code, default from config)

TUI Options:
  --server <url>    Translation server URL
  --theme <name>    Theme (nord, dracula, gruvbox, catppuccin)

Keybindings:
  Projects:     ↑/↓ or j/k    Move cursor
                u / a         Upload a new PDF
                enter         Open editor (translating/completed)
                d             Delete (with confirm)
                r             Refresh
                o             Open generated PDF

  Editor:       ctrl+s        Save translation
                ctrl+g        Generate and download PDF
                ctrl+r        Reload from server
                ctrl+v        Cycle panes

  Views:        1-2           Switch views
                ?             Help
                q             Quit

Configuration: ~/.config/pdflate/config.yaml (PDFLATE_* env vars override)`

	fmt.Println(help)
}

func handleUpload(args []string) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	from := fs.String("from", cfg.SourceLanguage, "source language code")
	to := fs.String("to", cfg.TargetLanguage, "target language code")
	fs.Parse(args)

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: pdflate upload [--from ko --to en] <file.pdf>")
		os.Exit(1)
	}

	// No instance lock needed for a one-shot upload.
	client := api.New(cfg.ServerURL)
	uploads := upload.NewController(client, store.New())

	project, err := uploads.Submit(context.Background(), upload.Request{
		Files:      fs.Args(),
		SourceLang: *from,
		TargetLang: *to,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Uploaded: %s\n", project.OriginalFilename)
	fmt.Printf("Project:  %s\n", project.ID)
	fmt.Printf("Languages: %s\n", project.LanguagePair())
	fmt.Printf("Status:   %s\n", model.PresentStatus(project.Status).Label)
}

func handleList() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	client := api.New(cfg.ServerURL)
	projects, err := client.ListProjects(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(projects) == 0 {
		fmt.Println("No projects.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STATUS\tFILE\tLANGUAGES\tPAGES\tPROGRESS\tID")
	for _, p := range projects {
		sv := model.PresentStatus(p.Status)
		progress := "-"
		if p.InPipeline() {
			progress = fmt.Sprintf("%d%%", p.ProgressPercent)
		}
		fmt.Fprintf(w, "%s %s\t%s\t%s\t%d\t%s\t%s\n",
			sv.Icon, sv.Label, p.OriginalFilename, p.LanguagePair(), p.PageCount, progress, p.ID)
	}
	w.Flush()
}

func runTUI(serverURL, themeName string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}
	if themeName == "" {
		themeName = cfg.Theme
	}
	if t, ok := theme.ByName(themeName); ok {
		theme.SetTheme(t)
	}

	application, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	m := ui.NewRootModel(application)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()
	return err
}
