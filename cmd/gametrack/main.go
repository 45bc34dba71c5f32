package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/Mikkelka/gametrack/internal/app"
	"github.com/Mikkelka/gametrack/internal/auth"
	"github.com/Mikkelka/gametrack/internal/logger"
	"github.com/Mikkelka/gametrack/internal/model"
	"github.com/Mikkelka/gametrack/internal/order"
	"github.com/Mikkelka/gametrack/internal/store"
	"github.com/Mikkelka/gametrack/internal/ui"
	"github.com/Mikkelka/gametrack/internal/ui/theme"
)

var (
	version = "0.1.0"
)

func main() {
	// Subcommand handling
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "add":
			handleAdd(os.Args[2:])
			return
		case "export":
			handleExport(os.Args[2:])
			return
		case "import":
			handleImport(os.Args[2:])
			return
		case "version":
			fmt.Printf("gametrack v%s\n", version)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		}
	}

	// Parse flags for TUI mode
	themeFlag := flag.String("theme", "", "Theme name (nord, catppuccin)")
	flag.Parse()

	// Run TUI
	if err := runTUI(*themeFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	help := `gametrack - A kanban board for your game backlog

Usage:
  gametrack                   Start the TUI
  gametrack add <title>       Quick add a game
  gametrack export [file]     Export games and platforms as JSON
  gametrack import <file>     Import games and platforms from JSON
  gametrack version           Show version
  gametrack help              Show this help

Quick Add:
  gametrack add "Hollow Knight"
  gametrack add -platform Switch -list playing "Zelda: TOTK"

  -platform <name>   Platform tag (must already exist)
  -list <status>     upcoming, willplay, playing, completed, paused, dropped

TUI Options:
  --theme <name>    Theme (nord, catppuccin)

Keybindings:
  Navigation:   h/l           Switch columns
                j/k           Move cursor
                g/G           Go to top/bottom

  Actions:      a             Add game
                enter         Edit title
                d             Delete (with confirm)
                f             Favorite
                c             Complete with today's date
                p             Change platform

  Moving:       K/J           Reorder within list
                H/L           Move to previous/next list
                mouse drag    Move cards between lists

  Views:        1-4           Board, platforms, settings, stats
                ?             Help
                q             Quit

For more info: https://github.com/Mikkelka/gametrack`

	fmt.Println(help)
}

// openStore opens the store and profile without the single-instance lock.
// Quick add and export/import only need a short-lived connection.
func openStore() (*store.SQLite, *auth.FileProvider, string) {
	st, err := store.Open(store.DefaultDBPath(), logger.NewDiscard())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}

	provider, err := auth.NewFileProvider(store.DefaultDataDir())
	if err != nil {
		st.Close()
		fmt.Fprintf(os.Stderr, "Error loading profile: %v\n", err)
		os.Exit(1)
	}

	userID, ok := provider.CurrentUserID()
	if !ok {
		st.Close()
		fmt.Fprintln(os.Stderr, "Error: no signed-in user")
		os.Exit(1)
	}

	return st, provider, userID
}

func handleAdd(args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	platformFlag := fs.String("platform", "", "Platform tag")
	listFlag := fs.String("list", string(model.StatusWillPlay), "Board list")
	fs.Parse(args)

	title := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if title == "" {
		fmt.Fprintln(os.Stderr, "Usage: gametrack add [-platform <name>] [-list <status>] <title>")
		os.Exit(1)
	}

	status := model.Status(strings.ToLower(*listFlag))
	if !model.IsValidStatus(status) {
		fmt.Fprintf(os.Stderr, "Error: unknown list %q\n", *listFlag)
		os.Exit(1)
	}

	st, _, userID := openStore()
	defer st.Close()

	ctx := context.Background()

	item := model.Item{
		ID:     uuid.New().String(),
		Title:  title,
		Status: status,
		UserID: userID,
	}

	// New games go to the bottom of their list
	existing, err := st.QueryByOwner(ctx, userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading games: %v\n", err)
		os.Exit(1)
	}
	for _, it := range existing {
		if it.Status == status {
			item.Order++
		}
	}

	if *platformFlag != "" {
		platforms, err := st.Platforms(ctx, userID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading platforms: %v\n", err)
			os.Exit(1)
		}
		found := false
		for _, p := range platforms {
			if strings.EqualFold(p.Name, *platformFlag) {
				item.Platform = p.Name
				item.PlatformColor = p.Color
				found = true
				break
			}
		}
		if !found {
			fmt.Fprintf(os.Stderr, "Error: unknown platform %q\n", *platformFlag)
			os.Exit(1)
		}
	}

	if err := st.Apply(ctx, []model.Op{model.SetOp(item)}); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving game: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Added: %s (%s)\n", item.Title, model.ListName(status))
	if item.Platform != "" {
		fmt.Printf("Platform: %s\n", item.Platform)
	}
}

// exportDoc is the JSON shape shared by export and import
type exportDoc struct {
	Items     []model.Item     `json:"items"`
	Platforms []model.Platform `json:"platforms"`
}

func handleExport(args []string) {
	st, _, userID := openStore()
	defer st.Close()

	ctx := context.Background()

	items, err := st.QueryByOwner(ctx, userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading games: %v\n", err)
		os.Exit(1)
	}
	order.Sort(items)

	platforms, err := st.Platforms(ctx, userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading platforms: %v\n", err)
		os.Exit(1)
	}

	data, err := json.MarshalIndent(exportDoc{Items: items, Platforms: platforms}, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding export: %v\n", err)
		os.Exit(1)
	}
	data = append(data, '\n')

	if len(args) == 0 {
		os.Stdout.Write(data)
		return
	}

	if err := os.WriteFile(args[0], data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", args[0], err)
		os.Exit(1)
	}
	fmt.Printf("Exported %d games and %d platforms to %s\n", len(items), len(platforms), args[0])
}

func handleImport(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: gametrack import <file>")
		os.Exit(1)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", args[0], err)
		os.Exit(1)
	}

	var doc exportDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		// Accept a bare item array too
		if arrErr := json.Unmarshal(data, &doc.Items); arrErr != nil {
			fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", args[0], err)
			os.Exit(1)
		}
	}

	st, _, userID := openStore()
	defer st.Close()

	ctx := context.Background()

	// Platforms first so imported games can reference them
	existing, err := st.Platforms(ctx, userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading platforms: %v\n", err)
		os.Exit(1)
	}
	known := make(map[string]bool, len(existing))
	for _, p := range existing {
		known[strings.ToLower(p.Name)] = true
	}
	addedPlatforms := 0
	for _, p := range doc.Platforms {
		if p.Name == "" || known[strings.ToLower(p.Name)] {
			continue
		}
		p.UserID = userID
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		if _, err := st.AddPlatform(ctx, p); err != nil {
			fmt.Fprintf(os.Stderr, "Error importing platform %s: %v\n", p.Name, err)
			os.Exit(1)
		}
		known[strings.ToLower(p.Name)] = true
		addedPlatforms++
	}

	var ops []model.Op
	for _, it := range doc.Items {
		if strings.TrimSpace(it.Title) == "" {
			continue
		}
		it.UserID = userID
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		if !model.IsValidStatus(it.Status) {
			it.Status = model.StatusWillPlay
		}
		if it.Order < 0 {
			it.Order = 0
		}
		ops = append(ops, model.SetOp(it))
	}

	if len(ops) > 0 {
		if err := st.Apply(ctx, ops); err != nil {
			fmt.Fprintf(os.Stderr, "Error importing games: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Imported %d games and %d platforms from %s\n", len(ops), addedPlatforms, args[0])
}

func runTUI(themeName string) error {
	// Create application
	application, err := app.New(nil)
	if err != nil {
		return err
	}
	defer application.Close()

	// Flag wins over the saved setting
	if themeName == "" {
		themeName = application.Settings.Theme
	}
	if t, ok := theme.ByName(themeName); ok {
		theme.SetTheme(t)
	}

	// Create root model
	root := ui.NewRootModel(application)

	// Create and run program
	p := tea.NewProgram(
		root,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// Cache changes and queue drains are pushed into the program
	cancelSub := application.Cache.Subscribe(func(items []model.Item) {
		p.Send(ui.ItemsRefreshedMsg{Items: items})
	})
	defer cancelSub()
	application.OnSynced = func(sent int) {
		p.Send(ui.SyncedMsg{Sent: sent})
	}

	// Initial board load happens off the UI goroutine
	go func() {
		items := application.Cache.Load(context.Background())
		p.Send(ui.ItemsRefreshedMsg{Items: items})
	}()

	_, err = p.Run()
	return err
}
