package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lazypower/daybook/internal/config"
	"github.com/lazypower/daybook/internal/journal"
	"github.com/lazypower/daybook/internal/store"
)

// openStore opens the configured store for read-only CLI commands.
func openStore() (*store.Store, error) {
	cfg := config.Load()
	return store.Open(cfg.Store.Path)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all journal entries",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	entries := journal.EnrichAll(st.List())
	if len(entries) == 0 {
		fmt.Println("no entries yet")
		return nil
	}
	for _, e := range entries {
		printEntry(e)
	}
	return nil
}

var memoriesCmd = &cobra.Command{
	Use:   "memories",
	Short: "Show entries written on this day in earlier years",
	RunE:  runMemories,
}

func runMemories(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	mems := journal.EnrichAll(journal.Memories(st.List(), time.Now()))
	if len(mems) == 0 {
		fmt.Println("no memories for today")
		return nil
	}
	for _, e := range mems {
		printEntry(e)
	}
	return nil
}

func printEntry(e journal.Enriched) {
	title := e.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Printf("%s %s  %s  [%s]\n", e.Date, e.Time, title, e.ID)
	fmt.Printf("    %s\n", firstLine(e.Content))
	if len(e.ImagePaths) > 0 {
		fmt.Printf("    photos: %d\n", len(e.ImagePaths))
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 80 {
		s = s[:77] + "..."
	}
	return s
}
