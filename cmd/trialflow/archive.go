package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"trialflow/pkg/archive"
	"trialflow/pkg/config"
	"trialflow/pkg/engine"
	"trialflow/pkg/snapshot"
)

var archiveDBFlag string

var archiveCmd = &cobra.Command{
	Use:     "archive <command>",
	Short:   "Keep and restore named diagram versions",
	GroupID: "maintenance",
}

// archiveDBPath resolves the database location: the --db flag, then the
// configured archive directory, then ./.trialflow/archive.db.
func archiveDBPath() (string, error) {
	if archiveDBFlag != "" {
		return archiveDBFlag, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	if cfg.ArchiveDir != "" {
		return filepath.Join(cfg.ArchiveDir, "archive.db"), nil
	}
	return archive.DefaultPath("."), nil
}

func openArchive() (*archive.Store, error) {
	path, err := archiveDBPath()
	if err != nil {
		return nil, err
	}
	return archive.Open(path)
}

var archiveSaveCmd = &cobra.Command{
	Use:   "save <file>",
	Short: "Store a diagram's current state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, s, err := snapshot.Load(args[0])
		if err != nil {
			return err
		}
		g = engine.Recompute(g, s)
		data, err := snapshot.Encode(g, s)
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			base := filepath.Base(args[0])
			name = strings.TrimSuffix(base, filepath.Ext(base))
		}

		store, err := openArchive()
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := store.Save(name, data, len(g.Nodes))
		if err != nil {
			return err
		}
		fmt.Printf("Saved %s as #%d\n", name, id)
		return nil
	},
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored versions, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openArchive()
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.List()
		if err != nil {
			return err
		}

		if jsonOutput {
			data, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode entries: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tNODES\tCREATED")
		for _, e := range entries {
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", e.ID, e.Name, e.Nodes, e.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		w.Flush()
		fmt.Printf("\n%d versions\n", len(entries))
		return nil
	},
}

var archiveShowCmd = &cobra.Command{
	Use:   "show <id|name>",
	Short: "Print a stored version's JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openArchive()
		if err != nil {
			return err
		}
		defer store.Close()

		entry, err := lookupEntry(store, args[0])
		if err != nil {
			return err
		}
		fmt.Print(string(entry.Snapshot))
		return nil
	},
}

var archiveRestoreCmd = &cobra.Command{
	Use:   "restore <id|name> <file>",
	Short: "Write a stored version back to a diagram file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openArchive()
		if err != nil {
			return err
		}
		defer store.Close()

		entry, err := lookupEntry(store, args[0])
		if err != nil {
			return err
		}
		// Round-trip through the codec so a corrupted blob never lands in
		// a project file.
		g, s, err := snapshot.Decode(entry.Snapshot)
		if err != nil {
			return err
		}
		if err := snapshot.Save(args[1], g, s); err != nil {
			return err
		}
		fmt.Printf("Restored #%d (%s) to %s\n", entry.ID, entry.Name, args[1])
		return nil
	},
}

var archiveDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseArchiveID(args[0])
		if err != nil {
			return err
		}

		store, err := openArchive()
		if err != nil {
			return err
		}
		defer store.Close()

		return store.Delete(id)
	},
}

func parseArchiveID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid archive id %q", raw)
	}
	return id, nil
}

// lookupEntry resolves a version reference: a numeric id directly,
// anything else as a name via its most recent version.
func lookupEntry(store *archive.Store, ref string) (*archive.Entry, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return store.Show(id)
	}
	return store.Latest(ref)
}

func init() {
	archiveCmd.PersistentFlags().StringVar(&archiveDBFlag, "db", "", "archive database path (default: config, then ./.trialflow/archive.db)")
	archiveSaveCmd.Flags().String("name", "", "version name (default: the file name)")

	archiveCmd.AddCommand(archiveSaveCmd)
	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveShowCmd)
	archiveCmd.AddCommand(archiveRestoreCmd)
	archiveCmd.AddCommand(archiveDeleteCmd)
}
