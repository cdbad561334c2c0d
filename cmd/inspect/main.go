package main

import (
	"flag"
	"fmt"
	"forum-lab/internal"
	"log"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/kelseyhightower/envconfig"
	"github.com/olekukonko/tablewriter"
)

type Config struct {
	BadgerFilepath string `envconfig:"BADGER_FILEPATH" default:"./data/badger"`
	Prefix         string `envconfig:"INSPECT_PREFIX" default:"post:"`
	// INSPECT_COLOURS highlights the key type column
	Colours bool `envconfig:"INSPECT_COLOURS" default:"true"`
}

func main() {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		log.Fatalf("Config error: %v", err)
	}
	dbPath := flag.String("db", config.BadgerFilepath, "Path to badger DB")
	prefix := flag.String("prefix", config.Prefix, "Prefix to scan (post:, notif:, room:, member:, joined:, pref:, user:, banned:)")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	rows, err := internal.Scan(db, *prefix, internal.DefaultMapper)
	if err != nil {
		log.Fatal(err)
	}

	header := fmt.Sprintf("  ====== %s (%d keys) ======", *prefix, len(rows))
	if config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	fmt.Println(header)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Type", "Timestamp", "Entity ID", "Namespace", "Detail"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, row := range rows {
		kind := row.Type
		if config.Colours {
			kind = colourFor(kind).Render(kind)
		}
		table.Append([]string{row.Key, kind, row.Timestamp, row.EntityID, row.Namespace, row.Detail})
	}
	table.Render()
}

func colourFor(kind string) color.Style {
	switch kind {
	case "POST":
		return color.New(color.FgCyan)
	case "NOTIF":
		return color.New(color.FgYellow)
	case "BANNED":
		return color.New(color.FgRed)
	default:
		return color.New(color.FgWhite)
	}
}

// openDB opens the store read-only next to a running server.
// A dirty value log is truncated once in write mode before retrying.
func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)

	db, err := badger.Open(opts)
	if err != nil {
		if strings.Contains(err.Error(), "Log truncate required") {
			repairOpts := badger.DefaultOptions(path).
				WithLogger(nil).WithBypassLockGuard(true)

			db, err = badger.Open(repairOpts)
			if err != nil {
				return nil, fmt.Errorf("repair failed: %w", err)
			}
			_ = db.Close()
			return badger.Open(opts)
		}
		return nil, err
	}
	return db, nil
}
