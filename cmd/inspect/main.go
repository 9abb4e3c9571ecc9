// Command inspect prints the rows of a travelmate store as a table. It opens
// badger read-only so it can run next to a live server.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/olekukonko/tablewriter"

	"travelmate/domain/chat"
	"travelmate/domain/travel"
	"travelmate/repositories"
)

func main() {
	dbPath := flag.String("db", os.Getenv("BADGER_FILEPATH"), "Path to badger DB")
	prefix := flag.String("prefix", "room:", fmt.Sprintf("Prefix to scan, one of %v optionally narrowed", repositories.Kinds()))
	flag.Parse()

	if err := run(*dbPath, *prefix); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(path, prefix string) error {
	db, err := openDB(path)
	if err != nil {
		return fmt.Errorf("error while opening badger: %w", err)
	}
	defer db.Close()

	table := newTable(os.Stdout, header(prefix))
	err = repositories.Scan(db, prefix, func(r repositories.Record) error {
		table.Append(row(r))
		return nil
	})
	if err != nil {
		return err
	}
	table.Render()
	return nil
}

func newTable(out *os.File, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(out)
	table.SetHeader(header)
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
	return table
}

func header(prefix string) []string {
	switch {
	case strings.HasPrefix(prefix, "msg:"):
		return []string{"Key", "Sender", "Timestamp", "Read", "Content"}
	case strings.HasPrefix(prefix, "request:"):
		return []string{"Key", "Sender", "Receiver", "Status", "Created", "Message"}
	case strings.HasPrefix(prefix, "profile:"):
		return []string{"Key", "Name", "City", "Coordinates", "Languages"}
	default:
		return []string{"Key", "Participants", "Last message", "At", "Created"}
	}
}

func row(r repositories.Record) []string {
	switch v := r.Value.(type) {
	case chat.ChatRoom:
		return []string{r.Key, fmt.Sprintf("%s, %s", v.Participants[0], v.Participants[1]),
			truncate(v.LastMessage), stamp(v.LastMessageTime), stamp(v.CreatedAt)}
	case chat.Message:
		return []string{r.Key, string(v.SenderID), stamp(v.Timestamp), fmt.Sprint(v.Read), truncate(v.Content)}
	case travel.Request:
		return []string{r.Key, v.SenderID, v.ReceiverID, string(v.Status), stamp(v.CreatedAt), truncate(v.Message)}
	case travel.Profile:
		coordinates := "-"
		if v.Location.HasCoordinates() {
			coordinates = fmt.Sprintf("%.4f, %.4f", v.Location.Lat, v.Location.Lng)
		}
		return []string{r.Key, v.Name, v.Location.City, coordinates, strings.Join(v.Languages, " ")}
	case error:
		return []string{r.Key, "ERROR", v.Error()}
	default:
		return []string{r.Key, fmt.Sprintf("%v", v)}
	}
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}

func truncate(s string) string {
	const width = 48
	if r := []rune(s); len(r) > width {
		return string(r[:width]) + "…"
	}
	return s
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)
	return badger.Open(opts)
}
