// Command planctl is a terminal companion for the wedding planner API.  It
// drives the same seating logic the admin UI uses: a board initialized from
// server snapshots and an optimistic coordinator for assignments.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/wedding-planner/internal/client"
	"github.com/iliyamo/wedding-planner/internal/model"
	"github.com/iliyamo/wedding-planner/internal/planner"
)

func main() {
	_ = godotenv.Load()

	addr := flag.String("addr", envOr("PLANNER_ADDR", "http://localhost:8080"), "API base URL")
	email := flag.String("email", os.Getenv("PLANNER_EMAIL"), "login email")
	password := flag.String("password", os.Getenv("PLANNER_PASSWORD"), "login password")
	token := flag.String("token", os.Getenv("PLANNER_TOKEN"), "access token (skips login)")
	timeout := flag.Duration("timeout", 10*time.Second, "request timeout")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c := client.New(*addr, *timeout)
	if *token != "" {
		c.SetToken(*token)
	} else if *email != "" {
		if err := c.Login(ctx, *email, *password); err != nil {
			fatalf("login: %v", err)
		}
	}

	var err error
	switch args[0] {
	case "tables":
		err = cmdTables(ctx, c)
	case "stats":
		err = cmdStats(ctx, c)
	case "guests":
		err = cmdGuests(ctx, c, args[1:])
	case "roster":
		err = cmdRoster(ctx, c, args[1:])
	case "options":
		err = cmdOptions(ctx, c, args[1:])
	case "assign":
		err = cmdAssign(ctx, c, args[1:])
	case "refresh":
		err = cmdRefresh(ctx, c)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fatalf("%v", err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: planctl [flags] <command>

commands:
  tables                      list all tables with occupancy
  stats                       show aggregate seating statistics
  guests [page size filter]   list guests with their assignments
  roster <tableID>            show one table's guest list
  options <guestID>           show the table choices for a guest
  assign <guestID> <tableID>  move a guest (tableID "none" unassigns)
  refresh                     re-fetch snapshots and print the overview

flags:
`)
	flag.PrintDefaults()
}

// loadBoard pulls fresh snapshots and builds the in-memory board.
func loadBoard(ctx context.Context, c *client.Client) (*planner.Board, error) {
	summaries, err := c.TablesSummary(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := c.TablesStats(ctx)
	if err != nil {
		return nil, err
	}
	tables := make([]model.Table, 0, len(summaries))
	for _, s := range summaries {
		tables = append(tables, model.Table{
			ID:               s.ID,
			TableNumber:      s.TableNumber,
			TableName:        s.TableName,
			MaxCapacity:      s.MaxCapacity,
			CurrentOccupancy: s.CurrentOccupancy,
		})
	}
	return planner.NewBoard(tables, stats), nil
}

func cmdTables(ctx context.Context, c *client.Client) error {
	board, err := loadBoard(ctx, c)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tOCCUPANCY\tFREE\tFULL")
	for _, s := range board.Summaries() {
		full := ""
		if s.IsFull {
			full = "yes"
		}
		name := s.TableName
		if s.IsHonorTable {
			name += " *"
		}
		fmt.Fprintf(w, "%d\t%s\t%d/%d\t%d\t%s\n", s.ID, name, s.CurrentOccupancy, s.MaxCapacity, s.AvailableSeats, full)
	}
	return w.Flush()
}

func cmdStats(ctx context.Context, c *client.Client) error {
	board, err := loadBoard(ctx, c)
	if err != nil {
		return err
	}
	s := board.Stats()
	fmt.Printf("guests:    %d assigned, %d unassigned, %d total (%.1f%%)\n",
		s.AssignedGuests, s.UnassignedGuests, s.TotalGuests, s.PercentageAssigned)
	fmt.Printf("seats:     %d occupied, %d free, %d total\n",
		s.TotalOccupied, s.AvailableSeats, s.TotalCapacity)
	return nil
}

func cmdGuests(ctx context.Context, c *client.Client, args []string) error {
	page, pageSize, filter := 1, 25, ""
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			page = n
		}
	}
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[1]); err == nil {
			pageSize = n
		}
	}
	if len(args) > 2 {
		filter = args[2]
	}

	res, err := c.GuestsForAssignment(ctx, page, pageSize, filter)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tFAMILY\tTABLE")
	for _, g := range res.Data {
		table := "-"
		if g.TableName != nil {
			table = *g.TableName
		}
		name := g.Name
		if g.IsChild {
			name += " (child)"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", g.ID, name, g.FamilyName, table)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("page %d/%d (%d guests)\n", res.Pagination.CurrentPage, res.Pagination.TotalPages, res.Pagination.TotalItems)
	return nil
}

func cmdRoster(ctx context.Context, c *client.Client, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: planctl roster <tableID>")
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid table id %q", args[0])
	}
	roster, err := c.TableGuests(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%d/%d)\n", roster.TableName, roster.CurrentOccupancy, roster.MaxCapacity)
	for _, g := range roster.Guests {
		line := fmt.Sprintf("  %s (%s)", g.Name, g.FamilyName)
		if g.IsChild {
			line += " (child)"
		}
		if g.Notes != "" {
			line += " [" + g.Notes + "]"
		}
		fmt.Println(line)
	}
	return nil
}

func cmdOptions(ctx context.Context, c *client.Client, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: planctl options <guestID>")
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid guest id %q", args[0])
	}
	board, err := loadBoard(ctx, c)
	if err != nil {
		return err
	}
	g, err := findGuest(ctx, c, id)
	if err != nil {
		return err
	}
	marker := " "
	if g.TableID == nil {
		marker = "*"
	}
	fmt.Printf("%s none: unassigned\n", marker)
	for _, opt := range board.OptionsFor(g.TableID) {
		marker = " "
		if opt.IsCurrent {
			marker = "*"
		}
		fmt.Printf("%s %d: %s\n", marker, opt.ID, opt.Display)
	}
	return nil
}

func cmdAssign(ctx context.Context, c *client.Client, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: planctl assign <guestID> <tableID|none>")
	}
	guestID, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid guest id %q", args[0])
	}
	var tableID *uint64
	if !strings.EqualFold(args[1], "none") {
		n, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid table id %q", args[1])
		}
		tableID = &n
	}

	board, err := loadBoard(ctx, c)
	if err != nil {
		return err
	}
	g, err := findGuest(ctx, c, guestID)
	if err != nil {
		return err
	}

	co := planner.NewCoordinator(c, board)
	if _, err := co.Assign(ctx, g, tableID); err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Validation() {
			return fmt.Errorf("rejected: %s", apiErr.Message)
		}
		return err
	}

	if g.TableName != nil {
		fmt.Printf("%s -> %s\n", g.Name, *g.TableName)
	} else {
		fmt.Printf("%s unassigned\n", g.Name)
	}
	s := board.Stats()
	fmt.Printf("assigned %d/%d guests, %d seats free\n", s.AssignedGuests, s.TotalGuests, s.AvailableSeats)
	return nil
}

// cmdRefresh discards local state in favour of fresh snapshots and prints
// the resulting overview.  This is the manual correction for aggregate
// drift after many incremental updates.
func cmdRefresh(ctx context.Context, c *client.Client) error {
	board, err := loadBoard(ctx, c)
	if err != nil {
		return err
	}
	s := board.Stats()
	fmt.Printf("refreshed %d tables\n", len(board.Summaries()))
	fmt.Printf("guests:    %d assigned, %d unassigned, %d total (%.1f%%)\n",
		s.AssignedGuests, s.UnassignedGuests, s.TotalGuests, s.PercentageAssigned)
	fmt.Printf("seats:     %d occupied, %d free, %d total\n",
		s.TotalOccupied, s.AvailableSeats, s.TotalCapacity)
	return nil
}

// findGuest walks the paginated assignment view until the guest shows up.
func findGuest(ctx context.Context, c *client.Client, id uint64) (*model.GuestAssignment, error) {
	const pageSize = 100
	for page := 1; ; page++ {
		res, err := c.GuestsForAssignment(ctx, page, pageSize, "")
		if err != nil {
			return nil, err
		}
		for i := range res.Data {
			if res.Data[i].ID == id {
				return &res.Data[i], nil
			}
		}
		if page >= res.Pagination.TotalPages || len(res.Data) == 0 {
			return nil, fmt.Errorf("guest %d not found", id)
		}
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "planctl: "+format+"\n", args...)
	os.Exit(1)
}
