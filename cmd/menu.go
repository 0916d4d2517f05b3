package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/danielerenburg1/address-checker/internal/checker"
	"github.com/danielerenburg1/address-checker/internal/geometry"
	"github.com/danielerenburg1/address-checker/internal/neighborhood"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive neighborhood checker",
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		m := &menu{
			svc: env.Service,
			in:  bufio.NewScanner(cmd.InOrStdin()),
			out: cmd.OutOrStdout(),
		}
		m.run(cmd)
		return nil
	},
}

// menu drives the interactive loop. All reads go through prompt so the
// loop stops cleanly on EOF.
type menu struct {
	svc *checker.Service
	in  *bufio.Scanner
	out io.Writer
	eof bool
}

func (m *menu) run(cmd *cobra.Command) {
	for {
		fmt.Fprintln(m.out, "\n=== Neighborhood Checker ===")
		fmt.Fprintln(m.out, "1. Create new neighborhood")
		fmt.Fprintln(m.out, "2. Check address")
		fmt.Fprintln(m.out, "3. List saved neighborhoods")
		fmt.Fprintln(m.out, "4. Delete neighborhood")
		fmt.Fprintln(m.out, "5. Exit")

		choice := m.prompt("\nEnter your choice (1-5): ")
		if m.eof {
			return
		}

		switch choice {
		case "1":
			m.createNeighborhood(cmd)
		case "2":
			m.checkAddress(cmd)
		case "3":
			m.listNeighborhoods(cmd)
		case "4":
			m.deleteNeighborhood(cmd)
		case "5":
			fmt.Fprintln(m.out, "Goodbye!")
			return
		default:
			fmt.Fprintln(m.out, "Invalid choice. Please try again.")
		}
		if m.eof {
			return
		}
	}
}

func (m *menu) prompt(msg string) string {
	fmt.Fprint(m.out, msg)
	if !m.in.Scan() {
		m.eof = true
		return ""
	}
	return strings.TrimSpace(m.in.Text())
}

func (m *menu) createNeighborhood(cmd *cobra.Command) {
	name := m.prompt("Enter neighborhood name: ")
	if m.eof {
		return
	}

	fmt.Fprintf(m.out, "\nEnter coordinates for %s (lat,lng format). Enter 'done' when finished:\n", name)
	fmt.Fprintln(m.out, "Example: 32.0853,34.7818")

	var polygon geometry.Polygon
	for {
		line := m.prompt("Enter coordinate (lat,lng) or 'done': ")
		if m.eof {
			return
		}
		if strings.EqualFold(line, "done") {
			if len(polygon) < 3 {
				fmt.Fprintln(m.out, "A neighborhood needs at least 3 points!")
				continue
			}
			break
		}

		c, err := geometry.ParseCoordinate(line)
		if err != nil {
			fmt.Fprintln(m.out, "Invalid format! Please use 'latitude,longitude' format")
			continue
		}
		polygon = append(polygon, c)
	}

	if _, err := m.svc.Create(cmd.Context(), checker.CreateRequest{Name: name, Polygon: polygon}); err != nil {
		fmt.Fprintf(m.out, "Error saving neighborhood: %v\n", err)
		return
	}
	fmt.Fprintf(m.out, "\nNeighborhood '%s' has been saved!\n", name)
}

// listNeighborhoods prints the stored set numbered from 1 and returns it
// so selection prompts can reuse the ordering.
func (m *menu) listNeighborhoods(cmd *cobra.Command) neighborhood.Set {
	resp, err := m.svc.List(cmd.Context())
	if err != nil {
		fmt.Fprintf(m.out, "Error loading neighborhoods: %v\n", err)
		return nil
	}
	if len(resp.Neighborhoods) == 0 {
		fmt.Fprintln(m.out, "No saved neighborhoods!")
		return nil
	}

	fmt.Fprintln(m.out, "\nAvailable neighborhoods:")
	for i, n := range resp.Neighborhoods {
		fmt.Fprintf(m.out, "%d. %s\n", i+1, n.Name)
	}
	return resp.Neighborhoods
}

// selectNeighborhoods asks for comma-separated 1-based numbers or 'all'.
func (m *menu) selectNeighborhoods(cmd *cobra.Command) neighborhood.Set {
	all := m.listNeighborhoods(cmd)
	if len(all) == 0 {
		return nil
	}

	fmt.Fprintln(m.out, "\nEnter neighborhood numbers to check (separate with commas)")
	fmt.Fprintln(m.out, "Example: 1,3,4")
	fmt.Fprintln(m.out, "Or type 'all' to check all neighborhoods")

	for {
		choice := m.prompt("Choice: ")
		if m.eof {
			return nil
		}
		if strings.EqualFold(choice, "all") {
			return all
		}

		selected, ok := pickByNumber(all, choice)
		if !ok {
			fmt.Fprintln(m.out, "Invalid choice! Please try again")
			continue
		}
		return selected
	}
}

// pickByNumber resolves a comma-separated list of 1-based indices.
func pickByNumber(all neighborhood.Set, choice string) (neighborhood.Set, bool) {
	var selected neighborhood.Set
	for _, part := range strings.Split(choice, ",") {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || idx < 1 || idx > len(all) {
			return nil, false
		}
		selected = append(selected, all[idx-1])
	}
	return selected, len(selected) > 0
}

func (m *menu) checkAddress(cmd *cobra.Command) {
	selected := m.selectNeighborhoods(cmd)
	if len(selected) == 0 {
		return
	}

	fmt.Fprintln(m.out, "\nEnter address to check (Hebrew or English):")
	fmt.Fprintln(m.out, "Example: דיזנגוף 50 תל אביב")
	address := m.prompt("Address: ")
	if m.eof {
		return
	}
	if len([]rune(address)) < 3 {
		fmt.Fprintln(m.out, "Address too short!")
		return
	}

	ids := make([]string, len(selected))
	for i, n := range selected {
		ids[i] = n.ID
	}

	resp, err := m.svc.Check(cmd.Context(), checker.CheckRequest{
		Address:         address,
		NeighborhoodIDs: ids,
		Mode:            neighborhood.ModeAll,
	})
	if err != nil {
		if eris.Is(err, checker.ErrAddressNotFound) {
			fmt.Fprintln(m.out, "Address not found!")
			return
		}
		fmt.Fprintf(m.out, "Error checking address: %v\n", err)
		return
	}

	fmt.Fprintf(m.out, "\nFound address: %s\n", resp.FormattedAddress)
	fmt.Fprintf(m.out, "Coordinates: %v, %v\n", resp.Point.Lat, resp.Point.Lng)

	confirm := strings.ToLower(m.prompt("\nIs this the correct address? (yes/no): "))
	if m.eof {
		return
	}
	if confirm != "yes" && confirm != "y" {
		fmt.Fprintln(m.out, "Check cancelled.")
		return
	}

	if len(resp.Matches) == 0 {
		fmt.Fprintln(m.out, "\nAddress is not in any of the selected neighborhoods")
		return
	}
	fmt.Fprintln(m.out, "\nAddress is in these neighborhoods:")
	for _, name := range resp.Matches {
		fmt.Fprintf(m.out, "- %s\n", name)
	}
}

func (m *menu) deleteNeighborhood(cmd *cobra.Command) {
	all := m.listNeighborhoods(cmd)
	if len(all) == 0 {
		return
	}

	for {
		choice := m.prompt("\nEnter the number of the neighborhood to delete (or 'cancel'): ")
		if m.eof {
			return
		}
		if strings.EqualFold(choice, "cancel") {
			fmt.Fprintln(m.out, "Deletion cancelled.")
			return
		}

		idx, err := strconv.Atoi(choice)
		if err != nil {
			fmt.Fprintln(m.out, "Please enter a valid number or 'cancel'")
			continue
		}
		if idx < 1 || idx > len(all) {
			fmt.Fprintln(m.out, "Invalid number! Please try again.")
			continue
		}

		target := all[idx-1]
		if _, err := m.svc.Delete(cmd.Context(), checker.DeleteRequest{ID: target.ID}); err != nil {
			fmt.Fprintf(m.out, "Error deleting neighborhood: %v\n", err)
			return
		}
		fmt.Fprintf(m.out, "\nNeighborhood '%s' has been deleted!\n", target.Name)
		return
	}
}

func init() {
	rootCmd.AddCommand(menuCmd)
}
