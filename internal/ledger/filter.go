package ledger

import (
	"sort"
	"strconv"
	"strings"

	"credit-entry-go/internal/models"
)

// Filter returns the entries whose concatenated fields contain the query,
// case-insensitively. An empty query returns the snapshot unfiltered. Pure
// function over an in-memory snapshot; no store interaction.
func Filter(entries []models.Entry, query string) []models.Entry {
	if query == "" {
		return entries
	}

	needle := strings.ToLower(query)
	filtered := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(searchText(e)), needle) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func searchText(e models.Entry) string {
	return strings.Join([]string{
		strconv.FormatInt(e.ID, 10),
		e.Timestamp,
		e.Cashier,
		e.Bank,
		e.Credit.String(),
	}, " ")
}

// SortByIDDescending orders entries newest-ID-first for display. Display
// ordering is a presentation concern; the store itself guarantees only
// append order.
func SortByIDDescending(entries []models.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID > entries[j].ID
	})
}
