package catalog

import (
	"sort"
	"strings"
)

// SortOrder is how a movie listing is ordered.
type SortOrder string

const (
	SortPopular SortOrder = "popular"
	SortRating  SortOrder = "rating"
	SortTitle   SortOrder = "title"
	SortNewest  SortOrder = "newest"
)

// ParseSortOrder maps a query value to a SortOrder. Unknown values sort by popularity.
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case SortRating:
		return SortRating
	case SortTitle:
		return SortTitle
	case SortNewest:
		return SortNewest
	default:
		return SortPopular
	}
}

// MovieFilter narrows and orders a movie listing.
type MovieFilter struct {
	Search string
	Genres []string
	Sort   SortOrder
}

// Browse applies f to movies and returns a new slice.
// Search matches title or description case-insensitively; a movie passes the
// genre filter when it has any of the requested genres.
func Browse(movies []Movie, f MovieFilter) []Movie {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]Movie, 0, len(movies))
	for _, m := range movies {
		if term != "" &&
			!strings.Contains(strings.ToLower(m.Title), term) &&
			!strings.Contains(strings.ToLower(m.Description), term) {
			continue
		}
		if len(f.Genres) > 0 && !hasAnyGenre(m, f.Genres) {
			continue
		}
		out = append(out, m)
	}

	switch f.Sort {
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	case SortTitle:
		sort.SliceStable(out, func(i, j int) bool { return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title) })
	case SortNewest:
		// ReleaseDate is ISO 8601, so string order is date order.
		sort.SliceStable(out, func(i, j int) bool { return out[i].ReleaseDate > out[j].ReleaseDate })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].TotalReviews > out[j].TotalReviews })
	}
	return out
}

func hasAnyGenre(m Movie, genres []string) bool {
	for _, g := range m.Genres {
		for _, want := range genres {
			if strings.EqualFold(g, want) {
				return true
			}
		}
	}
	return false
}
