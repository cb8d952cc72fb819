package featured

import "sort"

// BuildFeaturedLists groups ranking rows into per-list views. Lists
// keep their first-seen order; within a list books sort by ascending
// rank with unranked entries last.
func BuildFeaturedLists(rows []RankingRow) []FeaturedList {
	lists := make([]FeaturedList, 0)
	index := make(map[string]int)

	for i := range rows {
		row := &rows[i]
		pos, ok := index[row.ListName]
		if !ok {
			pos = len(lists)
			index[row.ListName] = pos
			displayName := row.DisplayName
			if displayName == "" {
				displayName = row.ListName
			}
			lists = append(lists, FeaturedList{ListName: row.ListName, DisplayName: displayName, Books: []FeaturedBook{}})
		}
		lists[pos].Books = append(lists[pos].Books, FeaturedBook{
			GoogleBooksID: row.Book.GoogleBooksID,
			Title:         row.Book.Title,
			Authors:       row.Book.AuthorsList(),
			ThumbnailURL:  row.Book.ThumbnailURL,
			Description:   row.Book.Description,
			Rank:          row.Rank,
		})
	}

	for i := range lists {
		books := lists[i].Books
		sort.SliceStable(books, func(a, b int) bool {
			ra, rb := books[a].Rank, books[b].Rank
			if ra == nil {
				return false
			}
			if rb == nil {
				return true
			}
			return *ra < *rb
		})
	}

	return lists
}
