package schedule

// Area groups the venues of one city.
type Area struct {
	City   string
	State  string
	Venues []EntitySummary
}

// GroupByArea groups venues by (city, state). Areas appear in order of
// their first venue and venues keep their relative order.
func GroupByArea(venues []EntitySummary) []Area {
	type key struct{ city, state string }
	idx := map[key]int{}
	areas := []Area{}
	for _, v := range venues {
		k := key{v.City, v.State}
		i, ok := idx[k]
		if !ok {
			i = len(areas)
			idx[k] = i
			areas = append(areas, Area{City: v.City, State: v.State})
		}
		areas[i].Venues = append(areas[i].Venues, v)
	}
	return areas
}
