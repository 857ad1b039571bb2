package roster

// MergePlayers flattens the rosters of teams in the given order, keeping the first
// player seen for each name.
func MergePlayers(teams []Team) []Player {
	seen := make(map[string]struct{})
	out := make([]Player, 0)
	for _, t := range teams {
		for _, p := range t.Players {
			if _, ok := seen[p.Name]; ok {
				continue
			}
			seen[p.Name] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

// MergeIntoStored applies the save-team contract to the stored team list: when teams
// already exist under incoming.Name, the first of them absorbs the merged roster of
// all of them plus incoming and the others are dropped. A new name is appended.
func MergeIntoStored(stored []Team, incoming Team) []Team {
	first := -1
	sameName := make([]Team, 0)
	for i, t := range stored {
		if t.Name != incoming.Name {
			continue
		}
		if first < 0 {
			first = i
		}
		sameName = append(sameName, t)
	}

	if first < 0 {
		out := make([]Team, 0, len(stored)+1)
		for _, t := range stored {
			out = append(out, t.Clone())
		}
		return append(out, incoming.Clone())
	}

	merged := stored[first].Clone()
	merged.Players = MergePlayers(append(sameName, incoming))

	out := make([]Team, 0, len(stored)-len(sameName)+1)
	for i, t := range stored {
		switch {
		case i == first:
			out = append(out, merged)
		case t.Name == incoming.Name:
			continue
		default:
			out = append(out, t.Clone())
		}
	}
	return out
}

// FindMerged returns the first stored team with the given name carrying the merged
// roster of every team sharing that name.
func FindMerged(stored []Team, name string) (Team, bool) {
	sameName := make([]Team, 0)
	for _, t := range stored {
		if t.Name == name {
			sameName = append(sameName, t)
		}
	}
	if len(sameName) == 0 {
		return Team{}, false
	}

	out := sameName[0].Clone()
	out.Players = MergePlayers(sameName)
	return out, true
}

// Names lists distinct non-empty team names in stored order.
func Names(stored []Team) []string {
	seen := make(map[string]struct{}, len(stored))
	out := make([]string, 0, len(stored))
	for _, t := range stored {
		if t.Name == "" {
			continue
		}
		if _, ok := seen[t.Name]; ok {
			continue
		}
		seen[t.Name] = struct{}{}
		out = append(out, t.Name)
	}
	return out
}
