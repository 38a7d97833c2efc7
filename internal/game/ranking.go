package game

import "sort"

// Rank orders every known player in the group by the chosen field,
// descending, and returns the top entries. Ties keep the store's
// enumeration order so repeated calls are stable.
func (s *Service) Rank(groupID string, field RankField, limit int) []RankEntry {
	users := s.store.ListUsers(groupID)
	recs := make([]Record, 0, len(users))
	for _, id := range users {
		if rec, ok := s.store.Get(groupID, id); ok {
			recs = append(recs, rec)
		}
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return rankKey(recs[i], field) > rankKey(recs[j], field)
	})
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	out := make([]RankEntry, len(recs))
	for i, rec := range recs {
		out[i] = RankEntry{Rank: i + 1, Rec: rec}
	}
	return out
}

func rankKey(rec Record, field RankField) int64 {
	switch field {
	case RankByValue:
		return rec.Value
	case RankBySlaves:
		return int64(len(rec.Slaves))
	case RankByPoints:
		return rec.Arena.Points
	default:
		return rec.Currency
	}
}
