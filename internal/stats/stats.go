package stats

import "sort"

type LanguageStat struct {
	Language string `json:"language"`
	Solved   int    `json:"solved"`
}

type DifficultyStat struct {
	Difficulty string `json:"difficulty"`
	Solved     int    `json:"solved"`
	Percent    int    `json:"percent"`
}

// Record is the display-ready view of one LeetCode profile.
type Record struct {
	Username             string         `json:"username"`
	Rank                 *int           `json:"rank"`
	ProblemsByDifficulty map[string]int `json:"problems_by_difficulty"`
	TotalSolved          int            `json:"total_solved"`
	TopLanguages         []LanguageStat `json:"top_languages"`
	Badges               []string       `json:"badges"`
}

var difficultyOrder = map[string]int{"Easy": 0, "Medium": 1, "Hard": 2}

// Percentage returns floor(count*100/total), or 0 when total is not positive.
func Percentage(count, total int) int {
	if total <= 0 {
		return 0
	}
	return count * 100 / total
}

// Difficulties lists the per-difficulty counts in display order: Easy, Medium,
// Hard, then any other labels alphabetically.
func (r *Record) Difficulties() []DifficultyStat {
	labels := make([]string, 0, len(r.ProblemsByDifficulty))
	for label := range r.ProblemsByDifficulty {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		oi, iok := difficultyOrder[labels[i]]
		oj, jok := difficultyOrder[labels[j]]
		switch {
		case iok && jok:
			return oi < oj
		case iok != jok:
			return iok
		default:
			return labels[i] < labels[j]
		}
	})

	out := make([]DifficultyStat, 0, len(labels))
	for _, label := range labels {
		count := r.ProblemsByDifficulty[label]
		out = append(out, DifficultyStat{
			Difficulty: label,
			Solved:     count,
			Percent:    Percentage(count, r.TotalSolved),
		})
	}
	return out
}
