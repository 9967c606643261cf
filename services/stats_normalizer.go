package services

import (
	"sort"

	"leetStats/internal/leetcode"
	"leetStats/internal/stats"
)

const (
	allDifficulty = "All"
	topLanguages  = 5
)

// Normalize turns one raw response into a display-ready record. It fails only
// when the response names no usable user; every other gap falls back to a
// zero value.
func Normalize(username string, raw *leetcode.Response) (*stats.Record, error) {
	if raw.Variant() == leetcode.VariantAPIError {
		msg := raw.FirstError()
		if msg == "" {
			msg = msgUserNotFound
		}
		return nil, &NormalizeError{Message: msg}
	}

	user := raw.User()
	if user == nil {
		return nil, &NormalizeError{Message: msgUserNotFound}
	}

	record := &stats.Record{
		Username:             username,
		Rank:                 rankOf(user.Profile),
		ProblemsByDifficulty: make(map[string]int),
		TopLanguages:         languagesOf(user.LanguageProblemCount),
		Badges:               make([]string, 0, len(user.Badges)),
	}

	if user.SubmitStats != nil {
		for _, ac := range user.SubmitStats.AcSubmissionNum {
			if ac.Difficulty == allDifficulty {
				record.TotalSolved = ac.Count
				continue
			}
			record.ProblemsByDifficulty[ac.Difficulty] = ac.Count
		}
	}

	for _, b := range user.Badges {
		record.Badges = append(record.Badges, b.Name)
	}

	return record, nil
}

// Percentage is the progress-bar helper used when rendering a record.
func Percentage(count, total int) int {
	return stats.Percentage(count, total)
}

// rankOf treats a zero ranking the same as a missing one.
func rankOf(p *leetcode.Profile) *int {
	if p == nil || p.Ranking == nil || *p.Ranking == 0 {
		return nil
	}
	rank := *p.Ranking
	return &rank
}

func languagesOf(counts []leetcode.LanguageCount) []stats.LanguageStat {
	sorted := make([]leetcode.LanguageCount, len(counts))
	copy(sorted, counts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ProblemsSolved > sorted[j].ProblemsSolved
	})
	if len(sorted) > topLanguages {
		sorted = sorted[:topLanguages]
	}

	out := make([]stats.LanguageStat, 0, len(sorted))
	for _, l := range sorted {
		if l.ProblemsSolved <= 0 {
			continue
		}
		out = append(out, stats.LanguageStat{Language: l.LanguageName, Solved: l.ProblemsSolved})
	}
	return out
}
