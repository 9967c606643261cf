package leetcode

import (
	"encoding/json"
	"errors"
)

// The upstream schema is loose: a field with an unexpected type is left at its
// zero value instead of failing the whole response. Only a body that is not a
// JSON object is an error.

type object map[string]json.RawMessage

func decodeObject(data []byte) object {
	var obj object
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}
	return obj
}

func field[T any](obj object, name string, dst *T) {
	raw, ok := obj[name]
	if !ok {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err == nil {
		*dst = v
	}
}

// intField accepts JSON numbers and numeric strings. Fractions are truncated.
func intField(obj object, name string, dst *int) bool {
	raw, ok := obj[name]
	if !ok {
		return false
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return false
	}
	if i, err := n.Int64(); err == nil {
		*dst = int(i)
		return true
	}
	if f, err := n.Float64(); err == nil {
		*dst = int(f)
		return true
	}
	return false
}

func (r *Response) UnmarshalJSON(data []byte) error {
	var obj object
	if err := json.Unmarshal(data, &obj); err != nil {
		return errors.New("response is not a JSON object")
	}
	field(obj, "data", &r.Data)
	field(obj, "errors", &r.Errors)
	return nil
}

func (d *Data) UnmarshalJSON(data []byte) error {
	obj := decodeObject(data)
	field(obj, "matchedUser", &d.MatchedUser)
	return nil
}

func (u *MatchedUser) UnmarshalJSON(data []byte) error {
	obj := decodeObject(data)
	field(obj, "username", &u.Username)
	field(obj, "profile", &u.Profile)
	field(obj, "languageProblemCount", &u.LanguageProblemCount)
	field(obj, "submitStats", &u.SubmitStats)
	field(obj, "badges", &u.Badges)
	return nil
}

func (p *Profile) UnmarshalJSON(data []byte) error {
	obj := decodeObject(data)
	var rank int
	if intField(obj, "ranking", &rank) {
		p.Ranking = &rank
	}
	return nil
}

func (l *LanguageCount) UnmarshalJSON(data []byte) error {
	obj := decodeObject(data)
	field(obj, "languageName", &l.LanguageName)
	intField(obj, "problemsSolved", &l.ProblemsSolved)
	return nil
}

func (s *SubmitStats) UnmarshalJSON(data []byte) error {
	obj := decodeObject(data)
	field(obj, "acSubmissionNum", &s.AcSubmissionNum)
	return nil
}

func (c *DifficultyCount) UnmarshalJSON(data []byte) error {
	obj := decodeObject(data)
	field(obj, "difficulty", &c.Difficulty)
	intField(obj, "count", &c.Count)
	return nil
}

func (b *Badge) UnmarshalJSON(data []byte) error {
	obj := decodeObject(data)
	field(obj, "name", &b.Name)
	return nil
}

func (e *APIError) UnmarshalJSON(data []byte) error {
	obj := decodeObject(data)
	field(obj, "message", &e.Message)
	return nil
}
