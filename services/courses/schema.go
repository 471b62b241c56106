package courses

import "encoding/json"

// Record is the normalized course record the service produces. It is
// the shape persisted by the seeding driver and consumed downstream.
type Record struct {
	Code          string        `json:"code"`
	Name          string        `json:"name"`
	Credits       []int         `json:"credits,omitempty"`
	Prerequisites Prerequisites `json:"prerequisites"`
	Corequisites  []string      `json:"corequisites"`
	Category      string        `json:"category"`
	Semesters     []string      `json:"semesters"`
	Description   string        `json:"description"`
	Pathways      []string      `json:"pathways"`
}

// Prerequisites carries one of two upstream shapes. Groups is the
// structured form: each inner list is an OR-set of course codes that
// jointly satisfy one prerequisite slot. Flat is the degraded form
// produced by extracting code-shaped tokens out of free text, with no
// grouping information. Groups wins when both are set.
type Prerequisites struct {
	Groups [][]string
	Flat   []string
}

func (p Prerequisites) Empty() bool {
	return len(p.Groups) == 0 && len(p.Flat) == 0
}

func (p Prerequisites) MarshalJSON() ([]byte, error) {
	if p.Groups != nil {
		return json.Marshal(p.Groups)
	}
	if p.Flat != nil {
		return json.Marshal(p.Flat)
	}
	return []byte("[]"), nil
}

func (p *Prerequisites) UnmarshalJSON(data []byte) error {
	var groups [][]string
	if err := json.Unmarshal(data, &groups); err == nil {
		*p = Prerequisites{Groups: groups}
		return nil
	}
	var flat []string
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	*p = Prerequisites{Flat: flat}
	return nil
}
