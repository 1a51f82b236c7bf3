package feed

import "encoding/json"

// RawEvent represents a single airdrop entry as published by the upstream
// feed. The upstream status field is advisory only and is recomputed by the
// resolver before display.
type RawEvent struct {
	Token  string `json:"token"`
	Phase  *int   `json:"phase,omitempty"`
	Date   string `json:"date,omitempty"` // YYYY-MM-DD
	Time   string `json:"time,omitempty"` // HH:MM
	Status string `json:"status,omitempty"`
}

// Payload is the upstream response body. The airdrops list is decoded into
// Airdrops; every other top-level field is kept verbatim in Extra and passed
// through to clients untouched.
type Payload struct {
	Airdrops []RawEvent
	Extra    map[string]json.RawMessage
}

// UnmarshalJSON decodes the upstream body, tolerating a missing airdrops
// field (treated as an empty list).
func (p *Payload) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	p.Airdrops = []RawEvent{}
	p.Extra = make(map[string]json.RawMessage)

	for key, value := range fields {
		if key == "airdrops" {
			if err := json.Unmarshal(value, &p.Airdrops); err != nil {
				return err
			}
			continue
		}
		p.Extra[key] = value
	}

	return nil
}
