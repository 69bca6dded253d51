package models

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// FreezoneParameters are the slots collected from the user before a
// freezone recommendation can be made. Nil means not provided yet.
type FreezoneParameters struct {
	NoOfShareholders  *int     `json:"no_of_shareholders"`
	NoOfVisas         *int     `json:"no_of_visas"`
	Activities        *string  `json:"activities"`
	Cost              *float64 `json:"cost"`
	OfficeSpace       *bool    `json:"office_space"`
	PreferredLocation *string  `json:"preferred_location"`
}

// Slot names in collection order.
const (
	SlotShareholders = "No of shareholders"
	SlotVisas        = "No of visas"
	SlotActivities   = "Activities"
	SlotCost         = "Cost"
	SlotOfficeSpace  = "Office space"
	SlotLocation     = "Preferred location"
)

// Missing lists the slots that are still unset, in collection order.
// Blank strings count as unset.
func (p FreezoneParameters) Missing() []string {
	var missing []string
	if p.NoOfShareholders == nil {
		missing = append(missing, SlotShareholders)
	}
	if p.NoOfVisas == nil {
		missing = append(missing, SlotVisas)
	}
	if blank(p.Activities) {
		missing = append(missing, SlotActivities)
	}
	if p.Cost == nil {
		missing = append(missing, SlotCost)
	}
	if p.OfficeSpace == nil {
		missing = append(missing, SlotOfficeSpace)
	}
	if blank(p.PreferredLocation) {
		missing = append(missing, SlotLocation)
	}
	return missing
}

// Complete reports whether every slot has a value.
func (p FreezoneParameters) Complete() bool {
	return len(p.Missing()) == 0
}

// UserInputResponse is the structured reply of a collection turn.
type UserInputResponse struct {
	Parameters             FreezoneParameters `json:"parameters"`
	Response               *string            `json:"response"`
	AllParametersCollected bool               `json:"all_parameters_collected"`
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

// UnmarshalJSON accepts the loose values language models produce: numbers
// as strings ("2", "15,000 AED"), integral floats for counts, and yes/no
// for booleans. A value that cannot be read leaves its slot unset.
func (p *FreezoneParameters) UnmarshalJSON(data []byte) error {
	*p = FreezoneParameters{}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		// not an object, nothing collected
		return nil
	}

	p.NoOfShareholders = looseInt(raw["no_of_shareholders"])
	p.NoOfVisas = looseInt(raw["no_of_visas"])
	p.Activities = looseString(raw["activities"])
	p.Cost = looseFloat(raw["cost"])
	p.OfficeSpace = looseBool(raw["office_space"])
	p.PreferredLocation = looseString(raw["preferred_location"])
	return nil
}

// UnmarshalJSON reads a collection turn leniently, see FreezoneParameters.
// Only a reply that is not a JSON object is an error.
func (r *UserInputResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		Parameters             json.RawMessage `json:"parameters"`
		Response               any             `json:"response"`
		AllParametersCollected any             `json:"all_parameters_collected"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	*r = UserInputResponse{Response: looseString(raw.Response)}
	if len(raw.Parameters) > 0 {
		if err := r.Parameters.UnmarshalJSON(raw.Parameters); err != nil {
			return err
		}
	}
	if collected := looseBool(raw.AllParametersCollected); collected != nil {
		r.AllParametersCollected = *collected
	}
	return nil
}

var numberPattern = regexp.MustCompile(`-?\d+(\.\d+)?`)

func looseFloat(v any) *float64 {
	var f float64
	switch t := v.(type) {
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		m := numberPattern.FindString(strings.ReplaceAll(t, ",", ""))
		if m == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	return &f
}

func looseInt(v any) *int {
	f := looseFloat(v)
	if f == nil || *f != math.Trunc(*f) || math.Abs(*f) > math.MaxInt32 {
		return nil
	}
	n := int(*f)
	return &n
}

func looseBool(v any) *bool {
	var b bool
	switch t := v.(type) {
	case bool:
		b = t
	case json.Number:
		switch t.String() {
		case "1":
			b = true
		case "0":
			b = false
		default:
			return nil
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "y", "1", "required":
			b = true
		case "false", "no", "n", "0", "not required", "none":
			b = false
		default:
			return nil
		}
	default:
		return nil
	}
	return &b
}

func looseString(v any) *string {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case json.Number:
		s = t.String()
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if str := looseString(item); str != nil {
				parts = append(parts, *str)
			}
		}
		s = strings.Join(parts, ", ")
	default:
		return nil
	}
	return &s
}
