package envfile

import (
	"encoding/json"
	"fmt"
)

// Kind classifies a physical line. A row has exactly one kind.
type Kind int

const (
	KindBlank Kind = iota
	KindComment
	KindKeyValue
)

var kindNames = map[Kind]string{
	KindBlank:    "blank",
	KindComment:  "comment",
	KindKeyValue: "keyValue",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) MarshalJSON() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown row kind %d", int(k))
	}
	return json.Marshal(name)
}

func (k *Kind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("row kind: %w", err)
	}
	for kind, n := range kindNames {
		if n == name {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown row kind %q", name)
}

// Row is the parsed form of one physical line.
//
// For comment rows Key holds the whole untrimmed line. Value, Prefix and
// Separator are only set on key-value rows. DisplayValue is derived from
// Value and is never authoritative.
type Row struct {
	LineIndex    int    `json:"lineIndex"`
	Kind         Kind   `json:"kind"`
	Key          string `json:"key"`
	Value        string `json:"value"`
	Prefix       string `json:"prefix"`
	Separator    string `json:"separator"`
	DisplayValue string `json:"displayValue"`
	OriginalLine string `json:"originalLine"`
}

// WithEntry returns a copy of r with key and value replaced. An empty
// separator is defaulted to "=" so the reconstructed line keeps its
// assignment operator.
func (r Row) WithEntry(key, value string) Row {
	r.Key = key
	r.Value = value
	r.DisplayValue = Mask(value)
	if r.Separator == "" {
		r.Separator = "="
	}
	return r
}
