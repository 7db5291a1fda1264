package custom

import (
	"bytes"
	"encoding/json"
	"time"
)

const (
	// isoLayout is the ISO-8601 layout persisted in the config file. Always UTC with milliseconds.
	isoLayout = "2006-01-02T15:04:05.000Z"

	// brazilLayout is how timestamps are shown to users (pt-BR locale).
	brazilLayout = "02/01/2006, 15:04:05"
)

// parseLayouts are tried in order when decoding. Layouts without a zone parse as UTC.
var parseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Datetime represents a datetime.
type Datetime time.Time

// NewDatetime creates a Datetime from t.
func NewDatetime(t time.Time) Datetime {
	return Datetime(t)
}

// Time returns the underlying time.
func (d Datetime) Time() time.Time {
	return time.Time(d)
}

// IsZero reports whether d is the zero time.
func (d Datetime) IsZero() bool {
	return time.Time(d).IsZero()
}

// MarshalJSON implements the json.Marshaler interface.
func (d Datetime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(time.Time(d).UTC().Format(isoLayout))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
//
// Accepted values are RFC3339 strings with or without fractional seconds, the same
// without a zone (read as UTC), and Unix epochs in milliseconds. Anything else,
// including null, leaves the zero time rather than failing the enclosing document.
func (d *Datetime) UnmarshalJSON(text []byte) error {
	*d = Datetime{}

	text = bytes.TrimSpace(text)
	if len(text) == 0 || bytes.Equal(text, []byte("null")) {
		return nil
	}

	var ms json.Number
	if err := json.Unmarshal(text, &ms); err == nil {
		if n, err := ms.Float64(); err == nil {
			*d = Datetime(time.UnixMilli(int64(n)).UTC())
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(text, &s); err != nil {
		return nil
	}

	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*d = Datetime(t)
			return nil
		}
	}
	return nil
}

// Brazilian formats the datetime the way pt-BR locales display it, in loc.
// A nil loc uses the local timezone.
func (d Datetime) Brazilian(loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.Time(d).In(loc).Format(brazilLayout)
}

// String implements the fmt.Stringer interface.
func (d Datetime) String() string {
	return time.Time(d).UTC().Format(isoLayout)
}
