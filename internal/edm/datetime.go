package edm

import (
	"encoding/json"
	"fmt"
	"time"
)

func init() {
	RegisterType("Edm.DateTimeOffset", NewDateTimeOffset)
	RegisterType("Edm.Date", NewDate)
	RegisterType("Edm.TimeOfDay", NewTimeOfDay)
}

// dateTimeLayouts lists the literal formats accepted for Edm.DateTimeOffset,
// tried in order. RFC3339 with and without fractional seconds covers what a
// database driver's time.Time.String() or a JSON request body produces.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

// DateTimeOffset represents an Edm.DateTimeOffset value: a point in time
// with an offset, mirroring FromGoType's time.Time mapping.
type DateTimeOffset struct {
	value  time.Time
	isNull bool
	facets Facets
}

// NewDateTimeOffset creates a new Edm.DateTimeOffset from a value.
func NewDateTimeOffset(value interface{}, facets Facets) (Type, error) {
	if value == nil {
		return &DateTimeOffset{isNull: true, facets: facets}, nil
	}

	var t time.Time
	switch v := value.(type) {
	case time.Time:
		t = v
	case *time.Time:
		if v == nil {
			return &DateTimeOffset{isNull: true, facets: facets}, nil
		}
		t = *v
	case string:
		parsed, err := parseDateTimeString(v)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as Edm.DateTimeOffset: %w", v, err)
		}
		t = parsed
	default:
		return nil, fmt.Errorf("cannot convert %T to Edm.DateTimeOffset", value)
	}

	return &DateTimeOffset{value: t, facets: facets}, nil
}

func parseDateTimeString(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, lastErr
}

func (d *DateTimeOffset) TypeName() string { return "Edm.DateTimeOffset" }
func (d *DateTimeOffset) IsNull() bool     { return d.isNull }
func (d *DateTimeOffset) Value() interface{} {
	if d.isNull {
		return nil
	}
	return d.value
}
func (d *DateTimeOffset) String() string {
	if d.isNull {
		return "null"
	}
	return d.value.Format(time.RFC3339Nano)
}
func (d *DateTimeOffset) Validate() error               { return nil }
func (d *DateTimeOffset) SetFacets(facets Facets) error { d.facets = facets; return nil }
func (d *DateTimeOffset) GetFacets() Facets             { return d.facets }

func (d *DateTimeOffset) MarshalJSON() ([]byte, error) {
	if d.isNull {
		return []byte("null"), nil
	}
	return json.Marshal(d.value.Format(time.RFC3339Nano))
}

func (d *DateTimeOffset) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		d.isNull = true
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := parseDateTimeString(s)
	if err != nil {
		return err
	}
	d.value = t
	d.isNull = false
	return nil
}

// dateLayout is the OData Edm.Date literal format: calendar date, no time.
const dateLayout = "2006-01-02"

// Date represents an Edm.Date value: a calendar date with no time-of-day
// or offset component.
type Date struct {
	value  time.Time
	isNull bool
	facets Facets
}

// NewDate creates a new Edm.Date from a value, truncating any time-of-day
// component a time.Time carries.
func NewDate(value interface{}, facets Facets) (Type, error) {
	if value == nil {
		return &Date{isNull: true, facets: facets}, nil
	}

	var t time.Time
	switch v := value.(type) {
	case time.Time:
		t = v
	case *time.Time:
		if v == nil {
			return &Date{isNull: true, facets: facets}, nil
		}
		t = *v
	case string:
		parsed, err := time.Parse(dateLayout, v)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as Edm.Date: %w", v, err)
		}
		t = parsed
	default:
		return nil, fmt.Errorf("cannot convert %T to Edm.Date", value)
	}

	year, month, day := t.Date()
	return &Date{value: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), facets: facets}, nil
}

func (d *Date) TypeName() string { return "Edm.Date" }
func (d *Date) IsNull() bool     { return d.isNull }
func (d *Date) Value() interface{} {
	if d.isNull {
		return nil
	}
	return d.value
}
func (d *Date) String() string {
	if d.isNull {
		return "null"
	}
	return d.value.Format(dateLayout)
}
func (d *Date) Validate() error               { return nil }
func (d *Date) SetFacets(facets Facets) error { d.facets = facets; return nil }
func (d *Date) GetFacets() Facets             { return d.facets }

func (d *Date) MarshalJSON() ([]byte, error) {
	if d.isNull {
		return []byte("null"), nil
	}
	return json.Marshal(d.value.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		d.isNull = true
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.value = t
	d.isNull = false
	return nil
}

// timeOfDayLayout is the OData Edm.TimeOfDay literal format.
const timeOfDayLayout = "15:04:05.999999999"

// TimeOfDay represents an Edm.TimeOfDay value: a clock time with no date or
// offset component.
type TimeOfDay struct {
	value  time.Duration // offset since midnight
	isNull bool
	facets Facets
}

// NewTimeOfDay creates a new Edm.TimeOfDay from a value.
func NewTimeOfDay(value interface{}, facets Facets) (Type, error) {
	if value == nil {
		return &TimeOfDay{isNull: true, facets: facets}, nil
	}

	var d time.Duration
	switch v := value.(type) {
	case time.Duration:
		d = v
	case time.Time:
		d = durationSinceMidnight(v)
	case string:
		t, err := time.Parse(timeOfDayLayout, v)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as Edm.TimeOfDay: %w", v, err)
		}
		d = durationSinceMidnight(t)
	default:
		return nil, fmt.Errorf("cannot convert %T to Edm.TimeOfDay", value)
	}

	if d < 0 || d >= 24*time.Hour {
		return nil, fmt.Errorf("value %s out of range for Edm.TimeOfDay", d)
	}

	return &TimeOfDay{value: d, facets: facets}, nil
}

func durationSinceMidnight(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}

func (t *TimeOfDay) TypeName() string { return "Edm.TimeOfDay" }
func (t *TimeOfDay) IsNull() bool     { return t.isNull }
func (t *TimeOfDay) Value() interface{} {
	if t.isNull {
		return nil
	}
	return t.value
}
func (t *TimeOfDay) String() string {
	if t.isNull {
		return "null"
	}
	return time.Time{}.Add(t.value).Format(timeOfDayLayout)
}
func (t *TimeOfDay) Validate() error               { return nil }
func (t *TimeOfDay) SetFacets(facets Facets) error { t.facets = facets; return nil }
func (t *TimeOfDay) GetFacets() Facets             { return t.facets }

func (t *TimeOfDay) MarshalJSON() ([]byte, error) {
	if t.isNull {
		return []byte("null"), nil
	}
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.isNull = true
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(timeOfDayLayout, s)
	if err != nil {
		return err
	}
	t.value = durationSinceMidnight(parsed)
	t.isNull = false
	return nil
}
