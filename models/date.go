package models

import (
	"encoding/json"
	"time"
)

// DateLayout is the ISO-8601 calendar date layout used on the wire and in
// stored documents.
const DateLayout = time.DateOnly

// Date is a calendar date with no time or zone component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func ParseDate(value string) (Date, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) String() string {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format(DateLayout)
}

func (d *Date) UnmarshalJSON(input []byte) error {
	var value string
	if err := json.Unmarshal(input, &value); err != nil {
		return err
	}
	parsed, err := ParseDate(value)
	if err == nil {
		*d = parsed
	}
	return err
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}
