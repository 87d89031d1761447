// Package models defines the raw input records and the render-ready view model.
package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// OpenAllDayLabel is the canonical label for a day with no closing time.
const OpenAllDayLabel = "Open 24/7"

// Weekdays lists the canonical day keys in display order.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Restaurant is the normalized view model of one venue.
type Restaurant struct {
	Key             string         `json:"key"`
	Slug            string         `json:"slug"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	Logo            Image          `json:"logo"`
	LogoPlaceholder string         `json:"logoPlaceholder"`
	Banner          Image          `json:"banner"`
	CreatedAt       Date           `json:"createdAt"`
	UpdatedAt       Date           `json:"updatedAt"`
	Hours           Hours          `json:"hours"`
	PaymentMethods  map[string]any `json:"paymentMethods"`
	Tags            []string       `json:"tags"`
	OfficialURL     string         `json:"officialUrl,omitempty"`
	OrderURL        string         `json:"orderUrl,omitempty"`
	Reviews         []Review       `json:"reviews"`
	MediaPrefix     string         `json:"mediaPrefix"`
	SitePrefix      string         `json:"sitePrefix"`
	Fields          Record         `json:"fields"`
}

// Image is a resolved image reference.
type Image struct {
	Src         string `json:"src"`
	Remote      bool   `json:"remote,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// Empty reports whether nothing could be resolved.
func (i Image) Empty() bool {
	return i.Src == ""
}

// Card is the summary of a restaurant shown on the index page.
type Card struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
	Logo        string `json:"logo"`
}

// Review is one review attached to a restaurant.
type Review struct {
	Fields    Record `json:"fields"`
	Date      Date   `json:"parsedDate"`
	Timestamp *int64 `json:"timestamp"`
}

// Field returns a review field as text, for templates.
func (r Review) Field(key string) string {
	return r.Fields.Text(key)
}

// Date is an optionally present point in time.
type Date struct {
	Time  time.Time
	Valid bool
}

// UnixMilli returns the epoch milliseconds, or nil when the date is not valid.
func (d Date) UnixMilli() *int64 {
	if !d.Valid {
		return nil
	}

	ms := d.Time.UnixMilli()

	return &ms
}

// Format formats a valid date with layout and returns "" otherwise.
func (d Date) Format(layout string) string {
	if !d.Valid {
		return ""
	}

	return d.Time.Format(layout)
}

// MarshalJSON encodes an invalid date as null.
func (d Date) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}

	return json.Marshal(d.Time.Format(time.RFC3339))
}

// DayHours is the normalized opening information for one day.
//
// A day is absent when no key applied to it, closed when the applying key held
// null, and otherwise carries either a single Value or a list of Intervals.
type DayHours struct {
	Day       string
	Set       bool
	Value     string
	Intervals []string
}

// Absent reports whether no hours key applied to the day.
func (d DayHours) Absent() bool {
	return !d.Set
}

// Closed reports whether the day was explicitly marked closed.
func (d DayHours) Closed() bool {
	return d.Set && d.Value == "" && d.Intervals == nil
}

// OpenAllDay reports whether the day normalized to OpenAllDayLabel.
func (d DayHours) OpenAllDay() bool {
	return d.Value == OpenAllDayLabel
}

// Title returns the capitalized day name.
func (d DayHours) Title() string {
	if d.Day == "" {
		return ""
	}

	return strings.ToUpper(d.Day[:1]) + d.Day[1:]
}

// Display renders the day for humans.
func (d DayHours) Display() string {
	switch {
	case d.Absent():
		return ""
	case d.Closed():
		return "Closed"
	case d.Intervals != nil:
		return strings.Join(d.Intervals, ", ")
	default:
		return d.Value
	}
}

// MarshalJSON encodes absent and closed days as null, single values as a
// string and interval lists as an array.
func (d DayHours) MarshalJSON() ([]byte, error) {
	switch {
	case d.Absent(), d.Closed():
		return []byte("null"), nil
	case d.Intervals != nil:
		return json.Marshal(d.Intervals)
	default:
		return json.Marshal(d.Value)
	}
}

// Hours holds one DayHours per canonical weekday, in Weekdays order.
type Hours []DayHours

// Get returns the entry for day.
func (h Hours) Get(day string) DayHours {
	for _, d := range h {
		if d.Day == day {
			return d
		}
	}

	return DayHours{Day: day}
}

// Known reports whether any day carries information.
func (h Hours) Known() bool {
	for _, d := range h {
		if d.Set {
			return true
		}
	}

	return false
}

// OpenDays counts the days that are neither absent nor closed.
func (h Hours) OpenDays() int {
	n := 0

	for _, d := range h {
		if d.Set && !d.Closed() {
			n++
		}
	}

	return n
}

// MarshalJSON encodes the hours as an object keyed by day in weekday order.
func (h Hours) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, d := range h {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(d.Day)
		if err != nil {
			return nil, err
		}

		val, err := d.MarshalJSON()
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}
