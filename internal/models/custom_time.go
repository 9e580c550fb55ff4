package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// FlexibleDate is a transaction date. Fixtures may carry either a plain
// "YYYY-MM-DD" or a full RFC3339 timestamp; both are kept as the UTC calendar
// day so same-day transactions compare equal.
type FlexibleDate struct {
	time.Time
}

// Date builds a FlexibleDate at midnight UTC.
func Date(year int, month time.Month, day int) FlexibleDate {
	return FlexibleDate{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its UTC calendar day.
func DateOf(t time.Time) FlexibleDate {
	u := t.UTC()
	return Date(u.Year(), u.Month(), u.Day())
}

func (f *FlexibleDate) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return fmt.Errorf("transaction date is required")
	}

	if t, err := time.Parse(dateLayout, s); err == nil {
		*f = DateOf(t)
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid transaction date %q: want YYYY-MM-DD or RFC3339", s)
	}
	*f = DateOf(t)
	return nil
}

func (f FlexibleDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Format(dateLayout))
}
