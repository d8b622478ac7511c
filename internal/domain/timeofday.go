package domain

import "fmt"

// TimeOfDay is a zero-padded "HH:MM" clock time within a single calendar day.
// Zero-padding makes lexical comparison identical to chronological comparison,
// so the ordinary string operators order TimeOfDay values correctly.
// There is no cross-midnight reasoning anywhere in the service.
type TimeOfDay string

// ParseTimeOfDay validates s as a zero-padded "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return "", fmt.Errorf("invalid time of day %q: want HH:MM", s)
	}
	for _, i := range [4]int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return "", fmt.Errorf("invalid time of day %q: want HH:MM", s)
		}
	}
	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')
	if hour > 23 || minute > 59 {
		return "", fmt.Errorf("invalid time of day %q: out of range", s)
	}
	return TimeOfDay(s), nil
}

// After reports whether t is strictly later in the day than o.
func (t TimeOfDay) After(o TimeOfDay) bool { return t > o }

// Before reports whether t is strictly earlier in the day than o.
func (t TimeOfDay) Before(o TimeOfDay) bool { return t < o }

func (t TimeOfDay) String() string { return string(t) }
