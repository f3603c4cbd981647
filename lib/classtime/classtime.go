// Package classtime parses the free-text schedule fragments found on the
// portal's registration pages, for example:
//
//	Time: (Lecture) Sun 8:00-9:30 Room: D-201
//
// into normalized day/time/room/type tuples.
package classtime

import (
	"regexp"
	"strconv"
	"strings"
)

type Slot struct {
	Type string
	Day  string
	Time string
	Room string
}

var dayNames = map[string]string{
	"Sun": "Sunday",
	"Mon": "Monday",
	"Tue": "Tuesday",
	"Wed": "Wednesday",
	"Thu": "Thursday",
	"Fri": "Friday",
	"Sat": "Saturday",
}

var timeTokenRegex = regexp.MustCompile(`\d{1,2}:\d{1,2}(?:\s?[ap]m|\s?[AP]M)?`)
var classTypeRegex = regexp.MustCompile(`\((.*?)\)`)
var dayRegex = regexp.MustCompile(`(Sun|Mon|Tue|Wed|Thu|Fri|Sat)`)
var roomRegex = regexp.MustCompile(`Room: (.*)`)
var clockRegex = regexp.MustCompile(`\d{1,2}:\d{1,2}`)

// Parse extracts a schedule slot from a free-text fragment. All four
// parts (a start and end time, a parenthesized class type, a day
// abbreviation and a room) are mandatory; a fragment missing any of
// them reports no match rather than a guess.
func Parse(fragment string) (Slot, bool) {
	times := timeTokenRegex.FindAllString(fragment, -1)
	if len(times) < 2 {
		return Slot{}, false
	}

	classType := classTypeRegex.FindStringSubmatch(fragment)
	day := dayRegex.FindStringSubmatch(fragment)
	room := roomRegex.FindStringSubmatch(fragment)
	if classType == nil || day == nil || room == nil {
		return Slot{}, false
	}

	fullDay, ok := dayNames[day[1]]
	if !ok {
		return Slot{}, false
	}

	return Slot{
		Type: classType[1],
		Day:  fullDay,
		Time: FormatTime(times[0]) + " - " + FormatTime(times[1]),
		Room: room[1],
	}, true
}

// FormatTime normalizes a clock token into 12-hour display form. A
// token that already carries an am/pm marker keeps its meridiem; a
// bare token is interpreted by 24-hour convention.
func FormatTime(token string) string {
	lower := strings.ToLower(token)
	hasMeridiem := strings.Contains(lower, "am") || strings.Contains(lower, "pm")

	clock := clockRegex.FindString(token)
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return token
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return token
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return token
	}

	if hasMeridiem {
		meridiem := "AM"
		if strings.Contains(lower, "pm") {
			meridiem = "PM"
		}
		return formatClock(hour, minute, meridiem)
	}

	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	if hour > 12 {
		hour -= 12
	} else if hour == 0 {
		hour = 12
	}
	return formatClock(hour, minute, meridiem)
}

func formatClock(hour, minute int, meridiem string) string {
	return strconv.Itoa(hour) + ":" + pad(minute) + " " + meridiem
}

func pad(minute int) string {
	if minute < 10 {
		return "0" + strconv.Itoa(minute)
	}
	return strconv.Itoa(minute)
}
