package aiub

import (
	"bytes"
	"context"
	"regexp"
	"strings"

	"aiubportal-backend/lib/classtime"
	"aiubportal-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

type ScheduleSlot struct {
	CourseName string
	ClassId    string
	Section    string
	Credit     int
	Type       string
	Room       string
}

// Routine maps full day name -> display time range -> slot.
type Routine map[string]map[string]ScheduleSlot

// class links look like "12345-COURSE NAME [AB] [C1]"; the last
// bracket is the section when two are present
var courseDetailsRegex = regexp.MustCompile(`^(\d+)-(.+?)\s+\[([A-Z0-9]+)\](?:\s+\[([A-Z0-9]+)\])?$`)

// FetchRoutine scrapes one semester's registration page into a weekly
// routine. A page without the expected tables yields an empty routine,
// not an error.
func (c *Client) FetchRoutine(ctx context.Context, query string) (Routine, error) {
	ctx, span := tracer.Start(ctx, "client:FetchRoutine")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		Get("/Student/Registration")
	if err != nil {
		return Routine{}, err
	}
	if !isStudentUrl(res.RawResponse.Request.URL.String()) {
		return Routine{}, ErrSessionExpired
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return Routine{}, err
	}
	return parseRegistrationTable(doc), nil
}

func parseRegistrationTable(doc *goquery.Document) Routine {
	routine := Routine{}

	tables := doc.Find("table")
	if tables.Length() < 2 {
		return routine
	}

	tables.Eq(1).Find("tr").Each(func(_ int, row *goquery.Selection) {
		cell := row.Find("td").First()
		if cell.Length() == 0 || strings.TrimSpace(cell.Text()) == "" {
			return
		}
		link := cell.Find("a").First()
		if link.Length() == 0 {
			return
		}

		classId, courseName, section := parseCourseDetails(htmlutil.CleanText(link.Text()))

		credit := 0
		creditCell := cell.Next()
		if creditCell.Length() > 0 {
			credit = maxIntToken(strings.Split(htmlutil.CleanText(creditCell.Text()), "-"))
		}

		cell.Find("div span").Each(func(_ int, span *goquery.Selection) {
			if len(span.Nodes) == 0 {
				return
			}
			text := htmlutil.GetText(span.Nodes[0])
			if !strings.Contains(text, "Time") {
				return
			}
			slot, ok := classtime.Parse(text)
			if !ok {
				return
			}

			day := routine[slot.Day]
			if day == nil {
				day = map[string]ScheduleSlot{}
				routine[slot.Day] = day
			}
			day[slot.Time] = ScheduleSlot{
				CourseName: courseName,
				ClassId:    classId,
				Section:    section,
				Credit:     credit,
				Type:       slot.Type,
				Room:       slot.Room,
			}
		})
	})

	return routine
}

func parseCourseDetails(text string) (classId, courseName, section string) {
	match := courseDetailsRegex.FindStringSubmatch(text)
	if match == nil {
		return "", "", ""
	}
	classId = match[1]
	courseName = titleCase(match[2])
	if match[4] != "" {
		section = match[4]
	} else {
		section = match[3]
	}
	return classId, courseName, section
}
