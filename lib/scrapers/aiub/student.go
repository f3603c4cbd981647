package aiub

import (
	"bytes"
	"context"
	"regexp"
	"strings"

	"aiubportal-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

type semesterOption struct {
	Name  string
	Query string
}

type studentPage struct {
	User            string
	CurrentSemester string
	Semesters       []semesterOption
}

var semesterQueryRegex = regexp.MustCompile(`q=(.+)`)

// fetchStudentPage reads the landing page: display name, the semester
// the portal considers current, and the registration query parameter
// of every semester in the dropdown.
func (c *Client) fetchStudentPage(ctx context.Context) (studentPage, error) {
	ctx, span := tracer.Start(ctx, "client:fetchStudentPage")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get("/Student")
	if err != nil {
		return studentPage{}, err
	}
	if !isStudentUrl(res.RawResponse.Request.URL.String()) {
		return studentPage{}, ErrSessionExpired
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return studentPage{}, err
	}

	user := htmlutil.CleanText(doc.Find("a.navbar-link").First().Text())
	if user == "" {
		user = "Unknown"
	}
	// the portal renders "Last, First"
	if strings.Contains(user, ",") {
		parts := strings.SplitN(user, ",", 2)
		user = strings.TrimSpace(parts[1]) + " " + strings.TrimSpace(parts[0])
	}
	user = titleCase(user)

	current := htmlutil.CleanText(
		doc.Find("select#SemesterDropDown option[selected=selected]").First().Text(),
	)
	if current == "" {
		current = "Unknown"
	}

	var semesters []semesterOption
	doc.Find("select#SemesterDropDown option").Each(func(_ int, opt *goquery.Selection) {
		match := semesterQueryRegex.FindStringSubmatch(opt.AttrOr("value", ""))
		if match == nil {
			return
		}
		semesters = append(semesters, semesterOption{
			Name:  htmlutil.CleanText(opt.Text()),
			Query: match[1],
		})
	})

	return studentPage{
		User:            user,
		CurrentSemester: current,
		Semesters:       semesters,
	}, nil
}
