package aiub

import (
	"bytes"
	"context"
	"regexp"
	"strings"

	"aiubportal-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// ValidGrades is the portal's fixed grade scale. "-" is a placeholder
// for an attempt whose result is still pending.
var ValidGrades = []string{"A+", "A", "B+", "B", "C+", "C", "D+", "D", "F"}

func isValidGrade(grade string) bool {
	for _, g := range ValidGrades {
		if g == grade {
			return true
		}
	}
	return false
}

type CompletionRecord struct {
	Name     string
	Grade    string
	Semester string
	// Credit is backfilled from the catalog by ResolveUnlocked.
	Credit int
}

// CourseBuckets classifies every course code from the grade report
// into exactly one of three disjoint buckets.
type CourseBuckets struct {
	Completed       map[string]CompletionRecord
	CurrentSemester map[string]CompletionRecord
	PreRegistered   map[string]CompletionRecord
}

func NewCourseBuckets() CourseBuckets {
	return CourseBuckets{
		Completed:       map[string]CompletionRecord{},
		CurrentSemester: map[string]CompletionRecord{},
		PreRegistered:   map[string]CompletionRecord{},
	}
}

// attempts look like "(Fall 2023)[B+]" concatenated oldest to newest
var attemptRegex = regexp.MustCompile(`\(([^)]+)\)\s*\[([^\]]+)\]`)

// FetchGradeReport classifies every row of the by-curriculum grade
// report. Only the last attempt of a course decides its bucket; a
// course being retaken this semester additionally surfaces its most
// recent graded attempt as a Completed entry.
func (c *Client) FetchGradeReport(ctx context.Context, currentSemester string) (CourseBuckets, error) {
	ctx, span := tracer.Start(ctx, "client:FetchGradeReport")
	defer span.End()

	buckets := NewCourseBuckets()

	res, err := c.Http.R().
		SetContext(ctx).
		Get("/Student/GradeReport/ByCurriculum")
	if err != nil {
		return buckets, err
	}
	if !isStudentUrl(res.RawResponse.Request.URL.String()) {
		return buckets, ErrSessionExpired
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return buckets, err
	}

	doc.Find("table").Each(func(ti int, table *goquery.Selection) {
		// the first table on the page is a legend, not course data
		if ti == 0 {
			return
		}
		table.Find("tr").Each(func(ri int, row *goquery.Selection) {
			if ri == 0 {
				return
			}
			classifyGradeRow(row, currentSemester, buckets)
		})
	})

	return buckets, nil
}

func classifyGradeRow(row *goquery.Selection, currentSemester string, buckets CourseBuckets) {
	cells := row.Find("td")
	if cells.Length() < 3 {
		return
	}
	results := htmlutil.CleanText(cells.Eq(2).Text())
	if results == "" {
		return
	}

	code := htmlutil.CleanText(cells.Eq(0).Text())
	name := htmlutil.CleanText(cells.Eq(1).Text())

	matches := attemptRegex.FindAllStringSubmatch(results, -1)
	if len(matches) == 0 {
		return
	}

	last := matches[len(matches)-1]
	semester := strings.TrimSpace(last[1])
	grade := strings.TrimSpace(last[2])

	if grade == "-" {
		if semester != currentSemester {
			buckets.PreRegistered[code] = CompletionRecord{
				Name:     name,
				Grade:    "-",
				Semester: semester,
			}
			return
		}

		// retake in progress: keep the most recent graded attempt too
		for i := len(matches) - 2; i >= 0; i-- {
			prevGrade := strings.TrimSpace(matches[i][2])
			if isValidGrade(prevGrade) {
				buckets.Completed[code] = CompletionRecord{
					Name:     name,
					Grade:    prevGrade,
					Semester: strings.TrimSpace(matches[i][1]),
				}
				break
			}
		}
		buckets.CurrentSemester[code] = CompletionRecord{Name: name, Grade: "-"}
		return
	}

	if isValidGrade(grade) {
		buckets.Completed[code] = CompletionRecord{
			Name:     name,
			Grade:    grade,
			Semester: semester,
		}
	}
}
