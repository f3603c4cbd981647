package aiub

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"aiubportal-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// Course is a curriculum catalog entry. A code carrying a '#' or '*'
// marker never reaches the catalog, see parseCurriculumTable.
type Course struct {
	Code          string
	Name          string
	Credit        int
	Prerequisites []string
}

// FetchCurriculum discovers every curriculum referenced on the
// curriculum index page and flattens their course tables into a single
// catalog keyed by course code. Individual curriculum failures
// degrade to a partial catalog plus a joined error.
func (c *Client) FetchCurriculum(ctx context.Context) (map[string]Course, error) {
	ctx, span := tracer.Start(ctx, "client:FetchCurriculum")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get("/Student/Curriculum")
	if err != nil {
		return map[string]Course{}, err
	}
	if !isStudentUrl(res.RawResponse.Request.URL.String()) {
		return map[string]Course{}, ErrSessionExpired
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return map[string]Course{}, err
	}

	seen := map[string]bool{}
	var ids []string
	doc.Find("[curriculumid]").Each(func(_ int, sel *goquery.Selection) {
		id := sel.AttrOr("curriculumid", "")
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		ids = append(ids, id)
	})

	catalog := map[string]Course{}
	var errList []error
	lock := sync.Mutex{}
	wg := sync.WaitGroup{}

	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()

			courses, err := c.fetchCurriculumCourses(ctx, id)
			if err != nil {
				slog.ErrorContext(ctx, "failed to fetch curriculum", "id", id, "err", err)
				lock.Lock()
				errList = append(errList, err)
				lock.Unlock()
				return
			}

			lock.Lock()
			for _, course := range courses {
				catalog[course.Code] = course
			}
			lock.Unlock()
		}(id)
	}
	wg.Wait()

	return catalog, errors.Join(errList...)
}

func (c *Client) fetchCurriculumCourses(ctx context.Context, id string) ([]Course, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		SetQueryParam("ID", id).
		Get("/Common/Curriculum")
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, err
	}
	return parseCurriculumTable(doc), nil
}

func parseCurriculumTable(doc *goquery.Document) []Course {
	var courses []Course
	doc.Find("table.table-bordered tr").Each(func(i int, row *goquery.Selection) {
		// first row is the header
		if i == 0 {
			return
		}
		cells := row.Find("td")
		if cells.Length() < 4 {
			return
		}

		code := htmlutil.CleanText(cells.Eq(0).Text())
		name := htmlutil.CleanText(cells.Eq(1).Text())
		if strings.ContainsAny(code, "#*") || name == "INTERNSHIP" {
			return
		}

		var prerequisites []string
		cells.Eq(3).Find("li").Each(func(_ int, item *goquery.Selection) {
			prerequisites = append(prerequisites, htmlutil.CleanText(item.Text()))
		})

		courses = append(courses, Course{
			Code:          code,
			Name:          name,
			Credit:        maxIntToken(strings.Fields(cells.Eq(2).Text())),
			Prerequisites: prerequisites,
		})
	})
	return courses
}
