package aiub

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// StudentSnapshot is everything the portal knows about a student,
// assembled in one pass.
type StudentSnapshot struct {
	User            string
	CurrentSemester string
	Semesters       []string
	Schedule        map[string]Routine
	Catalog         map[string]Course
	Buckets         CourseBuckets
	Unlocked        map[string]UnlockedCourse
}

// FetchSnapshot reads the landing page, then fans out the curriculum,
// grade report and per-semester registration fetches concurrently over
// the shared session (cookies are only read at this point). Reader
// failures degrade to empty partial data; only an expired session
// fails the snapshot as a whole.
func (c *Client) FetchSnapshot(ctx context.Context) (StudentSnapshot, error) {
	ctx, span := tracer.Start(ctx, "client:FetchSnapshot")
	defer span.End()

	page, err := c.fetchStudentPage(ctx)
	if err != nil {
		return StudentSnapshot{}, err
	}

	snapshot := StudentSnapshot{
		User:            page.User,
		CurrentSemester: page.CurrentSemester,
		Schedule:        map[string]Routine{},
		Catalog:         map[string]Course{},
		Buckets:         NewCourseBuckets(),
	}
	for _, opt := range page.Semesters {
		snapshot.Semesters = append(snapshot.Semesters, opt.Name)
	}

	var errList []error
	lock := sync.Mutex{}
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()

		catalog, err := c.FetchCurriculum(ctx)
		lock.Lock()
		defer lock.Unlock()
		if err != nil {
			slog.WarnContext(ctx, "curriculum fetch incomplete", "err", err)
			errList = append(errList, err)
		}
		if catalog != nil {
			snapshot.Catalog = catalog
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()

		buckets, err := c.FetchGradeReport(ctx, page.CurrentSemester)
		lock.Lock()
		defer lock.Unlock()
		if err != nil {
			slog.WarnContext(ctx, "grade report fetch incomplete", "err", err)
			errList = append(errList, err)
		}
		snapshot.Buckets = buckets
	}()

	for _, opt := range page.Semesters {
		wg.Add(1)
		go func(opt semesterOption) {
			defer wg.Done()

			routine, err := c.FetchRoutine(ctx, opt.Query)
			lock.Lock()
			defer lock.Unlock()
			if err != nil {
				slog.WarnContext(
					ctx, "registration fetch incomplete",
					"semester", opt.Name,
					"err", err,
				)
				errList = append(errList, err)
				return
			}
			// semesters from before registration opened have no
			// course table and no routine worth keeping
			if len(routine) == 0 {
				return
			}
			snapshot.Schedule[opt.Name] = routine
		}(opt)
	}

	wg.Wait()

	for _, err := range errList {
		if errors.Is(err, ErrSessionExpired) {
			return snapshot, ErrSessionExpired
		}
	}

	snapshot.Unlocked = ResolveUnlocked(snapshot.Catalog, snapshot.Buckets)
	return snapshot, nil
}
