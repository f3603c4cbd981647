package aiub

import "strings"

type UnlockedCourse struct {
	Name          string
	Credit        int
	Prerequisites []string
	Retake        bool
}

// ResolveUnlocked is the eligibility resolver: it combines the
// curriculum catalog with the grade buckets into the set of courses
// the student may register for next. It performs no I/O. As a side
// effect it backfills catalog credits onto Completed records.
//
// Two passes: first every course completed with exactly a "D" becomes
// a retake candidate, then every remaining catalog course is unlocked
// iff all of its prerequisites are completed or in progress. A
// pre-registered course is force-unlocked since the student already
// holds a seat in it.
func ResolveUnlocked(catalog map[string]Course, buckets CourseBuckets) map[string]UnlockedCourse {
	unlocked := map[string]UnlockedCourse{}

	for code, rec := range buckets.Completed {
		if rec.Grade != "D" {
			continue
		}
		course, ok := catalog[code]
		if !ok {
			continue
		}
		unlocked[code] = UnlockedCourse{
			Name:          rec.Name,
			Credit:        course.Credit,
			Prerequisites: course.Prerequisites,
			Retake:        true,
		}
	}

	for code, course := range catalog {
		if skipCourse(code, course, buckets, unlocked) {
			continue
		}
		if len(course.Prerequisites) == 0 || prerequisitesMet(course.Prerequisites, buckets) {
			unlocked[code] = UnlockedCourse{
				Name:          course.Name,
				Credit:        course.Credit,
				Prerequisites: course.Prerequisites,
				Retake:        false,
			}
		}
	}

	return unlocked
}

func skipCourse(code string, course Course, buckets CourseBuckets, unlocked map[string]UnlockedCourse) bool {
	if rec, ok := buckets.Completed[code]; ok {
		rec.Credit = course.Credit
		buckets.Completed[code] = rec
		return true
	}

	// the catalog already drops marked and internship courses, this is
	// a re-check in case the caller assembled it elsewhere
	if strings.ContainsAny(code, "#*") || course.Name == "INTERNSHIP" {
		return true
	}
	if _, ok := unlocked[code]; ok {
		return true
	}

	// an active attempt this semester blocks re-unlocking, unless it
	// was withdrawn or left incomplete
	if rec, ok := buckets.CurrentSemester[code]; ok {
		if course.Name == rec.Name && rec.Grade != "W" && rec.Grade != "I" {
			return true
		}
	}

	if _, ok := buckets.PreRegistered[code]; ok {
		unlocked[code] = UnlockedCourse{
			Name:          course.Name,
			Credit:        course.Credit,
			Prerequisites: course.Prerequisites,
			Retake:        false,
		}
		return true
	}

	return false
}

// registration in progress counts as satisfying a prerequisite
func prerequisitesMet(prerequisites []string, buckets CourseBuckets) bool {
	for _, code := range prerequisites {
		_, completed := buckets.Completed[code]
		_, inProgress := buckets.CurrentSemester[code]
		if !completed && !inProgress {
			return false
		}
	}
	return true
}
