package aiub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFetchGradeReport(t *testing.T) {
	client := newAuthenticatedClient(t)

	buckets, err := client.FetchGradeReport(context.Background(), "Fall 2023-2024")
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(t, map[string]CompletionRecord{
		"CSC1101": {Name: "INTRODUCTION TO COMPUTER STUDIES", Grade: "A", Semester: "Fall 2021-2022"},
		// retake in progress: the prior graded attempt survives
		"CSC1102": {Name: "INTRODUCTION TO PROGRAMMING", Grade: "D", Semester: "Spring 2022-2023"},
		// a withdrawn attempt is not a grade, the later one decides
		"PHY1101": {Name: "PHYSICS 1", Grade: "B+", Semester: "Spring 2022-2023"},
	}, buckets.Completed)

	require.Equal(t, map[string]CompletionRecord{
		"CSC1102": {Name: "INTRODUCTION TO PROGRAMMING", Grade: "-"},
	}, buckets.CurrentSemester)

	// the pre-registration keeps its target semester for display
	require.Equal(t, map[string]CompletionRecord{
		"CSC2201": {Name: "DATA STRUCTURE", Grade: "-", Semester: "Spring 2023-2024"},
	}, buckets.PreRegistered)
}

func TestValidGrades(t *testing.T) {
	for _, g := range ValidGrades {
		require.True(t, isValidGrade(g))
	}
	require.False(t, isValidGrade("-"))
	require.False(t, isValidGrade("W"))
	require.False(t, isValidGrade("I"))
	require.False(t, isValidGrade(""))
}
