package aiub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFetchStudentPage(t *testing.T) {
	client := newAuthenticatedClient(t)

	page, err := client.fetchStudentPage(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(t, "John Doe", page.User)
	require.Equal(t, "Fall 2023-2024", page.CurrentSemester)
	require.Equal(t, []semesterOption{
		{Name: "Fall 2022-2023", Query: "aaa111"},
		{Name: "Fall 2023-2024", Query: "bbb222"},
	}, page.Semesters)
}

func TestFetchStudentPageExpiredSession(t *testing.T) {
	portal := newFakePortal("22-00000-1", "hunter2")
	client := newTestClient(t, portal)

	// never logged in: the probe gets bounced back to the login page
	_, err := client.fetchStudentPage(context.Background())
	require.ErrorIs(t, err, ErrSessionExpired)
}
