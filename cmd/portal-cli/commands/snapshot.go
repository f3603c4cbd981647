package commands

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"aiubportal-backend/lib/configutil"
	"aiubportal-backend/lib/scrapers/aiub"
	"aiubportal-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(snapshotCmd)
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Scrapes the academic state of the configured student and prints it.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := configutil.ReadConfig[Config]("config.json5")
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}

		service := newService()

		if !service.RestoreSession(cmd.Context(), cfg.Username) {
			slog.Info("no usable saved session, logging in", "username", cfg.Username)
			outcome := authenticate(cmd.Context(), service, cfg.Username, cfg.Password)
			if outcome.Status != aiub.StatusAuthenticated {
				serviceutil.Fatal("login failed", fmt.Errorf("%s: %s", outcome.Status, outcome.Detail))
			}
		}

		t1 := time.Now()
		snapshot, err := service.FetchStudentSnapshot(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to fetch snapshot", err)
		}
		slog.Info(
			"scraped snapshot",
			"user", snapshot.User,
			"semester", snapshot.CurrentSemester,
			"seconds", time.Since(t1).Seconds(),
		)

		renderUnlocked(snapshot)
		renderHistory(snapshot)
		renderSchedule(snapshot)
	},
}

func newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.SetTitle(title)
	return t
}

func sortedKeys[V any](m map[string]V) []string {
	var keys []string
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func renderUnlocked(snapshot aiub.StudentSnapshot) {
	t := newTable("Unlocked courses")
	t.AppendHeader(table.Row{"Code", "Course", "Credit", "Prerequisites", "Retake"})

	for _, code := range sortedKeys(snapshot.Unlocked) {
		course := snapshot.Unlocked[code]
		retake := ""
		if course.Retake {
			retake = "yes"
		}
		t.AppendRow(table.Row{
			code,
			course.Name,
			course.Credit,
			strings.Join(course.Prerequisites, ", "),
			retake,
		})
	}
	t.Render()
}

func renderHistory(snapshot aiub.StudentSnapshot) {
	t := newTable("Course history")
	t.AppendHeader(table.Row{"Code", "Course", "Status", "Grade", "Semester"})

	for _, code := range sortedKeys(snapshot.Buckets.Completed) {
		rec := snapshot.Buckets.Completed[code]
		t.AppendRow(table.Row{code, rec.Name, "completed", rec.Grade, rec.Semester})
	}
	for _, code := range sortedKeys(snapshot.Buckets.CurrentSemester) {
		rec := snapshot.Buckets.CurrentSemester[code]
		t.AppendRow(table.Row{code, rec.Name, "in progress", rec.Grade, snapshot.CurrentSemester})
	}
	for _, code := range sortedKeys(snapshot.Buckets.PreRegistered) {
		rec := snapshot.Buckets.PreRegistered[code]
		t.AppendRow(table.Row{code, rec.Name, "pre-registered", "", rec.Semester})
	}
	t.Render()
}

var weekdays = []string{
	"Sunday", "Monday", "Tuesday", "Wednesday",
	"Thursday", "Friday", "Saturday",
}

func renderSchedule(snapshot aiub.StudentSnapshot) {
	for _, semester := range snapshot.Semesters {
		routine := snapshot.Schedule[semester]
		if len(routine) == 0 {
			continue
		}

		t := newTable("Routine: " + semester)
		t.AppendHeader(table.Row{"Day", "Time", "Course", "Section", "Type", "Room"})

		for _, day := range weekdays {
			times := routine[day]
			for _, at := range sortedKeys(times) {
				slot := times[at]
				t.AppendRow(table.Row{
					day, at,
					slot.CourseName, slot.Section, slot.Type, slot.Room,
				})
			}
		}
		t.Render()
	}
}
