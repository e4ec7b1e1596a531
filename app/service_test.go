package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tqsched/tq/infra/history"
)

func writeProject(t *testing.T, dir, historyPath string) string {
	t.Helper()
	content := `start: "2014-05-11"
working_hours:
  - hours: 2
tasks:
  - description: t1
    effort: 0.5
  - description: t2
    effort: "2"
history:
  driver: jsonl
  path: ` + historyPath + "\n"
	path := filepath.Join(dir, "project.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestServiceReplan(t *testing.T) {
	dir := t.TempDir()
	historyPath := filepath.Join(dir, "runs.jsonl")
	project := writeProject(t, dir, historyPath)
	output := filepath.Join(dir, "bookings.tsv")

	svc, err := New(project, output, "bookings")
	require.NoError(t, err)
	defer func() { assert.NoError(t, svc.Close()) }()

	require.NoError(t, svc.Replan(context.Background()))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	want := "2014-05-11\t0.5\tt1\n" +
		"2014-05-11\t1.5\tt2\n" +
		"2014-05-12\t0.5\tt2\n"
	assert.Equal(t, want, string(data))

	store, err := history.NewJSONLStore(historyPath)
	require.NoError(t, err)
	runs, err := store.Runs(context.Background(), history.Query{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, project, runs[0].Source)
	assert.Len(t, runs[0].Plan.Days, 2)
}

func TestServiceRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	project := writeProject(t, dir, filepath.Join(dir, "runs.jsonl"))
	_, err := New(project, "", "xml")
	assert.Error(t, err)
}

func TestServiceReplanSurfacesPlanningErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.yaml")
	// no working-hours rule matches the start date
	content := `start: "2014-05-11"
working_hours:
  - hours: 2
    on: "2014-06-01"
tasks:
  - description: t1
    effort: 1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	svc, err := New(path, filepath.Join(dir, "out.tsv"), "dates")
	require.NoError(t, err)
	defer func() { assert.NoError(t, svc.Close()) }()

	err = svc.Replan(context.Background())
	assert.Error(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "out.tsv"))
	assert.True(t, os.IsNotExist(statErr), "failed plan must not write a report")
}
