package syncer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/meeting-flow/internal/logger"
	"github.com/nguyentantai21042004/meeting-flow/internal/models"
	"github.com/nguyentantai21042004/meeting-flow/internal/registry"
	"github.com/nguyentantai21042004/meeting-flow/internal/router"
	"github.com/nguyentantai21042004/meeting-flow/internal/store"
)

type fakeStore struct {
	existing map[string][]string
	failOn   map[string]bool
	queryErr map[string]bool
	created  map[string][]store.Record
	queried  map[string]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		existing: make(map[string][]string),
		failOn:   make(map[string]bool),
		queryErr: make(map[string]bool),
		created:  make(map[string][]store.Record),
		queried:  make(map[string]int),
	}
}

func (f *fakeStore) CreateRecord(ctx context.Context, id string, rec store.Record) error {
	if f.failOn[id] {
		return errors.New("validation_error")
	}
	f.created[id] = append(f.created[id], rec)
	return nil
}

func (f *fakeStore) QueryRecords(ctx context.Context, id string) ([]string, error) {
	f.queried[id]++
	if f.queryErr[id] {
		return nil, errors.New("unauthorized")
	}
	return f.existing[id], nil
}

func (f *fakeStore) InspectSchema(ctx context.Context, id string) (map[string]string, error) {
	return nil, nil
}

type countingRecorder map[string]int

func (c countingRecorder) ObserveWrite(destination, outcome string) {
	c[destination+"/"+outcome]++
}

func testRegistry() *registry.Registry {
	return registry.New([]models.Employee{
		{Name: "Sanya", Department: []string{router.Marketing, router.SocialMedia}},
		{Name: "Ravi", Department: []string{router.HR}},
		{Name: "Mei", Department: []string{router.Operations}},
		{Name: "Kai", Department: []string{router.Operations, "Project Management"}},
	})
}

func newExecutor(st *fakeStore, dests map[string]string, rec Recorder) *Executor {
	return New(router.New(testRegistry(), dests), st, dests, logger.Nop(), rec)
}

func TestRunCreatesAndSkipsDuplicates(t *testing.T) {
	st := newFakeStore()
	st.existing["db-hr"] = []string{"  Schedule Interviews "}
	dests := map[string]string{router.HR: "db-hr"}

	stats := newExecutor(st, dests, nil).Run(context.Background(), []models.Task{
		{Text: "schedule interviews", Assignee: "Ravi"},
		{Text: "Update handbook", Assignee: "Ravi"},
	})

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Synced)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 0, stats.Failed)
	assert.Equal(t, 1, stats.ByDestination[router.HR])
	require.Len(t, st.created["db-hr"], 1)
	assert.Equal(t, "Update handbook", st.created["db-hr"][0].Title)
	assert.Equal(t, store.InitialStatus, st.created["db-hr"][0].Status)
}

func TestRunSameTextTwiceInBatch(t *testing.T) {
	st := newFakeStore()
	dests := map[string]string{router.HR: "db-hr"}

	stats := newExecutor(st, dests, nil).Run(context.Background(), []models.Task{
		{Text: "Post the job ad", Assignee: "Ravi"},
		{Text: "post the job ad ", Assignee: "Ravi"},
	})

	assert.Equal(t, 1, stats.Synced)
	assert.Equal(t, 1, stats.Skipped)
	assert.Len(t, st.created["db-hr"], 1)
}

func TestRunCrossDestinationPartialFailure(t *testing.T) {
	st := newFakeStore()
	st.failOn["db-social"] = true
	dests := map[string]string{
		router.Marketing:   "db-mkt",
		router.SocialMedia: "db-social",
	}
	rec := countingRecorder{}

	stats := newExecutor(st, dests, rec).Run(context.Background(), []models.Task{
		{Text: "Launch the spring campaign", Assignee: "Sanya"},
	})

	assert.Equal(t, 1, stats.Synced)
	assert.Equal(t, 1, stats.CrossDestination)
	assert.Equal(t, 0, stats.Failed)
	assert.Equal(t, 1, stats.ByDestination[router.Marketing])
	assert.Zero(t, stats.ByDestination[router.SocialMedia])
	assert.Equal(t, 1, rec[router.Marketing+"/created"])
	assert.Equal(t, 1, rec[router.SocialMedia+"/failed"])
}

func TestRunAllWritesFail(t *testing.T) {
	st := newFakeStore()
	st.failOn["db-hr"] = true
	dests := map[string]string{router.HR: "db-hr"}

	stats := newExecutor(st, dests, nil).Run(context.Background(), []models.Task{
		{Text: "Renew benefits contract", Assignee: "Ravi"},
	})

	assert.Equal(t, 0, stats.Synced)
	assert.Equal(t, 1, stats.Failed)
}

func TestRunNoRouteNoDefault(t *testing.T) {
	st := newFakeStore()
	dests := map[string]string{router.HR: "db-hr"}

	stats := newExecutor(st, dests, nil).Run(context.Background(), []models.Task{
		{Text: "Water the plants", Assignee: "Nobody"},
	})

	assert.Equal(t, 1, stats.Failed)
	assert.Empty(t, st.created)
}

func TestRunFallsBackToDefault(t *testing.T) {
	st := newFakeStore()
	dests := map[string]string{models.DefaultDestination: "db-default"}

	stats := newExecutor(st, dests, nil).Run(context.Background(), []models.Task{
		{Text: "Water the plants", Assignee: "Nobody"},
	})

	assert.Equal(t, 1, stats.Synced)
	assert.Equal(t, 1, stats.ByDestination[models.DefaultDestination])
	assert.Len(t, st.created["db-default"], 1)
}

func TestRunSharedStoreWritesOnce(t *testing.T) {
	st := newFakeStore()
	dests := map[string]string{
		router.Operations:    "db-ops",
		"Project Management": "db-ops",
	}

	stats := newExecutor(st, dests, nil).Run(context.Background(), []models.Task{
		{Text: "Prepare the quarterly roadmap", Assignee: "Kai"},
	})

	assert.Equal(t, 1, st.queried["db-ops"])
	assert.Len(t, st.created["db-ops"], 1)
	assert.Equal(t, 1, stats.Synced)
	assert.Zero(t, stats.CrossDestination)
	assert.Equal(t, 1, stats.ByDestination[router.Operations])
	assert.Zero(t, stats.ByDestination["Project Management"])
}

func TestRunQueryFailureDisablesDedupForThatStore(t *testing.T) {
	st := newFakeStore()
	st.queryErr["db-hr"] = true
	st.existing["db-hr"] = []string{"Schedule interviews"}
	dests := map[string]string{router.HR: "db-hr"}

	stats := newExecutor(st, dests, nil).Run(context.Background(), []models.Task{
		{Text: "Schedule interviews", Assignee: "Ravi"},
	})

	assert.Equal(t, 1, stats.Synced)
	assert.Len(t, st.created["db-hr"], 1)
}

func TestRunEmptyTextIsSkipped(t *testing.T) {
	st := newFakeStore()
	dests := map[string]string{models.DefaultDestination: "db-default"}

	stats := newExecutor(st, dests, nil).Run(context.Background(), []models.Task{
		{Text: "   "},
	})

	assert.Equal(t, 1, stats.Skipped)
	assert.Empty(t, st.created)
}

func TestRunEmptyBatch(t *testing.T) {
	stats := newExecutor(newFakeStore(), map[string]string{router.HR: "db-hr"}, nil).Run(context.Background(), nil)
	assert.Equal(t, models.NewSyncStats(0), stats)
}

func TestRunLongTitleIsSkippedOnResync(t *testing.T) {
	st := newFakeStore()
	dests := map[string]string{router.HR: "db-hr"}
	long := "Review " + strings.Repeat("the hiring pipeline ", 150)
	tasks := []models.Task{{Text: long, Assignee: "Ravi"}}

	first := newExecutor(st, dests, nil).Run(context.Background(), tasks)
	require.Equal(t, 1, first.Synced)
	require.Len(t, st.created["db-hr"], 1)

	for _, rec := range st.created["db-hr"] {
		st.existing["db-hr"] = append(st.existing["db-hr"], rec.Title)
	}

	again := newExecutor(st, dests, nil).Run(context.Background(), tasks)
	assert.Equal(t, 1, again.Skipped)
	assert.Len(t, st.created["db-hr"], 1)
}
