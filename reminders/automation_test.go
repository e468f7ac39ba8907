package reminders

import (
	"testing"

	"invoicehub-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCounter struct {
	counts map[string]int
}

func newFakeCounter() *fakeCounter { return &fakeCounter{counts: make(map[string]int)} }

func (c *fakeCounter) DailyCount(day string) (int, error) { return c.counts[day], nil }

func (c *fakeCounter) Increment(day string) error {
	c.counts[day]++
	return nil
}

func staleInvoice(id string) models.Document {
	return models.Document{
		Id:           id,
		Number:       "INV-" + id,
		DocumentType: models.TypeInvoice,
		Status:       string(models.Unpaid),
		DateIssued:   day(2026, 3, 1),
	}
}

func TestAutoRunnerSendsAndCounts(t *testing.T) {
	store := newFakeStore(staleInvoice("a"), staleInvoice("b"))
	counter := newFakeCounter()
	r := NewAutoRunner(store, counter, func(*models.Document) error { return nil })
	r.Now = fixedNow

	res, err := r.Run()

	require.NoError(t, err)
	assert.Equal(t, Result{Checked: 2, Sent: 2}, res)
	assert.Equal(t, 2, counter.counts["2026-03-10"])

	patch := store.patches["a"][0]
	require.NotNil(t, patch.ReminderCount)
	assert.Equal(t, 1, *patch.ReminderCount)
}

func TestAutoRunnerRespectsDailyCap(t *testing.T) {
	store := newFakeStore(staleInvoice("a"))
	counter := newFakeCounter()
	counter.counts["2026-03-10"] = MaxDailySends
	r := NewAutoRunner(store, counter, func(*models.Document) error {
		t.Fatal("send must not be called once the cap is reached")
		return nil
	})
	r.Now = fixedNow

	res, err := r.Run()

	require.NoError(t, err)
	assert.Equal(t, Result{}, res)
}

func TestAutoRunnerCapHitMidBatch(t *testing.T) {
	store := newFakeStore(staleInvoice("a"), staleInvoice("b"), staleInvoice("c"))
	counter := newFakeCounter()
	counter.counts["2026-03-10"] = MaxDailySends - 1
	r := NewAutoRunner(store, counter, func(*models.Document) error { return nil })
	r.Now = fixedNow

	res, err := r.Run()

	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent, "only one slot left under the cap")
}

func TestAutoRunnerSkipsCappedDocuments(t *testing.T) {
	capped := staleInvoice("a")
	capped.ReminderCount = MaxReminders

	store := newFakeStore(capped)
	r := NewAutoRunner(store, newFakeCounter(), func(*models.Document) error {
		t.Fatal("send must not be called")
		return nil
	})
	r.Now = fixedNow

	res, err := r.Run()

	require.NoError(t, err)
	assert.Equal(t, Result{Checked: 1}, res)
}
