package reminders

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"invoicehub-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	docs     []models.Document
	patches  map[string][]models.DocumentPatch
	patchErr error
	listErr  error
}

func newFakeStore(docs ...models.Document) *fakeStore {
	return &fakeStore{docs: docs, patches: make(map[string][]models.DocumentPatch)}
}

func (s *fakeStore) ListDocuments() ([]models.Document, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.docs, nil
}

func (s *fakeStore) PatchDocument(id string, patch models.DocumentPatch) error {
	if s.patchErr != nil {
		return s.patchErr
	}
	s.patches[id] = append(s.patches[id], patch)
	return nil
}

func overdueInvoice(id string) models.Document {
	return models.Document{
		Id:           id,
		Number:       "INV-" + id,
		DocumentType: models.TypeInvoice,
		Status:       string(models.Unpaid),
		DueDate:      day(2026, 3, 1),
	}
}

func fixedNow() time.Time { return day(2026, 3, 10) }

func TestDispatcherSendsAndMarks(t *testing.T) {
	store := newFakeStore(overdueInvoice("a"), overdueInvoice("b"))
	var sent []string
	d := NewDispatcher(store, func(doc *models.Document) error {
		sent = append(sent, doc.Id)
		return nil
	})
	d.Now = fixedNow

	res, err := d.Run()

	require.NoError(t, err)
	assert.Equal(t, Result{Checked: 2, Sent: 2}, res)
	assert.Equal(t, []string{"a", "b"}, sent)

	require.Len(t, store.patches["a"], 1)
	patch := store.patches["a"][0]
	require.NotNil(t, patch.LastReminderSent)
	assert.Equal(t, "2026-03-10", *patch.LastReminderSent)
	require.NotNil(t, patch.ReminderCount)
	assert.Equal(t, 1, *patch.ReminderCount)
}

func TestDispatcherSkipsIneligible(t *testing.T) {
	paid := overdueInvoice("p")
	paid.Status = string(models.Paid)
	remindedToday := overdueInvoice("r")
	remindedToday.LastReminderSent = strPtr("2026-03-10")

	store := newFakeStore(paid, remindedToday)
	d := NewDispatcher(store, func(*models.Document) error {
		t.Fatal("send must not be called")
		return nil
	})
	d.Now = fixedNow

	res, err := d.Run()

	require.NoError(t, err)
	assert.Equal(t, Result{Checked: 2}, res)
}

func TestDispatcherSendFailureContinuesBatch(t *testing.T) {
	store := newFakeStore(overdueInvoice("a"), overdueInvoice("b"))
	d := NewDispatcher(store, func(doc *models.Document) error {
		if doc.Id == "a" {
			return fmt.Errorf("smtp relay refused")
		}
		return nil
	})
	d.Now = fixedNow

	res, err := d.Run()

	require.NoError(t, err)
	assert.Equal(t, Result{Checked: 2, Sent: 1, Failed: 1}, res)
	assert.Empty(t, store.patches["a"], "failed send must not be marked")
	assert.Len(t, store.patches["b"], 1)
}

func TestDispatcherListFailureAborts(t *testing.T) {
	store := newFakeStore()
	store.listErr = errors.New("connection refused")
	d := NewDispatcher(store, func(*models.Document) error { return nil })

	_, err := d.Run()

	assert.Error(t, err)
}

func TestDispatcherFallsBackWhenColumnMissing(t *testing.T) {
	store := newFakeStore(overdueInvoice("a"))
	store.patchErr = fmt.Errorf("patch: %w", ErrReminderColumnMissing)
	d := NewDispatcher(store, func(*models.Document) error { return nil })
	d.Now = fixedNow

	res, err := d.Run()
	require.NoError(t, err)
	assert.Equal(t, Result{Checked: 1, Sent: 1, LocalMode: true}, res)

	// Second run in the same session: the in-memory tracker dedups even
	// though the store never persisted anything.
	res, err = d.Run()
	require.NoError(t, err)
	assert.Equal(t, Result{Checked: 1, LocalMode: true}, res)
}
