package reminders

import (
	"time"

	"invoicehub-backend/config"
	"invoicehub-backend/models"
)

// CounterStore tracks the day-keyed global send counter. The counter resets
// naturally when the day key changes; it is best-effort, not authoritative.
type CounterStore interface {
	DailyCount(day string) (int, error)
	Increment(day string) error
}

// AutoRunner is the standalone background variant: rolling-gap policy plus
// the global daily cap. Kept separate from Dispatcher by design; the two
// cadences must not share thresholds.
type AutoRunner struct {
	Store   Store
	Counter CounterStore
	Send    SendFunc
	Policy  AutoPolicy
	Now     func() time.Time
}

func NewAutoRunner(store Store, counter CounterStore, send SendFunc) *AutoRunner {
	return &AutoRunner{Store: store, Counter: counter, Send: send, Now: time.Now}
}

// Run processes one automation sweep. The cap is re-checked inside the loop
// in case it is hit mid-batch.
func (a *AutoRunner) Run() (Result, error) {
	now := a.Now()
	day := ISODate(now)
	log := config.GetLogger()

	count, err := a.Counter.DailyCount(day)
	if err != nil {
		return Result{}, err
	}
	if count >= MaxDailySends {
		log.WithField("module", "reminders").Info("daily reminder limit reached, skipping checks")
		return Result{}, nil
	}

	docs, err := a.Store.ListDocuments()
	if err != nil {
		return Result{}, err
	}

	var res Result
	for i := range docs {
		doc := &docs[i]

		count, err = a.Counter.DailyCount(day)
		if err == nil && count >= MaxDailySends {
			log.WithField("module", "reminders").Info("daily reminder limit hit during processing, stopping")
			break
		}

		res.Checked++
		if !a.Policy.Eligible(doc, now) {
			continue
		}

		if err := a.Send(doc); err != nil {
			config.LogError(log, "reminders", "AutoRunner.Run", "auto-send reminder", doc.Number, err)
			res.Failed++
			continue
		}

		sent := ISODate(now)
		newCount := doc.ReminderCount + 1
		if err := a.Store.PatchDocument(doc.Id, models.DocumentPatch{
			LastReminderSent: &sent,
			ReminderCount:    &newCount,
		}); err != nil {
			config.LogError(log, "reminders", "AutoRunner.Run", "mark auto reminder", doc.Number, err)
			res.Failed++
			continue
		}
		if err := a.Counter.Increment(day); err != nil {
			// best-effort counter; the send already happened
			config.LogError(log, "reminders", "AutoRunner.Run", "increment daily counter", day, err)
		}
		res.Sent++
	}
	return res, nil
}
