package reminders

import (
	"errors"
	"time"

	"invoicehub-backend/config"
	"invoicehub-backend/models"
)

// Result summarizes one batch run.
type Result struct {
	Checked   int  `json:"checked"`
	Sent      int  `json:"sent"`
	Failed    int  `json:"failed"`
	LocalMode bool `json:"local_mode"`
}

// Dispatcher runs the user-facing DuePolicy batch: scan, send, mark.
// Documents are processed sequentially; a failure on one is logged and the
// batch continues. When the store reports the reminder column missing, the
// dispatcher switches to an in-memory tracker for the rest of the session.
type Dispatcher struct {
	Store  Store
	Send   SendFunc
	Policy DuePolicy
	Now    func() time.Time

	localMode    bool
	localTracker map[string]string // document id -> ISO date
}

func NewDispatcher(store Store, send SendFunc) *Dispatcher {
	return &Dispatcher{
		Store:        store,
		Send:         send,
		Now:          time.Now,
		localTracker: make(map[string]string),
	}
}

// lastSentFor resolves the effective last-reminder date for dedup, using the
// local tracker once the dispatcher has degraded.
func (d *Dispatcher) lastSentFor(doc *models.Document) string {
	if d.localMode {
		return d.localTracker[doc.Id]
	}
	if doc.LastReminderSent != nil {
		return *doc.LastReminderSent
	}
	return ""
}

// mark records a sent reminder. Store failures for the missing-column case
// flip local mode; any other store failure propagates.
func (d *Dispatcher) mark(doc *models.Document, todayStr string) error {
	if d.localMode {
		d.localTracker[doc.Id] = todayStr
		return nil
	}

	count := doc.ReminderCount + 1
	sent := todayStr
	err := d.Store.PatchDocument(doc.Id, models.DocumentPatch{
		LastReminderSent: &sent,
		ReminderCount:    &count,
	})
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrReminderColumnMissing) {
		d.localMode = true
		d.localTracker[doc.Id] = todayStr
		config.GetLogger().WithField("module", "reminders").
			Warn("reminder column missing; tracking reminders in memory for this session")
		return nil
	}
	return err
}

// Run executes one batch. Only a failure to list documents aborts; per
// document failures are logged and counted.
func (d *Dispatcher) Run() (Result, error) {
	now := d.Now()
	todayStr := ISODate(now)

	docs, err := d.Store.ListDocuments()
	if err != nil {
		return Result{}, err
	}

	var res Result
	for i := range docs {
		doc := &docs[i]
		res.Checked++
		if !d.Policy.Eligible(doc, now, d.lastSentFor(doc)) {
			continue
		}

		if err := d.Send(doc); err != nil {
			config.LogError(config.GetLogger(), "reminders", "Run", "send reminder", doc.Number, err)
			res.Failed++
			continue
		}
		if err := d.mark(doc, todayStr); err != nil {
			config.LogError(config.GetLogger(), "reminders", "Run", "mark reminder", doc.Number, err)
			res.Failed++
			continue
		}
		res.Sent++
	}
	res.LocalMode = d.localMode
	return res, nil
}
