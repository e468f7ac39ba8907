package models

// ReminderCounter is the day-keyed send counter for the background reminder
// automation. The row for a new day starts fresh, which is what resets the
// cap; old rows are simply never read again. Best-effort, not authoritative.
type ReminderCounter struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Day   string `json:"day" gorm:"size:10;uniqueIndex"` // YYYY-MM-DD
	Count int    `json:"count"`
}
