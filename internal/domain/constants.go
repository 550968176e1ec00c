package domain

import "time"

// Time format constants
const (
	DateTimeFormat = "2006-01-02 15:04" // YYYY-MM-DD HH:MM, единственный формат ввода даты
)

// Default scheduler configuration values
const (
	DefaultTickInterval      = 60 * time.Second
	DefaultReminderLookahead = 30 * time.Minute
)
