package domain

import "time"

type Comment struct {
	ID        string
	TaskID    string
	Content   string
	Author    UserBrief
	CreatedAt time.Time
}

type Attachment struct {
	ID           string
	Filename     string
	OriginalName string
	Size         int64
	URL          string
	CreatedAt    time.Time
}

// TimeEntry records time spent on a task. Duration is in seconds.
type TimeEntry struct {
	ID          string
	TaskID      string
	Description string
	StartTime   time.Time
	EndTime     *time.Time
	Duration    *int64
	User        UserBrief
	CreatedAt   time.Time
}

// Dependency is a directed edge: Blocking must finish before Dependent.
type Dependency struct {
	ID        string
	Blocking  TaskRef
	Dependent TaskRef
	CreatedAt time.Time
}
