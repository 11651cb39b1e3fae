package dto

import "time"

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

type CommentResponse struct {
	ID        string            `json:"id"`
	Content   string            `json:"content"`
	Author    UserBriefResponse `json:"author"`
	CreatedAt time.Time         `json:"createdAt"`
}

type AttachmentResponse struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	Size         int64     `json:"size"`
	URL          string    `json:"url"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateTimeEntryRequest logs time. Duration is in seconds; derived from the range when omitted.
type CreateTimeEntryRequest struct {
	Description string `json:"description" binding:"max=1000"`
	StartTime   Date   `json:"startTime"`
	EndTime     Date   `json:"endTime"`
	Duration    *int64 `json:"duration" binding:"omitempty,min=0"`
}

type TimeEntryResponse struct {
	ID          string            `json:"id"`
	Description string            `json:"description"`
	StartTime   time.Time         `json:"startTime"`
	EndTime     *time.Time        `json:"endTime"`
	Duration    *int64            `json:"duration"`
	User        UserBriefResponse `json:"user"`
	CreatedAt   time.Time         `json:"createdAt"`
}

type CreateDependencyRequest struct {
	BlockingTaskID string `json:"blockingTaskId" binding:"required,uuid"`
}

type DependencyResponse struct {
	ID            string          `json:"id"`
	BlockingTask  TaskRefResponse `json:"blockingTask"`
	DependentTask TaskRefResponse `json:"dependentTask"`
	CreatedAt     time.Time       `json:"createdAt"`
}
