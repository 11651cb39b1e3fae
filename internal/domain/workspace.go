package domain

import "time"

type Workspace struct {
	ID        string
	Name      string
	OwnerID   string
	CreatedAt time.Time
}

const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// Member is a user's membership in a workspace.
type Member struct {
	WorkspaceID string
	UserID      string
	Role        string
	JoinedAt    time.Time
}

type Project struct {
	ID          string
	WorkspaceID string
	Name        string
	Color       string
	CreatedAt   time.Time
}

type ProjectBrief struct {
	ID        string
	Name      string
	Color     string
	Workspace WorkspaceBrief
}

type WorkspaceBrief struct {
	ID   string
	Name string
}

type Milestone struct {
	ID        string
	ProjectID string
	Title     string
	DueDate   *time.Time
	Status    string
	CreatedAt time.Time
}

type MilestoneBrief struct {
	ID      string
	Title   string
	DueDate *time.Time
	Status  string
}

type Tag struct {
	ID    string
	Name  string
	Color string
}
