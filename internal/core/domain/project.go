package domain

import "time"

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "planning"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectReview     ProjectStatus = "review"
	ProjectCompleted  ProjectStatus = "completed"
)

// Project is a client engagement owning a board of tasks.
type Project struct {
	ID          string        `json:"project_id" bson:"project_id"`
	Name        string        `json:"name" bson:"name"`
	Description string        `json:"description" bson:"description"`
	ClientName  string        `json:"client_name" bson:"client_name"`
	Status      ProjectStatus `json:"status" bson:"status"`
	TeamMembers []UserSummary `json:"team_members" bson:"team_members"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
	CreatedBy   string        `json:"created_by" bson:"created_by"`
	UpdatedAt   time.Time     `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}
