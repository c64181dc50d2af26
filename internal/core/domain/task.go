package domain

import "time"

// TaskStatus is the Kanban column a task sits in.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

// TaskPriority orders tasks within a column.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Task is a unit of work on a project's board.
type Task struct {
	ID          string       `json:"task_id" bson:"task_id"`
	ProjectID   string       `json:"project_id" bson:"project_id"`
	Title       string       `json:"title" bson:"title"`
	Description string       `json:"description" bson:"description"`
	Status      TaskStatus   `json:"status" bson:"status"`
	AssignedTo  *UserSummary `json:"assigned_to" bson:"assigned_to,omitempty"`
	Priority    TaskPriority `json:"priority" bson:"priority"`
	CreatedAt   time.Time    `json:"created_at" bson:"created_at"`
	CreatedBy   string       `json:"created_by" bson:"created_by"`
	UpdatedAt   time.Time    `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}
