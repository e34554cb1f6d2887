package models

import "time"

// TaskSummary is a row of the professional_task_summary view. The view
// aggregates tasks per professional and exists only in the relational store.
type TaskSummary struct {
	ProfessionalID  string `gorm:"column:professional_id" json:"professional_id"`
	Name            string `gorm:"column:name" json:"name"`
	TotalTasks      int    `gorm:"column:total_tasks" json:"total_tasks"`
	PendingTasks    int    `gorm:"column:pending_tasks" json:"pending_tasks"`
	InProgressTasks int    `gorm:"column:in_progress_tasks" json:"in_progress_tasks"`
	CompletedTasks  int    `gorm:"column:completed_tasks" json:"completed_tasks"`
}

func (TaskSummary) TableName() string {
	return "professional_task_summary"
}

// Task statuses counted by the summary view.
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
)

// Task is a unit of work assigned to a professional. Only the summary view
// reads it; the service layer never touches tasks directly.
type Task struct {
	TaskID     string `gorm:"column:task_id;primaryKey;type:varchar(64)"`
	AssignedTo string `gorm:"column:assigned_to;type:varchar(64);index"`
	Title      string `gorm:"type:varchar(255)"`
	Status     string `gorm:"type:varchar(20);default:'pending'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Task) TableName() string {
	return "tasks"
}
