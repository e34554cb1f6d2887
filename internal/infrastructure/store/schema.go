package store

import (
	"context"
	"fmt"

	"github.com/kyue26/emertgency-sub001/internal/domain/models"
	"gorm.io/gorm"
)

// taskSummaryViewSQL is portable between PostgreSQL and MySQL.
const taskSummaryViewSQL = `CREATE OR REPLACE VIEW professional_task_summary AS
SELECT p.professional_id,
       p.name,
       COUNT(t.task_id) AS total_tasks,
       SUM(CASE WHEN t.status = '` + models.TaskStatusPending + `' THEN 1 ELSE 0 END) AS pending_tasks,
       SUM(CASE WHEN t.status = '` + models.TaskStatusInProgress + `' THEN 1 ELSE 0 END) AS in_progress_tasks,
       SUM(CASE WHEN t.status = '` + models.TaskStatusCompleted + `' THEN 1 ELSE 0 END) AS completed_tasks
FROM professionals p
LEFT JOIN tasks t ON t.assigned_to = p.professional_id
GROUP BY p.professional_id, p.name`

// Migrate creates the relational schema. It runs once at startup when
// DB_MIGRATION_MODE=auto and only adds tables and columns.
func Migrate(ctx context.Context, db *gorm.DB) error {
	err := db.WithContext(ctx).AutoMigrate(
		&professionalRow{},
		&models.Task{},
		&models.ActiveDrill{},
		&models.ResourceRequestRow{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := db.WithContext(ctx).Exec(taskSummaryViewSQL).Error; err != nil {
		return fmt.Errorf("create professional_task_summary view: %w", err)
	}
	return nil
}
