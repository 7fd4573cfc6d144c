package database

import (
	"fmt"
	"log"

	"github.com/yukikurage/timesheet-api/internal/models"
	"gorm.io/gorm"
)

// AddIndexes adds the lookup indexes that are not declared on the models.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   interface{}
		name    string
		columns string
	}{
		// Filtering users and projects on the admin screens
		{&models.User{}, "idx_users_department", "department"},
		{&models.User{}, "idx_users_business_unit", "business_unit"},
		{&models.Project{}, "idx_projects_department", "department"},
		{&models.Project{}, "idx_projects_business_unit", "business_unit"},

		// Status breakdowns
		{&models.Task{}, "idx_tasks_task_status", "task_status"},

		// Per-user log listing
		{&models.TimeLog{}, "idx_time_logs_user_date", "user_id, date"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			continue
		}

		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(idx.model); err != nil {
			return fmt.Errorf("failed to parse model for index %s: %w", idx.name, err)
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, stmt.Schema.Table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on %s(%s)", idx.name, stmt.Schema.Table, idx.columns)
	}

	return nil
}
