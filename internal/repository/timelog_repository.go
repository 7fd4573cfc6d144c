package repository

import (
	"time"

	"github.com/yukikurage/timesheet-api/internal/database"
	"github.com/yukikurage/timesheet-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTimeLogRepository is a GORM implementation of TimeLogRepository
type GormTimeLogRepository struct {
	db *gorm.DB
}

// NewTimeLogRepository creates a new TimeLogRepository
func NewTimeLogRepository(db *gorm.DB) TimeLogRepository {
	return &GormTimeLogRepository{db: db}
}

func (r *GormTimeLogRepository) CreateWithTask(log *models.TimeLog, task *models.Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(log).Error; err != nil {
			return err
		}
		return tx.Model(task).Updates(map[string]interface{}{
			"spent_hour":  task.SpentHour,
			"task_status": task.TaskStatus,
		}).Error
	})
}

func (r *GormTimeLogRepository) FindByID(id uint64) (*models.TimeLog, error) {
	var log models.TimeLog
	if err := r.db.First(&log, id).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *GormTimeLogRepository) List(filter TimeLogFilter) ([]models.TimeLog, int64, error) {
	query := r.db.Model(&models.TimeLog{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("date DESC, id DESC")
	if filter.Pagination != nil {
		listQuery = listQuery.Scopes(database.Paginate(*filter.Pagination))
	}

	var logs []models.TimeLog
	if err := listQuery.Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (r *GormTimeLogRepository) ListAll() ([]models.TimeLog, error) {
	var logs []models.TimeLog
	if err := r.db.Preload("User").Order("date ASC, id ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *GormTimeLogRepository) SaveProgress(log *models.TimeLog, task *models.Task, completedBy *uint64, at time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(log).Updates(map[string]interface{}{
			"spent_hour":  log.SpentHour,
			"task_status": log.TaskStatus,
		}).Error; err != nil {
			return err
		}

		if err := tx.Model(task).Updates(map[string]interface{}{
			"spent_hour":  task.SpentHour,
			"task_status": task.TaskStatus,
		}).Error; err != nil {
			return err
		}

		if completedBy == nil {
			return nil
		}

		result := tx.Model(&models.User{}).
			Where("id = ?", *completedBy).
			Updates(map[string]interface{}{
				"completed_task": gorm.Expr("completed_task + ?", 1),
				"completed_date": at,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
