package repository

import (
	"github.com/yukikurage/timesheet-api/internal/database"
	"github.com/yukikurage/timesheet-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Omit(clause.Associations).Create(project).Error
}

func (r *GormProjectRepository) FindByID(id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *GormProjectRepository) ListByName(name string, preload ...string) ([]models.Project, error) {
	var projects []models.Project
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.Where("project_name = ?", name).Order("id ASC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *GormProjectRepository) List(filter DirectoryFilter) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.
		Scopes(
			database.ContainsFold(filter.Search, "project_name", "client_name", "address"),
			database.ContainsFold(filter.Department, "department"),
			database.ContainsFold(filter.BusinessUnit, "business_unit"),
		).
		Preload("Tasks.Task").
		Preload("Users.User").
		Order("id ASC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *GormProjectRepository) ListWithTasks() ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.Preload("Tasks.Task").Order("id ASC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *GormProjectRepository) ListByUserID(userID uint64) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.
		Joins("JOIN project_users ON project_users.project_id = projects.id").
		Where("project_users.user_id = ?", userID).
		Order("projects.id ASC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// Update saves the project. When the name changed from previousName, tasks that
// list the project under its old name are renamed in the same transaction.
func (r *GormProjectRepository) Update(project *models.Project, previousName string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(project).Error; err != nil {
			return err
		}
		if previousName == "" || previousName == project.ProjectName {
			return nil
		}

		var links []models.ProjectTask
		if err := tx.Preload("Task").Where("project_id = ?", project.ID).Find(&links).Error; err != nil {
			return err
		}
		for _, link := range links {
			task := link.Task
			if task.ID == 0 || !task.Rename(previousName, project.ProjectName) {
				continue
			}
			if err := tx.Model(&task).Update("task_assigned", task.TaskAssigned).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the project's links and frees every task it held so the task
// can be assigned to another project.
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.Preload("Tasks.Task").First(&project, id).Error; err != nil {
			return err
		}

		for _, link := range project.Tasks {
			task := link.Task
			if task.ID == 0 || !task.Release(project.ProjectName) {
				continue
			}
			if err := tx.Model(&task).Update("task_assigned", task.TaskAssigned).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectTask{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectUser{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
}

func (r *GormProjectRepository) Duplicate(source *models.Project, dup *models.Project) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(dup).Error; err != nil {
			return err
		}

		if len(source.Tasks) > 0 {
			links := make([]models.ProjectTask, len(source.Tasks))
			for i, t := range source.Tasks {
				links[i] = models.ProjectTask{ProjectID: dup.ID, TaskID: t.TaskID, TaskHour: t.TaskHour}
			}
			if err := tx.Omit(clause.Associations).Create(&links).Error; err != nil {
				return err
			}
			dup.Tasks = links
		}

		if len(source.Users) > 0 {
			members := make([]models.ProjectUser, len(source.Users))
			for i, u := range source.Users {
				members[i] = models.ProjectUser{ProjectID: dup.ID, UserID: u.UserID}
			}
			if err := tx.Omit(clause.Associations).Create(&members).Error; err != nil {
				return err
			}
			dup.Users = members
		}

		return nil
	})
}

// LinkTask writes the project side and the task side of an assignment in one
// transaction; neither is visible unless both succeed.
func (r *GormProjectRepository) LinkTask(link *models.ProjectTask, task *models.Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(link).Error; err != nil {
			return err
		}

		var current models.Task
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "task_assigned").
			First(&current, task.ID).Error
		if err != nil {
			return err
		}
		if current.IsAssigned() {
			return ErrTaskAssigned
		}

		return tx.Model(task).Update("task_assigned", task.TaskAssigned).Error
	})
}

func (r *GormProjectRepository) LinkUser(link *models.ProjectUser) error {
	return r.db.Omit(clause.Associations).Create(link).Error
}
