package storage

import (
	"time"

	"github.com/shopspring/decimal"
)

// SessionModel is the persisted client session, one row per backend
type SessionModel struct {
	AccessToken  string `gorm:"not null"`
	Backend      string `gorm:"primaryKey"`
	CreatedAt    time.Time
	ExpiresAt    *time.Time `gorm:"default:null"`
	RefreshToken string     `gorm:"not null;default:''"`
	TokenType    string     `gorm:"not null;default:'bearer'"`
	UpdatedAt    time.Time
	UserEmail    string `gorm:"not null;default:''"`
	UserID       string `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (SessionModel) TableName() string { return "auth_sessions" }

// UserModel is a local backend account and its profile
type UserModel struct {
	CreatedAt         time.Time `json:"created_at"`
	Email             string    `gorm:"not null;uniqueIndex" json:"email"`
	FullName          string    `gorm:"not null;default:''" json:"full_name"`
	ID                string    `gorm:"primaryKey" json:"id"`
	PasswordHash      string    `gorm:"not null" json:"-"`
	ProfilePictureURL *string   `gorm:"default:null" json:"profile_picture_url"`
	Role              string    `gorm:"not null;default:'supervisor';check:role IN ('supervisor','chief')" json:"role"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string { return "users" }

// RefreshTokenModel is an outstanding local refresh token
type RefreshTokenModel struct {
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"not null"`
	Token     string    `gorm:"primaryKey"`
	UserID    string    `gorm:"not null;index:idx_refresh_user"`
}

// TableName specifies the table name for GORM
func (RefreshTokenModel) TableName() string { return "auth_refresh_tokens" }

// MetaModel holds local backend settings such as the token signing secret
type MetaModel struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (MetaModel) TableName() string { return "local_meta" }

// AccommodationModel is the GORM model for accommodations
type AccommodationModel struct {
	Address   *string   `gorm:"default:null" json:"address"`
	Code      string    `gorm:"not null;index:idx_accommodation_code" json:"code"`
	CreatedAt time.Time `gorm:"index:idx_accommodation_created" json:"created_at"`
	CreatedBy string    `gorm:"not null" json:"created_by"`
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Notes     *string   `gorm:"default:null" json:"notes"`
	Status    string    `gorm:"not null;default:'active';check:status IN ('active','inactive')" json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (AccommodationModel) TableName() string { return "accommodations" }

// TaskModel is the GORM model for maintenance tasks. Money and durations are
// stored as text to keep decimal precision.
type TaskModel struct {
	AccommodationID  string           `gorm:"not null;index:idx_task_accommodation" json:"accommodation_id"`
	AreaCatalogID    string           `gorm:"not null;default:''" json:"area_catalog_id"`
	AssignedTo       *string          `gorm:"default:null" json:"assigned_to"`
	CompletedAt      *time.Time       `gorm:"default:null" json:"completed_at"`
	CompletionNotes  *string          `gorm:"default:null" json:"completion_notes"`
	CreatedAt        time.Time        `gorm:"index:idx_task_created" json:"created_at"`
	CreatedBy        string           `gorm:"not null" json:"created_by"`
	Description      string           `gorm:"not null;default:''" json:"description"`
	DueDate          *string          `gorm:"default:null" json:"due_date"`
	ElementCatalogID *string          `gorm:"default:null" json:"element_catalog_id"`
	EstimatedCost    *decimal.Decimal `gorm:"type:text;default:null" json:"estimated_cost"`
	ID               string           `gorm:"primaryKey" json:"id"`
	Priority         string           `gorm:"not null;default:'medium';check:priority IN ('high','medium','low')" json:"priority"`
	RepairCost       *decimal.Decimal `gorm:"type:text;default:null" json:"repair_cost"`
	RepairerName     *string          `gorm:"default:null" json:"repairer_name"`
	Status           string           `gorm:"not null;default:'pending';check:status IN ('pending','in_progress','completed','cancelled')" json:"status"`
	TimeSpentDays    *decimal.Decimal `gorm:"type:text;default:null" json:"time_spent_days"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (TaskModel) TableName() string { return "tasks" }

// AreaCatalogModel is the GORM model for catalog areas
type AreaCatalogModel struct {
	CreatedAt    time.Time `json:"created_at"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	Icon         *string   `gorm:"default:null" json:"icon"`
	ID           string    `gorm:"primaryKey" json:"id"`
	Key          string    `gorm:"not null;uniqueIndex" json:"key"`
	Label        string    `gorm:"not null" json:"label"`
}

// TableName specifies the table name for GORM
func (AreaCatalogModel) TableName() string { return "area_catalog" }

// ElementCatalogModel is the GORM model for catalog elements
type ElementCatalogModel struct {
	AreaCatalogID string    `gorm:"not null;index:idx_element_area" json:"area_catalog_id"`
	CreatedAt     time.Time `json:"created_at"`
	DisplayOrder  int       `gorm:"not null;default:0" json:"display_order"`
	ID            string    `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
}

// TableName specifies the table name for GORM
func (ElementCatalogModel) TableName() string { return "element_catalog" }

// localModels lists every table of the local backend database
func localModels() []any {
	return []any{
		&UserModel{},
		&RefreshTokenModel{},
		&MetaModel{},
		&AccommodationModel{},
		&TaskModel{},
		&AreaCatalogModel{},
		&ElementCatalogModel{},
	}
}
