package models

import (
	"time"

	"gorm.io/gorm"

	"quartermaster/internal/core/domain"
)

// User represents the users table
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email        string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
	Role         domain.Role    `gorm:"size:20;not null" json:"role"`
	BaseID       *uint          `gorm:"index" json:"base_id"`
	FullName     string         `gorm:"size:100;not null" json:"full_name"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Base *Base `gorm:"foreignKey:BaseID" json:"base,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint        `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	BaseID    *uint       `json:"base_id"`
	BaseName  string      `json:"base_name,omitempty"`
	FullName  string      `json:"full_name"`
	CreatedAt time.Time   `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	resp := &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		BaseID:    u.BaseID,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
	}
	if u.Base != nil {
		resp.BaseName = u.Base.Name
	}
	return resp
}

// Base represents the bases table
type Base struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Location    string    `gorm:"size:255;not null" json:"location"`
	CommanderID *uint     `gorm:"index" json:"commander_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Commander *User `gorm:"foreignKey:CommanderID" json:"commander,omitempty"`
}

func (Base) TableName() string {
	return "bases"
}

// EquipmentType represents the equipment_types catalog table
type EquipmentType struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Category    string    `gorm:"size:50;not null" json:"category"`
	Unit        string    `gorm:"size:20;not null" json:"unit"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (EquipmentType) TableName() string {
	return "equipment_types"
}

// Asset represents a physical unit of an equipment type at a base
type Asset struct {
	ID              uint               `gorm:"primaryKey" json:"id"`
	EquipmentTypeID uint               `gorm:"not null;index" json:"equipment_type_id"`
	BaseID          uint               `gorm:"not null;index" json:"base_id"`
	SerialNumber    string             `gorm:"uniqueIndex;size:100;not null" json:"serial_number"`
	Status          domain.AssetStatus `gorm:"size:20;not null;default:'available'" json:"status"`
	Condition       string             `gorm:"size:20" json:"condition"`
	CreatedAt       time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time          `gorm:"autoUpdateTime" json:"updated_at"`

	EquipmentType *EquipmentType `gorm:"foreignKey:EquipmentTypeID" json:"equipment_type,omitempty"`
	Base          *Base          `gorm:"foreignKey:BaseID" json:"base,omitempty"`
}

func (Asset) TableName() string {
	return "assets"
}

// Purchase represents an acquisition record. Immutable once created.
type Purchase struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	BaseID          uint      `gorm:"not null;index" json:"base_id"`
	EquipmentTypeID uint      `gorm:"not null;index" json:"equipment_type_id"`
	Quantity        int       `gorm:"not null" json:"quantity"`
	UnitCost        float64   `gorm:"type:decimal(15,2)" json:"unit_cost"`
	TotalCost       float64   `gorm:"type:decimal(15,2)" json:"total_cost"`
	Supplier        string    `gorm:"size:200" json:"supplier"`
	PurchaseDate    time.Time `gorm:"not null" json:"purchase_date"`
	OrderNumber     string    `gorm:"size:50" json:"order_number"`
	CreatedBy       uint      `gorm:"not null" json:"created_by"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`

	Base          *Base          `gorm:"foreignKey:BaseID" json:"base,omitempty"`
	EquipmentType *EquipmentType `gorm:"foreignKey:EquipmentTypeID" json:"equipment_type,omitempty"`
	Creator       *User          `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

func (Purchase) TableName() string {
	return "purchases"
}

// Transfer represents a movement of equipment between bases. Balances are
// derived from completed transfers at aggregation time; no inventory count
// is mutated on completion.
type Transfer struct {
	ID              uint                  `gorm:"primaryKey" json:"id"`
	FromBaseID      uint                  `gorm:"not null;index" json:"from_base_id"`
	ToBaseID        uint                  `gorm:"not null;index" json:"to_base_id"`
	EquipmentTypeID uint                  `gorm:"not null;index" json:"equipment_type_id"`
	Quantity        int                   `gorm:"not null" json:"quantity"`
	TransferDate    time.Time             `gorm:"not null" json:"transfer_date"`
	Reason          string                `gorm:"type:text" json:"reason"`
	Status          domain.TransferStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	RequestedBy     uint                  `gorm:"not null" json:"requested_by"`
	ApprovedBy      *uint                 `json:"approved_by"`
	CompletedAt     *time.Time            `json:"completed_at"`
	CreatedAt       time.Time             `gorm:"autoCreateTime" json:"created_at"`

	FromBase      *Base          `gorm:"foreignKey:FromBaseID" json:"from_base,omitempty"`
	ToBase        *Base          `gorm:"foreignKey:ToBaseID" json:"to_base,omitempty"`
	EquipmentType *EquipmentType `gorm:"foreignKey:EquipmentTypeID" json:"equipment_type,omitempty"`
	Requester     *User          `gorm:"foreignKey:RequestedBy" json:"requester,omitempty"`
	Approver      *User          `gorm:"foreignKey:ApprovedBy" json:"approver,omitempty"`
}

func (Transfer) TableName() string {
	return "transfers"
}

// Assignment represents an asset lent to a named individual
type Assignment struct {
	ID             uint                    `gorm:"primaryKey" json:"id"`
	AssetID        uint                    `gorm:"not null;index" json:"asset_id"`
	AssignedTo     string                  `gorm:"size:100;not null" json:"assigned_to"`
	AssignedBy     uint                    `gorm:"not null" json:"assigned_by"`
	AssignmentDate time.Time               `gorm:"not null" json:"assignment_date"`
	ReturnDate     *time.Time              `json:"return_date"`
	Purpose        string                  `gorm:"type:text" json:"purpose"`
	Status         domain.AssignmentStatus `gorm:"size:20;not null;default:'active';index" json:"status"`
	CreatedAt      time.Time               `gorm:"autoCreateTime" json:"created_at"`

	Asset    *Asset `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
	Assigner *User  `gorm:"foreignKey:AssignedBy" json:"assigner,omitempty"`
}

func (Assignment) TableName() string {
	return "assignments"
}

// Expenditure represents irreversible consumption of equipment. Immutable
// once created.
type Expenditure struct {
	ID              uint                   `gorm:"primaryKey" json:"id"`
	BaseID          uint                   `gorm:"not null;index" json:"base_id"`
	EquipmentTypeID uint                   `gorm:"not null;index" json:"equipment_type_id"`
	Quantity        int                    `gorm:"not null" json:"quantity"`
	ExpenditureDate time.Time              `gorm:"not null" json:"expenditure_date"`
	Reason          string                 `gorm:"type:text" json:"reason"`
	OperationName   string                 `gorm:"size:100" json:"operation_name"`
	ExpenditureType domain.ExpenditureType `gorm:"size:20;not null" json:"expenditure_type"`
	RecordedBy      uint                   `gorm:"not null" json:"recorded_by"`
	CreatedAt       time.Time              `gorm:"autoCreateTime" json:"created_at"`

	Base          *Base          `gorm:"foreignKey:BaseID" json:"base,omitempty"`
	EquipmentType *EquipmentType `gorm:"foreignKey:EquipmentTypeID" json:"equipment_type,omitempty"`
	Recorder      *User          `gorm:"foreignKey:RecordedBy" json:"recorder,omitempty"`
}

func (Expenditure) TableName() string {
	return "expenditures"
}

// AuditLog is an append-only record of a state-changing operation
type AuditLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EventID    string    `gorm:"size:36;uniqueIndex;not null" json:"event_id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	Action     string    `gorm:"size:50;not null;index" json:"action"`
	RecordKind string    `gorm:"size:50;not null;index" json:"record_kind"`
	RecordID   uint      `gorm:"index" json:"record_id"`
	OldValues  []byte    `gorm:"type:json" json:"old_values,omitempty"`
	NewValues  []byte    `gorm:"type:json" json:"new_values,omitempty"`
	IPAddress  string    `gorm:"size:45" json:"ip_address,omitempty"`
	UserAgent  string    `gorm:"size:255" json:"user_agent,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Base{},
		&User{},
		&EquipmentType{},
		&Asset{},
		&Purchase{},
		&Transfer{},
		&Assignment{},
		&Expenditure{},
		&AuditLog{},
	)
}
