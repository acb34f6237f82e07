package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Factory is a reusable factory profile. Its fields are snapshotted into an
// inspection when the wizard merges a selection; there is no foreign key in
// either direction.
type Factory struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name    string    `gorm:"column:name;not null" json:"name"`
	Address string    `gorm:"column:address;not null" json:"address"`
	MapLink *string   `gorm:"column:map_link" json:"mapLink"`

	ContactName     *string `gorm:"column:contact_name" json:"contactName"`
	ContactPosition *string `gorm:"column:contact_position" json:"contactPosition"`
	ContactEmail    *string `gorm:"column:contact_email" json:"contactEmail"`
	ContactPhone    *string `gorm:"column:contact_phone" json:"contactPhone"`

	CurrentProducts *string `gorm:"column:current_products" json:"currentProducts"`
	EmployeeCount   *int    `gorm:"column:employee_count" json:"employeeCount"`
	ShiftsPerDay    *int    `gorm:"column:shifts_per_day" json:"shiftsPerDay"`
	WorkingDays     *int    `gorm:"column:working_days" json:"workingDays"`
	Kashrut         *string `gorm:"column:kashrut" json:"kashrut"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// BeforeCreate assigns the id application-side so sqlite and postgres rows
// look the same.
func (f *Factory) BeforeCreate(_ *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
