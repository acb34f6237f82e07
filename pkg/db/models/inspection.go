package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kosherspect/kosherspect-backend/pkg/enums"
	"github.com/kosherspect/kosherspect-backend/pkg/types"
)

// Inspection is one factory visit record. Factory fields are copies taken at
// creation time, never references; editing a factory later leaves existing
// inspections untouched.
type Inspection struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	FactoryName    string `gorm:"column:factory_name;not null" json:"factoryName"`
	Inspector      string `gorm:"column:inspector;not null" json:"inspector"`
	FactoryAddress string `gorm:"column:factory_address;not null" json:"factoryAddress"`

	MapLink       *string `gorm:"column:map_link" json:"mapLink"`
	HebrewDate    *string `gorm:"column:hebrew_date" json:"hebrewDate"`
	GregorianDate string  `gorm:"column:gregorian_date;not null" json:"gregorianDate"`

	ContactName     *string `gorm:"column:contact_name" json:"contactName"`
	ContactPosition *string `gorm:"column:contact_position" json:"contactPosition"`
	ContactEmail    *string `gorm:"column:contact_email" json:"contactEmail"`
	ContactPhone    *string `gorm:"column:contact_phone" json:"contactPhone"`

	CurrentProducts *string `gorm:"column:current_products" json:"currentProducts"`
	EmployeeCount   *int    `gorm:"column:employee_count" json:"employeeCount"`
	ShiftsPerDay    *int    `gorm:"column:shifts_per_day" json:"shiftsPerDay"`
	WorkingDays     *int    `gorm:"column:working_days" json:"workingDays"`
	Kashrut         *string `gorm:"column:kashrut" json:"kashrut"`

	Documents     *types.DocumentChecklist `gorm:"column:documents;type:text" json:"documents"`
	DocumentFiles types.DocumentFiles      `gorm:"column:document_files;type:text" json:"documentFiles"`

	Category *enums.FactoryCategory `gorm:"column:category" json:"category"`

	Ingredients       *string `gorm:"column:ingredients" json:"ingredients"`
	BoilerDetails     *string `gorm:"column:boiler_details" json:"boilerDetails"`
	CleaningProtocols *string `gorm:"column:cleaning_protocols" json:"cleaningProtocols"`

	BishulYisrael   bool `gorm:"column:bishul_yisrael;not null;default:false" json:"bishulYisrael"`
	AfiyatYisrael   bool `gorm:"column:afiyat_yisrael;not null;default:false" json:"afiyatYisrael"`
	ChalavYisrael   bool `gorm:"column:chalav_yisrael;not null;default:false" json:"chalavYisrael"`
	LinatLaila      bool `gorm:"column:linat_laila;not null;default:false" json:"linatLaila"`
	Kavush          bool `gorm:"column:kavush;not null;default:false" json:"kavush"`
	Chadash         bool `gorm:"column:chadash;not null;default:false" json:"chadash"`
	HafrashatChalla bool `gorm:"column:hafrashat_challa;not null;default:false" json:"hafrashatChalla"`
	KashrutPesach   bool `gorm:"column:kashrut_pesach;not null;default:false" json:"kashrutPesach"`

	Photos      types.StringList `gorm:"column:photos;type:text" json:"photos"`
	Attachments types.StringList `gorm:"column:attachments;type:text" json:"attachments"`

	Summary          *string `gorm:"column:summary" json:"summary"`
	Recommendations  *string `gorm:"column:recommendations" json:"recommendations"`
	InspectorOpinion *string `gorm:"column:inspector_opinion" json:"inspectorOpinion"`

	Status enums.InspectionStatus `gorm:"column:status;not null;default:'draft'" json:"status"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// BeforeCreate assigns the id and the default status application-side.
func (i *Inspection) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.Status == "" {
		i.Status = enums.InspectionStatusDraft
	}
	return nil
}
