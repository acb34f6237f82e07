package wizard

import (
	"time"

	"github.com/google/uuid"

	"github.com/kosherspect/kosherspect-backend/pkg/db/models"
	"github.com/kosherspect/kosherspect-backend/pkg/enums"
	"github.com/kosherspect/kosherspect-backend/pkg/types"
)

// Session is one operator's walk through the inspection wizard. It lives in
// Redis for the configured TTL and accumulates a Record until a draft or
// completed inspection is written out.
type Session struct {
	ID            uuid.UUID        `json:"id"`
	Step          enums.WizardStep `json:"step"`
	InspectionID  *uuid.UUID       `json:"inspectionId,omitempty"`
	FactoryMerged bool             `json:"factoryMerged"`
	Record        Record           `json:"record"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// Record is the accumulating inspection payload. Zero values mean "not yet
// provided"; the save path substitutes placeholder defaults for the four
// required fields.
type Record struct {
	FactoryName    string  `json:"factoryName"`
	Inspector      string  `json:"inspector"`
	FactoryAddress string  `json:"factoryAddress"`
	GregorianDate  string  `json:"gregorianDate"`
	HebrewDate     *string `json:"hebrewDate,omitempty"`
	MapLink        *string `json:"mapLink,omitempty"`

	ContactName     *string `json:"contactName,omitempty"`
	ContactPosition *string `json:"contactPosition,omitempty"`
	ContactEmail    *string `json:"contactEmail,omitempty"`
	ContactPhone    *string `json:"contactPhone,omitempty"`

	CurrentProducts *string `json:"currentProducts,omitempty"`
	EmployeeCount   *int    `json:"employeeCount,omitempty"`
	ShiftsPerDay    *int    `json:"shiftsPerDay,omitempty"`
	WorkingDays     *int    `json:"workingDays,omitempty"`
	Kashrut         *string `json:"kashrut,omitempty"`

	Documents     *types.DocumentChecklist `json:"documents,omitempty"`
	DocumentFiles types.DocumentFiles      `json:"documentFiles,omitempty"`

	Category *enums.FactoryCategory `json:"category,omitempty"`

	Ingredients       *string `json:"ingredients,omitempty"`
	BoilerDetails     *string `json:"boilerDetails,omitempty"`
	CleaningProtocols *string `json:"cleaningProtocols,omitempty"`

	BishulYisrael   bool `json:"bishulYisrael"`
	AfiyatYisrael   bool `json:"afiyatYisrael"`
	ChalavYisrael   bool `json:"chalavYisrael"`
	LinatLaila      bool `json:"linatLaila"`
	Kavush          bool `json:"kavush"`
	Chadash         bool `json:"chadash"`
	HafrashatChalla bool `json:"hafrashatChalla"`
	KashrutPesach   bool `json:"kashrutPesach"`

	Photos      types.StringList `json:"photos,omitempty"`
	Attachments types.StringList `json:"attachments,omitempty"`

	Summary          *string `json:"summary,omitempty"`
	Recommendations  *string `json:"recommendations,omitempty"`
	InspectorOpinion *string `json:"inspectorOpinion,omitempty"`
}

// mergeFactory snapshots factory fields into the record, filling only the
// slots the operator has not touched. Called at most once per session.
func (r *Record) mergeFactory(factory *models.Factory) {
	if r.FactoryName == "" {
		r.FactoryName = factory.Name
	}
	if r.FactoryAddress == "" {
		r.FactoryAddress = factory.Address
	}
	if r.MapLink == nil {
		r.MapLink = factory.MapLink
	}
	if r.ContactName == nil {
		r.ContactName = factory.ContactName
	}
	if r.ContactPosition == nil {
		r.ContactPosition = factory.ContactPosition
	}
	if r.ContactEmail == nil {
		r.ContactEmail = factory.ContactEmail
	}
	if r.ContactPhone == nil {
		r.ContactPhone = factory.ContactPhone
	}
	if r.CurrentProducts == nil {
		r.CurrentProducts = factory.CurrentProducts
	}
	if r.EmployeeCount == nil {
		r.EmployeeCount = factory.EmployeeCount
	}
	if r.ShiftsPerDay == nil {
		r.ShiftsPerDay = factory.ShiftsPerDay
	}
	if r.WorkingDays == nil {
		r.WorkingDays = factory.WorkingDays
	}
	if r.Kashrut == nil {
		r.Kashrut = factory.Kashrut
	}
}

// recordFromInspection seeds a session from an existing record so the wizard
// edits in place.
func recordFromInspection(inspection *models.Inspection) Record {
	return Record{
		FactoryName:       inspection.FactoryName,
		Inspector:         inspection.Inspector,
		FactoryAddress:    inspection.FactoryAddress,
		GregorianDate:     inspection.GregorianDate,
		HebrewDate:        inspection.HebrewDate,
		MapLink:           inspection.MapLink,
		ContactName:       inspection.ContactName,
		ContactPosition:   inspection.ContactPosition,
		ContactEmail:      inspection.ContactEmail,
		ContactPhone:      inspection.ContactPhone,
		CurrentProducts:   inspection.CurrentProducts,
		EmployeeCount:     inspection.EmployeeCount,
		ShiftsPerDay:      inspection.ShiftsPerDay,
		WorkingDays:       inspection.WorkingDays,
		Kashrut:           inspection.Kashrut,
		Documents:         inspection.Documents,
		DocumentFiles:     inspection.DocumentFiles,
		Category:          inspection.Category,
		Ingredients:       inspection.Ingredients,
		BoilerDetails:     inspection.BoilerDetails,
		CleaningProtocols: inspection.CleaningProtocols,
		BishulYisrael:     inspection.BishulYisrael,
		AfiyatYisrael:     inspection.AfiyatYisrael,
		ChalavYisrael:     inspection.ChalavYisrael,
		LinatLaila:        inspection.LinatLaila,
		Kavush:            inspection.Kavush,
		Chadash:           inspection.Chadash,
		HafrashatChalla:   inspection.HafrashatChalla,
		KashrutPesach:     inspection.KashrutPesach,
		Photos:            inspection.Photos,
		Attachments:       inspection.Attachments,
		Summary:           inspection.Summary,
		Recommendations:   inspection.Recommendations,
		InspectorOpinion:  inspection.InspectorOpinion,
	}
}
