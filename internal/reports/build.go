package reports

import (
	"fmt"

	"github.com/kosherspect/kosherspect-backend/pkg/db/models"
	"github.com/kosherspect/kosherspect-backend/pkg/enums"
	"github.com/kosherspect/kosherspect-backend/pkg/types"
)

// Build resolves an inspection against the template into a print-ready
// Document. The transform is pure: no clock, no randomness, no IO.
func Build(inspection *models.Inspection, tpl Template) Document {
	doc := Document{TemplateVersion: tpl.Version}
	doc.Sections = append(doc.Sections,
		headerSection(tpl),
		identitySection(inspection, tpl),
		datesSection(inspection, tpl),
		addressSection(inspection, tpl),
		purposeSection(tpl),
		contactSection(inspection, tpl),
		backgroundSection(inspection, tpl),
		documentsSection(inspection, tpl),
		generalSection(tpl),
		categorySection(inspection, tpl),
		specialSection(inspection, tpl),
		ingredientsSection(inspection, tpl),
		boilerSection(inspection, tpl),
		cleaningSection(inspection, tpl),
		productionSection(tpl),
		kosherizationSection(tpl),
		summarySection(inspection, tpl),
		footerSection(tpl),
	)
	return doc
}

func headerSection(tpl Template) Section {
	return newSection("header").
		line(tpl.Header, StyleHeader, 15).
		line(tpl.Title, StyleTitle, 8).
		line(tpl.Subtitle, StyleCenteredSmall, 15).
		build()
}

func identitySection(inspection *models.Inspection, tpl Template) Section {
	return newSection("identity").
		line(tpl.FactoryLinePrefix+inspection.FactoryName, StyleField, 8).
		line(tpl.InspectorLinePrefix+inspection.Inspector, StyleField, 15).
		build()
}

func datesSection(inspection *models.Inspection, tpl Template) Section {
	hebrew := ""
	if inspection.HebrewDate != nil {
		hebrew = *inspection.HebrewDate
	}
	return newSection("dates").
		line(tpl.DatesHeading, StyleField, 8).
		line(tpl.HebrewDatePrefix+hebrew, StyleBody, 6).
		line(tpl.GregorianDatePrefix+inspection.GregorianDate, StyleBody, 15).
		build()
}

func addressSection(inspection *models.Inspection, tpl Template) Section {
	b := newSection("address").
		line(tpl.AddressHeading, StyleField, 8).
		line(inspection.FactoryAddress, StyleBody, 8)
	if inspection.MapLink != nil && *inspection.MapLink != "" {
		b.line(tpl.MapLinkHeading, StyleField, 6).
			line(*inspection.MapLink, StyleSmall, 10)
	}
	return b.line(tpl.TravelNote, StyleBody, 15).build()
}

func purposeSection(tpl Template) Section {
	return newSection("purpose").
		line(tpl.PurposeHeading, StyleField, 8).
		line(tpl.PurposeBody, StyleBody, 15).
		build()
}

func contactSection(inspection *models.Inspection, tpl Template) Section {
	b := newSection("contact").
		line(tpl.ContactHeading, StyleField, 8).
		line(tpl.ContactNote, StyleSmall, 6)
	addIfSet := func(label string, value *string) {
		if value != nil && *value != "" {
			b.line(label+": "+*value, StyleBody, 6)
		}
	}
	addIfSet("Name", inspection.ContactName)
	addIfSet("Position", inspection.ContactPosition)
	addIfSet("Email", inspection.ContactEmail)
	addIfSet("Phone", inspection.ContactPhone)
	return b.pad(10).build()
}

func backgroundSection(inspection *models.Inspection, tpl Template) Section {
	b := newSection("background").
		line(tpl.BackgroundHeading, StyleSection, 10).
		line(tpl.BackgroundNote, StyleSmall, 8)

	if inspection.CurrentProducts != nil && *inspection.CurrentProducts != "" {
		b.line(tpl.ProductsQuestion, StyleSmallBold, 6).
			line(*inspection.CurrentProducts, StyleSmall, 8)
	}

	b.line(tpl.ProductTypesQuestion, StyleSmallBold, 6)
	for i, bullet := range tpl.ProductTypeBullets {
		gap := 5.0
		if i == len(tpl.ProductTypeBullets)-1 {
			gap = 10
		}
		b.line("• "+bullet, StyleBullet, gap)
	}

	addCount := func(question string, value *int) {
		if value != nil {
			b.line(fmt.Sprintf("%s %d", question, *value), StyleBody, 6)
		}
	}
	addCount(tpl.EmployeeQuestion, inspection.EmployeeCount)
	addCount(tpl.ShiftsQuestion, inspection.ShiftsPerDay)
	addCount(tpl.WorkingDaysQuestion, inspection.WorkingDays)
	b.pad(8)

	b.line(tpl.ShutdownQuestion, StyleBody, 10)
	if inspection.Kashrut != nil && *inspection.Kashrut != "" {
		b.line(tpl.CertificationQuestion+" "+*inspection.Kashrut, StyleBody, 6)
	}
	return b.line(tpl.PastCertification, StyleBody, 15).build()
}

// documentsSection always renders all four checklist rows, each suffixed
// with YES or NO.
func documentsSection(inspection *models.Inspection, tpl Template) Section {
	checklist := types.DocumentChecklist{}
	if inspection.Documents != nil {
		checklist = *inspection.Documents
	}
	checked := map[enums.DocumentKey]bool{
		enums.DocumentKeyMasterIngredientList: checklist.MasterIngredientList,
		enums.DocumentKeyBlueprint:            checklist.Blueprint,
		enums.DocumentKeyFlowchart:            checklist.Flowchart,
		enums.DocumentKeyBoilerBlueprint:      checklist.BoilerBlueprint,
	}

	b := newSection("documents").
		line(tpl.DocumentsHeading, StyleSection, 8).
		line(tpl.DocumentsNote, StyleSmall, 10)
	for i, item := range tpl.DocumentItems {
		answer := "NO"
		if checked[item.Key] {
			answer = "YES"
		}
		gap := 6.0
		if i == len(tpl.DocumentItems)-1 {
			gap = 15
		}
		b.line(item.Label+" "+answer, StyleBody, gap)
	}
	return b.build()
}

func generalSection(tpl Template) Section {
	b := newSection("general").
		line(tpl.GeneralHeading, StyleSection, 8)
	for i, note := range tpl.GeneralNotes {
		gap := 6.0
		if i == len(tpl.GeneralNotes)-1 {
			gap = 15
		}
		b.line(note, StyleSmall, gap)
	}
	return b.build()
}

func categorySection(inspection *models.Inspection, tpl Template) Section {
	b := newSection("category").
		line(tpl.CategoryHeading, StyleSection, 8).
		line(tpl.CategoryNote, StyleSmall, 8)
	if inspection.Category != nil {
		if paragraph, ok := tpl.CategoryParagraphs[*inspection.Category]; ok {
			b.line(paragraph, StyleSmall, 15)
		}
	}
	return b.build()
}

// specialSection prints a bullet for every requirement flag that is set, in
// canonical order.
func specialSection(inspection *models.Inspection, tpl Template) Section {
	flags := []bool{
		inspection.BishulYisrael,
		inspection.AfiyatYisrael,
		inspection.ChalavYisrael,
		inspection.LinatLaila,
		inspection.Kavush,
		inspection.Chadash,
		inspection.HafrashatChalla,
		inspection.KashrutPesach,
	}
	b := newSection("special").
		line(tpl.SpecialHeading, StyleSection, 10)
	for i, set := range flags {
		if set {
			b.line("• "+specialRequirementLabels[i], StyleBody, 6)
		}
	}
	return b.pad(10).build()
}

func ingredientsSection(inspection *models.Inspection, tpl Template) Section {
	b := newSection("ingredients").
		line(tpl.IngredientsHeading, StyleSection, 8).
		line(tpl.IngredientsNote, StyleSmall, 6)
	if inspection.Ingredients != nil && *inspection.Ingredients != "" {
		b.line(*inspection.Ingredients, StyleSmall, 10)
	}
	return b.build()
}

func boilerSection(inspection *models.Inspection, tpl Template) Section {
	b := newSection("boiler").
		line(tpl.BoilerHeading, StyleSection, 8)
	for _, note := range tpl.BoilerNotes {
		b.line(note, StyleSmall, 6)
	}
	if inspection.BoilerDetails != nil && *inspection.BoilerDetails != "" {
		b.line(*inspection.BoilerDetails, StyleSmall, 10)
	}
	return b.build()
}

func cleaningSection(inspection *models.Inspection, tpl Template) Section {
	b := newSection("cleaning").
		line(tpl.CleaningHeading, StyleSection, 8)
	for _, note := range tpl.CleaningNotes {
		b.line(note, StyleSmall, 6)
	}
	if inspection.CleaningProtocols != nil && *inspection.CleaningProtocols != "" {
		b.line(*inspection.CleaningProtocols, StyleSmall, 10)
	}
	return b.build()
}

func productionSection(tpl Template) Section {
	b := newSection("production").
		line(tpl.ProductionHeading, StyleSection, 8)
	for i, note := range tpl.ProductionNotes {
		gap := 6.0
		if i == len(tpl.ProductionNotes)-1 {
			gap = 15
		}
		b.line(note, StyleSmall, gap)
	}
	return b.build()
}

func kosherizationSection(tpl Template) Section {
	b := newSection("kosherization").
		line(tpl.KosherizationHeading, StyleSection, 8)
	for i, note := range tpl.KosherizationNotes {
		gap := 6.0
		if i == len(tpl.KosherizationNotes)-1 {
			gap = 15
		}
		b.line(note, StyleSmall, gap)
	}
	return b.build()
}

func summarySection(inspection *models.Inspection, tpl Template) Section {
	b := newSection("summary").
		line(tpl.SummaryHeading, StyleSection, 8).
		line(tpl.SummaryNote, StyleSmall, 8)
	addBlock := func(heading string, value *string, gap float64) {
		if value != nil && *value != "" {
			b.line(heading, StyleSmallBold, 6).
				line(*value, StyleSmall, gap)
		}
	}
	addBlock(tpl.SummaryPointsHeading, inspection.Summary, 8)
	addBlock(tpl.RecommendationsHeading, inspection.Recommendations, 8)
	addBlock(tpl.OpinionHeading, inspection.InspectorOpinion, 15)
	return b.build()
}

func footerSection(tpl Template) Section {
	return newSection("footer").
		lead(20).
		line(tpl.SignatureLine, StyleBody, 10).
		line(tpl.ContactLine, StyleBody, 15).
		line(tpl.ClosingPhrase, StyleCenteredSmall, 0).
		build()
}
