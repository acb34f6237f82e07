package reports

import "github.com/kosherspect/kosherspect-backend/pkg/enums"

// Template carries every fixed string in the inspection report. Bumping
// Version signals that cached renders built from an older template are
// stale.
type Template struct {
	Version string

	Header   string
	Title    string
	Subtitle string

	FactoryLinePrefix   string
	InspectorLinePrefix string

	DatesHeading        string
	HebrewDatePrefix    string
	GregorianDatePrefix string

	AddressHeading string
	MapLinkHeading string
	TravelNote     string

	PurposeHeading string
	PurposeBody    string

	ContactHeading string
	ContactNote    string

	BackgroundHeading     string
	BackgroundNote        string
	ProductsQuestion      string
	ProductTypesQuestion  string
	ProductTypeBullets    []string
	EmployeeQuestion      string
	ShiftsQuestion        string
	WorkingDaysQuestion   string
	ShutdownQuestion      string
	CertificationQuestion string
	PastCertification     string

	DocumentsHeading string
	DocumentsNote    string
	DocumentItems    []DocumentItem

	GeneralHeading string
	GeneralNotes   []string

	CategoryHeading    string
	CategoryNote       string
	CategoryParagraphs map[enums.FactoryCategory]string

	SpecialHeading string

	IngredientsHeading string
	IngredientsNote    string

	BoilerHeading string
	BoilerNotes   []string

	CleaningHeading string
	CleaningNotes   []string

	ProductionHeading string
	ProductionNotes   []string

	KosherizationHeading string
	KosherizationNotes   []string

	SummaryHeading         string
	SummaryNote            string
	SummaryPointsHeading   string
	RecommendationsHeading string
	OpinionHeading         string

	SignatureLine string
	ContactLine   string
	ClosingPhrase string
}

// DocumentItem is one checklist row: the record key plus its printed label,
// including the Required!/Recommended!/Not required! tag.
type DocumentItem struct {
	Key   enums.DocumentKey
	Label string
}

// specialRequirementLabels holds the bullet labels in canonical print order.
var specialRequirementLabels = []string{
	"Bishul Yisrael (Jewish cooking)",
	"Afiyat Yisrael (Jewish baking)",
	"Chalav Yisrael (Jewish dairy)",
	"Linat Layla (overnight storage)",
	"Kavush (pickling)",
	"Chadash (new grain)",
	"Hafrashat Challah (challah separation)",
	"Kashrut for Passover",
}

// DefaultTemplate returns the house report wording.
func DefaultTemplate() Template {
	return Template{
		Version: "2026-03",

		Header:   "B'Ezrat Hashem",
		Title:    "Initial Factory Inspection Report",
		Subtitle: "For Internal Use Only - Do Not Forward!",

		FactoryLinePrefix:   "Initial inspection at factory: ",
		InspectorLinePrefix: "Inspector name: ",

		DatesHeading:        "Date Information:",
		HebrewDatePrefix:    "Hebrew Date: ",
		GregorianDatePrefix: "Gregorian Date: ",

		AddressHeading: "Factory Address:",
		MapLinkHeading: "Google Maps Link:",
		TravelNote:     "Factory is located approximately 45 minutes from the international airport",

		PurposeHeading: "Purpose of Visit:",
		PurposeBody:    "Initial inspection for kosher certification to produce in the factory.",

		ContactHeading: "Met at the factory with:",
		ContactNote:    "(Must specify main contact person)",

		BackgroundHeading:    "General Background:",
		BackgroundNote:       "Brief general background about the factory should be filled.",
		ProductsQuestion:     "What products do they currently manufacture?",
		ProductTypesQuestion: "Does the factory manufacture products that include:",
		ProductTypeBullets: []string{
			"Meat",
			"Dairy",
			"Seafood",
			"Grape products",
			"Other",
		},
		EmployeeQuestion:      "How many employees work at the factory?",
		ShiftsQuestion:        "How many shifts per day including shift hours?",
		WorkingDaysQuestion:   "How many days per week do they work?",
		ShutdownQuestion:      "If there is a need to shut down the factory/production line from time to time for kosherization, would this be possible?",
		CertificationQuestion: "Do they currently have kosher certification?",
		PastCertification:     "Did they have kosher certification in the past? (If yes, why did it stop?)",

		DocumentsHeading: "Documents:",
		DocumentsNote:    "The following documents should be requested and attached to the report:",
		DocumentItems: []DocumentItem{
			{Key: enums.DocumentKeyMasterIngredientList, Label: "Master ingredient list (general ingredient list of the factory) - Required!"},
			{Key: enums.DocumentKeyBlueprint, Label: "Blueprint/Floor plan (factory layout drawing) - Recommended!"},
			{Key: enums.DocumentKeyFlowchart, Label: "Flowchart (production process flow diagram) - Recommended!"},
			{Key: enums.DocumentKeyBoilerBlueprint, Label: "Boiler blueprint (boiler layout drawing) - Not required!"},
		},

		GeneralHeading: "General:",
		GeneralNotes: []string{
			"Always good to check the company's website before the visit and get an initial impression of the factory!",
			"It's advisable to visit the showroom and see products that might pose kashrut issues.",
			"It's advisable to request a catalog and review it to see products that might pose kashrut issues.",
		},

		CategoryHeading: "Factory Categorization:",
		CategoryNote:    "Before entering the production facility, try to classify the factory into a specific category:",
		CategoryParagraphs: map[enums.FactoryCategory]string{
			enums.FactoryCategoryTreif:  "Treif Category: (meat, seafood, non-Jewish cheese, etc.) - Factory has treif products, therefore must ensure kosherization solutions at every stage.",
			enums.FactoryCategoryIssur:  "Issur Category: (non-Jewish dairy, wine, etc.) - Factory has prohibited items, therefore must ensure kosherization solutions at every stage.",
			enums.FactoryCategoryG6:     "G6 Category: (non-kosher products that do not make production lines treif)",
			enums.FactoryCategoryKosher: "Kosher Factory Category: (all ingredients are kosher or G1)",
		},

		SpecialHeading: "Special Requirements to Check (if applicable):",

		IngredientsHeading: "Ingredients:",
		IngredientsNote:    "Request and attach to report: Master ingredient list (general ingredient list).",

		BoilerHeading: "Boiler:",
		BoilerNotes: []string{
			"Verify whether the steam system/boiler is returning or not.",
			"Verify if the boiler is shared with additional lines or other factories, and if so, whether there are prohibitions in the shared location.",
		},

		CleaningHeading: "Cleaning:",
		CleaningNotes: []string{
			"Specify the level of cleanliness in the factory in general.",
			"Specify the cleaning protocol they have in the factory for each tool in the production process, including temperature and if there is a damaging agent.",
		},

		ProductionHeading: "Production Process:",
		ProductionNotes: []string{
			"Detail the production process as much as possible and specify at each stage the type of equipment (plastic/stainless steel/fabric, etc.)",
			"Also specify at each stage the temperature (minus/room temperature/number of degrees)",
		},

		KosherizationHeading: "Kosherization:",
		KosherizationNotes: []string{
			"Is kosherization needed in the factory?",
			"If kosherization is needed, specify and detail how you think it should be done for each tool and each line.",
			"Must be detailed and emphasize maximum temperature for each and every tool.",
		},

		SummaryHeading:         "Summary:",
		SummaryNote:            "(To prevent unnecessary grief) Never give approval to factory owners on site. You can say there is a positive direction or clarify with them the points that need clarification. The decision is only by the kashrut rabbis.",
		SummaryPointsHeading:   "Summary of main points:",
		RecommendationsHeading: "Recommendations:",
		OpinionHeading:         "Inspector's Opinion:",

		SignatureLine: "Supervising Rabbi's Signature: ________________",
		ContactLine:   "Phone and Email Address: ________________",
		ClosingPhrase: `"With prayer that no fault will come from our hands"`,
	}
}
