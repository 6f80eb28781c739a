package schema

// Custom string types for type safety.
type (
	// Section identifies a rubric category (e.g. Governance, MonthsLiquidity).
	Section string

	// SectionGroup is the reporting group a section rolls up into.
	SectionGroup string

	// PerformanceCategory is the qualitative label derived from a percentage.
	PerformanceCategory string

	// SupportDesignation is the tier of external assistance assigned to an organization.
	SupportDesignation string

	// SupportPolicy names a support designation strategy.
	SupportPolicy string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for score history.
	DatabaseBackend string
)

// Sections scored from yes/no survey answers.
const (
	RiskMitigation Section = "RiskMitigation"
	Governance     Section = "Governance"
	Engagement     Section = "Engagement"
)

// Sections scored from pre-computed numeric inputs.
const (
	MembershipGrowth    Section = "MembershipGrowth"
	StaffRetention      Section = "StaffRetention"
	Grace               Section = "Grace"
	MonthsLiquidity     Section = "MonthsLiquidity"
	OperatingMargin     Section = "OperatingMargin"
	DebtRatio           Section = "DebtRatio"
	OperatingRevenueMix Section = "OperatingRevenueMix"
	CharitableRevenue   Section = "CharitableRevenue"
)

// All section groups supported.
const (
	OperationalGroup SectionGroup = "operational"
	FinancialGroup   SectionGroup = "financial"
)

// All performance categories, highest first.
const (
	Exemplary    PerformanceCategory = "Exemplary"
	Strong       PerformanceCategory = "Strong"
	Developing   PerformanceCategory = "Developing"
	NeedsSupport PerformanceCategory = "Needs Support"
)

// All support designations produced by the known strategies.
const (
	IndependentImprovement SupportDesignation = "Independent Improvement"
	StandardSupport        SupportDesignation = "Standard Support"
	Standard               SupportDesignation = "Standard" // two-tier only
	YUSASupport            SupportDesignation = "Y-USA Support"
)

// All support policies supported.
const (
	ThreeTierPolicy SupportPolicy = "three-tier" // default
	TwoTierPolicy   SupportPolicy = "two-tier"
)

// AffirmativeLiteral is the only raw answer that earns question points.
const AffirmativeLiteral = "Yes"

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidSupportPolicies lists all valid support policies.
var ValidSupportPolicies = map[SupportPolicy]struct{}{
	ThreeTierPolicy: {},
	TwoTierPolicy:   {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
