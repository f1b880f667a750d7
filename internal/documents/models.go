package documents

import "time"

// Category classifies a registry document. The set is fixed; write paths
// reject values outside it, but records that already carry other values
// still round-trip on read.
type Category string

const (
	CategoryCharter       Category = "charter"
	CategoryLicense       Category = "license"
	CategoryAccreditation Category = "accreditation"
	CategoryRegulations   Category = "regulations"
	CategoryReports       Category = "reports"
	CategoryCollective    Category = "collective"
	CategoryPrescriptions Category = "prescriptions"
)

// KnownCategories returns the seven known categories in display order.
func KnownCategories() []Category {
	return []Category{
		CategoryCharter,
		CategoryLicense,
		CategoryAccreditation,
		CategoryRegulations,
		CategoryReports,
		CategoryCollective,
		CategoryPrescriptions,
	}
}

// Known reports whether the category belongs to the fixed set.
func (c Category) Known() bool {
	switch c {
	case CategoryCharter, CategoryLicense, CategoryAccreditation,
		CategoryRegulations, CategoryReports, CategoryCollective,
		CategoryPrescriptions:
		return true
	}
	return false
}

// Status is the document lifecycle state, independent of deletion.
type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
	StatusExpired  Status = "expired"
)

// Document is a registry entry for one of the school's legal or regulatory
// documents. File bytes live in external object storage; the registry only
// keeps the reference.
type Document struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description" bson:"description"`
	Category    Category   `json:"category" bson:"category"`
	Status      Status     `json:"status" bson:"status"`
	UploadDate  time.Time  `json:"uploadDate" bson:"uploadDate"`
	LastUpdate  time.Time  `json:"lastUpdate" bson:"lastUpdate"`
	ExpiryDate  *time.Time `json:"expiryDate,omitempty" bson:"expiryDate,omitempty"`
	FileURL     string     `json:"fileUrl,omitempty" bson:"fileUrl,omitempty"`
	FileName    string     `json:"fileName,omitempty" bson:"fileName,omitempty"`
	FileSize    int64      `json:"fileSize,omitempty" bson:"fileSize,omitempty"`
}

// Expired reports whether the document's expiry date lies in the past.
// Advisory only; no status transition is performed automatically.
func (d *Document) Expired(now time.Time) bool {
	return d.ExpiryDate != nil && d.ExpiryDate.Before(now)
}

// Update is a partial document change. Nil fields keep their prior value.
type Update struct {
	Title       *string
	Description *string
	Category    *Category
	Status      *Status
	ExpiryDate  *time.Time
	FileURL     *string
	FileName    *string
	FileSize    *int64
}

// CategoryCount is one row of the per-category aggregation.
type CategoryCount struct {
	Category string `json:"category" bson:"_id"`
	Count    int64  `json:"count" bson:"count"`
}

// Stats is the registry-wide aggregate view.
type Stats struct {
	TotalDocuments  int64           `json:"totalDocuments"`
	ActiveDocuments int64           `json:"activeDocuments"`
	ByCategory      []CategoryCount `json:"byCategory"`
	GeneratedAt     time.Time       `json:"generatedAt"`
}

// Grouped maps each known category to its documents, most recent upload
// first. Documents with categories outside the known set are excluded.
type Grouped map[Category][]*Document
