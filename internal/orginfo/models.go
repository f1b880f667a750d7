package orginfo

import "time"

// Founder holds contact details of the school's founding organization.
type Founder struct {
	Name    string `json:"name" bson:"name"`
	Address string `json:"address" bson:"address"`
	Phone   string `json:"phone" bson:"phone"`
	Email   string `json:"email" bson:"email"`
	Website string `json:"website" bson:"website"`
}

// WorkSchedule is the fixed set of displayed time windows.
type WorkSchedule struct {
	Weekdays string `json:"weekdays" bson:"weekdays"`
	Saturday string `json:"saturday" bson:"saturday"`
	Sunday   string `json:"sunday" bson:"sunday"`
	Break    string `json:"break" bson:"break"`
}

// Branch is one training location.
type Branch struct {
	Name    string `json:"name" bson:"name"`
	Address string `json:"address" bson:"address"`
	Phone   string `json:"phone" bson:"phone"`
}

// Info is the organizational basic-info record. Only the most recent record
// is "current"; every update appends a new one, so all versions persist as
// history.
type Info struct {
	ID            string       `json:"id" bson:"_id,omitempty"`
	FullName      string       `json:"fullName" bson:"fullName"`
	ShortName     string       `json:"shortName" bson:"shortName"`
	FoundedDate   string       `json:"foundedDate" bson:"foundedDate"`
	LegalAddress  string       `json:"legalAddress" bson:"legalAddress"`
	ActualAddress string       `json:"actualAddress" bson:"actualAddress"`
	Phone         string       `json:"phone" bson:"phone"`
	Email         string       `json:"email" bson:"email"`
	Website       string       `json:"website" bson:"website"`
	Founder       Founder      `json:"founder" bson:"founder"`
	WorkSchedule  WorkSchedule `json:"workSchedule" bson:"workSchedule"`
	Branches      []Branch     `json:"branches" bson:"branches"`
	LastUpdated   time.Time    `json:"lastUpdated" bson:"lastUpdated"`
	UpdatedBy     string       `json:"updatedBy" bson:"updatedBy"`
}

// Summary is the history projection: just enough to show who changed what
// record and when.
type Summary struct {
	FullName    string    `json:"fullName" bson:"fullName"`
	ShortName   string    `json:"shortName" bson:"shortName"`
	LastUpdated time.Time `json:"lastUpdated" bson:"lastUpdated"`
	UpdatedBy   string    `json:"updatedBy" bson:"updatedBy"`
}

// PageMeta describes one history page.
type PageMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// HistoryPage is a page of summaries, newest first.
type HistoryPage struct {
	Entries []Summary `json:"entries"`
	Meta    PageMeta  `json:"meta"`
}
