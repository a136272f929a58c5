package models

import "time"

// Role enumerates the caller roles allowed to touch GVA reports.
type Role string

const (
	RoleVeterinarian Role = "veterinarian"
	RoleAdmin        Role = "admin"
	RoleParavet      Role = "paravet"
)

// Author identifies the user a report was computed for.
type Author struct {
	ID          string `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name"`
	Role        Role   `bson:"role" json:"role"`
	Institution string `bson:"institution,omitempty" json:"institution,omitempty"`
}

// Report is the persisted, immutable artifact of one GVA calculation.
type Report struct {
	ID           string       `bson:"_id" json:"id"`
	CreatedAt    time.Time    `bson:"created_at" json:"created_at"`
	Author       Author       `bson:"author" json:"author"`
	Inputs       CensusInput  `bson:"inputs" json:"inputs"`
	Results      Results      `bson:"results" json:"results"`
	SettingsUsed Coefficients `bson:"settings_used" json:"settings_used"`
}

// ReportFilter narrows a report listing.
type ReportFilter struct {
	AuthorID string
	Since    time.Time
	Limit    int
}

// DefaultReportLimit caps list responses.
const DefaultReportLimit = 100

// EffectiveLimit returns the limit to apply, bounded by DefaultReportLimit.
func (f ReportFilter) EffectiveLimit() int {
	if f.Limit <= 0 || f.Limit > DefaultReportLimit {
		return DefaultReportLimit
	}
	return f.Limit
}
