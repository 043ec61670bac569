package domain

// Company represents a corporate customer that requests quotes and sends payments.
type Company struct {
	CompanyID         string `json:"companyID"` // Primary Key (UUID)
	CompanyName       string `json:"companyName"`
	RegisteredCountry string `json:"registeredCountry"` // ISO 3166-1 alpha-2
	IndustrySector    string `json:"industrySector"`
	FXVolumeBand      string `json:"fxVolumeBand"`
	AuditFields
}
