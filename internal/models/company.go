package models

// Company is the persisted form of a customer organisation.
type Company struct {
	CompanyID         string `db:"company_id"`
	CompanyName       string `db:"company_name"`
	RegisteredCountry string `db:"registered_country"`
	IndustrySector    string `db:"industry_sector"`
	FXVolumeBand      string `db:"fx_volume_band"`
	AuditFields
}
