package models

// LegacyRow is the schema-less persisted form kept from the superseded
// ingestion path: one JSON blob per auto-assigned id.
type LegacyRow struct {
	ID             int64  `gorm:"primaryKey"`
	RowContentJSON string `gorm:"type:text;column:row_content_json"`
}

func (LegacyRow) TableName() string {
	return "excel_data_universal"
}
