package model

// Setting is a persisted configuration record. Admin-tunable runtime
// configuration lives here, never only in process memory.
//
// swagger:model Setting
type Setting struct {
	BaseModel
	Key   string `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value string `gorm:"size:1000" json:"value"`
}

func (Setting) TableName() string {
	return "settings"
}
