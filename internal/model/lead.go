package model

type LeadStatus string

const (
	LeadNew       LeadStatus = "new"
	LeadContacted LeadStatus = "contacted"
	LeadQualified LeadStatus = "qualified"
	LeadWon       LeadStatus = "won"
	LeadLost      LeadStatus = "lost"
)

// leadTransitions lists the allowed pipeline moves per status.
var leadTransitions = map[LeadStatus][]LeadStatus{
	LeadNew:       {LeadContacted, LeadLost},
	LeadContacted: {LeadQualified, LeadLost},
	LeadQualified: {LeadWon, LeadLost},
	LeadWon:       {},
	LeadLost:      {},
}

func (s LeadStatus) CanTransitionTo(next LeadStatus) bool {
	for _, allowed := range leadTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// swagger:model Lead
type Lead struct {
	BaseModel
	PartnerID    uint       `gorm:"not null;index" json:"partnerId"`
	Partner      *User      `gorm:"foreignKey:PartnerID" json:"partner,omitempty"`
	CustomerName string     `gorm:"size:150;not null" json:"customerName"`
	Email        string     `gorm:"size:100" json:"email"`
	Phone        string     `gorm:"size:30" json:"phone"`
	Notes        string     `gorm:"type:text" json:"notes"`
	Status       LeadStatus `gorm:"type:enum('new','contacted','qualified','won','lost');default:'new'" json:"status"`
	Commission   float64    `gorm:"default:0" json:"commission"`
}

func (Lead) TableName() string {
	return "leads"
}
