package model

// swagger:model Room
type Room struct {
	BaseModel
	Name        string `gorm:"size:100;unique;not null" json:"name"`
	Slug        string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"size:500" json:"description"`
}

func (Room) TableName() string {
	return "rooms"
}

// swagger:model Style
type Style struct {
	BaseModel
	Name        string       `gorm:"size:100;unique;not null" json:"name"`
	Slug        string       `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Description string       `gorm:"type:text" json:"description"`
	Images      []StyleImage `gorm:"foreignKey:StyleID" json:"images,omitempty"`
}

func (Style) TableName() string {
	return "styles"
}

// swagger:model StyleImage
type StyleImage struct {
	BaseModel
	StyleID uint       `gorm:"not null;index" json:"styleId"`
	RoomID  *uint      `gorm:"index" json:"roomId,omitempty"`
	URL     string     `gorm:"size:255;not null" json:"url"`
	Tags    []ImageTag `gorm:"foreignKey:StyleImageID" json:"tags,omitempty"`
}

func (StyleImage) TableName() string {
	return "style_images"
}

// swagger:model Detail
type Detail struct {
	BaseModel
	Name     string `gorm:"size:100;unique;not null" json:"name"`
	Slug     string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Category string `gorm:"size:50" json:"category"` // material, fixture, color
}

func (Detail) TableName() string {
	return "details"
}

// ImageTag associates a detail with a rectangle on a style image, used for
// spatial hit-testing against comment coordinates.
//
// swagger:model ImageTag
type ImageTag struct {
	BaseModel
	StyleImageID uint    `gorm:"not null;index" json:"styleImageId"`
	DetailID     uint    `gorm:"not null;index" json:"detailId"`
	X            float64 `gorm:"not null" json:"x"`
	Y            float64 `gorm:"not null" json:"y"`
	Width        float64 `gorm:"not null" json:"width"`
	Height       float64 `gorm:"not null" json:"height"`
}

func (ImageTag) TableName() string {
	return "image_tags"
}

// Contains reports whether the point (x, y) falls inside the tag rectangle.
func (t *ImageTag) Contains(x, y float64) bool {
	return x >= t.X && x <= t.X+t.Width && y >= t.Y && y <= t.Y+t.Height
}

// swagger:model QuizQuestion
type QuizQuestion struct {
	BaseModel
	QuizID  string `gorm:"size:50;index;not null" json:"quizId"`
	Text    string `gorm:"size:500;not null" json:"text"`
	Kind    string `gorm:"size:30;default:'single_choice'" json:"kind"`
	Options string `gorm:"type:text" json:"options"` // JSON-encoded option list
	Order   int    `gorm:"default:0" json:"order"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}
