package repository

import (
	"artscore_backend/internal/model"

	"gorm.io/gorm"
)

type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

func (r *CatalogRepository) ListStyles() ([]model.Style, error) {
	var styles []model.Style
	err := r.DB.Order("id ASC").
		Preload("Images").
		Preload("Images.Tags").
		Find(&styles).Error
	return styles, err
}

func (r *CatalogRepository) FindStyle(id uint) (*model.Style, error) {
	var style model.Style
	err := r.DB.First(&style, id).Error
	if err != nil {
		return nil, err
	}
	return &style, nil
}

func (r *CatalogRepository) FindStylesByIDs(ids []uint) ([]model.Style, error) {
	var styles []model.Style
	err := r.DB.Where("id IN ?", ids).Find(&styles).Error
	return styles, err
}

func (r *CatalogRepository) ListDetails() ([]model.Detail, error) {
	var details []model.Detail
	err := r.DB.Order("id ASC").Find(&details).Error
	return details, err
}

func (r *CatalogRepository) FindDetailsByIDs(ids []uint) ([]model.Detail, error) {
	var details []model.Detail
	err := r.DB.Where("id IN ?", ids).Find(&details).Error
	return details, err
}

func (r *CatalogRepository) ListRooms() ([]model.Room, error) {
	var rooms []model.Room
	err := r.DB.Order("id ASC").Find(&rooms).Error
	return rooms, err
}

func (r *CatalogRepository) FindRoom(id uint) (*model.Room, error) {
	var room model.Room
	err := r.DB.First(&room, id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *CatalogRepository) ListQuestions(quizID string) ([]model.QuizQuestion, error) {
	var questions []model.QuizQuestion
	err := r.DB.Where("quiz_id = ?", quizID).Order("`order` ASC, id ASC").Find(&questions).Error
	return questions, err
}

func (r *CatalogRepository) FindQuestion(id uint) (*model.QuizQuestion, error) {
	var question model.QuizQuestion
	err := r.DB.First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *CatalogRepository) FindStyleImage(id uint) (*model.StyleImage, error) {
	var image model.StyleImage
	err := r.DB.Preload("Tags").First(&image, id).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// TagsForImage returns the image tags in catalog order (ascending ID),
// which is also the documented tie-break order for overlapping rectangles.
func (r *CatalogRepository) TagsForImage(imageID uint) ([]model.ImageTag, error) {
	var tags []model.ImageTag
	err := r.DB.Where("style_image_id = ?", imageID).Order("id ASC").Find(&tags).Error
	return tags, err
}
