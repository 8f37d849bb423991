package service

import (
	"context"
	"encoding/json"
	"time"

	"artscore_backend/internal/model"
	"artscore_backend/internal/repository"

	"github.com/go-redis/redis/v8"
)

const catalogCacheTTL = 6 * time.Hour

// CatalogService serves the static style/detail/room reference data with a
// redis cache-aside; the database stays authoritative.
type CatalogService struct {
	CatalogRepo *repository.CatalogRepository
	Redis       *redis.Client
}

func NewCatalogService(catalogRepo *repository.CatalogRepository, rdb *redis.Client) *CatalogService {
	return &CatalogService{
		CatalogRepo: catalogRepo,
		Redis:       rdb,
	}
}

func cacheGet[T any](ctx context.Context, rdb *redis.Client, key string, out *T) bool {
	if rdb == nil {
		return false
	}
	val, err := rdb.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(val), out) == nil
}

func cacheSet(ctx context.Context, rdb *redis.Client, key string, v interface{}) {
	if rdb == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	rdb.Set(ctx, key, data, catalogCacheTTL)
}

func (s *CatalogService) GetStyles(ctx context.Context) ([]model.Style, error) {
	var styles []model.Style
	if cacheGet(ctx, s.Redis, "catalog:styles", &styles) {
		return styles, nil
	}

	styles, err := s.CatalogRepo.ListStyles()
	if err != nil {
		return nil, err
	}
	cacheSet(ctx, s.Redis, "catalog:styles", styles)
	return styles, nil
}

func (s *CatalogService) GetDetails(ctx context.Context) ([]model.Detail, error) {
	var details []model.Detail
	if cacheGet(ctx, s.Redis, "catalog:details", &details) {
		return details, nil
	}

	details, err := s.CatalogRepo.ListDetails()
	if err != nil {
		return nil, err
	}
	cacheSet(ctx, s.Redis, "catalog:details", details)
	return details, nil
}

func (s *CatalogService) GetRooms(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	if cacheGet(ctx, s.Redis, "catalog:rooms", &rooms) {
		return rooms, nil
	}

	rooms, err := s.CatalogRepo.ListRooms()
	if err != nil {
		return nil, err
	}
	cacheSet(ctx, s.Redis, "catalog:rooms", rooms)
	return rooms, nil
}

func (s *CatalogService) GetQuestions(ctx context.Context, quizID string) ([]model.QuizQuestion, error) {
	var questions []model.QuizQuestion
	key := "catalog:questions:" + quizID
	if cacheGet(ctx, s.Redis, key, &questions) {
		return questions, nil
	}

	questions, err := s.CatalogRepo.ListQuestions(quizID)
	if err != nil {
		return nil, err
	}
	cacheSet(ctx, s.Redis, key, questions)
	return questions, nil
}
