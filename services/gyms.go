// services/gyms.go
package services

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"boulder-session-system/models"
	"boulder-session-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultRecommendationLimit is how many gyms the recommendation list shows.
const DefaultRecommendationLimit = 3

var errGymNameTaken = errors.New("another gym already uses that name")

type GymService struct {
	DB     *gorm.DB
	Clock  Clock
	Images *utils.ImageStore
}

func NewGymService(db *gorm.DB, clock Clock, images *utils.ImageStore) *GymService {
	return &GymService{DB: db, Clock: clock, Images: images}
}

// ListGyms returns every gym, optionally filtered by ?area=.
func (s *GymService) ListGyms(c *fiber.Ctx) error {
	q := s.DB.Model(&models.Gym{})
	if area := c.Query("area"); area != "" {
		q = q.Where("area_tag = ?", area)
	}
	var gyms []models.Gym
	if err := q.Order("gym_name").Find(&gyms).Error; err != nil {
		return storeFailure(c, "list gyms", err)
	}
	return c.JSON(gyms)
}

// GetGym looks a gym up by slug.
func (s *GymService) GetGym(c *fiber.Ctx) error {
	var gym models.Gym
	if err := s.DB.First(&gym, "slug = ?", c.Params("slug")).Error; err != nil {
		return notFoundOr(c, "gym", "load gym", err)
	}
	return c.JSON(gym)
}

// SearchGyms matches ?q= against transliterated gym names and area tags.
func (s *GymService) SearchGyms(c *fiber.Ctx) error {
	var gyms []models.Gym
	if err := s.DB.Order("gym_name").Find(&gyms).Error; err != nil {
		return storeFailure(c, "search gyms", err)
	}
	return c.JSON(FilterGyms(gyms, c.Query("q")))
}

// FilterGyms keeps gyms whose name or area contains query after folding both to ASCII.
func FilterGyms(gyms []models.Gym, query string) []models.Gym {
	key := utils.SearchKey(query)
	out := []models.Gym{}
	for _, g := range gyms {
		if key == "" ||
			strings.Contains(utils.SearchKey(g.GymName), key) ||
			strings.Contains(utils.SearchKey(g.AreaTag), key) {
			out = append(out, g)
		}
	}
	return out
}

type scoredGymResponse struct {
	GymName string   `json:"gym_name"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// Recommendations scores every gym for the caller on ?date= (default today)
// and returns the top ?limit= positive scores.
func (s *GymService) Recommendations(c *fiber.Ctx) error {
	date, ok := s.Clock.dateParam(c, "date")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid date (use YYYY-MM-DD)"})
	}
	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(DefaultRecommendationLimit)))
	if err != nil || limit < 0 {
		limit = DefaultRecommendationLimit
	}

	me := currentUser(c)
	snap, err := LoadSnapshot(c.UserContext(), s.DB, SnapshotQuery{Me: me, TargetDate: date})
	if err != nil {
		return storeFailure(c, "load recommendations", err)
	}

	start := time.Now()
	scores := ScoreGyms(snap.Gyms, date, snap.ScoreInput(me))
	observe("score_gyms", len(snap.Mine)+len(snap.Others), start)

	top := TopRecommendations(scores, limit)
	res := make([]scoredGymResponse, 0, len(top))
	for _, sc := range top {
		res = append(res, scoredGymResponse{GymName: sc.GymName, Score: sc.Score, Reasons: models.ReasonLabels(sc.Reasons)})
	}
	return c.JSON(fiber.Map{"date": date, "gyms": res})
}

type rankedGymResponse struct {
	models.GymWithMeta
	ReasonLabels []string `json:"reason_labels"`
}

// RankedGyms serves the three list views: ?mode=distance|freshset|overdue,
// ?date= (default today), optional ?lat=&lng= origin.
func (s *GymService) RankedGyms(c *fiber.Ctx) error {
	mode := models.RankMode(c.Query("mode", string(models.RankByDistance)))
	if !mode.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid mode (use: distance, freshset, overdue)"})
	}
	date, ok := s.Clock.dateParam(c, "date")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid date (use YYYY-MM-DD)"})
	}
	origin, err := parseOrigin(c.Query("lat"), c.Query("lng"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	me := currentUser(c)
	snap, err := LoadSnapshot(c.UserContext(), s.DB, SnapshotQuery{Me: me, TargetDate: date})
	if err != nil {
		return storeFailure(c, "load gym ranking", err)
	}

	start := time.Now()
	ranked := RankGyms(snap.Gyms, RankInput{Score: snap.ScoreInput(me), TargetDate: date, Origin: origin}, mode)
	observe("rank_gyms_"+string(mode), len(snap.Mine)+len(snap.Others), start)

	return c.JSON(fiber.Map{
		"mode":      mode,
		"date":      date,
		"primary":   withLabels(ranked.Primary),
		"secondary": withLabels(ranked.Secondary),
	})
}

func withLabels(metas []models.GymWithMeta) []rankedGymResponse {
	out := make([]rankedGymResponse, 0, len(metas))
	for _, m := range metas {
		out = append(out, rankedGymResponse{GymWithMeta: m, ReasonLabels: models.ReasonLabels(m.Score.Reasons)})
	}
	return out
}

// parseOrigin returns nil when both are empty; a half-specified origin is an error.
func parseOrigin(latStr, lngStr string) (*models.GeoPoint, error) {
	if latStr == "" && lngStr == "" {
		return nil, nil
	}
	if latStr == "" || lngStr == "" {
		return nil, errHalfCoordinates
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || math.IsNaN(lat) || lat < -90 || lat > 90 {
		return nil, errors.New("invalid lat")
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil || math.IsNaN(lng) || lng < -180 || lng > 180 {
		return nil, errors.New("invalid lng")
	}
	return &models.GeoPoint{Lat: lat, Lng: lng}, nil
}

var errHalfCoordinates = errors.New("lat and lng must be given together")

type gymRequest struct {
	GymName    string   `json:"gym_name" validate:"required,max=128"`
	ProfileURL *string  `json:"profile_url" validate:"omitempty,url"`
	AreaTag    string   `json:"area_tag" validate:"max=64"`
	Lat        *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng        *float64 `json:"lng" validate:"omitempty,longitude"`
}

// CreateGym adds a gym (admin).
func (s *GymService) CreateGym(c *fiber.Ctx) error {
	var req gymRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	if (req.Lat == nil) != (req.Lng == nil) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": errHalfCoordinates.Error()})
	}
	name := utils.NormalizeGymName(req.GymName)
	gym := models.Gym{
		GymName:    name,
		Slug:       utils.GymSlug(name, "gym-"+uuid.NewString()[:8]),
		ProfileURL: req.ProfileURL,
		AreaTag:    req.AreaTag,
		Lat:        req.Lat,
		Lng:        req.Lng,
	}

	var count int64
	if err := s.DB.Unscoped().Model(&models.Gym{}).Where("gym_name = ?", name).Count(&count).Error; err != nil {
		return storeFailure(c, "create gym", err)
	}
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "gym already exists"})
	}
	if err := s.DB.Create(&gym).Error; err != nil {
		return storeFailure(c, "create gym", err)
	}
	return c.Status(fiber.StatusCreated).JSON(gym)
}

// UpdateGym edits a gym (admin). A rename rewrites every log and schedule
// that references the old name in the same transaction.
func (s *GymService) UpdateGym(c *fiber.Ctx) error {
	var req gymRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	if (req.Lat == nil) != (req.Lng == nil) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": errHalfCoordinates.Error()})
	}
	oldName := utils.NormalizeGymName(c.Params("name"))
	newName := utils.NormalizeGymName(req.GymName)

	var updated models.Gym
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var gym models.Gym
		if err := tx.First(&gym, "gym_name = ?", oldName).Error; err != nil {
			return err
		}

		gym.ProfileURL = req.ProfileURL
		gym.AreaTag = req.AreaTag
		gym.Lat = req.Lat
		gym.Lng = req.Lng

		if newName != oldName {
			var taken int64
			if err := tx.Unscoped().Model(&models.Gym{}).Where("gym_name = ?", newName).Count(&taken).Error; err != nil {
				return err
			}
			if taken > 0 {
				return errGymNameTaken
			}
			if err := RenameGym(tx, oldName, newName); err != nil {
				return err
			}
			gym.GymName = newName
			gym.Slug = utils.GymSlug(newName, gym.Slug)
			if err := tx.Unscoped().Where("gym_name = ?", oldName).Delete(&models.Gym{}).Error; err != nil {
				return err
			}
			if err := tx.Create(&gym).Error; err != nil {
				return err
			}
		} else if err := tx.Save(&gym).Error; err != nil {
			return err
		}
		updated = gym
		return nil
	})
	if errors.Is(err, errGymNameTaken) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return notFoundOr(c, "gym", "update gym", err)
	}
	return c.JSON(updated)
}

// RenameGym moves every log and schedule from oldName to newName. Gym names are
// the join key, so this must run in the same transaction as the gym row change.
func RenameGym(tx *gorm.DB, oldName, newName string) error {
	if err := tx.Model(&models.ClimbingLog{}).Unscoped().
		Where("gym_name = ?", oldName).Update("gym_name", newName).Error; err != nil {
		return err
	}
	return tx.Model(&models.SetSchedule{}).Unscoped().
		Where("gym_name = ?", oldName).Update("gym_name", newName).Error
}

// DeleteGym removes a gym that nobody has logged yet (admin).
func (s *GymService) DeleteGym(c *fiber.Ctx) error {
	name := utils.NormalizeGymName(c.Params("name"))

	var refs int64
	if err := s.DB.Model(&models.ClimbingLog{}).Where("gym_name = ?", name).Count(&refs).Error; err != nil {
		return storeFailure(c, "delete gym", err)
	}
	if refs > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":     "cannot delete gym: still referenced by climbing logs",
			"log_count": refs,
		})
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("gym_name = ?", name).Delete(&models.SetSchedule{}).Error; err != nil {
			return err
		}
		res := tx.Unscoped().Where("gym_name = ?", name).Delete(&models.Gym{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return notFoundOr(c, "gym", "delete gym", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UploadPhoto stores a gym photo in R2 (admin).
func (s *GymService) UploadPhoto(c *fiber.Ctx) error {
	file, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "photo file is required"})
	}

	var gym models.Gym
	if err := s.DB.First(&gym, "gym_name = ?", utils.NormalizeGymName(c.Params("name"))).Error; err != nil {
		return notFoundOr(c, "gym", "upload photo", err)
	}

	url, err := s.Images.UploadImage(c.UserContext(), file, "gyms")
	if err != nil {
		if errors.Is(err, utils.ErrUploadsDisabled) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "photo upload failed", "cause": err.Error()})
	}

	gym.PhotoURL = &url
	if err := s.DB.Save(&gym).Error; err != nil {
		return storeFailure(c, "upload photo", err)
	}
	return c.JSON(gym)
}
