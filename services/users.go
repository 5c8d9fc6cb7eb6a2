// services/users.go
package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"boulder-session-system/models"
	"boulder-session-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionCookieMaxAge keeps members logged in for a season.
const SessionCookieMaxAge = 180 * 24 * time.Hour

type UserService struct {
	DB         *gorm.DB
	CookieName string
	Activity   *ActivityService
	Images     *utils.ImageStore
}

func NewUserService(db *gorm.DB, cookieName string, activity *ActivityService, images *utils.ImageStore) *UserService {
	return &UserService{DB: db, CookieName: cookieName, Activity: activity, Images: images}
}

// Exists reports whether userName is on the roster.
func (s *UserService) Exists(userName string) (bool, error) {
	var count int64
	if err := s.DB.Model(&models.User{}).Where("user_name = ?", userName).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListUsers returns the roster, ordered by name.
func (s *UserService) ListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := s.DB.Order("user_name").Find(&users).Error; err != nil {
		return storeFailure(c, "list users", err)
	}
	return c.JSON(users)
}

type loginRequest struct {
	UserName string `json:"user_name" validate:"required,max=64"`
}

// Login selects a roster member and pins it in the session cookie.
func (s *UserService) Login(c *fiber.Ctx) error {
	var req loginRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	userName := strings.TrimSpace(req.UserName)

	var user models.User
	if err := s.DB.First(&user, "user_name = ?", userName).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unknown user"})
		}
		return storeFailure(c, "login", err)
	}

	if err := s.Activity.RecordLogin(user.UserName); err != nil {
		log.Printf("⚠️ [LOGIN] failed to record access log for %s: %v", user.UserName, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     s.CookieName,
		Value:    user.UserName,
		Path:     "/",
		MaxAge:   int(SessionCookieMaxAge.Seconds()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	log.Printf("👤 [LOGIN] %s logged in", user.UserName)
	return c.JSON(user)
}

// Logout clears the session cookie.
func (s *UserService) Logout(c *fiber.Ctx) error {
	c.ClearCookie(s.CookieName)
	return c.SendStatus(fiber.StatusNoContent)
}

// Me returns the caller's roster entry.
func (s *UserService) Me(c *fiber.Ctx) error {
	var user models.User
	if err := s.DB.First(&user, "user_name = ?", currentUser(c)).Error; err != nil {
		return notFoundOr(c, "user", "load user", err)
	}
	return c.JSON(user)
}

type userRequest struct {
	UserName string `json:"user_name" validate:"required,max=64"`
	Color    string `json:"color" validate:"omitempty,hexcolor"`
	Icon     string `json:"icon" validate:"max=16"`
}

// CreateUser adds a roster member (admin).
func (s *UserService) CreateUser(c *fiber.Ctx) error {
	var req userRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	user := models.User{UserName: strings.TrimSpace(req.UserName), Color: req.Color, Icon: req.Icon}

	exists, err := s.Exists(user.UserName)
	if err != nil {
		return storeFailure(c, "create user", err)
	}
	if exists {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "user already exists"})
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return storeFailure(c, "create user", err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

type userUpdateRequest struct {
	Color *string `json:"color" validate:"omitempty,hexcolor"`
	Icon  *string `json:"icon" validate:"omitempty,max=16"`
}

// UpdateUser changes a member's color or icon (admin). Names are immutable.
func (s *UserService) UpdateUser(c *fiber.Ctx) error {
	var req userUpdateRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	var user models.User
	if err := s.DB.First(&user, "user_name = ?", c.Params("name")).Error; err != nil {
		return notFoundOr(c, "user", "update user", err)
	}
	if req.Color != nil {
		user.Color = *req.Color
	}
	if req.Icon != nil {
		user.Icon = *req.Icon
	}
	if err := s.DB.Save(&user).Error; err != nil {
		return storeFailure(c, "update user", err)
	}
	return c.JSON(user)
}

// DeleteUser removes a member (admin). Their logs stay for history.
func (s *UserService) DeleteUser(c *fiber.Ctx) error {
	res := s.DB.Unscoped().Where("user_name = ?", c.Params("name")).Delete(&models.User{})
	if res.Error != nil {
		return storeFailure(c, "delete user", res.Error)
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UploadIcon stores a member's icon image in R2 (admin).
func (s *UserService) UploadIcon(c *fiber.Ctx) error {
	file, err := c.FormFile("icon")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "icon file is required"})
	}

	var user models.User
	if err := s.DB.First(&user, "user_name = ?", c.Params("name")).Error; err != nil {
		return notFoundOr(c, "user", "upload icon", err)
	}

	url, err := s.Images.UploadImage(c.UserContext(), file, "icons")
	if err != nil {
		if errors.Is(err, utils.ErrUploadsDisabled) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "icon upload failed", "cause": err.Error()})
	}

	user.IconURL = &url
	if err := s.DB.Save(&user).Error; err != nil {
		return storeFailure(c, "upload icon", err)
	}
	return c.JSON(user)
}

// seedGymAttrs splits a seed gym into fields set only when the row is created
// (the slug, so URLs survive restarts) and fields refreshed on every import.
func seedGymAttrs(g utils.SeedGym) (name string, created, assigned models.Gym) {
	name = utils.NormalizeGymName(g.Name)
	created = models.Gym{Slug: utils.GymSlug(name, "gym-"+uuid.NewString()[:8])}
	assigned = models.Gym{AreaTag: g.Area, Lat: g.Lat, Lng: g.Lng}
	if g.ProfileURL != "" {
		url := g.ProfileURL
		assigned.ProfileURL = &url
	}
	return name, created, assigned
}

// ImportSeed upserts the users and gyms of a seed file by name.
func ImportSeed(db *gorm.DB, seed *utils.SeedFile) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, u := range seed.Users {
			user := models.User{UserName: u.Name, Color: u.Color, Icon: u.Icon}
			if err := tx.Where(models.User{UserName: u.Name}).
				Assign(models.User{Color: u.Color, Icon: u.Icon}).
				FirstOrCreate(&user).Error; err != nil {
				return err
			}
		}
		for _, g := range seed.Gyms {
			name, created, assigned := seedGymAttrs(g)
			gym := models.Gym{GymName: name}
			if err := tx.Where(models.Gym{GymName: name}).
				Attrs(created).
				Assign(assigned).
				FirstOrCreate(&gym).Error; err != nil {
				return err
			}
		}
		log.Printf("🌱 [SEED] imported %d users, %d gyms", len(seed.Users), len(seed.Gyms))
		return nil
	})
}
