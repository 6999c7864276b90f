package services

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"storefront/entity"
	"storefront/repository"
	"storefront/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	userNamespace     = "user"
	userSchemaVersion = 1
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type UserService struct {
	mu        sync.Mutex
	DB        *gorm.DB
	StateRepo *repository.StateRepository
	JWTSecret string
	JWTTTL    time.Duration
	log       *logrus.Logger
}

// persistedUser is the durable shape of the user namespace: identity
// snapshot plus preferences, versioned like the other blobs.
type persistedUser struct {
	User            *entity.User       `json:"user"`
	IsAuthenticated bool               `json:"isAuthenticated"`
	Preferences     entity.Preferences `json:"preferences"`
}

func NewUserService(db *gorm.DB, stateRepo *repository.StateRepository, secret string, ttl time.Duration, log *logrus.Logger) *UserService {
	return &UserService{DB: db, StateRepo: stateRepo, JWTSecret: secret, JWTTTL: ttl, log: log}
}

type RegisterIn struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type AuthOut struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

func (s *UserService) Register(in *RegisterIn) (*AuthOut, error) {
	var count int64
	if err := s.DB.Model(&entity.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := entity.User{
		UserID:   "user-" + uuid.NewString(),
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hash),
		Phone:    in.Phone,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, err
	}

	if err := s.persistState(user.UserID, &user); err != nil {
		s.log.WithFields(logrus.Fields{"userId": user.UserID, "error": err.Error()}).Warn("persist user state failed")
	}

	token, err := utils.GenerateToken(user.UserID, user.Email, s.JWTSecret, s.JWTTTL)
	if err != nil {
		return nil, err
	}
	return &AuthOut{Token: token, User: &user}, nil
}

func (s *UserService) Login(email, password string) (*AuthOut, error) {
	var user entity.User
	err := s.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.persistState(user.UserID, &user); err != nil {
		s.log.WithFields(logrus.Fields{"userId": user.UserID, "error": err.Error()}).Warn("persist user state failed")
	}

	token, err := utils.GenerateToken(user.UserID, user.Email, s.JWTSecret, s.JWTTTL)
	if err != nil {
		return nil, err
	}
	return &AuthOut{Token: token, User: &user}, nil
}

func (s *UserService) Me(userID string) (*entity.User, entity.Preferences, error) {
	var user entity.User
	if err := s.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return nil, entity.Preferences{}, err
	}
	state, err := s.loadState(userID)
	if err != nil {
		return nil, entity.Preferences{}, err
	}
	return &user, state.Preferences, nil
}

type UpdateProfileIn struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (s *UserService) UpdateProfile(userID string, in *UpdateProfileIn) (*entity.User, error) {
	var user entity.User
	if err := s.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Phone != "" {
		user.Phone = in.Phone
	}
	if err := s.DB.Save(&user).Error; err != nil {
		return nil, err
	}
	if err := s.persistState(userID, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePreferences merges partial preference updates over the stored set.
type PreferencesIn struct {
	Theme         *string `json:"theme"`
	Notifications *bool   `json:"notifications"`
	Language      *string `json:"language"`
	Currency      *string `json:"currency"`
}

func (s *UserService) UpdatePreferences(owner string, in *PreferencesIn) (entity.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.loadState(owner)
	if err != nil {
		return entity.Preferences{}, err
	}
	if in.Theme != nil {
		state.Preferences.Theme = *in.Theme
	}
	if in.Notifications != nil {
		state.Preferences.Notifications = *in.Notifications
	}
	if in.Language != nil {
		state.Preferences.Language = *in.Language
	}
	if in.Currency != nil {
		state.Preferences.Currency = *in.Currency
	}

	data, err := json.Marshal(state)
	if err != nil {
		return entity.Preferences{}, err
	}
	if err := s.StateRepo.Put(userNamespace, owner, userSchemaVersion, data); err != nil {
		return entity.Preferences{}, err
	}
	return state.Preferences, nil
}

// migrateUserBlob backfills preferences added after version 0 blobs were
// written.
func migrateUserBlob(version int, raw map[string]any) map[string]any {
	if version == 0 {
		if _, ok := raw["preferences"]; !ok {
			raw["preferences"] = map[string]any{}
		}
	}
	return raw
}

func (s *UserService) loadState(owner string) (*persistedUser, error) {
	state := &persistedUser{Preferences: entity.DefaultPreferences()}
	blob, err := s.StateRepo.Get(userNamespace, owner)
	if err != nil {
		return nil, err
	}
	if blob == nil {
		return state, nil
	}
	raw := map[string]any{}
	if err := json.Unmarshal(blob.Data, &raw); err != nil {
		return nil, err
	}
	raw = migrateUserBlob(blob.Version, raw)
	migrated, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(migrated, state); err != nil {
		return nil, err
	}
	// Backfill defaults for zero-valued preference fields from older blobs.
	if state.Preferences.Theme == "" {
		defaults := entity.DefaultPreferences()
		defaults.Notifications = state.Preferences.Notifications
		if state.Preferences.Language != "" {
			defaults.Language = state.Preferences.Language
		}
		if state.Preferences.Currency != "" {
			defaults.Currency = state.Preferences.Currency
		}
		state.Preferences = defaults
	}
	return state, nil
}

func (s *UserService) persistState(owner string, user *entity.User) error {
	state, err := s.loadState(owner)
	if err != nil {
		return err
	}
	state.User = user
	state.IsAuthenticated = user != nil
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.StateRepo.Put(userNamespace, owner, userSchemaVersion, data)
}
