package services

import (
	"encoding/json"
	"sync"
	"time"

	"storefront/entity"
	"storefront/repository"

	"github.com/google/uuid"
)

const (
	uiNamespace       = "ui"
	uiSchemaVersion   = 1
	defaultDismissDur = 5 * time.Second
)

// NotificationSink receives every shown notification; the websocket hub
// implements it. A nil sink is fine.
type NotificationSink interface {
	Publish(owner string, n entity.Notification)
}

// UIService is the transient UI container: keyed toast collections with
// auto-dismiss timers, modal open/closed flags, per-domain loading flags,
// and the persisted theme.
type UIService struct {
	mu     sync.Mutex
	repo   *repository.StateRepository
	sink   NotificationSink
	timers map[string]*time.Timer

	notifications map[string][]entity.Notification
	modals        map[string]map[string]bool
	loading       map[string]map[string]bool
	themes        map[string]string
}

// persistedUI is the durable shape of the ui namespace. Only the theme
// survives restarts; toasts and flags are transient by design.
type persistedUI struct {
	Theme string `json:"theme"`
}

var modalKeys = []string{"cart", "orderConfirmation", "userProfile", "orderDetails"}
var loadingKeys = []string{"menu", "cart", "orders", "user", "payment"}

func NewUIService(repo *repository.StateRepository) *UIService {
	return &UIService{
		repo:          repo,
		timers:        make(map[string]*time.Timer),
		notifications: make(map[string][]entity.Notification),
		modals:        make(map[string]map[string]bool),
		loading:       make(map[string]map[string]bool),
		themes:        make(map[string]string),
	}
}

func (s *UIService) SetSink(sink NotificationSink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sink = sink
}

// ShowNotification appends a toast and schedules its dismissal. A zero
// duration gets the 5 second default; a negative one makes it sticky.
func (s *UIService) ShowNotification(owner, typ, title, message string, duration time.Duration) entity.Notification {
	n := entity.Notification{
		ID:        uuid.NewString(),
		Type:      typ,
		Title:     title,
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
	}
	if duration == 0 {
		duration = defaultDismissDur
	}
	if duration > 0 {
		n.DurationMs = duration.Milliseconds()
	}

	s.mu.Lock()
	s.notifications[owner] = append(s.notifications[owner], n)
	sink := s.sink
	if duration > 0 {
		s.timers[n.ID] = time.AfterFunc(duration, func() {
			s.HideNotification(owner, n.ID)
		})
	}
	s.mu.Unlock()

	if sink != nil {
		sink.Publish(owner, n)
	}
	return n
}

func (s *UIService) HideNotification(owner, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
	list := s.notifications[owner]
	out := list[:0]
	for _, n := range list {
		if n.ID != id {
			out = append(out, n)
		}
	}
	s.notifications[owner] = out
}

func (s *UIService) ClearNotifications(owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notifications[owner] {
		if t, ok := s.timers[n.ID]; ok {
			t.Stop()
			delete(s.timers, n.ID)
		}
	}
	s.notifications[owner] = nil
}

func (s *UIService) Notifications(owner string) []entity.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Notification, len(s.notifications[owner]))
	copy(out, s.notifications[owner])
	return out
}

func (s *UIService) OpenModal(owner, modal string) {
	s.setModal(owner, modal, true)
}

func (s *UIService) CloseModal(owner, modal string) {
	s.setModal(owner, modal, false)
}

func (s *UIService) CloseAllModals(owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modals[owner] = defaultFlags(modalKeys)
}

func (s *UIService) setModal(owner, modal string, open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.modals[owner] == nil {
		s.modals[owner] = defaultFlags(modalKeys)
	}
	s.modals[owner][modal] = open
}

func (s *UIService) Modals(owner string) map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyFlags(s.modals[owner], modalKeys)
}

func (s *UIService) SetLoading(owner, key string, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading[owner] == nil {
		s.loading[owner] = defaultFlags(loadingKeys)
	}
	s.loading[owner][key] = loading
}

func (s *UIService) Loading(owner string) map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyFlags(s.loading[owner], loadingKeys)
}

// SetTheme stores the theme in memory and in the ui blob.
func (s *UIService) SetTheme(owner, theme string) error {
	s.mu.Lock()
	s.themes[owner] = theme
	s.mu.Unlock()
	data, err := json.Marshal(persistedUI{Theme: theme})
	if err != nil {
		return err
	}
	return s.repo.Put(uiNamespace, owner, uiSchemaVersion, data)
}

func (s *UIService) Theme(owner string) (string, error) {
	s.mu.Lock()
	if t, ok := s.themes[owner]; ok {
		s.mu.Unlock()
		return t, nil
	}
	s.mu.Unlock()

	blob, err := s.repo.Get(uiNamespace, owner)
	if err != nil {
		return "", err
	}
	theme := "system"
	if blob != nil {
		var p persistedUI
		if err := json.Unmarshal(blob.Data, &p); err != nil {
			return "", err
		}
		if p.Theme != "" {
			theme = p.Theme
		}
	}
	s.mu.Lock()
	s.themes[owner] = theme
	s.mu.Unlock()
	return theme, nil
}

func defaultFlags(keys []string) map[string]bool {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = false
	}
	return m
}

func copyFlags(src map[string]bool, keys []string) map[string]bool {
	out := defaultFlags(keys)
	for k, v := range src {
		out[k] = v
	}
	return out
}
