package services

import (
	"sync"
	"testing"
	"time"

	"storefront/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu   sync.Mutex
	sent []entity.Notification
}

func (s *recordingSink) Publish(_ string, n entity.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, n)
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func TestShowNotificationDefaultsAndPublishes(t *testing.T) {
	svc := NewUIService(newTestStateRepo(t))
	sink := &recordingSink{}
	svc.SetSink(sink)

	n := svc.ShowNotification("u1", entity.NotifySuccess, "Order placed", "all good", 0)
	assert.NotEmpty(t, n.ID)
	assert.EqualValues(t, 5000, n.DurationMs, "zero duration gets the default")
	assert.Equal(t, 1, sink.count())

	list := svc.Notifications("u1")
	require.Len(t, list, 1)
	assert.Equal(t, n.ID, list[0].ID)
	assert.Empty(t, svc.Notifications("u2"))
}

func TestNotificationAutoDismiss(t *testing.T) {
	svc := NewUIService(newTestStateRepo(t))

	svc.ShowNotification("u1", entity.NotifyInfo, "quick", "gone soon", 20*time.Millisecond)
	require.Len(t, svc.Notifications("u1"), 1)

	assert.Eventually(t, func() bool {
		return len(svc.Notifications("u1")) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestStickyNotificationStays(t *testing.T) {
	svc := NewUIService(newTestStateRepo(t))

	n := svc.ShowNotification("u1", entity.NotifyWarning, "heads up", "stays put", -1)
	assert.Zero(t, n.DurationMs)

	time.Sleep(30 * time.Millisecond)
	require.Len(t, svc.Notifications("u1"), 1)

	svc.HideNotification("u1", n.ID)
	assert.Empty(t, svc.Notifications("u1"))
}

func TestClearNotifications(t *testing.T) {
	svc := NewUIService(newTestStateRepo(t))

	svc.ShowNotification("u1", entity.NotifyInfo, "a", "a", -1)
	svc.ShowNotification("u1", entity.NotifyInfo, "b", "b", -1)
	svc.ShowNotification("u2", entity.NotifyInfo, "c", "c", -1)

	svc.ClearNotifications("u1")
	assert.Empty(t, svc.Notifications("u1"))
	assert.Len(t, svc.Notifications("u2"), 1)
}

func TestModalFlags(t *testing.T) {
	svc := NewUIService(newTestStateRepo(t))

	modals := svc.Modals("u1")
	require.Len(t, modals, 4)
	for k, open := range modals {
		assert.False(t, open, k)
	}

	svc.OpenModal("u1", "cart")
	svc.OpenModal("u1", "orderDetails")
	modals = svc.Modals("u1")
	assert.True(t, modals["cart"])
	assert.True(t, modals["orderDetails"])

	svc.CloseAllModals("u1")
	for k, open := range svc.Modals("u1") {
		assert.False(t, open, k)
	}
}

func TestLoadingFlags(t *testing.T) {
	svc := NewUIService(newTestStateRepo(t))

	loading := svc.Loading("u1")
	require.Len(t, loading, 5)

	svc.SetLoading("u1", "payment", true)
	assert.True(t, svc.Loading("u1")["payment"])
	assert.False(t, svc.Loading("u1")["menu"])

	svc.SetLoading("u1", "payment", false)
	assert.False(t, svc.Loading("u1")["payment"])
}

func TestThemePersistsAcrossRestart(t *testing.T) {
	repo := newTestStateRepo(t)

	svc := NewUIService(repo)
	theme, err := svc.Theme("u1")
	require.NoError(t, err)
	assert.Equal(t, "system", theme, "unset theme falls back to system")

	require.NoError(t, svc.SetTheme("u1", "dark"))

	// A fresh service over the same store sees the stored theme; toasts and
	// flags do not survive.
	svc2 := NewUIService(repo)
	theme, err = svc2.Theme("u1")
	require.NoError(t, err)
	assert.Equal(t, "dark", theme)
	assert.Empty(t, svc2.Notifications("u1"))
}
