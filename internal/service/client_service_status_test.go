package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-mission-sync/models"
)

func TestStatusBroadcaster_SubscribeYieldsSnapshotFirst(t *testing.T) {
	b := NewStatusBroadcaster(models.SyncStatus{Engine: EngineHub, PendingCount: 3})

	var got []models.SyncStatus
	unsubscribe := b.Subscribe(func(s models.SyncStatus) { got = append(got, s) })
	defer unsubscribe()

	require.Len(t, got, 1, "подписчик сразу получает текущее состояние")
	assert.Equal(t, 3, got[0].PendingCount)

	b.Update(func(s *models.SyncStatus) { s.IsSyncing = true })
	b.Update(func(s *models.SyncStatus) { s.IsSyncing = false })

	require.Len(t, got, 3)
	assert.True(t, got[1].IsSyncing)
	assert.False(t, got[2].IsSyncing)
}

func TestStatusBroadcaster_UnsubscribeRemovesExactlyOne(t *testing.T) {
	b := NewStatusBroadcaster(models.SyncStatus{})

	var first, second int
	fn := func(models.SyncStatus) { first++ }
	unsubscribeFirst := b.Subscribe(fn)
	// та же функция, но отдельная регистрация
	unsubscribeSecond := b.Subscribe(func(models.SyncStatus) { second++ })
	require.Equal(t, 2, b.Subscribers())

	unsubscribeFirst()
	unsubscribeFirst()
	assert.Equal(t, 1, b.Subscribers(), "повторная отписка: no-op")

	b.Update(func(s *models.SyncStatus) { s.PendingCount = 1 })
	assert.Equal(t, 1, first, "только начальный снапшот")
	assert.Equal(t, 2, second)

	unsubscribeSecond()
	assert.Zero(t, b.Subscribers())
}

func TestStatusBroadcaster_ConcurrentUpdates(t *testing.T) {
	b := NewStatusBroadcaster(models.SyncStatus{})

	var mu sync.Mutex
	last := -1
	ordered := true
	b.Subscribe(func(s models.SyncStatus) {
		mu.Lock()
		defer mu.Unlock()
		if s.PendingCount < last {
			ordered = false
		}
		last = s.PendingCount
	})

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Update(func(s *models.SyncStatus) { s.PendingCount++ })
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, b.Snapshot().PendingCount)
	assert.True(t, ordered, "уведомления приходят в порядке изменений")
}

func TestStatusBroadcaster_CallbackMayReenter(t *testing.T) {
	b := NewStatusBroadcaster(models.SyncStatus{Engine: EngineCloud})

	var (
		got    []int
		nested int
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		b.Subscribe(func(s models.SyncStatus) {
			got = append(got, s.PendingCount)
			if s.PendingCount == 0 {
				// изменение статуса прямо из обработчика
				b.Update(func(s *models.SyncStatus) { s.PendingCount = 1 })
				b.Subscribe(func(models.SyncStatus) { nested++ })
			}
		})
		b.Update(func(s *models.SyncStatus) { s.PendingCount = 2 })
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("re-entrant callback blocked the broadcaster")
	}

	assert.Equal(t, []int{0, 1, 2}, got, "вложенное изменение приходит после текущего уведомления")
	assert.Equal(t, 2, nested, "вложенная подписка: снапшот и одно изменение")
	assert.Equal(t, 2, b.Subscribers())
}
