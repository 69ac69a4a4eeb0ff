package service

import (
	"github.com/MKhiriev/go-mission-sync/internal/adapter"
	"github.com/MKhiriev/go-mission-sync/internal/config"
	"github.com/MKhiriev/go-mission-sync/internal/metrics"
	"github.com/MKhiriev/go-mission-sync/internal/store"
	"github.com/MKhiriev/go-mission-sync/internal/utils"
)

// ClientServices groups everything the field agent runs. CloudEngine and
// CloudJob are nil when no cloud store is configured.
type ClientServices struct {
	Session   SessionService
	Records   RecordService
	Deletion  DeletionService
	Existence ExistenceChecker

	HubTransport HubTransport
	HubEngine    SyncEngine
	HubJob       SyncJob

	CloudEngine SyncEngine
	CloudJob    SyncJob
}

func NewClientServices(storages *store.ClientStorages, hubAdapter adapter.HubAdapter, cfg *config.ClientConfig, m *metrics.SyncMetrics) *ClientServices {
	session := NewSession()
	existence := NewExistenceChecker(storages.Remote, session)

	hubTransport := NewHubTransport(hubAdapter, NewHubDiscovery(hubAdapter, cfg.Hub), cfg.Hub)
	hubEngine := NewSyncEngine(hubTransport, NewSnapshotStrategy(storages.Local), storages.Local,
		WithPuller(hubTransport), WithMetrics(m))

	services := &ClientServices{
		Session:      session,
		Records:      NewRecordService(storages.Local, utils.NewUUIDGenerator()),
		Deletion:     NewDeletionService(storages.Local, storages.Remote, session, cfg.Lock.Location),
		Existence:    existence,
		HubTransport: hubTransport,
		HubEngine:    hubEngine,
		HubJob:       NewClientSyncJob(hubEngine),
	}

	if storages.Remote != nil {
		services.CloudEngine = NewSyncEngine(
			NewCloudTransport(storages.Remote, session),
			NewLedgerStrategy(storages.Local, EngineCloud, existence),
			storages.Local,
			WithMetrics(m),
		)
		services.CloudJob = NewClientSyncJob(services.CloudEngine)
	}

	return services
}

// Engine resolves an engine by name.
func (s *ClientServices) Engine(name string) (SyncEngine, error) {
	switch name {
	case EngineHub:
		return s.HubEngine, nil
	case EngineCloud:
		if s.CloudEngine == nil {
			return nil, ErrCloudNotConfigured
		}
		return s.CloudEngine, nil
	default:
		return nil, ErrUnknownEngine
	}
}

// Engines returns every configured engine, cloud first.
func (s *ClientServices) Engines() []SyncEngine {
	if s.CloudEngine == nil {
		return []SyncEngine{s.HubEngine}
	}
	return []SyncEngine{s.CloudEngine, s.HubEngine}
}

// Lifecycle events reported by the UI shell.
const (
	LifecycleForeground    = "foreground"
	LifecycleAuthenticated = "authenticated"
)

// HandleLifecycle queues an immediate cycle on every engine. Both events
// mean fresh data is likely waiting: the app came back to the foreground or
// a clinician just signed in.
func (s *ClientServices) HandleLifecycle(event string) error {
	switch event {
	case LifecycleForeground, LifecycleAuthenticated:
	default:
		return ErrUnknownLifecycleEvent
	}

	s.HubJob.Trigger()
	if s.CloudJob != nil {
		s.CloudJob.Trigger()
	}
	return nil
}
