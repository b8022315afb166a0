package settings

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// AppName keys the per-user data directory.
const AppName = "blockworld"

const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// Settings are the user preferences kept between runs.
type Settings struct {
	DebugOverlay bool   `yaml:"debugOverlay"`
	LastLevel    string `yaml:"lastLevel"`
	Sound        bool   `yaml:"sound"`
}

func Defaults() Settings {
	return Settings{Sound: true}
}

// Store is the subset of *gdata.Manager used here.
type Store interface {
	ObjectPropExists(objectKey, propKey string) bool
	LoadObjectProp(objectKey, propKey string) ([]byte, error)
	SaveObjectProp(objectKey, propKey string, data []byte) error
}

var _ Store = (*gdata.Manager)(nil)

// Manager loads and saves Settings. With a nil store it keeps them in memory
// only.
type Manager struct {
	store    Store
	log      *zap.Logger
	settings Settings
}

// Open opens the per-user store. If the platform has no usable data
// directory the manager still works, without persistence.
func Open(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Warn("settings storage unavailable", zap.Error(err))
		return New(nil, log)
	}
	return New(m, log)
}

func New(store Store, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	sm := &Manager{store: store, log: log, settings: Defaults()}
	if err := sm.Load(); err != nil {
		log.Warn("settings load failed, using defaults", zap.Error(err))
	}
	return sm
}

func (sm *Manager) Load() error {
	sm.settings = Defaults()
	if sm.store == nil || !sm.store.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("settings: load: %w", err)
	}

	loaded := Defaults()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("settings: unmarshal: %w", err)
	}
	sm.settings = loaded
	return nil
}

func (sm *Manager) Save() error {
	if sm.store == nil {
		return nil
	}
	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("settings: marshal: %w", err)
	}
	if err := sm.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("settings: save: %w", err)
	}
	sm.log.Debug("settings saved")
	return nil
}

func (sm *Manager) Get() Settings {
	return sm.settings
}

// Update changes the settings with fn and saves them.
func (sm *Manager) Update(fn func(*Settings)) error {
	fn(&sm.settings)
	return sm.Save()
}
