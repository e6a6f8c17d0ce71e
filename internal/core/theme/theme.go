package theme

import (
	"sync"

	"rotaclock/internal/logger"
)

// Key is the single preference key holding the theme.
const Key = "theme"

// Variant is the persisted theme value.
type Variant string

const (
	Light Variant = "light"
	Dark  Variant = "dark"
)

// Store is durable string key-value storage. fyne.Preferences satisfies it.
type Store interface {
	String(key string) string
	SetString(key, value string)
}

// Controller loads, applies and toggles the theme preference.
type Controller struct {
	mu         sync.Mutex
	store      Store
	systemDark func() bool
	apply      func(Variant)
	log        *logger.Logger
	current    Variant
}

// NewController creates a controller. systemDark reports the platform dark-mode
// preference and apply pushes a variant onto the renderer; both may be nil.
func NewController(store Store, systemDark func() bool, apply func(Variant), log *logger.Logger) *Controller {
	return &Controller{
		store:      store,
		systemDark: systemDark,
		apply:      apply,
		log:        log,
		current:    Light,
	}
}

// Load resolves the stored variant, falling back to the platform preference, and applies it.
func (controller *Controller) Load() Variant {
	controller.mu.Lock()
	variant := controller.resolveLocked()
	controller.current = variant
	controller.mu.Unlock()

	controller.log.With("theme", string(variant)).Debug("theme loaded")
	controller.push(variant)
	return variant
}

// Toggle flips between light and dark, persists the choice and applies it.
func (controller *Controller) Toggle() Variant {
	controller.mu.Lock()
	next := Dark
	if controller.current == Dark {
		next = Light
	}
	controller.current = next
	if controller.store != nil {
		controller.store.SetString(Key, string(next))
	}
	controller.mu.Unlock()

	controller.push(next)
	return next
}

// Current returns the applied variant.
func (controller *Controller) Current() Variant {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.current
}

func (controller *Controller) resolveLocked() Variant {
	if controller.store != nil {
		switch Variant(controller.store.String(Key)) {
		case Light:
			return Light
		case Dark:
			return Dark
		}
	}
	if controller.systemDark != nil && controller.systemDark() {
		return Dark
	}
	return Light
}

func (controller *Controller) push(variant Variant) {
	if controller.apply != nil {
		controller.apply(variant)
	}
}
