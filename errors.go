package universe

import (
	"fmt"
	"reflect"
)

// RegistrationClosedError reports a component registration attempted after
// Init sealed the registry.
type RegistrationClosedError struct {
	Type reflect.Type
}

func (e RegistrationClosedError) Error() string {
	return fmt.Sprintf("component registration is closed: %v registered after Init", e.Type)
}

// ComponentLimitError reports that more component types were registered than
// the bitset width allows.
type ComponentLimitError struct {
	Limit int
}

func (e ComponentLimitError) Error() string {
	return fmt.Sprintf("component type limit exceeded (max %d)", e.Limit)
}

// UnregisteredComponentError reports a filter or accessor built over a type
// that was never registered with the universe.
type UnregisteredComponentError struct {
	Type reflect.Type
}

func (e UnregisteredComponentError) Error() string {
	return fmt.Sprintf("component type not registered: %v", e.Type)
}

// UninitializedUniverseError reports an operation that requires Init.
type UninitializedUniverseError struct {
	Op string
}

func (e UninitializedUniverseError) Error() string {
	return fmt.Sprintf("%s called before Init", e.Op)
}

// SystemUnboundError reports an iteration view used before the system was
// registered and bound to its group.
type SystemUnboundError struct{}

func (e SystemUnboundError) Error() string {
	return "system is not bound to a group; register it with AddSystem first"
}

// CacheCapacityError reports a full registry cache.
type CacheCapacityError struct {
	Capacity int
}

func (e CacheCapacityError) Error() string {
	return fmt.Sprintf("cache at maximum capacity (%d)", e.Capacity)
}
