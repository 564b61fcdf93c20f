package pump

import "errors"

var (
	// ErrOutOfOrder is returned when the consumer sees an item it did not
	// expect next.
	ErrOutOfOrder = errors.New("pump: item out of order")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("pump: invalid config")

	// ErrAlreadyRun is returned when Run is called a second time.
	ErrAlreadyRun = errors.New("pump: already run")
)
