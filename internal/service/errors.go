package service

import "fmt"

// CategoryInUseError is returned when a category deletion is blocked because
// tasks still reference it. Count reports how many.
type CategoryInUseError struct {
	Count int64
}

// Error implements the error interface.
func (e *CategoryInUseError) Error() string {
	return fmt.Sprintf("category is currently assigned to %d task(s)", e.Count)
}
