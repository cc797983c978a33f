package errors

import (
	"math"

	"github.com/google/uuid"

	"github.com/matzehuels/justify/pkg/justify"
)

// MaxItems bounds the number of items accepted in one layout request.
const MaxItems = 100_000

// MaxAccuracy bounds the optimizer depth. Beyond 52 halvings the step is
// below float64 resolution for any realistic width.
const MaxAccuracy = 52

// ValidateItems checks that every item has a finite, positive width and
// height.
func ValidateItems(items []justify.Item) error {
	if len(items) > MaxItems {
		return New(ErrCodeInvalidInput, "too many items: %d (max %d)", len(items), MaxItems)
	}
	for i, it := range items {
		if !positive(it.Width) {
			return New(ErrCodeInvalidItem, "item %d: width must be a positive number, got %v", i, it.Width)
		}
		if !positive(it.Height) {
			return New(ErrCodeInvalidItem, "item %d: height must be a positive number, got %v", i, it.Height)
		}
	}
	return nil
}

// ValidateWidth checks that a container width is finite and positive.
func ValidateWidth(width float64) error {
	if !positive(width) {
		return New(ErrCodeInvalidWidth, "container width must be a positive number, got %v", width)
	}
	return nil
}

// ValidateSettings checks margins and accuracy, and that the container
// width leaves a positive available width once the side margins are taken
// off.
func ValidateSettings(s justify.Settings, containerWidth float64) error {
	margins := []struct {
		name  string
		value float64
	}{
		{"margin_x", s.MarginX},
		{"margin_y", s.MarginY},
		{"margin_top", s.MarginTop},
		{"margin_bottom", s.MarginBottom},
		{"margin_left", s.MarginLeft},
		{"margin_right", s.MarginRight},
	}
	for _, m := range margins {
		if math.IsNaN(m.value) || math.IsInf(m.value, 0) || m.value < 0 {
			return New(ErrCodeInvalidSettings, "%s must be a non-negative number, got %v", m.name, m.value)
		}
	}

	if s.Accuracy < 0 || s.Accuracy > MaxAccuracy {
		return New(ErrCodeInvalidSettings, "accuracy must be between 0 and %d, got %d", MaxAccuracy, s.Accuracy)
	}

	if err := ValidateWidth(containerWidth); err != nil {
		return err
	}
	if available := containerWidth - s.MarginLeft - s.MarginRight; available <= 0 {
		return New(ErrCodeInvalidSettings, "side margins (%v) leave no room in container width %v",
			s.MarginLeft+s.MarginRight, containerWidth)
	}
	return nil
}

// ValidateLayout runs all checks needed before calling [justify.Build].
func ValidateLayout(items []justify.Item, containerWidth float64, s justify.Settings) error {
	if err := ValidateItems(items); err != nil {
		return err
	}
	return ValidateSettings(s, containerWidth)
}

// ValidateGalleryID checks that id is a canonical UUID string.
func ValidateGalleryID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "gallery id cannot be empty")
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return Wrap(ErrCodeInvalidID, err, "invalid gallery id %q", id)
	}
	if parsed.String() != id {
		return New(ErrCodeInvalidID, "gallery id must be in canonical form: %q", id)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
