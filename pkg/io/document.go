package io

import (
	"github.com/matzehuels/justify/pkg/justify"
)

// ItemSpec is one item as it appears in a document.
type ItemSpec struct {
	ID          string  `json:"id,omitempty" bson:"id,omitempty"`
	Width       float64 `json:"width" bson:"width"`
	Height      float64 `json:"height" bson:"height"`
	BreakBefore *bool   `json:"break_before,omitempty" bson:"break_before,omitempty"`
}

// Item converts s to a layout item.
func (s ItemSpec) Item() justify.Item {
	return justify.Item{
		Width:        s.Width,
		Height:       s.Height,
		KeepWithPrev: s.BreakBefore != nil && !*s.BreakBefore,
	}
}

// SettingsSpec is the document form of [justify.Settings]. Nil fields keep
// their defaults.
type SettingsSpec struct {
	MarginX      *float64 `json:"margin_x,omitempty" bson:"margin_x,omitempty" toml:"margin_x"`
	MarginY      *float64 `json:"margin_y,omitempty" bson:"margin_y,omitempty" toml:"margin_y"`
	MarginTop    *float64 `json:"margin_top,omitempty" bson:"margin_top,omitempty" toml:"margin_top"`
	MarginBottom *float64 `json:"margin_bottom,omitempty" bson:"margin_bottom,omitempty" toml:"margin_bottom"`
	MarginLeft   *float64 `json:"margin_left,omitempty" bson:"margin_left,omitempty" toml:"margin_left"`
	MarginRight  *float64 `json:"margin_right,omitempty" bson:"margin_right,omitempty" toml:"margin_right"`
	Accuracy     *int     `json:"accuracy,omitempty" bson:"accuracy,omitempty" toml:"accuracy"`
	Snap         *bool    `json:"snap,omitempty" bson:"snap,omitempty" toml:"snap"`
}

// Apply overlays the fields that are set onto base.
func (s *SettingsSpec) Apply(base justify.Settings) justify.Settings {
	if s == nil {
		return base
	}
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&base.MarginX, s.MarginX)
	set(&base.MarginY, s.MarginY)
	set(&base.MarginTop, s.MarginTop)
	set(&base.MarginBottom, s.MarginBottom)
	set(&base.MarginLeft, s.MarginLeft)
	set(&base.MarginRight, s.MarginRight)
	if s.Accuracy != nil {
		base.Accuracy = *s.Accuracy
	}
	if s.Snap != nil {
		base.Snap = *s.Snap
	}
	return base
}

// SpecFromSettings returns a fully populated SettingsSpec.
func SpecFromSettings(s justify.Settings) *SettingsSpec {
	return &SettingsSpec{
		MarginX:      &s.MarginX,
		MarginY:      &s.MarginY,
		MarginTop:    &s.MarginTop,
		MarginBottom: &s.MarginBottom,
		MarginLeft:   &s.MarginLeft,
		MarginRight:  &s.MarginRight,
		Accuracy:     &s.Accuracy,
		Snap:         &s.Snap,
	}
}

// Document is a layout request: items, and optionally the container width
// and settings.
type Document struct {
	Width    float64       `json:"width,omitempty"`
	Settings *SettingsSpec `json:"settings,omitempty"`
	Items    []ItemSpec    `json:"items"`
}

// LayoutItems converts the document's items for [justify.Build].
func (d *Document) LayoutItems() []justify.Item {
	items := make([]justify.Item, len(d.Items))
	for i, s := range d.Items {
		items[i] = s.Item()
	}
	return items
}

// ResolveSettings applies the document settings on top of base.
func (d *Document) ResolveSettings(base justify.Settings) justify.Settings {
	return d.Settings.Apply(base)
}

// IDs returns the item labels, using the item index where no id is given.
func (d *Document) IDs() []string {
	ids := make([]string, len(d.Items))
	for i, s := range d.Items {
		ids[i] = ItemLabel(s.ID, i)
	}
	return ids
}
