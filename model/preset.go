package model

import (
	"strings"

	"github.com/jinzhu/copier"
)

// --- PRESET ---
// Preset is a named, saved set of screener filters
type Preset struct {
	Name    string          `bson:"_id" json:"name"`
	Filters ScreenerFilters `bson:"filters" json:"filters"`
	Active  bool            `bson:"active" json:"active"`
}

// PresetDto is used for creating/updating presets
type PresetDto struct {
	Name    string          `json:"name" binding:"required"`
	Filters ScreenerFilters `json:"filters"`
	Active  bool            `json:"active"`
}

// copy options for preset conversions; filter pointers must not be shared
var presetCopy = copier.Option{DeepCopy: true}

func (d *PresetDto) ToEntity() Preset {
	var p Preset
	_ = copier.CopyWithOption(&p, d, presetCopy)
	p.Name = strings.ToUpper(strings.TrimSpace(p.Name))
	return p
}

func (p *Preset) ToDto() PresetDto {
	var d PresetDto
	_ = copier.CopyWithOption(&d, p, presetCopy)
	return d
}
