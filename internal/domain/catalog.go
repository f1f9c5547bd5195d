package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

var Interests = []string{
	"Music & Concerts",
	"Sports",
	"Arts & Theater",
	"Food & Drink",
	"Outdoor & Adventure",
	"Classes & Learning",
	"Tech & Business",
	"Health & Wellness",
}

type Vibe struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var Vibes = []Vibe{
	{ID: "date-night", Label: "Date Night"},
	{ID: "family-kids", Label: "Family with Kids"},
	{ID: "friends-night", Label: "Night Out with Friends"},
	{ID: "solo-adventure", Label: "Solo Adventure"},
	{ID: "meeting-new", Label: "Meeting New People"},
	{ID: "seasonal-holiday", Label: "Seasonal/Holiday"},
	{ID: "relaxing-wellness", Label: "Relaxing/Wellness"},
	{ID: "learning-new", Label: "Learning Something New"},
	{ID: "competitive-sports", Label: "Competitive/Sports"},
	{ID: "creative-artsy", Label: "Creative/Artsy"},
}

type EnergyLevel struct {
	Value       int    `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

var energyLabels = map[int]EnergyLevel{
	1: {Value: 1, Label: "Chill", Description: "Sitting, watching"},
	2: {Value: 2, Label: "Easy", Description: "Light walking"},
	3: {Value: 3, Label: "Moderate", Description: "Participating"},
	4: {Value: 4, Label: "Active", Description: "Dancing, standing"},
	5: {Value: 5, Label: "Intense", Description: "Sports, all-day"},
	6: {Value: 6, Label: "Extreme", Description: "Endurance, multi-day"},
}

// LevelDomain is the configured enumeration of valid energy levels.
// Deployments differ on the scale, so it is never hardcoded in the filter.
type LevelDomain []int

// ParseLevelDomain parses a comma separated list such as "1,2,3".
func ParseLevelDomain(s string) (LevelDomain, error) {
	var d LevelDomain
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("energy level %q: %w", part, err)
		}
		if !slices.Contains(d, v) {
			d = append(d, v)
		}
	}
	if len(d) == 0 {
		return nil, fmt.Errorf("energy level domain is empty")
	}
	slices.Sort(d)
	return d, nil
}

func (d LevelDomain) Contains(level int) bool {
	return slices.Contains(d, level)
}

// Levels returns badge metadata for every level in the domain.
func (d LevelDomain) Levels() []EnergyLevel {
	out := make([]EnergyLevel, 0, len(d))
	for _, v := range d {
		out = append(out, EnergyLabel(v))
	}
	return out
}

func EnergyLabel(level int) EnergyLevel {
	if l, ok := energyLabels[level]; ok {
		return l
	}
	return EnergyLevel{Value: level, Label: fmt.Sprintf("Level %d", level)}
}
