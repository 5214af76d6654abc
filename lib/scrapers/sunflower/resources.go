package sunflower

import "encoding/json"

// Coordinate is a position in game-screen space.
type Coordinate struct {
	X float64
	Y float64
}

type ResourceType string

const ResourceTrees ResourceType = "trees"

// ResourceGroup holds the positions of every harvestable object of one
// type, in discovery order.
type ResourceGroup struct {
	Type        ResourceType
	Coordinates []Coordinate
}

// ParseResourceGroups groups harvestable object coordinates by resource
// type. Only trees are classified today, the map is keyed by
// ResourceType so stones, iron and the like can slot in later.
// Malformed or missing farm data is never an error, it just yields an
// empty result.
func ParseResourceGroups(farmData map[string]any) map[ResourceType]*ResourceGroup {
	grouped := map[ResourceType]*ResourceGroup{}

	trees, ok := farmData["trees"].([]any)
	if !ok {
		return grouped
	}

	for _, entry := range trees {
		tree, _ := entry.(map[string]any)

		group := grouped[ResourceTrees]
		if group == nil {
			group = &ResourceGroup{Type: ResourceTrees}
			grouped[ResourceTrees] = group
		}
		group.Coordinates = append(group.Coordinates, extractCoordinate(tree))
	}

	return grouped
}

// some responses nest the position under a "coordinates" key, others
// put "x"/"y" directly on the entry. nested wins, then direct, missing
// values default to 0.
func extractCoordinate(tree map[string]any) Coordinate {
	if nested, ok := tree["coordinates"].(map[string]any); ok {
		return Coordinate{X: numberField(nested, "x"), Y: numberField(nested, "y")}
	}
	return Coordinate{X: numberField(tree, "x"), Y: numberField(tree, "y")}
}

func numberField(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case json.Number:
		f, _ := v.Float64()
		return f
	case int:
		return float64(v)
	}
	return 0
}
