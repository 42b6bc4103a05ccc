// Package catalog holds the built-in crop reference data used to
// pre-fill extraction inputs. The list is fixed at compile time and
// read-only for the lifetime of the process.
package catalog

import (
	"extraction-platform/internal/models"
)

// profiles is the ordered catalog. Biomass factors and moisture
// contents are literature values and must not be adjusted.
var profiles = []models.CropProfile{
	{
		ID:                     "tunisian-olive",
		DisplayName:            "Tunisian Olive",
		ScientificName:         "Olea europaea L. cv. Chemlali",
		BiomassFactor:          0.175,
		MoistureContentPercent: 72.5,
	},
	{
		ID:                     "koroneiki-olive",
		DisplayName:            "Koroneiki Olive",
		ScientificName:         "Olea europaea L. cv. Koroneiki",
		BiomassFactor:          0.20,
		MoistureContentPercent: 70,
	},
	{
		ID:                     "leccino-olive",
		DisplayName:            "Leccino Olive",
		ScientificName:         "Olea europaea L. cv. Leccino",
		BiomassFactor:          0.16,
		MoistureContentPercent: 72.5,
	},
	{
		ID:                     "apple-tree",
		DisplayName:            "Apple Tree",
		ScientificName:         "Malus domestica",
		BiomassFactor:          0.12,
		MoistureContentPercent: 80,
	},
}

// Lookup returns the profile for the given crop id. The second return
// value is false when the id is unknown; callers typically fall back
// to Default.
func Lookup(id string) (models.CropProfile, bool) {
	for _, p := range profiles {
		if p.ID == id {
			return p, true
		}
	}
	return models.CropProfile{}, false
}

// Default returns the first catalog entry.
func Default() models.CropProfile {
	return profiles[0]
}

// Profiles returns a copy of the catalog in its defined order.
func Profiles() []models.CropProfile {
	out := make([]models.CropProfile, len(profiles))
	copy(out, profiles)
	return out
}
