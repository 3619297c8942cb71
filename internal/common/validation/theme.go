// internal/common/validation/theme.go
package validation

import (
	"fmt"

	enginerrors "monetization-engine/internal/common/errors"
	"monetization-engine/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

// themeSchema is the document-level contract for externally supplied theme
// records entering batch operations. The pure calculation paths normalize
// defensively instead; this strict check only guards the batch boundary.
var themeSchema = map[string]interface{}{
	"type":     "object",
	"required": []string{"id", "name", "marketSize", "competitionLevel", "technicalDifficulty"},
	"properties": map[string]interface{}{
		"id":   map[string]interface{}{"type": "string", "minLength": 1},
		"name": map[string]interface{}{"type": "string", "minLength": 1},
		"marketSize": map[string]interface{}{
			"type":    "number",
			"minimum": 0,
		},
		"competitionLevel": map[string]interface{}{
			"type": "string",
			"enum": []string{"low", "medium", "high"},
		},
		"technicalDifficulty": map[string]interface{}{
			"type": "string",
			"enum": []string{"beginner", "intermediate", "advanced"},
		},
		"estimatedRevenue": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"min": map[string]interface{}{"type": "number", "minimum": 0},
				"max": map[string]interface{}{"type": "number", "minimum": 0},
			},
		},
	},
}

// ValidateTheme checks an externally supplied theme record against the
// document schema plus the cross-field rules the schema cannot express.
// Returns a ValidationError naming the first offending field, or nil.
func ValidateTheme(theme models.Theme) error {
	doc := map[string]interface{}{
		"id":                  theme.ID,
		"name":                theme.Name,
		"marketSize":          theme.MarketSize,
		"competitionLevel":    string(theme.CompetitionLevel),
		"technicalDifficulty": string(theme.TechnicalDifficulty),
		"estimatedRevenue": map[string]interface{}{
			"min": theme.EstimatedRevenue.Min,
			"max": theme.EstimatedRevenue.Max,
		},
	}

	schemaLoader := gojsonschema.NewGoLoader(themeSchema)
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return enginerrors.NewValidationError("theme", err.Error())
	}
	if !result.Valid() {
		first := result.Errors()[0]
		return enginerrors.NewValidationError(first.Field(), first.Description())
	}

	if theme.EstimatedRevenue.Max < theme.EstimatedRevenue.Min {
		return enginerrors.NewValidationError("estimatedRevenue.max",
			fmt.Sprintf("max (%v) is below min (%v)", theme.EstimatedRevenue.Max, theme.EstimatedRevenue.Min))
	}
	return nil
}

// ValidateThemeID guards single-theme store operations.
func ValidateThemeID(themeID string) error {
	if themeID == "" {
		return enginerrors.NewValidationError("themeId", "must not be empty")
	}
	return nil
}
