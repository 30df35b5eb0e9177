package openapi

import "maps"

// NewComponents creates Components with the shared error schema and the
// error responses every handler can produce.
func NewComponents() *Components {
	c := &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type:       "object",
				Properties: map[string]*Schema{"error": {Type: "string", Description: "Error message"}},
				Required:   []string{"error"},
			},
		},
		Responses: make(map[string]*Response),
	}

	for name, desc := range map[string]string{
		"BadRequest":         "Malformed request",
		"NotFound":           "Resource not found",
		"PayloadTooLarge":    "Request body exceeds the configured limit",
		"Unprocessable":      "Request failed validation",
		"ServiceUnavailable": "Dependency unavailable",
	} {
		c.Responses[name] = ResponseJSON(desc, "Error")
	}
	return c
}

// AddSchemas merges the given schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}
