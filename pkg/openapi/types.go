package openapi

// Info is the document's title block.
type Info struct {
	Title       string `json:"title"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
}

// Server is a base URL the paths are relative to.
type Server struct {
	URL string `json:"url"`
}

// PathItem holds the operations on one path.
type PathItem struct {
	Get  *Operation `json:"get,omitempty"`
	Post *Operation `json:"post,omitempty"`
}

// Operation is one method on one path. Responses are keyed by status code.
type Operation struct {
	OperationID string            `json:"operationId,omitempty"`
	Summary     string            `json:"summary,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Parameters  []*Parameter      `json:"parameters,omitempty"`
	RequestBody *RequestBody      `json:"requestBody,omitempty"`
	Responses   map[int]*Response `json:"responses"`
}

// Parameter is a path or query parameter.
type Parameter struct {
	Name        string  `json:"name"`
	In          string  `json:"in"`
	Required    bool    `json:"required,omitempty"`
	Description string  `json:"description,omitempty"`
	Schema      *Schema `json:"schema"`
}

// RequestBody maps media types to body schemas.
type RequestBody struct {
	Required bool                  `json:"required,omitempty"`
	Content  map[string]*MediaType `json:"content"`
}

// Response is either an inline response or a $ref to a component response.
type Response struct {
	Ref         string                `json:"$ref,omitempty"`
	Description string                `json:"description,omitempty"`
	Content     map[string]*MediaType `json:"content,omitempty"`
}

// MediaType wraps the schema for one content type.
type MediaType struct {
	Schema *Schema `json:"schema"`
}

// Schema is the subset of JSON Schema the API document uses.
type Schema struct {
	Ref                  string             `json:"$ref,omitempty"`
	Type                 string             `json:"type,omitempty"`
	Format               string             `json:"format,omitempty"`
	Description          string             `json:"description,omitempty"`
	Enum                 []string           `json:"enum,omitempty"`
	Example              any                `json:"example,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	Items                *Schema            `json:"items,omitempty"`
	AdditionalProperties *Schema            `json:"additionalProperties,omitempty"`
}

// Components holds the named schemas and responses that operations reference.
type Components struct {
	Schemas   map[string]*Schema   `json:"schemas,omitempty"`
	Responses map[string]*Response `json:"responses,omitempty"`
}

const jsonMedia = "application/json"

// SchemaRef references a component schema by name.
func SchemaRef(name string) *Schema {
	return &Schema{Ref: "#/components/schemas/" + name}
}

// ResponseRef references a component response by name.
func ResponseRef(name string) *Response {
	return &Response{Ref: "#/components/responses/" + name}
}

// ArrayOf is an array of items.
func ArrayOf(items *Schema) *Schema {
	return &Schema{Type: "array", Items: items}
}

func jsonContent(schemaName string) map[string]*MediaType {
	return map[string]*MediaType{jsonMedia: {Schema: SchemaRef(schemaName)}}
}

// RequestBodyJSON is a JSON body of the named component schema.
func RequestBodyJSON(schemaName string, required bool) *RequestBody {
	return &RequestBody{Required: required, Content: jsonContent(schemaName)}
}

// ResponseJSON is a JSON response of the named component schema.
func ResponseJSON(description, schemaName string) *Response {
	return &Response{Description: description, Content: jsonContent(schemaName)}
}

// PathParam is a required string path parameter.
func PathParam(name, description string) *Parameter {
	return &Parameter{
		Name:        name,
		In:          "path",
		Required:    true,
		Description: description,
		Schema:      &Schema{Type: "string"},
	}
}
