package figma

// FileResponse represents the response from the Figma file API endpoint.
// Only the fields needed to walk the document tree are decoded.
type FileResponse struct {
	Name          string `json:"name"`
	LastModified  string `json:"lastModified"`
	ThumbnailURL  string `json:"thumbnailUrl"`
	Version       string `json:"version"`
	Document      Node   `json:"document"`
	SchemaVersion int    `json:"schemaVersion"`
}

// Node represents a single element in the Figma document tree hierarchy.
// The Type is one of the Figma node types such as DOCUMENT, CANVAS, SECTION,
// FRAME, GROUP or COMPONENT.
type Node struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Children []Node `json:"children,omitempty"`
}

// ImagesResponse represents the response from the Figma image export endpoint.
// Images maps node IDs to temporary download URLs. A node that failed to
// render server-side maps to null, which decodes to an empty string.
type ImagesResponse struct {
	Err    *string           `json:"err"`
	Status int               `json:"status,omitempty"`
	Images map[string]string `json:"images"`
}

// FileQuery narrows a file request.
// A zero Depth means the full tree. IDs limits the returned document to the
// given nodes and their ancestors.
type FileQuery struct {
	Depth int
	IDs   []string
}
