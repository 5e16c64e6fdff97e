package models

// UploadResponse is returned after a successful file upload.
// ObjectName is the permanent reference to embed in article content.
type UploadResponse struct {
	PreviewURL string `json:"previewUrl"`
	ObjectName string `json:"objectName"`
}
