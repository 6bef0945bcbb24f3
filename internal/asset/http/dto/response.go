package dto

// GenerateURLResponse carries the presigned URL handed back to the app.
type GenerateURLResponse struct {
	PresignedURL string `json:"presignedUrl"`
}
