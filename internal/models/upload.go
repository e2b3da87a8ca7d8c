package models

// PresignedPost is a form a client submits straight to object storage.
type PresignedPost struct {
	URL    string            `json:"url"`
	Fields map[string]string `json:"fields"`
}

// Upload is the result of a presign request.
type Upload struct {
	PresignedPost PresignedPost `json:"presignedPost"`
	FileURL       string        `json:"fileUrl"`
}
