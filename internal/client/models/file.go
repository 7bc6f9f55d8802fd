package models

// FileRecord is a standalone uploaded file, independent of any experiment.
type FileRecord struct {
	ID          int64  `json:"id"`
	Filename    string `json:"filename"`
	FileType    string `json:"file_type"`
	FileSize    int64  `json:"file_size"`
	Description string `json:"description,omitempty"`
	UploadedBy  *User  `json:"uploaded_by,omitempty"`
	UploadedAt  string `json:"uploaded_at"`
}
