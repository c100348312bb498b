package dto

// ExportRequest renders the currently displayed grid to a downloadable file.
type ExportRequest struct {
	Format string `json:"format" validate:"required,oneof=pdf csv xlsx"`
	Title  string `json:"title" validate:"omitempty,max=120"`
}

// ExportResponse returns the signed download location for the rendered file.
type ExportResponse struct {
	ExportID    string `json:"exportId"`
	Format      string `json:"format"`
	Status      string `json:"status"`
	DownloadURL string `json:"downloadUrl,omitempty"`
	ExpiresAt   string `json:"expiresAt,omitempty"`
}
