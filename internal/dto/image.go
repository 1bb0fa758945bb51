package dto

// ImageSearchQuery carries the cover image search parameters
type ImageSearchQuery struct {
	Q       string `form:"query"`
	Page    int    `form:"page,default=1"`
	PerPage int    `form:"per_page,default=12"`
}

// ImageURLs holds the size variants of a stock photo
type ImageURLs struct {
	Raw     string `json:"raw"`
	Full    string `json:"full"`
	Regular string `json:"regular"`
	Small   string `json:"small"`
	Thumb   string `json:"thumb"`
}

// ImageResult represents a single stock photo candidate
type ImageResult struct {
	ID              string    `json:"id"`
	Description     string    `json:"description,omitempty"`
	AltDescription  string    `json:"alt_description,omitempty"`
	URLs            ImageURLs `json:"urls"`
	Photographer    string    `json:"photographer"`
	PhotographerURL string    `json:"photographer_url,omitempty"`
}

// ImageSearchResponse represents a page of stock photo search results
type ImageSearchResponse struct {
	Total      int           `json:"total"`
	TotalPages int           `json:"total_pages"`
	Results    []ImageResult `json:"results"`
}
