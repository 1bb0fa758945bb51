package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/adityakashyap5047/Evix/internal/domain"
	"github.com/adityakashyap5047/Evix/internal/dto"
	"github.com/adityakashyap5047/Evix/pkg/retry"
)

// Image search errors
var (
	ErrImageSearchDisabled = errors.New("image search is not configured")
	ErrImageSearchFailed   = errors.New("image search provider returned an error")
)

// ImageServiceConfig holds configuration for the stock photo provider
type ImageServiceConfig struct {
	AccessKey string
	BaseURL   string
	Timeout   time.Duration
}

// imageService implements ImageService against the Unsplash search API
type imageService struct {
	config      *ImageServiceConfig
	client      *http.Client
	retryConfig *retry.Config
}

// NewImageService creates a new ImageService
func NewImageService(config *ImageServiceConfig) ImageService {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.unsplash.com"
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	return &imageService{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		retryConfig: &retry.Config{
			MaxRetries:      2,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     2 * time.Second,
			Multiplier:      2.0,
			JitterFactor:    0.1,
		},
	}
}

// unsplashSearchResponse mirrors the provider's search payload
type unsplashSearchResponse struct {
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
	Results    []struct {
		ID             string `json:"id"`
		Description    string `json:"description"`
		AltDescription string `json:"alt_description"`
		URLs           struct {
			Raw     string `json:"raw"`
			Full    string `json:"full"`
			Regular string `json:"regular"`
			Small   string `json:"small"`
			Thumb   string `json:"thumb"`
		} `json:"urls"`
		User struct {
			Name  string `json:"name"`
			Links struct {
				HTML string `json:"html"`
			} `json:"links"`
		} `json:"user"`
	} `json:"results"`
}

// Search searches stock photos for event cover images
func (s *imageService) Search(ctx context.Context, query string, page, perPage int) (*dto.ImageSearchResponse, error) {
	if s.config.AccessKey == "" {
		return nil, ErrImageSearchDisabled
	}
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return nil, domain.ErrQueryTooShort
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 30 {
		perPage = 12
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))

	searchURL := s.config.BaseURL + "/search/photos?" + params.Encode()

	// Transient provider failures are retried with backoff; client errors
	// such as a revoked access key are not.
	var payload unsplashSearchResponse
	result := retry.Do(ctx, s.retryConfig, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
		if err != nil {
			return retry.Permanent(fmt.Errorf("failed to build image search request: %w", err))
		}
		req.Header.Set("Authorization", "Client-ID "+s.config.AccessKey)
		req.Header.Set("Accept-Version", "v1")

		resp, err := s.client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to search images: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("%w: status %d", ErrImageSearchFailed, resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return retry.Permanent(fmt.Errorf("%w: status %d", ErrImageSearchFailed, resp.StatusCode))
		}

		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return retry.Permanent(fmt.Errorf("failed to decode image search response: %w", err))
		}
		return nil
	})
	if result.Err != nil {
		if errors.Is(result.Err, retry.ErrMaxRetriesExceeded) && result.LastError != nil {
			return nil, result.LastError
		}
		return nil, result.Err
	}

	search := &dto.ImageSearchResponse{
		Total:      payload.Total,
		TotalPages: payload.TotalPages,
		Results:    make([]dto.ImageResult, 0, len(payload.Results)),
	}
	for _, photo := range payload.Results {
		search.Results = append(search.Results, dto.ImageResult{
			ID:             photo.ID,
			Description:    photo.Description,
			AltDescription: photo.AltDescription,
			URLs: dto.ImageURLs{
				Raw:     photo.URLs.Raw,
				Full:    photo.URLs.Full,
				Regular: photo.URLs.Regular,
				Small:   photo.URLs.Small,
				Thumb:   photo.URLs.Thumb,
			},
			Photographer:    photo.User.Name,
			PhotographerURL: photo.User.Links.HTML,
		})
	}
	return search, nil
}
