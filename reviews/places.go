package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	places "google.golang.org/api/places/v1"
)

// PlacesFetcher reads reviews of one place from the Places API (New).
type PlacesFetcher struct {
	svc     *places.Service
	placeID string
}

// NewPlacesFetcher builds a fetcher authenticated with an API key.
func NewPlacesFetcher(ctx context.Context, apiKey, placeID string) (*PlacesFetcher, error) {
	if apiKey == "" || placeID == "" {
		return nil, errors.New("GOOGLE_PLACES_API_KEY and GOOGLE_PLACE_ID are required")
	}
	svc, err := places.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create places client: %w", err)
	}
	return &PlacesFetcher{svc: svc, placeID: placeID}, nil
}

func (f *PlacesFetcher) Fetch(ctx context.Context) (Summary, error) {
	name := f.placeID
	if !strings.HasPrefix(name, "places/") {
		name = "places/" + name
	}

	place, err := f.svc.Places.Get(name).
		Fields(googleapi.Field("rating"), googleapi.Field("userRatingCount"), googleapi.Field("reviews")).
		Context(ctx).
		Do()
	if err != nil {
		return Summary{}, fmt.Errorf("get place %s: %w", name, err)
	}
	return summaryFromPlace(place), nil
}

func summaryFromPlace(p *places.GoogleMapsPlacesV1Place) Summary {
	out := Summary{
		Rating:       p.Rating,
		TotalRatings: p.UserRatingCount,
		Reviews:      make([]Review, 0, len(p.Reviews)),
	}
	for _, r := range p.Reviews {
		if r == nil {
			continue
		}
		review := Review{
			Rating:       r.Rating,
			RelativeTime: r.RelativePublishTimeDescription,
		}
		if r.Text != nil {
			review.Text = r.Text.Text
		} else if r.OriginalText != nil {
			review.Text = r.OriginalText.Text
		}
		if a := r.AuthorAttribution; a != nil {
			review.Author = a.DisplayName
			review.PhotoURL = a.PhotoUri
		}
		out.Reviews = append(out.Reviews, review)
	}
	return out
}
