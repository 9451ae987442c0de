package reviews

// SampleSummary is shown when live reviews are unavailable.
func SampleSummary() Summary {
	return Summary{
		Rating:       4.8,
		TotalRatings: 126,
		Fallback:     true,
		Reviews: []Review{
			{
				Author: "Sofia M.",
				Text:   "Everything was arranged perfectly, from the airport pickup to the sunset boat tour. We will be back!",
				Rating: 5,
			},
			{
				Author: "James K.",
				Text:   "The villa was exactly as pictured and the team answered every question within minutes.",
				Rating: 5,
			},
			{
				Author: "Amélie D.",
				Text:   "Great local guides and a well paced itinerary. The hotel upgrade was a lovely surprise.",
				Rating: 4,
			},
		},
	}
}
