package scoring

// Rating is the band a score falls into.
type Rating string

const (
	RatingExcellent Rating = "excellent"
	RatingGood      Rating = "good"
	RatingModerate  Rating = "moderate"
	RatingLow       Rating = "low"
	RatingMinimal   Rating = "minimal"
)

// Band describes the inclusive score range of a rating.
type Band struct {
	Rating Rating
	Min    int
	Max    int
	Label  string
}

var bands = []Band{
	{Rating: RatingExcellent, Min: 80, Max: 100, Label: "Dominant AI presence - cited as industry authority"},
	{Rating: RatingGood, Min: 60, Max: 79, Label: "Strong presence - regularly cited in relevant queries"},
	{Rating: RatingModerate, Min: 40, Max: 59, Label: "Emerging presence - appears in some AI responses"},
	{Rating: RatingLow, Min: 20, Max: 39, Label: "Limited visibility - rarely mentioned by AI"},
	{Rating: RatingMinimal, Min: 0, Max: 19, Label: "Effectively invisible to AI systems"},
}

// Bands returns the rating bands from highest to lowest.
func Bands() []Band {
	return append([]Band(nil), bands...)
}

// RatingFor maps a score onto its band, evaluated from the highest threshold down.
func RatingFor(score int) Rating {
	for _, b := range bands {
		if score >= b.Min {
			return b.Rating
		}
	}
	return RatingMinimal
}

// Label returns the short description of the band.
func (r Rating) Label() string {
	for _, b := range bands {
		if b.Rating == r {
			return b.Label
		}
	}
	return ""
}

func (r Rating) String() string {
	return string(r)
}
