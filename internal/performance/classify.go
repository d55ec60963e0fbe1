package performance

import "strings"

// Bucket is a subject grouping for exam results.
type Bucket struct {
	ID    string
	Label string
	Color string
}

var (
	BucketCoding        = Bucket{ID: "coding", Label: "Coding", Color: "#6366F1"}
	BucketAptitude      = Bucket{ID: "aptitude", Label: "Aptitude", Color: "#10B981"}
	BucketReasoning     = Bucket{ID: "reasoning", Label: "Reasoning", Color: "#F59E0B"}
	BucketCommunication = Bucket{ID: "communication", Label: "Communication", Color: "#EC4899"}
)

// Buckets lists every bucket in declaration order. Weakest-subject ties resolve in this order.
var Buckets = []Bucket{BucketCoding, BucketAptitude, BucketReasoning, BucketCommunication}

var bucketKeywords = []struct {
	bucket   Bucket
	keywords []string
}{
	{bucket: BucketCoding, keywords: []string{"code", "coding", "js", "python"}},
	{bucket: BucketAptitude, keywords: []string{"aptitude", "math"}},
	{bucket: BucketReasoning, keywords: []string{"reason", "logic"}},
}

// Classify maps an exam title to a bucket by case-insensitive substring match. Titles that
// match nothing fall into Communication.
func Classify(title string) Bucket {
	lower := strings.ToLower(title)
	for _, rule := range bucketKeywords {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.bucket
			}
		}
	}
	return BucketCommunication
}
