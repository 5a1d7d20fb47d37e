package model

// Tip is a short piece of advice for reducing emissions in one category.
type Tip struct {
	ID          string  `json:"id" yaml:"-"`
	Title       string  `json:"title" yaml:"title"`
	Content     string  `json:"content" yaml:"content"`
	Category    string  `json:"category" yaml:"category"`
	ImpactScore float64 `json:"impact_score" yaml:"impact_score"`
}
