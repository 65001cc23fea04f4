package domain

// Listing is a rental property offered to residents.
type Listing struct {
	ID        int      `json:"id" yaml:"id"`
	Address   string   `json:"address" yaml:"address"`
	Bedrooms  int      `json:"bedrooms" yaml:"bedrooms"`
	Bathrooms int      `json:"bathrooms" yaml:"bathrooms"`
	Price     int      `json:"price" yaml:"price"`
	Area      string   `json:"area" yaml:"area"`
	Features  []string `json:"features" yaml:"features"`
}
