package domain

// SocialLinks holds the operator-configured social media URLs
type SocialLinks struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Other     string `json:"other"`
}

// DesignSettings is the visual-settings object applied to the fixed receipt
// layout: colors, font and the three optional images. Image fields may hold
// an http(s) URL, a storage object path, an inline data URI or be empty.
// The pipeline never mutates a caller's settings; the inliner returns a copy.
type DesignSettings struct {
	BackgroundColor    string      `json:"backgroundColor"`
	TextColor          string      `json:"textColor"`
	PromotionTextColor string      `json:"promotionTextColor"`
	Font               string      `json:"font"`
	TopBanner          string      `json:"topBanner"`
	Logo               string      `json:"logo"`
	BottomBanner       string      `json:"bottomBanner"`
	SocialMedia        SocialLinks `json:"socialMedia"`
}

// DefaultDesignSettings returns the styling the editor starts from.
func DefaultDesignSettings() DesignSettings {
	return DesignSettings{
		BackgroundColor:    "#ffffff",
		TextColor:          "#1B2534",
		PromotionTextColor: "#E69409",
		Font:               "Assistant",
	}
}
