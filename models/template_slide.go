package models

// TemplateSlide is a fixed full-page background image.
// The requirements template additionally overlays the deck's Details at render time.
type TemplateSlide struct {
	ImageURL       string `json:"imageUrl"`
	IsRequirements bool   `json:"isRequirementsSlide,omitempty"`
}

func (TemplateSlide) slideType() SlideType { return SlideTypeTemplate }
