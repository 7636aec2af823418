package models

// Fixed template pages placed around the user's slides on export.
// Functions return fresh slices so callers cannot alter the shared sequence.

var prefixTemplateNames = []string{"welcome", "whyus", "topclients", "steps", "requirements"}

var suffixTemplateNames = []string{"contactus"}

const requirementsTemplate = "requirements"

func templateSlides(names []string) []Slide {
	slides := make([]Slide, 0, len(names))
	for _, name := range names {
		slides = append(slides, NewTemplateSlide("template-"+name, TemplateSlide{
			ImageURL:       "/assets/slides/" + name + ".jpg",
			IsRequirements: name == requirementsTemplate,
		}))
	}
	return slides
}

// PrefixTemplateSlides are exported before the user's slides
func PrefixTemplateSlides() []Slide {
	return templateSlides(prefixTemplateNames)
}

// SuffixTemplateSlides are exported after the user's slides
func SuffixTemplateSlides() []Slide {
	return templateSlides(suffixTemplateNames)
}
