package render

// Layout holds the page geometry of item, hamper and requirements slides, in pixels.
// Text y values are baselines.
type Layout struct {
	Margin float64

	LogoHeight      float64
	OptionLabelSize float64
	TitleSize       float64
	TitleY          float64

	ItemImageWidth  float64
	ItemImageHeight float64
	PriceSize       float64
	PriceY          float64

	HamperImageSize   float64
	HamperSpacing     float64
	HamperRowY        float64
	HamperNameSize    float64
	HamperNameList    bool
	HamperNameListY   float64
	TotalLabelSize    float64
	TotalLabelY       float64
	TotalSize         float64
	TotalY            float64
	PlaceholderSize   float64
	PlaceholderTextSz float64

	RequirementsX        float64
	RequirementsY        float64
	RequirementsNameSize float64
	RequirementsLineSize float64
	RequirementsLineStep float64

	FooterSize float64
	FooterY    float64
	QRSize     float64
}

// DefaultLayout returns the standard 1920×1080 layout
func DefaultLayout() Layout {
	const margin = 64
	return Layout{
		Margin: margin,

		LogoHeight:      96,
		OptionLabelSize: 40,
		TitleSize:       56,
		TitleY:          margin + 128,

		ItemImageWidth:  720,
		ItemImageHeight: 560,
		PriceSize:       64,
		PriceY:          PageHeight - margin - 128,

		HamperImageSize:   240,
		HamperSpacing:     40,
		HamperRowY:        360,
		HamperNameSize:    28,
		HamperNameListY:   272,
		TotalLabelSize:    32,
		TotalLabelY:       790,
		TotalSize:         56,
		TotalY:            PageHeight - margin - 128,
		PlaceholderSize:   160,
		PlaceholderTextSz: 28,

		RequirementsX:        452,
		RequirementsY:        300,
		RequirementsNameSize: 56,
		RequirementsLineSize: 36,
		RequirementsLineStep: 62,

		FooterSize: 24,
		FooterY:    PageHeight - 28,
		QRSize:     112,
	}
}
