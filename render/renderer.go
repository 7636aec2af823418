package render

import (
	"context"
	"fmt"
	"image"
	"strings"
	"unicode"

	"happywrap-deck/metrics"
	"happywrap-deck/models"
	"happywrap-deck/pricing"
	"happywrap-deck/utils"

	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Static assets drawn on every item and hamper slide
const (
	OptionBackgroundURL = "/assets/option-template.png"
	LogoURL             = "/assets/logo.png"
)

const (
	templateFailureText = "Template image could not be loaded"
	imageFailureText    = "[Image not available]"
	emptyHamperText     = "No items in hamper"
	hamperTitle         = "Product Hamper"
	totalLabel          = "Total Value"
	hamperNameSep       = " • "
	hamperLoadLimit     = 4
)

// ImageLoader fetches and decodes one image. Errors are expected and are turned
// into visual fallbacks by the renderer.
type ImageLoader interface {
	LoadImage(ctx context.Context, url string) (image.Image, error)
}

// Renderer paints slides onto fixed-size pages
type Renderer struct {
	loader ImageLoader
	fonts  *Fonts
	layout Layout
	footer string
	qr     image.Image
	logger *zap.Logger
}

// Option configures a Renderer
type Option func(*Renderer) error

// WithLayout overrides the default geometry
func WithLayout(l Layout) Option {
	return func(r *Renderer) error {
		r.layout = l
		return nil
	}
}

// WithFooter sets the footer line of item and hamper pages; "" disables it
func WithFooter(text string) Option {
	return func(r *Renderer) error {
		r.footer = text
		return nil
	}
}

// WithFooterQR adds a QR code for url at the bottom-right of item and hamper pages
func WithFooterQR(url string) Option {
	return func(r *Renderer) error {
		if url == "" {
			return nil
		}
		code, err := qrcode.New(url, qrcode.Medium)
		if err != nil {
			return fmt.Errorf("failed to encode footer QR code: %w", err)
		}
		code.DisableBorder = true
		r.qr = code.Image(int(r.layout.QRSize))
		return nil
	}
}

// WithLogger sets the logger used for image fallbacks
func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) error {
		r.logger = l
		return nil
	}
}

// NewRenderer builds a renderer. Options are applied in order, so WithLayout
// should precede WithFooterQR when the QR size changes.
func NewRenderer(loader ImageLoader, fonts *Fonts, opts ...Option) (*Renderer, error) {
	if loader == nil {
		return nil, fmt.Errorf("image loader is required")
	}
	if fonts == nil {
		return nil, fmt.Errorf("fonts are required")
	}
	r := &Renderer{
		loader: loader,
		fonts:  fonts,
		layout: DefaultLayout(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// RenderSlide paints s as a PageWidth×PageHeight page. details binds the
// requirements template; option > 0 draws the "Option N" label.
//
// Image failures never produce an error. Errors are returned only for a slide
// that breaks its type invariant, or when ctx is done.
func (r *Renderer) RenderSlide(ctx context.Context, s models.Slide, details *models.Details, option int) (*image.RGBA, error) {
	faces := r.fonts.newFaceCache()
	defer faces.close()

	p, err := r.plan(ctx, faces, s, details, option)
	if err != nil {
		return nil, err
	}
	return p.paint(faces), nil
}

func (r *Renderer) plan(ctx context.Context, faces *faceCache, s models.Slide, details *models.Details, option int) (*page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	p := &page{kind: string(s.Type())}
	switch c := s.Content().(type) {
	case models.TemplateSlide:
		r.planTemplate(ctx, p, c)
		if c.IsRequirements {
			var d models.Details
			if details != nil {
				d = *details
			}
			r.planRequirements(p, faces, d)
		}
	case models.Item:
		r.planChrome(ctx, p, option)
		r.planItem(ctx, p, faces, s, c)
		r.planFooter(p)
	case models.Hamper:
		r.planChrome(ctx, p, option)
		r.planHamper(ctx, p, faces, s, c)
		r.planFooter(p)
	default:
		return nil, fmt.Errorf("%w: unsupported content %T", models.ErrInvalidSlide, c)
	}

	// a cancelled load degrades like any failure; the page itself must not be delivered
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

// StaticAssets lists the files every export reads from the static directory
func StaticAssets() []string {
	urls := []string{OptionBackgroundURL, LogoURL}
	for _, s := range append(models.PrefixTemplateSlides(), models.SuffixTemplateSlides()...) {
		if tpl, ok := s.AsTemplate(); ok {
			urls = append(urls, tpl.ImageURL)
		}
	}
	return urls
}

// load fetches an image and records a failure against element
func (r *Renderer) load(ctx context.Context, element, url string) (image.Image, bool) {
	img, err := r.loader.LoadImage(ctx, url)
	if err != nil {
		metrics.ImageLoadFailures.WithLabelValues(element).Inc()
		r.logger.Warn("⚠️ image unavailable, drawing fallback",
			zap.String("element", element),
			zap.String("url", url),
			zap.Error(err),
		)
		return nil, false
	}
	if img == nil {
		metrics.ImageLoadFailures.WithLabelValues(element).Inc()
		r.logger.Warn("⚠️ loader returned no image, drawing fallback",
			zap.String("element", element),
			zap.String("url", url),
		)
		return nil, false
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		metrics.ImageLoadFailures.WithLabelValues(element).Inc()
		return nil, false
	}
	return img, true
}

func (r *Renderer) planTemplate(ctx context.Context, p *page, tpl models.TemplateSlide) {
	img, ok := r.load(ctx, "template", tpl.ImageURL)
	if !ok {
		// the details column covers the middle of a requirements page
		noticeY := float64(PageHeight) / 2
		if tpl.IsRequirements {
			noticeY = r.layout.FooterY
		}
		p.add(textOp{
			text:   templateFailureText,
			x:      PageWidth / 2,
			y:      noticeY,
			align:  alignCenter,
			weight: Regular,
			size:   r.layout.TitleSize * 0.75,
			color:  colorGray,
		})
		return
	}
	b := img.Bounds()
	p.add(imageOp{img: img, rect: Letterbox(b.Dx(), b.Dy(), PageWidth, PageHeight), element: "template"})
}

// planRequirements overlays the engagement details as stacked left-aligned lines
func (r *Renderer) planRequirements(p *page, faces *faceCache, d models.Details) {
	l := r.layout
	x := l.RequirementsX
	maxWidth := PageWidth - l.Margin - x

	nameFace := faces.face(Bold, l.RequirementsNameSize)
	p.add(textOp{
		text:   TruncateToWidth(nameFace, utils.OrNA(d.ClientName), maxWidth),
		x:      x,
		y:      l.RequirementsY,
		weight: Bold,
		size:   l.RequirementsNameSize,
		color:  colorText,
	})

	quantity := utils.NotAvailable
	if d.Quantity > 0 {
		quantity = fmt.Sprintf("%d", d.Quantity)
	}
	lines := []string{
		"Purpose : " + utils.OrNA(d.Purpose),
		"Expected Quantity : " + quantity,
		"Budget (Excl. GST) : " + utils.FormatRupees(d.BudgetExclGST),
		"Budget (Incl. GST) : " + utils.FormatRupees(d.BudgetInclGST),
		"Deadline : " + utils.FormatDeadline(d.Deadline),
		"Branding Required : " + utils.YesNo(d.BrandingRequired),
		"Custom Packaging : " + utils.YesNo(d.CustomPackaging),
		"Delivery Location : " + utils.OrNA(d.DeliveryLocation),
	}

	lineFace := faces.face(Regular, l.RequirementsLineSize)
	y := l.RequirementsY + l.RequirementsNameSize*1.4
	for _, line := range lines {
		p.add(textOp{
			text:   TruncateToWidth(lineFace, line, maxWidth),
			x:      x,
			y:      y,
			weight: Regular,
			size:   l.RequirementsLineSize,
			color:  colorText,
		})
		y += l.RequirementsLineStep
	}

	// remarks: bold label, light value placed after the measured label
	const label = "Remarks : "
	labelFace := faces.face(Bold, l.RequirementsLineSize)
	labelWidth := MeasureString(labelFace, label)
	p.add(textOp{text: label, x: x, y: y, weight: Bold, size: l.RequirementsLineSize, color: colorText})

	valueFace := faces.face(Light, l.RequirementsLineSize)
	p.add(textOp{
		text:   TruncateToWidth(valueFace, utils.OrNA(d.Remarks), maxWidth-labelWidth),
		x:      x + labelWidth,
		y:      y,
		weight: Light,
		size:   l.RequirementsLineSize,
		color:  colorText,
	})
}

// planChrome draws what item and hamper pages share: background, logo and option label
func (r *Renderer) planChrome(ctx context.Context, p *page, option int) {
	l := r.layout
	if bg, ok := r.load(ctx, "background", OptionBackgroundURL); ok {
		p.add(imageOp{img: bg, rect: Rect{W: PageWidth, H: PageHeight}, element: "background"})
	}

	if logo, ok := r.load(ctx, "logo", LogoURL); ok {
		b := logo.Bounds()
		w, h := FitWithin(b.Dx(), b.Dy(), PageWidth/4, l.LogoHeight)
		p.add(imageOp{img: logo, rect: Rect{X: PageWidth - l.Margin - w, Y: l.Margin, W: w, H: h}, element: "logo"})
	}

	if option > 0 {
		p.add(textOp{
			text:   fmt.Sprintf("Option %d", option),
			x:      l.Margin,
			y:      l.Margin + l.OptionLabelSize,
			weight: Bold,
			size:   l.OptionLabelSize,
			color:  colorPurple,
		})
	}
}

func (r *Renderer) planItem(ctx context.Context, p *page, faces *faceCache, s models.Slide, item models.Item) {
	l := r.layout
	contentWidth := PageWidth - 2*l.Margin

	titleFace := faces.face(Bold, l.TitleSize)
	p.add(textOp{
		text:   TruncateToWidth(titleFace, item.Name, contentWidth),
		x:      PageWidth / 2,
		y:      l.TitleY,
		align:  alignCenter,
		weight: Bold,
		size:   l.TitleSize,
		color:  colorText,
	})

	box := CenteredRect(l.ItemImageWidth, l.ItemImageHeight, PageWidth/2, PageHeight/2)
	if img, ok := r.load(ctx, "item", item.ImageURL); ok {
		b := img.Bounds()
		p.add(imageOp{img: img, rect: FitInto(b.Dx(), b.Dy(), box), element: "item"})
	} else {
		side := 0.6 * min(box.W, box.H)
		r.planPlaceholder(p, faces, item.Name, CenteredRect(side, side, box.CenterX(), box.CenterY()), l.PlaceholderSize)
		p.add(textOp{
			text:   imageFailureText,
			x:      box.CenterX(),
			y:      box.CenterY() + side/2 + l.PlaceholderTextSz*1.5,
			align:  alignCenter,
			weight: Regular,
			size:   l.PlaceholderTextSz,
			color:  colorGray,
		})
	}

	if text, ok := pricing.SlidePrice(s); ok {
		priceFace := faces.face(Bold, l.PriceSize)
		p.add(textOp{
			text:   TruncateToWidth(priceFace, text, contentWidth),
			x:      PageWidth / 2,
			y:      l.PriceY,
			align:  alignCenter,
			weight: Bold,
			size:   l.PriceSize,
			color:  colorPurple,
		})
	}
}

func (r *Renderer) planHamper(ctx context.Context, p *page, faces *faceCache, s models.Slide, hamper models.Hamper) {
	l := r.layout
	contentWidth := PageWidth - 2*l.Margin
	centerX := float64(PageWidth) / 2

	p.add(textOp{
		text:   hamperTitle,
		x:      centerX,
		y:      l.TitleY,
		align:  alignCenter,
		weight: Bold,
		size:   l.TitleSize,
		color:  colorText,
	})

	n := len(hamper.Items)
	if n == 0 {
		p.add(textOp{
			text:   emptyHamperText,
			x:      centerX,
			y:      l.HamperRowY + l.HamperImageSize/2,
			align:  alignCenter,
			weight: Regular,
			size:   l.TitleSize * 0.6,
			color:  colorGray,
		})
	} else {
		if l.HamperNameList {
			r.planNameList(p, faces, hamper.Items, centerX)
		}

		images := r.loadAll(ctx, hamper.Items)
		w, spacing := FitRow(n, l.HamperImageSize, l.HamperSpacing, contentWidth)
		nameFace := faces.face(Regular, l.HamperNameSize)
		for k, x := range RowPositions(n, w, spacing, centerX) {
			cell := Rect{X: x, Y: l.HamperRowY, W: w, H: w}
			if img := images[k]; img != nil {
				b := img.Bounds()
				p.add(imageOp{img: img, rect: FitInto(b.Dx(), b.Dy(), cell), element: "hamper_item"})
			} else {
				r.planPlaceholder(p, faces, hamper.Items[k].Name, cell, w/2)
			}
			p.add(textOp{
				text:   TruncateToWidth(nameFace, hamper.Items[k].Name, w+spacing*0.8),
				x:      cell.CenterX(),
				y:      cell.Bottom() + l.HamperNameSize*1.5,
				align:  alignCenter,
				weight: Regular,
				size:   l.HamperNameSize,
				color:  colorText,
			})
		}
	}

	if text, ok := pricing.SlidePrice(s); ok {
		p.add(textOp{
			text:   totalLabel,
			x:      centerX,
			y:      l.TotalLabelY,
			align:  alignCenter,
			weight: Regular,
			size:   l.TotalLabelSize,
			color:  colorGray,
		})
		totalFace := faces.face(Bold, l.TotalSize)
		p.add(textOp{
			text:   TruncateToWidth(totalFace, text, contentWidth),
			x:      centerX,
			y:      l.TotalY,
			align:  alignCenter,
			weight: Bold,
			size:   l.TotalSize,
			color:  colorPurple,
		})
	}
}

// loadAll fetches hamper images concurrently; result k belongs to item k, nil on failure
func (r *Renderer) loadAll(ctx context.Context, items []models.Item) []image.Image {
	out := make([]image.Image, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(hamperLoadLimit)
	for k, item := range items {
		k, item := k, item
		g.Go(func() error {
			if img, ok := r.load(gctx, "hamper_item", item.ImageURL); ok {
				out[k] = img
			}
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// planNameList draws every item name on one centered line, separated by bullets,
// using measured fragment widths
func (r *Renderer) planNameList(p *page, faces *faceCache, items []models.Item, centerX float64) {
	l := r.layout
	face := faces.face(Regular, l.HamperNameSize)

	fragments := make([]string, len(items))
	widths := make([]float64, len(items))
	for i, item := range items {
		fragments[i] = item.Name
		if i < len(items)-1 {
			fragments[i] += hamperNameSep
		}
		widths[i] = MeasureString(face, fragments[i])
	}
	for i, x := range CenteredSegments(widths, centerX) {
		p.add(textOp{
			text:   fragments[i],
			x:      x,
			y:      l.HamperNameListY,
			weight: Regular,
			size:   l.HamperNameSize,
			color:  colorGray,
		})
	}
}

// planPlaceholder draws the neutral box with the item's initial in place of a missing image
func (r *Renderer) planPlaceholder(p *page, faces *faceCache, name string, box Rect, size float64) {
	stroke := colorBorder
	p.add(rectOp{rect: box, fill: colorNeutral, stroke: &stroke})

	initial := initialOf(name)
	if initial == "" {
		return
	}
	face := faces.face(Bold, size)
	p.add(textOp{
		text:   initial,
		x:      box.CenterX(),
		y:      middleBaseline(face, box.CenterY()),
		align:  alignCenter,
		weight: Bold,
		size:   size,
		color:  colorInitial,
	})
}

func (r *Renderer) planFooter(p *page) {
	l := r.layout
	if r.footer != "" {
		p.add(textOp{
			text:   r.footer,
			x:      PageWidth / 2,
			y:      l.FooterY,
			align:  alignCenter,
			weight: Regular,
			size:   l.FooterSize,
			color:  colorGray,
		})
	}
	if r.qr != nil {
		b := r.qr.Bounds()
		p.add(imageOp{
			img:     r.qr,
			rect:    Rect{X: PageWidth - l.Margin - float64(b.Dx()), Y: PageHeight - l.Margin/2 - float64(b.Dy()), W: float64(b.Dx()), H: float64(b.Dy())},
			element: "qr",
		})
	}
}

// initialOf returns the uppercase first letter or digit of name
func initialOf(name string) string {
	for _, r := range strings.TrimSpace(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return string(unicode.ToUpper(r))
		}
	}
	return ""
}
