package layout

// Layout styles.
const (
	LayoutFull = iota
	LayoutMinimal
)

// minFullWidth is the narrowest terminal the full dashboard fits in.
const minFullWidth = 100

// LayoutStrategy defines the interface for different layout rendering strategies
type LayoutStrategy interface {
	Render(d Dashboard, width int) string
	GetName() string
}

// GetLayoutStrategy returns the appropriate layout strategy based on the style
func GetLayoutStrategy(layoutStyle int) LayoutStrategy {
	strategies := map[int]LayoutStrategy{
		LayoutFull:    &FullLayoutStrategy{},
		LayoutMinimal: &MinimalLayoutStrategy{},
	}

	if strategy, exists := strategies[layoutStyle]; exists {
		return strategy
	}

	// Default to full dashboard if invalid style
	return &FullLayoutStrategy{}
}

// AutoLayout picks the minimal layout for narrow terminals. An unknown width (0)
// keeps the full layout.
func AutoLayout(width int) int {
	if width > 0 && width < minFullWidth {
		return LayoutMinimal
	}
	return LayoutFull
}
