package styles

// DefaultTheme is a muted dark palette that stays out of the way of the
// scheme being previewed.
var DefaultTheme = Theme{
	Name: "default",
	Tokens: ThemeTokens{
		Background: "#1E1F22",
		Panel:      "#2B2D30",
		Text:       "#DFE1E5",
		TextMuted:  "#868A91",
		Border:     "#393B40",
		Accent:     "#3574F0",
		Focus:      "#CC7832",
		Selection:  "#2E436E",
		Success:    "#5FB865",
		Warning:    "#E5C07B",
		Error:      "#F75464",
		Info:       "#548AF7",
	},
}
