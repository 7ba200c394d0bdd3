package models

// Storage keys for scalar last-used settings.
const (
	SettingFont     = "font"
	SettingFontSize = "fontSize"
	SettingLanguage = "language"
	SettingScheme   = "scheme"
)

// Storage key prefixes.
const (
	SchemeKeyPrefix  = "scheme/"
	PreviewKeyPrefix = "preview/"
)

// SettingKeys lists the scalar setting keys.
var SettingKeys = []string{
	SettingFont,
	SettingFontSize,
	SettingLanguage,
	SettingScheme,
}

// SchemeKey returns the storage key for a scheme name.
func SchemeKey(name string) string {
	return SchemeKeyPrefix + name
}

// PreviewKey returns the storage key for a language's preview document.
func PreviewKey(alias string) string {
	return PreviewKeyPrefix + alias
}
