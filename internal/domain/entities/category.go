package entities

import "strings"

// Category is the technology a question bank belongs to.
type Category string

const (
	CategoryAndroid Category = "ANDROID"
	CategoryIOS     Category = "IOS"
	CategoryKotlin  Category = "KOTLIN"
	CategorySwift   Category = "SWIFT"
	CategoryFlutter Category = "FLUTTER"
)

// Categories lists every category in menu order.
var Categories = []Category{CategoryAndroid, CategoryIOS, CategoryKotlin, CategorySwift, CategoryFlutter}

// DefaultCategory is used for new users and unknown values.
const DefaultCategory = CategoryAndroid

// ParseCategory matches s case-insensitively and falls back to DefaultCategory.
func ParseCategory(s string) Category {
	for _, c := range Categories {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c
		}
	}
	return DefaultCategory
}

// Slug is the lowercase name used in bank file names.
func (c Category) Slug() string {
	return strings.ToLower(string(c))
}

// Title is the display name.
func (c Category) Title() string {
	switch c {
	case CategoryIOS:
		return "iOS"
	case CategoryAndroid:
		return "Android"
	case CategoryKotlin:
		return "Kotlin"
	case CategorySwift:
		return "Swift"
	case CategoryFlutter:
		return "Flutter"
	default:
		return string(c)
	}
}
