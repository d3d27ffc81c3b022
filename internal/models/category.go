package models

// Category is a named, coloured tag used to filter cards.
type Category struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type CategoryDraft struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ColorOption is one entry of the colour picker offered for categories.
type ColorOption struct {
	Name  string
	Value string
}

// ColorOptions are the style tokens accepted as category colours.
var ColorOptions = []ColorOption{
	{Name: "Purple", Value: "bg-gradient-to-br from-purple-500 to-purple-600"},
	{Name: "Pink", Value: "bg-gradient-to-br from-pink-500 to-pink-600"},
	{Name: "Orange", Value: "bg-gradient-to-br from-orange-500 to-orange-600"},
	{Name: "Blue", Value: "bg-gradient-to-br from-blue-500 to-blue-600"},
	{Name: "Green", Value: "bg-gradient-to-br from-green-500 to-green-600"},
	{Name: "Red", Value: "bg-gradient-to-br from-red-500 to-red-600"},
	{Name: "Yellow", Value: "bg-gradient-to-br from-yellow-500 to-yellow-600"},
	{Name: "Gray", Value: "bg-gradient-to-br from-gray-500 to-gray-600"},
}

// DefaultCategoryDraft returns an empty draft with the first colour selected.
func DefaultCategoryDraft() CategoryDraft {
	return CategoryDraft{Color: ColorOptions[0].Value}
}
