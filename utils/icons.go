package utils

import "fmt"

// Icon is a unicode icon
type Icon string

// Icons used in kube2helm console output.
const (
	IconSuccess Icon = "✅"
	IconFailure Icon = "❌"
	IconWarning Icon = "⚠️"
	IconNote    Icon = "📝"
	IconPackage Icon = "📦"
	IconPlug    Icon = "🔌"
	IconInfo    Icon = "❕"
	IconSecret  Icon = "🔒"
	IconConfig  Icon = "🔧"
	IconChat    Icon = "💬"
)

// Warn prints a warning message
func Warn(msg ...interface{}) {
	orange := "\033[38;5;214m"
	reset := "\033[0m"
	fmt.Print(IconWarning, orange, " ")
	fmt.Print(msg...)
	fmt.Println(reset)
}
